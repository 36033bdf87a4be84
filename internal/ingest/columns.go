package ingest

import "strings"

// column maps one canonical product field to the header spellings seen
// in supplier spreadsheets.
type column struct {
	canonical string
	variants  []string
}

var productColumns = []column{
	{"sku", []string{"SKU", "Item Code", "ItemCode", "itemCode", "item_code", "Code"}},
	{"name", []string{"Name", "Product Name", "ProductName", "product_name", "Item Name", "Title"}},
	{"brand", []string{"Brand", "brand", "Manufacturer", "Make"}},
	{"category", []string{"Category", "category", "Product Category", "Group"}},
	{"price", []string{"Price", "Unit Price", "UnitPrice", "unit_price", "Selling Price", "RRP"}},
	{"quantity", []string{"Qty", "Quantity", "quantity", "Stock", "Stock Qty", "On Hand"}},
}

// normalizeHeader lowers the header and strips separators so that
// "Item Code", "ItemCode" and "item_code" all compare equal.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	for _, sep := range []string{" ", "_", "-", "."} {
		h = strings.ReplaceAll(h, sep, "")
	}
	return h
}

// canonicalFor resolves a raw spreadsheet header to its canonical field.
func canonicalFor(header string) (string, bool) {
	n := normalizeHeader(header)
	if n == "" {
		return "", false
	}
	for _, c := range productColumns {
		if normalizeHeader(c.canonical) == n {
			return c.canonical, true
		}
		for _, v := range c.variants {
			if normalizeHeader(v) == n {
				return c.canonical, true
			}
		}
	}
	return "", false
}
