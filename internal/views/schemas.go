// Package views configures the filter engine for each list screen:
// which fields exist, which ones free-text search covers, and the full
// domain of each range filter.
package views

import (
	"invdesk/internal/filter"
	"invdesk/internal/models"
)

// DefaultPriceDomain mirrors the price slider bounds on the product list.
var DefaultPriceDomain = filter.Range{Min: 0, Max: 250}

// DefaultQtyDomain mirrors the quantity filter bounds.
var DefaultQtyDomain = filter.Range{Min: 0, Max: 1000000}

// Products is the filter schema for the product list view.
var Products = filter.Schema[models.Product]{
	Fields: map[string]filter.Accessor[models.Product]{
		"sku":      func(p models.Product) filter.Value { return filter.String(p.SKU) },
		"name":     func(p models.Product) filter.Value { return filter.String(p.Name) },
		"brand":    func(p models.Product) filter.Value { return filter.String(p.Brand) },
		"category": func(p models.Product) filter.Value { return filter.String(p.Category) },
		"price": func(p models.Product) filter.Value {
			if p.Price == nil {
				return filter.Missing(filter.KindNumber)
			}
			return filter.Number(p.Price.InexactFloat64())
		},
		"quantity": func(p models.Product) filter.Value { return filter.Number(float64(p.Quantity)) },
		"updated":  func(p models.Product) filter.Value { return filter.String(p.UpdatedAt) },
	},
	Searchable: []string{"sku", "name", "brand", "category"},
	Domains: map[string]filter.Range{
		"price":    DefaultPriceDomain,
		"quantity": DefaultQtyDomain,
	},
}

// Transfers is the filter schema for the stock-transfer list view.
var Transfers = filter.Schema[models.StockTransfer]{
	Fields: map[string]filter.Accessor[models.StockTransfer]{
		"reference":   func(t models.StockTransfer) filter.Value { return filter.String(t.Reference) },
		"sku":         func(t models.StockTransfer) filter.Value { return filter.String(t.SKU) },
		"source":      func(t models.StockTransfer) filter.Value { return filter.String(t.Source) },
		"destination": func(t models.StockTransfer) filter.Value { return filter.String(t.Destination) },
		"status":      func(t models.StockTransfer) filter.Value { return filter.String(t.Status) },
		"quantity":    func(t models.StockTransfer) filter.Value { return filter.Number(float64(t.Quantity)) },
		"created":     func(t models.StockTransfer) filter.Value { return filter.String(t.CreatedAt) },
	},
	Searchable: []string{"reference", "sku", "source", "destination"},
	Domains: map[string]filter.Range{
		"quantity": DefaultQtyDomain,
	},
}

// PurchaseOrders is the filter schema for the purchase-order list view.
var PurchaseOrders = filter.Schema[models.PurchaseOrder]{
	Fields: map[string]filter.Accessor[models.PurchaseOrder]{
		"number":   func(po models.PurchaseOrder) filter.Value { return filter.String(po.Number) },
		"supplier": func(po models.PurchaseOrder) filter.Value { return filter.String(po.Supplier) },
		"status":   func(po models.PurchaseOrder) filter.Value { return filter.String(po.Status) },
		"total":    func(po models.PurchaseOrder) filter.Value { return filter.Number(po.Total.InexactFloat64()) },
		"created":  func(po models.PurchaseOrder) filter.Value { return filter.String(po.CreatedAt) },
	},
	Searchable: []string{"number", "supplier"},
	Domains: map[string]filter.Range{
		"total": {Min: 0, Max: 10000000},
	},
}
