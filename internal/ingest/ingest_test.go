package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestParseProducts_CSVHeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"canonical", "sku,name,brand,category,price,quantity"},
		{"spaced", "Item Code,Product Name,Brand,Category,Unit Price,Stock Qty"},
		{"camel", "ItemCode,ProductName,Manufacturer,Group,UnitPrice,Qty"},
		{"snake", "item_code,product_name,Brand,Category,unit_price,Quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.header + "\nSKU-1,Gucci Perfume,Gucci,Fragrance,49.99,240\n"
			result, err := ParseProducts("products.csv", strings.NewReader(data))
			if err != nil {
				t.Fatalf("ParseProducts failed: %v", err)
			}
			if result.RowCount != 1 || len(result.Rows) != 1 {
				t.Fatalf("Expected 1 row, got count=%d rows=%d", result.RowCount, len(result.Rows))
			}
			row := result.Rows[0]
			if row.SKU != "SKU-1" || row.Name != "Gucci Perfume" || row.Brand != "Gucci" {
				t.Errorf("Unexpected row: %+v", row)
			}
			if row.Price == nil || row.Price.String() != "49.99" {
				t.Errorf("Expected price 49.99, got %v", row.Price)
			}
			if row.Quantity != 240 {
				t.Errorf("Expected quantity 240, got %d", row.Quantity)
			}
		})
	}
}

func TestParseProducts_SkipsBadRowsAndCountsThem(t *testing.T) {
	data := "SKU,Name,Price,Qty\n" +
		"SKU-1,Good,10.00,5\n" +
		",Missing SKU,10.00,5\n" +
		"SKU-3,Bad Price,not-a-number,5\n" +
		"SKU-4,Also Good,$12.50,1\n"

	result, err := ParseProducts("upload.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseProducts failed: %v", err)
	}
	if result.RowCount != 4 {
		t.Errorf("Expected 4 data rows counted, got %d", result.RowCount)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("Expected 2 valid rows, got %d", len(result.Rows))
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("Expected 2 skipped rows, got %+v", result.Skipped)
	}
	if result.Skipped[0].Row != 3 {
		t.Errorf("Expected skip at row 3, got %d", result.Skipped[0].Row)
	}
	if result.Rows[1].Price == nil || result.Rows[1].Price.String() != "12.5" {
		t.Errorf("Dollar prefix must be stripped, got %v", result.Rows[1].Price)
	}
}

func TestParseProducts_ByteOrderMark(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("SKU,Name\nSKU-1,Widget\n")...)

	result, err := ParseProducts("bom.csv", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseProducts failed: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0].SKU != "SKU-1" {
		t.Errorf("BOM must not break header detection, got %+v", result.Rows)
	}
}

func TestParseProducts_LeadingBlankRowsBeforeHeader(t *testing.T) {
	data := ",,\n,,\nSKU,Name\nSKU-1,Widget\n"

	result, err := ParseProducts("padded.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseProducts failed: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Errorf("Expected 1 row after padded header, got %+v", result.Rows)
	}
}

func TestParseProducts_NoSKUColumn(t *testing.T) {
	data := "Name,Price\nWidget,10\n"

	_, err := ParseProducts("nosku.csv", strings.NewReader(data))
	if err == nil {
		t.Fatal("Expected error for a header without a SKU column")
	}
}

func TestParseProducts_UnsupportedFormat(t *testing.T) {
	_, err := ParseProducts("products.pdf", strings.NewReader("whatever"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseProducts_EmptyFile(t *testing.T) {
	if _, err := ParseProducts("empty.csv", strings.NewReader("")); err == nil {
		t.Error("Expected error for an empty file")
	}
}

func TestParseProducts_Excel(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Item Code", "Product Name", "Brand", "Unit Price", "Qty"},
		{"SKU-1", "Gucci Perfume", "Gucci", 49.99, 240},
		{"SKU-2", "Chanel No5", "Chanel", 120, 5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	result, err := ParseProducts("products.xlsx", &buf)
	if err != nil {
		t.Fatalf("ParseProducts failed: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %+v", result.Rows)
	}
	if result.Rows[0].SKU != "SKU-1" || result.Rows[0].Quantity != 240 {
		t.Errorf("Unexpected first row: %+v", result.Rows[0])
	}
	if result.Rows[1].Price == nil || !result.Rows[1].Price.Equal(decimal.NewFromInt(120)) {
		t.Errorf("Expected price 120, got %v", result.Rows[1].Price)
	}
}

func TestParseProducts_DuplicateHeadersFirstColumnWins(t *testing.T) {
	data := "SKU,Price,Unit Price,Name\nSKU-1,10.00,99.99,Widget\n"

	result, err := ParseProducts("dup.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseProducts failed: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %+v", result.Rows)
	}
	if p := result.Rows[0].Price; p == nil || !p.Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("Leftmost price column must win, got %v", p)
	}
}

func TestCanonicalFor(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Item Code", "sku", true},
		{"itemCode", "sku", true},
		{"ITEM_CODE", "sku", true},
		{"Selling Price", "price", true},
		{"On Hand", "quantity", true},
		{"Color", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := canonicalFor(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("canonicalFor(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}
