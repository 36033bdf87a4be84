package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"invdesk/internal/models"
)

func sampleProducts() []models.Product {
	price := decimal.NewFromFloat(49.99)
	return []models.Product{
		{SKU: "SKU-1", Name: "Gucci Perfume", Brand: "Gucci", Category: "Fragrance", Price: &price, Quantity: 240, UpdatedAt: "2026-08-01"},
		{SKU: "SKU-2", Name: "Mystery Item", Quantity: 3},
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	headers, rows := ProductTable(sampleProducts())
	var buf bytes.Buffer

	if err := WriteCSV(&buf, headers, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0], headers) {
		t.Errorf("Header mismatch: %v", records[0])
	}
	if records[1][4] != "49.99" {
		t.Errorf("Expected price 49.99, got %q", records[1][4])
	}
	if records[2][4] != "" {
		t.Errorf("Missing price must export empty, got %q", records[2][4])
	}
}

func TestWriteExcel_SheetAndContent(t *testing.T) {
	headers, rows := ProductTable(sampleProducts())
	var buf bytes.Buffer

	if err := WriteExcel(&buf, "Products", headers, rows); err != nil {
		t.Fatalf("WriteExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Products" {
		t.Fatalf("Expected single Products sheet, got %v", sheets)
	}

	got, err := f.GetRows("Products")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(got))
	}
	if got[0][0] != "SKU" || got[1][1] != "Gucci Perfume" {
		t.Errorf("Unexpected content: %v", got)
	}
}

func TestWriteExcel_WideTable(t *testing.T) {
	var headers []string
	var row []string
	for i := 0; i < 30; i++ {
		headers = append(headers, fmt.Sprintf("H%d", i+1))
		row = append(row, fmt.Sprintf("v%d", i+1))
	}
	var buf bytes.Buffer

	if err := WriteExcel(&buf, "Wide", headers, [][]string{row}); err != nil {
		t.Fatalf("WriteExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	// Columns past Z must land in AA, AB, ...
	got, err := f.GetCellValue("Wide", "AD1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if got != "H30" {
		t.Errorf("Expected H30 in AD1, got %q", got)
	}
	got, err = f.GetCellValue("Wide", "AD2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if got != "v30" {
		t.Errorf("Expected v30 in AD2, got %q", got)
	}
}

func TestTransferTable(t *testing.T) {
	transfers := []models.StockTransfer{
		{Reference: "TR-1", SKU: "SKU-1", Source: "Main", Destination: "Shop", Status: "pending", Quantity: 12, CreatedAt: "2026-08-02"},
	}
	headers, rows := TransferTable(transfers)
	if len(headers) != 7 || len(rows) != 1 {
		t.Fatalf("Unexpected shape: %v %v", headers, rows)
	}
	if rows[0][0] != "TR-1" || rows[0][5] != "12" {
		t.Errorf("Unexpected row: %v", rows[0])
	}
}

func TestPurchaseOrderTable(t *testing.T) {
	pos := []models.PurchaseOrder{
		{Number: "PO-7", Supplier: "Acme", Status: "draft", Total: decimal.NewFromInt(100)},
	}
	_, rows := PurchaseOrderTable(pos)
	if len(rows) != 1 || rows[0][3] != "100.00" {
		t.Errorf("Expected fixed two-decimal total, got %v", rows)
	}
}

func TestSheetNameFor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"products", "Products"},
		{"pos", "Pos"},
		{"", "Sheet1"},
	}
	for _, tt := range tests {
		if got := SheetNameFor(tt.in); got != tt.want {
			t.Errorf("SheetNameFor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
