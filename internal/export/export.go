// Package export writes an already filtered and sorted view to CSV or
// Excel for offline use.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"invdesk/internal/models"
)

// WriteCSV writes headers and rows as CSV.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteExcel writes headers and rows as a single-sheet workbook with a
// bold, shaded header row.
func WriteExcel(w io.Writer, sheetName string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		f.SetColWidth(sheetName, col, col, 15)
	}

	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	return f.Write(w)
}

// ProductTable flattens products for export.
func ProductTable(products []models.Product) (headers []string, rows [][]string) {
	headers = []string{"SKU", "Name", "Brand", "Category", "Price", "Quantity", "Updated At"}
	for _, p := range products {
		price := ""
		if p.Price != nil {
			price = p.Price.StringFixed(2)
		}
		rows = append(rows, []string{
			p.SKU, p.Name, p.Brand, p.Category, price,
			fmt.Sprintf("%d", p.Quantity), p.UpdatedAt,
		})
	}
	return headers, rows
}

// TransferTable flattens stock transfers for export.
func TransferTable(transfers []models.StockTransfer) (headers []string, rows [][]string) {
	headers = []string{"Reference", "SKU", "Source", "Destination", "Status", "Quantity", "Created At"}
	for _, t := range transfers {
		rows = append(rows, []string{
			t.Reference, t.SKU, t.Source, t.Destination, t.Status,
			fmt.Sprintf("%d", t.Quantity), t.CreatedAt,
		})
	}
	return headers, rows
}

// PurchaseOrderTable flattens purchase orders for export.
func PurchaseOrderTable(pos []models.PurchaseOrder) (headers []string, rows [][]string) {
	headers = []string{"Number", "Supplier", "Status", "Total", "Created At"}
	for _, po := range pos {
		rows = append(rows, []string{
			po.Number, po.Supplier, po.Status, po.Total.StringFixed(2), po.CreatedAt,
		})
	}
	return headers, rows
}

// SheetNameFor derives a sheet name from an entity kind ("products" ->
// "Products").
func SheetNameFor(kind string) string {
	if kind == "" {
		return "Sheet1"
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
