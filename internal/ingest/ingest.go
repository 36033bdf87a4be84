// Package ingest parses the spreadsheet files accepted by the product
// upload wizard and maps heterogeneous column headers onto the canonical
// product field set.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when an uploaded file is not supported.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ProductRow is one canonical product record extracted from an upload.
type ProductRow struct {
	SKU      string
	Name     string
	Brand    string
	Category string
	Price    *decimal.Decimal
	Quantity int
}

// RowError records why a data row was skipped.
type RowError struct {
	Row     int
	Message string
}

// Result is the outcome of parsing one upload.
type Result struct {
	Rows []ProductRow
	// RowCount is the number of data rows seen, valid or not; the UI
	// reports it back to the user.
	RowCount int
	Skipped  []RowError
}

// ParseProducts reads a CSV or XLSX upload and maps it to canonical
// product rows. Rows missing a SKU or with unparseable numbers are
// skipped and reported, not fatal.
func ParseProducts(filename string, r io.Reader) (*Result, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return nil, errors.New("file is empty")
	}

	var records [][]string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		records, err = readCSV(payload)
	case ".xlsx":
		records, err = readExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	return mapRows(records)
}

func readCSV(payload []byte) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}

func readExcel(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return rows, nil
}

// mapRows treats the first non-empty row as the header, resolves each
// header to a canonical field, and maps the remaining rows.
func mapRows(records [][]string) (*Result, error) {
	var header []string
	headerIdx := -1
	for i, row := range records {
		if !rowEmpty(row) {
			header = row
			headerIdx = i
			break
		}
	}
	if header == nil {
		return nil, errors.New("no header row detected")
	}

	// column index -> canonical field; when two headers resolve to the
	// same field the leftmost column wins.
	fields := make(map[int]string)
	claimed := make(map[string]bool)
	for i, h := range header {
		if canon, ok := canonicalFor(h); ok && !claimed[canon] {
			fields[i] = canon
			claimed[canon] = true
		}
	}
	if _, ok := columnFor(fields, "sku"); !ok {
		return nil, errors.New("no recognizable SKU column in header")
	}

	result := &Result{}
	for idx := headerIdx + 1; idx < len(records); idx++ {
		row := records[idx]
		if rowEmpty(row) {
			continue
		}
		result.RowCount++
		rowNumber := idx + 1 // 1-based, including the header

		pr, err := mapRow(fields, row)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Row: rowNumber, Message: err.Error()})
			continue
		}
		result.Rows = append(result.Rows, pr)
	}
	return result, nil
}

func mapRow(fields map[int]string, row []string) (ProductRow, error) {
	var pr ProductRow
	for i, canon := range fields {
		if i >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[i])
		if raw == "" {
			continue
		}
		switch canon {
		case "sku":
			pr.SKU = raw
		case "name":
			pr.Name = raw
		case "brand":
			pr.Brand = raw
		case "category":
			pr.Category = raw
		case "price":
			p, err := decimal.NewFromString(strings.TrimPrefix(raw, "$"))
			if err != nil {
				return pr, fmt.Errorf("price: unable to parse %q", raw)
			}
			pr.Price = &p
		case "quantity":
			q, err := strconv.Atoi(raw)
			if err != nil {
				return pr, fmt.Errorf("quantity: unable to parse %q", raw)
			}
			pr.Quantity = q
		}
	}
	if pr.SKU == "" {
		return pr, errors.New("sku: is required")
	}
	return pr, nil
}

func columnFor(fields map[int]string, canon string) (int, bool) {
	for i, c := range fields {
		if c == canon {
			return i, true
		}
	}
	return 0, false
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
