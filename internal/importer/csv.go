package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// StockRow is one usable line from a supplier export.
type StockRow struct {
	Row         int // 1-based line number; the header is row 1
	SKU         string
	Description string
	Quantity    int
}

// ParseStock reads a supplier CSV export with "Product Code", "Item
// Description", and "Qty" columns. Rows missing a SKU or quantity and rows
// with a non-positive quantity are skipped silently; rows with an
// unparseable quantity come back as row errors. Matching rows against the
// catalog is the caller's concern.
func ParseStock(r io.Reader) ([]StockRow, []error, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	skuCol, ok := col["Product Code"]
	if !ok {
		return nil, nil, fmt.Errorf("CSV has no %q column", "Product Code")
	}
	qtyCol, ok := col["Qty"]
	if !ok {
		return nil, nil, fmt.Errorf("CSV has no %q column", "Qty")
	}
	descCol, hasDesc := col["Item Description"]

	field := func(record []string, idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []StockRow
	var rowErrs []error
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row %d: %w", rowNum, err)
		}

		sku := field(record, skuCol)
		qtyStr := field(record, qtyCol)
		if sku == "" || qtyStr == "" {
			continue
		}

		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: invalid quantity %q for %s", rowNum, qtyStr, sku))
			continue
		}
		if qty <= 0 {
			continue
		}

		row := StockRow{Row: rowNum, SKU: sku, Quantity: qty}
		if hasDesc {
			row.Description = field(record, descCol)
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}
