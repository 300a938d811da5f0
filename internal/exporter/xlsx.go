package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"procurepulse/pkg/contracts/domain"
)

// DefaultSheetName names the sheet written by WriteWorkbook
const DefaultSheetName = "Orders"

// Built-in Excel number formats
const (
	numFmtDate    = 14 // m/d/yyyy, localized by Excel
	numFmtDecimal = 4  // #,##0.00
)

// WriteWorkbook writes the order table as a single-sheet workbook. Dates and
// values are stored as real Excel dates and numbers.
func WriteWorkbook(out io.Writer, sheet string, headers []string, rows []domain.OrderRow) error {
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtDate})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}
	valueStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtDecimal})
	if err != nil {
		return fmt.Errorf("failed to create value style: %w", err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style headers: %w", err)
		}
	}

	for i, r := range rows {
		row := []interface{}{r.OrderID, r.OrderLineID, nil, r.SupplierName, r.Plant, nil}
		if r.OrderDate != nil {
			row[2] = *r.OrderDate
		}
		if r.TotalValue.Valid {
			row[5] = r.TotalValue.Decimal.InexactFloat64()
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if n := len(rows); n > 0 {
		if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("C%d", n+1), dateStyle); err != nil {
			return fmt.Errorf("failed to style dates: %w", err)
		}
		if err := f.SetCellStyle(sheet, "F2", fmt.Sprintf("F%d", n+1), valueStyle); err != nil {
			return fmt.Errorf("failed to style values: %w", err)
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
