package exporter

import (
	"procurepulse/internal/dataprocessing"
	"procurepulse/pkg/contracts/domain"
)

// OrderHeaders returns the column titles of the order table, taken from the
// source file's headers. The value column carries its derived name.
func OrderHeaders(cols dataprocessing.Columns) []string {
	return []string{
		cols.OrderID,
		cols.OrderLineID,
		cols.OrderDate,
		cols.SupplierName,
		cols.Plant,
		dataprocessing.RenamedTotalValueColumn,
	}
}

// OrderRecords flattens order rows into CSV records, keeping their order
func OrderRecords(rows []domain.OrderRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.OrderID,
			r.OrderLineID,
			formatDate(r.OrderDate),
			r.SupplierName,
			r.Plant,
			formatDecimal(r.TotalValue),
		})
	}
	return records
}
