// Package exporter writes the order table of a dashboard to CSV and Excel files.
//
// CSVWriter: Core CSV writing with headers and a UTF-8 BOM so Excel opens the
// output with the right encoding. It writes either to a file below its output
// directory or to any io.Writer (for HTTP downloads). WriteFile puts any other
// rendered export in the same directory.
//
// WriteWorkbook: Writes the same table as a single-sheet .xlsx workbook with
// real date and number cells.
//
// Example usage:
//
//	cols := dataprocessing.DefaultColumns()
//	writer := exporter.NewCSVWriter("reports")
//	err := writer.WriteOrders("orders_2024.csv", exporter.OrderHeaders(cols), summary.Orders)
//
//	var buf bytes.Buffer
//	err = exporter.WriteWorkbook(&buf, "Orders", exporter.OrderHeaders(cols), summary.Orders)
package exporter
