// Package dataprocessing implements the purchasing data pipeline: it loads the
// orders table from a CSV file or an Excel workbook, validates the required
// columns, derives the delivery columns and narrows the working set through
// the year, plant and purchasing-group filters.
//
// # Architecture
//
// The package is organized into four stages:
//
// 1. Loader: reads a delimited file or a workbook sheet into a Table
// 2. Schema: checks that every required column is present
// 3. Derive: parses dates and computes lead times and delivery status
// 4. Filters: year, then plant, then purchasing group
//
// # Usage
//
//	table, err := dataprocessing.LoadFile("Base BI.csv", dataprocessing.LoadOptions{})
//	if err != nil {
//	    log.Fatal(err) // *LoadError
//	}
//
//	result, err := dataprocessing.Run(table, dataprocessing.DefaultColumns(), dataprocessing.Selection{})
//	if err != nil {
//	    log.Fatal(err) // *SchemaError
//	}
//
// # Data Flow
//
//	CSV/XLSX → Table → ValidateSchema → Derive → []OrderRecord → ApplyFilters → Result
//
// # Error Handling
//
// Structural problems are fatal: a missing or malformed file returns a
// *LoadError and a table without the required columns returns a
// *SchemaError listing every missing name. Bad cells are never errors:
// unparseable dates and values become null and flow through the derived
// columns as null.
//
// # Selections
//
// Selection is a plain value. Its zero value selects the most recent year,
// every plant and every purchasing group. Plant and group selections are
// explicit variants (All or Explicit) so an explicit empty selection is a
// deliberate, testable state that yields an empty working set.
package dataprocessing
