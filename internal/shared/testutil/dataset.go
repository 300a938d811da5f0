package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"procurepulse/internal/dataprocessing"
)

// OrderFixture is one dataset row, written in the default column order
type OrderFixture struct {
	OrderDate, InvoiceDate, ShipmentDate string
	Value                                string
	Plant, Flag, Supplier                string
	Order, Line, Group                   string
}

func (o OrderFixture) cells() []string {
	return []string{
		o.OrderDate, o.InvoiceDate, o.ShipmentDate, o.Value,
		o.Plant, o.Flag, o.Supplier, o.Order, o.Line, o.Group,
	}
}

// SampleOrders is a small dataset spanning two years.
//
// With the default selection (2024, every plant, every group) it yields 4
// rows, a total spend of 1800.25 and 1 automatic line out of 3 flagged ones.
// Selecting plant P2 leaves orders 4500003 and 4500004 (1500.25).
func SampleOrders() []OrderFixture {
	return []OrderFixture{
		{"2023-01-10", "2023-01-20", "2023-01-15", "1000.50", "P1", "A", "Acme", "4500001", "10", "G1"},
		{"2024-02-01", "2024-02-05", "2024-02-05", "250", "P1", "A", "Acme", "4500002", "10", "G1"},
		{"2024-03-01", "2024-03-12", "2024-03-10", "1200", "P2", "M", "Beta", "4500003", "10", "G2"},
		{"2024-04-01", "", "2024-04-03", "300.25", "P2", "", "Gamma", "4500004", "20", "G1"},
		{"2024-05-01", "2024-05-09", "2024-05-02", "50", "P1", "M", "Beta", "4500005", "10", "G3"},
	}
}

// DatasetHeader returns the default header row
func DatasetHeader() []string {
	return dataprocessing.DefaultColumns().Required()
}

// WriteDatasetCSV writes header and orders to a CSV file in a temporary
// directory and returns its path
func WriteDatasetCSV(t testing.TB, header []string, orders []OrderFixture) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Base BI.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create dataset: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, o := range orders {
		if err := w.Write(o.cells()); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush dataset: %v", err)
	}
	return path
}
