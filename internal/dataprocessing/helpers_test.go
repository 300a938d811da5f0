package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// orderRow builds a row in DefaultColumns().Required() order
type orderRow struct {
	orderDate, invoiceDate, shipmentDate string
	value                                string
	plant, flag, supplier                string
	order, line, group                   string
}

func (r orderRow) cells() []string {
	return []string{
		r.orderDate,
		r.invoiceDate,
		r.shipmentDate,
		r.value,
		r.plant,
		r.flag,
		r.supplier,
		r.order,
		r.line,
		r.group,
	}
}

func newTable(rows ...orderRow) *Table {
	t := &Table{Header: DefaultColumns().Required(), Rows: [][]string{}}
	for _, r := range rows {
		t.Rows = append(t.Rows, r.cells())
	}
	return t
}

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &r))
	}

	path := filepath.Join(t.TempDir(), "pedidos.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
