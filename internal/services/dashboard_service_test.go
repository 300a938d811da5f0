package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"procurepulse/internal/config"
	"procurepulse/internal/dataprocessing"
	"procurepulse/internal/shared/testutil"
	"procurepulse/pkg/contracts/domain"
)

var loadedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, path string) *DashboardService {
	t.Helper()
	cfg := config.Default()
	cfg.Dataset.Path = path
	logger, _ := testutil.NewTestLogger(t)
	return NewDashboardService(cfg, logger, WithClock(func() time.Time { return loadedAt }))
}

func loadedService(t *testing.T) *DashboardService {
	t.Helper()
	s := newService(t, testutil.WriteDatasetCSV(t, testutil.DatasetHeader(), testutil.SampleOrders()))
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	return s
}

func TestDashboardService_Load(t *testing.T) {
	path := testutil.WriteDatasetCSV(t, testutil.DatasetHeader(), testutil.SampleOrders())
	s := newService(t, path)

	assert.False(t, s.Loaded())
	_, err := s.Dataset(context.Background())
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)

	info, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DatasetInfo{
		Path:     path,
		Rows:     5,
		Columns:  testutil.DatasetHeader(),
		LoadedAt: loadedAt,
	}, info)
	assert.True(t, s.Loaded())

	cached, err := s.Dataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, info, cached)
}

func TestDashboardService_LoadFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s := newService(t, "does-not-exist.csv")

		_, err := s.Load(context.Background())

		var loadErr *dataprocessing.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "does-not-exist.csv", loadErr.Path)
		assert.False(t, s.Loaded())
	})

	t.Run("missing columns", func(t *testing.T) {
		header := testutil.DatasetHeader()[:8]
		s := newService(t, testutil.WriteDatasetCSV(t, header, nil))

		_, err := s.Load(context.Background())

		assert.EqualError(t, err, `the following required columns are missing: ["Item do pedido", "Grupo de compras"]`)
		assert.False(t, s.Loaded())
	})
}

func TestDashboardService_FailedReloadClearsCache(t *testing.T) {
	path := testutil.WriteDatasetCSV(t, testutil.DatasetHeader(), testutil.SampleOrders())
	s := newService(t, path)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = s.Reload(context.Background())
	require.Error(t, err)

	_, err = s.Dashboard(context.Background(), dataprocessing.Selection{})
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
}

func TestDashboardService_Dashboard(t *testing.T) {
	s := loadedService(t)

	tests := []struct {
		name        string
		sel         dataprocessing.Selection
		wantRows    int
		wantSpend   string
		wantFilters domain.FilterOptions
	}{
		{
			name:      "default selection is the latest year",
			sel:       dataprocessing.Selection{},
			wantRows:  4,
			wantSpend: "$1,800.25",
			wantFilters: domain.FilterOptions{
				Years:        []int{2024, 2023},
				SelectedYear: 2024,
				Plants:       []string{"P1", "P2"},
				Groups:       []string{"G1", "G2", "G3"},
			},
		},
		{
			name:      "one plant",
			sel:       dataprocessing.Selection{Plants: dataprocessing.ExplicitPlants("P2")},
			wantRows:  2,
			wantSpend: "$1,500.25",
			wantFilters: domain.FilterOptions{
				Years:        []int{2024, 2023},
				SelectedYear: 2024,
				Plants:       []string{"P1", "P2"},
				Groups:       []string{"G1", "G2"},
			},
		},
		{
			name:      "earlier year",
			sel:       dataprocessing.Selection{Year: 2023},
			wantRows:  1,
			wantSpend: "$1,000.50",
			wantFilters: domain.FilterOptions{
				Years:        []int{2024, 2023},
				SelectedYear: 2023,
				Plants:       []string{"P1"},
				Groups:       []string{"G1"},
			},
		},
		{
			name:      "no groups selected",
			sel:       dataprocessing.Selection{Groups: dataprocessing.ExplicitGroups()},
			wantRows:  0,
			wantSpend: "$0.00",
			wantFilters: domain.FilterOptions{
				Years:        []int{2024, 2023},
				SelectedYear: 2024,
				Plants:       []string{"P1", "P2"},
				Groups:       []string{"G1", "G2", "G3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := s.Dashboard(context.Background(), tt.sel)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRows, view.Summary.RowCount)
			assert.Len(t, view.Summary.Orders, tt.wantRows)
			assert.Equal(t, tt.wantSpend, view.Summary.TotalSpendFormatted)
			assert.Equal(t, tt.wantFilters, view.Filters)
		})
	}
}

func TestDashboardService_DashboardAggregates(t *testing.T) {
	s := loadedService(t)

	view, err := s.Dashboard(context.Background(), dataprocessing.Selection{})
	require.NoError(t, err)

	assert.Equal(t, "33.3%", view.Summary.AutomationPercentFormatted)

	labels := make([]string, 0, len(view.Summary.TopSuppliersBySpend))
	for _, lv := range view.Summary.TopSuppliersBySpend {
		labels = append(labels, lv.Label)
	}
	assert.Equal(t, []string{"Acme", "Gamma", "Beta"}, labels)
	assert.True(t, decimal.RequireFromString("1250").Equal(view.Summary.TopSuppliersBySpend[2].Value))
}

func TestDashboardService_Filters(t *testing.T) {
	s := loadedService(t)

	opts, err := s.Filters(context.Background(), dataprocessing.Selection{Plants: dataprocessing.ExplicitPlants("P1")})
	require.NoError(t, err)

	assert.Equal(t, []string{"G1", "G3"}, opts.Groups)
}

func TestDashboardService_RenderHTML(t *testing.T) {
	s := loadedService(t)

	page, err := s.RenderHTML(context.Background(), dataprocessing.Selection{})
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "Dashboard de Compras")
	assert.Contains(t, html, "$1,800.25")
	assert.Contains(t, html, `<table id="orders"`)
	assert.Contains(t, html, "4500005")
	assert.NotContains(t, html, "4500001")
}

func TestDashboardService_ExportCSV(t *testing.T) {
	s := loadedService(t)

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(context.Background(), &buf, dataprocessing.Selection{Plants: dataprocessing.ExplicitPlants("P2")}))

	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Pedido", "Item do pedido", "Data do pedido", "Nome do fornecedor", "Planta", "Valor Total USD"},
		{"4500003", "10", "2024-03-01", "Beta", "P2", "1200.00"},
		{"4500004", "20", "2024-04-01", "Gamma", "P2", "300.25"},
	}, records)
}

func TestDashboardService_ExportXLSX(t *testing.T) {
	s := loadedService(t)

	var buf bytes.Buffer
	require.NoError(t, s.ExportXLSX(context.Background(), &buf, dataprocessing.Selection{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Equal(t, "Pedido", rows[0][0])
}

func TestDashboardService_ExportUsesConfiguredHeaders(t *testing.T) {
	header := testutil.DatasetHeader()
	header[7] = "PO Number"
	path := testutil.WriteDatasetCSV(t, header, testutil.SampleOrders())

	cfg := config.Default()
	cfg.Dataset.Path = path
	cfg.Dataset.Columns.OrderID = "PO Number"
	logger, _ := testutil.NewTestLogger(t)
	s := NewDashboardService(cfg, logger)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	want := []string{"PO Number", "Item do pedido", "Data do pedido", "Nome do fornecedor", "Planta", dataprocessing.RenamedTotalValueColumn}
	assert.Equal(t, want, s.OrderHeaders())

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(context.Background(), &buf, dataprocessing.Selection{}))
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, want, records[0])
	assert.Equal(t, "4500002", records[1][0])
}

type stubProcessor struct {
	calls  int
	result *dataprocessing.Result
	err    error
}

func (p *stubProcessor) Process(*dataprocessing.Table, dataprocessing.Selection) (*dataprocessing.Result, error) {
	p.calls++
	return p.result, p.err
}

func TestDashboardService_WithProcessor(t *testing.T) {
	path := testutil.WriteDatasetCSV(t, testutil.DatasetHeader(), testutil.SampleOrders())
	cfg := config.Default()
	cfg.Dataset.Path = path
	logger, _ := testutil.NewTestLogger(t)

	stub := &stubProcessor{result: &dataprocessing.Result{
		Options: domain.FilterOptions{Years: []int{1999}, SelectedYear: 1999},
	}}
	s := NewDashboardService(cfg, logger, WithProcessor(stub))
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	opts, err := s.Filters(context.Background(), dataprocessing.Selection{})
	require.NoError(t, err)
	assert.Equal(t, 1999, opts.SelectedYear)

	view, err := s.Dashboard(context.Background(), dataprocessing.Selection{})
	require.NoError(t, err)
	assert.Zero(t, view.Summary.RowCount)
	assert.Equal(t, 2, stub.calls)

	stub.err = errors.New("pipeline failed")
	_, err = s.Dashboard(context.Background(), dataprocessing.Selection{})
	assert.ErrorIs(t, err, stub.err)
}

func TestDashboardService_NotLoaded(t *testing.T) {
	s := newService(t, "unused.csv")
	ctx := context.Background()

	_, err := s.Filters(ctx, dataprocessing.Selection{})
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
	_, err = s.RenderHTML(ctx, dataprocessing.Selection{})
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
	assert.ErrorIs(t, s.ExportCSV(ctx, &bytes.Buffer{}, dataprocessing.Selection{}), ErrDatasetNotLoaded)
}

func TestDashboardService_ConcurrentReads(t *testing.T) {
	s := loadedService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				_, err := s.Reload(context.Background())
				assert.NoError(t, err)
				return
			}
			view, err := s.Dashboard(context.Background(), dataprocessing.Selection{})
			if assert.NoError(t, err) {
				assert.Equal(t, 4, view.Summary.RowCount)
			}
		}(i)
	}
	wg.Wait()
}
