package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurepulse/internal/config"
	"procurepulse/internal/dataprocessing"
	apperrors "procurepulse/internal/errors"
	customMiddleware "procurepulse/internal/middleware"
	"procurepulse/internal/shared/testutil"
)

func newTestApp(t *testing.T, datasetPath string) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Dataset.Path = datasetPath
	cfg.Security.RateLimit.Enabled = false
	cfg.Server.ShutdownTimeout = 5 * time.Second

	logger, _ := testutil.NewTestLogger(t)
	a, err := NewApplication(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.OTelProviders.Shutdown(context.Background()) })
	return a
}

func loadedTestApp(t *testing.T) *Application {
	t.Helper()
	a := newTestApp(t, testutil.WriteDatasetCSV(t, testutil.DatasetHeader(), testutil.SampleOrders()))
	require.NoError(t, a.LoadDataset(context.Background()))
	return a
}

func get(t *testing.T, a *Application, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func TestNewApplication(t *testing.T) {
	_, err := NewApplication(nil, nil)
	assert.Error(t, err)

	a := newTestApp(t, "Base BI.csv")
	assert.NotNil(t, a.Router)
	assert.NotNil(t, a.DashboardService)
	assert.NotNil(t, a.HealthService)
	assert.Equal(t, ":8080", a.Server.Addr)
	assert.Equal(t, a.Router, a.Server.Handler)
	assert.False(t, a.DashboardService.Loaded())
}

func TestApplication_Routes(t *testing.T) {
	a := loadedTestApp(t)

	tests := []struct {
		name        string
		target      string
		status      int
		contentType string
		contains    []string
	}{
		{
			name:     "readiness",
			target:   "/api/health",
			status:   http.StatusOK,
			contains: []string{`"status":"ready"`},
		},
		{
			name:     "liveness",
			target:   "/api/health/live",
			status:   http.StatusOK,
			contains: []string{`"status":"alive"`},
		},
		{
			name:     "version",
			target:   "/api/version",
			status:   http.StatusOK,
			contains: []string{VERSION},
		},
		{
			name:     "dataset",
			target:   "/api/dataset",
			status:   http.StatusOK,
			contains: []string{`"rows":5`},
		},
		{
			name:     "dashboard defaults to the latest year",
			target:   "/api/dashboard",
			status:   http.StatusOK,
			contains: []string{`"row_count":4`, `"selected_year":2024`},
		},
		{
			name:     "dashboard plant filter",
			target:   "/api/dashboard?plant=P2",
			status:   http.StatusOK,
			contains: []string{`"row_count":2`, `"total_spend_formatted":"$1,500.25"`},
		},
		{
			name:     "filters",
			target:   "/api/dashboard/filters?year=2023",
			status:   http.StatusOK,
			contains: []string{`"years":[2024,2023]`, `"plants":["P1"]`},
		},
		{
			name:        "csv export",
			target:      "/api/dashboard/orders.csv",
			status:      http.StatusOK,
			contentType: "text/csv; charset=utf-8",
			contains:    []string{"4500003"},
		},
		{
			name:        "page",
			target:      "/dashboard",
			status:      http.StatusOK,
			contentType: "text/html; charset=utf-8",
			contains:    []string{"Dashboard de Compras"},
		},
		{
			name:        "invalid year",
			target:      "/api/dashboard?year=abc",
			status:      http.StatusBadRequest,
			contentType: apperrors.ProblemContentType,
		},
		{
			name:        "unknown route",
			target:      "/api/unknown",
			status:      http.StatusNotFound,
			contentType: apperrors.ProblemContentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, a, tt.target)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(customMiddleware.RequestIDHeader))
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			}
			for _, want := range tt.contains {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestApplication_RootRedirectsToDashboard(t *testing.T) {
	a := loadedTestApp(t)

	rec := get(t, a, "/?year=2023")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard?year=2023", rec.Header().Get("Location"))
}

func TestApplication_MethodNotAllowed(t *testing.T) {
	a := loadedTestApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/dataset", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, apperrors.ProblemContentType, rec.Header().Get("Content-Type"))
}

func TestApplication_DatasetMissing(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "missing.csv"))

	err := a.LoadDataset(context.Background())
	var loadErr *dataprocessing.LoadError
	require.True(t, errors.As(err, &loadErr), "got %v", err)

	for _, target := range []string{"/api/health", "/api/dashboard", "/dashboard"} {
		rec := get(t, a, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}

	rec := get(t, a, "/api/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplication_MetricsEndpoint(t *testing.T) {
	a := loadedTestApp(t)

	require.Equal(t, http.StatusOK, get(t, a, "/api/dashboard").Code)

	rec := get(t, a, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "pulse_http_requests")
	assert.Contains(t, body, "pulse_dataset_loads")
	assert.Contains(t, body, "pulse_dashboard_renders")
}

func TestApplication_ServeAndShutdown(t *testing.T) {
	a := loadedTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/api/health/live", ln.Addr()))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "alive")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
