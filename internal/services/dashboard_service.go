package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"procurepulse/internal/config"
	"procurepulse/internal/dashboard"
	"procurepulse/internal/dataprocessing"
	apperrors "procurepulse/internal/errors"
	"procurepulse/internal/exporter"
	"procurepulse/internal/infrastructure"
	"procurepulse/pkg/contracts/domain"
)

// Render views reported to metrics
const (
	ViewJSON    = "json"
	ViewFilters = "filters"
	ViewHTML    = "html"
	ViewCSV     = "csv"
	ViewXLSX    = "xlsx"
)

// DashboardView is the JSON form of one dashboard render
type DashboardView struct {
	Filters domain.FilterOptions    `json:"filters"`
	Summary domain.DashboardSummary `json:"summary"`
}

// DashboardService caches the raw dataset and runs the pipeline against it
// for every request. The cache is replaced wholesale on reload; a failed
// reload leaves it empty.
type DashboardService struct {
	path      string
	loadOpts  dataprocessing.LoadOptions
	columns   dataprocessing.Columns
	processor dataprocessing.Processor
	headers   []string
	options   dashboard.Options
	page      dashboard.PageOptions

	metrics *infrastructure.PipelineMetrics
	tracer  trace.Tracer
	logger  *slog.Logger
	now     func() time.Time

	loads singleflight.Group

	mu    sync.RWMutex
	table *dataprocessing.Table
	info  domain.DatasetInfo
}

// Option customizes a DashboardService
type Option func(*DashboardService)

// WithMetrics records loads and renders on m
func WithMetrics(m *infrastructure.PipelineMetrics) Option {
	return func(s *DashboardService) { s.metrics = m }
}

// WithTracer opens spans on t instead of the global tracer
func WithTracer(t trace.Tracer) Option {
	return func(s *DashboardService) { s.tracer = t }
}

// WithProcessor replaces the validate, derive and filter pipeline run on
// every request
func WithProcessor(p dataprocessing.Processor) Option {
	return func(s *DashboardService) { s.processor = p }
}

// WithClock overrides the clock used for LoadedAt
func WithClock(now func() time.Time) Option {
	return func(s *DashboardService) { s.now = now }
}

// NewDashboardService builds the service from the dataset and dashboard
// sections of cfg. Nothing is read until Load is called.
func NewDashboardService(cfg *config.Config, logger *slog.Logger, opts ...Option) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "dashboard_service")

	columns := dataprocessing.Columns(cfg.Dataset.Columns)
	s := &DashboardService{
		path: cfg.Dataset.Path,
		loadOpts: dataprocessing.LoadOptions{
			Sheet:  cfg.Dataset.Sheet,
			Comma:  cfg.Dataset.Comma(),
			Logger: logger,
		},
		columns:   columns,
		processor: dataprocessing.NewPipelineProcessor(columns),
		headers:   exporter.OrderHeaders(columns),
		options: dashboard.Options{
			TopN:            cfg.Dashboard.TopN,
			AutomaticMarker: cfg.Dashboard.AutomaticMarker,
			CurrencySymbol:  cfg.Dashboard.CurrencySymbol,
		},
		page: dashboard.PageOptions{
			Title:          cfg.Dashboard.Title,
			AssetsHost:     cfg.Dashboard.AssetsHost,
			CurrencySymbol: cfg.Dashboard.CurrencySymbol,
		},
		tracer: otel.Tracer(infrastructure.ServiceName),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OrderHeaders returns the column titles of the exported order table
func (s *DashboardService) OrderHeaders() []string {
	return append([]string(nil), s.headers...)
}

// Path returns the dataset location
func (s *DashboardService) Path() string {
	return s.path
}

// Load reads the dataset and checks its header. Concurrent calls share one
// read. On failure the cache is cleared and the error is returned as is.
func (s *DashboardService) Load(ctx context.Context) (domain.DatasetInfo, error) {
	v, err, _ := s.loads.Do("load", func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return domain.DatasetInfo{}, err
	}
	return v.(domain.DatasetInfo), nil
}

func (s *DashboardService) load(ctx context.Context) (domain.DatasetInfo, error) {
	ctx, span := s.tracer.Start(ctx, "dataset.load",
		trace.WithAttributes(attribute.String("dataset.path", s.path)))
	defer span.End()

	start := time.Now()
	table, err := dataprocessing.LoadFile(s.path, s.loadOpts)
	if err == nil {
		err = dataprocessing.ValidateSchema(table, s.columns.Required())
	}
	if err != nil {
		s.clear()
		outcome := infrastructure.OutcomeLoadError
		var schemaErr *dataprocessing.SchemaError
		if errors.As(err, &schemaErr) {
			outcome = infrastructure.OutcomeSchemaError
		}
		s.metrics.RecordLoad(ctx, outcome, 0, time.Since(start))
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("path", s.path),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()))
		return domain.DatasetInfo{}, err
	}

	info := domain.DatasetInfo{
		Path:     s.path,
		Rows:     table.Len(),
		Columns:  append([]string(nil), table.Header...),
		LoadedAt: s.now(),
	}

	s.mu.Lock()
	s.table = table
	s.info = info
	s.mu.Unlock()

	s.metrics.RecordLoad(ctx, infrastructure.OutcomeSuccess, info.Rows, time.Since(start))
	span.SetAttributes(attribute.Int("dataset.rows", info.Rows))
	s.logger.InfoContext(ctx, fmt.Sprintf("dataset loaded, %d rows", info.Rows),
		slog.String("path", s.path),
		slog.Int("rows", info.Rows))

	return info, nil
}

// Reload is Load under the name the HTTP API uses
func (s *DashboardService) Reload(ctx context.Context) (domain.DatasetInfo, error) {
	return s.Load(ctx)
}

func (s *DashboardService) clear() {
	s.mu.Lock()
	s.table = nil
	s.info = domain.DatasetInfo{}
	s.mu.Unlock()
}

// Dataset describes the cached dataset
func (s *DashboardService) Dataset(ctx context.Context) (domain.DatasetInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return domain.DatasetInfo{}, ErrDatasetNotLoaded
	}
	return s.info, nil
}

// Loaded reports whether a dataset is cached
func (s *DashboardService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil
}

// snapshot returns the cached table. The table is never mutated after load,
// so callers may read it without holding the lock.
func (s *DashboardService) snapshot() (*dataprocessing.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.table, nil
}

// run executes validate, derive and filter on the cached table
func (s *DashboardService) run(ctx context.Context, view string, sel dataprocessing.Selection) (*dataprocessing.Result, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.render",
		trace.WithAttributes(attribute.String("dashboard.view", view)))
	defer span.End()

	table, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.processor.Process(table, sel)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	s.metrics.RecordRender(ctx, view, len(result.Records), time.Since(start))
	span.SetAttributes(
		attribute.Int("dashboard.rows", len(result.Records)),
		attribute.Int("dashboard.year", result.Options.SelectedYear),
	)
	s.logger.DebugContext(ctx, "dashboard rendered",
		slog.String("view", view),
		slog.Int("derived_rows", result.DerivedRows),
		slog.Int("rows", len(result.Records)))

	return result, nil
}

// Filters returns the options each filter stage offers for sel
func (s *DashboardService) Filters(ctx context.Context, sel dataprocessing.Selection) (domain.FilterOptions, error) {
	result, err := s.run(ctx, ViewFilters, sel)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return result.Options, nil
}

// Dashboard computes every aggregate for sel
func (s *DashboardService) Dashboard(ctx context.Context, sel dataprocessing.Selection) (*DashboardView, error) {
	result, err := s.run(ctx, ViewJSON, sel)
	if err != nil {
		return nil, err
	}
	return &DashboardView{
		Filters: result.Options,
		Summary: dashboard.Summarize(result.Records, s.options),
	}, nil
}

// RenderHTML renders the full dashboard page for sel
func (s *DashboardService) RenderHTML(ctx context.Context, sel dataprocessing.Selection) ([]byte, error) {
	result, err := s.run(ctx, ViewHTML, sel)
	if err != nil {
		return nil, err
	}

	page := s.page
	page.Filters = result.Options

	var buf bytes.Buffer
	if err := dashboard.RenderPage(&buf, dashboard.Summarize(result.Records, s.options), page); err != nil {
		return nil, apperrors.NewRenderError("failed to render dashboard page", err)
	}
	return buf.Bytes(), nil
}

// Orders returns the row-level table view for sel
func (s *DashboardService) Orders(ctx context.Context, view string, sel dataprocessing.Selection) ([]domain.OrderRow, error) {
	result, err := s.run(ctx, view, sel)
	if err != nil {
		return nil, err
	}
	return dashboard.Rows(result.Records), nil
}

// ExportCSV writes the order table for sel as CSV with a UTF-8 BOM
func (s *DashboardService) ExportCSV(ctx context.Context, w io.Writer, sel dataprocessing.Selection) error {
	rows, err := s.Orders(ctx, ViewCSV, sel)
	if err != nil {
		return err
	}
	err = exporter.Encode(w, exporter.WriteOptions{
		Headers:   s.headers,
		Records:   exporter.OrderRecords(rows),
		BOMPrefix: true,
	})
	if err != nil {
		return apperrors.NewExportError("failed to write csv export", err)
	}
	return nil
}

// ExportXLSX writes the order table for sel as an Excel workbook
func (s *DashboardService) ExportXLSX(ctx context.Context, w io.Writer, sel dataprocessing.Selection) error {
	rows, err := s.Orders(ctx, ViewXLSX, sel)
	if err != nil {
		return err
	}
	if err := exporter.WriteWorkbook(w, exporter.DefaultSheetName, s.headers, rows); err != nil {
		return apperrors.NewExportError("failed to write workbook export", err)
	}
	return nil
}
