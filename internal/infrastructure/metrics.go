package infrastructure

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Load outcomes reported by RecordLoad
const (
	OutcomeSuccess     = "success"
	OutcomeLoadError   = "load_error"
	OutcomeSchemaError = "schema_error"
)

// PipelineMetrics holds the dashboard instruments
type PipelineMetrics struct {
	DatasetLoads   metric.Int64Counter
	DatasetRows    metric.Int64Gauge
	LoadDuration   metric.Float64Histogram
	Renders        metric.Int64Counter
	RenderDuration metric.Float64Histogram
	FilteredRows   metric.Int64Histogram
	HTTPRequests   metric.Int64Counter
	HTTPDuration   metric.Float64Histogram
}

// NewPipelineMetrics creates the instruments on meter; a nil meter yields no-op instruments
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(MeterName)
	}

	var (
		m   PipelineMetrics
		err error
	)

	if m.DatasetLoads, err = meter.Int64Counter(
		"pulse_dataset_loads",
		metric.WithDescription("Dataset load attempts by outcome"),
	); err != nil {
		return nil, err
	}

	if m.DatasetRows, err = meter.Int64Gauge(
		"pulse_dataset_rows",
		metric.WithDescription("Rows in the cached raw dataset"),
	); err != nil {
		return nil, err
	}

	if m.LoadDuration, err = meter.Float64Histogram(
		"pulse_dataset_load_duration",
		metric.WithDescription("Time spent reading the dataset file"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.Renders, err = meter.Int64Counter(
		"pulse_dashboard_renders",
		metric.WithDescription("Dashboard renders by view"),
	); err != nil {
		return nil, err
	}

	if m.RenderDuration, err = meter.Float64Histogram(
		"pulse_dashboard_render_duration",
		metric.WithDescription("Time spent in validate, derive, filter and aggregate"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.FilteredRows, err = meter.Int64Histogram(
		"pulse_dashboard_filtered_rows",
		metric.WithDescription("Rows left after filtering"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequests, err = meter.Int64Counter(
		"pulse_http_requests",
		metric.WithDescription("HTTP requests by method, route and status"),
	); err != nil {
		return nil, err
	}

	if m.HTTPDuration, err = meter.Float64Histogram(
		"pulse_http_request_duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

// RecordLoad records one dataset load attempt
func (m *PipelineMetrics) RecordLoad(ctx context.Context, outcome string, rows int, d time.Duration) {
	if m == nil {
		return
	}
	m.DatasetLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.LoadDuration.Record(ctx, d.Seconds())
	m.DatasetRows.Record(ctx, int64(rows))
}

// RecordRender records one pipeline run for a view (json, html, csv, xlsx)
func (m *PipelineMetrics) RecordRender(ctx context.Context, view string, rows int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("view", view))
	m.Renders.Add(ctx, 1, attrs)
	m.RenderDuration.Record(ctx, d.Seconds(), attrs)
	m.FilteredRows.Record(ctx, int64(rows), attrs)
}

// RecordHTTPRequest records a served request
func (m *PipelineMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.HTTPRequests.Add(ctx, 1, attrs)
	m.HTTPDuration.Record(ctx, d.Seconds(), attrs)
}
