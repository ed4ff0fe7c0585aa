package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the application instruments
type Metrics struct {
	// Pipeline metrics
	RowsLoaded    metric.Int64Counter
	RowsDropped   metric.Int64Counter
	RowsKept      metric.Int64Counter
	StageDuration metric.Float64Histogram

	// Rendering metrics
	ChartsRendered metric.Int64Counter
	RenderDuration metric.Float64Histogram
	RenderErrors   metric.Int64Counter

	// Dataset cache metrics
	CacheHits   metric.Int64Counter
	CacheMisses metric.Int64Counter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter
}

// NewMetrics creates every instrument on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.RowsLoaded, err = meter.Int64Counter(
		"dataset_rows_loaded_total",
		metric.WithDescription("Raw rows read from the metadata CSV"),
	); err != nil {
		return nil, err
	}
	if m.RowsDropped, err = meter.Int64Counter(
		"dataset_rows_dropped_total",
		metric.WithDescription("Rows removed by cleaning, by reason"),
	); err != nil {
		return nil, err
	}
	if m.RowsKept, err = meter.Int64Counter(
		"dataset_rows_kept_total",
		metric.WithDescription("Rows that survived cleaning"),
	); err != nil {
		return nil, err
	}
	if m.StageDuration, err = meter.Float64Histogram(
		"pipeline_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.ChartsRendered, err = meter.Int64Counter(
		"charts_rendered_total",
		metric.WithDescription("Charts rendered, by chart and format"),
	); err != nil {
		return nil, err
	}
	if m.RenderDuration, err = meter.Float64Histogram(
		"chart_render_duration_seconds",
		metric.WithDescription("Chart render duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.RenderErrors, err = meter.Int64Counter(
		"chart_render_errors_total",
		metric.WithDescription("Chart renders that failed"),
	); err != nil {
		return nil, err
	}

	if m.CacheHits, err = meter.Int64Counter(
		"dataset_cache_hits_total",
		metric.WithDescription("Dataset requests served from memory"),
	); err != nil {
		return nil, err
	}
	if m.CacheMisses, err = meter.Int64Counter(
		"dataset_cache_misses_total",
		metric.WithDescription("Dataset requests that triggered a load"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// NoopMetrics returns instruments bound to the global meter provider, which
// discards everything until a real provider is installed.
func NoopMetrics() *Metrics {
	m, err := NewMetrics(otel.Meter(InstrumentationName))
	if err != nil {
		// the global meter never fails instrument creation
		panic(err)
	}
	return m
}

// RecordClean records the outcome of one cleaning pass
func (m *Metrics) RecordClean(ctx context.Context, raw, droppedMissing, droppedUnparsable, kept int) {
	if m == nil {
		return
	}
	m.RowsLoaded.Add(ctx, int64(raw))
	m.RowsDropped.Add(ctx, int64(droppedMissing), metric.WithAttributes(attribute.String("reason", "missing_field")))
	m.RowsDropped.Add(ctx, int64(droppedUnparsable), metric.WithAttributes(attribute.String("reason", "unparsable_date")))
	m.RowsKept.Add(ctx, int64(kept))
}

// RecordStage records the duration of one pipeline stage
func (m *Metrics) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordRender records one chart render
func (m *Metrics) RecordRender(ctx context.Context, chart, format string, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("chart", chart),
		attribute.String("format", format),
	)
	if err != nil {
		m.RenderErrors.Add(ctx, 1, attrs)
		return
	}
	m.ChartsRendered.Add(ctx, 1, attrs)
	m.RenderDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordCache records a dataset cache lookup
func (m *Metrics) RecordCache(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Add(ctx, 1)
		return
	}
	m.CacheMisses.Add(ctx, 1)
}
