package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"metadash/internal/infrastructure"
	"metadash/pkg/contracts/domain"
)

// Dataset is a cleaned, immutable snapshot of the source file
type Dataset struct {
	Source   string             `json:"source"`
	MaxRows  int                `json:"max_rows"`
	Papers   []domain.Paper     `json:"-"`
	Report   domain.CleanReport `json:"clean_report"`
	LoadedAt time.Time          `json:"loaded_at"`
}

// Pipeline runs load and clean with logging, tracing and metrics
type Pipeline struct {
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewPipeline creates a pipeline. A nil metrics value disables recording.
func NewPipeline(logger *slog.Logger, metrics *infrastructure.Metrics) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:  logger.With(slog.String("component", "pipeline")),
		metrics: metrics,
	}
}

// Run loads at most maxRows rows of path and cleans them
func (p *Pipeline) Run(ctx context.Context, path string, maxRows int) (*Dataset, error) {
	ctx, span := infrastructure.StartSpan(ctx, "pipeline.run",
		attribute.String("dataset.path", path),
		attribute.Int("dataset.max_rows", maxRows))
	defer span.End()

	table, err := p.load(ctx, path, maxRows)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		p.logger.ErrorContext(ctx, "failed to load dataset",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	papers, report, err := p.clean(ctx, table)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		p.logger.ErrorContext(ctx, "failed to clean dataset",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	span.SetAttributes(attribute.Int("dataset.kept", report.Kept))

	return &Dataset{
		Source:   path,
		MaxRows:  maxRows,
		Papers:   papers,
		Report:   report,
		LoadedAt: time.Now(),
	}, nil
}

func (p *Pipeline) load(ctx context.Context, path string, maxRows int) (*Table, error) {
	ctx, span := infrastructure.StartSpan(ctx, "pipeline.load")
	defer span.End()

	start := time.Now()
	table, err := LoadCSV(ctx, path, maxRows)
	p.metrics.RecordStage(ctx, "load", time.Since(start))
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("rows", table.NumRows()))
	p.logger.DebugContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumColumns()),
		slog.Duration("duration", time.Since(start)))
	return table, nil
}

func (p *Pipeline) clean(ctx context.Context, table *Table) ([]domain.Paper, domain.CleanReport, error) {
	ctx, span := infrastructure.StartSpan(ctx, "pipeline.clean")
	defer span.End()

	start := time.Now()
	papers, report, err := Clean(ctx, table)
	p.metrics.RecordStage(ctx, "clean", time.Since(start))
	if err != nil {
		return nil, report, err
	}

	p.metrics.RecordClean(ctx, report.RawRows, report.DroppedMissing, report.DroppedUnparsable, report.Kept)
	p.logger.InfoContext(ctx, "dataset cleaned",
		slog.Int("raw_rows", report.RawRows),
		slog.Int("dropped_missing", report.DroppedMissing),
		slog.Int("dropped_unparsable_date", report.DroppedUnparsable),
		slog.Int("kept", report.Kept))
	return papers, report, nil
}
