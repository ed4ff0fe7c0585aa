package charts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"metadash/internal/config"
	"metadash/internal/dataprocessing"
	apperrors "metadash/internal/errors"
	"metadash/internal/infrastructure"
)

// DrawFunc writes one chart to w
type DrawFunc func(w io.Writer) error

// Artifact is a named chart of the batch report
type Artifact struct {
	Name string
	Draw DrawFunc
}

// ReportArtifacts returns the six batch charts of a summary, in report order
func ReportArtifacts(summary dataprocessing.Summary, wordCloud WordCloudOptions) []Artifact {
	return []Artifact{
		{config.ArtifactYearTrend, func(w io.Writer) error {
			return YearTrendPNG(w, summary.YearCounts)
		}},
		{config.ArtifactHeatmap, func(w io.Writer) error {
			return HeatmapPNG(w, "Publications Heatmap (Year vs Month)", summary.YearMonth)
		}},
		{config.ArtifactJournals, func(w io.Writer) error {
			return RankingPNG(w, "Top Journals Publishing COVID-19 Research", "Number of Papers",
				summary.TopJournals, config.JournalLabelWidth)
		}},
		{config.ArtifactSources, func(w io.Writer) error {
			return RankingPNG(w, "Top Sources of Papers", "Number of Papers", summary.TopSources, 0)
		}},
		{config.ArtifactWordCloud, func(w io.Writer) error {
			return WordCloudPNG(w, summary.Words, wordCloud)
		}},
		{config.ArtifactCumulative, func(w io.Writer) error {
			return CumulativePNG(w, summary.Timeline)
		}},
	}
}

// Renderer runs draw functions with tracing, metrics and error typing
type Renderer struct {
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewRenderer creates a renderer. A nil metrics value disables recording.
func NewRenderer(logger *slog.Logger, metrics *infrastructure.Metrics) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		logger:  logger.With(slog.String("component", "renderer")),
		metrics: metrics,
	}
}

// Render draws a chart into memory and copies it to w only when drawing
// succeeded. Failures are returned as RENDER errors naming the chart.
func (r *Renderer) Render(ctx context.Context, name, format string, w io.Writer, draw DrawFunc) error {
	ctx, span := infrastructure.StartSpan(ctx, "render."+name,
		attribute.String("chart", name),
		attribute.String("format", format))
	defer span.End()

	start := time.Now()
	var buf bytes.Buffer
	err := draw(&buf)
	r.metrics.RecordRender(ctx, name, format, time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return apperrors.NewRenderError(fmt.Sprintf("failed to render %s", name), err).
			WithContext("chart", name)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return apperrors.NewRenderError(fmt.Sprintf("failed to write %s", name), err).
			WithContext("chart", name)
	}

	r.logger.DebugContext(ctx, "chart rendered",
		slog.String("chart", name),
		slog.String("format", format),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// WriteFile renders a chart to path, replacing any previous file. Nothing
// is written when drawing fails.
func (r *Renderer) WriteFile(ctx context.Context, path string, draw DrawFunc) error {
	name := filepath.Base(path)

	var buf bytes.Buffer
	if err := r.Render(ctx, name, pngFormat, &buf, draw); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return apperrors.NewStorageError("failed to write chart file", err).
			WithContext("path", path)
	}

	r.logger.InfoContext(ctx, "chart saved",
		slog.String("chart", name),
		slog.String("path", path),
		slog.Int("bytes", buf.Len()))
	return nil
}
