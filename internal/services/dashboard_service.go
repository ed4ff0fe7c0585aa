package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"metadash/internal/charts"
	"metadash/internal/dataprocessing"
	apperrors "metadash/internal/errors"
	"metadash/internal/exporter"
	"metadash/internal/infrastructure"
	"metadash/pkg/contracts/domain"
)

// Interactive chart names served by the dashboard
const (
	ChartYear      = "year"
	ChartHeatmap   = "heatmap"
	ChartWordCloud = "wordcloud"
)

// DashboardCharts lists the interactive charts in page order
var DashboardCharts = []string{ChartYear, ChartHeatmap, ChartWordCloud}

// DatasetProvider returns the memoized cleaned dataset
type DatasetProvider interface {
	Get(ctx context.Context, path string, maxRows int) (*dataprocessing.Dataset, error)
	Invalidate()
	Cached() *dataprocessing.Dataset
}

// DashboardConfig configures the dashboard views
type DashboardConfig struct {
	DataPath    string
	MaxRows     int
	PreviewRows int
	MaxWords    int
	AssetsHost  string
}

// View is everything the dashboard page shows for one filter
type View struct {
	Filter   dataprocessing.Filter  `json:"filter"`
	YearMin  int                    `json:"year_min"`
	YearMax  int                    `json:"year_max"`
	Journals []string               `json:"journals"`
	Total    int                    `json:"total"`
	Matched  int                    `json:"matched"`
	Preview  []domain.Paper         `json:"preview"`
	Summary  dataprocessing.Summary `json:"summary"`
	Report   domain.CleanReport     `json:"clean_report"`
	LoadedAt time.Time              `json:"loaded_at"`
}

// DashboardService recomputes every dashboard view from the cached dataset
type DashboardService struct {
	datasets   DatasetProvider
	summarizer *dataprocessing.Summarizer
	renderer   *charts.Renderer
	config     DashboardConfig
	logger     *slog.Logger
}

// NewDashboardService creates a dashboard service
func NewDashboardService(datasets DatasetProvider, renderer *charts.Renderer, cfg DashboardConfig, logger *slog.Logger, metrics *infrastructure.Metrics) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = 5
	}
	return &DashboardService{
		datasets: datasets,
		summarizer: dataprocessing.NewSummarizer(logger, metrics, dataprocessing.SummarizerConfig{
			MaxWords: cfg.MaxWords,
		}),
		renderer: renderer,
		config:   cfg,
		logger:   infrastructure.WithComponent(logger, "dashboard_service"),
	}
}

// dataset loads or reuses the cleaned dataset
func (s *DashboardService) dataset(ctx context.Context) (*dataprocessing.Dataset, error) {
	return s.datasets.Get(ctx, s.config.DataPath, s.config.MaxRows)
}

// Resolve fills open year bounds with the dataset's range. Explicit bounds
// are kept as given so a range outside the data selects nothing.
func Resolve(filter dataprocessing.Filter, papers []domain.Paper) dataprocessing.Filter {
	min, max, ok := dataprocessing.YearBounds(papers)
	if !ok {
		return filter
	}
	if filter.YearFrom == 0 {
		filter.YearFrom = min
	}
	if filter.YearTo == 0 {
		filter.YearTo = max
	}
	if filter.Journal == "" {
		filter.Journal = dataprocessing.AllJournals
	}
	return filter
}

// Filtered returns the papers matching filter and the resolved filter
func (s *DashboardService) Filtered(ctx context.Context, filter dataprocessing.Filter) ([]domain.Paper, dataprocessing.Filter, *dataprocessing.Dataset, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, filter, nil, err
	}
	resolved := Resolve(filter, ds.Papers)
	return resolved.Apply(ds.Papers), resolved, ds, nil
}

// View computes the page model for filter
func (s *DashboardService) View(ctx context.Context, filter dataprocessing.Filter) (*View, error) {
	papers, resolved, ds, err := s.Filtered(ctx, filter)
	if err != nil {
		return nil, err
	}

	min, max, _ := dataprocessing.YearBounds(ds.Papers)
	view := &View{
		Filter:   resolved,
		YearMin:  min,
		YearMax:  max,
		Journals: dataprocessing.Journals(ds.Papers),
		Total:    len(ds.Papers),
		Matched:  len(papers),
		Preview:  dataprocessing.Head(papers, s.config.PreviewRows),
		Summary:  s.summarizer.Summarize(ctx, papers),
		Report:   ds.Report,
		LoadedAt: ds.LoadedAt,
	}

	s.logger.DebugContext(ctx, "view computed",
		slog.Int("year_from", resolved.YearFrom),
		slog.Int("year_to", resolved.YearTo),
		slog.String("journal", resolved.Journal),
		slog.Int("matched", view.Matched))
	return view, nil
}

// RenderChart writes the named interactive chart page for filter to w
func (s *DashboardService) RenderChart(ctx context.Context, name string, filter dataprocessing.Filter, w io.Writer) error {
	var draw func(dataprocessing.Summary) charts.DrawFunc
	page := charts.PageOptions{AssetsHost: s.config.AssetsHost}

	switch name {
	case ChartYear:
		draw = func(sum dataprocessing.Summary) charts.DrawFunc {
			return func(w io.Writer) error { return charts.YearBarHTML(w, sum.YearCounts, page) }
		}
	case ChartHeatmap:
		draw = func(sum dataprocessing.Summary) charts.DrawFunc {
			return func(w io.Writer) error { return charts.JournalHeatmapHTML(w, sum.JournalYear, page) }
		}
	case ChartWordCloud:
		draw = func(sum dataprocessing.Summary) charts.DrawFunc {
			return func(w io.Writer) error { return charts.WordCloudHTML(w, sum.Words, page) }
		}
	default:
		return apperrors.NewNotFoundError(fmt.Sprintf("chart %q", name), ErrUnknownChart).
			WithContext("chart", name)
	}

	papers, _, _, err := s.Filtered(ctx, filter)
	if err != nil {
		return err
	}
	summary := s.summarizer.Summarize(ctx, papers)
	return s.renderer.Render(ctx, name, "html", w, draw(summary))
}

// ExportCSV writes the filtered papers as CSV
func (s *DashboardService) ExportCSV(ctx context.Context, filter dataprocessing.Filter, w io.Writer) error {
	papers, _, _, err := s.Filtered(ctx, filter)
	if err != nil {
		return err
	}
	if err := exporter.PapersCSV(w, papers); err != nil {
		return apperrors.NewStorageError("failed to write csv export", err)
	}
	s.logger.InfoContext(ctx, "csv export written", slog.Int("rows", len(papers)))
	return nil
}

// ExportXLSX writes the filtered papers as a workbook
func (s *DashboardService) ExportXLSX(ctx context.Context, filter dataprocessing.Filter, w io.Writer) error {
	papers, _, _, err := s.Filtered(ctx, filter)
	if err != nil {
		return err
	}
	if err := exporter.PapersXLSX(w, papers); err != nil {
		return apperrors.NewStorageError("failed to write xlsx export", err)
	}
	s.logger.InfoContext(ctx, "xlsx export written", slog.Int("rows", len(papers)))
	return nil
}

// Reload drops the cached dataset and loads it again
func (s *DashboardService) Reload(ctx context.Context) (*dataprocessing.Dataset, error) {
	s.datasets.Invalidate()
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "dataset reloaded",
		slog.Int("kept", ds.Report.Kept),
		slog.Time("loaded_at", ds.LoadedAt))
	return ds, nil
}
