package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"metadash/internal/charts"
	"metadash/internal/config"
	"metadash/internal/dataprocessing"
	"metadash/internal/infrastructure"
	"metadash/internal/operations"
	"metadash/internal/validation"
	"metadash/pkg/contracts/domain"
)

// ReportOptions configures one batch report run
type ReportOptions struct {
	MaxRows   int
	MinYear   int
	MaxWords  int
	WordCloud charts.WordCloudOptions
}

// ReportResult describes a finished batch run
type ReportResult struct {
	OperationID string                   `json:"operation_id"`
	Status      string                   `json:"status"`
	Report      domain.CleanReport       `json:"clean_report"`
	Artifacts   []string                 `json:"artifacts"`
	Steps       []operations.StepSummary `json:"steps"`
	Duration    time.Duration            `json:"duration"`
}

// ReportService runs the batch reporter: load once, clean, then render every
// artifact in order into the output directory
type ReportService struct {
	paths     *config.Paths
	options   ReportOptions
	pipeline  *dataprocessing.Pipeline
	renderer  *charts.Renderer
	validator *validation.FileValidator
	logger    *slog.Logger
	metrics   *infrastructure.Metrics
}

// NewReportService creates a report service
func NewReportService(paths *config.Paths, options ReportOptions, logger *slog.Logger, metrics *infrastructure.Metrics) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	if options.WordCloud.Width == 0 {
		options.WordCloud = charts.DefaultWordCloudOptions()
	}
	return &ReportService{
		paths:     paths,
		options:   options,
		pipeline:  dataprocessing.NewPipeline(logger, metrics),
		renderer:  charts.NewRenderer(logger, metrics),
		validator: validation.NewFileValidator(logger),
		logger:    infrastructure.WithComponent(logger, "report_service"),
		metrics:   metrics,
	}
}

// Run executes the report. Input errors abort before anything is written; a
// render failure stops the remaining steps and is returned as an
// *operations.OperationError. The result is nil only when loading failed.
func (s *ReportService) Run(ctx context.Context) (*ReportResult, error) {
	if err := s.validator.ValidateCSVFile(s.paths.DataFile); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateOutputDirectory(s.paths.OutputDir); err != nil {
		return nil, err
	}

	operationID := uuid.New().String()
	ctx = infrastructure.WithTraceID(ctx, operationID)

	dataset, err := s.pipeline.Run(ctx, s.paths.DataFile, s.options.MaxRows)
	if err != nil {
		return nil, err
	}

	summarizer := dataprocessing.NewSummarizer(s.logger, s.metrics, dataprocessing.SummarizerConfig{
		MinYear:     s.options.MinYear,
		TopJournals: config.TopJournalsLimit,
		TopSources:  config.TopSourcesLimit,
		MaxWords:    s.options.MaxWords,
	})
	summary := summarizer.Summarize(ctx, dataset.Papers)

	artifacts := charts.ReportArtifacts(summary, s.options.WordCloud)
	manager := operations.NewManager(operations.OperationReport, s.logger)
	for _, step := range operations.ChartSteps(artifacts, s.paths, s.renderer) {
		if err := manager.RegisterStep(step); err != nil {
			return nil, err
		}
	}

	state, runErr := manager.Execute(ctx, operationID)

	result := &ReportResult{
		OperationID: operationID,
		Status:      string(state.GetStatus()),
		Report:      dataset.Report,
		Steps:       state.Summaries(),
		Duration:    state.Duration(),
	}
	for _, step := range manager.Steps() {
		if st := state.GetStep(step.ID()); st != nil && st.GetStatus() == operations.StepStatusCompleted {
			result.Artifacts = append(result.Artifacts, s.paths.ArtifactPath(step.Name()))
		}
	}

	if runErr != nil {
		return result, runErr
	}

	s.logger.InfoContext(ctx, "report written",
		slog.String("operation_id", operationID),
		slog.String("output_dir", s.paths.OutputDir),
		slog.Int("artifacts", len(result.Artifacts)),
		slog.Duration("duration", result.Duration))
	return result, nil
}
