package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"metadash/internal/infrastructure"
	"metadash/pkg/contracts/domain"
)

// Summarizer computes every aggregate view of a set of papers in one pass
// over the aggregation functions.
type Summarizer struct {
	logger      *slog.Logger
	metrics     *infrastructure.Metrics
	minYear     int
	topJournals int
	topSources  int
	maxWords    int
}

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	MinYear     int // years <= MinYear are left out of the year series and year×month grid
	TopJournals int
	TopSources  int
	MaxWords    int
}

// Summary holds the aggregate views of one set of papers
type Summary struct {
	Total       int                    `json:"total"`
	YearCounts  []domain.YearCount     `json:"year_counts"`
	YearMonth   domain.CountGrid       `json:"year_month"`
	JournalYear domain.CountGrid       `json:"journal_year"`
	TopJournals []domain.RankedCount   `json:"top_journals"`
	TopSources  []domain.RankedCount   `json:"top_sources"`
	Words       []domain.WordFrequency `json:"words"`
	Timeline    []domain.TimelinePoint `json:"-"`
}

// NewSummarizer creates a summarizer, filling unset limits with defaults
func NewSummarizer(logger *slog.Logger, metrics *infrastructure.Metrics, config SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TopJournals <= 0 {
		config.TopJournals = 15
	}
	if config.TopSources <= 0 {
		config.TopSources = 12
	}
	if config.MaxWords <= 0 {
		config.MaxWords = DefaultMaxWords
	}

	return &Summarizer{
		logger:      logger.With(slog.String("component", "summarizer")),
		metrics:     metrics,
		minYear:     config.MinYear,
		topJournals: config.TopJournals,
		topSources:  config.TopSources,
		maxWords:    config.MaxWords,
	}
}

// Summarize computes every view of papers
func (s *Summarizer) Summarize(ctx context.Context, papers []domain.Paper) Summary {
	ctx, span := infrastructure.StartSpan(ctx, "pipeline.aggregate")
	defer span.End()

	start := time.Now()
	summary := Summary{
		Total:       len(papers),
		YearCounts:  YearCounts(papers, s.minYear),
		YearMonth:   YearMonthCounts(papers, s.minYear),
		JournalYear: JournalYearCounts(papers),
		TopJournals: TopJournals(papers, s.topJournals),
		TopSources:  TopSources(papers, s.topSources),
		Words:       WordFrequencies(papers, s.maxWords),
		Timeline:    CumulativeTimeline(papers),
	}
	s.metrics.RecordStage(ctx, "aggregate", time.Since(start))

	s.logger.DebugContext(ctx, "aggregates computed",
		slog.Int("papers", summary.Total),
		slog.Int("years", len(summary.YearCounts)),
		slog.Int("journals", len(summary.JournalYear.RowLabels)),
		slog.Int("words", len(summary.Words)))
	return summary
}
