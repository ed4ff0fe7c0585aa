package services

import (
	"context"
	"log/slog"

	"metadash/internal/dataprocessing"
	"metadash/internal/infrastructure"
	"metadash/internal/validation"
	"metadash/pkg/contracts/domain"
)

// Exploration is the console report of a raw table and its cleaning
type Exploration struct {
	Source  string                 `json:"source"`
	Profile dataprocessing.Profile `json:"profile"`
	Header  []string               `json:"header"`
	Head    [][]string             `json:"head"`
	Report  domain.CleanReport     `json:"clean_report"`
	Papers  []domain.Paper         `json:"-"`
}

// ExploreService profiles the raw dataset before and after cleaning
type ExploreService struct {
	validator *validation.FileValidator
	logger    *slog.Logger
	headRows  int
}

// NewExploreService creates an explore service showing headRows preview rows
func NewExploreService(logger *slog.Logger, headRows int) *ExploreService {
	if logger == nil {
		logger = slog.Default()
	}
	if headRows <= 0 {
		headRows = 5
	}
	return &ExploreService{
		validator: validation.NewFileValidator(logger),
		logger:    infrastructure.WithComponent(logger, "explore_service"),
		headRows:  headRows,
	}
}

// Explore loads at most maxRows rows of path, profiles them and cleans them
func (s *ExploreService) Explore(ctx context.Context, path string, maxRows int) (*Exploration, error) {
	ctx = infrastructure.EnsureTraceID(ctx)

	if err := s.validator.ValidateCSVFile(path); err != nil {
		return nil, err
	}

	table, err := dataprocessing.LoadCSV(ctx, path, maxRows)
	if err != nil {
		return nil, err
	}

	papers, report, err := dataprocessing.Clean(ctx, table)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "dataset explored",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumColumns()),
		slog.Int("kept", report.Kept))

	return &Exploration{
		Source:  path,
		Profile: dataprocessing.ProfileTable(table),
		Header:  append([]string(nil), table.Header...),
		Head:    table.Head(s.headRows),
		Report:  report,
		Papers:  papers,
	}, nil
}
