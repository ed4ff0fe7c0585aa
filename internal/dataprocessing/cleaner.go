package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "metadash/internal/errors"
	"metadash/pkg/contracts/domain"
)

// ErrMissingColumn is wrapped by Clean when the table lacks a required column
var ErrMissingColumn = errors.New("required column missing")

// Clean projects the table onto the used columns and returns the papers that
// have a title and a parseable publication date, with derived fields set.
// Every raw row is accounted for in the report.
func Clean(ctx context.Context, table *Table) ([]domain.Paper, domain.CleanReport, error) {
	var report domain.CleanReport
	if table == nil {
		return nil, report, apperrors.NewInputError("no table to clean", nil)
	}

	idx := make(map[string]int, len(domain.RequiredColumns))
	for _, col := range domain.RequiredColumns {
		i := table.ColumnIndex(col)
		if i < 0 {
			return nil, report, apperrors.NewInputError(fmt.Sprintf("column %q not found", col), ErrMissingColumn).
				WithContext("column", col)
		}
		idx[col] = i
	}

	report.RawRows = table.NumRows()
	papers := make([]domain.Paper, 0, table.NumRows())

	for row := 0; row < table.NumRows(); row++ {
		if row%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, domain.CleanReport{}, err
			}
		}

		rec := domain.Record{
			Title:       table.Cell(row, idx[domain.ColumnTitle]),
			Abstract:    table.Cell(row, idx[domain.ColumnAbstract]),
			PublishTime: table.Cell(row, idx[domain.ColumnPublishTime]),
			Authors:     table.Cell(row, idx[domain.ColumnAuthors]),
			Journal:     table.Cell(row, idx[domain.ColumnJournal]),
			Source:      table.Cell(row, idx[domain.ColumnSource]),
		}

		if table.Missing(row, idx[domain.ColumnTitle]) || table.Missing(row, idx[domain.ColumnPublishTime]) {
			report.DroppedMissing++
			continue
		}

		published, ok := ParsePublishTime(rec.PublishTime)
		if !ok {
			report.DroppedUnparsable++
			continue
		}

		papers = append(papers, NewPaper(rec, published))
	}

	report.Kept = len(papers)
	return papers, report, nil
}

// NewPaper derives the computed fields of a record with a parsed date.
// Null text fields arrive as "".
func NewPaper(rec domain.Record, published time.Time) domain.Paper {
	return domain.Paper{
		Title:             rec.Title,
		Abstract:          rec.Abstract,
		PublishedAt:       published,
		Authors:           rec.Authors,
		Journal:           strings.TrimSpace(rec.Journal),
		Source:            strings.TrimSpace(rec.Source),
		Year:              published.Year(),
		Month:             int(published.Month()),
		AbstractWordCount: len(strings.Fields(rec.Abstract)),
	}
}
