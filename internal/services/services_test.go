package services

import (
	"time"

	"metadash/pkg/contracts/domain"
)

func testPapers(years ...int) []domain.Paper {
	papers := make([]domain.Paper, len(years))
	for i, y := range years {
		published := time.Date(y, time.March, 1, 0, 0, 0, 0, time.UTC)
		papers[i] = domain.Paper{
			Title:       "paper",
			PublishedAt: published,
			Year:        y,
			Month:       3,
		}
	}
	return papers
}
