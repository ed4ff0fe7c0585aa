package domain

import (
	"time"
)

// YearCount is one point of the publications-per-year series.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// RankedCount is one entry of a top-N ranking.
type RankedCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WordFrequency is one term of the title word cloud.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TimelinePoint is one step of the cumulative publication curve.
type TimelinePoint struct {
	Time       time.Time `json:"time"`
	Cumulative int       `json:"cumulative"`
}

// CountGrid is a zero-filled two-dimensional count table.
// Counts[r][c] is the count for RowLabels[r] and ColumnLabels[c].
type CountGrid struct {
	RowLabels    []string `json:"rows"`
	ColumnLabels []string `json:"columns"`
	Counts       [][]int  `json:"counts"`
}

// Max returns the largest cell value, or 0 for an empty grid.
func (g CountGrid) Max() int {
	max := 0
	for _, row := range g.Counts {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// Total returns the sum of all cells.
func (g CountGrid) Total() int {
	total := 0
	for _, row := range g.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Empty reports whether the grid has no rows or no columns.
func (g CountGrid) Empty() bool {
	return len(g.RowLabels) == 0 || len(g.ColumnLabels) == 0
}
