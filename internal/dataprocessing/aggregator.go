package dataprocessing

import (
	"sort"
	"strconv"
	"unicode/utf8"

	"metadash/pkg/contracts/domain"
)

// MonthLabels are the column labels of the year×month grid
var MonthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// YearCounts counts papers per year, ascending, keeping only years greater
// than minYearExclusive. Pass 0 to keep every year.
func YearCounts(papers []domain.Paper, minYearExclusive int) []domain.YearCount {
	counts := make(map[int]int)
	for _, p := range papers {
		if p.Year > minYearExclusive {
			counts[p.Year]++
		}
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]domain.YearCount, len(years))
	for i, y := range years {
		out[i] = domain.YearCount{Year: y, Count: counts[y]}
	}
	return out
}

// YearMonthCounts builds a zero-filled grid with one row per year (ascending,
// greater than minYearExclusive) and twelve month columns.
func YearMonthCounts(papers []domain.Paper, minYearExclusive int) domain.CountGrid {
	years := YearCounts(papers, minYearExclusive)
	rowOf := make(map[int]int, len(years))
	grid := domain.CountGrid{
		RowLabels:    make([]string, len(years)),
		ColumnLabels: append([]string(nil), MonthLabels...),
		Counts:       make([][]int, len(years)),
	}
	for i, yc := range years {
		rowOf[yc.Year] = i
		grid.RowLabels[i] = strconv.Itoa(yc.Year)
		grid.Counts[i] = make([]int, len(MonthLabels))
	}

	for _, p := range papers {
		row, ok := rowOf[p.Year]
		if !ok || p.Month < 1 || p.Month > 12 {
			continue
		}
		grid.Counts[row][p.Month-1]++
	}
	return grid
}

// JournalYearCounts builds a zero-filled journal×year grid. Journals are
// sorted by name, years ascend; papers without a journal are skipped.
func JournalYearCounts(papers []domain.Paper) domain.CountGrid {
	journalSet := make(map[string]struct{})
	yearSet := make(map[int]struct{})
	for _, p := range papers {
		if p.Journal == "" {
			continue
		}
		journalSet[p.Journal] = struct{}{}
		yearSet[p.Year] = struct{}{}
	}

	journals := make([]string, 0, len(journalSet))
	for j := range journalSet {
		journals = append(journals, j)
	}
	sort.Strings(journals)

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	rowOf := make(map[string]int, len(journals))
	colOf := make(map[int]int, len(years))
	grid := domain.CountGrid{
		RowLabels:    journals,
		ColumnLabels: make([]string, len(years)),
		Counts:       make([][]int, len(journals)),
	}
	for i, j := range journals {
		rowOf[j] = i
		grid.Counts[i] = make([]int, len(years))
	}
	for i, y := range years {
		colOf[y] = i
		grid.ColumnLabels[i] = strconv.Itoa(y)
	}

	for _, p := range papers {
		if p.Journal == "" {
			continue
		}
		grid.Counts[rowOf[p.Journal]][colOf[p.Year]]++
	}
	return grid
}

// TopN counts the non-empty keys of papers and returns the n most frequent,
// highest first. Equal counts keep the order of first appearance.
func TopN(papers []domain.Paper, key func(domain.Paper) string, n int) []domain.RankedCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range papers {
		k := key(p)
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	ranked := make([]domain.RankedCount, len(order))
	for i, k := range order {
		ranked[i] = domain.RankedCount{Label: k, Count: counts[k]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopJournals ranks journals by paper count
func TopJournals(papers []domain.Paper, n int) []domain.RankedCount {
	return TopN(papers, func(p domain.Paper) string { return p.Journal }, n)
}

// TopSources ranks source labels by paper count
func TopSources(papers []domain.Paper, n int) []domain.RankedCount {
	return TopN(papers, func(p domain.Paper) string { return p.Source }, n)
}

// ShortenLabel cuts labels longer than width runes to width runes plus "..."
func ShortenLabel(label string, width int) string {
	if width <= 0 || utf8.RuneCountInString(label) <= width {
		return label
	}
	runes := []rune(label)
	return string(runes[:width]) + "..."
}

// CumulativeTimeline orders papers by publication time and numbers them 1..n.
// Papers published at the same instant keep their input order.
func CumulativeTimeline(papers []domain.Paper) []domain.TimelinePoint {
	times := make([]domain.TimelinePoint, len(papers))
	for i, p := range papers {
		times[i] = domain.TimelinePoint{Time: p.PublishedAt}
	}
	sort.SliceStable(times, func(i, j int) bool {
		return times[i].Time.Before(times[j].Time)
	})
	for i := range times {
		times[i].Cumulative = i + 1
	}
	return times
}
