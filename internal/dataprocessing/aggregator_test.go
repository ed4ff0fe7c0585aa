package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metadash/internal/shared/testutil"
	"metadash/pkg/contracts/domain"
)

func paper(title string, published time.Time, journal, source string) domain.Paper {
	return NewPaper(domain.Record{Title: title, Journal: journal, Source: source}, published)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearCounts(t *testing.T) {
	papers, report := cleanFixture(t, testutil.SampleFixture())

	all := YearCounts(papers, 0)
	assert.Equal(t, []domain.YearCount{
		{Year: 2003, Count: 1},
		{Year: 2019, Count: 1},
		{Year: 2020, Count: 4},
		{Year: 2021, Count: 1},
	}, all)

	sum := 0
	for i, yc := range all {
		sum += yc.Count
		if i > 0 {
			assert.Greater(t, yc.Year, all[i-1].Year)
		}
	}
	assert.Equal(t, report.Kept, sum)

	recent := YearCounts(papers, 2003)
	require.Len(t, recent, 3)
	assert.Equal(t, 2019, recent[0].Year)
}

func TestYearMonthCounts(t *testing.T) {
	papers, _ := cleanFixture(t, testutil.SampleFixture())

	grid := YearMonthCounts(papers, 2000)
	assert.Equal(t, []string{"2003", "2019", "2020", "2021"}, grid.RowLabels)
	assert.Equal(t, MonthLabels, grid.ColumnLabels)
	assert.Equal(t, len(papers), grid.Total())

	assert.Equal(t, []int{2, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0}, grid.Counts[2])
	assert.Equal(t, 1, grid.Counts[1][10])
	assert.Equal(t, 2, grid.Max())
}

func TestYearMonthCounts_Empty(t *testing.T) {
	grid := YearMonthCounts(nil, 2000)
	assert.True(t, grid.Empty())
	assert.Equal(t, 0, grid.Max())
}

func TestJournalYearCounts(t *testing.T) {
	papers, _ := cleanFixture(t, testutil.SampleFixture())

	grid := JournalYearCounts(papers)
	assert.Equal(t, []string{"BMJ", "Journal of Virology", "The Lancet"}, grid.RowLabels)
	assert.Equal(t, []string{"2003", "2019", "2020", "2021"}, grid.ColumnLabels)
	assert.Equal(t, [][]int{
		{0, 0, 1, 0},
		{0, 0, 2, 1},
		{1, 1, 0, 0},
	}, grid.Counts)

	// the paper without a journal is not counted
	assert.Equal(t, len(papers)-1, grid.Total())
}

func TestTopN(t *testing.T) {
	papers, _ := cleanFixture(t, testutil.SampleFixture())

	journals := TopJournals(papers, 15)
	assert.Equal(t, []domain.RankedCount{
		{Label: "Journal of Virology", Count: 3},
		{Label: "The Lancet", Count: 2},
		{Label: "BMJ", Count: 1},
	}, journals)

	sources := TopSources(papers, 12)
	assert.Equal(t, []domain.RankedCount{
		{Label: "PMC", Count: 3},
		{Label: "Medline", Count: 2},
		{Label: "WHO", Count: 1},
		{Label: "ArXiv", Count: 1},
	}, sources)

	for _, ranked := range [][]domain.RankedCount{journals, sources} {
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Count, ranked[i].Count)
		}
	}

	assert.Len(t, TopSources(papers, 2), 2)
	assert.Empty(t, TopSources(papers, 0))
	assert.Len(t, TopSources(papers, -1), 4)
	assert.Empty(t, TopJournals(nil, 15))
}

func TestTopN_TiesKeepFirstAppearance(t *testing.T) {
	papers := []domain.Paper{
		paper("a", day(2020, 1, 1), "Zeta", ""),
		paper("b", day(2020, 1, 1), "Alpha", ""),
		paper("c", day(2020, 1, 1), "Zeta", ""),
		paper("d", day(2020, 1, 1), "Alpha", ""),
		paper("e", day(2020, 1, 1), "Mid", ""),
	}

	got := TopJournals(papers, 3)
	assert.Equal(t, []domain.RankedCount{
		{Label: "Zeta", Count: 2},
		{Label: "Alpha", Count: 2},
		{Label: "Mid", Count: 1},
	}, got)
}

func TestShortenLabel(t *testing.T) {
	assert.Equal(t, "short", ShortenLabel("short", 50))
	assert.Equal(t, "abcde...", ShortenLabel("abcdefgh", 5))
	assert.Equal(t, "Üüé...", ShortenLabel("Üüéàç", 3))
	assert.Equal(t, "exact", ShortenLabel("exact", 5))
	assert.Equal(t, "anything", ShortenLabel("anything", 0))
}

func TestCumulativeTimeline(t *testing.T) {
	papers, _ := cleanFixture(t, testutil.SampleFixture())

	timeline := CumulativeTimeline(papers)
	require.Len(t, timeline, len(papers))
	assert.Equal(t, day(2003, 5, 1), timeline[0].Time)
	assert.Equal(t, day(2021, 1, 5), timeline[len(timeline)-1].Time)
	for i, pt := range timeline {
		assert.Equal(t, i+1, pt.Cumulative)
		if i > 0 {
			assert.False(t, pt.Time.Before(timeline[i-1].Time))
		}
	}

	assert.Empty(t, CumulativeTimeline(nil))
}

func TestSummarizer(t *testing.T) {
	papers, _ := cleanFixture(t, testutil.SampleFixture())
	logger, handler := testutil.NewTestLogger(t)

	s := NewSummarizer(logger, nil, SummarizerConfig{MinYear: 2010})
	summary := s.Summarize(context.Background(), papers)

	assert.Equal(t, 7, summary.Total)
	assert.Len(t, summary.YearCounts, 3)
	assert.Equal(t, []string{"2019", "2020", "2021"}, summary.YearMonth.RowLabels)
	assert.Len(t, summary.TopJournals, 3)
	assert.Len(t, summary.TopSources, 4)
	assert.Len(t, summary.Timeline, 7)
	require.NotEmpty(t, summary.Words)
	assert.Equal(t, domain.WordFrequency{Word: "coronavirus", Count: 3}, summary.Words[0])

	testutil.AssertNoErrors(t, handler)
}

func TestSummarizer_Deterministic(t *testing.T) {
	papers, _ := cleanFixture(t, testutil.SampleFixture())
	s := NewSummarizer(nil, nil, SummarizerConfig{MinYear: 2000})

	first := s.Summarize(context.Background(), papers)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Summarize(context.Background(), papers))
	}
}
