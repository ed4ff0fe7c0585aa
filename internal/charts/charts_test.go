package charts

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metadash/internal/dataprocessing"
	"metadash/internal/shared/testutil"
	"metadash/pkg/contracts/domain"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleSummary(t *testing.T) dataprocessing.Summary {
	t.Helper()
	path := testutil.WriteMetadataCSV(t, testutil.MetadataHeader, testutil.SampleFixture())
	ds, err := dataprocessing.NewPipeline(nil, nil).Run(context.Background(), path, 0)
	require.NoError(t, err)
	return dataprocessing.NewSummarizer(nil, nil, dataprocessing.SummarizerConfig{MinYear: 2000}).
		Summarize(context.Background(), ds.Papers)
}

func TestStaticCharts(t *testing.T) {
	summary := sampleSummary(t)

	for _, artifact := range ReportArtifacts(summary, DefaultWordCloudOptions()) {
		t.Run(artifact.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, artifact.Draw(&buf))
			require.Greater(t, buf.Len(), len(pngMagic))
			assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
		})
	}
}

func TestStaticCharts_NoData(t *testing.T) {
	var buf bytes.Buffer

	assert.ErrorIs(t, YearTrendPNG(&buf, nil), ErrNoData)
	assert.ErrorIs(t, HeatmapPNG(&buf, "empty", domain.CountGrid{}), ErrNoData)
	assert.ErrorIs(t, RankingPNG(&buf, "empty", "n", nil, 10), ErrNoData)
	assert.ErrorIs(t, WordCloudPNG(&buf, nil, DefaultWordCloudOptions()), ErrNoData)
	assert.ErrorIs(t, CumulativePNG(&buf, nil), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestHeatmapPNG_AllZero(t *testing.T) {
	grid := domain.CountGrid{
		RowLabels:    []string{"2020"},
		ColumnLabels: dataprocessing.MonthLabels,
		Counts:       [][]int{make([]int, 12)},
	}
	var buf bytes.Buffer
	require.NoError(t, HeatmapPNG(&buf, "zero", grid))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestStaticCharts_SinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YearTrendPNG(&buf, []domain.YearCount{{Year: 2020, Count: 1}}))

	buf.Reset()
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, CumulativePNG(&buf, []domain.TimelinePoint{{Time: at, Cumulative: 1}}))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestWordCloudPNG_Deterministic(t *testing.T) {
	words := []domain.WordFrequency{
		{Word: "coronavirus", Count: 40},
		{Word: "transmission", Count: 22},
		{Word: "vaccine", Count: 15},
		{Word: "masks", Count: 3},
	}
	opts := WordCloudOptions{Width: 400, Height: 200, MinFontSize: 8, MaxFontSize: 60, Padding: 2}

	var first, second bytes.Buffer
	require.NoError(t, WordCloudPNG(&first, words, opts))
	require.NoError(t, WordCloudPNG(&second, words, opts))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestFontSize(t *testing.T) {
	opts := DefaultWordCloudOptions()
	assert.Equal(t, 110, fontSize(10, 10, opts))
	assert.Equal(t, 55, fontSize(0, 10, opts))
	assert.GreaterOrEqual(t, fontSize(1, 1000, opts), int(opts.MinFontSize))
}

func TestInteractiveCharts(t *testing.T) {
	summary := sampleSummary(t)
	page := PageOptions{AssetsHost: "https://example.test/assets/"}

	tests := []struct {
		name string
		draw func(*bytes.Buffer) error
		want []string
	}{
		{
			name: "year bar",
			draw: func(b *bytes.Buffer) error { return YearBarHTML(b, summary.YearCounts, page) },
			want: []string{"Publications by Year", "2020"},
		},
		{
			name: "journal heatmap",
			draw: func(b *bytes.Buffer) error { return JournalHeatmapHTML(b, summary.JournalYear, page) },
			want: []string{"Journal vs Year", "The Lancet", YlGnBuHex[0]},
		},
		{
			name: "word cloud",
			draw: func(b *bytes.Buffer) error { return WordCloudHTML(b, summary.Words, page) },
			want: []string{"Word Cloud of Paper Titles", "coronavirus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.draw(&buf))
			html := buf.String()
			assert.Contains(t, html, "<html")
			assert.Contains(t, html, "https://example.test/assets/")
			for _, s := range tt.want {
				assert.Contains(t, html, s)
			}
		})
	}
}

func TestInteractiveCharts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YearBarHTML(&buf, nil, PageOptions{}))
	require.NoError(t, JournalHeatmapHTML(&buf, domain.CountGrid{}, PageOptions{}))
	require.NoError(t, WordCloudHTML(&buf, nil, PageOptions{}))
}
