package charts

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"metadash/pkg/contracts/domain"
)

// PageOptions configures the standalone interactive chart pages
type PageOptions struct {
	AssetsHost string
	Height     string
}

func (o PageOptions) initialization(title string) opts.Initialization {
	height := o.Height
	if height == "" {
		height = "420px"
	}
	return opts.Initialization{
		PageTitle:  title,
		Width:      "100%",
		Height:     height,
		AssetsHost: o.AssetsHost,
	}
}

// YearBarHTML renders publications per year as an interactive bar chart
func YearBarHTML(w io.Writer, years []domain.YearCount, page PageOptions) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(page.initialization("Publications by Year")),
		charts.WithTitleOpts(opts.Title{Title: "Publications by Year"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)

	labels := make([]string, len(years))
	items := make([]opts.BarData, len(years))
	for i, yc := range years {
		labels[i] = strconv.Itoa(yc.Year)
		items[i] = opts.BarData{Value: yc.Count}
	}
	bar.SetXAxis(labels).AddSeries("Publications", items)

	return bar.Render(w)
}

// JournalHeatmapHTML renders the journal×year grid with a YlGnBu scale
func JournalHeatmapHTML(w io.Writer, grid domain.CountGrid, page PageOptions) error {
	max := grid.Max()
	if max == 0 {
		max = 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(page.initialization("Publications Heatmap (Journal vs Year)")),
		charts.WithTitleOpts(opts.Title{Title: "Publications Heatmap (Journal vs Year)"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: grid.ColumnLabels, Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: grid.RowLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: 0,
			Max: float32(max),
			InRange: &opts.VisualMapInRange{
				Color: YlGnBuHex,
			},
		}),
	)

	items := make([]opts.HeatMapData, 0, len(grid.RowLabels)*len(grid.ColumnLabels))
	for r, row := range grid.Counts {
		for c, v := range row {
			items = append(items, opts.HeatMapData{Value: [3]interface{}{c, r, v}})
		}
	}
	hm.SetXAxis(grid.ColumnLabels).AddSeries("Publications", items)

	return hm.Render(w)
}

// WordCloudHTML renders title word frequencies as an interactive word cloud
func WordCloudHTML(w io.Writer, words []domain.WordFrequency, page PageOptions) error {
	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithInitializationOpts(page.initialization("Word Cloud of Paper Titles")),
		charts.WithTitleOpts(opts.Title{Title: "Word Cloud of Paper Titles"}),
	)

	items := make([]opts.WordCloudData, len(words))
	for i, wf := range words {
		items[i] = opts.WordCloudData{Name: wf.Word, Value: wf.Count}
	}
	wc.AddSeries("Words", items, charts.WithWorldCloudChartOpts(opts.WordCloudChart{
		Shape:     "circle",
		SizeRange: []float32{12, 80},
	}))

	return wc.Render(w)
}
