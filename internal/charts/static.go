package charts

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"metadash/internal/dataprocessing"
	"metadash/pkg/contracts/domain"
)

// ErrNoData is returned when a chart has nothing to draw
var ErrNoData = errors.New("no data to plot")

const (
	pngFormat  = "png"
	maxTicks   = 12
	pageWidth  = 12 * vg.Inch
	pageHeight = 6 * vg.Inch
)

// save encodes the plot as PNG into w
func save(p *plot.Plot, w io.Writer, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, pngFormat)
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// integerTicks labels at most maxTicks of the given whole-number positions
func integerTicks(values []int) plot.ConstantTicks {
	step := (len(values) + maxTicks - 1) / maxTicks
	if step < 1 {
		step = 1
	}
	ticks := make(plot.ConstantTicks, 0, len(values))
	for i, v := range values {
		label := ""
		if i%step == 0 {
			label = strconv.Itoa(v)
		}
		ticks = append(ticks, plot.Tick{Value: float64(v), Label: label})
	}
	return ticks
}

// centeredLabels builds count annotations aligned on their anchor point
func centeredLabels(xys plotter.XYs, labels []string, xAlign text.XAlignment, yAlign text.YAlignment, offset vg.Point) (*plotter.Labels, error) {
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = xAlign
		l.TextStyle[i].YAlign = yAlign
		l.TextStyle[i].Color = textColor
	}
	l.Offset = offset
	return l, nil
}

// YearTrendPNG draws publications per year as a line with markers, a
// filled area below it and the count above every point
func YearTrendPNG(w io.Writer, years []domain.YearCount) error {
	if len(years) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Publications by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Publications"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(years))
	labels := make([]string, len(years))
	ticks := make([]int, len(years))
	for i, yc := range years {
		xys[i].X = float64(yc.Year)
		xys[i].Y = float64(yc.Count)
		labels[i] = strconv.Itoa(yc.Count)
		ticks[i] = yc.Year
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(2)
	line.FillColor = fillColor
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = lineColor
	points.GlyphStyle.Radius = vg.Points(3)

	annotations, err := centeredLabels(xys, labels, text.XCenter, text.YBottom, vg.Point{Y: vg.Points(5)})
	if err != nil {
		return err
	}

	p.Add(line, points, annotations)
	p.X.Tick.Marker = integerTicks(ticks)
	p.Y.Min = 0
	return save(p, w, pageWidth, pageHeight)
}

// countGrid adapts a CountGrid to gonum's GridXYZ. The first row label is
// drawn at the top.
type countGrid struct {
	grid domain.CountGrid
}

func (g countGrid) Dims() (c, r int) {
	return len(g.grid.ColumnLabels), len(g.grid.RowLabels)
}

func (g countGrid) Z(c, r int) float64 {
	return float64(g.grid.Counts[len(g.grid.RowLabels)-1-r][c])
}

func (g countGrid) X(c int) float64 { return float64(c) }

func (g countGrid) Y(r int) float64 { return float64(r) }

// HeatmapPNG draws a count grid with the YlOrRd scale anchored at zero and
// every cell annotated with its count
func HeatmapPNG(w io.Writer, title string, grid domain.CountGrid) error {
	if grid.Empty() {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title

	hm := plotter.NewHeatMap(countGrid{grid: grid}, YlOrRd)
	hm.Min = 0
	hm.Max = float64(grid.Max())
	if hm.Max == 0 {
		hm.Max = 1
	}
	p.Add(hm)

	rows := len(grid.RowLabels)
	var xys plotter.XYs
	var labels []string
	for r, row := range grid.Counts {
		for c, v := range row {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(rows - 1 - r)})
			labels = append(labels, strconv.Itoa(v))
		}
	}
	annotations, err := centeredLabels(xys, labels, text.XCenter, text.YCenter, vg.Point{})
	if err != nil {
		return err
	}
	p.Add(annotations)

	xTicks := make(plot.ConstantTicks, len(grid.ColumnLabels))
	for c, label := range grid.ColumnLabels {
		xTicks[c] = plot.Tick{Value: float64(c), Label: label}
	}
	yTicks := make(plot.ConstantTicks, rows)
	for r, label := range grid.RowLabels {
		yTicks[r] = plot.Tick{Value: float64(rows - 1 - r), Label: label}
	}
	p.X.Tick.Marker = xTicks
	p.Y.Tick.Marker = yTicks

	return save(p, w, pageWidth, pageHeight+vg.Length(rows)*vg.Points(4))
}

// RankingPNG draws a ranking as horizontal bars, highest at the top, with
// labels longer than labelWidth shortened and the count after every bar
func RankingPNG(w io.Writer, title, valueLabel string, ranked []domain.RankedCount, labelWidth int) error {
	if len(ranked) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = valueLabel

	n := len(ranked)
	values := make(plotter.Values, n)
	names := make([]string, n)
	xys := make(plotter.XYs, n)
	labels := make([]string, n)
	for i, rc := range ranked {
		pos := n - 1 - i
		values[pos] = float64(rc.Count)
		names[pos] = dataprocessing.ShortenLabel(rc.Label, labelWidth)
		xys[pos] = plotter.XY{X: float64(rc.Count), Y: float64(pos)}
		labels[pos] = strconv.Itoa(rc.Count)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(16))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0

	annotations, err := centeredLabels(xys, labels, text.XLeft, text.YCenter, vg.Point{X: vg.Points(4)})
	if err != nil {
		return err
	}

	p.Add(bars, annotations)
	p.NominalY(names...)
	p.X.Min = 0
	p.X.Max = values[n-1] * 1.1

	return save(p, w, pageWidth, 8*vg.Inch)
}

// CumulativePNG draws the running publication count over publication date
func CumulativePNG(w io.Writer, timeline []domain.TimelinePoint) error {
	if len(timeline) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Cumulative Publications Over Time"
	p.X.Label.Text = "Publication Date"
	p.Y.Label.Text = "Cumulative Number of Publications"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(timeline))
	for i, pt := range timeline {
		xys[i].X = float64(pt.Time.Unix())
		xys[i].Y = float64(pt.Cumulative)
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(2)

	p.Add(line)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Y.Min = 0
	return save(p, w, pageWidth, pageHeight)
}
