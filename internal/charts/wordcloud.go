package charts

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"metadash/pkg/contracts/domain"
)

// WordCloudOptions sizes the word cloud canvas and fonts
type WordCloudOptions struct {
	Width       int
	Height      int
	MinFontSize float64
	MaxFontSize float64
	Padding     float64
}

// DefaultWordCloudOptions returns the 1200x600 layout used for reports
func DefaultWordCloudOptions() WordCloudOptions {
	return WordCloudOptions{
		Width:       1200,
		Height:      600,
		MinFontSize: 10,
		MaxFontSize: 110,
		Padding:     2,
	}
}

var (
	fontOnce    sync.Once
	wordFont    *truetype.Font
	wordFontErr error
)

func loadWordFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		wordFont, wordFontErr = truetype.Parse(goregular.TTF)
	})
	return wordFont, wordFontErr
}

type box struct {
	x0, y0, x1, y1 float64
}

func (b box) overlaps(o box) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

// wordLayout places words on an archimedean spiral from the canvas centre
type wordLayout struct {
	dc     *gg.Context
	ttf    *truetype.Font
	faces  map[int]font.Face
	placed []box
	opts   WordCloudOptions
}

func (l *wordLayout) face(size int) font.Face {
	if f, ok := l.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(l.ttf, &truetype.Options{Size: float64(size)})
	l.faces[size] = f
	return f
}

// place finds the first free position for a word of size w×h, walking the
// spiral outwards. ok is false when the word does not fit anywhere.
func (l *wordLayout) place(w, h float64) (cx, cy float64, ok bool) {
	width, height := float64(l.opts.Width), float64(l.opts.Height)
	aspect := width / height
	maxRadius := math.Hypot(width, height) / 2
	pad := l.opts.Padding

	for theta := 0.0; ; theta += 0.1 {
		r := 2 * theta
		if r > maxRadius {
			return 0, 0, false
		}
		cx = width/2 + r*math.Cos(theta)*aspect
		cy = height/2 + r*math.Sin(theta)
		b := box{cx - w/2 - pad, cy - h/2 - pad, cx + w/2 + pad, cy + h/2 + pad}
		if b.x0 < 0 || b.y0 < 0 || b.x1 > width || b.y1 > height {
			continue
		}
		free := true
		for _, o := range l.placed {
			if b.overlaps(o) {
				free = false
				break
			}
		}
		if free {
			l.placed = append(l.placed, b)
			return cx, cy, true
		}
	}
}

// fontSize scales a count between the configured sizes, half of it
// proportional to the count relative to the most frequent word
func fontSize(count, maxCount int, opts WordCloudOptions) int {
	ratio := float64(count) / float64(maxCount)
	size := opts.MaxFontSize * (0.5 + 0.5*ratio)
	if size < opts.MinFontSize {
		size = opts.MinFontSize
	}
	return int(math.Round(size))
}

// wordColor picks a plasma colour by rank so reruns are identical
func wordColor(rank int) color.Color {
	return plasma[rank%(len(plasma)-1)]
}

// WordCloudPNG draws words on a white canvas, largest first, with font size
// following frequency. Words that no longer fit at the minimum size are
// left out.
func WordCloudPNG(w io.Writer, words []domain.WordFrequency, opts WordCloudOptions) error {
	if len(words) == 0 {
		return ErrNoData
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultWordCloudOptions()
	}

	ttf, err := loadWordFont()
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(color.White)
	dc.Clear()

	layout := &wordLayout{
		dc:    dc,
		ttf:   ttf,
		faces: make(map[int]font.Face),
		opts:  opts,
	}

	maxCount := words[0].Count
	for rank, wf := range words {
		size := fontSize(wf.Count, maxCount, opts)
		for ; size >= int(opts.MinFontSize); size -= 4 {
			dc.SetFontFace(layout.face(size))
			tw, th := dc.MeasureString(wf.Word)
			cx, cy, ok := layout.place(tw, th)
			if !ok {
				continue
			}
			dc.SetColor(wordColor(rank))
			dc.DrawStringAnchored(wf.Word, cx, cy, 0.5, 0.5)
			break
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
