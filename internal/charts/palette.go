package charts

import (
	"image/color"
)

// rampPalette is a fixed colour ramp usable as a gonum palette
type rampPalette []color.Color

func (p rampPalette) Colors() []color.Color {
	return p
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// YlOrRd is the nine-step yellow-orange-red sequential scale
var YlOrRd = rampPalette{
	hex(0xffffcc), hex(0xffeda0), hex(0xfed976),
	hex(0xfeb24c), hex(0xfd8d3c), hex(0xfc4e2a),
	hex(0xe31a1c), hex(0xbd0026), hex(0x800026),
}

// YlGnBuHex is the yellow-green-blue scale of the interactive heatmap
var YlGnBuHex = []string{
	"#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4",
	"#1d91c0", "#225ea8", "#253494", "#081d58",
}

// plasma samples the plasma colour map from dark to light
var plasma = []color.RGBA{
	hex(0x0d0887), hex(0x46039f), hex(0x7201a8), hex(0x9c179e),
	hex(0xbd3786), hex(0xd8576b), hex(0xed7953), hex(0xfb9f3a),
	hex(0xfdca26), hex(0xf0f921),
}

var (
	lineColor = hex(0x1f77b4)
	fillColor = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x40}
	barColor  = hex(0x4c72b0)
	textColor = color.Black
)
