// Package charts renders aggregate views as images and interactive pages.
//
// Static charts are PNG files built with gonum/plot, except the title word
// cloud which is rasterised directly with gg. Interactive charts are
// standalone go-echarts HTML pages that the dashboard embeds in frames.
//
// Every renderer writes to an io.Writer. Renderer wraps them with timing,
// metrics and RENDER error typing, and WriteFile only replaces the target
// file after a render succeeded.
package charts
