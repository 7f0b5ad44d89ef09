// Package render converts heat-map SVG documents into raster and print
// formats.
//
// The SVG, HTML and JSON outputs are produced by the [sink] subpackage
// directly from a built chart. [ToPNG] and [ToPDF] convert the SVG using the
// external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(c)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//	pdf, err := render.ToPDF(ctx, svg)
//
// When rsvg-convert is not on PATH both return an UNSUPPORTED error naming
// the package to install.
//
// [sink]: github.com/matzehuels/heatmap/pkg/render/sink
package render
