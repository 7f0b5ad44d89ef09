package sink

import (
	"context"

	"github.com/matzehuels/heatmap/pkg/chart"
	"github.com/matzehuels/heatmap/pkg/render"
)

// RasterOption configures [RenderPNG] and [RenderPDF].
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithRasterSVGOptions passes options through to the underlying SVG renderer.
func WithRasterSVGOptions(opts ...SVGOption) RasterOption {
	return func(r *rasterRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0). Ignored for PDF.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) { r.scale = s }
}

func newRasterRenderer(opts []RasterOption) rasterRenderer {
	// Scripts are inert in static output.
	r := rasterRenderer{scale: 2.0, svgOpts: []SVGOption{WithoutInteraction()}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderPNG renders c as PNG via SVG conversion.
func RenderPNG(ctx context.Context, c *chart.Chart, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts)
	return render.ToPNG(ctx, RenderSVG(c, r.svgOpts...), r.scale)
}

// RenderPDF renders c as PDF via SVG conversion.
func RenderPDF(ctx context.Context, c *chart.Chart, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts)
	return render.ToPDF(ctx, RenderSVG(c, r.svgOpts...))
}
