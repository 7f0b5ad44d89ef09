package sink

import (
	"encoding/json"

	"github.com/matzehuels/heatmap/pkg/chart"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	palette string
	compact bool
}

// WithJSONPalette records the palette name in the output.
func WithJSONPalette(name string) JSONOption { return func(r *jsonRenderer) { r.palette = name } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Dimensions      chart.Dimensions   `json:"dimensions"`
	BaseTemperature float64            `json:"baseTemperature"`
	Palette         string             `json:"palette,omitempty"`
	Scales          jsonScales         `json:"scales"`
	Cells           []jsonCell         `json:"cells"`
	XAxis           chart.Axis         `json:"xAxis"`
	YAxis           chart.Axis         `json:"yAxis"`
	Legend          chart.Legend       `json:"legend"`
	Tooltip         jsonTooltipOptions `json:"tooltip"`
}

type jsonScales struct {
	Year       jsonLinear `json:"year"`
	Month      jsonLinear `json:"month"`
	Legend     jsonLinear `json:"legend"`
	Boundaries []float64  `json:"boundaries"`
	Colors     []string   `json:"colors"`
}

type jsonLinear struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

type jsonCell struct {
	chart.Cell
	Tooltip []string `json:"tooltip"`
}

type jsonTooltipOptions struct {
	OffsetX       int     `json:"offsetX"`
	OffsetY       int     `json:"offsetY"`
	Opacity       float64 `json:"opacity"`
	HiddenOpacity float64 `json:"hiddenOpacity"`
}

// RenderJSON exports the chart as declarative draw instructions: every
// positioned cell with its tooltip, axis ticks, legend swatches and the
// scale parameters that produced them.
func RenderJSON(c *chart.Chart, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Dimensions:      c.Dimensions,
		BaseTemperature: c.BaseTemperature,
		Palette:         r.palette,
		Scales: jsonScales{
			Year:       linear(c.Scales.Year.Domain, c.Scales.Year.Range),
			Month:      linear(c.Scales.Month.Domain, c.Scales.Month.Range),
			Legend:     linear(c.Scales.Legend.Domain, c.Scales.Legend.Range),
			Boundaries: c.Scales.Color.Boundaries(),
			Colors:     c.Scales.Color.Colors(),
		},
		Cells:  make([]jsonCell, len(c.Cells)),
		XAxis:  c.XAxis,
		YAxis:  c.YAxis,
		Legend: c.Legend,
		Tooltip: jsonTooltipOptions{
			OffsetX:       chart.TooltipOffsetX,
			OffsetY:       chart.TooltipOffsetY,
			Opacity:       chart.TooltipOpacity,
			HiddenOpacity: chart.HideTooltip().Opacity,
		},
	}
	for i, cell := range c.Cells {
		out.Cells[i] = jsonCell{Cell: cell, Tooltip: c.Tooltip(i).Lines}
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func linear(d, r [2]float64) jsonLinear { return jsonLinear{Domain: d, Range: r} }
