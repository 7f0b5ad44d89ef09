package chart

import (
	"github.com/google/uuid"

	"github.com/matzehuels/heatmap/pkg/dataset"
	"github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/scale"
)

// Legend placement inside the frame.
const (
	LegendSwatchHeight = 30
	LegendTickSize     = -30
	legendOffsetX      = -60
	legendOffsetY      = -10
)

// Element IDs shared by every sink.
const (
	IDTitle       = "title"
	IDDescription = "description"
	IDXAxis       = "x-axis"
	IDYAxis       = "y-axis"
	IDLegend      = "legend"
	IDTooltip     = "tooltip"
	ClassCell     = "cell"
)

// Scales is the derived value-to-output mapping of one chart.
type Scales struct {
	Year   scale.Linear
	Month  scale.Linear
	Legend scale.Linear
	Color  scale.Threshold
}

// Cell is one positioned rectangle. Month is the canonical 0-based index.
type Cell struct {
	dataset.VarianceRecord

	Temperature float64 `json:"temperature"`
	TempLabel   string  `json:"tempLabel"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

// Tick is an axis tick at pixel position Pos.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Axis is a set of ticks drawn inside a group translated by (X, Y).
type Axis struct {
	ID       string  `json:"id,omitempty"`
	Orient   string  `json:"orient"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	TickSize float64 `json:"tickSize"`
	Ticks    []Tick  `json:"ticks"`
}

// LegendBucket is one swatch: the clamped temperature interval of a colour
// and its pixel extent on the legend scale.
type LegendBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// Legend is the swatch row plus its axis, translated by (X, Y).
type Legend struct {
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	SwatchHeight float64        `json:"swatchHeight"`
	Buckets      []LegendBucket `json:"buckets"`
	Axis         Axis           `json:"axis"`
}

// Chart is a fully laid-out heat map.
type Chart struct {
	ID              string
	Dimensions      Dimensions
	BaseTemperature float64
	MinYear         int
	MaxYear         int

	Title       string
	Description string

	Scales Scales
	Cells  []Cell
	XAxis  Axis
	YAxis  Axis
	Legend Legend
}

// Build lays out n inside rc.
func Build(n dataset.Normalized, rc RenderContext) (*Chart, error) {
	rc = rc.withDefaults()
	if err := rc.Dimensions.validate(); err != nil {
		return nil, err
	}
	if n.Empty() {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "dataset has no records")
	}
	if !n.Finite() {
		return nil, errors.New(errors.ErrCodeDegenerateDomain, "dataset contains non-finite values")
	}

	scales, err := buildScales(n, rc)
	if err != nil {
		return nil, err
	}

	id := rc.ID
	if id == "" {
		id = "heatmap-" + uuid.NewString()
	}
	minYear, maxYear := n.YearExtent()

	c := &Chart{
		ID:              id,
		Dimensions:      rc.Dimensions,
		BaseTemperature: n.BaseTemperature,
		MinYear:         minYear,
		MaxYear:         maxYear,
		Title:           rc.Title,
		Description:     describe(minYear, maxYear, n.BaseTemperature),
		Scales:          scales,
	}
	c.Cells = layoutCells(n, rc.Dimensions, scales)
	c.XAxis = xAxis(rc, scales.Year)
	c.YAxis = yAxis(rc, n, scales.Month)
	c.Legend = legend(rc.Dimensions, scales)
	return c, nil
}

func buildScales(n dataset.Normalized, rc RenderContext) (Scales, error) {
	d := rc.Dimensions
	yLo, yHi := n.YearExtent()
	mLo, mHi := n.MonthExtent()

	year, err := scale.NewLinear(float64(yLo), float64(yHi), d.Margin.Left, d.InnerWidth())
	if err != nil {
		return Scales{}, err
	}
	month, err := scale.NewLinear(float64(mLo)-0.5, float64(mHi)+0.5, 0, d.InnerHeight())
	if err != nil {
		return Scales{}, err
	}

	tLo, tHi, err := legendDomain(n)
	if err != nil {
		return Scales{}, err
	}
	leg, err := scale.NewLinear(tLo, tHi, d.Margin.Right, d.InnerWidth()/4)
	if err != nil {
		return Scales{}, err
	}
	color, err := scale.NewThreshold(tLo, tHi, rc.Palette.CoolestFirst())
	if err != nil {
		return Scales{}, err
	}
	return Scales{Year: year, Month: month, Legend: leg, Color: color}, nil
}

// legendDomain spans the coldest below-baseline temperature to the warmest
// above-baseline one. A missing side falls back to the base temperature.
func legendDomain(n dataset.Normalized) (lo, hi float64, err error) {
	lo, hi, okLo, okHi := n.TemperatureExtent()
	switch {
	case !okLo && !okHi:
		return 0, 0, errors.New(errors.ErrCodeDegenerateDomain,
			"no record deviates from the base temperature; legend domain is empty")
	case !okLo:
		lo = n.BaseTemperature
	case !okHi:
		hi = n.BaseTemperature
	}
	return lo, hi, nil
}

func layoutCells(n dataset.Normalized, d Dimensions, s Scales) []Cell {
	w := d.InnerWidth() * dataset.MonthsPerYear / float64(n.Len())
	h := d.InnerHeight() / dataset.MonthsPerYear

	cells := make([]Cell, n.Len())
	for i, r := range n.Records {
		t := dataset.Temperature(n.BaseTemperature, r)
		cells[i] = Cell{
			VarianceRecord: r,
			Temperature:    t,
			TempLabel:      FormatTemperature(n.BaseTemperature, r.Variance),
			X:              s.Year.Map(float64(r.Year)),
			Y:              s.Month.Map(float64(r.Month)) - h/2,
			Width:          w,
			Height:         h,
			Fill:           s.Color.Map(t),
		}
	}
	return cells
}

func xAxis(rc RenderContext, year scale.Linear) Axis {
	values := year.Ticks(rc.XTicks, true)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Pos: year.Map(v), Label: YearLabel(v)}
	}
	return Axis{ID: IDXAxis, Orient: "bottom", Y: rc.Dimensions.InnerHeight(), TickSize: 6, Ticks: ticks}
}

func yAxis(rc RenderContext, n dataset.Normalized, month scale.Linear) Axis {
	lo, hi := n.MonthExtent()
	ticks := make([]Tick, 0, hi-lo+1)
	for m := lo; m <= hi; m++ {
		ticks = append(ticks, Tick{Value: float64(m), Pos: month.Map(float64(m)), Label: MonthName(m)})
	}
	return Axis{ID: IDYAxis, Orient: "left", X: rc.Dimensions.Margin.Left, TickSize: 6, Ticks: ticks}
}

func legend(d Dimensions, s Scales) Legend {
	lo, hi := s.Color.Domain()
	colors := s.Color.Colors()

	buckets := make([]LegendBucket, len(colors))
	for i, color := range colors {
		e := s.Color.InvertExtent(i).Clamp(lo, hi)
		x0, x1 := s.Legend.Map(e.Low), s.Legend.Map(e.High)
		buckets[i] = LegendBucket{
			Low:   e.Low,
			High:  e.High,
			Color: color,
			X:     x0,
			Width: max(0, x1-x0),
		}
	}

	bounds := s.Color.Boundaries()
	ticks := make([]Tick, len(bounds))
	for i, b := range bounds {
		ticks[i] = Tick{Value: b, Pos: s.Legend.Map(b), Label: LegendLabel(b)}
	}

	return Legend{
		X:            d.InnerWidth()/2 + legendOffsetX,
		Y:            d.Height + legendOffsetY,
		SwatchHeight: LegendSwatchHeight,
		Buckets:      buckets,
		Axis:         Axis{Orient: "bottom", TickSize: LegendTickSize, Ticks: ticks},
	}
}

// Translate returns the offset of the plot group inside the frame.
func (c *Chart) Translate() (x, y float64) {
	return c.Dimensions.Margin.Left, c.Dimensions.Margin.Top
}

// Tooltip returns the hover content for cell i.
func (c *Chart) Tooltip(i int) TooltipContent {
	return Tooltip(c.BaseTemperature, c.Cells[i])
}

// CellAt returns the index of the cell for (year, month), or -1.
func (c *Chart) CellAt(year, month int) int {
	for i, cell := range c.Cells {
		if cell.Year == year && cell.Month == month {
			return i
		}
	}
	return -1
}
