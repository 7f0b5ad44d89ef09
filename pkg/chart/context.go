package chart

import (
	"github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/palette"
)

const (
	DefaultWidth  = 1600
	DefaultHeight = 600
	DefaultXTicks = 20

	DefaultTitle = "Monthly Global Land-Surface Temperature"
)

// Margins are the gaps between the frame edge and the plot area.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Dimensions describe the drawing frame.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margins `json:"margin"`
}

// DefaultDimensions returns the 1600×600 frame.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Margin: Margins{Top: 20, Right: 40, Bottom: 80, Left: 80},
	}
}

// InnerWidth is the plot width inside the horizontal margins.
func (d Dimensions) InnerWidth() float64 { return d.Width - d.Margin.Left - d.Margin.Right }

// InnerHeight is the plot height inside the vertical margins.
func (d Dimensions) InnerHeight() float64 { return d.Height - d.Margin.Top - d.Margin.Bottom }

func (d Dimensions) validate() error {
	if d.InnerWidth() <= d.Margin.Left {
		return errors.New(errors.ErrCodeInvalidInput, "width %v leaves no room for the plot", d.Width)
	}
	if d.InnerHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "height %v leaves no room for the plot", d.Height)
	}
	return nil
}

// RenderContext carries everything Build needs besides the data. It is owned
// by the caller; Build never mutates it.
type RenderContext struct {
	Dimensions Dimensions
	Palette    palette.Palette

	// XTicks caps the number of year ticks.
	XTicks int

	// ID namespaces the chart in documents that embed several charts. It
	// must be a valid CSS identifier. A random one is generated when empty.
	ID string

	Title string
}

// DefaultRenderContext returns the default frame, palette and tick count.
func DefaultRenderContext() RenderContext {
	return RenderContext{
		Dimensions: DefaultDimensions(),
		Palette:    palette.Default(),
		XTicks:     DefaultXTicks,
		Title:      DefaultTitle,
	}
}

func (rc RenderContext) withDefaults() RenderContext {
	if rc.Dimensions == (Dimensions{}) {
		rc.Dimensions = DefaultDimensions()
	}
	if rc.Palette.Len() == 0 {
		rc.Palette = palette.Default()
	}
	if rc.XTicks <= 0 {
		rc.XTicks = DefaultXTicks
	}
	if rc.Title == "" {
		rc.Title = DefaultTitle
	}
	return rc
}
