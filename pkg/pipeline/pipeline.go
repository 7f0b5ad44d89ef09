// Package pipeline runs the heat map end to end: load → build → render.
//
// The CLI commands share this package so that caching, logging and
// observability behave the same for every entry point.
//
// # Stages
//
//  1. Load: fetch the dataset from a URL or file (cached by source)
//  2. Build: normalize the records and lay out the chart
//  3. Render: produce each requested format concurrently (cached per
//     dataset hash and render options)
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  dataset.DefaultSource,
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatmap/pkg/cache"
	"github.com/matzehuels/heatmap/pkg/chart"
	"github.com/matzehuels/heatmap/pkg/dataset"
	"github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/palette"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

var discard = log.NewWithOptions(io.Discard, log.Options{})

// Options configures one pipeline run.
type Options struct {
	// Source is a dataset URL or local path.
	Source string `json:"source"`
	// Refresh skips the dataset cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Palette      string  `json:"palette,omitempty"`
	PaletteSize  int     `json:"palette_size,omitempty"`
	PaletteOrder string  `json:"palette_order,omitempty"`
	XTicks       int     `json:"x_ticks,omitempty"`
	Title        string  `json:"title,omitempty"`

	Formats []string `json:"formats,omitempty"`
	// Scale is the PNG scale factor.
	Scale float64 `json:"scale,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
	palette   palette.Palette
}

// Result holds the outputs of a run.
type Result struct {
	// Dataset is the decoded source data.
	Dataset dataset.Dataset
	// DatasetHash is the SHA-256 of the raw dataset bytes.
	DatasetHash string
	Chart       *chart.Chart
	// Artifacts maps format to rendered bytes.
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats reports sizes and stage timings.
type Stats struct {
	Records    int
	Cells      int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from cache.
type CacheInfo struct {
	DatasetHit bool
	RenderHit  bool // every requested format was cached
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, html, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults checks required fields and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		o.Source = dataset.DefaultSource
	}
	if err := errors.ValidateSource(o.Source); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = chart.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = chart.DefaultHeight
	}
	if o.Palette == "" {
		o.Palette = palette.DefaultName
	}
	if o.PaletteSize == 0 {
		o.PaletteSize = palette.DefaultSize
	}
	if o.PaletteOrder == "" {
		o.PaletteOrder = string(palette.WarmFirst)
	}
	if o.XTicks == 0 {
		o.XTicks = chart.DefaultXTicks
	}
	if o.Title == "" {
		o.Title = chart.DefaultTitle
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = discard
	}

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	order, err := palette.ParseOrder(o.PaletteOrder)
	if err != nil {
		return err
	}
	p, err := palette.Parse(o.Palette, o.PaletteSize, order)
	if err != nil {
		return err
	}
	o.palette = p
	o.validated = true
	return nil
}

// RenderContext returns the chart context for these options. id namespaces
// the chart's element IDs.
func (o *Options) RenderContext(id string) chart.RenderContext {
	rc := chart.DefaultRenderContext()
	rc.Dimensions.Width = o.Width
	rc.Dimensions.Height = o.Height
	rc.Palette = o.palette
	rc.XTicks = o.XTicks
	rc.Title = o.Title
	rc.ID = id
	return rc
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:       format,
		Width:        o.Width,
		Height:       o.Height,
		Palette:      fmt.Sprintf("%s/%d", o.Palette, o.PaletteSize),
		PaletteOrder: o.PaletteOrder,
		XTicks:       o.XTicks,
		Title:        o.Title,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
