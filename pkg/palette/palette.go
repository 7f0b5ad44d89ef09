// Package palette provides ordered colour palettes for the heat map.
//
// Palettes are stored as given and always read back coolest-first through
// [Palette.CoolestFirst]; the colour threshold assigns bin 0 (lowest
// temperature) to the first colour it receives. Diverging ColorBrewer schemes
// such as RdYlBu are published warm-first, so [Default] declares
// [WarmFirst] and the reversal happens on read.
package palette

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/aclements/go-gg/palette/brewer"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/heatmap/pkg/errors"
)

// Order describes how the colours of a palette are listed.
type Order string

const (
	WarmFirst Order = "warm-first"
	CoolFirst Order = "cool-first"
)

const (
	DefaultName = "RdYlBu"
	DefaultSize = 11
)

// Palette is an immutable list of colours with a declared order.
type Palette struct {
	name   string
	colors []string
	order  Order
}

// Default returns the 11-level RdYlBu scheme.
func Default() Palette {
	p, err := Brewer(DefaultName, DefaultSize, WarmFirst)
	if err != nil {
		panic(err) // RdYlBu_11 ships with the brewer package
	}
	return p
}

// Brewer looks up a ColorBrewer scheme by name and level count.
func Brewer(name string, n int, order Order) (Palette, error) {
	if err := order.validate(); err != nil {
		return Palette{}, err
	}
	levels, ok := brewer.ByName[name]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidPalette, "unknown palette %q", name)
	}
	cs, ok := levels[n]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidPalette, "palette %q has no %d-level variant", name, n)
	}
	hexes := make([]string, 0, len(cs))
	for _, c := range cs {
		cf, _ := colorful.MakeColor(c)
		hexes = append(hexes, cf.Hex())
	}
	return Palette{name: fmt.Sprintf("%s_%d", name, n), colors: hexes, order: order}, nil
}

// Custom builds a palette from hex strings ("#rrggbb").
func Custom(hexes []string, order Order) (Palette, error) {
	if err := order.validate(); err != nil {
		return Palette{}, err
	}
	if len(hexes) < 2 {
		return Palette{}, errors.New(errors.ErrCodeInvalidPalette, "palette needs at least 2 colours, got %d", len(hexes))
	}
	out := make([]string, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(strings.TrimSpace(h))
		if err != nil {
			return Palette{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "colour %d", i)
		}
		out[i] = c.Hex()
	}
	return Palette{name: "custom", colors: out, order: order}, nil
}

// Parse resolves a palette value: either a brewer name ("RdYlBu", "Spectral")
// or a comma-separated list of hex colours.
func Parse(value string, n int, order Order) (Palette, error) {
	if strings.Contains(value, "#") {
		return Custom(strings.Split(value, ","), order)
	}
	return Brewer(value, n, order)
}

// Name returns the scheme name, e.g. "RdYlBu_11" or "custom".
func (p Palette) Name() string { return p.name }

// Len returns the number of colours.
func (p Palette) Len() int { return len(p.colors) }

// Order returns the declared listing order.
func (p Palette) Order() Order { return p.order }

// CoolestFirst returns a fresh slice with the coolest colour at index 0.
func (p Palette) CoolestFirst() []string {
	out := slices.Clone(p.colors)
	if p.order == WarmFirst {
		slices.Reverse(out)
	}
	return out
}

// Names lists the available ColorBrewer schemes.
func Names() []string {
	names := make([]string, 0, len(brewer.ByName))
	for name := range brewer.ByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseOrder converts a flag or config value into an [Order].
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToLower(strings.TrimSpace(s)))
	return o, o.validate()
}

func (o Order) validate() error {
	switch o {
	case WarmFirst, CoolFirst:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPalette, "invalid palette order %q (must be %s or %s)", o, WarmFirst, CoolFirst)
}
