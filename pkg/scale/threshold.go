package scale

import (
	"slices"
	"sort"

	"github.com/matzehuels/heatmap/pkg/errors"
)

// Threshold partitions [Min, Max] into len(colors) equal-width bins.
type Threshold struct {
	min, max float64
	bounds   []float64
	colors   []string
}

// Extent is the interval a colour covers. The first bin has no lower bound
// and the last bin no upper bound; those ends are reported open.
type Extent struct {
	Low, High         float64
	LowOpen, HighOpen bool
}

// Clamp closes open ends with lo and hi.
func (e Extent) Clamp(lo, hi float64) Extent {
	if e.LowOpen {
		e.Low, e.LowOpen = lo, false
	}
	if e.HighOpen {
		e.High, e.HighOpen = hi, false
	}
	return e
}

// NewThreshold builds the colour bins for [min, max]. colors must be ordered
// coolest first; colors[0] is assigned to the lowest bin.
func NewThreshold(min, max float64, colors []string) (Threshold, error) {
	n := len(colors)
	if n < 2 {
		return Threshold{}, errors.New(errors.ErrCodeInvalidPalette, "threshold needs at least 2 colours, got %d", n)
	}
	if !finite(min, max) || !(min < max) {
		return Threshold{}, errors.New(errors.ErrCodeDegenerateDomain, "threshold domain [%v, %v] is empty", min, max)
	}
	step := (max - min) / float64(n)
	bounds := make([]float64, n-1)
	for i := range bounds {
		bounds[i] = min + float64(i+1)*step
		if i > 0 && !(bounds[i] > bounds[i-1]) {
			return Threshold{}, errors.New(errors.ErrCodeDegenerateDomain, "threshold domain [%v, %v] too narrow for %d bins", min, max, n)
		}
	}
	return Threshold{min: min, max: max, bounds: bounds, colors: slices.Clone(colors)}, nil
}

// Index returns the bin of v: the number of boundaries <= v. NaN maps to -1.
func (t Threshold) Index(v float64) int {
	if v != v {
		return -1
	}
	return sort.Search(len(t.bounds), func(i int) bool { return t.bounds[i] > v })
}

// Map returns the colour for v, or "" for NaN.
func (t Threshold) Map(v float64) string {
	i := t.Index(v)
	if i < 0 {
		return ""
	}
	return t.colors[i]
}

// InvertExtent returns the interval covered by bin i.
func (t Threshold) InvertExtent(i int) Extent {
	var e Extent
	if i <= 0 {
		e.LowOpen = true
	} else {
		e.Low = t.bounds[i-1]
	}
	if i >= len(t.bounds) {
		e.HighOpen = true
	} else {
		e.High = t.bounds[i]
	}
	return e
}

// Len returns the number of bins (colours).
func (t Threshold) Len() int { return len(t.colors) }

// Boundaries returns a copy of the n-1 bin boundaries.
func (t Threshold) Boundaries() []float64 { return slices.Clone(t.bounds) }

// Colors returns a copy of the colours, coolest first.
func (t Threshold) Colors() []string { return slices.Clone(t.colors) }

// Domain returns the [min, max] the bins partition.
func (t Threshold) Domain() (min, max float64) { return t.min, t.max }
