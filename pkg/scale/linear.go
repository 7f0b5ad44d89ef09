package scale

import (
	"math"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/matzehuels/heatmap/pkg/errors"
)

// MinSpan is the width a zero-width domain is widened to.
const MinSpan = 1.0

// Linear maps [Domain[0], Domain[1]] onto [Range[0], Range[1]].
type Linear struct {
	Domain [2]float64
	Range  [2]float64

	unit mscale.Linear
}

// NewLinear builds a linear scale. A domain with lo == hi is widened to
// [lo, lo+MinSpan].
func NewLinear(lo, hi, r0, r1 float64) (Linear, error) {
	if !finite(lo, hi, r0, r1) {
		return Linear{}, errors.New(errors.ErrCodeDegenerateDomain,
			"scale bounds must be finite: domain [%v, %v], range [%v, %v]", lo, hi, r0, r1)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo == 0 {
		hi = lo + MinSpan
	}
	return Linear{
		Domain: [2]float64{lo, hi},
		Range:  [2]float64{r0, r1},
		unit:   mscale.Linear{Min: lo, Max: hi},
	}, nil
}

// Map converts a domain value to a pixel position. Values outside the domain
// extrapolate.
func (s Linear) Map(x float64) float64 {
	return s.Range[0] + s.unit.Map(x)*(s.Range[1]-s.Range[0])
}

// Invert converts a pixel position back to a domain value.
func (s Linear) Invert(px float64) float64 {
	t := (px - s.Range[0]) / (s.Range[1] - s.Range[0])
	return s.Domain[0] + t*(s.Domain[1]-s.Domain[0])
}

// Span returns the width of the domain; never zero.
func (s Linear) Span() float64 { return s.Domain[1] - s.Domain[0] }

// Ticks returns nicely spaced major tick values inside the domain, picking
// the tick level whose count lies closest to count. With integer set, ticks
// are restricted to whole numbers. If no tick level satisfies the
// constraints, the domain ends are returned.
func (s Linear) Ticks(count int, integer bool) []float64 {
	if count < 1 {
		return nil
	}
	o := mscale.TickOptions{Max: count}
	if integer {
		o.MinLevel, o.MaxLevel = 0, 1000
	}
	var all []float64
	if level, ok := o.FindLevel(s.unit, 0); ok {
		// level is the densest one within count; the next denser level
		// may still land nearer to it.
		if !integer || level > o.MinLevel {
			over, under := s.unit.CountTicks(level-1)-count, count-s.unit.CountTicks(level)
			if over < under {
				level--
			}
		}
		all = s.unit.TicksAtLevel(level).([]float64)
	}
	major := all[:0:0]
	for _, v := range all {
		if v >= s.Domain[0] && v <= s.Domain[1] {
			major = append(major, v)
		}
	}
	if len(major) == 0 {
		if count == 1 {
			return []float64{s.Domain[0]}
		}
		return []float64{s.Domain[0], s.Domain[1]}
	}
	return major
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
