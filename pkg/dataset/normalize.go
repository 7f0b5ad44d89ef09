package dataset

import "math"

// Normalized is a dataset whose months use the canonical 0-based index
// (0 = January ... 11 = December). It can only be produced by [Normalize].
type Normalized struct {
	BaseTemperature float64
	Records         []VarianceRecord

	// Below holds records with variance < 0, Above those with variance > 0.
	// Records exactly at the baseline are in neither.
	Below []VarianceRecord
	Above []VarianceRecord
}

// Normalize converts d to the canonical month index and partitions records
// around the baseline. It returns new slices and leaves d untouched.
func Normalize(d Dataset) Normalized {
	n := Normalized{
		BaseTemperature: d.BaseTemperature,
		Records:         make([]VarianceRecord, len(d.Records)),
	}
	for i, r := range d.Records {
		r.Month--
		n.Records[i] = r
		switch {
		case r.Variance < 0:
			n.Below = append(n.Below, r)
		case r.Variance > 0:
			n.Above = append(n.Above, r)
		}
	}
	return n
}

// Len returns the number of records.
func (n Normalized) Len() int { return len(n.Records) }

// Empty reports whether there are no records.
func (n Normalized) Empty() bool { return len(n.Records) == 0 }

// YearExtent returns the smallest and largest year. Both are zero when the
// dataset is empty.
func (n Normalized) YearExtent() (lo, hi int) {
	return extent(n.Records, func(r VarianceRecord) int { return r.Year })
}

// MonthExtent returns the smallest and largest canonical month index.
func (n Normalized) MonthExtent() (lo, hi int) {
	return extent(n.Records, func(r VarianceRecord) int { return r.Month })
}

// DistinctYears counts the distinct years present.
func (n Normalized) DistinctYears() int {
	seen := make(map[int]struct{})
	for _, r := range n.Records {
		seen[r.Year] = struct{}{}
	}
	return len(seen)
}

// TemperatureExtent returns the lowest temperature among below-baseline
// records and the highest among above-baseline records. okLo/okHi are false
// when the respective subset is empty.
func (n Normalized) TemperatureExtent() (lo, hi float64, okLo, okHi bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range n.Below {
		lo = math.Min(lo, Temperature(n.BaseTemperature, r))
		okLo = true
	}
	for _, r := range n.Above {
		hi = math.Max(hi, Temperature(n.BaseTemperature, r))
		okHi = true
	}
	return lo, hi, okLo, okHi
}

// Finite reports whether the base temperature and every variance are finite.
func (n Normalized) Finite() bool {
	if !finite(n.BaseTemperature) {
		return false
	}
	for _, r := range n.Records {
		if !finite(r.Variance) {
			return false
		}
	}
	return true
}

func extent(rs []VarianceRecord, key func(VarianceRecord) int) (lo, hi int) {
	if len(rs) == 0 {
		return 0, 0
	}
	lo, hi = key(rs[0]), key(rs[0])
	for _, r := range rs[1:] {
		lo = min(lo, key(r))
		hi = max(hi, key(r))
	}
	return lo, hi
}
