package chart

import (
	"fmt"
	"math"
	"strconv"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName maps a canonical month index (0 = January) to its English name.
// Indices outside 0-11 yield "".
func MonthName(i int) string {
	if i < 0 || i >= len(monthNames) {
		return ""
	}
	return monthNames[i]
}

// FormatTemperature renders the absolute temperature of a record to one
// decimal with a ℃ suffix.
//
// For negative variances this is base+variance. For zero and positive
// variances it is base-variance, mirroring the value below the baseline.
// Use [dataset.Temperature] for the true value.
func FormatTemperature(base, variance float64) string {
	t := base - variance
	if variance < 0 {
		t = base + variance
	}
	return fmt.Sprintf("%.1f℃", t)
}

// FormatVariance renders a variance to one decimal.
func FormatVariance(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// YearLabel renders a year tick, dropping any fractional part.
func YearLabel(x float64) string {
	return strconv.Itoa(int(math.Floor(x)))
}

// LegendLabel renders a legend tick to one decimal.
func LegendLabel(x float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64)
}

func describe(minYear, maxYear int, base float64) string {
	return fmt.Sprintf("%d - %d: base temperature %s℃", minYear, maxYear, strconv.FormatFloat(base, 'f', -1, 64))
}
