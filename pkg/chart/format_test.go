package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthName(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 12; i++ {
		name := MonthName(i)
		assert.NotEmpty(t, name, "month %d", i)
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
	}
	assert.Equal(t, "January", MonthName(0))
	assert.Equal(t, "December", MonthName(11))

	for _, i := range []int{-1, 12, 13, 100} {
		assert.Equal(t, "", MonthName(i), "month %d", i)
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		variance float64
		want     string
	}{
		{"negative adds", 8.66, -0.2, "8.5℃"},
		{"negative large", 8.66, -1.366, "7.3℃"},
		{"zero", 8.66, 0, "8.7℃"},
		// Positive variances mirror below the baseline.
		{"positive subtracts", 8.66, 1.3, "7.4℃"},
		{"positive small", 8.66, 0.2, "8.5℃"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTemperature(tt.base, tt.variance))
		})
	}
}

func TestFormatTemperatureAsymmetry(t *testing.T) {
	// Equal and opposite variances render the same label.
	assert.Equal(t, FormatTemperature(8.66, -0.5), FormatTemperature(8.66, 0.5))
}

func TestFormatVariance(t *testing.T) {
	assert.Equal(t, "-1.4", FormatVariance(-1.366))
	assert.Equal(t, "1.3", FormatVariance(1.3))
	assert.Equal(t, "0.0", FormatVariance(0))
}

func TestYearLabel(t *testing.T) {
	assert.Equal(t, "1800", YearLabel(1800))
	assert.Equal(t, "1800", YearLabel(1800.9))
	assert.Equal(t, "-5", YearLabel(-4.5))
}

func TestLegendLabel(t *testing.T) {
	assert.Equal(t, "8.6", LegendLabel(8.596))
	assert.Equal(t, "10.0", LegendLabel(9.96))
}
