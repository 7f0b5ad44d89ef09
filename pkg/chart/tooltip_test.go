package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/heatmap/pkg/dataset"
)

func TestTooltip(t *testing.T) {
	cell := Cell{VarianceRecord: dataset.VarianceRecord{Year: 1753, Month: 0, Variance: -0.2}}
	tip := Tooltip(8.66, cell)

	require.Len(t, tip.Lines, 3)
	assert.Equal(t, "1753 - January", tip.Lines[0])
	assert.Equal(t, "Temp: 8.5℃", tip.Lines[1])
	assert.Equal(t, "Variance: -0.2", tip.Lines[2])
	assert.Equal(t, 1753, tip.Year)
	assert.Equal(t, TooltipOpacity, tip.Opacity)
	assert.Equal(t, "1753 - January <br> Temp: 8.5℃ <br> Variance: -0.2", tip.Text(" <br> "))
}

func TestTooltipOutOfRangeMonth(t *testing.T) {
	tip := Tooltip(8.66, Cell{VarianceRecord: dataset.VarianceRecord{Year: 2000, Month: 12}})
	assert.Equal(t, "2000 - ", tip.Lines[0])
}

func TestHideTooltip(t *testing.T) {
	assert.Equal(t, 0.0, HideTooltip().Opacity)
	assert.Equal(t, HideTooltip(), HideTooltip())
}

func TestChartTooltip(t *testing.T) {
	c := build(t, twoExtremes())
	assert.Equal(t, "2015 - December", c.Tooltip(1).Lines[0])
	assert.Equal(t, "Variance: 1.3", c.Tooltip(1).Lines[2])
}
