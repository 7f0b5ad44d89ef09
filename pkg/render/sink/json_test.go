package sink

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJSON(t *testing.T) {
	c := testChart(t)
	data, err := RenderJSON(c, WithJSONPalette("RdYlBu_11"))
	require.NoError(t, err)

	var out struct {
		ID      string `json:"id"`
		Palette string `json:"palette"`
		Scales  struct {
			Year struct {
				Domain [2]float64 `json:"domain"`
			} `json:"year"`
			Boundaries []float64 `json:"boundaries"`
			Colors     []string  `json:"colors"`
		} `json:"scales"`
		Cells []struct {
			Year      int      `json:"year"`
			Month     int      `json:"month"`
			Variance  float64  `json:"variance"`
			TempLabel string   `json:"tempLabel"`
			Fill      string   `json:"fill"`
			Tooltip   []string `json:"tooltip"`
		} `json:"cells"`
		Legend struct {
			Buckets []struct {
				Color string  `json:"color"`
				Width float64 `json:"width"`
			} `json:"buckets"`
		} `json:"legend"`
		Tooltip struct {
			OffsetX int     `json:"offsetX"`
			OffsetY int     `json:"offsetY"`
			Opacity float64 `json:"opacity"`
		} `json:"tooltip"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "hm-test", out.ID)
	assert.Equal(t, "RdYlBu_11", out.Palette)
	assert.Equal(t, [2]float64{1900, 1902}, out.Scales.Year.Domain)
	assert.Len(t, out.Scales.Colors, 11)
	assert.Len(t, out.Scales.Boundaries, 10)
	require.Len(t, out.Cells, len(c.Cells))

	first := out.Cells[0]
	assert.Equal(t, 1900, first.Year)
	assert.Equal(t, 0, first.Month)
	assert.NotEmpty(t, first.Fill)
	require.Len(t, first.Tooltip, 3)
	assert.Equal(t, "1900 - January", first.Tooltip[0])

	assert.Len(t, out.Legend.Buckets, 11)
	assert.Equal(t, -10, out.Tooltip.OffsetX)
	assert.Equal(t, -30, out.Tooltip.OffsetY)
	assert.Equal(t, 0.9, out.Tooltip.Opacity)
}

func TestRenderJSONCompact(t *testing.T) {
	c := testChart(t)
	pretty, err := RenderJSON(c)
	require.NoError(t, err)
	compact, err := RenderJSON(c, WithJSONCompact())
	require.NoError(t, err)

	assert.NotContains(t, string(compact), "\n  ", "compact output is indented")
	assert.Less(t, len(compact), len(pretty))
}
