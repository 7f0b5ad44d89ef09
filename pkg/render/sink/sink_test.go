package sink

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/heatmap/pkg/chart"
	"github.com/matzehuels/heatmap/pkg/dataset"
)

func testChart(t *testing.T) *chart.Chart {
	t.Helper()
	d := dataset.Dataset{BaseTemperature: 8.66}
	for y := 1900; y <= 1902; y++ {
		for m := 1; m <= 12; m++ {
			d.Records = append(d.Records, dataset.VarianceRecord{
				Year: y, Month: m, Variance: float64(m-6) / 4,
			})
		}
	}
	rc := chart.DefaultRenderContext()
	rc.ID = "hm-test"
	c, err := chart.Build(dataset.Normalize(d), rc)
	require.NoError(t, err)
	return c
}
