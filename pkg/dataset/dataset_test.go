package dataset

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/heatmap/pkg/errors"
)

func TestDecode(t *testing.T) {
	f, err := os.Open("testdata/sample.json")
	require.NoError(t, err)
	defer f.Close()

	d, err := Decode(f)
	require.NoError(t, err)

	assert.InDelta(t, 8.66, d.BaseTemperature, 1e-9)
	require.Equal(t, 6, d.Len())
	assert.Equal(t, VarianceRecord{Year: 1753, Month: 1, Variance: -1.366}, d.Records[0])
	assert.Equal(t, 12, d.Records[5].Month, "months stay 1-based after decode")
}

func TestDecodeMissingVariance(t *testing.T) {
	d, err := Decode(strings.NewReader(`{"baseTemperature": 8.66}`))
	require.NoError(t, err)
	assert.Zero(t, d.Len())
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"baseTemperature": `))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLoadFailure))
}

func TestMarshalDecode(t *testing.T) {
	in := Dataset{BaseTemperature: 9, Records: []VarianceRecord{{Year: 2000, Month: 6, Variance: 0.5}}}
	data, err := Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"monthlyVariance"`)

	out, err := Decode(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTemperature(t *testing.T) {
	assert.InDelta(t, 7.294, Temperature(8.66, VarianceRecord{Variance: -1.366}), 1e-9)
	assert.InDelta(t, 8.66, Temperature(8.66, VarianceRecord{}), 1e-9)
}
