package dataset

import (
	"encoding/json"
	"io"
	"math"

	"github.com/matzehuels/heatmap/pkg/errors"
)

// DefaultSource is the freeCodeCamp reference dataset.
const DefaultSource = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json"

// MonthsPerYear is the number of rows in the heat map.
const MonthsPerYear = 12

// VarianceRecord is one (year, month) observation expressed as an offset in
// °C from the dataset's base temperature.
type VarianceRecord struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Variance float64 `json:"variance"`
}

// Dataset is the decoded document with months exactly as received (1-12).
type Dataset struct {
	BaseTemperature float64          `json:"baseTemperature"`
	Records         []VarianceRecord `json:"monthlyVariance"`
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// Decode reads a dataset document from r.
// Schema is not validated beyond what encoding/json enforces; a missing
// monthlyVariance array decodes to an empty dataset and is rejected later
// by the chart builder.
func Decode(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeLoadFailure, err, "decode dataset")
	}
	return d, nil
}

// Marshal encodes d in the source document format.
func Marshal(d Dataset) ([]byte, error) {
	return json.Marshal(d)
}

// Temperature returns the absolute temperature of a record: base + variance.
func Temperature(base float64, r VarianceRecord) float64 {
	return base + r.Variance
}

// finite reports whether every float in the dataset is a real number.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
