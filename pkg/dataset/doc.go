// Package dataset loads and normalizes the monthly global-temperature
// variance dataset.
//
// # Data Shape
//
// The source document is JSON:
//
//	{
//	  "baseTemperature": 8.66,
//	  "monthlyVariance": [
//	    {"year": 1753, "month": 1, "variance": -1.366},
//	    ...
//	  ]
//	}
//
// Months arrive 1-based (1 = January). [Decode] returns them untouched in a
// [Dataset]; [Normalize] is the only way to obtain the canonical 0-based form
// ([Normalized]), and because the two are distinct types a dataset cannot be
// normalized twice.
//
// # Baseline Partition
//
// [Normalized] also carries the records strictly below the baseline
// (variance < 0) and strictly above it (variance > 0). Records exactly at the
// baseline belong to neither subset and never influence the legend domain.
//
// # Loading
//
// [Loader] reads a source that is either an http(s) URL or a local file path.
// There are no retries: a failed fetch is reported once as a LOAD_FAILURE.
package dataset
