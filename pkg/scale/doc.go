// Package scale maps data values to pixels and colours.
//
// [Linear] maps a continuous domain onto a pixel range. The unit mapping and
// tick search come from go-moremath; this package adds the pixel range and
// the degenerate-domain policy: a zero-width domain [v, v] is widened to the
// minimum span [v, v+1], and a non-finite bound is a DEGENERATE_DOMAIN error.
//
// [Threshold] is a step function from a temperature domain onto a discrete
// palette. It splits [min, max] into n equal-width bins using n-1 boundaries
//
//	b_i = min + i*(max-min)/n    for i = 1..n-1
//
// and maps a value v to colour index "number of boundaries <= v", so a value
// exactly on a boundary falls in the upper bin.
package scale
