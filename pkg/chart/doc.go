// Package chart turns a normalized dataset into a fully laid-out heat map.
//
// [Build] is the single entry point. It derives the scales (year → x,
// month → y, temperature → legend pixels, temperature → colour), positions
// one [Cell] per record, computes axis ticks and legend swatches, and returns
// a read-only [Chart] that sinks draw without further computation.
//
// # Layout
//
// The frame follows [DefaultDimensions]: 1600×600 with margins of 20 (top),
// 80 (bottom), 80 (left) and 40 (right). Months run top to bottom, January in
// the first row; the y-axis labels use the same order. Cells are anchored at
// their year's x position and vertically centred on their month's tick.
//
// # Errors
//
// Build fails before producing any geometry when the dataset is empty
// (EMPTY_DATASET), contains non-finite numbers, or has no variance on either
// side of the baseline (DEGENERATE_DOMAIN). A single distinct year is not an
// error: the year scale is widened to a span of one.
//
// # Hover
//
// [Tooltip] and [HideTooltip] are the pure hover/leave handlers. Whatever
// dispatches pointer events (the SVG script, the terminal viewer) calls them
// and applies the result.
package chart
