// Package sink draws a built [chart.Chart] into output documents.
//
// # Formats
//
//   - SVG: standalone document with hover tooltips ([RenderSVG])
//   - HTML: page with title, description, the SVG and a floating tooltip
//     ([RenderHTML])
//   - JSON: the declarative draw instructions ([RenderJSON])
//   - PNG and PDF: the SVG converted by rsvg-convert ([RenderPNG], [RenderPDF])
//
// Every sink is a pure function of the chart; sinks may run concurrently on
// the same chart.
//
// # Element IDs
//
// The SVG and HTML documents use fixed element IDs (title, description,
// x-axis, y-axis, legend, tooltip) and the "cell" class for data
// rectangles. Each cell carries data-month (0 = January), data-year and
// data-temp attributes. Styles and scripts are scoped to the chart ID so
// several charts can share one page.
package sink
