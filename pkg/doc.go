// Package pkg holds the heatmap libraries.
//
// # Overview
//
// Heatmap turns the monthly global land-surface temperature record into a
// year-by-month heat map. The packages split into three areas:
//
//  1. Domain: [dataset], [scale], [palette], [chart]
//  2. Output: [render] and its sinks
//  3. Infrastructure: [cache], [config], [observability], [errors], [pipeline]
//
// # Data flow
//
//	URL or JSON file
//	      ↓
//	[dataset] Loader → Normalize (months 0–11, records split around base)
//	      ↓
//	[chart] Build (year/month/legend scales, threshold colours, cells, axes)
//	      ↓
//	[render/sink] SVG, HTML, JSON, PNG, PDF
//
// # Quick Start
//
//	ds, err := dataset.NewLoader().Load(ctx, dataset.DefaultSource)
//	if err != nil {
//	    return err
//	}
//	c, err := chart.Build(dataset.Normalize(ds), chart.DefaultRenderContext())
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(c)
//
// [pipeline.Runner] does the same with caching and metrics hooks.
package pkg
