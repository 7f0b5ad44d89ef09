package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/heatmap/pkg/chart"
)

const defaultFont = "sans-serif"

const chartCSS = `
    #%[1]s { font-family: %[2]s; }
    #%[1]s .tick text { font-size: 10px; fill: #333; }
    #%[1]s .tick line { stroke: #333; }
    #%[1]s .cell:hover { stroke: #000; stroke-width: 1; }
    #%[1]s #tooltip { pointer-events: none; transition: opacity 0.1s; }
    #%[1]s #tooltip rect { fill: #222; }
    #%[1]s #tooltip text { fill: #fff; font-size: 12px; }`

// Hover and leave apply the precomputed tooltip state: lines from
// data-tooltip, offset from the pointer, opacity on and off.
const tooltipJS = `
    (function() {
      var svg = document.getElementById('%[1]s');
      var tip = svg.querySelector('#tooltip');
      var box = tip.querySelector('rect');
      var text = tip.querySelector('text');
      function toSVG(ev) {
        var pt = svg.createSVGPoint();
        pt.x = ev.clientX; pt.y = ev.clientY;
        return pt.matrixTransform(svg.getScreenCTM().inverse());
      }
      svg.querySelectorAll('.cell').forEach(function(cell) {
        cell.addEventListener('mouseover', function(ev) {
          var lines = cell.dataset.tooltip.split('\n');
          text.textContent = '';
          lines.forEach(function(line, i) {
            var span = document.createElementNS('http://www.w3.org/2000/svg', 'tspan');
            span.setAttribute('x', 8);
            span.setAttribute('dy', i === 0 ? '1.2em' : '1.3em');
            span.textContent = line;
            text.appendChild(span);
          });
          var bb = text.getBBox();
          box.setAttribute('width', bb.width + 16);
          box.setAttribute('height', bb.height + 12);
          var p = toSVG(ev);
          tip.setAttribute('transform', 'translate(' + (p.x + %[2]d) + ',' + (p.y + %[3]d - bb.height) + ')');
          tip.setAttribute('data-year', cell.dataset.year);
          tip.setAttribute('opacity', '%[4]g');
        });
        cell.addEventListener('mouseout', function() {
          tip.setAttribute('opacity', '%[5]g');
        });
      });
    })();`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	font        string
	interactive bool
	metadata    bool
}

// WithFont sets the CSS font-family.
func WithFont(f string) SVGOption { return func(r *svgRenderer) { r.font = f } }

// WithoutInteraction omits the tooltip element and hover script.
func WithoutInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

// WithoutMetadata omits the title and description elements; used when the
// surrounding document renders them.
func WithoutMetadata() SVGOption { return func(r *svgRenderer) { r.metadata = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{font: defaultFont, interactive: true, metadata: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws c as an SVG document.
func RenderSVG(c *chart.Chart, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	d := c.Dimensions

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		attr(c.ID), num(d.Width), num(d.Height), num(d.Width), num(d.Height))

	if r.metadata {
		fmt.Fprintf(&buf, `  <title id="%s">%s</title>`+"\n", chart.IDTitle, text(c.Title))
		fmt.Fprintf(&buf, `  <desc id="%s">%s</desc>`+"\n", chart.IDDescription, text(c.Description))
	}
	fmt.Fprintf(&buf, "  <style>"+chartCSS+"\n  </style>\n", c.ID, r.font)

	tx, ty := c.Translate()
	fmt.Fprintf(&buf, `  <g transform="translate(%s, %s)">`+"\n", num(tx), num(ty))
	renderAxis(&buf, c.XAxis, "    ")
	renderAxis(&buf, c.YAxis, "    ")
	renderCells(&buf, c)
	buf.WriteString("  </g>\n")

	renderLegend(&buf, c.Legend)

	if r.interactive {
		renderTooltip(&buf, c.ID)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCells(buf *bytes.Buffer, c *chart.Chart) {
	buf.WriteString(`    <g class="cells">` + "\n")
	for i, cell := range c.Cells {
		tip := c.Tooltip(i)
		fmt.Fprintf(buf, `      <rect class="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" data-month="%d" data-year="%d" data-temp="%s" data-variance="%s" data-tooltip="%s"/>`+"\n",
			chart.ClassCell, num(cell.X), num(cell.Y), num(cell.Width), num(cell.Height), attr(cell.Fill),
			cell.Month, cell.Year, attr(cell.TempLabel), chart.FormatVariance(cell.Variance), attr(tip.Text("\n")))
	}
	buf.WriteString("    </g>\n")
}

// renderAxis draws ticks the way d3's axis does, without the domain path.
func renderAxis(buf *bytes.Buffer, ax chart.Axis, indent string) {
	idAttr := ""
	if ax.ID != "" {
		idAttr = fmt.Sprintf(` id="%s"`, ax.ID)
	}
	fmt.Fprintf(buf, `%s<g%s class="axis" transform="translate(%s, %s)">`+"\n", indent, idAttr, num(ax.X), num(ax.Y))

	spacing := max(ax.TickSize, 0) + 3
	for _, tk := range ax.Ticks {
		switch ax.Orient {
		case "left":
			fmt.Fprintf(buf, `%s  <g class="tick" transform="translate(0, %s)"><line x2="%s"/><text x="%s" dy="0.32em" text-anchor="end">%s</text></g>`+"\n",
				indent, num(tk.Pos), num(-ax.TickSize), num(-spacing), text(tk.Label))
		default:
			fmt.Fprintf(buf, `%s  <g class="tick" transform="translate(%s, 0)"><line y2="%s"/><text y="%s" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
				indent, num(tk.Pos), num(ax.TickSize), num(spacing), text(tk.Label))
		}
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

func renderLegend(buf *bytes.Buffer, l chart.Legend) {
	fmt.Fprintf(buf, `  <g id="%s" transform="translate(%s, %s)">`+"\n", chart.IDLegend, num(l.X), num(l.Y))
	renderAxis(buf, l.Axis, "    ")
	fmt.Fprintf(buf, `    <g transform="translate(0, %s)">`+"\n", num(-l.SwatchHeight))
	for _, b := range l.Buckets {
		fmt.Fprintf(buf, `      <rect x="%s" width="%s" height="%s" fill="%s" data-low="%s" data-high="%s"/>`+"\n",
			num(b.X), num(b.Width), num(l.SwatchHeight), attr(b.Color), chart.LegendLabel(b.Low), chart.LegendLabel(b.High))
	}
	buf.WriteString("    </g>\n  </g>\n")
}

func renderTooltip(buf *bytes.Buffer, id string) {
	fmt.Fprintf(buf, `  <g id="%s" opacity="%g"><rect rx="4"/><text></text></g>`+"\n", chart.IDTooltip, chart.HideTooltip().Opacity)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA["+tooltipJS+"\n  ]]></script>\n",
		id, chart.TooltipOffsetX, chart.TooltipOffsetY, chart.TooltipOpacity, chart.HideTooltip().Opacity)
}

func num(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func text(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// attr escapes s for a double-quoted attribute. Newlines become &#xA; so
// they survive attribute normalization.
func attr(s string) string { return text(s) }
