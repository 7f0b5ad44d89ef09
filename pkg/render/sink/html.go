package sink

import (
	"bytes"
	"html/template"

	"github.com/matzehuels/heatmap/pkg/chart"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: {{.Font}}; margin: 0; padding: 1rem; background: #fafafa; color: #222; }
    main { display: flex; flex-direction: column; align-items: center; }
    #{{.TitleID}} { margin: 0.5rem 0 0.25rem; }
    #{{.DescriptionID}} { margin: 0 0 1rem; }
    #{{.TooltipID}} {
      position: fixed; opacity: {{.Hidden}}; pointer-events: none;
      padding: 6px 10px; border-radius: 4px; background: #222; color: #fff;
      font-size: 12px; line-height: 1.4; transition: opacity 0.1s;
    }
  </style>
</head>
<body>
  <main>
    <h1 id="{{.TitleID}}">{{.Title}}</h1>
    <p id="{{.DescriptionID}}">{{.Description}}</p>
    <section>
{{.SVG}}
    </section>
  </main>
  <div id="{{.TooltipID}}"></div>
  <script>
    (function() {
      var tip = document.getElementById({{.TooltipID}});
      document.querySelectorAll({{.CellSelector}}).forEach(function(cell) {
        cell.addEventListener('mouseover', function(ev) {
          tip.innerHTML = '';
          cell.dataset.tooltip.split('\n').forEach(function(line, i) {
            if (i > 0) tip.appendChild(document.createElement('br'));
            tip.appendChild(document.createTextNode(line));
          });
          tip.style.top = (ev.clientY + {{.OffsetY}}) + 'px';
          tip.style.left = (ev.clientX + {{.OffsetX}}) + 'px';
          tip.style.opacity = {{.Opacity}};
          tip.setAttribute('data-year', cell.dataset.year);
        });
        cell.addEventListener('mouseout', function() {
          tip.style.opacity = {{.Hidden}};
        });
      });
    })();
  </script>
</body>
</html>
`))

type pageData struct {
	Title, Description string
	Font               string
	SVG                template.HTML
	TitleID            string
	DescriptionID      string
	TooltipID          string
	CellSelector       string
	OffsetX, OffsetY   int
	Opacity, Hidden    float64
}

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	font string
}

// WithHTMLFont sets the page font-family.
func WithHTMLFont(f string) HTMLOption { return func(r *htmlRenderer) { r.font = f } }

// RenderHTML draws c as a standalone HTML page. The title and description
// are page elements and the tooltip is a floating div positioned relative
// to the pointer.
func RenderHTML(c *chart.Chart, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{font: defaultFont}
	for _, opt := range opts {
		opt(&r)
	}

	svg := RenderSVG(c, WithoutMetadata(), WithoutInteraction(), WithFont(r.font))
	data := pageData{
		Title:         c.Title,
		Description:   c.Description,
		Font:          r.font,
		SVG:           template.HTML(svg),
		TitleID:       chart.IDTitle,
		DescriptionID: chart.IDDescription,
		TooltipID:     chart.IDTooltip,
		CellSelector:  "#" + c.ID + " ." + chart.ClassCell,
		OffsetX:       chart.TooltipOffsetX,
		OffsetY:       chart.TooltipOffsetY,
		Opacity:       chart.TooltipOpacity,
		Hidden:        chart.HideTooltip().Opacity,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
