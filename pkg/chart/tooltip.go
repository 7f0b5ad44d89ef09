package chart

import "strings"

// Tooltip placement relative to the pointer, and its opacity while shown.
const (
	TooltipOffsetX = -10
	TooltipOffsetY = -30
	TooltipOpacity = 0.9
)

// TooltipContent is what a hover over a cell displays.
type TooltipContent struct {
	Year    int      `json:"year"`
	Lines   []string `json:"lines"`
	Opacity float64  `json:"opacity"`
}

// Text joins the lines with sep.
func (t TooltipContent) Text(sep string) string { return strings.Join(t.Lines, sep) }

// TooltipHidden is the state after the pointer leaves a cell.
type TooltipHidden struct {
	Opacity float64 `json:"opacity"`
}

// Tooltip composes the hover text for a cell.
func Tooltip(base float64, c Cell) TooltipContent {
	return TooltipContent{
		Year: c.Year,
		Lines: []string{
			YearLabel(float64(c.Year)) + " - " + MonthName(c.Month),
			"Temp: " + FormatTemperature(base, c.Variance),
			"Variance: " + FormatVariance(c.Variance),
		},
		Opacity: TooltipOpacity,
	}
}

// HideTooltip is the pointer-leave handler.
func HideTooltip() TooltipHidden { return TooltipHidden{Opacity: 0} }
