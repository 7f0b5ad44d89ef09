package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatmap/pkg/chart"
	"github.com/matzehuels/heatmap/pkg/pipeline"
)

const (
	cellGlyph      = "█"
	emptyGlyph     = " "
	monthLabelCols = 11 // "September" plus padding
	minGridCols    = 10
	yearLabelEvery = 10
)

var (
	viewHelpStyle    = lipgloss.NewStyle().Foreground(colorDim)
	viewLabelStyle   = lipgloss.NewStyle().Foreground(colorGray)
	viewCursorStyle  = lipgloss.NewStyle().Reverse(true)
	viewTooltipStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

func (c *CLI) viewCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "view [source]",
		Short: "Explore the heat map in the terminal",
		Long: `View renders the heat map as coloured blocks, one column per year and one
row per month. Move the cursor to hover a cell and show its tooltip; Esc hides it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(cmd, args, &flags)
			if err != nil {
				return err
			}
			return c.runView(cmd.Context(), opts, flags.noCache)
		},
	}
	flags.register(cmd)
	registerFlagCompletions(cmd)
	return cmd
}

func (c *CLI) runView(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Loading "+opts.Source)
	spinner.Start()
	ds, err := runner.Load(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	ch, err := runner.Build(ds, "", opts)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(newHeatmapModel(ch), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// heatmapModel - terminal heat map
// =============================================================================

type cellKey struct{ year, month int }

// heatmapModel draws one block per cell. The cursor plays the role of the
// pointer: moving onto a cell is a hover, Esc is a leave.
type heatmapModel struct {
	chart  *chart.Chart
	index  map[cellKey]int
	years  []int
	months []int

	col, row int // cursor position in years/months
	offset   int // first visible year column
	width    int

	tooltip chart.TooltipContent
	opacity float64 // 0 while hidden
}

func newHeatmapModel(c *chart.Chart) heatmapModel {
	m := heatmapModel{
		chart: c,
		index: make(map[cellKey]int, len(c.Cells)),
		width: 80,
	}
	for y := c.MinYear; y <= c.MaxYear; y++ {
		m.years = append(m.years, y)
	}
	for _, t := range c.YAxis.Ticks {
		m.months = append(m.months, int(t.Value))
	}
	for i, cell := range c.Cells {
		m.index[cellKey{cell.Year, cell.Month}] = i
	}
	m.hover()
	return m
}

func (m heatmapModel) Init() tea.Cmd {
	return nil
}

func (m heatmapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.leave()
			return m, nil
		case "enter", " ":
			m.hover()
			return m, nil
		case "left", "h":
			m.col = max(0, m.col-1)
		case "right", "l":
			m.col = min(len(m.years)-1, m.col+1)
		case "up", "k":
			m.row = max(0, m.row-1)
		case "down", "j":
			m.row = min(len(m.months)-1, m.row+1)
		case "pgup", "H":
			m.col = max(0, m.col-yearLabelEvery)
		case "pgdown", "L":
			m.col = min(len(m.years)-1, m.col+yearLabelEvery)
		case "home", "g":
			m.col = 0
		case "end", "G":
			m.col = len(m.years) - 1
		default:
			return m, nil
		}
		m.scroll()
		m.hover()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.scroll()
	}
	return m, nil
}

// cursorCell returns the cell index under the cursor, or -1.
func (m heatmapModel) cursorCell() int {
	if len(m.years) == 0 || len(m.months) == 0 {
		return -1
	}
	i, ok := m.index[cellKey{m.years[m.col], m.months[m.row]}]
	if !ok {
		return -1
	}
	return i
}

// hover shows the tooltip for the cell under the cursor; a gap hides it.
func (m *heatmapModel) hover() {
	i := m.cursorCell()
	if i < 0 {
		m.leave()
		return
	}
	m.tooltip = m.chart.Tooltip(i)
	m.opacity = m.tooltip.Opacity
}

func (m *heatmapModel) leave() {
	m.tooltip = chart.TooltipContent{}
	m.opacity = chart.HideTooltip().Opacity
}

func (m heatmapModel) tooltipVisible() bool { return m.opacity > 0 }

func (m heatmapModel) gridCols() int {
	return max(minGridCols, m.width-monthLabelCols)
}

// scroll keeps the cursor column visible.
func (m *heatmapModel) scroll() {
	cols := m.gridCols()
	if m.col < m.offset {
		m.offset = m.col
	}
	if m.col >= m.offset+cols {
		m.offset = m.col - cols + 1
	}
}

func (m heatmapModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.chart.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.chart.Description))
	b.WriteString("\n\n")

	end := min(len(m.years), m.offset+m.gridCols())
	for r, month := range m.months {
		b.WriteString(viewLabelStyle.Render(fmt.Sprintf("%*s ", monthLabelCols-1, chart.MonthName(month))))
		for col := m.offset; col < end; col++ {
			b.WriteString(m.renderCell(col, r, month))
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", monthLabelCols))
	b.WriteString(viewLabelStyle.Render(m.yearAxis(m.offset, end)))
	b.WriteString("\n\n")

	b.WriteString(m.legend())
	b.WriteString("\n\n")

	if m.tooltipVisible() {
		b.WriteString(viewTooltipStyle.Render(m.tooltip.Text("\n")))
	} else {
		b.WriteString(viewHelpStyle.Render("(no cell selected)"))
	}
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("←/→ year  ↑/↓ month  PgUp/PgDn ±10y  ⏎ show  esc hide  q quit"))
	return b.String()
}

func (m heatmapModel) renderCell(col, row, month int) string {
	i, ok := m.index[cellKey{m.years[col], month}]
	glyph, style := emptyGlyph, lipgloss.NewStyle()
	if ok {
		glyph = cellGlyph
		style = style.Foreground(lipgloss.Color(m.chart.Cells[i].Fill))
	}
	if col == m.col && row == m.row {
		return viewCursorStyle.Render(glyph)
	}
	return style.Render(glyph)
}

// yearAxis labels every tenth year that fits before the next label.
func (m heatmapModel) yearAxis(from, to int) string {
	line := []rune(strings.Repeat(" ", to-from))
	for col := from; col < to; col++ {
		if m.years[col]%yearLabelEvery != 0 {
			continue
		}
		label := []rune(chart.YearLabel(float64(m.years[col])))
		at := col - from
		if at+len(label) > len(line) {
			break
		}
		copy(line[at:], label)
	}
	return string(line)
}

// legend draws one swatch per threshold bucket with its lower bound.
func (m heatmapModel) legend() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", monthLabelCols))
	for _, bucket := range m.chart.Legend.Buckets {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(bucket.Color)).Render("██"))
		b.WriteString(viewLabelStyle.Render(chart.LegendLabel(bucket.Low) + " "))
	}
	b.WriteString(StyleDim.Render("℃"))
	return b.String()
}
