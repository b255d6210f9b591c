package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// BarRow is one category of a grouped bar chart, with one value per series.
type BarRow struct {
	Label  string
	Values []aggregate.Proportion
}

// BarChart renders grouped horizontal bars of proportions (0..1).
type BarChart struct {
	title  string
	axis   string
	width  int
	names  []string
	colors []lipgloss.Color
	rows   []BarRow
}

// NewBarChart creates a BarChart with a default width.
func NewBarChart() *BarChart {
	return &BarChart{width: 72}
}

// SetWidth sets the total width including labels and values.
func (b *BarChart) SetWidth(width int) {
	b.width = max(width, 30)
}

// SetTitle sets the chart title and the value axis caption.
func (b *BarChart) SetTitle(title, axis string) {
	b.title = title
	b.axis = axis
}

// SetSeries sets the series names and colors, in row value order.
func (b *BarChart) SetSeries(names []string, colors []lipgloss.Color) {
	b.names = names
	b.colors = colors
}

// SetRows replaces the categories.
func (b *BarChart) SetRows(rows []BarRow) {
	b.rows = rows
}

func (b *BarChart) labelWidth() int {
	w := 0
	for _, r := range b.rows {
		w = max(w, lipgloss.Width(r.Label))
	}
	return w
}

// barWidth is the number of cells a proportion of 1.0 fills.
func (b *BarChart) barWidth() int {
	return max(b.width-b.labelWidth()-7, 5) // " " + bar + " 0.00"
}

// BarLength returns the number of filled cells for p.
func (b *BarChart) BarLength(p aggregate.Proportion) int {
	if !p.Valid {
		return 0
	}
	v := min(max(p.Value, 0), 1)
	return int(v*float64(b.barWidth()) + 0.5)
}

func (b *BarChart) color(i int) lipgloss.Color {
	if i < len(b.colors) {
		return b.colors[i]
	}
	return styles.MutedLight
}

// View renders the chart.
func (b *BarChart) View() string {
	if len(b.rows) == 0 {
		return ""
	}
	lw := b.labelWidth()
	var sb strings.Builder

	if b.title != "" {
		sb.WriteString(styles.SectionTitleStyle.Render(b.title) + "\n")
	}

	for _, row := range b.rows {
		for i, v := range row.Values {
			label := ""
			if i == 0 {
				label = row.Label
			}
			bar := lipgloss.NewStyle().Foreground(b.color(i)).Render(strings.Repeat("█", b.BarLength(v)))
			fmt.Fprintf(&sb, "%-*s %s %s\n", lw, label, bar, v.Format())
		}
	}

	scale := fmt.Sprintf("%-*s 0%s1", lw, "", strings.Repeat(" ", max(b.barWidth()-1, 0)))
	sb.WriteString(styles.MutedTextStyle.Render(scale))
	if b.axis != "" {
		sb.WriteString("\n" + styles.MutedTextStyle.Render(fmt.Sprintf("%-*s %s", lw, "", b.axis)))
	}

	if len(b.names) > 0 {
		parts := make([]string, 0, len(b.names))
		for i, name := range b.names {
			parts = append(parts, lipgloss.NewStyle().Foreground(b.color(i)).Render("■")+" "+name)
		}
		sb.WriteString("\n" + strings.Join(parts, "  "))
	}
	return sb.String()
}
