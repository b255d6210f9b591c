package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// LineSeries is one line of a LineChart. Values align with the chart's x
// positions; missing values leave a gap.
type LineSeries struct {
	Name   string
	Color  lipgloss.Color
	Values []aggregate.Proportion
}

const (
	lineMarker   = '♪'
	lineStroke   = '·'
	yAxisWidth   = 6 // "1.00 ┤"
	minPlotWidth = 10
)

// LineChart plots proportions (0..1) against labelled x positions.
type LineChart struct {
	width  int
	height int
	xs     []string
	series []LineSeries
}

// NewLineChart creates a LineChart with a default size.
func NewLineChart() *LineChart {
	return &LineChart{width: 72, height: 14}
}

// SetSize sets the chart size including axes and labels, excluding the
// legend.
func (c *LineChart) SetSize(width, height int) {
	c.width = max(width, yAxisWidth+minPlotWidth)
	c.height = max(height, 5)
}

// SetData replaces the x labels and the series.
func (c *LineChart) SetData(xs []string, series []LineSeries) {
	c.xs = xs
	c.series = series
}

// plotWidth returns the width of the area right of the y axis.
func (c *LineChart) plotWidth() int {
	return c.width - yAxisWidth
}

// plotHeight returns the number of rows for values; the last two rows hold
// the x axis and its labels.
func (c *LineChart) plotHeight() int {
	return c.height - 2
}

// column maps x index i to a canvas column.
func (c *LineChart) column(i int) int {
	pw := c.plotWidth()
	n := len(c.xs)
	if n <= 1 {
		return yAxisWidth + pw/2
	}
	margin := 2
	return yAxisWidth + margin + i*(pw-1-2*margin)/(n-1)
}

// row maps a proportion to a canvas row, 1.0 at the top.
func (c *LineChart) row(v float64) int {
	ph := c.plotHeight()
	v = math.Max(0, math.Min(1, v))
	return int(math.Round((1 - v) * float64(ph-1)))
}

// Canvas draws the chart without the legend.
func (c *LineChart) Canvas() *Canvas {
	cv := NewCanvas(c.width, c.height)
	ph := c.plotHeight()

	// y axis with labels at 1.0, 0.5 and 0.0
	for y := 0; y < ph; y++ {
		cv.Set(yAxisWidth-1, y, '│', styles.Muted)
	}
	for _, v := range []float64{1, 0.5, 0} {
		y := c.row(v)
		cv.Text(0, y, fmt.Sprintf("%4.2f", v), styles.MutedLight)
		cv.Set(yAxisWidth-1, y, '┤', styles.Muted)
	}

	// x axis
	cv.Set(yAxisWidth-1, ph, '└', styles.Muted)
	for x := yAxisWidth; x < c.width; x++ {
		cv.Set(x, ph, '─', styles.Muted)
	}

	// yard lines and labels
	for i, label := range c.xs {
		x := c.column(i)
		for y := 0; y < ph; y++ {
			cv.Set(x, y, '┊', styles.YardLine)
		}
		cv.Set(x, ph, '┬', styles.Muted)
		cv.Text(x-len(label)/2, ph+1, label, styles.MutedLight)
	}

	// strokes first so markers of every series stay visible
	for _, s := range c.series {
		prev := -1
		for i := range c.xs {
			if i >= len(s.Values) || !s.Values[i].Valid {
				prev = -1
				continue
			}
			if prev >= 0 {
				cv.Line(c.column(prev), c.row(s.Values[prev].Value), c.column(i), c.row(s.Values[i].Value), lineStroke, s.Color, false)
			}
			prev = i
		}
	}
	for _, s := range c.series {
		for i := range c.xs {
			if i < len(s.Values) && s.Values[i].Valid {
				cv.Set(c.column(i), c.row(s.Values[i].Value), lineMarker, s.Color)
			}
		}
	}
	return cv
}

// View renders the chart and its legend.
func (c *LineChart) View() string {
	if len(c.xs) == 0 {
		return styles.MutedTextStyle.Render("No decades to plot.")
	}
	if len(c.series) == 0 {
		return styles.MutedTextStyle.Render("Select one or more tropes.")
	}
	return c.Canvas().View() + "\n" + legend(c.series)
}

func legend(series []LineSeries) string {
	parts := make([]string, 0, len(series))
	for _, s := range series {
		parts = append(parts, lipgloss.NewStyle().Foreground(s.Color).Render("■")+" "+s.Name)
	}
	return strings.Join(parts, "  ")
}
