package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r     rune
	color lipgloss.Color
}

// Canvas is a fixed-size grid of colored runes that the chart components
// draw on. An empty color renders with the terminal default.
type Canvas struct {
	width  int
	height int
	cells  []cell
}

// NewCanvas creates a blank canvas. Negative sizes are treated as zero.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	c := &Canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Set draws r at (x, y). Points outside the canvas are ignored.
func (c *Canvas) Set(x, y int, r rune, color lipgloss.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell{r: r, color: color}
}

// At returns the rune at (x, y), or a space outside the canvas.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return ' '
	}
	return c.cells[y*c.width+x].r
}

// Text writes s starting at (x, y), clipping at the canvas edge.
func (c *Canvas) Text(x, y int, s string, color lipgloss.Color) {
	for _, r := range s {
		c.Set(x, y, r, color)
		x++
	}
}

// Line draws a straight line from (x0, y0) to (x1, y1) with Bresenham's
// algorithm. Cells already holding a non-space rune are kept when keep is
// set, so grid lines never hide data.
func (c *Canvas) Line(x0, y0, x1, y1 int, r rune, color lipgloss.Color, keep bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if !keep || c.At(x0, y0) == ' ' {
			c.Set(x0, y0, r, color)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Plain returns the canvas as text without colors, one line per row with
// trailing spaces removed.
func (c *Canvas) Plain() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var b strings.Builder
		for x := 0; x < c.width; x++ {
			b.WriteRune(c.cells[y*c.width+x].r)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// View renders the canvas with colors. Runs of equally colored cells are
// rendered together.
func (c *Canvas) View() string {
	styleCache := make(map[lipgloss.Color]lipgloss.Style)
	render := func(color lipgloss.Color, s string) string {
		if color == "" {
			return s
		}
		st, ok := styleCache[color]
		if !ok {
			st = lipgloss.NewStyle().Foreground(color)
			styleCache[color] = st
		}
		return st.Render(s)
	}

	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var b, run strings.Builder
		var runColor lipgloss.Color
		row := c.cells[y*c.width : (y+1)*c.width]
		for _, cl := range row {
			if cl.color != runColor && run.Len() > 0 {
				b.WriteString(render(runColor, run.String()))
				run.Reset()
			}
			runColor = cl.color
			run.WriteRune(cl.r)
		}
		if run.Len() > 0 {
			b.WriteString(render(runColor, run.String()))
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
