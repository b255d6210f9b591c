package components

import (
	"math"

	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// Radar draws one polygon per series over shared axes, each value a
// proportion in 0..1. Missing values break the polygon at that axis.
type Radar struct {
	height int
	axes   []string
	series []LineSeries
}

const (
	radarLabelMargin = 12
	radarVertex      = '●'
	radarStroke      = '•'
)

// NewRadar creates a Radar with a default height.
func NewRadar() *Radar {
	return &Radar{height: 17}
}

// SetHeight sets the number of rows of the plot, excluding the legend.
func (r *Radar) SetHeight(height int) {
	r.height = max(height, 7)
}

// SetData replaces the axes and the series. Series values align with axes.
func (r *Radar) SetData(axes []string, series []LineSeries) {
	r.axes = axes
	r.series = series
}

// geometry returns the center and radii. Terminal cells are about twice as
// tall as wide, so the x radius is doubled.
func (r *Radar) geometry() (cx, cy, rx, ry int) {
	ry = (r.height - 3) / 2
	rx = 2 * ry
	return radarLabelMargin + rx, r.height / 2, rx, ry
}

// point returns the cell of value v on axis k.
func (r *Radar) point(k int, v float64) (int, int) {
	cx, cy, rx, ry := r.geometry()
	theta := math.Pi/2 - 2*math.Pi*float64(k)/float64(len(r.axes))
	x := float64(cx) + v*float64(rx)*math.Cos(theta)
	y := float64(cy) - v*float64(ry)*math.Sin(theta)
	return int(math.Round(x)), int(math.Round(y))
}

// Canvas draws the radar without the legend.
func (r *Radar) Canvas() *Canvas {
	_, _, rx, _ := r.geometry()
	cv := NewCanvas(2*radarLabelMargin+2*rx+1, r.height)
	n := len(r.axes)
	if n == 0 {
		return cv
	}
	cx, cy, _, _ := r.geometry()

	// rings at 0.5 and 1.0, then spokes
	for _, ring := range []float64{0.5, 1} {
		for k := 0; k < n; k++ {
			x0, y0 := r.point(k, ring)
			x1, y1 := r.point((k+1)%n, ring)
			cv.Line(x0, y0, x1, y1, '.', styles.YardLine, true)
		}
	}
	for k := 0; k < n; k++ {
		x, y := r.point(k, 1)
		cv.Line(cx, cy, x, y, '·', styles.YardLine, true)
	}

	for _, s := range r.series {
		for k := 0; k < n; k++ {
			next := (k + 1) % n
			if !r.valid(s, k) || !r.valid(s, next) {
				continue
			}
			x0, y0 := r.point(k, s.Values[k].Value)
			x1, y1 := r.point(next, s.Values[next].Value)
			cv.Line(x0, y0, x1, y1, radarStroke, s.Color, false)
		}
	}
	for _, s := range r.series {
		for k := 0; k < n; k++ {
			if r.valid(s, k) {
				x, y := r.point(k, s.Values[k].Value)
				cv.Set(x, y, radarVertex, s.Color)
			}
		}
	}

	// axis labels just outside the outer ring
	for k, label := range r.axes {
		x, y := r.point(k, 1)
		switch {
		case x < cx:
			x -= len([]rune(label)) + 1
		case x > cx:
			x += 2
		default:
			x -= len([]rune(label)) / 2
			if y < cy {
				y--
			} else {
				y++
			}
		}
		cv.Text(x, y, label, styles.MutedLight)
	}
	return cv
}

func (r *Radar) valid(s LineSeries, k int) bool {
	return k < len(s.Values) && s.Values[k].Valid
}

// View renders the radar and its legend.
func (r *Radar) View() string {
	if len(r.axes) == 0 || len(r.series) == 0 {
		return ""
	}
	return r.Canvas().View() + "\n" + legend(r.series)
}
