package engine

import (
	"math"

	"github.com/olivier-w/orbweaver/internal/blob"
)

const (
	rimBand        = 0.04
	interiorWeight = 0.85
	rimWeight      = 0.35
	cursorPull     = 0.9
)

// Polar is a point relative to the offset blob center.
type Polar struct {
	Theta    float64
	Distance float64
}

// Frame is the read-only state of one rendered frame. IntensityAt never
// mutates it, so a renderer may sample cells in any order and from any
// number of goroutines.
type Frame struct {
	RotationPhase   float64
	XOffset         float64
	YOffset         float64
	CursorInfluence float64
	// Cursor is nil when no crosshair position is set.
	Cursor *Polar
	// Custom carries accumulator channels the built-in sampler ignores.
	Custom map[string]float64

	viewport Viewport
	shape    blob.Model
}

func (f Frame) Viewport() Viewport { return f.viewport }

// IntensityAt returns the brightness of a cell in [0, 1]: a filled interior
// that fades toward the outline plus a Gaussian rim highlight.
func (f Frame) IntensityAt(col, row int) float64 {
	nx, ny := f.viewport.Normalize(col, row)
	dx := nx - f.XOffset
	dy := ny - f.YOffset
	r := math.Hypot(dx, dy)
	theta := math.Atan2(dy, dx)

	radius := f.shape.RadiusAt(theta, f.RotationPhase)
	if f.Cursor != nil && f.CursorInfluence > 0 {
		angular := math.Max(0, math.Cos(theta-f.Cursor.Theta))
		near := 1 - clamp(f.Cursor.Distance, 0, 1)
		radius *= 1 - cursorPull*angular*near*math.Min(f.CursorInfluence, 1)
	}

	interior := math.Max(0, 1-r/math.Max(radius, epsilon))
	d := r - radius
	rim := math.Exp(-(d * d) / (2 * rimBand * rimBand))

	v := interior*interiorWeight + rim*rimWeight
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}

// Sample evaluates every cell of the frame's grid, row by row.
func (f Frame) Sample() [][]float64 {
	g := f.viewport.Grid
	out := make([][]float64, g.Rows)
	for row := range g.Rows {
		out[row] = make([]float64, g.Cols)
		for col := range g.Cols {
			out[row][col] = f.IntensityAt(col, row)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
