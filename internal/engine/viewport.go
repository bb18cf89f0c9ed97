package engine

import "math"

const epsilon = 1e-6

// Viewport is the cached mapping from grid cells to normalized unit space,
// where half the shorter pixel dimension spans 1.0. It is recomputed whole
// whenever the renderer's size changes.
type Viewport struct {
	Size       Size
	Grid       Grid
	CellWidth  float64
	CellHeight float64
	CenterX    float64
	CenterY    float64
	UnitScale  float64
}

// NewViewport derives a viewport from a pixel size and grid. Degenerate
// sizes are clamped so that no later division produces NaN.
func NewViewport(size Size, grid Grid) Viewport {
	w := math.Max(size.Width, 0)
	h := math.Max(size.Height, 0)
	grid.Cols = max(grid.Cols, 1)
	grid.Rows = max(grid.Rows, 1)
	return Viewport{
		Size:       Size{Width: w, Height: h},
		Grid:       grid,
		CellWidth:  math.Max(w/float64(grid.Cols), epsilon),
		CellHeight: math.Max(h/float64(grid.Rows), epsilon),
		CenterX:    w / 2,
		CenterY:    h / 2,
		UnitScale:  math.Max(math.Min(w, h)/2, epsilon),
	}
}

// Normalize maps the center of a cell into unit space.
func (v Viewport) Normalize(col, row int) (x, y float64) {
	px := (float64(col) + 0.5) * v.CellWidth
	py := (float64(row) + 0.5) * v.CellHeight
	return v.toUnits(px, py)
}

func (v Viewport) toUnits(px, py float64) (x, y float64) {
	return (px - v.CenterX) / v.UnitScale, (py - v.CenterY) / v.UnitScale
}

// CellAt returns the grid cell containing a pixel position, clamped to the
// grid.
func (v Viewport) CellAt(px, py float64) (col, row int) {
	col = int(math.Floor(px / v.CellWidth))
	row = int(math.Floor(py / v.CellHeight))
	return min(max(col, 0), v.Grid.Cols-1), min(max(row, 0), v.Grid.Rows-1)
}

// Pointer describes a pixel position relative to the viewport.
type Pointer struct {
	Col, Row int
	// X and Y are the normalized offsets from the viewport center.
	X, Y     float64
	Distance float64
	// Inside is false when the position lies outside the pixel extent.
	Inside bool
}

// Locate maps a client pixel position to its cell and normalized offsets.
func (v Viewport) Locate(px, py float64) Pointer {
	col, row := v.CellAt(px, py)
	x, y := v.toUnits(px, py)
	return Pointer{
		Col:      col,
		Row:      row,
		X:        x,
		Y:        y,
		Distance: math.Hypot(x, y),
		Inside:   px >= 0 && py >= 0 && px < v.Size.Width && py < v.Size.Height,
	}
}

// PushFrom returns a kick of the given strength pointing from a cell
// through the blob's rest position at the viewport center. The center
// cell itself gets no kick.
func (v Viewport) PushFrom(col, row int, force float64) Vec2 {
	x, y := v.Normalize(col, row)
	d := math.Hypot(x, y)
	if d < epsilon {
		return Vec2{}
	}
	return Vec2{X: -x / d * force, Y: -y / d * force}
}
