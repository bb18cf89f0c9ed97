package engine

// Size is a logical pixel extent.
type Size struct {
	Width  float64
	Height float64
}

// Grid is a cell extent.
type Grid struct {
	Cols int
	Rows int
}

// Renderer turns a per-cell intensity function into pixels or glyphs. The
// engine calls Render once per frame; the renderer decides how and in what
// order to sample every cell.
//
// Implementations must not hold their own locks while invoking resize
// callbacks, since the engine reads PixelSize and GridSize from inside them.
type Renderer interface {
	PixelSize() Size
	GridSize() Grid
	Render(intensityAt func(col, row int) float64)
	// OnResize registers fn to run after the renderer's size changes.
	OnResize(fn func()) (unsubscribe func())
	Destroy()
}
