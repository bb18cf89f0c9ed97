package render

import (
	"strings"
	"sync"

	"github.com/olivier-w/orbweaver/internal/engine"
)

// canvas is the grid bookkeeping shared by every renderer: size, resize
// subscribers, and the latest frame.
type canvas struct {
	mu        sync.Mutex
	cols      int
	rows      int
	aspect    float64
	listeners map[int]func()
	nextID    int
	frame     string
	sink      func(string)
	destroyed bool
	sb        strings.Builder
}

func newCanvas(cols, rows int, aspect float64, sink func(string)) *canvas {
	if aspect <= 0 {
		aspect = DefaultCellAspect
	}
	return &canvas{
		cols:      max(cols, 1),
		rows:      max(rows, 1),
		aspect:    aspect,
		listeners: make(map[int]func()),
		sink:      sink,
	}
}

// PixelSize treats a cell as one unit wide and aspect units tall, so a
// circle in unit space looks round on screen.
func (c *canvas) PixelSize() engine.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return engine.Size{Width: float64(c.cols), Height: float64(c.rows) * c.aspect}
}

func (c *canvas) GridSize() engine.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return engine.Grid{Cols: c.cols, Rows: c.rows}
}

func (c *canvas) Cells() engine.Grid {
	return c.GridSize()
}

func (c *canvas) FromCell(col, row int) (int, int) {
	return col, row
}

func (c *canvas) OnResize(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *canvas) Resize(cols, rows int) {
	c.mu.Lock()
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == c.cols && rows == c.rows {
		c.mu.Unlock()
		return
	}
	c.cols, c.rows = cols, rows
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	// Subscribers read the size back, so they run without the lock held.
	for _, fn := range fns {
		fn()
	}
}

func (c *canvas) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed = true
	clear(c.listeners)
	c.frame = ""
}

func (c *canvas) View() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// paint builds a frame with draw and publishes it. draw runs without the
// canvas lock; only one paint runs at a time per engine.
func (c *canvas) paint(draw func(sb *strings.Builder, cols, rows int)) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	cols, rows := c.cols, c.rows
	c.mu.Unlock()

	c.sb.Reset()
	c.sb.Grow(cols * rows * 4)
	draw(&c.sb, cols, rows)
	frame := c.sb.String()

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.frame = frame
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink(frame)
	}
}
