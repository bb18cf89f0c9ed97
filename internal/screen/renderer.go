// Package screen runs the engine directly on a tcell screen, without the
// Bubbletea layout around it.
package screen

import (
	"errors"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/orbweaver/internal/engine"
	"github.com/olivier-w/orbweaver/internal/render"
)

const styleLevels = 64

var errGlyphs = errors.New("glyph ramp needs at least two glyphs")

var _ engine.Renderer = (*Renderer)(nil)

// Options configures a Renderer. Zero values take the render package
// defaults.
type Options struct {
	Mode       render.Mode
	Glyphs     string
	Ramp       []string
	CellAspect float64
}

// Renderer paints frames straight into a tcell.Screen, one cell per grid
// cell. ASCII mode colors glyphs; gradient mode paints cell backgrounds.
type Renderer struct {
	mu        sync.Mutex
	screen    tcell.Screen
	mode      render.Mode
	glyphs    []rune
	styles    [styleLevels]tcell.Style
	aspect    float64
	cols      int
	rows      int
	listeners map[int]func()
	nextID    int
	destroyed bool
}

// NewRenderer sizes itself from s. The caller owns s and must have
// initialized it.
func NewRenderer(s tcell.Screen, opts Options) (*Renderer, error) {
	// Cells are drawn one glyph at a time, so only the gradient mode
	// changes anything here.
	if opts.Mode != render.ModeGradient {
		opts.Mode = render.ModeASCII
	}
	if opts.Glyphs == "" {
		opts.Glyphs = render.DefaultGlyphs
	}
	if len(opts.Ramp) == 0 {
		opts.Ramp = render.DefaultRamp
	}
	if opts.CellAspect <= 0 {
		opts.CellAspect = render.DefaultCellAspect
	}
	glyphs := []rune(opts.Glyphs)
	if len(glyphs) < 2 {
		return nil, errGlyphs
	}
	ramp, err := render.ParseRamp(opts.Ramp)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		screen:    s,
		mode:      opts.Mode,
		glyphs:    glyphs,
		aspect:    opts.CellAspect,
		listeners: make(map[int]func()),
	}
	for i := range styleLevels {
		c := render.BlendRamp(ramp, float64(i)/(styleLevels-1))
		if r.mode == render.ModeGradient {
			r.styles[i] = tcell.StyleDefault.Background(tcellColor(c))
		} else {
			r.styles[i] = tcell.StyleDefault.Foreground(tcellColor(c))
		}
	}
	r.cols, r.rows = size(s)
	return r, nil
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func size(s tcell.Screen) (cols, rows int) {
	w, h := s.Size()
	return max(w, 1), max(h, 1)
}

func (r *Renderer) Name() string { return string(r.mode) }

func (r *Renderer) PixelSize() engine.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return engine.Size{Width: float64(r.cols), Height: float64(r.rows) * r.aspect}
}

func (r *Renderer) GridSize() engine.Grid {
	r.mu.Lock()
	defer r.mu.Unlock()
	return engine.Grid{Cols: r.cols, Rows: r.rows}
}

func (r *Renderer) OnResize(fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Sync re-reads the screen size and notifies resize subscribers when it
// changed.
func (r *Renderer) Sync() {
	cols, rows := size(r.screen)
	r.mu.Lock()
	if r.destroyed || (cols == r.cols && rows == r.rows) {
		r.mu.Unlock()
		return
	}
	r.cols, r.rows = cols, rows
	fns := make([]func(), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (r *Renderer) Render(intensityAt func(col, row int) float64) {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}
	cols, rows := r.cols, r.rows
	r.mu.Unlock()

	for row := range rows {
		for col := range cols {
			v := intensityAt(col, row)
			style := r.styles[level(v, styleLevels)]
			ch := ' '
			if r.mode != render.ModeGradient {
				ch = r.glyphs[level(v, len(r.glyphs))]
			}
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}
	r.screen.Show()
}

// Destroy detaches subscribers and stops drawing. The screen stays open.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyed = true
	clear(r.listeners)
}

func level(v float64, n int) int {
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(math.Round(v * float64(n-1)))
}
