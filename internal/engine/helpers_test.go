package engine

import (
	"sync"
	"time"
)

type fakeRenderer struct {
	mu        sync.Mutex
	size      Size
	grid      Grid
	renders   int
	last      [][]float64
	listeners map[int]func()
	nextID    int
	destroyed bool
	rendered  chan struct{}
}

func newFakeRenderer(cols, rows int, w, h float64) *fakeRenderer {
	return &fakeRenderer{
		size:      Size{Width: w, Height: h},
		grid:      Grid{Cols: cols, Rows: rows},
		listeners: make(map[int]func()),
		rendered:  make(chan struct{}, 64),
	}
}

func (f *fakeRenderer) PixelSize() Size {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

func (f *fakeRenderer) GridSize() Grid {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.grid
}

func (f *fakeRenderer) Render(intensityAt func(col, row int) float64) {
	g := f.GridSize()
	out := make([][]float64, g.Rows)
	for row := range g.Rows {
		out[row] = make([]float64, g.Cols)
		for col := range g.Cols {
			out[row][col] = intensityAt(col, row)
		}
	}
	f.mu.Lock()
	f.renders++
	f.last = out
	f.mu.Unlock()
	select {
	case f.rendered <- struct{}{}:
	default:
	}
}

func (f *fakeRenderer) OnResize(fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *fakeRenderer) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
}

func (f *fakeRenderer) resize(cols, rows int, w, h float64) {
	f.mu.Lock()
	f.grid = Grid{Cols: cols, Rows: rows}
	f.size = Size{Width: w, Height: h}
	fns := make([]func(), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (f *fakeRenderer) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

func (f *fakeRenderer) renderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renders
}

// manualScheduler only fires when the test says so.
type manualScheduler struct {
	mu        sync.Mutex
	pending   []*scheduled
	requested int
	cancelled int
}

type scheduled struct {
	fn       func(time.Time)
	canceled bool
}

func (m *manualScheduler) Request(fn func(time.Time)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested++
	s := &scheduled{fn: fn}
	m.pending = append(m.pending, s)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !s.canceled {
			s.canceled = true
			m.cancelled++
		}
	}
}

// fire runs every pending callback once and reports how many ran.
func (m *manualScheduler) fire(now time.Time) int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()
	n := 0
	for _, s := range batch {
		m.mu.Lock()
		skip := s.canceled
		s.canceled = true
		m.mu.Unlock()
		if !skip {
			s.fn(now)
			n++
		}
	}
	return n
}

func (m *manualScheduler) pendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.pending {
		if !s.canceled {
			n++
		}
	}
	return n
}
