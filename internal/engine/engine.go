// Package engine drives a blob through time. It owns the blob model, the
// behavior set, impulse physics and the cursor; once per frame it advances
// them, builds a Frame, and hands the frame's IntensityAt to a Renderer.
//
// The loop is cooperative: the next frame is requested only after the
// current render returns, so at most one frame is ever in flight. The
// engine lock is never held while the renderer runs, which lets renderers
// and their hosts call back into the engine.
package engine

import (
	"maps"
	"math"
	"sync"
	"time"

	"github.com/olivier-w/orbweaver/internal/behavior"
	"github.com/olivier-w/orbweaver/internal/blob"
	"github.com/olivier-w/orbweaver/internal/harmonics"
)

// Options configures a new Engine.
type Options struct {
	Renderer  Renderer
	Behaviors []behavior.Behavior
	// FPS caps the frame rate. Zero or less follows the display refresh.
	FPS float64
	// Blob is the initial shape; nil uses blob.Default().
	Blob *blob.Model
	// NewScheduler overrides scheduler selection; nil uses NewScheduler.
	NewScheduler func(fps float64) Scheduler
}

// Cell is a grid position.
type Cell struct {
	Col int
	Row int
}

// Engine animates one blob.
type Engine struct {
	mu sync.Mutex

	renderer    Renderer
	viewport    Viewport
	unsubscribe func()

	behaviors behavior.Set
	acc       behavior.Accumulator
	shape     blob.Model
	impulse   Impulse
	cursor    *Cell

	fps          float64
	newScheduler func(float64) Scheduler
	sched        Scheduler
	cancel       func()

	running bool
	epoch   uint64
	last    time.Time
}

// New builds a stopped engine.
func New(opts Options) *Engine {
	e := &Engine{
		fps:          opts.FPS,
		newScheduler: opts.NewScheduler,
		shape:        blob.Default(),
	}
	if e.newScheduler == nil {
		e.newScheduler = NewScheduler
	}
	if opts.Blob != nil {
		e.shape = *opts.Blob
	}
	e.behaviors.Replace(opts.Behaviors)
	if opts.Renderer != nil {
		e.SetRenderer(opts.Renderer)
	}
	return e
}

// Start begins the frame loop. It is a no-op when already running. Every
// start begins a fresh timeline: the first frame advances by zero seconds.
// Behavior phases carry over from before.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil
	}
	if e.renderer == nil {
		return ErrNoRenderer
	}
	e.running = true
	e.last = time.Time{}
	e.viewport = viewportOf(e.renderer)
	e.subscribeLocked()
	e.restartLoopLocked()
	return nil
}

// Stop cancels any pending frame and stops listening for resizes. It is a
// no-op when already stopped.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if !e.running {
		return
	}
	e.running = false
	e.epoch++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// Close stops the engine and destroys its renderer.
func (e *Engine) Close() {
	e.mu.Lock()
	e.stopLocked()
	r := e.renderer
	e.renderer = nil
	e.mu.Unlock()
	if r != nil {
		r.Destroy()
	}
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) restartLoopLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.epoch++
	e.sched = e.newScheduler(e.fps)
	e.cancel = e.sched.Request(e.frameFunc(e.epoch))
}

func (e *Engine) frameFunc(epoch uint64) func(time.Time) {
	return func(now time.Time) {
		e.mu.Lock()
		if !e.running || e.epoch != epoch {
			e.mu.Unlock()
			return
		}
		e.cancel = nil
		var dt float64
		if !e.last.IsZero() {
			dt = now.Sub(e.last).Seconds()
		}
		e.last = now
		frame, err := e.advanceLocked(dt)
		r := e.renderer
		e.mu.Unlock()

		if err == nil {
			r.Render(frame.IntensityAt)
		}

		e.mu.Lock()
		if e.running && e.epoch == epoch {
			e.cancel = e.sched.Request(e.frameFunc(epoch))
		}
		e.mu.Unlock()
	}
}

// Advance runs one frame's worth of behavior, impulse and cursor updates
// without rendering and returns the resulting frame.
func (e *Engine) Advance(dt float64) (Frame, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.advanceLocked(dt)
}

// Step advances one frame and renders it.
func (e *Engine) Step(dt float64) error {
	e.mu.Lock()
	frame, err := e.advanceLocked(dt)
	r := e.renderer
	e.mu.Unlock()
	if err != nil {
		return err
	}
	r.Render(frame.IntensityAt)
	return nil
}

func (e *Engine) advanceLocked(dt float64) (Frame, error) {
	if e.renderer == nil {
		return Frame{}, ErrNoRenderer
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}

	e.behaviors.UpdateAll(dt)
	e.impulse.Step(dt)

	e.acc.Reset()
	e.behaviors.ContributeAll(&e.acc)

	f := Frame{
		RotationPhase:   e.acc.Get(behavior.RotationPhase),
		XOffset:         e.acc.Get(behavior.XOffset) + e.impulse.Offset.X,
		YOffset:         e.acc.Get(behavior.YOffset) + e.impulse.Offset.Y,
		CursorInfluence: e.acc.Get(behavior.CursorInfluence),
		Custom:          maps.Clone(e.acc.Custom),
		viewport:        e.viewport,
		shape:           e.shape,
	}
	if e.cursor != nil {
		cx, cy := e.viewport.Normalize(e.cursor.Col, e.cursor.Row)
		dx, dy := cx-f.XOffset, cy-f.YOffset
		f.Cursor = &Polar{Theta: math.Atan2(dy, dx), Distance: math.Hypot(dx, dy)}
	}
	return f, nil
}

// SetRenderer swaps the renderer and recomputes the viewport. A running
// engine moves its resize subscription to the new renderer; a nil renderer
// stops the engine.
func (e *Engine) SetRenderer(r Renderer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.renderer = r
	if r == nil {
		e.stopLocked()
		return
	}
	e.viewport = viewportOf(r)
	if e.running {
		e.subscribeLocked()
	}
}

func (e *Engine) subscribeLocked() {
	if e.unsubscribe != nil {
		return
	}
	r := e.renderer
	e.unsubscribe = r.OnResize(func() {
		vp := viewportOf(r)
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.renderer == r {
			e.viewport = vp
		}
	})
}

func viewportOf(r Renderer) Viewport {
	return NewViewport(r.PixelSize(), r.GridSize())
}

// Viewport returns the cached geometry of the current renderer.
func (e *Engine) Viewport() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// SetTargetFPS changes the frame cap. Zero or less follows the display. A
// running loop switches scheduler immediately and keeps its timeline.
func (e *Engine) SetTargetFPS(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if math.IsNaN(fps) || fps < 0 {
		fps = 0
	}
	if fps == e.fps {
		return
	}
	e.fps = fps
	if e.running {
		e.restartLoopLocked()
	}
}

func (e *Engine) TargetFPS() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fps
}

// SetBehavior replaces every behavior.
func (e *Engine) SetBehavior(list []behavior.Behavior) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.behaviors.Replace(list)
}

// AddBehavior inserts b, replacing any behavior of the same kind.
func (e *Engine) AddBehavior(b behavior.Behavior) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.behaviors.Put(b)
}

// RemoveBehavior drops the behaviors of the given kinds.
func (e *Engine) RemoveBehavior(kinds ...behavior.Kind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.behaviors.Remove(kinds...)
}

// Behaviors returns the active behaviors in registration order. Mutate them
// through UpdateBehavior, not directly, while the engine runs.
func (e *Engine) Behaviors() []behavior.Behavior {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.behaviors.List()
}

// UpdateBehavior runs fn on the behavior of the given kind while holding
// the engine lock. It reports whether such a behavior exists.
func (e *Engine) UpdateBehavior(kind behavior.Kind, fn func(behavior.Behavior)) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.behaviors.Get(kind)
	if ok {
		fn(b)
	}
	return ok
}

// UpdateCrosshair sets the cursor cell. A nil column or row clears it.
func (e *Engine) UpdateCrosshair(col, row *int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if col == nil || row == nil {
		e.cursor = nil
		return
	}
	e.cursor = &Cell{Col: *col, Row: *row}
}

// SetCrosshair sets the cursor cell.
func (e *Engine) SetCrosshair(c Cell) {
	e.UpdateCrosshair(&c.Col, &c.Row)
}

// ClearCrosshair removes the cursor.
func (e *Engine) ClearCrosshair() {
	e.UpdateCrosshair(nil, nil)
}

// Crosshair returns the cursor cell, if any.
func (e *Engine) Crosshair() (Cell, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor == nil {
		return Cell{}, false
	}
	return *e.cursor, true
}

// Impulse kicks the blob center. Kicks add to any motion already underway.
func (e *Engine) Impulse(force Vec2) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.impulse.Kick(force)
}

func (e *Engine) ImpulseState() Impulse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.impulse
}

// SetBlobHarmonics replaces the harmonic set with hs, used verbatim.
func (e *Engine) SetBlobHarmonics(hs []harmonics.Harmonic) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shape.SetHarmonics(hs)
}

// SetBlobHarmonicParams replaces the harmonic set with a generated one.
func (e *Engine) SetBlobHarmonicParams(p harmonics.Params) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shape.SetParams(p)
}

// SetBlobSize changes the base radius and the harmonic amplitude scale.
func (e *Engine) SetBlobSize(baseRadius, amplitude float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shape.BaseRadius = baseRadius
	e.shape.Amplitude = amplitude
}

// Blob returns a snapshot of the blob model.
func (e *Engine) Blob() blob.Model {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shape
}
