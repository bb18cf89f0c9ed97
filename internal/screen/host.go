package screen

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/olivier-w/orbweaver/internal/behavior"
	"github.com/olivier-w/orbweaver/internal/engine"
	"github.com/olivier-w/orbweaver/internal/harmonics"
)

const (
	pushForce  = 1.5
	clickForce = 2.5
)

// Host owns the event loop for a tcell screen: it feeds resizes, mouse
// motion and keys to the engine while the engine draws on its own
// schedule.
type Host struct {
	screen   tcell.Screen
	engine   *engine.Engine
	renderer *Renderer
	logger   *zap.Logger
	presets  <-chan string
	preset   string
	paused   bool
	pressed  bool
}

// NewHost attaches a Renderer for s to e.
func NewHost(s tcell.Screen, e *engine.Engine, opts Options, preset string, logger *zap.Logger) (*Host, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if preset == "" {
		preset = harmonics.DefaultPreset
	}
	r, err := NewRenderer(s, opts)
	if err != nil {
		return nil, fmt.Errorf("creating screen renderer: %w", err)
	}
	e.SetRenderer(r)
	return &Host{screen: s, engine: e, renderer: r, logger: logger, preset: preset}, nil
}

func (h *Host) Renderer() *Renderer { return h.renderer }

// WatchPresets makes Run relabel the active preset with each value read
// from ch. Call it before Run.
func (h *Host) WatchPresets(ch <-chan string) { h.presets = ch }

// Run starts the engine and processes events until a quit key or ctx is
// done. The engine is stopped on return; the screen is left to the caller.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	h.screen.HideCursor()
	if err := h.engine.Start(); err != nil {
		return err
	}
	defer h.engine.Stop()
	h.logger.Info("screen host started", zap.String("renderer", h.renderer.Name()))

	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		h.screen.ChannelEvents(events, quit)
	}()
	defer func() {
		close(quit)
		<-polled
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("screen host stopped", zap.Error(ctx.Err()))
			return nil
		case name := <-h.presets:
			h.preset = name
			h.logger.Debug("preset relabeled", zap.String("preset", name))
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.handle(ev) {
				h.logger.Info("quitting")
				return nil
			}
		}
	}
}

// handle applies one event. It returns false when the user asked to quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.renderer.Sync()

	case *tcell.EventMouse:
		h.handleMouse(ev)

	case *tcell.EventFocus:
		if !ev.Focused {
			h.engine.ClearCrosshair()
		}

	case *tcell.EventKey:
		return h.handleKey(ev)
	}
	return true
}

// handleMouse kicks the blob once per button press, not per drag event.
func (h *Host) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	press := down && !h.pressed
	h.pressed = down

	col, row := ev.Position()
	g := h.renderer.GridSize()
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		h.engine.ClearCrosshair()
		return
	}
	h.engine.SetCrosshair(engine.Cell{Col: col, Row: row})
	if press {
		h.engine.Impulse(h.engine.Viewport().PushFrom(col, row, clickForce))
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		h.engine.Impulse(engine.Vec2{X: -pushForce})
	case tcell.KeyRight:
		h.engine.Impulse(engine.Vec2{X: pushForce})
	case tcell.KeyUp:
		h.engine.Impulse(engine.Vec2{Y: -pushForce})
	case tcell.KeyDown:
		h.engine.Impulse(engine.Vec2{Y: pushForce})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			h.togglePause()
		case 'h':
			h.engine.Impulse(engine.Vec2{X: -pushForce})
		case 'l':
			h.engine.Impulse(engine.Vec2{X: pushForce})
		case 'k':
			h.engine.Impulse(engine.Vec2{Y: -pushForce})
		case 'j':
			h.engine.Impulse(engine.Vec2{Y: pushForce})
		case 'p':
			h.preset = harmonics.NextPreset(h.preset)
			hs, _ := harmonics.Preset(h.preset)
			h.engine.SetBlobHarmonics(hs)
			h.logger.Debug("preset changed", zap.String("preset", h.preset))
		case 'r':
			h.engine.UpdateBehavior(behavior.KindRotate, func(b behavior.Behavior) {
				if r, ok := b.(*behavior.Rotate); ok {
					r.Reverse()
				}
			})
		case 'c':
			if !h.engine.UpdateBehavior(behavior.KindCrosshair, func(behavior.Behavior) {}) {
				h.engine.AddBehavior(behavior.NewCrosshair(1))
			} else {
				h.engine.RemoveBehavior(behavior.KindCrosshair)
			}
		}
	}
	return true
}

func (h *Host) togglePause() {
	if h.paused {
		if err := h.engine.Start(); err != nil {
			h.logger.Warn("resume failed", zap.Error(err))
			return
		}
	} else {
		h.engine.Stop()
	}
	h.paused = !h.paused
}
