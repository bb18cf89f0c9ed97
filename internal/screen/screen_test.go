package screen

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/goleak"

	"github.com/olivier-w/orbweaver/internal/behavior"
	"github.com/olivier-w/orbweaver/internal/engine"
	"github.com/olivier-w/orbweaver/internal/harmonics"
	"github.com/olivier-w/orbweaver/internal/render"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func cellAt(s tcell.SimulationScreen, col, row int) tcell.SimCell {
	cells, w, _ := s.GetContents()
	return cells[row*w+col]
}

func TestRendererDrawsBlob(t *testing.T) {
	s := newSimScreen(t, 21, 11)
	r, err := NewRenderer(s, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := engine.New(engine.Options{Renderer: r})

	if err := e.Step(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cellAt(s, 10, 5).Runes; len(got) == 0 || got[0] == ' ' {
		t.Fatalf("expected a glyph at the center, got %q", string(got))
	}
	if got := cellAt(s, 0, 0).Runes; len(got) == 0 || got[0] != ' ' {
		t.Fatalf("expected blank corner, got %q", string(got))
	}
}

func TestGradientRendererPaintsBackground(t *testing.T) {
	s := newSimScreen(t, 21, 11)
	r, err := NewRenderer(s, Options{Mode: render.ModeGradient, Ramp: []string{"#000000", "#ffffff"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Render(func(col, row int) float64 {
		if col == 0 {
			return 1
		}
		return 0
	})

	_, bg, _ := cellAt(s, 0, 0).Style.Decompose()
	if bg != tcell.NewRGBColor(255, 255, 255) {
		t.Fatalf("expected white background, got %v", bg)
	}
	_, bg, _ = cellAt(s, 1, 0).Style.Decompose()
	if bg != tcell.NewRGBColor(0, 0, 0) {
		t.Fatalf("expected black background, got %v", bg)
	}
	if r.Name() != "gradient" {
		t.Fatalf("unexpected name %q", r.Name())
	}
}

func TestRendererRejectsBadOptions(t *testing.T) {
	s := newSimScreen(t, 4, 4)
	if _, err := NewRenderer(s, Options{Glyphs: "#"}); err == nil {
		t.Fatal("expected glyph error")
	}
	if _, err := NewRenderer(s, Options{Ramp: []string{"#000000", "nope"}}); err == nil {
		t.Fatal("expected ramp error")
	}
}

func TestRendererSyncNotifies(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	r, err := NewRenderer(s, Options{CellAspect: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := 0
	unsubscribe := r.OnResize(func() { calls++ })

	r.Sync()
	if calls != 0 {
		t.Fatalf("expected no notification without a size change, got %d", calls)
	}

	s.SetSize(30, 8)
	r.Sync()
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
	if g := r.GridSize(); g.Cols != 30 || g.Rows != 8 {
		t.Fatalf("expected 30x8 grid, got %dx%d", g.Cols, g.Rows)
	}
	if p := r.PixelSize(); p.Width != 30 || p.Height != 16 {
		t.Fatalf("expected 30x16 pixels, got %vx%v", p.Width, p.Height)
	}

	unsubscribe()
	s.SetSize(12, 4)
	r.Sync()
	if calls != 1 {
		t.Fatalf("expected no notification after unsubscribe, got %d", calls)
	}
}

func TestRendererDestroyStopsDrawing(t *testing.T) {
	s := newSimScreen(t, 4, 2)
	r, err := NewRenderer(s, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Destroy()
	r.Render(func(int, int) float64 { return 1 })

	if got := cellAt(s, 0, 0).Runes; len(got) > 0 && got[0] == '@' {
		t.Fatal("expected nothing drawn after destroy")
	}
}

func newTestHost(t *testing.T, behaviors ...behavior.Behavior) (*Host, tcell.SimulationScreen) {
	t.Helper()
	s := newSimScreen(t, 20, 10)
	e := engine.New(engine.Options{Behaviors: behaviors})
	h, err := NewHost(s, e, Options{}, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(e.Close)
	return h, s
}

func TestHostKeys(t *testing.T) {
	rot := behavior.NewRotate(1, 1)
	h, _ := newTestHost(t, rot)

	h.handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	h.handle(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	if v := h.engine.ImpulseState().Velocity; v.X >= 0 || v.Y >= 0 {
		t.Fatalf("expected negative velocity on both axes, got %+v", v)
	}

	h.handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if rot.Direction() != -1 {
		t.Fatalf("expected reversed rotation, got %d", rot.Direction())
	}

	h.handle(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	want := harmonics.NextPreset(harmonics.DefaultPreset)
	if h.preset != want {
		t.Fatalf("expected preset %q, got %q", want, h.preset)
	}

	h.handle(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	if _, ok := behaviorOf(h, behavior.KindCrosshair); !ok {
		t.Fatal("expected crosshair added")
	}

	if h.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("expected q to quit")
	}
	if h.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("expected esc to quit")
	}
}

func behaviorOf(h *Host, k behavior.Kind) (behavior.Behavior, bool) {
	for _, b := range h.engine.Behaviors() {
		if b.Kind() == k {
			return b, true
		}
	}
	return nil, false
}

func TestHostMouseSetsCrosshairAndKicks(t *testing.T) {
	h, _ := newTestHost(t)

	h.handle(tcell.NewEventMouse(19, 5, tcell.ButtonNone, tcell.ModNone))
	c, ok := h.engine.Crosshair()
	if !ok || c.Col != 19 || c.Row != 5 {
		t.Fatalf("expected crosshair at 19,5, got %+v", c)
	}
	if v := h.engine.ImpulseState().Velocity; v != (engine.Vec2{}) {
		t.Fatalf("expected no kick from motion, got %+v", v)
	}

	h.handle(tcell.NewEventMouse(19, 5, tcell.Button1, tcell.ModNone))
	if v := h.engine.ImpulseState().Velocity; v.X >= 0 {
		t.Fatalf("expected leftward kick, got %+v", v)
	}
}

func TestHostDragKicksOnce(t *testing.T) {
	h, _ := newTestHost(t)

	h.handle(tcell.NewEventMouse(19, 5, tcell.Button1, tcell.ModNone))
	kicked := h.engine.ImpulseState().Velocity
	h.handle(tcell.NewEventMouse(18, 5, tcell.Button1, tcell.ModNone))
	h.handle(tcell.NewEventMouse(17, 5, tcell.Button1, tcell.ModNone))
	if v := h.engine.ImpulseState().Velocity; v != kicked {
		t.Fatalf("expected drag not to stack kicks, got %+v after %+v", v, kicked)
	}

	h.handle(tcell.NewEventMouse(17, 5, tcell.ButtonNone, tcell.ModNone))
	h.handle(tcell.NewEventMouse(17, 5, tcell.Button1, tcell.ModNone))
	if v := h.engine.ImpulseState().Velocity; v == kicked {
		t.Fatal("expected a second press to kick again")
	}
}

func TestHostClearsCrosshairWhenPointerLeaves(t *testing.T) {
	h, _ := newTestHost(t)

	h.handle(tcell.NewEventMouse(4, 4, tcell.ButtonNone, tcell.ModNone))
	if _, ok := h.engine.Crosshair(); !ok {
		t.Fatal("expected crosshair inside the grid")
	}
	h.handle(tcell.NewEventMouse(25, 4, tcell.ButtonNone, tcell.ModNone))
	if _, ok := h.engine.Crosshair(); ok {
		t.Fatal("expected crosshair cleared outside the grid")
	}

	h.handle(tcell.NewEventMouse(4, 4, tcell.ButtonNone, tcell.ModNone))
	h.handle(tcell.NewEventFocus(false))
	if _, ok := h.engine.Crosshair(); ok {
		t.Fatal("expected crosshair cleared when focus is lost")
	}
}

func TestHostRunRelabelsPreset(t *testing.T) {
	h, s := newTestHost(t)
	presets := make(chan string)
	h.WatchPresets(presets)
	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background()) }()

	select {
	case presets <- "custom":
	case <-time.After(5 * time.Second):
		t.Fatal("Run never read the preset label")
	}
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	if h.preset != "custom" {
		t.Fatalf("expected preset custom, got %q", h.preset)
	}
}

func TestHostResizeUpdatesViewport(t *testing.T) {
	h, s := newTestHost(t)
	if err := h.engine.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer h.engine.Stop()

	s.SetSize(40, 12)
	h.handle(tcell.NewEventResize(40, 12))

	if g := h.engine.Viewport().Grid; g.Cols != 40 || g.Rows != 12 {
		t.Fatalf("expected 40x12 viewport, got %dx%d", g.Cols, g.Rows)
	}
}

func TestHostPauseToggle(t *testing.T) {
	h, _ := newTestHost(t)
	if err := h.engine.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if h.engine.Running() {
		t.Fatal("expected engine paused")
	}
	h.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !h.engine.Running() {
		t.Fatal("expected engine resumed")
	}
	h.engine.Stop()
}

func TestHostRunQuitsOnKey(t *testing.T) {
	defer goleak.VerifyNone(t)

	h, s := newTestHost(t)
	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background()) }()

	deadline := time.After(5 * time.Second)
	for !h.engine.Running() {
		select {
		case <-deadline:
			t.Fatal("engine never started")
		case <-time.After(5 * time.Millisecond):
		}
	}
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	if h.engine.Running() {
		t.Fatal("expected engine stopped after Run")
	}
}

func TestHostRunStopsOnCancel(t *testing.T) {
	h, _ := newTestHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.engine.Running() {
		t.Fatal("expected engine stopped")
	}
}
