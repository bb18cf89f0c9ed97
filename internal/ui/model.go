package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/olivier-w/orbweaver/internal/behavior"
	"github.com/olivier-w/orbweaver/internal/engine"
	"github.com/olivier-w/orbweaver/internal/harmonics"
	"github.com/olivier-w/orbweaver/internal/render"
)

const (
	headerRows = 2 // title line + blank
	footerRows = 3 // blank + status + help
	pushForce  = 1.5
	clickForce = 2.5
)

// fpsSteps are the frame caps cycled with +/-. Zero follows the display.
var fpsSteps = []float64{12, 24, 30, 0}

// Options configures the interactive model.
type Options struct {
	Mode          render.Mode
	RenderOptions []render.Option
	Preset        string
	// FixedGrid keeps the renderer's grid instead of following the window.
	FixedGrid bool
	// Presets delivers the preset label after a scene reload.
	Presets <-chan string
	Logger  *zap.Logger
}

// Model is the Bubbletea model hosting an engine.
type Model struct {
	engine   *engine.Engine
	renderer render.Renderer
	opts     Options
	feed     *frameFeed
	logger   *zap.Logger

	keys    keyMap
	help    help.Model
	pointer pointer
	ticking bool

	preset   string
	frame    string
	width    int
	height   int
	paused   bool
	quitting bool
	errMsg   string
}

// New attaches a fresh renderer of opts.Mode to e and returns the model.
// The engine is started by Init.
func New(e *engine.Engine, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Preset == "" {
		opts.Preset = harmonics.DefaultPreset
	}
	m := Model{
		engine:  e,
		opts:    opts,
		feed:    newFrameFeed(),
		logger:  opts.Logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		pointer: newPointer(),
		preset:  opts.Preset,
	}
	r, err := m.newRenderer(opts.Mode)
	if err != nil {
		return Model{}, err
	}
	m.renderer = r
	e.SetRenderer(r)
	return m, nil
}

func (m Model) newRenderer(mode render.Mode) (render.Renderer, error) {
	ropts := append([]render.Option(nil), m.opts.RenderOptions...)
	if m.renderer != nil {
		g := m.renderer.Cells()
		ropts = append(ropts, render.WithGrid(g.Cols, g.Rows))
	}
	ropts = append(ropts, render.WithSink(m.feed.push))
	r, err := render.New(mode, ropts...)
	if err != nil {
		return nil, fmt.Errorf("creating %s renderer: %w", mode, err)
	}
	return r, nil
}

func (m Model) Init() tea.Cmd {
	if err := m.engine.Start(); err != nil {
		m.logger.Error("engine start failed", zap.Error(err))
		return tea.Quit
	}
	m.logger.Info("engine started", zap.String("renderer", m.renderer.Name()), zap.Float64("fps", m.engine.TargetFPS()))
	return tea.Batch(m.feed.wait(), waitPreset(m.opts.Presets), tea.SetWindowTitle("orbweaver"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		if !m.pointer.active {
			m.ticking = false
			return m, nil
		}
		col, row := m.renderer.FromCell(m.pointer.step())
		m.engine.SetCrosshair(engine.Cell{Col: col, Row: row})
		return m, tickCmd()

	case frameMsg:
		m.frame = string(msg)
		return m, m.feed.wait()

	case presetMsg:
		m.preset = string(msg)
		return m, waitPreset(m.opts.Presets)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.opts.FixedGrid {
			m.renderer.Resize(msg.Width, max(msg.Height-headerRows-footerRows, 1))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.engine.Stop()
		m.logger.Info("quitting")
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, m.keys.Toggle):
		if m.paused {
			if err := m.engine.Start(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
		} else {
			m.engine.Stop()
		}
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Left):
		m.engine.Impulse(engine.Vec2{X: -pushForce})
	case key.Matches(msg, m.keys.Right):
		m.engine.Impulse(engine.Vec2{X: pushForce})
	case key.Matches(msg, m.keys.Up):
		m.engine.Impulse(engine.Vec2{Y: -pushForce})
	case key.Matches(msg, m.keys.Down):
		m.engine.Impulse(engine.Vec2{Y: pushForce})

	case key.Matches(msg, m.keys.Preset):
		m.preset = harmonics.NextPreset(m.preset)
		hs, _ := harmonics.Preset(m.preset)
		m.engine.SetBlobHarmonics(hs)
		m.logger.Debug("preset changed", zap.String("preset", m.preset))

	case key.Matches(msg, m.keys.Reverse):
		m.engine.UpdateBehavior(behavior.KindRotate, func(b behavior.Behavior) {
			if r, ok := b.(*behavior.Rotate); ok {
				r.Reverse()
			}
		})

	case key.Matches(msg, m.keys.Bob):
		m.toggle(behavior.KindBob, func() behavior.Behavior { return behavior.NewBob(0.05, behavior.DefaultBobRate) })
	case key.Matches(msg, m.keys.Orbit):
		m.toggle(behavior.KindOrbit, func() behavior.Behavior { return behavior.NewOrbit(0.12, 0.9, 0, behavior.AxisBoth) })
	case key.Matches(msg, m.keys.Crosshair):
		m.toggle(behavior.KindCrosshair, func() behavior.Behavior { return behavior.NewCrosshair(1) })

	case key.Matches(msg, m.keys.Faster):
		m.engine.SetTargetFPS(stepFPS(m.engine.TargetFPS(), 1))
	case key.Matches(msg, m.keys.Slower):
		m.engine.SetTargetFPS(stepFPS(m.engine.TargetFPS(), -1))

	case key.Matches(msg, m.keys.Renderer):
		next, err := m.newRenderer(render.NextMode(render.Mode(m.renderer.Name())))
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		old := m.renderer
		m.renderer = next
		m.engine.SetRenderer(next)
		old.Destroy()
		m.logger.Debug("renderer changed", zap.String("renderer", next.Name()))

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) toggle(kind behavior.Kind, create func() behavior.Behavior) {
	if m.engine.UpdateBehavior(kind, func(behavior.Behavior) {}) {
		m.engine.RemoveBehavior(kind)
		m.logger.Debug("behavior removed", zap.String("kind", string(kind)))
		return
	}
	m.engine.AddBehavior(create())
	m.logger.Debug("behavior added", zap.String("kind", string(kind)))
}

func stepFPS(current float64, dir int) float64 {
	idx := len(fpsSteps) - 1
	for i, f := range fpsSteps {
		if f == current {
			idx = i
			break
		}
	}
	idx = min(max(idx+dir, 0), len(fpsSteps)-1)
	return fpsSteps[idx]
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	g := m.renderer.Cells()
	col, row := msg.X, msg.Y-headerRows
	inside := col >= 0 && row >= 0 && col < g.Cols && row < g.Rows

	if !inside {
		if m.pointer.active {
			m.pointer.release()
			m.engine.ClearCrosshair()
		}
		return m, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		gc, gr := m.renderer.FromCell(col, row)
		m.engine.Impulse(m.engine.Viewport().PushFrom(gc, gr, clickForce))
	}

	m.pointer.aim(col, row)
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n\n")
	b.WriteString(m.frame)
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	view := b.String()
	if pad := m.height - lipgloss.Height(view); pad > 0 {
		view += strings.Repeat("\n", pad)
	}
	return view
}

func (m Model) headerLine() string {
	fps := "display"
	if f := m.engine.TargetFPS(); f > 0 {
		fps = fmt.Sprintf("%g fps", f)
	}
	state := "▶"
	if m.paused {
		state = "❚❚"
	}
	return fmt.Sprintf("  %s  %s  %s",
		headerStyle.Render("orbweaver"),
		titleStyle.Render(m.preset),
		statusStyle.Render(fmt.Sprintf("%s %s · %s", state, m.renderer.Name(), fps)),
	)
}

func (m Model) statusLine() string {
	kinds := []behavior.Kind{behavior.KindRotate, behavior.KindBob, behavior.KindOrbit, behavior.KindCrosshair}
	active := make(map[behavior.Kind]bool)
	for _, b := range m.engine.Behaviors() {
		active[b.Kind()] = true
	}
	parts := make([]string, 0, len(kinds)+1)
	for _, k := range kinds {
		if active[k] {
			parts = append(parts, activeStyle.Render(string(k)))
		} else {
			parts = append(parts, statusStyle.Render(string(k)))
		}
	}
	if m.errMsg != "" {
		parts = append(parts, statusStyle.Render(m.errMsg))
	}
	return "  " + strings.Join(parts, "  ")
}
