// Package render paints engine frames as terminal text. Renderers produce a
// whole frame as a string, which a host (the bubbletea UI, a snapshot
// command) displays.
package render

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/olivier-w/orbweaver/internal/engine"
)

// Mode names a renderer variant.
type Mode string

const (
	ModeASCII    Mode = "ascii"
	ModeGradient Mode = "gradient"
	ModeBraille  Mode = "braille"
)

const (
	// DefaultGlyphs runs from background to full intensity.
	DefaultGlyphs = " .:-=+*#%@"
	// DefaultCellAspect is the height of a terminal cell over its width.
	DefaultCellAspect = 2.0
	DefaultCols       = 64
	DefaultRows       = 24
)

// DefaultRamp runs from the background color to the brightest one.
var DefaultRamp = []string{"#0b0e14", "#1d3557", "#457b9d", "#a8dadc", "#f1faee"}

// Renderer is an engine renderer that keeps its latest frame as text.
type Renderer interface {
	engine.Renderer
	Name() string
	// View returns the most recently rendered frame.
	View() string
	// Resize changes the grid and notifies resize subscribers.
	Resize(cols, rows int)
	// Cells is the frame size in terminal cells. It differs from GridSize
	// when a renderer samples several points per cell.
	Cells() engine.Grid
	// FromCell maps a terminal cell to the grid cell at its center.
	FromCell(col, row int) (gridCol, gridRow int)
}

// Modes lists every renderer variant.
func Modes() []Mode {
	return []Mode{ModeASCII, ModeGradient, ModeBraille}
}

// NextMode returns the mode after m, wrapping around.
func NextMode(m Mode) Mode {
	modes := Modes()
	for i, mm := range modes {
		if mm == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

type settings struct {
	cols, rows int
	aspect     float64
	glyphs     string
	ramp       []string
	profile    *termenv.Profile
	sink       func(string)
}

// Option configures a renderer.
type Option func(*settings)

// WithGrid sets the grid size in cells.
func WithGrid(cols, rows int) Option {
	return func(s *settings) { s.cols, s.rows = cols, rows }
}

// WithCellAspect sets the cell height-to-width ratio.
func WithCellAspect(aspect float64) Option {
	return func(s *settings) { s.aspect = aspect }
}

// WithGlyphs sets the glyph ramp; the first glyph is the background.
func WithGlyphs(glyphs string) Option {
	return func(s *settings) { s.glyphs = glyphs }
}

// WithColors sets a two-stop ramp from background to foreground.
func WithColors(fg, bg string) Option {
	return func(s *settings) { s.ramp = []string{bg, fg} }
}

// WithRamp sets an ordered color ramp from background to brightest.
func WithRamp(hexes ...string) Option {
	return func(s *settings) { s.ramp = append([]string(nil), hexes...) }
}

// WithProfile overrides terminal color detection.
func WithProfile(p termenv.Profile) Option {
	return func(s *settings) { s.profile = &p }
}

// WithSink receives every rendered frame.
func WithSink(fn func(frame string)) Option {
	return func(s *settings) { s.sink = fn }
}

// New builds a renderer of the given mode. Unknown modes render ASCII.
func New(mode Mode, opts ...Option) (Renderer, error) {
	s := settings{
		cols:   DefaultCols,
		rows:   DefaultRows,
		aspect: DefaultCellAspect,
		glyphs: DefaultGlyphs,
		ramp:   DefaultRamp,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if len([]rune(s.glyphs)) < 2 {
		return nil, fmt.Errorf("glyph ramp %q needs at least two glyphs", s.glyphs)
	}
	ramp, err := ParseRamp(s.ramp)
	if err != nil {
		return nil, err
	}
	profile := currentColorProfile()
	if s.profile != nil {
		profile = *s.profile
	}

	c := newCanvas(s.cols, s.rows, s.aspect, s.sink)
	pal := newPalette(profile, ramp)
	switch mode {
	case ModeGradient:
		return &Gradient{canvas: c, palette: pal, glyphs: []rune(s.glyphs)}, nil
	case ModeBraille:
		return &Braille{canvas: c, palette: pal}, nil
	default:
		return &ASCII{canvas: c, palette: pal, glyphs: []rune(s.glyphs)}, nil
	}
}
