// Package config loads scene files: the blob shape, its behaviors and the
// renderer settings, and applies them to a running engine.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/orbweaver/internal/behavior"
	"github.com/olivier-w/orbweaver/internal/blob"
	"github.com/olivier-w/orbweaver/internal/engine"
	"github.com/olivier-w/orbweaver/internal/harmonics"
	"github.com/olivier-w/orbweaver/internal/render"
)

// DefaultCrosshairStrength applies to a crosshair entry without a strength.
const DefaultCrosshairStrength = 1.0

// PresetCustom labels a blob whose harmonics come from the file rather than
// a named preset.
const PresetCustom = "custom"

var (
	ErrUnknownBehavior = errors.New("unknown behavior type")
	ErrUnknownPreset   = errors.New("unknown preset")
	ErrUnknownRenderer = errors.New("unknown renderer")
)

// Scene is the on-disk description of an animation.
type Scene struct {
	FPS        float64          `yaml:"fps"`
	Renderer   string           `yaml:"renderer"`
	Glyphs     string           `yaml:"glyphs,omitempty"`
	Colors     []string         `yaml:"colors,omitempty"`
	Grid       Grid             `yaml:"grid"`
	CellAspect float64          `yaml:"cell_aspect"`
	Blob       Blob             `yaml:"blob"`
	Behaviors  []BehaviorConfig `yaml:"behaviors"`
}

// Grid is the character grid used when the host does not size it.
type Grid struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Blob picks the shape. Explicit harmonics win over generator params, which
// win over a named preset.
type Blob struct {
	BaseRadius float64              `yaml:"base_radius"`
	Amplitude  float64              `yaml:"amplitude"`
	Preset     string               `yaml:"preset,omitempty"`
	Harmonics  []harmonics.Harmonic `yaml:"harmonics,omitempty"`
	Params     *harmonics.Params    `yaml:"params,omitempty"`
}

// BehaviorConfig holds the union of every behavior's settings; Type selects
// which fields apply. Rate and Strength are pointers so an absent field can
// fall back to its default while an explicit zero is kept.
type BehaviorConfig struct {
	Type         behavior.Kind `yaml:"type"`
	Speed        float64       `yaml:"speed,omitempty"`
	Direction    int           `yaml:"direction,omitempty"`
	Amplitude    float64       `yaml:"amplitude,omitempty"`
	Rate         *float64      `yaml:"rate,omitempty"`
	Radius       float64       `yaml:"radius,omitempty"`
	AngularSpeed float64       `yaml:"angular_speed,omitempty"`
	Phase        float64       `yaml:"phase,omitempty"`
	Axis         string        `yaml:"axis,omitempty"`
	Strength     *float64      `yaml:"strength,omitempty"`
}

// Default returns the built-in scene: the organic preset turning slowly,
// bobbing a little, and following the cursor.
func Default() *Scene {
	return &Scene{
		Renderer:   string(render.ModeASCII),
		Grid:       Grid{Cols: render.DefaultCols, Rows: render.DefaultRows},
		CellAspect: render.DefaultCellAspect,
		Blob: Blob{
			BaseRadius: blob.DefaultBaseRadius,
			Amplitude:  blob.DefaultAmplitude,
			Preset:     harmonics.DefaultPreset,
		},
		Behaviors: []BehaviorConfig{
			{Type: behavior.KindRotate, Speed: 0.6, Direction: 1},
			{Type: behavior.KindBob, Amplitude: 0.04, Rate: ptr(behavior.DefaultBobRate)},
			{Type: behavior.KindCrosshair, Strength: ptr(DefaultCrosshairStrength)},
		},
	}
}

// Load reads a scene file. A missing file yields the default scene.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scene over the defaults and validates it.
func Parse(data []byte) (*Scene, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the scene as YAML.
func (s *Scene) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene: %w", err)
	}
	return nil
}

func (s *Scene) Validate() error {
	if !slices.Contains(render.Modes(), render.Mode(s.Renderer)) {
		return fmt.Errorf("%w: %q", ErrUnknownRenderer, s.Renderer)
	}
	if len(s.Blob.Harmonics) == 0 && s.Blob.Params == nil && s.Blob.Preset != "" {
		if _, ok := harmonics.Preset(s.Blob.Preset); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPreset, s.Blob.Preset)
		}
	}
	for i, b := range s.Behaviors {
		switch b.Type {
		case behavior.KindRotate, behavior.KindBob, behavior.KindOrbit, behavior.KindCrosshair:
		default:
			return fmt.Errorf("behaviors[%d]: %w: %q", i, ErrUnknownBehavior, b.Type)
		}
	}
	return nil
}

// Harmonics resolves the blob's harmonic set.
func (s *Scene) Harmonics() []harmonics.Harmonic {
	switch {
	case len(s.Blob.Harmonics) > 0:
		return append([]harmonics.Harmonic(nil), s.Blob.Harmonics...)
	case s.Blob.Params != nil:
		return harmonics.Generate(*s.Blob.Params)
	case s.Blob.Preset != "":
		hs, _ := harmonics.Preset(s.Blob.Preset)
		return hs
	}
	return nil
}

// PresetLabel names the source Harmonics resolved: the preset name, or
// PresetCustom for explicit harmonics and generator params.
func (s *Scene) PresetLabel() string {
	if len(s.Blob.Harmonics) > 0 || s.Blob.Params != nil || s.Blob.Preset == "" {
		return PresetCustom
	}
	return s.Blob.Preset
}

// Shape builds the blob model described by the scene.
func (s *Scene) Shape() blob.Model {
	return blob.New(s.Blob.BaseRadius, s.Blob.Amplitude, s.Harmonics())
}

// NewBehaviors builds fresh behaviors in file order.
func (s *Scene) NewBehaviors() ([]behavior.Behavior, error) {
	out := make([]behavior.Behavior, 0, len(s.Behaviors))
	for i, c := range s.Behaviors {
		b, err := c.New()
		if err != nil {
			return nil, fmt.Errorf("behaviors[%d]: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// New builds the behavior c describes.
func (c BehaviorConfig) New() (behavior.Behavior, error) {
	switch c.Type {
	case behavior.KindRotate:
		return behavior.NewRotate(c.Speed, c.Direction), nil
	case behavior.KindBob:
		return behavior.NewBob(c.Amplitude, c.rate()), nil
	case behavior.KindOrbit:
		return behavior.NewOrbit(c.Radius, c.AngularSpeed, c.Phase, behavior.ParseAxis(c.Axis)), nil
	case behavior.KindCrosshair:
		return behavior.NewCrosshair(c.strength()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBehavior, c.Type)
}

// update copies c's settings onto an existing behavior of the same kind,
// leaving its phase alone.
func (c BehaviorConfig) update(b behavior.Behavior) {
	switch b := b.(type) {
	case *behavior.Rotate:
		b.SetSpeed(c.Speed)
		b.SetDirection(c.Direction)
	case *behavior.Bob:
		b.SetAmplitude(c.Amplitude)
		b.SetRate(c.rate())
	case *behavior.Orbit:
		b.SetRadius(c.Radius)
		b.SetAngularSpeed(c.AngularSpeed)
		b.SetAxis(behavior.ParseAxis(c.Axis))
	case *behavior.Crosshair:
		b.SetStrength(c.strength())
	}
}

func (c BehaviorConfig) rate() float64 {
	if c.Rate == nil {
		return behavior.DefaultBobRate
	}
	return *c.Rate
}

func (c BehaviorConfig) strength() float64 {
	if c.Strength == nil {
		return DefaultCrosshairStrength
	}
	return *c.Strength
}

func ptr(v float64) *float64 { return &v }

// RenderOptions returns the renderer options the scene asks for.
func (s *Scene) RenderOptions() []render.Option {
	opts := []render.Option{
		render.WithGrid(s.Grid.Cols, s.Grid.Rows),
		render.WithCellAspect(s.CellAspect),
	}
	if s.Glyphs != "" {
		opts = append(opts, render.WithGlyphs(s.Glyphs))
	}
	if len(s.Colors) > 0 {
		opts = append(opts, render.WithRamp(s.Colors...))
	}
	return opts
}

// EngineOptions returns the engine options for a fresh engine.
func (s *Scene) EngineOptions() (engine.Options, error) {
	bs, err := s.NewBehaviors()
	if err != nil {
		return engine.Options{}, err
	}
	shape := s.Shape()
	return engine.Options{Behaviors: bs, FPS: s.FPS, Blob: &shape}, nil
}

// Apply pushes the scene onto a live engine. Behaviors that already exist
// keep their phase and take the new settings; missing ones are created and
// ones the scene no longer names are dropped.
func (s *Scene) Apply(e *engine.Engine) error {
	list := make([]behavior.Behavior, 0, len(s.Behaviors))
	for i, c := range s.Behaviors {
		var kept behavior.Behavior
		e.UpdateBehavior(c.Type, func(b behavior.Behavior) {
			c.update(b)
			kept = b
		})
		if kept == nil {
			b, err := c.New()
			if err != nil {
				return fmt.Errorf("behaviors[%d]: %w", i, err)
			}
			kept = b
		}
		list = append(list, kept)
	}
	e.SetBehavior(list)
	e.SetBlobSize(s.Blob.BaseRadius, s.Blob.Amplitude)
	e.SetBlobHarmonics(s.Harmonics())
	e.SetTargetFPS(s.FPS)
	return nil
}
