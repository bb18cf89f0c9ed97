// Package blob evaluates the radial outline of a blob from a harmonic set.
//
// The outline is
//
//	r(θ, t) = BaseRadius + Amplitude * Σ h.Amplitude * sin(h.Frequency*θ + h.Phase + t)
//
// It is continuous in θ and t. It is exactly 2π-periodic in θ only when every
// frequency is a whole number; otherwise it is almost-periodic.
package blob

import (
	"math"

	"github.com/olivier-w/orbweaver/internal/harmonics"
)

const (
	DefaultBaseRadius = 0.55
	DefaultAmplitude  = 0.08
)

// Model is a blob outline. The harmonic set is only ever replaced whole,
// so a copied Model is a stable snapshot.
type Model struct {
	BaseRadius float64
	Amplitude  float64
	harmonics  []harmonics.Harmonic
}

// New returns a model using hs verbatim.
func New(baseRadius, amplitude float64, hs []harmonics.Harmonic) Model {
	m := Model{BaseRadius: baseRadius, Amplitude: amplitude}
	m.SetHarmonics(hs)
	return m
}

// Default returns the default preset at the default size.
func Default() Model {
	hs, _ := harmonics.Preset(harmonics.DefaultPreset)
	return New(DefaultBaseRadius, DefaultAmplitude, hs)
}

// RadiusAt returns the outline radius at angle (radians) for phase time t.
func (m Model) RadiusAt(angle, t float64) float64 {
	var sum float64
	for _, h := range m.harmonics {
		sum += h.Amplitude * math.Sin(h.Frequency*angle+h.Phase+t)
	}
	return m.BaseRadius + m.Amplitude*sum
}

// SetHarmonics replaces the whole set with a copy of hs.
func (m *Model) SetHarmonics(hs []harmonics.Harmonic) {
	m.harmonics = append([]harmonics.Harmonic(nil), hs...)
}

// SetParams replaces the whole set with a generated one.
func (m *Model) SetParams(p harmonics.Params) {
	m.harmonics = harmonics.Generate(p)
}

// Harmonics returns a copy of the current set.
func (m Model) Harmonics() []harmonics.Harmonic {
	return append([]harmonics.Harmonic(nil), m.harmonics...)
}

// Bounds returns the smallest and largest radius the outline can reach.
func (m Model) Bounds() (lo, hi float64) {
	ext := math.Abs(m.Amplitude) * harmonics.AbsSum(m.harmonics)
	return m.BaseRadius - ext, m.BaseRadius + ext
}
