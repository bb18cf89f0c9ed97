package harmonics

import "math"

// Harmonic is one sinusoidal term of a blob outline.
type Harmonic struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"` // radians
}

// Spacing selects how successive harmonic frequencies grow.
type Spacing string

const (
	SpacingHarmonic  Spacing = "harmonic"  // base * (i+1)
	SpacingGeometric Spacing = "geometric" // base * 1.7^i
	SpacingAdditive  Spacing = "additive"  // base + i
)

const geometricRatio = 1.7

// Params describes a generated harmonic set.
type Params struct {
	NumHarmonics  int     `yaml:"num_harmonics"`
	BaseFrequency float64 `yaml:"base_frequency"`
	Spacing       Spacing `yaml:"spacing"`
	PhaseSpread   float64 `yaml:"phase_spread"`
}

// Generate builds NumHarmonics terms with amplitudes 1/(i+1).
// Unknown spacings behave like SpacingHarmonic. A non-positive count
// yields an empty set, which describes a perfect circle.
func Generate(p Params) []Harmonic {
	if p.NumHarmonics <= 0 {
		return []Harmonic{}
	}
	out := make([]Harmonic, p.NumHarmonics)
	for i := range p.NumHarmonics {
		out[i] = Harmonic{
			Amplitude: 1 / float64(i+1),
			Frequency: frequency(p.Spacing, p.BaseFrequency, i),
			Phase:     float64(i) * p.PhaseSpread,
		}
	}
	return out
}

func frequency(s Spacing, base float64, i int) float64 {
	switch s {
	case SpacingGeometric:
		return base * math.Pow(geometricRatio, float64(i))
	case SpacingAdditive:
		return base + float64(i)
	default:
		return base * float64(i+1)
	}
}

// AbsSum returns Σ|h.Amplitude|, the worst-case excursion of a set.
func AbsSum(hs []Harmonic) float64 {
	var sum float64
	for _, h := range hs {
		sum += math.Abs(h.Amplitude)
	}
	return sum
}

// Integral reports whether every frequency is a whole number, which is
// when the outline is exactly 2π-periodic in angle.
func Integral(hs []Harmonic) bool {
	for _, h := range hs {
		if h.Frequency != math.Trunc(h.Frequency) {
			return false
		}
	}
	return true
}
