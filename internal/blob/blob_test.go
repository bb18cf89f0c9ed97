package blob

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/olivier-w/orbweaver/internal/harmonics"
)

func TestRadiusAtStaysWithinBounds(t *testing.T) {
	for _, name := range harmonics.PresetNames() {
		hs, _ := harmonics.Preset(name)
		m := New(0.5, 0.1, hs)
		lo, hi := m.Bounds()
		for i := 0; i < 720; i++ {
			angle := float64(i) * math.Pi / 360
			for _, tm := range []float64{0, 0.7, 3.1, -12.4} {
				r := m.RadiusAt(angle, tm)
				if r < lo-1e-12 || r > hi+1e-12 {
					t.Fatalf("%s: radius %v outside [%v, %v] at angle=%v t=%v", name, r, lo, hi, angle, tm)
				}
			}
		}
	}
}

func TestRadiusAtIsContinuous(t *testing.T) {
	m := Default()
	// Lipschitz bound: |dr/dθ| <= Amplitude * Σ|a*f|, same for t with Σ|a|.
	var slope float64
	for _, h := range m.Harmonics() {
		slope += math.Abs(h.Amplitude * h.Frequency)
	}
	slope *= m.Amplitude
	const step = 1e-4
	for i := 0; i < 1000; i++ {
		angle := float64(i) * 0.00628
		d := math.Abs(m.RadiusAt(angle+step, 1.3) - m.RadiusAt(angle, 1.3))
		if d > slope*step+1e-12 {
			t.Fatalf("jump of %v at angle %v exceeds %v", d, angle, slope*step)
		}
		d = math.Abs(m.RadiusAt(angle, 1.3+step) - m.RadiusAt(angle, 1.3))
		if d > m.Amplitude*harmonics.AbsSum(m.Harmonics())*step+1e-12 {
			t.Fatalf("time jump of %v at angle %v", d, angle)
		}
	}
}

func TestRadiusAtPeriodicForIntegralFrequencies(t *testing.T) {
	m := Default()
	for _, angle := range []float64{0, 0.4, 1.9, 5.5} {
		a := m.RadiusAt(angle, 0.25)
		b := m.RadiusAt(angle+2*math.Pi, 0.25)
		if math.Abs(a-b) > 1e-9 {
			t.Fatalf("expected 2π periodicity at %v, got %v vs %v", angle, a, b)
		}
	}
}

func TestEmptyHarmonicsIsCircle(t *testing.T) {
	m := New(0.6, 0.2, nil)
	m.SetParams(harmonics.Params{NumHarmonics: 0})
	for _, angle := range []float64{0, 1, 2, 3} {
		if got := m.RadiusAt(angle, 5); got != 0.6 {
			t.Fatalf("expected circle radius 0.6, got %v", got)
		}
	}
}

func TestSetHarmonicsUsesArrayVerbatim(t *testing.T) {
	m := Default()
	hs := []harmonics.Harmonic{{Amplitude: 2, Frequency: 1, Phase: 0}}
	m.SetHarmonics(hs)

	if diff := cmp.Diff(hs, m.Harmonics()); diff != "" {
		t.Fatalf("harmonics mismatch (-want +got):\n%s", diff)
	}
	want := m.BaseRadius + m.Amplitude*2*math.Sin(0.5)
	if got := m.RadiusAt(0.5, 0); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}

	hs[0].Amplitude = 100
	if got := m.Harmonics()[0].Amplitude; got != 2 {
		t.Fatalf("expected model to keep its own copy, got amplitude %v", got)
	}
}

func TestSetParamsReplacesWholeSet(t *testing.T) {
	m := Default()
	m.SetParams(harmonics.Params{NumHarmonics: 2, BaseFrequency: 4, Spacing: harmonics.SpacingHarmonic})
	want := []harmonics.Harmonic{
		{Amplitude: 1, Frequency: 4, Phase: 0},
		{Amplitude: 0.5, Frequency: 8, Phase: 0},
	}
	if diff := cmp.Diff(want, m.Harmonics()); diff != "" {
		t.Fatalf("harmonics mismatch (-want +got):\n%s", diff)
	}
}
