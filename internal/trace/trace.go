// Package trace samples the animation offline: the impulse spring's
// response to a single kick and the blob outline at a fixed time. Results
// plot as ASCII charts.
package trace

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/olivier-w/orbweaver/internal/blob"
	"github.com/olivier-w/orbweaver/internal/engine"
)

// Response is the offset and velocity of one impulse axis after a kick.
type Response struct {
	DT       float64
	Offset   []float64
	Velocity []float64
	// Settled is the first step at rest, or -1 if the run ended first.
	Settled int
}

// ImpulseResponse kicks a resting spring along X and records steps frames.
func ImpulseResponse(force, dt float64, steps int) Response {
	r := Response{
		DT:       dt,
		Offset:   make([]float64, 0, steps),
		Velocity: make([]float64, 0, steps),
		Settled:  -1,
	}
	var imp engine.Impulse
	imp.Kick(engine.Vec2{X: force})
	for i := range steps {
		imp.Step(dt)
		r.Offset = append(r.Offset, imp.Offset.X)
		r.Velocity = append(r.Velocity, imp.Velocity.X)
		if r.Settled < 0 && imp.AtRest() {
			r.Settled = i
		}
	}
	return r
}

// Peak returns the step and value of the largest offset.
func (r Response) Peak() (step int, value float64) {
	for i, v := range r.Offset {
		if math.Abs(v) > math.Abs(value) {
			step, value = i, v
		}
	}
	return step, value
}

// Plot charts the offset curve.
func (r Response) Plot(width, height int) string {
	if len(r.Offset) == 0 {
		return ""
	}
	caption := "offset, settles after " + r.settleText()
	return asciigraph.Plot(r.Offset,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}

func (r Response) settleText() string {
	if r.Settled < 0 {
		return "never"
	}
	return fmt.Sprintf("%d steps (%.2fs)", r.Settled, float64(r.Settled)*r.DT)
}

// Profile samples the blob radius at samples evenly spaced angles in
// [0, 2π) at time t.
func Profile(m blob.Model, t float64, samples int) []float64 {
	out := make([]float64, max(samples, 0))
	for i := range out {
		out[i] = m.RadiusAt(2*math.Pi*float64(i)/float64(samples), t)
	}
	return out
}

// PlotProfile charts a radius profile with the blob's bounds as the axis
// range, so presets plot on comparable scales.
func PlotProfile(m blob.Model, t float64, width, height int) string {
	lo, hi := m.Bounds()
	if hi-lo < 1e-3 {
		lo, hi = lo-0.05, hi+0.05
	}
	return asciigraph.Plot(Profile(m, t, max(width, 2)),
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.LowerBound(lo),
		asciigraph.UpperBound(hi),
		asciigraph.Precision(2),
		asciigraph.Caption("radius by angle"),
	)
}
