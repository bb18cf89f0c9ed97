package trace

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/orbweaver/internal/blob"
	"github.com/olivier-w/orbweaver/internal/harmonics"
)

func TestImpulseResponseRisesAndSettles(t *testing.T) {
	r := ImpulseResponse(1, 1.0/60, 300)

	require.Len(t, r.Offset, 300)
	require.Len(t, r.Velocity, 300)

	step, peak := r.Peak()
	assert.Greater(t, peak, 0.0)
	assert.Greater(t, step, 0)
	assert.Less(t, step, 60)

	require.GreaterOrEqual(t, r.Settled, 0)
	assert.LessOrEqual(t, r.Settled, 240)
	for _, v := range r.Offset[r.Settled:] {
		assert.Zero(t, v)
	}
	for _, v := range r.Offset {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestImpulseResponseTooShortNeverSettles(t *testing.T) {
	r := ImpulseResponse(1, 1.0/60, 10)
	assert.Equal(t, -1, r.Settled)
	assert.Contains(t, r.Plot(40, 6), "never")
}

func TestResponsePlot(t *testing.T) {
	r := ImpulseResponse(1, 1.0/60, 200)
	out := r.Plot(50, 8)

	assert.Contains(t, out, "offset, settles after")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 8)
	assert.Empty(t, Response{}.Plot(10, 4))
}

func TestProfile(t *testing.T) {
	m := blob.Default()
	p := Profile(m, 0, 64)
	require.Len(t, p, 64)

	lo, hi := m.Bounds()
	for _, v := range p {
		assert.GreaterOrEqual(t, v, lo-1e-12)
		assert.LessOrEqual(t, v, hi+1e-12)
	}
	assert.InDelta(t, m.RadiusAt(0, 0), p[0], 1e-12)
	assert.InDelta(t, m.RadiusAt(math.Pi, 0), p[32], 1e-12)

	assert.Empty(t, Profile(m, 0, 0))
}

func TestPlotProfileCircle(t *testing.T) {
	m := blob.New(0.5, 0.1, []harmonics.Harmonic{})
	out := PlotProfile(m, 0, 30, 4)
	assert.Contains(t, out, "radius by angle")
}
