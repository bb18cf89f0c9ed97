package behavior

import "math"

const (
	DefaultBobRate = 2.0
	// bobSmoothing is the inverse time constant (1/s) of the amplitude ease,
	// roughly 83ms.
	bobSmoothing = 12.0
)

// Bob moves the blob up and down on a sine wave. Amplitude changes ease in
// exponentially instead of snapping.
type Bob struct {
	target   float64
	smoothed float64
	rate     float64
	phase    float64
}

// NewBob returns a bob already settled at amplitude. Rate is in rad/s: zero
// holds the bob still and a negative rate runs it backwards.
func NewBob(amplitude, rate float64) *Bob {
	return &Bob{target: amplitude, smoothed: amplitude, rate: rate}
}

func (b *Bob) Kind() Kind { return KindBob }

func (b *Bob) Update(dt float64) {
	b.phase += b.rate * dt
	alpha := 1 - math.Exp(-dt*bobSmoothing)
	b.smoothed += (b.target - b.smoothed) * alpha
}

func (b *Bob) Contribute(acc *Accumulator) {
	acc.Add(YOffset, math.Sin(b.phase)*b.smoothed)
}

// SetAmplitude changes the target amplitude; the effective one follows.
func (b *Bob) SetAmplitude(amplitude float64) { b.target = amplitude }

func (b *Bob) SetRate(rate float64) { b.rate = rate }

func (b *Bob) Amplitude() float64         { return b.target }
func (b *Bob) SmoothedAmplitude() float64 { return b.smoothed }
func (b *Bob) Rate() float64              { return b.rate }
func (b *Bob) Phase() float64             { return b.phase }
