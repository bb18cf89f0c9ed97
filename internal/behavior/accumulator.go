package behavior

// Channel is a well-known accumulator slot read by the built-in sampler.
type Channel uint8

const (
	RotationPhase Channel = iota
	XOffset
	YOffset
	CursorInfluence
	numChannels
)

var channelNames = [numChannels]string{
	RotationPhase:   "rotationPhase",
	XOffset:         "xOffsetUnits",
	YOffset:         "yOffsetUnits",
	CursorInfluence: "cursorInfluence",
}

func (c Channel) String() string {
	if c < numChannels {
		return channelNames[c]
	}
	return "unknown"
}

// Accumulator sums behavior contributions for a single frame. Well-known
// channels live in a fixed array; anything else goes to Custom, which the
// built-in sampler ignores but custom renderers may read.
type Accumulator struct {
	values [numChannels]float64
	Custom map[string]float64
}

// Add sums v into a well-known channel.
func (a *Accumulator) Add(c Channel, v float64) {
	if c < numChannels {
		a.values[c] += v
	}
}

// Get returns the sum for a well-known channel.
func (a *Accumulator) Get(c Channel) float64 {
	if c < numChannels {
		return a.values[c]
	}
	return 0
}

// AddCustom sums v into an open channel, keyed by name.
func (a *Accumulator) AddCustom(name string, v float64) {
	if a.Custom == nil {
		a.Custom = make(map[string]float64)
	}
	a.Custom[name] += v
}

// Reset clears every channel so the accumulator can be reused next frame.
func (a *Accumulator) Reset() {
	a.values = [numChannels]float64{}
	clear(a.Custom)
}
