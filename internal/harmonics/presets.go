package harmonics

// DefaultPreset is used when a scene names no harmonics.
const DefaultPreset = "organic"

var presetOrder = []string{"minimal", "soft", "organic", "lively", "jagged", "complex"}

var presets = map[string][]Harmonic{
	"minimal": {
		{Amplitude: 1, Frequency: 3, Phase: 0},
	},
	"soft": {
		{Amplitude: 1, Frequency: 2, Phase: 0},
		{Amplitude: 0.4, Frequency: 3, Phase: 1.2},
	},
	"organic": {
		{Amplitude: 1, Frequency: 3, Phase: 0},
		{Amplitude: 0.5, Frequency: 5, Phase: 0.9},
		{Amplitude: 0.3, Frequency: 7, Phase: 2.1},
	},
	"lively": {
		{Amplitude: 0.8, Frequency: 2, Phase: 0.3},
		{Amplitude: 0.6, Frequency: 4, Phase: 1.7},
		{Amplitude: 0.35, Frequency: 6, Phase: 0.4},
		{Amplitude: 0.2, Frequency: 9, Phase: 2.8},
	},
	"jagged": {
		{Amplitude: 0.7, Frequency: 5, Phase: 0},
		{Amplitude: 0.5, Frequency: 8, Phase: 1.1},
		{Amplitude: 0.4, Frequency: 11, Phase: 2.3},
		{Amplitude: 0.3, Frequency: 13, Phase: 0.6},
	},
	"complex": {
		{Amplitude: 1, Frequency: 2, Phase: 0},
		{Amplitude: 0.55, Frequency: 3, Phase: 0.8},
		{Amplitude: 0.4, Frequency: 5, Phase: 1.9},
		{Amplitude: 0.3, Frequency: 7, Phase: 2.6},
		{Amplitude: 0.2, Frequency: 11, Phase: 0.5},
		{Amplitude: 0.12, Frequency: 17, Phase: 1.4},
	},
}

// Preset returns a copy of the named harmonic set.
func Preset(name string) ([]Harmonic, bool) {
	hs, ok := presets[name]
	if !ok {
		return nil, false
	}
	return append([]Harmonic(nil), hs...), true
}

// PresetNames lists presets from simplest to most complex.
func PresetNames() []string {
	return append([]string(nil), presetOrder...)
}

// NextPreset returns the preset after name, wrapping around. Unknown names
// start over at the first preset.
func NextPreset(name string) string {
	for i, n := range presetOrder {
		if n == name {
			return presetOrder[(i+1)%len(presetOrder)]
		}
	}
	return presetOrder[0]
}
