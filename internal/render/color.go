package render

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var (
	profileOnce sync.Once
	profile     termenv.Profile
)

// currentColorProfile checks the terminal once. NO_COLOR and dumb
// terminals come back as termenv.Ascii.
func currentColorProfile() termenv.Profile {
	profileOnce.Do(func() {
		profile = termenv.EnvColorProfile()
	})
	return profile
}

// ParseRamp parses hex colors into an ordered ramp of at least two stops.
func ParseRamp(hexes []string) ([]colorful.Color, error) {
	if len(hexes) < 2 {
		return nil, fmt.Errorf("color ramp needs at least two colors, got %d", len(hexes))
	}
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color ramp entry %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// BlendRamp blends the ramp in Lab space at position t in [0, 1].
func BlendRamp(ramp []colorful.Color, t float64) colorful.Color {
	t = clamp01(t)
	pos := t * float64(len(ramp)-1)
	i := int(math.Floor(pos))
	if i >= len(ramp)-1 {
		return ramp[len(ramp)-1]
	}
	return ramp[i].BlendLab(ramp[i+1], pos-float64(i)).Clamped()
}

const paletteLevels = 256

// palette holds precomputed SGR sequences for quantized intensities.
type palette struct {
	profile termenv.Profile
	colors  [paletteLevels]colorful.Color
	fg      [paletteLevels]string
	bg      [paletteLevels]string
}

func newPalette(p termenv.Profile, ramp []colorful.Color) *palette {
	pal := &palette{profile: p}
	for i := range paletteLevels {
		c := BlendRamp(ramp, float64(i)/(paletteLevels-1))
		pal.colors[i] = c
		tc := p.Color(c.Hex())
		if tc == nil {
			continue
		}
		if seq := tc.Sequence(false); seq != "" {
			pal.fg[i] = termenv.CSI + seq + "m"
		}
		if seq := tc.Sequence(true); seq != "" {
			pal.bg[i] = termenv.CSI + seq + "m"
		}
	}
	return pal
}

func (p *palette) colored() bool { return p.profile != termenv.Ascii }

func (p *palette) level(v float64) int {
	return int(math.Round(clamp01(v) * (paletteLevels - 1)))
}

// Color returns the ramp color for an intensity.
func (p *palette) Color(v float64) colorful.Color {
	return p.colors[p.level(v)]
}

const ansiReset = termenv.CSI + termenv.ResetSeq + "m"

// ansiState skips sequences that would not change the current color.
type ansiState struct {
	current string
}

func (s *ansiState) set(sb *strings.Builder, seq string) {
	if seq == "" || seq == s.current {
		return
	}
	sb.WriteString(seq)
	s.current = seq
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.current == "" {
		return
	}
	sb.WriteString(ansiReset)
	s.current = ""
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// glyphIndex maps an intensity onto a glyph ramp of n entries.
func glyphIndex(v float64, n int) int {
	return int(math.Round(clamp01(v) * float64(n-1)))
}
