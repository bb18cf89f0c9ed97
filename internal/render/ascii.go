package render

import "strings"

// ASCII draws each cell with a glyph from a density ramp, tinted with the
// brightest ramp color when the terminal supports color.
type ASCII struct {
	*canvas
	palette *palette
	glyphs  []rune
}

func (a *ASCII) Name() string { return string(ModeASCII) }

func (a *ASCII) Render(intensityAt func(col, row int) float64) {
	tint := a.palette.fg[paletteLevels-1]
	a.paint(func(sb *strings.Builder, cols, rows int) {
		var color ansiState
		for row := range rows {
			if row > 0 {
				sb.WriteByte('\n')
			}
			color.set(sb, tint)
			for col := range cols {
				sb.WriteRune(a.glyphs[glyphIndex(intensityAt(col, row), len(a.glyphs))])
			}
			color.reset(sb)
		}
	})
}
