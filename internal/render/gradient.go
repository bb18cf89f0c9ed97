package render

import "strings"

// Gradient paints each cell's background with the color ramp. Without
// color support it falls back to the glyph ramp.
type Gradient struct {
	*canvas
	palette *palette
	glyphs  []rune
}

func (g *Gradient) Name() string { return string(ModeGradient) }

func (g *Gradient) Render(intensityAt func(col, row int) float64) {
	g.paint(func(sb *strings.Builder, cols, rows int) {
		var color ansiState
		for row := range rows {
			if row > 0 {
				sb.WriteByte('\n')
			}
			for col := range cols {
				v := intensityAt(col, row)
				if !g.palette.colored() {
					sb.WriteRune(g.glyphs[glyphIndex(v, len(g.glyphs))])
					continue
				}
				color.set(sb, g.palette.bg[g.palette.level(v)])
				sb.WriteByte(' ')
			}
			color.reset(sb)
		}
	})
}
