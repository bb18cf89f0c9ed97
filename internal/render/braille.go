package render

import (
	"strings"

	"github.com/olivier-w/orbweaver/internal/engine"
)

// Braille packs a 2x4 block of samples into each cell as Unicode Braille
// dots, so the engine sees a grid twice as wide and four times as tall as
// the terminal. Dots are dithered against an ordered threshold matrix and
// each cell is tinted by its mean intensity.
type Braille struct {
	*canvas
	palette *palette
}

const (
	brailleCols = 2
	brailleRows = 4
	brailleBase = 0x2800
)

// Dot positions (dx, dy) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [brailleCols][brailleRows]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// brailleThreshold is a 2x4 ordered-dither matrix scaled into (0, 1).
var brailleThreshold = [brailleCols][brailleRows]float64{
	{0.5 / 8, 6.5 / 8, 1.5 / 8, 7.5 / 8},
	{4.5 / 8, 2.5 / 8, 5.5 / 8, 3.5 / 8},
}

func (b *Braille) Name() string { return string(ModeBraille) }

func (b *Braille) GridSize() engine.Grid {
	g := b.canvas.GridSize()
	return engine.Grid{Cols: g.Cols * brailleCols, Rows: g.Rows * brailleRows}
}

func (b *Braille) FromCell(col, row int) (int, int) {
	return col*brailleCols + brailleCols/2, row*brailleRows + brailleRows/2
}

func (b *Braille) Render(intensityAt func(col, row int) float64) {
	b.paint(func(sb *strings.Builder, cols, rows int) {
		var color ansiState
		for row := range rows {
			if row > 0 {
				sb.WriteByte('\n')
			}
			for col := range cols {
				var pattern uint
				var sum float64
				for dx := range brailleCols {
					for dy := range brailleRows {
						v := clamp01(intensityAt(col*brailleCols+dx, row*brailleRows+dy))
						sum += v
						if v > brailleThreshold[dx][dy] {
							pattern |= 1 << brailleBits[dx][dy]
						}
					}
				}
				if pattern == 0 {
					color.reset(sb)
					sb.WriteByte(' ')
					continue
				}
				if b.palette.colored() {
					color.set(sb, b.palette.fg[b.palette.level(sum/(brailleCols*brailleRows))])
				}
				sb.WriteRune(rune(brailleBase + pattern))
			}
			color.reset(sb)
		}
	})
}
