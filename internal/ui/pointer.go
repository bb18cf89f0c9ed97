package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const pointerFPS = 60

// pointer eases the crosshair toward the mouse so the dent in the blob
// glides instead of jumping from cell to cell.
type pointer struct {
	spring harmonica.Spring
	x, y   float64
	vx, vy float64
	tx, ty float64
	active bool
}

func newPointer() pointer {
	return pointer{spring: harmonica.NewSpring(harmonica.FPS(pointerFPS), 9.0, 0.9)}
}

// aim sets the target cell. The first aim after a release jumps straight
// there.
func (p *pointer) aim(col, row int) {
	p.tx, p.ty = float64(col), float64(row)
	if !p.active {
		p.x, p.y = p.tx, p.ty
		p.vx, p.vy = 0, 0
	}
	p.active = true
}

func (p *pointer) release() {
	p.active = false
}

func (p *pointer) step() (col, row int) {
	p.x, p.vx = p.spring.Update(p.x, p.vx, p.tx)
	p.y, p.vy = p.spring.Update(p.y, p.vy, p.ty)
	return int(math.Round(p.x)), int(math.Round(p.y))
}
