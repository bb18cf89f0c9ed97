package engine

import "math"

// Spring constants for the impulse integrator. The damping ratio
// c/(2*sqrt(k)) is just above 1, so a kick rises and settles within about a
// second without ringing.
const (
	springStiffness = 20.0
	springDamping   = 9.0
	restThreshold   = 1e-4
)

// Vec2 is a 2D vector in normalized units.
type Vec2 struct {
	X float64
	Y float64
}

// Impulse is a spring-damper pulling the blob center back to the origin.
type Impulse struct {
	Offset   Vec2
	Velocity Vec2
}

// Kick adds force to the current velocity. Existing motion is kept.
func (i *Impulse) Kick(force Vec2) {
	i.Velocity.X += force.X
	i.Velocity.Y += force.Y
}

// Step integrates dt seconds with semi-implicit Euler.
func (i *Impulse) Step(dt float64) {
	i.Offset.X, i.Velocity.X = stepAxis(i.Offset.X, i.Velocity.X, dt)
	i.Offset.Y, i.Velocity.Y = stepAxis(i.Offset.Y, i.Velocity.Y, dt)
}

// AtRest reports whether both axes have snapped to zero.
func (i Impulse) AtRest() bool {
	return i.Offset == Vec2{} && i.Velocity == Vec2{}
}

func stepAxis(x, v, dt float64) (float64, float64) {
	a := -springStiffness*x - springDamping*v
	v += a * dt
	x += v * dt
	if math.Abs(x) < restThreshold && math.Abs(v) < restThreshold {
		return 0, 0
	}
	return x, v
}
