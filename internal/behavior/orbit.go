package behavior

import "math"

// Axis selects which offsets an Orbit drives.
type Axis string

const (
	AxisX    Axis = "x"
	AxisY    Axis = "y"
	AxisBoth Axis = "both"
)

// ParseAxis maps unknown values to AxisBoth.
func ParseAxis(s string) Axis {
	switch Axis(s) {
	case AxisX, AxisY:
		return Axis(s)
	default:
		return AxisBoth
	}
}

// Orbit carries the blob center around a circle (or along one axis of it).
type Orbit struct {
	radius float64
	speed  float64
	phase  float64
	axis   Axis
}

func NewOrbit(radius, angularSpeed, phase float64, axis Axis) *Orbit {
	return &Orbit{radius: radius, speed: angularSpeed, phase: phase, axis: ParseAxis(string(axis))}
}

func (o *Orbit) Kind() Kind { return KindOrbit }

func (o *Orbit) Update(dt float64) {
	o.phase += o.speed * dt
}

func (o *Orbit) Contribute(acc *Accumulator) {
	if o.axis != AxisY {
		acc.Add(XOffset, math.Cos(o.phase)*o.radius)
	}
	if o.axis != AxisX {
		acc.Add(YOffset, math.Sin(o.phase)*o.radius)
	}
}

func (o *Orbit) SetRadius(radius float64)      { o.radius = radius }
func (o *Orbit) SetAngularSpeed(speed float64) { o.speed = speed }
func (o *Orbit) SetAxis(axis Axis)             { o.axis = ParseAxis(string(axis)) }

func (o *Orbit) Radius() float64       { return o.radius }
func (o *Orbit) AngularSpeed() float64 { return o.speed }
func (o *Orbit) Phase() float64        { return o.phase }
func (o *Orbit) Axis() Axis            { return o.axis }
