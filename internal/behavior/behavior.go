// Package behavior holds the composable motion units that shape a blob over
// time. Each behavior integrates its own private state in Update and adds
// its current value into a shared Accumulator in Contribute.
//
// Contribute adds the behavior's current value every time it is called, so
// calling it twice in one frame double-counts. Callers contribute exactly once
// per frame per behavior.
package behavior

import "math"

// Kind tags a behavior variant. A Set holds at most one behavior per kind.
type Kind string

const (
	KindRotate    Kind = "rotate"
	KindBob       Kind = "bob"
	KindOrbit     Kind = "orbit"
	KindCrosshair Kind = "crosshair"
)

// Behavior is a self-contained motion generator.
type Behavior interface {
	Kind() Kind
	Update(dt float64)
	Contribute(acc *Accumulator)
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
