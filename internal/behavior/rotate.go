package behavior

// Rotate spins the outline by advancing the rotation phase.
type Rotate struct {
	speed     float64
	direction float64
	phase     float64
}

// NewRotate returns a rotation at speed rad/s. Direction is reduced to its
// sign; zero counts as clockwise (+1).
func NewRotate(speed float64, direction int) *Rotate {
	r := &Rotate{speed: speed}
	r.SetDirection(direction)
	return r
}

func (r *Rotate) Kind() Kind { return KindRotate }

func (r *Rotate) Update(dt float64) {
	r.phase += r.speed * r.direction * dt
}

func (r *Rotate) Contribute(acc *Accumulator) {
	acc.Add(RotationPhase, r.phase)
}

func (r *Rotate) SetSpeed(speed float64) { r.speed = speed }

func (r *Rotate) SetDirection(direction int) {
	if direction < 0 {
		r.direction = -1
		return
	}
	r.direction = 1
}

// Reverse flips the direction without touching the phase.
func (r *Rotate) Reverse() { r.direction = -r.direction }

func (r *Rotate) Speed() float64 { return r.speed }
func (r *Rotate) Direction() int { return int(r.direction) }
func (r *Rotate) Phase() float64 { return r.phase }
