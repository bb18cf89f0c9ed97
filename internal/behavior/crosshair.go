package behavior

// Crosshair gates and scales cursor-driven deformation. The deformation
// itself is computed by the engine; this only contributes its strength.
type Crosshair struct {
	strength float64
}

// NewCrosshair clamps strength to [0, 1].
func NewCrosshair(strength float64) *Crosshair {
	c := &Crosshair{}
	c.SetStrength(strength)
	return c
}

func (c *Crosshair) Kind() Kind { return KindCrosshair }

func (c *Crosshair) Update(float64) {}

func (c *Crosshair) Contribute(acc *Accumulator) {
	acc.Add(CursorInfluence, c.strength)
}

func (c *Crosshair) SetStrength(strength float64) { c.strength = clamp01(strength) }

func (c *Crosshair) Strength() float64 { return c.strength }
