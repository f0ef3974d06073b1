package system

// comboEpsilon absorbs float drift so a timer that should read zero exactly
// on a tick boundary resets on that tick.
const comboEpsilon = 1e-6

// ComboSystem decays the combo window on the wall clock. It runs before
// combat, so a kill in the same tick starts a fresh window.
type ComboSystem struct{}

func NewComboSystem() *ComboSystem {
	return &ComboSystem{}
}

func (s *ComboSystem) Update(ctx *Context) {
	if ctx == nil {
		return
	}
	DecayCombo(&ctx.Combo, ctx.Dt)
}

// DecayCombo advances the timer by dt seconds and clears the count when the
// window runs out. Score is never touched.
func DecayCombo(c *ComboState, dt float64) {
	if c.Count == 0 {
		c.Timer = 0
		return
	}
	c.Timer -= dt
	if c.Timer <= comboEpsilon {
		c.Timer = 0
		c.Count = 0
	}
}
