package system

func (s *WantedState) add(amount, max float64) {
	s.Level += amount
	if max > 0 && s.Level > max {
		s.Level = max
	}
}

// Stars is the whole-star wanted rating shown on the HUD.
func (s WantedState) Stars() int {
	return int(s.Level)
}

// WantedSystem cools the wanted level down over time.
type WantedSystem struct{}

func NewWantedSystem() *WantedSystem {
	return &WantedSystem{}
}

func (s *WantedSystem) Update(ctx *Context) {
	if ctx == nil || ctx.Tuning == nil {
		return
	}
	ctx.Wanted.Level -= ctx.Tuning.Wanted.DecayPerSecond * ctx.Dt
	if ctx.Wanted.Level < 0 {
		ctx.Wanted.Level = 0
	}
}
