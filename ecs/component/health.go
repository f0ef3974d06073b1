package component

// Health is integer hit points. Dead is sticky: once set, no further damage
// or kill side effects apply, which makes repeated hits in one tick harmless.
type Health struct {
	Max     int
	Current int
	Dead    bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity can still take damage.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount. It reports whether damage landed and whether
// this call was the killing blow.
func (h *Health) ApplyDamage(amount int) (applied, killed bool) {
	if h == nil || h.Dead || amount <= 0 {
		return false, false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		return true, true
	}
	return true, false
}

// Kill forces death regardless of remaining health. It returns false when the
// entity was already dead.
func (h *Health) Kill() bool {
	if h == nil || h.Dead {
		return false
	}
	h.Current = 0
	h.Dead = true
	return true
}

// Reset revives with a new maximum.
func (h *Health) Reset(max int) {
	if h == nil {
		return
	}
	if max <= 0 {
		max = 1
	}
	h.Max = max
	h.Current = max
	h.Dead = false
}

// Ratio returns Current/Max in [0,1].
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

var HealthComponent = NewComponent[Health]()
