package ecs

// System updates simulation state once per tick. C is the per-tick context
// the owning simulation passes in.
type System[C any] interface {
	Update(ctx C)
}

// SystemFunc adapts a plain function to System.
type SystemFunc[C any] func(ctx C)

func (f SystemFunc[C]) Update(ctx C) { f(ctx) }

// Scheduler runs systems in insertion order.
type Scheduler[C any] struct {
	systems []System[C]
}

func NewScheduler[C any](systems ...System[C]) *Scheduler[C] {
	s := &Scheduler[C]{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler[C]) Add(system System[C]) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler[C]) Update(ctx C) {
	for _, system := range s.systems {
		system.Update(ctx)
	}
}

func (s *Scheduler[C]) Systems() []System[C] {
	systems := make([]System[C], 0, len(s.systems))
	return append(systems, s.systems...)
}
