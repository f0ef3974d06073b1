package system

import (
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
)

// Input is one tick of player intent. Device handling lives in the shell.
type Input struct {
	Up, Down, Left, Right bool
	Attack                bool
	Fire                  bool
	Enter                 bool
}

// ComboState tracks the kill chain. Timer runs on the wall clock.
type ComboState struct {
	Count int
	Timer float64
	Score int
}

// RampageState is the time-dilation mode. Armed is cleared on entry and set
// again only once the combo has dropped back to zero.
type RampageState struct {
	Active    bool
	Armed     bool
	Kills     int
	Elapsed   float64
	Entries   int
	Formation FormationState
}

// FormationState is cosmetic: a rotating ring of slots around the avatar.
type FormationState struct {
	Phase float64
	Slots int
}

// ProgressionState tracks vehicle tiers. Offered only ever increases.
type ProgressionState struct {
	Offered   int
	Active    ecs.Entity
	Awaiting  ecs.Entity
	RespawnIn int
}

// WantedState is the police heat level.
type WantedState struct {
	Level float64
}

// TimeScales are the per-population multipliers published by the rampage
// machine and applied by consumers on the following tick.
type TimeScales struct {
	Avatar float64
	Crowd  float64
}

func DefaultTimeScales() TimeScales {
	return TimeScales{Avatar: 1, Crowd: 1}
}

func (s TimeScales) For(p component.Population) float64 {
	if p == component.PopulationCrowd {
		return s.Crowd
	}
	return s.Avatar
}

// DisposalEntry is a replaced or destroyed vehicle counting down to removal.
type DisposalEntry struct {
	Entity ecs.Entity
	Frames int
}

type DisposalQueue struct {
	entries []DisposalEntry
}

// Push queues e unless it is already queued.
func (q *DisposalQueue) Push(e ecs.Entity, frames int) bool {
	for _, entry := range q.entries {
		if entry.Entity == e {
			return false
		}
	}
	q.entries = append(q.entries, DisposalEntry{Entity: e, Frames: frames})
	return true
}

// Step counts every entry down by one tick and returns those that expired.
// Expired entries leave the queue in the same call.
func (q *DisposalQueue) Step() []ecs.Entity {
	var expired []ecs.Entity
	kept := q.entries[:0]
	for _, entry := range q.entries {
		entry.Frames--
		if entry.Frames <= 0 {
			expired = append(expired, entry.Entity)
			continue
		}
		kept = append(kept, entry)
	}
	q.entries = kept
	return expired
}

func (q *DisposalQueue) Len() int {
	return len(q.entries)
}
