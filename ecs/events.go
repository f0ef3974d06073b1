package ecs

import "github.com/jakecoffman/cp"

// EventKind identifies an outbound gameplay notification.
type EventKind string

const (
	EventKill             EventKind = "kill"
	EventComboMilestone   EventKind = "combo_milestone"
	EventTierUnlock       EventKind = "tier_unlock"
	EventVehicleSpawned   EventKind = "vehicle_spawned"
	EventVehicleEntered   EventKind = "vehicle_entered"
	EventVehicleDestroyed EventKind = "vehicle_destroyed"
	EventRampageEnter     EventKind = "rampage_enter"
	EventRampageExit      EventKind = "rampage_exit"
	EventDamageTaken      EventKind = "damage_taken"
	EventGameOver         EventKind = "game_over"
)

// Event is a fire-and-forget notification for audio, camera and UI layers.
// Value carries the kind-specific number (combo count, tier index, damage).
type Event struct {
	Kind     EventKind
	Frame    uint64
	Entity   Entity
	Position cp.Vector
	Value    int
	Label    string
}

// EventQueue is a simple FIFO queue drained once per tick by the shell.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Peek returns a copy of the queued events without draining them.
func (q *EventQueue) Peek() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := make([]Event, len(q.items))
	copy(out, q.items)
	return out
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Clear drops all queued events.
func (q *EventQueue) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}
