package system

import "github.com/milk9111/rampage/ecs"

// NewTickScheduler returns the systems of a live tick in order. Movement for
// every entity completes before combat reads positions.
func NewTickScheduler() *ecs.Scheduler[*Context] {
	return ecs.NewScheduler[*Context](
		NewBodySyncSystem(),
		NewAvatarControlSystem(),
		NewSteeringSystem(),
		NewMovementSystem(),
		NewComboSystem(),
		NewCombatSystem(),
		NewProgressionSystem(),
		NewRampageSystem(),
		NewWantedSystem(),
		NewWhiteFlashSystem(),
		NewTTLSystem(),
		NewDespawnSystem(),
		NewDisposalSystem(),
	)
}

// NewGameOverScheduler keeps deferred cleanup running once the run has ended.
func NewGameOverScheduler() *ecs.Scheduler[*Context] {
	return ecs.NewScheduler[*Context](
		NewWhiteFlashSystem(),
		NewTTLSystem(),
		NewDisposalSystem(),
	)
}
