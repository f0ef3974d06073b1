package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/physics"
	"github.com/milk9111/rampage/prefabs"
	"github.com/stretchr/testify/require"
)

const testDt = 1.0 / 60

func testTuning() *prefabs.TuningSpec {
	return &prefabs.TuningSpec{
		Combo: prefabs.ComboSpec{WindowSeconds: 3, MultiplierStep: 0.1, MultiplierCap: 50, MilestoneEvery: 5},
		Rampage: prefabs.RampageSpec{
			Threshold:       10,
			KillCap:         5,
			DurationSeconds: 2,
			HitStopFrames:   3,
			CrowdTimeScale:  0.3,
			FormationSlots:  8,
			FormationSpeed:  1,
		},
		Wanted: prefabs.WantedSpec{Max: 5, PerPedestrian: 0.1, PerHostile: 0.25, DecayPerSecond: 0.02},
		Progression: prefabs.ProgressionSpec{
			EnterRadius:        3,
			DisposalFrames:     4,
			RespawnDelayFrames: 5,
			PlacementRadius:    5,
			PlacementCount:     8,
			RunOverSpeed:       3,
			VehicleRadius:      1.2,
			RunOverDamage:      2,
		},
		World:   prefabs.WorldSpec{Epsilon: 0.05, MaxDt: 0.05, FlashFrames: 2},
		Markers: prefabs.MarkerSpec{Max: 4, Radius: 40},
	}
}

func testTiers() []prefabs.TierSpec {
	return []prefabs.TierSpec{
		{Name: "foot", Threshold: 0, MaxHealth: 100},
		{Name: "bike", Threshold: 500, MaxHealth: 120, MaxSpeed: 12, Accel: 30},
		{Name: "moto", Threshold: 1500, MaxHealth: 160, MaxSpeed: 18, Accel: 40},
		{Name: "sedan", Threshold: 4000, MaxHealth: 260, MaxSpeed: 16, Accel: 28},
		{Name: "truck", Threshold: 10000, MaxHealth: 450, MaxSpeed: 14, Accel: 20},
	}
}

// newTestContext builds a context over an empty, flat world with the avatar
// at avatarPos.
func newTestContext(t *testing.T, avatarPos cp.Vector) *Context {
	t.Helper()
	ctx := NewContext(ecs.NewWorld(), physics.NewSpace(), testTuning(), testTiers())
	ctx.Dt = testDt
	avatar, err := ctx.Builder.NewAvatar(ctx.World, avatarPos)
	require.NoError(t, err)
	ctx.Avatar = avatar
	return ctx
}

func spawnPedestrian(t *testing.T, ctx *Context, pos cp.Vector) ecs.Entity {
	t.Helper()
	e, err := ctx.Builder.NewPedestrian(ctx.World, pos)
	require.NoError(t, err)
	NewBodySyncSystem().Update(ctx)
	return e
}

func spawnHostile(t *testing.T, ctx *Context, pos cp.Vector) ecs.Entity {
	t.Helper()
	e, err := ctx.Builder.NewHostile(ctx.World, pos)
	require.NoError(t, err)
	NewBodySyncSystem().Update(ctx)
	return e
}

func countEvents(ctx *Context, kind ecs.EventKind) int {
	n := 0
	for _, evt := range ctx.Events.Peek() {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}
