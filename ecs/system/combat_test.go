package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKillScore(t *testing.T) {
	tests := []struct {
		name  string
		base  int
		count int
		want  int
	}{
		{name: "first kill", base: 10, count: 1, want: 11},
		{name: "tenth kill", base: 50, count: 10, want: 100},
		{name: "capped", base: 10, count: 80, want: 60},
		{name: "no base", base: 0, count: 5, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, killScore(tt.base, tt.count, 50, 0.1))
		})
	}
}

func TestContactKillIsIdempotent(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	ped := spawnPedestrian(t, ctx, cp.Vector{X: 1})

	require.True(t, ContactKill(ctx, ped))
	assert.False(t, ContactKill(ctx, ped))
	assert.Zero(t, DamageInRadius(ctx, cp.Vector{X: 1}, 5, 10).KillCount)

	assert.Equal(t, 1, ctx.Combo.Count)
	assert.Equal(t, 11, ctx.Combo.Score)
	assert.Equal(t, 1, countEvents(ctx, ecs.EventKill))

	ttl, ok := ecs.Get(ctx.World, ped, component.TTLComponent.Kind())
	require.True(t, ok, "death clip keeps the corpse around")
	assert.Equal(t, ctx.framesFor(1.2), ttl.Frames)
}

func TestContactKillIgnoresNonTargets(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	assert.False(t, ContactKill(ctx, ctx.Avatar))
	assert.False(t, ContactKill(ctx, ecs.Null))
	assert.Zero(t, ctx.Combo.Count)
}

func TestDamageInRadius(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{X: -20})
	ped := spawnPedestrian(t, ctx, cp.Vector{X: 1})
	far := spawnPedestrian(t, ctx, cp.Vector{X: 10})
	hostile := spawnHostile(t, ctx, cp.Vector{Y: 1})

	report := DamageInRadius(ctx, cp.Vector{}, 2, 2)
	assert.Equal(t, 1, report.KillCount)
	assert.Equal(t, []cp.Vector{{X: 1}}, report.KillPositions)

	h, _ := ecs.Get(ctx.World, hostile, component.HealthComponent.Kind())
	assert.Equal(t, 1, h.Current)
	assert.True(t, ecs.Has(ctx.World, hostile, component.WhiteFlashComponent.Kind()))

	farHealth, _ := ecs.Get(ctx.World, far, component.HealthComponent.Kind())
	assert.True(t, farHealth.IsAlive())

	report = DamageInRadius(ctx, cp.Vector{}, 2, 2)
	assert.Equal(t, 1, report.KillCount, "pedestrian already dead, hostile finished off")
	assert.False(t, h.IsAlive())

	pedHealth, _ := ecs.Get(ctx.World, ped, component.HealthComponent.Kind())
	assert.True(t, pedHealth.Dead)
	assert.Equal(t, 2, ctx.Combo.Count)
}

func TestScoreMonotonicUnderKills(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{X: -50})
	last := 0
	for i := 0; i < 30; i++ {
		var e ecs.Entity
		if i%3 == 0 {
			e = spawnHostile(t, ctx, cp.Vector{X: float64(i)})
		} else {
			e = spawnPedestrian(t, ctx, cp.Vector{X: float64(i)})
		}
		ContactKill(ctx, e)
		DecayCombo(&ctx.Combo, 0.5)
		assert.GreaterOrEqual(t, ctx.Combo.Score, last)
		last = ctx.Combo.Score
	}
	assert.Positive(t, last)
}

func TestWantedRisesWithKills(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{X: -50})
	for i := 0; i < 3; i++ {
		ContactKill(ctx, spawnPedestrian(t, ctx, cp.Vector{X: float64(i)}))
	}
	ContactKill(ctx, spawnHostile(t, ctx, cp.Vector{Y: 5}))
	assert.InDelta(t, 0.55, ctx.Wanted.Level, 1e-9)

	ctx.Dt = 10
	NewWantedSystem().Update(ctx)
	assert.InDelta(t, 0.35, ctx.Wanted.Level, 1e-9)
}

func TestDamageAvatarOnFootEndsRun(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	DamageAvatar(ctx, 40)
	assert.False(t, ctx.GameOver)
	assert.Equal(t, 1, countEvents(ctx, ecs.EventDamageTaken))

	DamageAvatar(ctx, 1000)
	assert.True(t, ctx.GameOver)
	assert.Equal(t, 1, countEvents(ctx, ecs.EventGameOver))

	DamageAvatar(ctx, 10)
	assert.Equal(t, 2, countEvents(ctx, ecs.EventDamageTaken), "no damage after game over")
}

func TestHostileAttackCooldownUsesScaledTime(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	spawnHostile(t, ctx, cp.Vector{X: 1})
	ctx.Dt = 0.1
	ctx.Scales = TimeScales{Avatar: 1, Crowd: 0.5}

	combat := NewCombatSystem()
	combat.Update(ctx)
	h, _ := ecs.Get(ctx.World, ctx.Avatar, component.HealthComponent.Kind())
	require.Equal(t, 95, h.Current)

	for i := 0; i < 15; i++ {
		combat.Update(ctx)
	}
	assert.Equal(t, 95, h.Current, "1s cooldown at half speed needs 2s of wall time")

	for i := 0; i < 10; i++ {
		combat.Update(ctx)
	}
	assert.Equal(t, 90, h.Current)
}

func TestMeleeUsesRadiusDamage(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	ped := spawnPedestrian(t, ctx, cp.Vector{X: 1})
	ctx.Input.Attack = true

	NewAvatarControlSystem().Update(ctx)
	NewCombatSystem().Update(ctx)

	h, _ := ecs.Get(ctx.World, ped, component.HealthComponent.Kind())
	assert.True(t, h.Dead)
	assert.Equal(t, 1, ctx.Combo.Count)
}

func TestProjectileDetonatesOnBuilding(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	ctx.Space.AddBuilding(cp.BB{L: 3, B: -5, R: 5, T: 5})
	ped := spawnPedestrian(t, ctx, cp.Vector{X: 2, Y: 1.5})
	ctx.Input.Fire = true

	NewAvatarControlSystem().Update(ctx)
	ctx.Input.Fire = false
	require.Equal(t, 1, ecs.Count(ctx.World, component.ProjectileComponent.Kind()))

	sched := ecs.NewScheduler[*Context](NewBodySyncSystem(), NewMovementSystem(), NewCombatSystem())
	for i := 0; i < 30 && ecs.Count(ctx.World, component.ProjectileComponent.Kind()) > 0; i++ {
		sched.Update(ctx)
	}
	assert.Zero(t, ecs.Count(ctx.World, component.ProjectileComponent.Kind()))
	h, _ := ecs.Get(ctx.World, ped, component.HealthComponent.Kind())
	assert.True(t, h.Dead, "blast catches the pedestrian by the wall")
}

func TestRunOverKillsPedestrians(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	vehicle := SpawnAwaitingVehicle(ctx, 1, cp.Vector{})
	require.True(t, SwitchToAwaitingVehicle(ctx))
	vpos, _ := ctx.PositionOf(vehicle)
	ped := spawnPedestrian(t, ctx, vpos.Add(cp.Vector{X: 1}))

	vel, _ := ecs.Get(ctx.World, vehicle, component.VelocityComponent.Kind())
	vel.Linear = cp.Vector{X: 10}
	NewCombatSystem().Update(ctx)

	h, _ := ecs.Get(ctx.World, ped, component.HealthComponent.Kind())
	assert.True(t, h.Dead)

	slow := spawnPedestrian(t, ctx, vpos.Add(cp.Vector{Y: 1}))
	vel.Linear = cp.Vector{X: 1}
	NewCombatSystem().Update(ctx)
	h, _ = ecs.Get(ctx.World, slow, component.HealthComponent.Kind())
	assert.True(t, h.IsAlive(), "too slow to run anyone over")
}

func TestRunOverWoundsHostiles(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	vehicle := SpawnAwaitingVehicle(ctx, 1, cp.Vector{})
	require.True(t, SwitchToAwaitingVehicle(ctx))
	vpos, _ := ctx.PositionOf(vehicle)
	hostile := spawnHostile(t, ctx, vpos.Add(cp.Vector{X: 1}))

	vel, _ := ecs.Get(ctx.World, vehicle, component.VelocityComponent.Kind())
	vel.Linear = cp.Vector{X: 10}
	combat := NewCombatSystem()

	combat.runOver(ctx)
	h, _ := ecs.Get(ctx.World, hostile, component.HealthComponent.Kind())
	assert.Equal(t, 1, h.Current, "hostiles keep their hit points under a run-over")
	assert.True(t, ecs.Has(ctx.World, hostile, component.WhiteFlashComponent.Kind()))
	assert.Zero(t, ctx.Combo.Count)

	combat.runOver(ctx)
	assert.True(t, h.Dead)
	assert.Equal(t, 1, ctx.Combo.Count)
}

func TestRunOverStopsWhenVehicleIsWrecked(t *testing.T) {
	ctx := newTestContext(t, cp.Vector{})
	ctx.Tuning.Progression.RunOverDamage = 10
	ctx.Tuning.Progression.ContactDamage = 5
	vehicle := SpawnAwaitingVehicle(ctx, 1, cp.Vector{})
	require.True(t, SwitchToAwaitingVehicle(ctx))
	vpos, _ := ctx.PositionOf(vehicle)
	first := spawnHostile(t, ctx, vpos.Add(cp.Vector{X: 1}))
	second := spawnHostile(t, ctx, vpos.Add(cp.Vector{Y: 1}))

	vh, _ := ecs.Get(ctx.World, vehicle, component.HealthComponent.Kind())
	vh.Current = 1
	vel, _ := ecs.Get(ctx.World, vehicle, component.VelocityComponent.Kind())
	vel.Linear = cp.Vector{X: 10}

	NewCombatSystem().runOver(ctx)

	assert.False(t, ctx.Riding())
	assert.Equal(t, 1, countEvents(ctx, ecs.EventVehicleDestroyed))
	assert.Equal(t, 1, ctx.Combo.Count, "no kills after the wreck")
	h1, _ := ecs.Get(ctx.World, first, component.HealthComponent.Kind())
	h2, _ := ecs.Get(ctx.World, second, component.HealthComponent.Kind())
	assert.NotEqual(t, h1.Dead, h2.Dead)
}
