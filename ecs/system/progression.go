package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/ecs/entity"
	"github.com/milk9111/rampage/physics"
)

// CheckTierProgression returns the tier that score newly reaches, if any.
// Each threshold fires once; when one call crosses several, the highest is
// returned and the ones below it are consumed with it.
func CheckTierProgression(ctx *Context, score int) (int, bool) {
	best := ctx.Progression.Offered
	for i := best + 1; i < len(ctx.Tiers); i++ {
		if score >= ctx.Tiers[i].Threshold {
			best = i
		}
	}
	if best == ctx.Progression.Offered {
		return 0, false
	}
	ctx.Progression.Offered = best
	return best, true
}

// FindSafePosition tries a ring of candidates around near and returns the
// first one a circle of radius can reach in a straight line without crossing
// a building, that stands on ground and that is not already occupied. When
// every candidate fails it falls back to near.
func FindSafePosition(space *physics.Space, near cp.Vector, radius, ring float64, count int) (cp.Vector, bool) {
	if space == nil || count <= 0 || ring <= 0 {
		return near, false
	}
	for i := 0; i < count; i++ {
		candidate := near.Add(cp.ForAngle(2 * math.Pi * float64(i) / float64(count)).Mult(ring))
		if !space.PathClear(near, candidate, radius, physics.CategoryBuilding) {
			continue
		}
		if !space.ProbeGround(candidate) {
			continue
		}
		if space.Overlaps(candidate, radius, physics.CategoryBuilding|physics.CategoryVehicle) {
			continue
		}
		return candidate, true
	}
	return near, false
}

// SpawnAwaitingVehicle places a vehicle for tier near a point. An older
// awaiting vehicle is handed to the disposal queue first, so there is never
// more than one.
func SpawnAwaitingVehicle(ctx *Context, tier int, near cp.Vector) ecs.Entity {
	if tier <= 0 || tier >= len(ctx.Tiers) {
		return ecs.Null
	}
	prog := ctx.Tuning.Progression
	if ecs.IsAlive(ctx.World, ctx.Progression.Awaiting) {
		dispose(ctx, ctx.Progression.Awaiting)
		ctx.Progression.Awaiting = ecs.Null
	}

	pos, ok := FindSafePosition(ctx.Space, near, prog.VehicleRadius, prog.PlacementRadius, prog.PlacementCount)
	if !ok {
		ctx.Log.Debug().Int("tier", tier).Msg("no free spot for vehicle, using fallback")
	}
	spec := ctx.Tiers[tier]
	e, err := entity.NewVehicle(ctx.World, tier, spec, pos, prog.VehicleRadius)
	if err != nil {
		ctx.Log.Error().Err(err).Int("tier", tier).Msg("spawn vehicle")
		return ecs.Null
	}
	ctx.Progression.Awaiting = e
	ctx.Emit(ecs.Event{Kind: ecs.EventVehicleSpawned, Entity: e, Position: pos, Value: tier, Label: spec.Name})
	ctx.Log.Info().Str("tier", spec.Name).Float64("x", pos.X).Float64("y", pos.Y).Bool("fallback", !ok).Msg("vehicle waiting")
	return e
}

// SwitchToAwaitingVehicle retires the active vehicle to the disposal queue,
// activates the awaiting one and puts the avatar in it.
func SwitchToAwaitingVehicle(ctx *Context) bool {
	w := ctx.World
	next := ctx.Progression.Awaiting
	veh, ok := ecs.Get(w, next, component.VehicleComponent.Kind())
	if !ok || veh.State != component.VehicleAwaiting {
		return false
	}
	if ecs.IsAlive(w, ctx.Progression.Active) {
		dispose(ctx, ctx.Progression.Active)
	}

	veh.State = component.VehicleActive
	veh.GlowPhase = 0
	ctx.Progression.Active = next
	ctx.Progression.Awaiting = ecs.Null
	ctx.Progression.RespawnIn = 0

	if err := ecs.Add(w, ctx.Avatar, component.RidingComponent.Kind(), &component.Riding{}); err != nil {
		ctx.Log.Warn().Err(err).Msg("mount vehicle")
	}
	if av, ok := ecs.Get(w, ctx.Avatar, component.VelocityComponent.Kind()); ok {
		av.Linear = cp.Vector{}
	}
	pos, _ := ctx.PositionOf(next)
	ctx.Emit(ecs.Event{Kind: ecs.EventVehicleEntered, Entity: next, Position: pos, Value: veh.Tier, Label: ctx.Tiers[veh.Tier].Name})
	ctx.Log.Info().Str("tier", ctx.Tiers[veh.Tier].Name).Msg("vehicle entered")
	return true
}

// dispose hands a vehicle to the disposal queue. It stays in the world, inert,
// until its countdown ends.
func dispose(ctx *Context, e ecs.Entity) {
	w := ctx.World
	if veh, ok := ecs.Get(w, e, component.VehicleComponent.Kind()); ok {
		veh.State = component.VehicleDisposing
	}
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.Linear = cp.Vector{}
	}
	frames := ctx.Tuning.Progression.DisposalFrames
	if frames < 1 {
		frames = 1
	}
	ctx.Disposal.Push(e, frames)
}

// destroyActiveVehicle ejects the avatar from a vehicle at zero health.
func destroyActiveVehicle(ctx *Context) {
	w := ctx.World
	vehicle := ctx.Progression.Active
	vpos, _ := ctx.PositionOf(vehicle)
	tier := 0
	if veh, ok := ecs.Get(w, vehicle, component.VehicleComponent.Kind()); ok {
		tier = veh.Tier
	}

	dispose(ctx, vehicle)
	ctx.Progression.Active = ecs.Null
	ecs.Remove(w, ctx.Avatar, component.RidingComponent.Kind())

	prog := ctx.Tuning.Progression
	exit, ok := FindSafePosition(ctx.Space, vpos, ctx.radiusOf(ctx.Avatar), prog.PlacementRadius, prog.PlacementCount)
	if tr, found := ecs.Get(w, ctx.Avatar, component.TransformComponent.Kind()); found {
		tr.Position = exit
		ctx.teleports = append(ctx.teleports, ctx.Avatar)
	}
	if h, found := ecs.Get(w, ctx.Avatar, component.HealthComponent.Kind()); found {
		h.Reset(ctx.onFootMaxHealth(h.Max))
	}
	ctx.Progression.RespawnIn = prog.RespawnDelayFrames

	ctx.Emit(ecs.Event{Kind: ecs.EventVehicleDestroyed, Entity: vehicle, Position: vpos, Value: tier})
	ctx.Log.Info().Int("tier", tier).Bool("safe_exit", ok).Msg("vehicle destroyed")
}

func (ctx *Context) onFootMaxHealth(fallback int) int {
	if len(ctx.Tiers) > 0 && ctx.Tiers[0].MaxHealth > 0 {
		return ctx.Tiers[0].MaxHealth
	}
	return fallback
}

// ProgressionSystem polls the score for tier unlocks, handles entering the
// awaiting vehicle and re-offers a vehicle after one is destroyed.
type ProgressionSystem struct{}

func NewProgressionSystem() *ProgressionSystem {
	return &ProgressionSystem{}
}

func (s *ProgressionSystem) Update(ctx *Context) {
	if ctx == nil || ctx.World == nil || ctx.Tuning == nil || !ctx.AvatarAlive() {
		return
	}
	w := ctx.World
	apos, _ := ctx.PositionOf(ctx.Avatar)

	if tier, ok := CheckTierProgression(ctx, ctx.Combo.Score); ok {
		ctx.Emit(ecs.Event{Kind: ecs.EventTierUnlock, Entity: ctx.Avatar, Position: apos, Value: tier, Label: ctx.Tiers[tier].Name})
		ctx.Log.Info().Str("tier", ctx.Tiers[tier].Name).Int("score", ctx.Combo.Score).Msg("tier unlocked")
		SpawnAwaitingVehicle(ctx, tier, apos)
	}

	if ctx.Progression.RespawnIn > 0 {
		ctx.Progression.RespawnIn--
		if ctx.Progression.RespawnIn == 0 && !ecs.IsAlive(w, ctx.Progression.Awaiting) && !ecs.IsAlive(w, ctx.Progression.Active) {
			SpawnAwaitingVehicle(ctx, ctx.Progression.Offered, apos)
		}
	}

	if veh, ok := ecs.Get(w, ctx.Progression.Awaiting, component.VehicleComponent.Kind()); ok {
		veh.GlowPhase = math.Mod(veh.GlowPhase+ctx.Dt*2*math.Pi, 2*math.Pi)
		if ctx.Input.Enter {
			vpos, _ := ctx.PositionOf(ctx.Progression.Awaiting)
			if vpos.Sub(apos).Length() <= ctx.Tuning.Progression.EnterRadius {
				SwitchToAwaitingVehicle(ctx)
			}
		}
	}
}
