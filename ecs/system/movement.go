package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/physics"
)

// blockedTolerance is how much of a projectile's move may be eaten before it
// counts as having hit something.
const blockedTolerance = 1e-4

// ResolveMovement moves e by desired against the obstacles in its collision
// mask, commits the corrected position and returns it. An entity without a
// body yet stays put this tick.
func ResolveMovement(ctx *Context, e ecs.Entity, desired cp.Vector) cp.Vector {
	w := ctx.World
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Shape == nil || ctx.Space == nil {
		return tr.Position
	}
	mask := physics.LayerFor(ctx.KindOf(e)).Mask
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		mask = layer.Mask
	}
	corrected := ctx.Space.ResolveCharacterMovement(pb.Shape, desired, mask)
	tr.Position = tr.Position.Add(corrected)
	ctx.Space.Commit(pb.Shape, tr.Position)
	return tr.Position
}

// MovementSystem integrates every mobile entity's velocity through the
// movement resolver with its population's time scale.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(ctx *Context) {
	if ctx == nil || ctx.World == nil {
		return
	}
	w := ctx.World
	s.applyTeleports(ctx)
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), component.KindTagComponent.Kind(), func(e ecs.Entity, tr *component.Transform, vel *component.Velocity, tag *component.KindTag) {
		if ecs.Has(w, e, component.RidingComponent.Kind()) {
			return
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			vel.Linear = cp.Vector{}
			return
		}
		if vel.Linear.Length() == 0 {
			return
		}
		desired := vel.Linear.Mult(ctx.ScaledDt(tag.Kind))
		before := tr.Position
		after := ResolveMovement(ctx, e, desired)

		switch tag.Kind {
		case component.KindProjectile:
			if proj, ok := ecs.Get(w, e, component.ProjectileComponent.Kind()); ok && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
				if after.Sub(before).Length() < desired.Length()-blockedTolerance {
					proj.Blocked = true
				}
			}
		case component.KindVehicle:
			// hitting a wall kills momentum along it
			moved := after.Sub(before)
			if dt := ctx.ScaledDt(tag.Kind); dt > 0 {
				vel.Linear = moved.Mult(1 / dt)
			}
		}
	})

	s.carryRider(ctx)
}

// applyTeleports moves bodies to transforms that were set outside movement,
// such as a dismount after a wreck.
func (s *MovementSystem) applyTeleports(ctx *Context) {
	for _, e := range ctx.teleports {
		tr, ok := ecs.Get(ctx.World, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if pb, ok := ecs.Get(ctx.World, e, component.PhysicsBodyComponent.Kind()); ok && ctx.Space != nil {
			ctx.Space.Commit(pb.Shape, tr.Position)
		}
	}
	ctx.teleports = ctx.teleports[:0]
}

// carryRider snaps a riding avatar onto its vehicle.
func (s *MovementSystem) carryRider(ctx *Context) {
	if !ctx.Riding() {
		return
	}
	pos, ok := ctx.PositionOf(ctx.Progression.Active)
	if !ok {
		return
	}
	w := ctx.World
	tr, ok := ecs.Get(w, ctx.Avatar, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tr.Position = pos
	if vtr, ok := ecs.Get(w, ctx.Progression.Active, component.TransformComponent.Kind()); ok {
		tr.Heading = vtr.Heading
	}
	if pb, ok := ecs.Get(w, ctx.Avatar, component.PhysicsBodyComponent.Kind()); ok {
		ctx.Space.Commit(pb.Shape, pos)
	}
}
