package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
)

// vehicleDrag is the fraction of speed a vehicle keeps per second with no
// throttle.
const vehicleDrag = 0.15

// AvatarControlSystem turns input into the avatar's (or its vehicle's)
// velocity, fires projectiles and queues melee for the combat pass.
type AvatarControlSystem struct{}

func NewAvatarControlSystem() *AvatarControlSystem {
	return &AvatarControlSystem{}
}

func (in Input) direction() cp.Vector {
	var d cp.Vector
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	if in.Down {
		d.Y--
	}
	if in.Up {
		d.Y++
	}
	if d.Length() == 0 {
		return d
	}
	return d.Normalize()
}

func (s *AvatarControlSystem) Update(ctx *Context) {
	if ctx == nil || !ctx.AvatarAlive() {
		return
	}
	w := ctx.World
	av, ok := ecs.Get(w, ctx.Avatar, component.AvatarComponent.Kind())
	if !ok {
		return
	}
	if av.AttackTimer > 0 {
		av.AttackTimer--
	}
	if av.FireTimer > 0 {
		av.FireTimer--
	}

	dir := ctx.Input.direction()
	if ctx.Riding() {
		s.drive(ctx, dir)
		return
	}

	vel, ok := ecs.Get(w, ctx.Avatar, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	vel.Linear = dir.Mult(av.WalkSpeed)

	tr, ok := ecs.Get(w, ctx.Avatar, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if dir.Length() > 0 {
		tr.Heading = dir.ToAngle()
	}

	if ctx.Input.Attack && av.AttackTimer == 0 {
		av.AttackTimer = av.AttackCooldown
		ctx.meleeRequested = true
	}
	if ctx.Input.Fire && av.FireTimer == 0 && ctx.Builder != nil {
		av.FireTimer = av.FireCooldown
		aim := cp.ForAngle(tr.Heading)
		origin := tr.Position.Add(aim.Mult(ctx.radiusOf(ctx.Avatar) + 0.3))
		if _, err := ctx.Builder.NewProjectile(w, origin, aim); err != nil {
			ctx.Log.Warn().Err(err).Msg("fire projectile")
		}
	}
}

func (s *AvatarControlSystem) drive(ctx *Context, dir cp.Vector) {
	w := ctx.World
	e := ctx.Progression.Active
	veh, ok := ecs.Get(w, e, component.VehicleComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	dt := ctx.ScaledDt(component.KindVehicle)
	if dir.Length() > 0 {
		vel.Linear = vel.Linear.Add(dir.Mult(veh.Accel * dt))
	} else {
		vel.Linear = vel.Linear.Mult(math.Pow(vehicleDrag, dt))
	}
	vel.Linear = vel.Linear.Clamp(veh.MaxSpeed)

	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && vel.Linear.Length() > 1e-3 {
		tr.Heading = vel.Linear.ToAngle()
	}
}
