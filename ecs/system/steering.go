package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/physics"
)

const (
	goldenAngle    = 2.399963
	coincidentPush = 100.0
)

// ObstacleProbe is the slice of the collision world that obstacle avoidance
// needs. *physics.Space satisfies it.
type ObstacleProbe interface {
	CastRay(origin, dir cp.Vector, maxDistance float64, mask uint) (physics.Hit, bool)
}

// SteeringInput is everything ComputeDesiredVelocity reads. It holds no
// references into the world, so the fold is pure apart from the probe query.
type SteeringInput struct {
	Position  cp.Vector
	Velocity  cp.Vector
	Target    cp.Vector
	HasTarget bool
	Peers     []cp.Vector
	Behaviors []component.Behavior
	MaxSpeed  float64
	MaxAccel  float64
	Disabled  bool
	Probe     ObstacleProbe
}

// ComputeDesiredVelocity folds the weighted behaviors into one velocity,
// clamped to MaxSpeed. Disabled input always yields zero.
func ComputeDesiredVelocity(in SteeringInput) cp.Vector {
	if in.Disabled || in.MaxSpeed <= 0 {
		return cp.Vector{}
	}
	var sum cp.Vector
	for _, b := range in.Behaviors {
		var f cp.Vector
		switch b.Kind {
		case component.BehaviorSeek:
			f = seek(in)
		case component.BehaviorFlee:
			f = flee(in, b.Radius)
		case component.BehaviorSeparation:
			f = separation(in, b.Radius)
		case component.BehaviorAvoid:
			f = avoid(in, b.Radius)
		}
		sum = sum.Add(f.Mult(b.Weight))
	}
	return sum.Clamp(in.MaxSpeed)
}

func seek(in SteeringInput) cp.Vector {
	if !in.HasTarget {
		return cp.Vector{}
	}
	to := in.Target.Sub(in.Position)
	if to.Length() < 1e-6 {
		return cp.Vector{}
	}
	return to.Normalize().Mult(in.MaxAccel)
}

func flee(in SteeringInput, radius float64) cp.Vector {
	if !in.HasTarget {
		return cp.Vector{}
	}
	away := in.Position.Sub(in.Target)
	d := away.Length()
	if d >= radius {
		return cp.Vector{}
	}
	if d < 1e-6 {
		away = cp.Vector{X: 1}
	}
	return away.Normalize().Mult(in.MaxAccel)
}

// separation sums an inverse-distance push from every peer inside radius.
// Summing rather than taking the strongest lets crowd pressure squeeze
// through gaps.
func separation(in SteeringInput, radius float64) cp.Vector {
	var push cp.Vector
	for i, p := range in.Peers {
		away := in.Position.Sub(p)
		d := away.Length()
		if d >= radius {
			continue
		}
		if d < 1e-6 {
			// coincident peers: spread deterministically by index
			push = push.Add(cp.ForAngle(float64(i) * goldenAngle).Mult(coincidentPush))
			continue
		}
		push = push.Add(away.Mult(1 / (d * d)))
	}
	return push.Mult(in.MaxAccel)
}

// avoid looks ahead along the current heading and steers along the normal of
// the first static obstacle, harder the closer it is.
func avoid(in SteeringInput, lookahead float64) cp.Vector {
	if in.Probe == nil || lookahead <= 0 {
		return cp.Vector{}
	}
	heading := in.Velocity
	if heading.Length() < 1e-6 && in.HasTarget {
		heading = in.Target.Sub(in.Position)
	}
	if heading.Length() < 1e-6 {
		return cp.Vector{}
	}
	hit, ok := in.Probe.CastRay(in.Position, heading, lookahead, physics.CategoryBuilding)
	if !ok {
		return cp.Vector{}
	}
	urgency := 1 - hit.Distance/lookahead
	return hit.Normal.Mult(in.MaxAccel * urgency)
}

// SteeringSystem rebuilds each AI's behavior list and target, then writes the
// folded velocity for the movement pass.
type SteeringSystem struct{}

func NewSteeringSystem() *SteeringSystem {
	return &SteeringSystem{}
}

func (s *SteeringSystem) Update(ctx *Context) {
	if ctx == nil || ctx.World == nil {
		return
	}
	w := ctx.World

	target, hasTarget := cp.Vector{}, false
	if ctx.AvatarAlive() {
		target, hasTarget = ctx.PositionOf(ctx.Avatar)
	}

	type agent struct {
		e   ecs.Entity
		st  *component.Steering
		tr  *component.Transform
		vel *component.Velocity
	}
	var agents []agent
	ecs.ForEach3(w, component.SteeringComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, st *component.Steering, tr *component.Transform, vel *component.Velocity) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
			st.Disable()
		}
		if st.Disabled {
			vel.Linear = cp.Vector{}
			return
		}
		// the transform is authoritative; never trust last tick's copy
		st.TrackedPosition = tr.Position
		agents = append(agents, agent{e: e, st: st, tr: tr, vel: vel})
	})

	positions := make([]cp.Vector, len(agents))
	for i, a := range agents {
		positions[i] = a.st.TrackedPosition
	}

	var probe ObstacleProbe
	if ctx.Space != nil {
		probe = ctx.Space
	}

	peers := make([]cp.Vector, 0, len(agents))
	for i, a := range agents {
		a.st.Target, a.st.HasTarget = target, hasTarget
		a.st.Behaviors = ctx.Scripts.Behaviors(ctx, a.e, a.st)

		peers = peers[:0]
		for j, p := range positions {
			if j != i {
				peers = append(peers, p)
			}
		}
		a.vel.Linear = ComputeDesiredVelocity(SteeringInput{
			Position:  a.st.TrackedPosition,
			Velocity:  a.vel.Linear,
			Target:    a.st.Target,
			HasTarget: a.st.HasTarget,
			Peers:     peers,
			Behaviors: a.st.Behaviors,
			MaxSpeed:  a.st.MaxSpeed,
			MaxAccel:  a.st.MaxAccel,
			Probe:     probe,
		})
		if a.vel.Linear.Length() > 1e-3 {
			a.tr.Heading = a.vel.Linear.ToAngle()
		}
	}
}
