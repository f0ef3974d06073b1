package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/ecs/entity"
	"github.com/milk9111/rampage/physics"
	"github.com/milk9111/rampage/prefabs"
	"github.com/milk9111/rampage/telemetry"
	"github.com/rs/zerolog"
)

// TicksPerSecond converts authored second durations into tick counts for
// frame-based timers.
const TicksPerSecond = 60

// Context is everything a system may read or write during one tick. All
// cross-tick simulation state lives here rather than in package globals.
type Context struct {
	World   *ecs.World
	Space   *physics.Space
	Tuning  *prefabs.TuningSpec
	Tiers   []prefabs.TierSpec
	Builder *entity.Builder
	Scripts *SteeringScripts
	Metrics *telemetry.Metrics
	Log     zerolog.Logger
	Events  *ecs.EventQueue

	Input Input
	// Dt is the wall-clock tick length in seconds. Per-population time scales
	// are applied by each consumer.
	Dt    float64
	Frame uint64

	Avatar ecs.Entity

	Combo       ComboState
	Rampage     RampageState
	Progression ProgressionState
	Disposal    DisposalQueue
	Wanted      WantedState
	Scales      TimeScales

	HitStop  int
	GameOver bool

	meleeRequested bool
	// teleports are transforms moved outside movement whose bodies still
	// sit at the old position; movement commits them.
	teleports []ecs.Entity
}

// NewContext wires a context with fresh state.
func NewContext(w *ecs.World, space *physics.Space, tuning *prefabs.TuningSpec, tiers []prefabs.TierSpec) *Context {
	ctx := &Context{
		World:   w,
		Space:   space,
		Tuning:  tuning,
		Tiers:   tiers,
		Builder: entity.NewBuilder(),
		Scripts: NewSteeringScripts(),
		Log:     zerolog.Nop(),
		Events:  &ecs.EventQueue{},
	}
	ctx.ResetState()
	return ctx
}

// ResetState clears per-run state. World and space are left to the caller.
func (ctx *Context) ResetState() {
	ctx.Input = Input{}
	ctx.Frame = 0
	ctx.Avatar = ecs.Null
	ctx.Combo = ComboState{}
	ctx.Rampage = RampageState{Armed: true}
	ctx.Progression = ProgressionState{}
	ctx.Disposal = DisposalQueue{}
	ctx.Wanted = WantedState{}
	ctx.Scales = DefaultTimeScales()
	ctx.HitStop = 0
	ctx.GameOver = false
	ctx.meleeRequested = false
	ctx.teleports = nil
	if ctx.Events != nil {
		ctx.Events.Clear()
	}
}

// Emit queues an outbound event stamped with the current frame.
func (ctx *Context) Emit(evt ecs.Event) {
	evt.Frame = ctx.Frame
	ctx.Events.Push(evt)
	ctx.Metrics.Observe(evt)
}

// Destroy removes an entity and its collision body.
func (ctx *Context) Destroy(e ecs.Entity) {
	if !ecs.IsAlive(ctx.World, e) {
		return
	}
	if pb, ok := ecs.Get(ctx.World, e, component.PhysicsBodyComponent.Kind()); ok && pb != nil {
		ctx.Space.RemoveBody(pb.Body, pb.Shape)
	}
	ecs.DestroyEntity(ctx.World, e)
}

// PositionOf returns an entity's authoritative position.
func (ctx *Context) PositionOf(e ecs.Entity) (cp.Vector, bool) {
	tr, ok := ecs.Get(ctx.World, e, component.TransformComponent.Kind())
	if !ok || tr == nil {
		return cp.Vector{}, false
	}
	return tr.Position, true
}

// KindOf returns the kind tag, or zero when untagged.
func (ctx *Context) KindOf(e ecs.Entity) component.Kind {
	tag, ok := ecs.Get(ctx.World, e, component.KindTagComponent.Kind())
	if !ok || tag == nil {
		return 0
	}
	return tag.Kind
}

// ScaledDt returns the tick length for an entity's population.
func (ctx *Context) ScaledDt(kind component.Kind) float64 {
	return ctx.Dt * ctx.Scales.For(kind.Population())
}

// AvatarAlive reports whether there is a live, undead avatar.
func (ctx *Context) AvatarAlive() bool {
	if !ecs.IsAlive(ctx.World, ctx.Avatar) {
		return false
	}
	h, ok := ecs.Get(ctx.World, ctx.Avatar, component.HealthComponent.Kind())
	return !ok || h.IsAlive()
}

// Riding reports whether the avatar is inside the active vehicle.
func (ctx *Context) Riding() bool {
	return ecs.Has(ctx.World, ctx.Avatar, component.RidingComponent.Kind()) &&
		ecs.IsAlive(ctx.World, ctx.Progression.Active)
}

// hasBody reports whether e exists in the collision world yet. Combat
// ignores entities that do not.
func (ctx *Context) hasBody(e ecs.Entity) bool {
	pb, ok := ecs.Get(ctx.World, e, component.PhysicsBodyComponent.Kind())
	return ok && pb != nil && pb.Shape != nil
}

func (ctx *Context) radiusOf(e ecs.Entity) float64 {
	if col, ok := ecs.Get(ctx.World, e, component.ColliderComponent.Kind()); ok && col != nil {
		return col.Radius
	}
	return 0
}

func (ctx *Context) framesFor(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Ceil(seconds * TicksPerSecond))
}
