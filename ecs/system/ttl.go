package system

import (
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
)

// TTLSystem decrements frame-based TTL components and destroys entities when
// the TTL reaches zero.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(ctx *Context) {
	if ctx == nil || ctx.World == nil {
		return
	}

	ecs.ForEach(ctx.World, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Frames > 0 {
			ttl.Frames--
			if ttl.Frames > 0 {
				return
			}
		}
		ctx.Log.Debug().Stringer("entity", e).Str("reason", ttl.Reason).Msg("ttl expired")
		ctx.Destroy(e)
	})
}

// DespawnSystem removes AI and projectiles that wander too far from the
// avatar.
type DespawnSystem struct{}

func NewDespawnSystem() *DespawnSystem {
	return &DespawnSystem{}
}

func (s *DespawnSystem) Update(ctx *Context) {
	if ctx == nil || ctx.World == nil || ctx.Tuning == nil {
		return
	}
	limit := ctx.Tuning.World.DespawnDistance
	center, ok := ctx.PositionOf(ctx.Avatar)
	if limit <= 0 || !ok {
		return
	}
	ecs.ForEach2(ctx.World, component.KindTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tag *component.KindTag, tr *component.Transform) {
		switch tag.Kind {
		case component.KindPedestrian, component.KindHostile, component.KindProjectile:
		default:
			return
		}
		if tr.Position.Sub(center).Length() > limit {
			ctx.Destroy(e)
		}
	})
}

// DisposalSystem counts down retired vehicles and removes each exactly once.
// It keeps running after game over.
type DisposalSystem struct{}

func NewDisposalSystem() *DisposalSystem {
	return &DisposalSystem{}
}

func (s *DisposalSystem) Update(ctx *Context) {
	if ctx == nil {
		return
	}
	for _, e := range ctx.Disposal.Step() {
		ctx.Destroy(e)
	}
}
