package system

import (
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/physics"
)

// BodySyncSystem gives every ready collider a body in the collision world.
// Entities whose collider is not ready yet are skipped and retried next tick.
type BodySyncSystem struct{}

func NewBodySyncSystem() *BodySyncSystem {
	return &BodySyncSystem{}
}

func (s *BodySyncSystem) Update(ctx *Context) {
	if ctx == nil || ctx.World == nil || ctx.Space == nil {
		return
	}
	w := ctx.World
	ecs.ForEach3(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), component.KindTagComponent.Kind(), func(e ecs.Entity, col *component.Collider, tr *component.Transform, tag *component.KindTag) {
		if !col.Ready || ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			return
		}
		layer := physics.LayerFor(tag.Kind)
		body, shape := ctx.Space.AddBody(tr.Position, col.Radius, layer)
		if body == nil {
			return
		}
		_ = ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layer)
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Shape: shape, Radius: col.Radius}); err != nil {
			ctx.Space.RemoveBody(body, shape)
			ctx.Log.Warn().Err(err).Stringer("entity", e).Msg("attach body")
			return
		}
		ctx.Log.Debug().Stringer("entity", e).Stringer("kind", tag.Kind).Str("category", physics.CategoryName(layer.Category)).Msg("body created")
	})
}
