package entity

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/prefabs"
)

type buildContext struct {
	PrefabPath string
	Kind       component.Kind
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"kind":       addKind,
	"collider":   addCollider,
	"health":     addHealth,
	"steering":   addSteering,
	"attacker":   addAttacker,
	"scoring":    addScoring,
	"avatar":     addAvatar,
	"projectile": addProjectile,
}

var componentBuildOrder = []string{
	"kind",
	"collider",
	"health",
	"steering",
	"attacker",
	"scoring",
	"avatar",
	"projectile",
}

// Builder turns actor prefabs into entities. Parsed prefabs are cached until
// Invalidate is called for them.
type Builder struct {
	mu    sync.Mutex
	specs map[string]prefabs.EntityBuildSpec
}

func NewBuilder() *Builder {
	return &Builder{specs: make(map[string]prefabs.EntityBuildSpec)}
}

// Invalidate drops a cached prefab so the next build rereads it. An empty
// name drops everything.
func (b *Builder) Invalidate(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if name == "" {
		b.specs = make(map[string]prefabs.EntityBuildSpec)
		return
	}
	delete(b.specs, name)
}

func (b *Builder) spec(prefabPath string) (prefabs.EntityBuildSpec, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if spec, ok := b.specs[prefabPath]; ok {
		return spec, nil
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return prefabs.EntityBuildSpec{}, err
	}
	b.specs[prefabPath] = spec
	return spec, nil
}

// BuildEntity creates an entity at pos from a prefab. On any component error
// the half-built entity is destroyed.
func (b *Builder) BuildEntity(w *ecs.World, prefabPath string, pos cp.Vector) (ecs.Entity, error) {
	if w == nil {
		return ecs.Null, fmt.Errorf("build entity: world is nil")
	}

	spec, err := b.spec(prefabPath)
	if err != nil {
		return ecs.Null, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return ecs.Null, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	if err := SetEntityTransform(w, e, pos, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return ecs.Null, fmt.Errorf("build entity: %q: %w", prefabPath, err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		ecs.DestroyEntity(w, e)
		return ecs.Null, fmt.Errorf("build entity: %q: %w", prefabPath, err)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return ecs.Null, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return ecs.Null, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}
	if ctx.Kind == 0 {
		ecs.DestroyEntity(w, e)
		return ecs.Null, fmt.Errorf("build entity: %q: missing kind", prefabPath)
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, pos cp.Vector, heading float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Heading = heading
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func parseKind(s string) (component.Kind, error) {
	for _, k := range []component.Kind{
		component.KindAvatar,
		component.KindPedestrian,
		component.KindHostile,
		component.KindVehicle,
		component.KindProjectile,
	} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func addKind(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.KindComponentSpec](raw)
	if err != nil {
		return err
	}
	kind, err := parseKind(spec.Kind)
	if err != nil {
		return err
	}
	ctx.Kind = kind
	return ecs.Add(w, e, component.KindTagComponent.Kind(), &component.KindTag{Kind: kind})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("collider radius must be positive, got %v", spec.Radius)
	}
	ready := true
	if spec.Ready != nil {
		ready = *spec.Ready
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: spec.Radius, Ready: ready})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(spec.Max))
}

func addSteering(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SteeringComponentSpec](raw)
	if err != nil {
		return err
	}
	base := make([]component.Behavior, 0, len(spec.Behaviors))
	for _, b := range spec.Behaviors {
		base = append(base, component.Behavior{Kind: component.BehaviorKind(b.Kind), Weight: b.Weight, Radius: b.Radius})
	}
	return ecs.Add(w, e, component.SteeringComponent.Kind(), &component.Steering{
		Profile:  spec.Profile,
		Script:   spec.Script,
		Base:     base,
		MaxSpeed: spec.MaxSpeed,
		MaxAccel: spec.MaxAccel,
	})
}

func addAttacker(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AttackerComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AttackerComponent.Kind(), &component.Attacker{
		Damage:   spec.Damage,
		Reach:    spec.Reach,
		Cooldown: spec.CooldownSeconds,
	})
}

func addScoring(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScoringComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScoringComponent.Kind(), &component.Scoring{
		Base:             spec.Base,
		DeathClipSeconds: spec.DeathClipSeconds,
	})
}

func addAvatar(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AvatarComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AvatarComponent.Kind(), &component.Avatar{
		WalkSpeed:      spec.WalkSpeed,
		MeleeRange:     spec.MeleeRange,
		MeleeDamage:    spec.MeleeDamage,
		AttackCooldown: spec.AttackCooldown,
		FireCooldown:   spec.FireCooldown,
	})
}

func addProjectile(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ProjectileComponentSpec](raw)
	if err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Damage:      spec.Damage,
		BlastRadius: spec.BlastRadius,
		Speed:       spec.Speed,
	}); err != nil {
		return err
	}
	if spec.TTLFrames <= 0 {
		return nil
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.TTLFrames, Reason: "expired"})
}
