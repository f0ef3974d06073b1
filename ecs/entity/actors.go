package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/prefabs"
)

const (
	AvatarPrefab     = "avatar.yaml"
	PedestrianPrefab = "pedestrian.yaml"
	HostilePrefab    = "hostile.yaml"
	ProjectilePrefab = "projectile.yaml"
)

func (b *Builder) NewAvatar(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	return b.BuildEntity(w, AvatarPrefab, pos)
}

func (b *Builder) NewPedestrian(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	return b.BuildEntity(w, PedestrianPrefab, pos)
}

func (b *Builder) NewHostile(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	return b.BuildEntity(w, HostilePrefab, pos)
}

// NewProjectile launches a projectile from pos along dir at the prefab speed.
func (b *Builder) NewProjectile(w *ecs.World, pos, dir cp.Vector) (ecs.Entity, error) {
	e, err := b.BuildEntity(w, ProjectilePrefab, pos)
	if err != nil {
		return ecs.Null, err
	}
	proj, _ := ecs.Get(w, e, component.ProjectileComponent.Kind())
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if proj != nil && vel != nil && dir.Length() > 0 {
		vel.Linear = dir.Normalize().Mult(proj.Speed)
	}
	return e, nil
}

// NewVehicle creates an awaiting vehicle for a tier. Vehicles are not
// prefab-driven; the tier table carries their stats.
func NewVehicle(w *ecs.World, tier int, spec prefabs.TierSpec, pos cp.Vector, radius float64) (ecs.Entity, error) {
	if w == nil {
		return ecs.Null, fmt.Errorf("vehicle: world is nil")
	}
	if radius <= 0 {
		radius = 1
	}
	e := ecs.CreateEntity(w)
	err := addAll(
		func() error { return SetEntityTransform(w, e, pos, 0) },
		func() error { return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}) },
		func() error {
			return ecs.Add(w, e, component.KindTagComponent.Kind(), &component.KindTag{Kind: component.KindVehicle})
		},
		func() error {
			return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: radius, Ready: true})
		},
		func() error { return ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(spec.MaxHealth)) },
		func() error {
			return ecs.Add(w, e, component.VehicleComponent.Kind(), &component.Vehicle{
				Tier:     tier,
				State:    component.VehicleAwaiting,
				MaxSpeed: spec.MaxSpeed,
				Accel:    spec.Accel,
			})
		},
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return ecs.Null, fmt.Errorf("vehicle: tier %q: %w", spec.Name, err)
	}
	return e, nil
}

func addAll(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
