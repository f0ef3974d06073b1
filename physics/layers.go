package physics

import "github.com/milk9111/rampage/ecs/component"

// Collision categories. Each is a single bit.
const (
	CategoryBuilding uint = 1 << iota
	CategoryGround
	CategoryAvatar
	CategoryPedestrian
	CategoryHostile
	CategoryVehicle
	CategoryProjectile
)

// LayerFor returns the static membership/filter pair for an entity kind.
// Vehicles collide with buildings, ground and other vehicles and pass through
// people; people are resolved by combat instead.
func LayerFor(kind component.Kind) component.CollisionLayer {
	switch kind {
	case component.KindAvatar:
		return component.CollisionLayer{Category: CategoryAvatar, Mask: CategoryBuilding | CategoryGround}
	case component.KindPedestrian:
		return component.CollisionLayer{Category: CategoryPedestrian, Mask: CategoryBuilding | CategoryGround}
	case component.KindHostile:
		return component.CollisionLayer{Category: CategoryHostile, Mask: CategoryBuilding | CategoryGround}
	case component.KindVehicle:
		return component.CollisionLayer{Category: CategoryVehicle, Mask: CategoryBuilding | CategoryGround | CategoryVehicle}
	case component.KindProjectile:
		return component.CollisionLayer{Category: CategoryProjectile, Mask: CategoryBuilding}
	default:
		return component.CollisionLayer{Category: CategoryBuilding, Mask: CategoryBuilding}
	}
}

// CategoryName is used in logs and debug output.
func CategoryName(c uint) string {
	switch c {
	case CategoryBuilding:
		return "building"
	case CategoryGround:
		return "ground"
	case CategoryAvatar:
		return "avatar"
	case CategoryPedestrian:
		return "pedestrian"
	case CategoryHostile:
		return "hostile"
	case CategoryVehicle:
		return "vehicle"
	case CategoryProjectile:
		return "projectile"
	default:
		return "none"
	}
}
