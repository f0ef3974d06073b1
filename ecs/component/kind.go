package component

// Kind tags what an entity is for collision masks, combat rules and scoring.
type Kind uint8

const (
	KindAvatar Kind = iota + 1
	KindPedestrian
	KindHostile
	KindVehicle
	KindProjectile
)

func (k Kind) String() string {
	switch k {
	case KindAvatar:
		return "avatar"
	case KindPedestrian:
		return "pedestrian"
	case KindHostile:
		return "hostile"
	case KindVehicle:
		return "vehicle"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Population groups kinds that share a time scale.
type Population uint8

const (
	PopulationAvatar Population = iota
	PopulationCrowd
)

// Population returns which time-scale population the kind belongs to.
// Vehicles and projectiles are driven or fired by the avatar.
func (k Kind) Population() Population {
	switch k {
	case KindPedestrian, KindHostile:
		return PopulationCrowd
	default:
		return PopulationAvatar
	}
}

// KindTag is attached to every simulated entity.
type KindTag struct {
	Kind Kind
}

var KindTagComponent = NewComponent[KindTag]()
