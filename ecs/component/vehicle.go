package component

// VehicleState is the lifecycle of a tier vehicle.
type VehicleState uint8

const (
	VehicleAwaiting VehicleState = iota + 1
	VehicleActive
	VehicleDisposing
)

func (s VehicleState) String() string {
	switch s {
	case VehicleAwaiting:
		return "awaiting"
	case VehicleActive:
		return "active"
	case VehicleDisposing:
		return "disposing"
	default:
		return "none"
	}
}

// Vehicle is owned by the progression controller. GlowPhase is cosmetic and
// only advances while awaiting.
type Vehicle struct {
	Tier      int
	State     VehicleState
	MaxSpeed  float64
	Accel     float64
	GlowPhase float64
}

var VehicleComponent = NewComponent[Vehicle]()

// Avatar holds on-foot settings for the controlled actor. Cooldowns and
// timers are in ticks.
type Avatar struct {
	WalkSpeed      float64
	MeleeRange     float64
	MeleeDamage    int
	AttackCooldown int
	FireCooldown   int
	AttackTimer    int
	FireTimer      int
}

var AvatarComponent = NewComponent[Avatar]()
