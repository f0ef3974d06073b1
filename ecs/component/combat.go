package component

// Attacker deals contact damage to the avatar. Cooldown is in seconds of the
// entity's own (time-scaled) clock.
type Attacker struct {
	Damage    int
	Reach     float64
	Cooldown  float64
	Remaining float64
}

var AttackerComponent = NewComponent[Attacker]()

// Scoring holds the base score and death clip length for a killable entity.
type Scoring struct {
	Base             int
	DeathClipSeconds float64
}

var ScoringComponent = NewComponent[Scoring]()

// Projectile detonates through the radius damage path on contact. Speed is
// the launch speed in world units per second.
type Projectile struct {
	Damage      int
	BlastRadius float64
	Speed       float64
	Blocked     bool
	Spent       bool
}

var ProjectileComponent = NewComponent[Projectile]()
