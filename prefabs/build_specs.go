package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is an actor prefab: a name plus raw component blocks that
// the entity builder decodes by key.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type KindComponentSpec struct {
	Kind string `yaml:"kind"`
}

type ColliderComponentSpec struct {
	Radius float64 `yaml:"radius"`
	Ready  *bool   `yaml:"ready"`
}

type HealthComponentSpec struct {
	Max int `yaml:"max"`
}

type BehaviorSpec struct {
	Kind   string  `yaml:"kind"`
	Weight float64 `yaml:"weight"`
	Radius float64 `yaml:"radius"`
}

type SteeringComponentSpec struct {
	Profile   string         `yaml:"profile"`
	Script    string         `yaml:"script"`
	MaxSpeed  float64        `yaml:"max_speed"`
	MaxAccel  float64        `yaml:"max_accel"`
	Behaviors []BehaviorSpec `yaml:"behaviors"`
}

type AttackerComponentSpec struct {
	Damage          int     `yaml:"damage"`
	Reach           float64 `yaml:"reach"`
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
}

type ScoringComponentSpec struct {
	Base             int     `yaml:"base"`
	DeathClipSeconds float64 `yaml:"death_clip_seconds"`
}

type AvatarComponentSpec struct {
	WalkSpeed      float64 `yaml:"walk_speed"`
	MeleeRange     float64 `yaml:"melee_range"`
	MeleeDamage    int     `yaml:"melee_damage"`
	AttackCooldown int     `yaml:"attack_cooldown_frames"`
	FireCooldown   int     `yaml:"fire_cooldown_frames"`
}

type ProjectileComponentSpec struct {
	Damage      int     `yaml:"damage"`
	BlastRadius float64 `yaml:"blast_radius"`
	Speed       float64 `yaml:"speed"`
	TTLFrames   int     `yaml:"ttl_frames"`
}
