package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTiers = errors.New("prefabs: invalid tier table")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// TuningSpec holds every gameplay constant that is not per-actor.
type TuningSpec struct {
	Combo       ComboSpec       `yaml:"combo"`
	Rampage     RampageSpec     `yaml:"rampage"`
	Wanted      WantedSpec      `yaml:"wanted"`
	Progression ProgressionSpec `yaml:"progression"`
	World       WorldSpec       `yaml:"world"`
	Markers     MarkerSpec      `yaml:"markers"`
}

type ComboSpec struct {
	WindowSeconds  float64 `yaml:"window_seconds"`
	MultiplierStep float64 `yaml:"multiplier_step"`
	MultiplierCap  int     `yaml:"multiplier_cap"`
	MilestoneEvery int     `yaml:"milestone_every"`
}

type RampageSpec struct {
	Threshold       int     `yaml:"threshold"`
	KillCap         int     `yaml:"kill_cap"`
	DurationSeconds float64 `yaml:"duration_seconds"`
	HitStopFrames   int     `yaml:"hit_stop_frames"`
	CrowdTimeScale  float64 `yaml:"crowd_time_scale"`
	FormationSlots  int     `yaml:"formation_slots"`
	FormationSpeed  float64 `yaml:"formation_speed"`
}

type WantedSpec struct {
	Max            float64 `yaml:"max"`
	PerPedestrian  float64 `yaml:"per_pedestrian"`
	PerHostile     float64 `yaml:"per_hostile"`
	DecayPerSecond float64 `yaml:"decay_per_second"`
}

type ProgressionSpec struct {
	EnterRadius        float64 `yaml:"enter_radius"`
	DisposalFrames     int     `yaml:"disposal_frames"`
	RespawnDelayFrames int     `yaml:"respawn_delay_frames"`
	PlacementRadius    float64 `yaml:"placement_radius"`
	PlacementCount     int     `yaml:"placement_candidates"`
	RunOverSpeed       float64 `yaml:"run_over_speed"`
	VehicleRadius      float64 `yaml:"vehicle_radius"`
	ContactDamage      int     `yaml:"contact_damage"`
	RunOverDamage      int     `yaml:"run_over_damage"`
}

type WorldSpec struct {
	Epsilon         float64 `yaml:"epsilon"`
	MaxDt           float64 `yaml:"max_dt"`
	DespawnDistance float64 `yaml:"despawn_distance"`
	FlashFrames     int     `yaml:"flash_frames"`
}

type MarkerSpec struct {
	Max    int     `yaml:"max"`
	Radius float64 `yaml:"radius"`
}

func LoadTuningSpec() (*TuningSpec, error) {
	spec, err := LoadSpec[TuningSpec]("tuning.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// TierSpec is one step of the vehicle progression. The first tier is on foot
// and has no vehicle.
type TierSpec struct {
	Name      string  `yaml:"name"`
	Threshold int     `yaml:"threshold"`
	MaxHealth int     `yaml:"max_health"`
	MaxSpeed  float64 `yaml:"max_speed"`
	Accel     float64 `yaml:"accel"`
}

type TierTable struct {
	Tiers []TierSpec `yaml:"tiers"`
}

// Validate rejects empty tables, non-positive health and thresholds that do
// not strictly increase.
func (t TierTable) Validate() error {
	if len(t.Tiers) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidTiers)
	}
	for i, tier := range t.Tiers {
		if tier.MaxHealth <= 0 {
			return fmt.Errorf("%w: tier %q max_health %d", ErrInvalidTiers, tier.Name, tier.MaxHealth)
		}
		if i > 0 && tier.Threshold <= t.Tiers[i-1].Threshold {
			return fmt.Errorf("%w: tier %q threshold %d not above %d", ErrInvalidTiers, tier.Name, tier.Threshold, t.Tiers[i-1].Threshold)
		}
	}
	return nil
}

func LoadTierTable(filename string) (*TierTable, error) {
	table, err := LoadSpec[TierTable](filename)
	if err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &table, nil
}
