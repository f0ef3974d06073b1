package game

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/ecs/system"
)

// Snapshot is the read-only per-tick view handed to the UI.
type Snapshot struct {
	Frame uint64

	Score      int
	ComboCount int
	ComboTimer float64

	Tier     int
	TierName string

	Health    int
	MaxHealth int
	Riding    bool

	AvatarPosition cp.Vector
	WantedLevel    float64
	WantedStars    int

	Rampage RampageSnapshot
	Scales  system.TimeScales
	Markers []EnemyMarker

	Vehicles int
	GameOver bool
	Paused   bool
}

type RampageSnapshot struct {
	Active         bool
	Progress       float64
	RemainingKills int
	FormationPhase float64
	FormationSlots int
}

// EnemyMarker is one health bar over a hostile near the avatar.
type EnemyMarker struct {
	Entity   ecs.Entity
	Position cp.Vector
	Health   float64
}

func (g *Game) snapshot() Snapshot {
	ctx := g.ctx
	snap := Snapshot{
		Frame:       ctx.Frame,
		Score:       ctx.Combo.Score,
		ComboCount:  ctx.Combo.Count,
		ComboTimer:  ctx.Combo.Timer,
		Tier:        ctx.Progression.Offered,
		WantedLevel: ctx.Wanted.Level,
		WantedStars: ctx.Wanted.Stars(),
		Scales:      ctx.Scales,
		Riding:      ctx.Riding(),
		GameOver:    ctx.GameOver,
		Paused:      g.paused,
		Vehicles:    ecs.Count(ctx.World, component.VehicleComponent.Kind()),
	}
	if snap.Tier < len(ctx.Tiers) {
		snap.TierName = ctx.Tiers[snap.Tier].Name
	}

	limits := ctx.RampageLimits()
	snap.Rampage = RampageSnapshot{
		Active:         ctx.Rampage.Active,
		Progress:       ctx.Rampage.Progress(limits),
		RemainingKills: ctx.Rampage.RemainingKills(limits),
		FormationPhase: ctx.Rampage.Formation.Phase,
		FormationSlots: ctx.Rampage.Formation.Slots,
	}

	healthOf := ctx.Avatar
	if snap.Riding {
		healthOf = ctx.Progression.Active
	}
	if h, ok := ecs.Get(ctx.World, healthOf, component.HealthComponent.Kind()); ok {
		snap.Health, snap.MaxHealth = h.Current, h.Max
	}
	snap.AvatarPosition, _ = ctx.PositionOf(ctx.Avatar)
	snap.Markers = g.markers(snap.AvatarPosition)
	return snap
}

// markers lists the nearest living hostiles inside the marker radius, closest
// first, at most Markers.Max of them.
func (g *Game) markers(center cp.Vector) []EnemyMarker {
	ctx := g.ctx
	spec := ctx.Tuning.Markers
	if spec.Max <= 0 {
		return nil
	}
	type candidate struct {
		marker EnemyMarker
		dist   float64
	}
	var found []candidate
	ecs.ForEach3(ctx.World, component.KindTagComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tag *component.KindTag, h *component.Health, tr *component.Transform) {
		if tag.Kind != component.KindHostile || !h.IsAlive() {
			return
		}
		d := tr.Position.Sub(center).Length()
		if spec.Radius > 0 && d > spec.Radius {
			return
		}
		found = append(found, candidate{marker: EnemyMarker{Entity: e, Position: tr.Position, Health: h.Ratio()}, dist: d})
	})
	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].marker.Entity < found[j].marker.Entity
	})
	if len(found) > spec.Max {
		found = found[:spec.Max]
	}
	out := make([]EnemyMarker, len(found))
	for i, c := range found {
		out[i] = c.marker
	}
	return out
}
