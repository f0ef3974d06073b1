package system

import (
	"math"

	"github.com/milk9111/rampage/ecs"
)

// RampageSystem drives Inactive -> Active -> Inactive. It only publishes
// per-population time scales; consumers apply them from the next tick on.
type RampageSystem struct{}

func NewRampageSystem() *RampageSystem {
	return &RampageSystem{}
}

func (s *RampageSystem) Update(ctx *Context) {
	if ctx == nil || ctx.Tuning == nil {
		return
	}
	spec := ctx.Tuning.Rampage
	r := &ctx.Rampage

	if !r.Active {
		if ctx.Combo.Count == 0 {
			r.Armed = true
		}
		if r.Armed && spec.Threshold > 0 && ctx.Combo.Count >= spec.Threshold {
			s.enter(ctx)
		}
		return
	}

	r.Elapsed += ctx.Dt
	r.Formation.Phase = math.Mod(r.Formation.Phase+spec.FormationSpeed*ctx.Dt, 2*math.Pi)
	if (spec.KillCap > 0 && r.Kills >= spec.KillCap) || r.Elapsed >= spec.DurationSeconds {
		s.exit(ctx)
	}
}

func (s *RampageSystem) enter(ctx *Context) {
	spec := ctx.Tuning.Rampage
	r := &ctx.Rampage
	r.Active = true
	r.Armed = false
	r.Kills = 0
	r.Elapsed = 0
	r.Entries++
	r.Formation = FormationState{Slots: spec.FormationSlots}

	ctx.HitStop = spec.HitStopFrames
	ctx.Scales = TimeScales{Avatar: 1, Crowd: spec.CrowdTimeScale}

	pos, _ := ctx.PositionOf(ctx.Avatar)
	ctx.Emit(ecs.Event{Kind: ecs.EventRampageEnter, Entity: ctx.Avatar, Position: pos, Value: ctx.Combo.Count})
	ctx.Log.Info().Int("combo", ctx.Combo.Count).Int("hit_stop", spec.HitStopFrames).Msg("rampage started")
}

func (s *RampageSystem) exit(ctx *Context) {
	r := &ctx.Rampage
	kills := r.Kills
	r.Active = false
	r.Formation = FormationState{}
	ctx.Scales = DefaultTimeScales()

	pos, _ := ctx.PositionOf(ctx.Avatar)
	ctx.Emit(ecs.Event{Kind: ecs.EventRampageExit, Entity: ctx.Avatar, Position: pos, Value: kills})
	ctx.Log.Info().Int("kills", kills).Float64("elapsed", r.Elapsed).Msg("rampage ended")
}

// Progress is the fraction of the rampage used up, whichever of the kill cap
// and the duration is closer to ending it.
func (r RampageState) Progress(spec RampageLimits) float64 {
	if !r.Active {
		return 0
	}
	p := 0.0
	if spec.KillCap > 0 {
		p = float64(r.Kills) / float64(spec.KillCap)
	}
	if spec.Duration > 0 {
		p = math.Max(p, r.Elapsed/spec.Duration)
	}
	return math.Min(p, 1)
}

// RemainingKills is how many more kills end the rampage.
func (r RampageState) RemainingKills(spec RampageLimits) int {
	if !r.Active || spec.KillCap <= 0 {
		return 0
	}
	return max(spec.KillCap-r.Kills, 0)
}

// RampageLimits are the two exit conditions.
type RampageLimits struct {
	KillCap  int
	Duration float64
}

func (ctx *Context) RampageLimits() RampageLimits {
	return RampageLimits{KillCap: ctx.Tuning.Rampage.KillCap, Duration: ctx.Tuning.Rampage.DurationSeconds}
}
