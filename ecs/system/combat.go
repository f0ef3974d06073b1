package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
)

// KillReport is the plain-data result of a damage call.
type KillReport struct {
	KillCount     int
	KillPositions []cp.Vector
}

func (r *KillReport) add(pos cp.Vector) {
	r.KillCount++
	r.KillPositions = append(r.KillPositions, pos)
}

func killable(kind component.Kind) bool {
	return kind == component.KindPedestrian || kind == component.KindHostile
}

// DamageInRadius hits every living pedestrian and hostile whose centre lies
// within radius of center. Pedestrians die from any hit; hostiles lose amount
// hit points. Targets already dead are skipped, so overlapping blasts in one
// tick never count a kill twice.
func DamageInRadius(ctx *Context, center cp.Vector, radius float64, amount int) KillReport {
	var report KillReport
	if ctx == nil || ctx.World == nil || radius <= 0 {
		return report
	}
	w := ctx.World
	ecs.ForEach3(w, component.KindTagComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tag *component.KindTag, h *component.Health, tr *component.Transform) {
		if !killable(tag.Kind) || !h.IsAlive() || !ctx.hasBody(e) {
			return
		}
		if tr.Position.Sub(center).Length() > radius+ctx.radiusOf(e) {
			return
		}
		if hitTarget(ctx, e, tag.Kind, h, tr.Position, amount) {
			report.add(tr.Position)
		}
	})
	return report
}

// hitTarget applies one hit under the kill model: pedestrians die outright,
// hostiles lose amount hit points and flash while they survive.
func hitTarget(ctx *Context, e ecs.Entity, kind component.Kind, h *component.Health, pos cp.Vector, amount int) bool {
	killed := false
	switch kind {
	case component.KindPedestrian:
		killed = h.Kill()
	case component.KindHostile:
		var applied bool
		applied, killed = h.ApplyDamage(amount)
		if applied && !killed {
			ctx.flash(e)
		}
	}
	if killed {
		registerKill(ctx, e, kind, pos)
	}
	return killed
}

// ContactKill is the instant-kill path for contact hits. It returns false
// when the target was not killable, already dead or has no body yet.
func ContactKill(ctx *Context, target ecs.Entity) bool {
	if ctx == nil || !ecs.IsAlive(ctx.World, target) || !ctx.hasBody(target) {
		return false
	}
	kind := ctx.KindOf(target)
	if !killable(kind) {
		return false
	}
	h, ok := ecs.Get(ctx.World, target, component.HealthComponent.Kind())
	if !ok || !h.Kill() {
		return false
	}
	pos, _ := ctx.PositionOf(target)
	registerKill(ctx, target, kind, pos)
	return true
}

// registerKill applies every side effect of one kill. Callers guarantee it
// runs once per entity by flipping the Dead flag first.
func registerKill(ctx *Context, e ecs.Entity, kind component.Kind, pos cp.Vector) {
	w := ctx.World
	combo := ctx.Tuning.Combo

	ctx.Combo.Count++
	ctx.Combo.Timer = combo.WindowSeconds

	base := 0
	deathClip := 0.0
	if sc, ok := ecs.Get(w, e, component.ScoringComponent.Kind()); ok {
		base = sc.Base
		deathClip = sc.DeathClipSeconds
	}
	points := killScore(base, ctx.Combo.Count, combo.MultiplierCap, combo.MultiplierStep)
	ctx.Combo.Score += points

	if ctx.Rampage.Active {
		ctx.Rampage.Kills++
	}
	switch kind {
	case component.KindPedestrian:
		ctx.Wanted.add(ctx.Tuning.Wanted.PerPedestrian, ctx.Tuning.Wanted.Max)
	case component.KindHostile:
		ctx.Wanted.add(ctx.Tuning.Wanted.PerHostile, ctx.Tuning.Wanted.Max)
	}

	if st, ok := ecs.Get(w, e, component.SteeringComponent.Kind()); ok {
		st.Disable()
	}
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.Linear = cp.Vector{}
	}
	// the corpse plays its death clip, then despawns
	frames := ctx.framesFor(deathClip)
	if frames < 1 {
		frames = 1
	}
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: frames, Reason: "death"})

	ctx.Emit(ecs.Event{Kind: ecs.EventKill, Entity: e, Position: pos, Value: points, Label: kind.String()})
	if every := combo.MilestoneEvery; every > 0 && ctx.Combo.Count%every == 0 {
		ctx.Emit(ecs.Event{Kind: ecs.EventComboMilestone, Position: pos, Value: ctx.Combo.Count})
	}
	if ev := ctx.Log.Debug(); ev.Enabled() {
		ev.Stringer("kind", kind).Int("combo", ctx.Combo.Count).Int("points", points).Int("score", ctx.Combo.Score).Msg("kill")
	}
}

// killScore is base x (1 + min(count, cap) x step), rounded.
func killScore(base, count, cap int, step float64) int {
	if base <= 0 {
		return 0
	}
	if count > cap {
		count = cap
	}
	return int(math.Round(float64(base) * (1 + float64(count)*step)))
}

// DamageAvatar hurts the active vehicle when riding, otherwise the avatar.
// A destroyed vehicle ejects the avatar at a safe spot with on-foot health;
// an avatar killed on foot ends the run.
func DamageAvatar(ctx *Context, amount int) {
	if ctx == nil || amount <= 0 || ctx.GameOver || !ctx.AvatarAlive() {
		return
	}
	w := ctx.World
	target := ctx.Avatar
	riding := ctx.Riding()
	if riding {
		target = ctx.Progression.Active
	}
	h, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok {
		return
	}
	applied, killed := h.ApplyDamage(amount)
	if !applied {
		return
	}
	pos, _ := ctx.PositionOf(target)
	ctx.flash(target)
	ctx.Emit(ecs.Event{Kind: ecs.EventDamageTaken, Entity: target, Position: pos, Value: amount})

	if !killed {
		return
	}
	if riding {
		destroyActiveVehicle(ctx)
		return
	}
	ctx.GameOver = true
	ctx.Emit(ecs.Event{Kind: ecs.EventGameOver, Entity: ctx.Avatar, Position: pos, Value: ctx.Combo.Score})
	ctx.Log.Info().Int("score", ctx.Combo.Score).Uint64("frame", ctx.Frame).Msg("game over")
}

func (ctx *Context) flash(e ecs.Entity) {
	frames := ctx.Tuning.World.FlashFrames
	if frames <= 0 {
		return
	}
	_ = ecs.Add(ctx.World, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{Frames: frames, On: true})
}

// CombatSystem runs after all movement. It resolves run-overs, melee,
// projectile detonations and hostile attacks, in that order.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem {
	return &CombatSystem{}
}

func (s *CombatSystem) Update(ctx *Context) {
	if ctx == nil || ctx.World == nil {
		return
	}
	s.runOver(ctx)
	s.melee(ctx)
	s.detonate(ctx)
	s.hostileAttacks(ctx)
}

func (s *CombatSystem) runOver(ctx *Context) {
	if !ctx.Riding() {
		return
	}
	w := ctx.World
	vehicle := ctx.Progression.Active
	vel, ok := ecs.Get(w, vehicle, component.VelocityComponent.Kind())
	if !ok || vel.Linear.Length() < ctx.Tuning.Progression.RunOverSpeed {
		return
	}
	vpos, _ := ctx.PositionOf(vehicle)
	vr := ctx.radiusOf(vehicle)
	for _, e := range s.touching(ctx, vpos, vr) {
		// a hostile's counter-hit may have wrecked the vehicle
		if !ctx.Riding() {
			break
		}
		switch ctx.KindOf(e) {
		case component.KindPedestrian:
			ContactKill(ctx, e)
		case component.KindHostile:
			h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
			if !ok {
				continue
			}
			pos, _ := ctx.PositionOf(e)
			if hitTarget(ctx, e, component.KindHostile, h, pos, ctx.Tuning.Progression.RunOverDamage) {
				DamageAvatar(ctx, ctx.Tuning.Progression.ContactDamage)
			}
		}
	}
}

func (s *CombatSystem) melee(ctx *Context) {
	if !ctx.meleeRequested {
		return
	}
	ctx.meleeRequested = false
	if ctx.Riding() || !ctx.AvatarAlive() {
		return
	}
	av, ok := ecs.Get(ctx.World, ctx.Avatar, component.AvatarComponent.Kind())
	if !ok {
		return
	}
	pos, _ := ctx.PositionOf(ctx.Avatar)
	report := DamageInRadius(ctx, pos, av.MeleeRange, av.MeleeDamage)
	if report.KillCount > 0 {
		ctx.Log.Debug().Int("kills", report.KillCount).Msg("melee")
	}
}

func (s *CombatSystem) detonate(ctx *Context) {
	w := ctx.World
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, proj *component.Projectile, tr *component.Transform) {
		if proj.Spent {
			return
		}
		if !proj.Blocked && len(s.touching(ctx, tr.Position, ctx.radiusOf(e))) == 0 {
			return
		}
		proj.Spent = true
		report := DamageInRadius(ctx, tr.Position, proj.BlastRadius, proj.Damage)
		ctx.Log.Debug().Stringer("entity", e).Int("kills", report.KillCount).Bool("blocked", proj.Blocked).Msg("projectile detonated")
		ctx.Destroy(e)
	})
}

func (s *CombatSystem) hostileAttacks(ctx *Context) {
	if !ctx.AvatarAlive() {
		return
	}
	w := ctx.World
	apos, _ := ctx.PositionOf(ctx.Avatar)
	ar := ctx.radiusOf(ctx.Avatar)
	if ctx.Riding() {
		ar = ctx.radiusOf(ctx.Progression.Active)
	}
	ecs.ForEach3(w, component.AttackerComponent.Kind(), component.TransformComponent.Kind(), component.KindTagComponent.Kind(), func(e ecs.Entity, atk *component.Attacker, tr *component.Transform, tag *component.KindTag) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
			return
		}
		if atk.Remaining > 0 {
			atk.Remaining = math.Max(0, atk.Remaining-ctx.ScaledDt(tag.Kind))
		}
		if atk.Remaining > 0 || ctx.GameOver {
			return
		}
		if tr.Position.Sub(apos).Length() > atk.Reach+ar+ctx.radiusOf(e) {
			return
		}
		atk.Remaining = atk.Cooldown
		DamageAvatar(ctx, atk.Damage)
	})
}

// touching lists living killable entities with bodies overlapping a circle.
func (s *CombatSystem) touching(ctx *Context, center cp.Vector, radius float64) []ecs.Entity {
	var out []ecs.Entity
	w := ctx.World
	ecs.ForEach3(w, component.KindTagComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tag *component.KindTag, h *component.Health, tr *component.Transform) {
		if !killable(tag.Kind) || !h.IsAlive() || !ctx.hasBody(e) {
			return
		}
		if tr.Position.Sub(center).Length() <= radius+ctx.radiusOf(e) {
			out = append(out, e)
		}
	})
	return out
}
