package game

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/ecs/entity"
	"github.com/milk9111/rampage/ecs/system"
	"github.com/milk9111/rampage/levels"
	"github.com/milk9111/rampage/physics"
	"github.com/milk9111/rampage/prefabs"
	"github.com/milk9111/rampage/telemetry"
	"github.com/rs/zerolog"
)

const DefaultLevel = "city.json"

// Input is re-exported so shells do not import the system package.
type Input = system.Input

// Options configure a Game. Zero values load the embedded defaults.
type Options struct {
	Logger  zerolog.Logger
	Level   string
	Tuning  *prefabs.TuningSpec
	Tiers   []prefabs.TierSpec
	Metrics *telemetry.Metrics
}

// Game is the simulation core: one world, one collision space and the
// systems that advance them. It is not safe for concurrent use.
type Game struct {
	opts     Options
	level    *levels.Level
	ctx      *system.Context
	live     *ecs.Scheduler[*system.Context]
	gameOver *ecs.Scheduler[*system.Context]
	paused   bool
}

func New(opts Options) (*Game, error) {
	if opts.Level == "" {
		opts.Level = DefaultLevel
	}
	if opts.Tuning == nil {
		tuning, err := prefabs.LoadTuningSpec()
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		opts.Tuning = tuning
	}
	if opts.Tiers == nil {
		table, err := prefabs.LoadTierTable("tiers.yaml")
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		opts.Tiers = table.Tiers
	} else if err := (prefabs.TierTable{Tiers: opts.Tiers}).Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	lvl, err := levels.LoadLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("game: level %q: %w", opts.Level, err)
	}

	g := &Game{
		opts:     opts,
		level:    lvl,
		live:     system.NewTickScheduler(),
		gameOver: system.NewGameOverScheduler(),
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset starts a new run: fresh world, fresh space, avatar at the level
// spawn.
func (g *Game) Reset() error {
	space := physics.NewSpace()
	if g.opts.Tuning.World.Epsilon > 0 {
		space.Epsilon = g.opts.Tuning.World.Epsilon
	}
	shapes := space.BuildLevel(g.level)

	var builder *entity.Builder
	var scripts *system.SteeringScripts
	if g.ctx != nil {
		builder, scripts = g.ctx.Builder, g.ctx.Scripts
	}
	ctx := system.NewContext(ecs.NewWorld(), space, g.opts.Tuning, g.opts.Tiers)
	if builder != nil {
		ctx.Builder, ctx.Scripts = builder, scripts
	}
	ctx.Log = g.opts.Logger
	ctx.Metrics = g.opts.Metrics
	g.ctx = ctx
	g.paused = false

	x, y := g.level.TileCenter(g.level.Spawn)
	avatar, err := ctx.Builder.NewAvatar(ctx.World, cp.Vector{X: x, Y: y})
	if err != nil {
		return fmt.Errorf("game: spawn avatar: %w", err)
	}
	ctx.Avatar = avatar
	if h, ok := ecs.Get(ctx.World, avatar, component.HealthComponent.Kind()); ok {
		h.Reset(ctx.Tiers[0].MaxHealth)
	}

	g.opts.Logger.Info().Int("shapes", shapes).Stringer("avatar", avatar).Msg("run started")
	return nil
}

// Tick advances the simulation by dt wall-clock seconds and returns the
// snapshot for this tick.
func (g *Game) Tick(in Input, dt float64) Snapshot {
	ctx := g.ctx
	if g.paused {
		return g.snapshot()
	}
	start := time.Now()
	if maxDt := g.opts.Tuning.World.MaxDt; maxDt > 0 && dt > maxDt {
		dt = maxDt
	}
	if dt < 0 {
		dt = 0
	}
	ctx.Frame++
	ctx.Input = in
	ctx.Dt = dt

	switch {
	case system.ConsumeHitStop(ctx):
	case ctx.GameOver:
		g.gameOver.Update(ctx)
	default:
		g.live.Update(ctx)
	}

	ctx.Metrics.TickDone(time.Since(start), ctx.World.Len())
	return g.snapshot()
}

// Pause freezes the simulation until Resume. Unlike rampage hit-stop it is
// driven by the UI and has no duration.
func (g *Game) Pause() { g.paused = true }

func (g *Game) Resume() { g.paused = false }

func (g *Game) Paused() bool { return g.paused }

// DrainEvents returns and clears the events raised since the last drain.
func (g *Game) DrainEvents() []ecs.Event {
	return g.ctx.Events.Drain()
}

// Context exposes simulation state to tests and tools.
func (g *Game) Context() *system.Context {
	return g.ctx
}

func (g *Game) Level() *levels.Level {
	return g.level
}

// ReloadPrefab drops cached copies of a changed prefab or script so the next
// spawn or tick picks up the edit. Tuning changes apply in place.
func (g *Game) ReloadPrefab(name string) error {
	g.ctx.Builder.Invalidate(name)
	g.ctx.Scripts.Invalidate(name)
	if filepath.Base(name) != "tuning.yaml" {
		return nil
	}
	tuning, err := prefabs.LoadTuningSpec()
	if err != nil {
		return fmt.Errorf("game: reload: %w", err)
	}
	*g.opts.Tuning = *tuning
	return nil
}
