package main

import (
	"flag"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/config"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/game"
	"github.com/milk9111/rampage/prefabs"
	"github.com/milk9111/rampage/telemetry"
	"github.com/rs/zerolog"
)

func main() {
	configDir := flag.String("config", ".", "directory holding rampage.cfg.json")
	ticks := flag.Int("ticks", 0, "override the number of ticks to run")
	flag.Parse()

	stderrLog := zerolog.New(os.Stderr)
	if err := config.Load(*configDir); err != nil {
		stderrLog.Fatal().Err(err).Msg("load config")
	}
	cfg, err := config.Run()
	if err != nil {
		stderrLog.Fatal().Err(err).Msg("load config")
	}
	if *ticks > 0 {
		cfg.Ticks = *ticks
	}

	zerolog.SetGlobalLevel(config.LogLevel())
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	metrics, err := telemetry.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("metrics")
	}

	g, err := game.New(game.Options{Logger: logger, Level: cfg.Level, Metrics: metrics})
	if err != nil {
		logger.Fatal().Err(err).Msg("create game")
	}

	var reloads <-chan string
	if cfg.Watch {
		watcher, err := prefabs.NewWatcher(cfg.PrefabDir, filepath.Join(cfg.PrefabDir, "scripts"))
		if err != nil {
			logger.Warn().Err(err).Str("dir", cfg.PrefabDir).Msg("prefab watcher disabled")
		} else {
			defer watcher.Close()
			reloads = watcher.Events
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	populate := func() {
		if err := g.Populate(rng, cfg.Pedestrians, cfg.Hostiles); err != nil {
			logger.Warn().Err(err).Msg("populate")
		}
	}
	populate()

	pilot := &autopilot{}
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case name, ok := <-reloads:
			if ok {
				if err := g.ReloadPrefab(name); err != nil {
					logger.Error().Err(err).Str("file", name).Msg("reload")
				} else {
					logger.Info().Str("file", name).Msg("prefab reloaded")
				}
			}
		default:
		}

		snap := g.Tick(pilot.next(g), cfg.Dt)
		for _, evt := range g.DrainEvents() {
			logger.Info().
				Str("event", string(evt.Kind)).
				Uint64("frame", evt.Frame).
				Int("value", evt.Value).
				Str("label", evt.Label).
				Msg("event")
		}

		if cfg.PrintEvery > 0 && i%cfg.PrintEvery == 0 {
			logger.Info().
				Uint64("frame", snap.Frame).
				Int("score", snap.Score).
				Int("combo", snap.ComboCount).
				Str("tier", snap.TierName).
				Int("health", snap.Health).
				Bool("riding", snap.Riding).
				Bool("rampage", snap.Rampage.Active).
				Int("stars", snap.WantedStars).
				Int("markers", len(snap.Markers)).
				Msg("tick")
		}

		if snap.GameOver {
			logger.Info().Int("score", snap.Score).Msg("restarting")
			if err := g.Reset(); err != nil {
				logger.Fatal().Err(err).Msg("reset")
			}
			populate()
		}
	}
}

// autopilot walks the avatar toward the nearest living target, swings when
// close and climbs into any vehicle left waiting for it.
type autopilot struct {
	frame int
}

func (p *autopilot) next(g *game.Game) game.Input {
	p.frame++
	ctx := g.Context()
	apos, ok := ctx.PositionOf(ctx.Avatar)
	if !ok {
		return game.Input{}
	}

	goal, dist, found := cp.Vector{}, 0.0, false
	if vpos, ok := ctx.PositionOf(ctx.Progression.Awaiting); ok {
		goal, dist, found = vpos, vpos.Sub(apos).Length(), true
	} else {
		ecs.ForEach3(ctx.World, component.KindTagComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tag *component.KindTag, h *component.Health, tr *component.Transform) {
			if tag.Kind != component.KindPedestrian && tag.Kind != component.KindHostile {
				return
			}
			if !h.IsAlive() {
				return
			}
			d := tr.Position.Sub(apos).Length()
			if !found || d < dist {
				goal, dist, found = tr.Position, d, true
			}
		})
	}

	in := game.Input{Enter: true, Fire: p.frame%45 == 0}
	if !found {
		return in
	}
	dir := goal.Sub(apos)
	in.Right = dir.X > 0.3
	in.Left = dir.X < -0.3
	in.Up = dir.Y > 0.3
	in.Down = dir.Y < -0.3
	in.Attack = dist < 2
	return in
}
