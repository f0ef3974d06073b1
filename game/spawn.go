package game

import (
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/physics"
)

// SpawnPedestrian adds a pedestrian at pos.
func (g *Game) SpawnPedestrian(pos cp.Vector) (ecs.Entity, error) {
	return g.ctx.Builder.NewPedestrian(g.ctx.World, pos)
}

// SpawnHostile adds a hostile at pos.
func (g *Game) SpawnHostile(pos cp.Vector) (ecs.Entity, error) {
	return g.ctx.Builder.NewHostile(g.ctx.World, pos)
}

// Populate scatters a crowd over open ground, away from the avatar. The
// same rng seed gives the same crowd.
func (g *Game) Populate(rng *rand.Rand, pedestrians, hostiles int) error {
	for i := 0; i < pedestrians+hostiles; i++ {
		pos, ok := g.openSpot(rng)
		if !ok {
			return fmt.Errorf("game: populate: no open ground after %d actors", i)
		}
		var err error
		if i < pedestrians {
			_, err = g.SpawnPedestrian(pos)
		} else {
			_, err = g.SpawnHostile(pos)
		}
		if err != nil {
			return fmt.Errorf("game: populate: %w", err)
		}
	}
	return nil
}

const (
	openSpotAttempts = 64
	avatarClearance  = 6.0
)

func (g *Game) openSpot(rng *rand.Rand) (cp.Vector, bool) {
	w, h := g.level.Size()
	avatar, _ := g.ctx.PositionOf(g.ctx.Avatar)
	for i := 0; i < openSpotAttempts; i++ {
		p := cp.Vector{X: rng.Float64() * w, Y: rng.Float64() * h}
		if p.Sub(avatar).Length() < avatarClearance {
			continue
		}
		if !g.ctx.Space.ProbeGround(p) || g.ctx.Space.Overlaps(p, 0.6, physics.CategoryBuilding) {
			continue
		}
		return p, true
	}
	return cp.Vector{}, false
}
