package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moverLayer(mask uint) component.CollisionLayer {
	return component.CollisionLayer{Category: CategoryAvatar, Mask: mask}
}

func TestMergeTiles(t *testing.T) {
	tests := []struct {
		name  string
		layer []int
		w, h  int
		want  int
	}{
		{name: "empty", layer: []int{0, 0, 0, 0}, w: 2, h: 2, want: 0},
		{name: "full square", layer: []int{1, 1, 1, 1}, w: 2, h: 2, want: 1},
		{name: "l shape", layer: []int{1, 0, 1, 1}, w: 2, h: 2, want: 2},
		{name: "size mismatch", layer: []int{1}, w: 2, h: 2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, mergeTiles(tt.layer, tt.w, tt.h, 1), tt.want)
		})
	}
}

func TestMergeTilesCoversArea(t *testing.T) {
	boxes := mergeTiles([]int{1, 1, 1, 1, 1, 1}, 3, 2, 2)
	require.Len(t, boxes, 1)
	assert.Equal(t, cp.BB{L: 0, B: 0, R: 6, T: 4}, boxes[0])
}

func TestResolveFreeMovement(t *testing.T) {
	s := NewSpace()
	_, shape := s.AddBody(cp.Vector{}, 0.5, moverLayer(CategoryBuilding))

	got := s.ResolveCharacterMovement(shape, cp.Vector{X: 3, Y: -2}, CategoryBuilding)
	assert.InDelta(t, 3, got.X, 1e-9)
	assert.InDelta(t, -2, got.Y, 1e-9)
	assert.Equal(t, cp.Vector{}, shape.Body().Position(), "resolver must not commit")
}

func TestResolveStopsAtBuilding(t *testing.T) {
	s := NewSpace()
	s.AddBuilding(cp.BB{L: 2, B: -5, R: 4, T: 5})
	_, shape := s.AddBody(cp.Vector{}, 0.5, moverLayer(CategoryBuilding))

	got := s.ResolveCharacterMovement(shape, cp.Vector{X: 10}, CategoryBuilding)
	assert.LessOrEqual(t, got.X, 1.5+1e-3)
	assert.Greater(t, got.X, 1.0)

	s.Commit(shape, got)
	assert.LessOrEqual(t, s.Penetration(shape, CategoryBuilding), 1e-3)
}

func TestResolveIgnoresUnmaskedObstacles(t *testing.T) {
	s := NewSpace()
	s.AddBuilding(cp.BB{L: 2, B: -5, R: 4, T: 5})
	_, shape := s.AddBody(cp.Vector{}, 0.5, moverLayer(CategoryVehicle))

	got := s.ResolveCharacterMovement(shape, cp.Vector{X: 10}, CategoryVehicle)
	assert.InDelta(t, 10, got.X, 1e-9)
}

func TestResolveDoesNotTunnel(t *testing.T) {
	s := NewSpace()
	s.AddBuilding(cp.BB{L: 5, B: -5, R: 5.2, T: 5})
	_, shape := s.AddBody(cp.Vector{}, 0.5, moverLayer(CategoryBuilding))

	got := s.ResolveCharacterMovement(shape, cp.Vector{X: 20}, CategoryBuilding)
	assert.LessOrEqual(t, got.X, 4.5+1e-3)
}

func TestResolveDepenetratesByEpsilon(t *testing.T) {
	s := NewSpace()
	s.AddBuilding(cp.BB{L: -2, B: -5, R: 2, T: 5})
	_, shape := s.AddBody(cp.Vector{X: 2.3}, 0.5, moverLayer(CategoryBuilding))
	before := s.Penetration(shape, CategoryBuilding)
	require.InDelta(t, 0.2, before, 1e-3)

	got := s.ResolveCharacterMovement(shape, cp.Vector{}, CategoryBuilding)
	assert.InDelta(t, s.Epsilon, got.X, 1e-3)

	got = s.ResolveCharacterMovement(shape, cp.Vector{X: -1}, CategoryBuilding)
	s.Commit(shape, shape.Body().Position().Add(got))
	assert.LessOrEqual(t, s.Penetration(shape, CategoryBuilding), before+1e-3, "overlap must never deepen")
}

func TestResolveKeepsGroundedMoversOnGround(t *testing.T) {
	s := NewSpace()
	s.AddGround(cp.BB{L: 0, B: 0, R: 10, T: 10})
	mask := CategoryBuilding | CategoryGround
	_, shape := s.AddBody(cp.Vector{X: 5, Y: 5}, 0.5, moverLayer(mask))

	got := s.ResolveCharacterMovement(shape, cp.Vector{X: 20, Y: 2}, mask)
	end := cp.Vector{X: 5, Y: 5}.Add(got)
	assert.LessOrEqual(t, end.X, 10.0)
	assert.InDelta(t, 7, end.Y, 1e-6, "blocked axis slides along the edge")
	assert.True(t, s.ProbeGround(end))

	projectile := moverLayer(CategoryBuilding)
	_, flying := s.AddBody(cp.Vector{X: 5, Y: 5}, 0.5, projectile)
	got = s.ResolveCharacterMovement(flying, cp.Vector{X: 20}, CategoryBuilding)
	assert.InDelta(t, 20, got.X, 1e-9, "movers without ground in mask ignore it")
}

func TestProbeGround(t *testing.T) {
	s := NewSpace()
	assert.True(t, s.ProbeGround(cp.Vector{X: 100, Y: -100}), "no ground geometry means flat ground")

	s.AddGround(cp.BB{L: 0, B: 0, R: 4, T: 4})
	assert.True(t, s.HasGround())
	assert.True(t, s.ProbeGround(cp.Vector{X: 2, Y: 2}))
	assert.False(t, s.ProbeGround(cp.Vector{X: 6, Y: 2}))
}

func TestCastRay(t *testing.T) {
	s := NewSpace()
	s.AddBuilding(cp.BB{L: 5, B: -1, R: 6, T: 1})

	hit, ok := s.CastRay(cp.Vector{}, cp.Vector{X: 1}, 10, CategoryBuilding)
	require.True(t, ok)
	assert.Equal(t, CategoryBuilding, hit.Category)
	assert.InDelta(t, 5, hit.Distance, 1e-6)
	assert.InDelta(t, -1, hit.Normal.X, 1e-6)

	_, ok = s.CastRay(cp.Vector{}, cp.Vector{X: 1}, 10, CategoryVehicle)
	assert.False(t, ok, "mask excludes buildings")

	_, ok = s.CastRay(cp.Vector{}, cp.Vector{X: 1}, 4, CategoryBuilding)
	assert.False(t, ok, "out of range")

	_, ok = s.CastRay(cp.Vector{}, cp.Vector{}, 4, CategoryBuilding)
	assert.False(t, ok, "zero direction")
}

func TestPathClear(t *testing.T) {
	s := NewSpace()
	s.AddBuilding(cp.BB{L: 5, B: -1, R: 6, T: 1})

	assert.False(t, s.PathClear(cp.Vector{}, cp.Vector{X: 10}, 0.5, CategoryBuilding))
	assert.True(t, s.PathClear(cp.Vector{}, cp.Vector{Y: 10}, 0.5, CategoryBuilding))
	assert.False(t, s.PathClear(cp.Vector{X: 5.5}, cp.Vector{X: 5.5}, 0.5, CategoryBuilding))
}

func TestRemoveBodyTwice(t *testing.T) {
	s := NewSpace()
	body, shape := s.AddBody(cp.Vector{}, 1, moverLayer(CategoryBuilding))
	s.RemoveBody(body, shape)
	s.RemoveBody(body, shape)
	assert.Equal(t, cp.Vector{}, s.ResolveCharacterMovement(shape, cp.Vector{X: 1}, CategoryBuilding))
}

func TestBuildLevel(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("city.json")
	require.NoError(t, err)

	s := NewSpace()
	n := s.BuildLevel(lvl)
	assert.Greater(t, n, 4)
	assert.True(t, s.HasGround())

	sx, sy := lvl.TileCenter(lvl.Spawn)
	spawn := cp.Vector{X: sx, Y: sy}
	assert.True(t, s.ProbeGround(spawn))
	assert.False(t, s.Overlaps(spawn, 0.5, CategoryBuilding))
}
