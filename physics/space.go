package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampage/ecs/component"
)

const (
	// DefaultEpsilon is how far an entity that starts a tick inside an
	// obstacle may be pushed out per tick.
	DefaultEpsilon = 0.05

	allCategories = ^uint(0)

	penetrationTolerance = 1e-4
	maxSubsteps          = 64
	relaxIterations      = 4
)

// Space owns the chipmunk space used purely as a query engine: static level
// geometry plus one kinematic circle per mobile entity. It is never stepped;
// the movement resolver moves bodies directly.
type Space struct {
	space   *cp.Space
	layers  map[*cp.Shape]component.CollisionLayer
	radii   map[*cp.Shape]float64
	bodies  map[*cp.Body]struct{}
	grounds int

	Epsilon float64
}

// NewSpace creates an empty collision world.
func NewSpace() *Space {
	space := cp.NewSpace()
	space.Iterations = 10
	return &Space{
		space:   space,
		layers:  make(map[*cp.Shape]component.CollisionLayer),
		radii:   make(map[*cp.Shape]float64),
		bodies:  make(map[*cp.Body]struct{}),
		Epsilon: DefaultEpsilon,
	}
}

func filterFor(layer component.CollisionLayer) cp.ShapeFilter {
	return cp.ShapeFilter{Group: 0, Categories: layer.Category, Mask: layer.Mask}
}

func (s *Space) addStatic(shape *cp.Shape, category uint) *cp.Shape {
	layer := component.CollisionLayer{Category: category, Mask: allCategories}
	shape.SetFilter(filterFor(layer))
	shape.SetFriction(0)
	s.space.AddShape(shape)
	s.layers[shape] = layer
	return shape
}

// AddBuilding adds a solid axis-aligned block.
func (s *Space) AddBuilding(bb cp.BB) *cp.Shape {
	if s == nil {
		return nil
	}
	return s.addStatic(cp.NewBox2(s.space.StaticBody, bb, 0), CategoryBuilding)
}

// AddGround adds a walkable ground region. Ground never blocks planar motion;
// movers whose mask includes it may not leave it.
func (s *Space) AddGround(bb cp.BB) *cp.Shape {
	if s == nil {
		return nil
	}
	s.grounds++
	return s.addStatic(cp.NewBox2(s.space.StaticBody, bb, 0), CategoryGround)
}

// AddBounds walls off the rectangle [0,w]x[0,h] with building segments.
func (s *Space) AddBounds(w, h float64) {
	if s == nil || w <= 0 || h <= 0 {
		return
	}
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: w, Y: 0}},
		{a: cp.Vector{X: 0, Y: h}, b: cp.Vector{X: w, Y: h}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: h}},
		{a: cp.Vector{X: w, Y: 0}, b: cp.Vector{X: w, Y: h}},
	}
	for _, seg := range segments {
		s.addStatic(cp.NewSegment(s.space.StaticBody, seg.a, seg.b, 0.5), CategoryBuilding)
	}
}

// HasGround reports whether any ground geometry exists. A world without
// ground is treated as flat ground everywhere.
func (s *Space) HasGround() bool {
	return s != nil && s.grounds > 0
}

// AddBody creates a kinematic circle for a mobile entity.
func (s *Space) AddBody(pos cp.Vector, radius float64, layer component.CollisionLayer) (*cp.Body, *cp.Shape) {
	if s == nil {
		return nil, nil
	}
	if radius <= 0 {
		radius = 0.5
	}
	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFilter(filterFor(layer))
	shape.SetFriction(0)
	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.bodies[body] = struct{}{}
	s.layers[shape] = layer
	s.radii[shape] = radius
	return body, shape
}

// RemoveBody drops a mobile entity's body and shape.
func (s *Space) RemoveBody(body *cp.Body, shape *cp.Shape) {
	if s == nil {
		return
	}
	if shape != nil {
		if _, ok := s.layers[shape]; ok {
			s.space.RemoveShape(shape)
			delete(s.layers, shape)
			delete(s.radii, shape)
		}
	}
	if body != nil {
		if _, ok := s.bodies[body]; ok {
			s.space.RemoveBody(body)
			delete(s.bodies, body)
		}
	}
}

// Commit moves a body to its resolved position so later queries in the same
// tick see it there. Chipmunk only refreshes dynamic index leaves while
// stepping, so the shape is re-added to rebuild its cached bounds.
func (s *Space) Commit(shape *cp.Shape, pos cp.Vector) {
	if s == nil || shape == nil || shape.Body() == nil {
		return
	}
	shape.Body().SetPosition(pos)
	if _, ok := s.layers[shape]; !ok || shape.Space() != s.space {
		shape.CacheBB()
		return
	}
	s.space.RemoveShape(shape)
	s.space.AddShape(shape)
}

func (s *Space) categoryOf(shape *cp.Shape) uint {
	if layer, ok := s.layers[shape]; ok {
		return layer.Category
	}
	return 0
}
