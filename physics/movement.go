package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

type contact struct {
	other  *cp.Shape
	normal cp.Vector
	depth  float64
}

// contactsAt places the shape at pos and lists penetrating contacts with
// shapes in mask. Ground is support, not an obstacle, and is never reported.
// The body is left at pos; callers restore it.
func (s *Space) contactsAt(shape *cp.Shape, pos cp.Vector, mask uint) []contact {
	layer := s.layers[shape]
	query := layer
	query.Mask = mask &^ CategoryGround
	shape.SetFilter(filterFor(query))
	defer shape.SetFilter(filterFor(layer))

	shape.Body().SetPosition(pos)

	var out []contact
	s.space.ShapeQuery(shape, func(other *cp.Shape, points *cp.ContactPointSet) {
		if other == shape || points == nil || points.Count == 0 {
			return
		}
		if s.categoryOf(other)&query.Mask == 0 {
			return
		}
		minDist := math.Inf(1)
		for i := 0; i < points.Count; i++ {
			minDist = math.Min(minDist, points.Points[i].Distance)
		}
		if minDist >= 0 {
			return
		}
		out = append(out, contact{other: other, normal: points.Normal, depth: -minDist})
	})
	return out
}

// pushOut sums the corrections needed to bring every contact back to its
// allowed depth. allowed holds the tolerated depth for obstacles the shape
// already overlapped when the move began.
func (s *Space) pushOut(shape *cp.Shape, pos cp.Vector, mask uint, allowed map[*cp.Shape]float64) (cp.Vector, float64) {
	var push cp.Vector
	worst := 0.0
	for _, c := range s.contactsAt(shape, pos, mask) {
		excess := c.depth - allowed[c.other]
		if excess <= penetrationTolerance {
			continue
		}
		// normal points from the mover into the obstacle
		push = push.Add(c.normal.Mult(-excess))
		worst = math.Max(worst, excess)
	}
	return push, worst
}

func (s *Space) relax(shape *cp.Shape, pos cp.Vector, mask uint, allowed map[*cp.Shape]float64) (cp.Vector, bool) {
	for i := 0; i < relaxIterations; i++ {
		push, worst := s.pushOut(shape, pos, mask, allowed)
		if worst <= penetrationTolerance {
			return pos, true
		}
		pos = pos.Add(push)
	}
	_, worst := s.pushOut(shape, pos, mask, allowed)
	return pos, worst <= penetrationTolerance
}

// ResolveCharacterMovement clamps or deflects desired against obstacles
// whose category intersects mask and returns the corrected displacement.
// Blocking is not an error: a fully blocked move returns the zero vector.
//
// Long moves are sub-stepped at half the shape radius so nothing tunnels.
// Obstacles the shape already overlaps are eased out by at most Epsilon per
// call and may never be pushed deeper. Movers whose mask includes ground
// stay on ground, sliding along its edge when possible.
func (s *Space) ResolveCharacterMovement(shape *cp.Shape, desired cp.Vector, mask uint) cp.Vector {
	if s == nil || shape == nil || shape.Body() == nil {
		return cp.Vector{}
	}
	if _, ok := s.layers[shape]; !ok {
		return cp.Vector{}
	}
	body := shape.Body()
	start := body.Position()
	defer func() {
		body.SetPosition(start)
		shape.CacheBB()
	}()

	allowed := make(map[*cp.Shape]float64)
	for _, c := range s.contactsAt(shape, start, mask) {
		allowed[c.other] = math.Max(0, c.depth-s.Epsilon)
	}

	pos := start
	if len(allowed) > 0 {
		push, _ := s.pushOut(shape, start, mask, allowed)
		if l := push.Length(); l > s.Epsilon {
			push = push.Mult(s.Epsilon / l)
		}
		pos = pos.Add(push)
	}

	dist := desired.Length()
	if dist == 0 {
		return pos.Sub(start)
	}
	radius := s.radii[shape]
	if radius <= 0 {
		radius = 0.5
	}
	steps := int(math.Ceil(dist / (radius * 0.5)))
	if steps < 1 {
		steps = 1
	}
	if steps > maxSubsteps {
		steps = maxSubsteps
	}
	step := desired.Mult(1 / float64(steps))
	keepGround := mask&CategoryGround != 0 && s.grounds > 0

	for i := 0; i < steps; i++ {
		next := pos.Add(step)
		if keepGround && !s.ProbeGround(next) {
			next, ok := s.slideOnGround(pos, step)
			if !ok {
				break
			}
			pos = s.settle(shape, pos, next, mask, allowed, keepGround)
			continue
		}
		pos = s.settle(shape, pos, next, mask, allowed, keepGround)
	}
	return pos.Sub(start)
}

// settle relaxes next out of obstacles; if that fails, or the relaxed point
// leaves the ground, the mover stays at prev.
func (s *Space) settle(shape *cp.Shape, prev, next cp.Vector, mask uint, allowed map[*cp.Shape]float64, keepGround bool) cp.Vector {
	resolved, ok := s.relax(shape, next, mask, allowed)
	if !ok {
		return prev
	}
	if keepGround && !s.ProbeGround(resolved) {
		return prev
	}
	return resolved
}

func (s *Space) slideOnGround(pos, step cp.Vector) (cp.Vector, bool) {
	if step.X != 0 {
		if alt := pos.Add(cp.Vector{X: step.X}); s.ProbeGround(alt) {
			return alt, true
		}
	}
	if step.Y != 0 {
		if alt := pos.Add(cp.Vector{Y: step.Y}); s.ProbeGround(alt) {
			return alt, true
		}
	}
	return pos, false
}
