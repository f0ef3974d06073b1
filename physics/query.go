package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Hit is the first obstacle along a cast.
type Hit struct {
	Point    cp.Vector
	Normal   cp.Vector
	Distance float64
	Category uint
}

func queryFilter(mask uint) cp.ShapeFilter {
	return cp.ShapeFilter{Group: 0, Categories: allCategories, Mask: mask}
}

// CastRay returns the first shape whose category intersects mask along
// origin + dir*t for t in [0, maxDistance].
func (s *Space) CastRay(origin, dir cp.Vector, maxDistance float64, mask uint) (Hit, bool) {
	return s.CastCircle(origin, dir, maxDistance, 0, mask)
}

// CastCircle is CastRay swept by a radius.
func (s *Space) CastCircle(origin, dir cp.Vector, maxDistance, radius float64, mask uint) (Hit, bool) {
	if s == nil || maxDistance <= 0 {
		return Hit{}, false
	}
	l := dir.Length()
	if l == 0 {
		return Hit{}, false
	}
	dir = dir.Mult(1 / l)
	end := origin.Add(dir.Mult(maxDistance))
	info := s.space.SegmentQueryFirst(origin, end, radius, queryFilter(mask))
	if info.Shape == nil {
		return Hit{}, false
	}
	return Hit{
		Point:    info.Point,
		Normal:   info.Normal,
		Distance: maxDistance * info.Alpha,
		Category: s.categoryOf(info.Shape),
	}, true
}

// PathClear reports whether a circle of radius can travel in a straight line
// from a to b without touching anything in mask.
func (s *Space) PathClear(a, b cp.Vector, radius float64, mask uint) bool {
	d := b.Sub(a)
	if d.Length() == 0 {
		return !s.Overlaps(a, radius, mask)
	}
	_, hit := s.CastCircle(a, d, d.Length(), radius, mask)
	return !hit
}

// ProbeGround is the ground-plane stand-in for a downward cast: it reports
// whether walkable ground exists under point.
func (s *Space) ProbeGround(point cp.Vector) bool {
	if s == nil {
		return false
	}
	if !s.HasGround() {
		return true
	}
	info := s.space.PointQueryNearest(point, 0, queryFilter(CategoryGround))
	return info != nil && info.Shape != nil && info.Distance <= 0
}

// Overlaps reports whether a circle at point would touch any shape in mask.
func (s *Space) Overlaps(point cp.Vector, radius float64, mask uint) bool {
	if s == nil {
		return false
	}
	info := s.space.PointQueryNearest(point, radius, queryFilter(mask))
	return info != nil && info.Shape != nil && info.Distance < radius
}

// Penetration returns how deep a body currently sits inside obstacles its
// mask collides with (ground excluded). Zero means clear.
func (s *Space) Penetration(shape *cp.Shape, mask uint) float64 {
	if s == nil || shape == nil || shape.Body() == nil {
		return 0
	}
	deepest := 0.0
	for _, c := range s.contactsAt(shape, shape.Body().Position(), mask) {
		deepest = math.Max(deepest, c.depth)
	}
	return deepest
}
