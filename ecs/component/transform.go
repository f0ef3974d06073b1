package component

import "github.com/jakecoffman/cp"

// Transform is the authoritative world position of an entity on the ground
// plane. Heading is in radians, 0 along +X.
type Transform struct {
	Position cp.Vector
	Heading  float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is in world units per second before time scaling.
type Velocity struct {
	Linear cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()
