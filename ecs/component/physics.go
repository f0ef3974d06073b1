package component

import "github.com/jakecoffman/cp"

// Collider describes the circle shape an entity wants in the collision world.
// Ready is set by the asset layer once the entity's model is loaded; bodies
// are only created for ready colliders.
type Collider struct {
	Radius float64
	Ready  bool
}

var ColliderComponent = NewComponent[Collider]()

// PhysicsBody stores the chipmunk runtime handles for a ready collider.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Riding marks the avatar while it sits in the active vehicle. A riding
// avatar skips movement resolution and follows the vehicle instead.
type Riding struct{}

var RidingComponent = NewComponent[Riding]()
