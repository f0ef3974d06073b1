package component

import "github.com/jakecoffman/cp"

// BehaviorKind names one steering contribution.
type BehaviorKind string

const (
	BehaviorSeek       BehaviorKind = "seek"
	BehaviorFlee       BehaviorKind = "flee"
	BehaviorSeparation BehaviorKind = "separation"
	BehaviorAvoid      BehaviorKind = "avoid"
)

// Behavior is plain data: the steering fold interprets Kind with Weight and
// Radius (neighbour radius, panic radius or lookahead distance).
type Behavior struct {
	Kind   BehaviorKind
	Weight float64
	Radius float64
}

// Steering is the per-AI transient context. Behaviors and Target are rebuilt
// every tick from Base or Script; TrackedPosition is overwritten from the
// transform before use.
type Steering struct {
	Profile         string
	Script          string
	Base            []Behavior
	Behaviors       []Behavior
	Target          cp.Vector
	HasTarget       bool
	TrackedPosition cp.Vector
	MaxSpeed        float64
	MaxAccel        float64
	Disabled        bool
}

// Disable is terminal: the entity never steers again.
func (s *Steering) Disable() {
	if s == nil {
		return
	}
	s.Disabled = true
	s.MaxSpeed = 0
	s.Behaviors = nil
	s.Base = nil
	s.Script = ""
	s.HasTarget = false
}

var SteeringComponent = NewComponent[Steering]()
