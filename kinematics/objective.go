package kinematics

import "github.com/golang/geo/r3"

// Objective binds one robot link to a pose target. Only the components
// that are non-nil are constrained: a full-transform objective sets both
// Position and Orientation, a position-only objective sets only
// Position, a rotation-only objective sets only Orientation.
type Objective struct {
	Link        LinkID
	Position    *r3.Vector
	Orientation *float64 // planar heading, radians; a stand-in for a full 3D orientation
}

// NewPositionObjective builds a position-only IK objective on link.
func NewPositionObjective(link LinkID, target r3.Vector) *Objective {
	return &Objective{Link: link, Position: &target}
}

// NewPoseObjective builds a full-transform IK objective on link.
func NewPoseObjective(link LinkID, target r3.Vector, heading float64) *Objective {
	return &Objective{Link: link, Position: &target, Orientation: &heading}
}

// NewIdentityObjective builds an objective at the origin with identity
// rotation, used by the constraint normalizer (spec §4.A) when a bare
// link identifier is supplied in place of a pose objective: the concrete
// pose is irrelevant because the solver is re-targeted before every
// solve.
func NewIdentityObjective(link LinkID) *Objective {
	zero := 0.0
	return &Objective{Link: link, Position: &r3.Vector{}, Orientation: &zero}
}

// ConstraintElement is the tagged-variant shape of a single entry in a
// caller-supplied constraint list: either a LinkID or an *Objective.
type ConstraintElement interface {
	isConstraintElement()
}

func (LinkID) isConstraintElement()     {}
func (*Objective) isConstraintElement() {}
