// Package kinematics defines the external-collaborator interfaces that the
// resolve package is written against: a robot kinematic model, an IK
// solver, and a constraint list that doubles as a workspace-parameter
// helper. Concrete robots, solvers, and IK implementations are out of
// scope for this module (see spec §1); packages under this module only
// implement small analytic fixtures used by tests.
package kinematics

import "strconv"

// Input is a single joint value. Mirrors referenceframe.Input's shape in
// the teacher so configurations read the same way in tests:
// []Input{{1.}, {2.}}.
type Input struct {
	Value float64
}

// Configuration is an ordered sequence of joint values, length equal to
// the robot's DOF.
type Configuration []Input

// Clone returns an independent copy.
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	copy(out, c)
	return out
}

// Floats extracts the raw joint values.
func (c Configuration) Floats() []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = v.Value
	}
	return out
}

// FloatsToConfiguration is the inverse of Configuration.Floats.
func FloatsToConfiguration(vs []float64) Configuration {
	out := make(Configuration, len(vs))
	for i, v := range vs {
		out[i] = Input{Value: v}
	}
	return out
}

// LinkID names a robot link, either by index or by name. It is one of
// the two tagged-variant shapes a caller may supply in a constraint
// list (spec §9 "Polymorphic constraint identifiers").
type LinkID struct {
	name    string
	index   int
	byIndex bool
}

// LinkIndex constructs a LinkID from a numeric link index.
func LinkIndex(i int) LinkID { return LinkID{index: i, byIndex: true} }

// LinkName constructs a LinkID from a link name.
func LinkName(n string) LinkID { return LinkID{name: n} }

// String renders the identifier for logging.
func (l LinkID) String() string {
	if l.byIndex {
		return "#" + strconv.Itoa(l.index)
	}
	return l.name
}
