package kinematics

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// PoseConstraintList is the default ConstraintList: each objective
// contributes its set Position (3 components) and/or Orientation
// (1 component, a planar heading) to a flat WorkspacePoint, in
// objective order. Interpolation and distance are the ordinary
// Euclidean geodesic over that flat vector, which is exact for
// straight-line Cartesian segments in position and a reasonable
// linear approximation for heading.
type PoseConstraintList struct {
	objectives []*Objective
}

// NewPoseConstraintList wraps objectives as a ConstraintList.
func NewPoseConstraintList(objectives []*Objective) *PoseConstraintList {
	return &PoseConstraintList{objectives: objectives}
}

func (c *PoseConstraintList) Objectives() []*Objective { return c.objectives }

func (c *PoseConstraintList) width(o *Objective) int {
	n := 0
	if o.Position != nil {
		n += 3
	}
	if o.Orientation != nil {
		n++
	}
	return n
}

// totalWidth is the flat WorkspacePoint length this constraint list reads
// and writes: the sum of each objective's width, in objective order.
func (c *PoseConstraintList) totalWidth() int {
	n := 0
	for _, o := range c.objectives {
		n += c.width(o)
	}
	return n
}

// GetConfig is a pure function of the objectives' current targets; the
// robot argument is accepted to satisfy the ConstraintList contract
// (spec §3 derives x "from a constraint list", not from the robot
// directly, but some callers key workspace points off robot state via
// forward kinematics — this implementation's objectives already carry
// their target, so robot is unused here).
func (c *PoseConstraintList) GetConfig(_ Robot) WorkspacePoint {
	x := make(WorkspacePoint, 0, c.totalWidth())
	for _, o := range c.objectives {
		if o.Position != nil {
			x = append(x, o.Position.X, o.Position.Y, o.Position.Z)
		}
		if o.Orientation != nil {
			x = append(x, *o.Orientation)
		}
	}
	return x
}

func (c *PoseConstraintList) SetConfig(x WorkspacePoint) {
	if want := c.totalWidth(); len(x) != want {
		panic(fmt.Sprintf("kinematics: SetConfig got a %d-component WorkspacePoint, constraint list needs %d", len(x), want))
	}
	i := 0
	for _, o := range c.objectives {
		if o.Position != nil {
			o.Position.X, o.Position.Y, o.Position.Z = x[i], x[i+1], x[i+2]
			i += 3
		}
		if o.Orientation != nil {
			*o.Orientation = x[i]
			i++
		}
	}
}

func (c *PoseConstraintList) Interpolate(a, b WorkspacePoint, u float64) WorkspacePoint {
	out := make(WorkspacePoint, len(a))
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*u
	}
	return out
}

func (c *PoseConstraintList) Distance(a, b WorkspacePoint) float64 {
	var av, bv r3.Vector
	sumSq := 0.0
	i := 0
	for _, o := range c.objectives {
		if o.Position != nil {
			av = r3.Vector{X: a[i], Y: a[i+1], Z: a[i+2]}
			bv = r3.Vector{X: b[i], Y: b[i+1], Z: b[i+2]}
			d := av.Sub(bv).Norm()
			sumSq += d * d
			i += 3
		}
		if o.Orientation != nil {
			d := a[i] - b[i]
			sumSq += d * d
			i++
		}
	}
	return math.Sqrt(sumSq)
}
