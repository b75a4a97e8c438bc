package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPoseConstraintListGetSetConfig(t *testing.T) {
	pos := r3.Vector{X: 1, Y: 2, Z: 3}
	heading := 0.5
	obj := NewPoseObjective(LinkIndex(0), pos, heading)
	c := NewPoseConstraintList([]*Objective{obj})

	x := c.GetConfig(nil)
	test.That(t, x, test.ShouldResemble, WorkspacePoint{1, 2, 3, 0.5})

	c.SetConfig(WorkspacePoint{4, 5, 6, 1.5})
	test.That(t, obj.Position.X, test.ShouldEqual, 4.0)
	test.That(t, *obj.Orientation, test.ShouldEqual, 1.5)
}

func TestPoseConstraintListInterpolateIsLinear(t *testing.T) {
	c := NewPoseConstraintList(nil)
	a := WorkspacePoint{0, 0, 0}
	b := WorkspacePoint{2, 4, 6}
	mid := c.Interpolate(a, b, 0.5)
	test.That(t, mid, test.ShouldResemble, WorkspacePoint{1, 2, 3})
}

func TestPoseConstraintListDistanceIsEuclidean(t *testing.T) {
	obj := NewPositionObjective(LinkIndex(0), r3.Vector{})
	c := NewPoseConstraintList([]*Objective{obj})
	a := WorkspacePoint{0, 0, 0}
	b := WorkspacePoint{3, 4, 0}
	d := c.Distance(a, b)
	test.That(t, math.Abs(d-5.0) < 1e-9, test.ShouldBeTrue)
}
