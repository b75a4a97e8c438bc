package planarfixture

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/cartesianpath/kinematics"
)

func TestArmTipAtZeroConfig(t *testing.T) {
	a := NewArm([]float64{1, 1})
	tip := a.Tip(a.GetConfig())
	test.That(t, math.Abs(tip.X-2) < 1e-9, test.ShouldBeTrue)
	test.That(t, math.Abs(tip.Y) < 1e-9, test.ShouldBeTrue)
}

func TestArmTipQuarterTurn(t *testing.T) {
	a := NewArm([]float64{1, 1})
	q := kinematics.FloatsToConfiguration([]float64{math.Pi / 2, 0})
	tip := a.Tip(q)
	test.That(t, math.Abs(tip.X) < 1e-9, test.ShouldBeTrue)
	test.That(t, math.Abs(tip.Y-2) < 1e-9, test.ShouldBeTrue)
}

func TestArmInterpolateIsLinearPerJoint(t *testing.T) {
	a := NewArm([]float64{1, 1})
	x := kinematics.FloatsToConfiguration([]float64{0, 0})
	y := kinematics.FloatsToConfiguration([]float64{2, 4})
	mid := a.Interpolate(x, y, 0.5)
	test.That(t, mid.Floats(), test.ShouldResemble, []float64{1, 2})
}

func TestArmReachIsLengthSum(t *testing.T) {
	a := NewArm([]float64{1, 1, 1})
	max, _ := a.Reach()
	test.That(t, max, test.ShouldEqual, 3.0)
}

func TestDLSSolverReachesReachablePosition(t *testing.T) {
	a := NewArm([]float64{1, 1})
	s := NewSolver(a)
	target := r3.Vector{X: 1.5, Y: 0.5}
	obj := kinematics.NewPositionObjective(kinematics.LinkIndex(0), target)
	s.Add(obj)
	a.SetConfig(kinematics.FloatsToConfiguration([]float64{0.3, 0.3}))

	ok := s.Solve(context.Background())
	test.That(t, ok, test.ShouldBeTrue)

	tip := a.Tip(a.GetConfig())
	test.That(t, tip.Sub(target).Norm() < 1e-3, test.ShouldBeTrue)
}

func TestDLSSolverResidualTracksDistanceToTarget(t *testing.T) {
	a := NewArm([]float64{1, 1})
	s := NewSolver(a)
	target := r3.Vector{X: 2, Y: 0}
	s.Add(kinematics.NewPositionObjective(kinematics.LinkIndex(0), target))
	a.SetConfig(kinematics.FloatsToConfiguration([]float64{0, 0}))
	test.That(t, s.Residual() < 1e-9, test.ShouldBeTrue)
	test.That(t, s.IsSolved(), test.ShouldBeTrue)
}
