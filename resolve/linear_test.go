package resolve_test

import (
	"context"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/cartesianpath/kinematics"
	"go.viam.com/cartesianpath/kinematics/planarfixture"
	"go.viam.com/cartesianpath/resolve"
)

func newTestOptions(t *testing.T, arm *planarfixture.Arm) *resolve.Options {
	opt := resolve.NewOptions()
	opt.Logger = golog.NewTestLogger(t)
	opt.SolverFactory = planarfixture.SolverFactory(arm)
	return opt
}

func straightLineElements() []kinematics.ConstraintElement {
	return []kinematics.ConstraintElement{kinematics.LinkIndex(0)}
}

func TestLinearResolvesStraightLineSegment(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.1, 0.1}))
	opt := newTestOptions(t, arm)

	a := kinematics.WorkspacePoint{2, 0, 0, 0}
	b := kinematics.WorkspacePoint{1.8, 0.6, 0, 0}

	traj, err := resolve.Linear(context.Background(), arm, a, b, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Milestones, test.ShouldNotBeNil)

	last := traj.Milestones[len(traj.Milestones)-1]
	tip := arm.Tip(last)
	test.That(t, math.Abs(tip.X-1.8) < 1e-2, test.ShouldBeTrue)
	test.That(t, math.Abs(tip.Y-0.6) < 1e-2, test.ShouldBeTrue)
}

func TestLinearMonotonicTimes(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.2, 0.2}))
	opt := newTestOptions(t, arm)

	a := kinematics.WorkspacePoint{1.9, 0.2, 0, 0}
	b := kinematics.WorkspacePoint{1.7, 0.7, 0, 0}

	traj, err := resolve.Linear(context.Background(), arm, a, b, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldBeNil)
	for i := 1; i < len(traj.Times); i++ {
		test.That(t, traj.Times[i] > traj.Times[i-1], test.ShouldBeTrue)
	}
}

func TestLinearInfeasibleStartFailsImmediately(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0, 0}))
	opt := newTestOptions(t, arm)
	opt.FeasibilityTest = func(q kinematics.Configuration) bool { return false }

	a := kinematics.WorkspacePoint{2, 0, 0, 0}
	b := kinematics.WorkspacePoint{1.9, 0.3, 0, 0}
	_, err := resolve.Linear(context.Background(), arm, a, b, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLinearMaximizeReturnsPartialResultOnStall(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.1, 0.1}))
	opt := newTestOptions(t, arm)
	opt.Maximize = true
	// A target far outside the arm's reach forces a step stall past the
	// reachable annulus rather than an outright IK failure at a=start.
	max, _ := arm.Reach()
	far := r3.Vector{X: max + 5, Y: 0}

	a := kinematics.WorkspacePoint{1.9, 0.2, 0, 0}
	b := kinematics.WorkspacePoint{far.X, far.Y, 0, 0}
	traj, err := resolve.Linear(context.Background(), arm, a, b, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj, test.ShouldNotBeNil)
}

func TestLinearSameEndpointsReturnsOneMilestone(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.2, 0.2}))
	opt := newTestOptions(t, arm)

	a := kinematics.WorkspacePoint{1.8, 0.4, 0, 0}
	traj, err := resolve.Linear(context.Background(), arm, a, a, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(traj.Milestones), test.ShouldEqual, 1)
}
