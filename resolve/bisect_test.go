package resolve_test

import (
	"context"
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/cartesianpath/kinematics"
	"go.viam.com/cartesianpath/kinematics/planarfixture"
	"go.viam.com/cartesianpath/resolve"
)

func TestBisectResolvesShortSegmentWithBoundedGrowth(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.2, 0.4}))
	opt := newTestOptions(t, arm)
	opt.Delta = 0.05

	a := kinematics.WorkspacePoint{1.7, 0.3, 0, 0}
	b := kinematics.WorkspacePoint{1.6, 0.5, 0, 0}

	traj, err := resolve.Bisect(context.Background(), arm, a, b, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(traj.Milestones) >= 2, test.ShouldBeTrue)

	last := traj.Milestones[len(traj.Milestones)-1]
	tip := arm.Tip(last)
	test.That(t, math.Abs(tip.X-1.6) < 1e-2, test.ShouldBeTrue)
	test.That(t, math.Abs(tip.Y-0.5) < 1e-2, test.ShouldBeTrue)
}

func TestBisectEachStepBelowDelta(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.3, 0.3}))
	opt := newTestOptions(t, arm)
	opt.Delta = 0.1

	a := kinematics.WorkspacePoint{1.6, 0.4, 0, 0}
	b := kinematics.WorkspacePoint{1.3, 0.8, 0, 0}

	traj, err := resolve.Bisect(context.Background(), arm, a, b, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldBeNil)
	for i := 1; i < len(traj.Milestones); i++ {
		d := arm.Distance(traj.Milestones[i-1], traj.Milestones[i])
		test.That(t, d <= opt.Delta, test.ShouldBeTrue)
	}
}

func TestBisectSameEndpointsReturnsTwoMilestones(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.2, 0.2}))
	opt := newTestOptions(t, arm)

	a := kinematics.WorkspacePoint{1.8, 0.4, 0, 0}
	traj, err := resolve.Bisect(context.Background(), arm, a, a, straightLineElements(), nil, resolve.FromRobot(), resolve.Config(arm.GetConfig()), nil, opt)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(traj.Milestones), test.ShouldEqual, 2)
}
