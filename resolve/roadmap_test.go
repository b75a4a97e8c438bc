package resolve_test

import (
	"context"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"go.viam.com/cartesianpath/kinematics"
	"go.viam.com/cartesianpath/kinematics/planarfixture"
	"go.viam.com/cartesianpath/resolve"
)

func TestRoadmapFindsPathBetweenWaypoints(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.1, 0.1}))
	opt := newTestOptions(t, arm)
	opt.Method = resolve.MethodRoadmap
	opt.NumSamples = 200
	opt.Rand = rand.New(rand.NewSource(7))

	waypoints := []kinematics.WorkspacePoint{
		{1.9, 0.2, 0, 0},
		{1.6, 0.7, 0, 0},
	}
	traj, err := resolve.Path(context.Background(), arm, waypoints, nil, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(traj.Milestones) >= 2, test.ShouldBeTrue)
}

func TestRoadmapExhaustsBudgetOnUnreachableGoal(t *testing.T) {
	arm := planarfixture.NewArm([]float64{1, 1})
	arm.SetConfig(kinematics.FloatsToConfiguration([]float64{0.1, 0.1}))
	opt := newTestOptions(t, arm)
	opt.Method = resolve.MethodRoadmap
	opt.NumSamples = 25
	opt.Rand = rand.New(rand.NewSource(7))

	max, _ := arm.Reach()
	waypoints := []kinematics.WorkspacePoint{
		{1.9, 0.2, 0, 0},
		{max + 10, 0, 0, 0},
	}
	_, err := resolve.Path(context.Background(), arm, waypoints, nil, straightLineElements(), nil, resolve.FromRobot(), resolve.Unspecified(), nil, opt)
	test.That(t, err, test.ShouldNotBeNil)
}
