package resolve

import (
	"context"

	"go.viam.com/cartesianpath/kinematics"
)

// setTarget applies x to constraints, then reloads solver's working set
// (spec §4.B): set_cartesian_constraints in the original.
func setTarget(x kinematics.WorkspacePoint, constraints kinematics.ConstraintList, solver kinematics.Solver) {
	constraints.SetConfig(x)
	solver.Clear()
	for _, o := range constraints.Objectives() {
		solver.Add(o)
	}
}

// solveAt targets x and attempts to solve from the robot's current
// configuration (spec §4.B): solve_cartesian in the original.
func solveAt(ctx context.Context, x kinematics.WorkspacePoint, constraints kinematics.ConstraintList, solver kinematics.Solver) bool {
	setTarget(x, constraints, solver)
	return solver.Solve(ctx)
}
