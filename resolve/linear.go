package resolve

import (
	"context"

	"go.viam.com/cartesianpath/kinematics"
)

// Linear resolves a single straight-line Cartesian segment a->b into a
// configuration-space trajectory by adaptive stepping with
// box-constrained IK (spec §4.C). It is the IK-aware analogue of linear
// path interpolation: each accepted step is bounded to at most opt.Delta
// in every joint by shrinking the solver's joint-limit box around the
// last milestone before each solve attempt.
func Linear(
	ctx context.Context,
	robot kinematics.Robot,
	a, b kinematics.WorkspacePoint,
	elements []kinematics.ConstraintElement,
	constraints kinematics.ConstraintList,
	start, end StartConfig,
	solver kinematics.Solver,
	opt *Options,
) (*Trajectory, error) {
	if opt == nil {
		opt = NewOptions()
	}
	n, err := normalize(robot, elements, constraints, start, end, solver, opt)
	if err != nil {
		return nil, err
	}
	return linearResolve(ctx, robot, a, b, n, opt)
}

func linearResolve(ctx context.Context, robot kinematics.Robot, a, b kinematics.WorkspacePoint, n *normalized, opt *Options) (*Trajectory, error) {
	log := opt.logger()
	if n.start == nil {
		return nil, errAt(StartUnreachable, 0, "no start configuration supplied")
	}

	robot.SetConfig(n.start)
	setTarget(a, n.constraints, n.solver)
	startConfig := n.start
	if !n.solver.IsSolved() {
		if !n.solver.Solve(ctx) {
			return nil, errAt(StartUnreachable, 0, "start configuration cannot be solved to match initial Cartesian coordinates, residual %v", n.solver.Residual())
		}
		log.Warnw("initial configuration does not match initial Cartesian coordinates, solving", "residual", n.solver.Residual())
		startConfig = robot.GetConfig()
	}
	if n.haveEnd {
		robot.SetConfig(n.end)
		setTarget(b, n.constraints, n.solver)
		if !n.solver.IsSolved() {
			return nil, errAt(EndUnreachable, 1, "end configuration does not match final Cartesian coordinates, residual %v", n.solver.Residual())
		}
	}
	if !opt.feasible(startConfig) {
		return nil, errAt(InfeasibleEndpoint, 0, "initial configuration is infeasible")
	}
	if n.haveEnd && !opt.feasible(n.end) {
		return nil, errAt(InfeasibleEndpoint, 1, "final configuration is infeasible")
	}

	ss := scopeSolver(n.solver)
	defer ss.restore()

	res := NewTrajectory(startConfig)
	t := 0.0

	ss.SetTolerance(ss.tol0 * 0.1)
	setTarget(a, n.constraints, n.solver)
	if !ss.IsSolved() {
		ss.Solve(ctx)
		if opt.EmitDiscontinuityMilestone {
			res.append(t+1e-7, robot.GetConfig())
			t = res.lastTime()
		}
	}

	dAB := n.constraints.Distance(a, b)
	if dAB == 0 {
		// Zero-length workspace segment: no stepping is needed or even
		// well-defined (paramStallTolerance would divide by zero), so this
		// yields the canonical one-milestone trajectory at t=0 (spec §7).
		// bisectResolve's d==0 short-circuit differs: it returns the start
		// and end configurations at t=0 and t=1.
		ss.restore()
		return res, nil
	}
	paramStallTolerance := 0.01 * ss.tol0 / dAB
	stepsize := 0.1

	for t < 1 {
		if err := ctx.Err(); err != nil {
			ss.restore()
			return nil, err
		}
		tookStep := false
		tend := min1(t+stepsize, 1)
		q := res.last()

		tryStep := func(tend float64) bool {
			x := n.constraints.Interpolate(a, b, tend)
			if n.haveEnd {
				robot.SetConfig(robot.Interpolate(startConfig, n.end, tend))
				ss.SetBiasConfig(robot.GetConfig())
			}
			qmin, qmax := ss.qmin0, ss.qmax0
			lo := make(kinematics.Configuration, len(q))
			hi := make(kinematics.Configuration, len(q))
			for i := range q {
				lo[i] = kinematics.Input{Value: max1(qmin[i].Value, q[i].Value-opt.Delta)}
				hi[i] = kinematics.Input{Value: min1(qmax[i].Value, q[i].Value+opt.Delta)}
			}
			ss.SetJointLimits(lo, hi)
			return solveAt(ctx, x, n.constraints, n.solver)
		}

		if tryStep(tend) {
			tookStep = true
			stepsize *= 1.5
		} else {
			for stepsize > paramStallTolerance {
				stepsize *= 0.5
				tend = min1(t+stepsize, 1)
				if tryStep(tend) {
					tookStep = true
					break
				}
				// Grudging-accept fallback: relax to the caller's original
				// tolerance and check whether the last attempt's residual
				// already satisfies it (spec §4.C step 4).
				ss.SetTolerance(ss.tol0)
				if ss.IsSolved() {
					tookStep = true
					break
				}
				ss.SetTolerance(ss.tol0 * 0.1)
			}
		}

		if !tookStep {
			log.Debugw("failed to take a valid step along straight line path", "t", res.lastTime(), "residual", ss.Residual())
			ss.restore()
			if opt.Maximize {
				return res, nil
			}
			return nil, errAt(StepStall, res.lastTime(), "step size shrank below stall tolerance, residual %v", ss.Residual())
		}

		q = robot.GetConfig()
		if !opt.feasible(q) {
			ss.restore()
			if opt.Maximize {
				return res, nil
			}
			return nil, errAt(Infeasible, tend, "feasibility test rejected configuration")
		}
		res.append(tend, q)
		t = tend
	}
	return res, nil
}

func min1(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max1(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
