package resolve

import (
	"context"

	"go.viam.com/cartesianpath/kinematics"
)

// Path is the top-level entry point for multi-segment Cartesian paths
// (spec §4.E). waypoints are workspace points spaced 1 second apart in
// time unless times is supplied (a pre-built Trajectory in spec terms).
func Path(
	ctx context.Context,
	robot kinematics.Robot,
	waypoints []kinematics.WorkspacePoint,
	times []float64,
	elements []kinematics.ConstraintElement,
	constraints kinematics.ConstraintList,
	start, end StartConfig,
	solver kinematics.Solver,
	opt *Options,
) (*Trajectory, error) {
	if opt == nil {
		opt = NewOptions()
	}
	if times == nil {
		times = make([]float64, len(waypoints))
		for i := range waypoints {
			times[i] = float64(i)
		}
	}
	n, err := normalize(robot, elements, constraints, start, end, solver, opt)
	if err != nil {
		return nil, err
	}

	startConfig := n.start
	if startConfig != nil {
		robot.SetConfig(startConfig)
		setTarget(waypoints[0], n.constraints, n.solver)
		if !n.solver.IsSolved() {
			if !n.solver.Solve(ctx) {
				return nil, errAtWaypoint(StartUnreachable, 0, "initial configuration cannot be solved to match initial Cartesian coordinates")
			}
			opt.logger().Warnw("initial configuration does not match initial Cartesian coordinates, solving")
			startConfig = robot.GetConfig()
		}
	}
	endConfig := n.end
	if n.haveEnd {
		robot.SetConfig(endConfig)
		setTarget(waypoints[len(waypoints)-1], n.constraints, n.solver)
		if !n.solver.IsSolved() {
			if !n.solver.Solve(ctx) {
				return nil, errAtWaypoint(EndUnreachable, len(waypoints)-1, "final configuration cannot be solved to match final Cartesian coordinates")
			}
			opt.logger().Warnw("final configuration does not match final Cartesian coordinates, solving")
			endConfig = robot.GetConfig()
		}
	}

	if opt.Method == MethodAny || opt.Method == MethodPointwise {
		if startConfig == nil {
			startConfig = seedEndpoint(ctx, robot, waypoints[0], n, opt)
		}
		res, pwErr := pointwise(ctx, robot, waypoints, times, startConfig, endConfig, n, opt)
		if pwErr == nil {
			return res, nil
		}
		if opt.Method == MethodPointwise {
			if opt.Maximize && res != nil {
				return res, nil
			}
			return nil, pwErr
		}
		opt.logger().Debugw("pointwise resolution failed, escalating to roadmap", "error", pwErr)
	}

	if opt.Method == MethodAny || opt.Method == MethodRoadmap {
		return roadmap(ctx, robot, waypoints, times, startConfig, endConfig, n, opt)
	}
	return nil, errAtWaypoint(SampleBudgetExhausted, 0, "no resolution strategy produced a path")
}

// pointwise resolves each consecutive waypoint pair independently (spec
// §4.E "Pointwise strategy").
func pointwise(
	ctx context.Context,
	robot kinematics.Robot,
	waypoints []kinematics.WorkspacePoint,
	times []float64,
	startConfig, endConfig kinematics.Configuration,
	n *normalized,
	opt *Options,
) (*Trajectory, error) {
	if startConfig == nil {
		return nil, errAtWaypoint(StartUnreachable, 0, "no start configuration available for pointwise resolution")
	}
	res := &Trajectory{Times: []float64{times[0]}, Milestones: []kinematics.Configuration{startConfig}}

	for i := 0; i < len(waypoints)-1; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		var seg *Trajectory
		var err error
		var segEnd kinematics.Configuration
		haveSegEnd := false

		if endConfig != nil {
			u := (times[i+1] - times[i]) / (times[len(times)-1] - times[i])
			interp := robot.Interpolate(res.last(), endConfig, u)
			robot.SetConfig(interp)
			// Refine the raw interpolant by IK at this waypoint; fall back
			// to the raw interpolant if that solve fails (SPEC_FULL.md §4.3).
			if solveAt(ctx, waypoints[i+1], n.constraints, n.solver) {
				segEnd = robot.GetConfig()
			} else {
				segEnd = interp
			}
			haveSegEnd = true
		}

		if haveSegEnd {
			seg, err = bisectResolve(ctx, robot, waypoints[i], waypoints[i+1], &normalized{
				objectives: n.objectives, constraints: n.constraints, solver: n.solver,
				start: res.last(), end: segEnd, haveEnd: true,
			}, opt)
		} else {
			seg, err = linearResolve(ctx, robot, waypoints[i], waypoints[i+1], &normalized{
				objectives: n.objectives, constraints: n.constraints, solver: n.solver,
				start: res.last(),
			}, opt)
		}
		if err != nil {
			return res, errAtWaypoint(resolveKind(err), i+1, "infeasible cartesian interpolation segment: %v", err)
		}
		seg.rescale(times[i], times[i+1])
		res.concat(seg)
	}
	return res, nil
}

// seedEndpoint draws up to opt.NumSamples seeds from the solver's
// initial-sample distribution, accepting the first that solves target
// and passes the feasibility test. Path uses it to seed a missing
// overall start configuration before the pointwise strategy; the roadmap
// resolver seeds its endpoints with its own loop on a shared budget.
func seedEndpoint(ctx context.Context, robot kinematics.Robot, target kinematics.WorkspacePoint, n *normalized, opt *Options) kinematics.Configuration {
	rng := opt.rng()
	for i := 0; i < opt.NumSamples; i++ {
		n.solver.SampleInitial(rng)
		if solveAt(ctx, target, n.constraints, n.solver) && opt.feasible(robot.GetConfig()) {
			return robot.GetConfig()
		}
	}
	return nil
}

func resolveKind(err error) Kind {
	if re, ok := err.(*Error); ok {
		return re.Kind
	}
	return Infeasible
}

// discretizePath re-samples an arbitrary-duration path into
// opt.RoadmapDiscretization evenly spaced sub-waypoints before roadmap
// sampling (SPEC_FULL.md §4.2, grounded on the original's manual
// numdivs=20 discretization).
func discretizePath(waypoints []kinematics.WorkspacePoint, times []float64, constraints kinematics.ConstraintList, numdivs int) ([]kinematics.WorkspacePoint, []float64) {
	if numdivs < 2 || len(waypoints) < 2 {
		return waypoints, times
	}
	duration := times[len(times)-1] - times[0]
	if duration <= 0 {
		return waypoints, times
	}
	outTimes := []float64{times[0]}
	outPoints := []kinematics.WorkspacePoint{waypoints[0]}
	seg := 0
	for i := 1; i < numdivs; i++ {
		t := times[0] + duration*float64(i)/float64(numdivs-1)
		for seg < len(times)-2 && t > times[seg+1] {
			seg++
		}
		span := times[seg+1] - times[seg]
		u := 0.0
		if span > 0 {
			u = (t - times[seg]) / span
		}
		outTimes = append(outTimes, t)
		outPoints = append(outPoints, constraints.Interpolate(waypoints[seg], waypoints[seg+1], u))
	}
	return outPoints, outTimes
}
