package resolve

import (
	"context"

	"go.viam.com/cartesianpath/kinematics"
)

// bisectNode is the BisectNode of spec §3. The tree is built purely to
// drive the refinement queue; flattening walks it in-order once (spec §9
// "Bisection tree -> output sequence").
type bisectNode struct {
	a, b       kinematics.WorkspacePoint
	ua, ub     float64
	qa, qb     kinematics.Configuration
	d          float64
	left, right *bisectNode
}

// Bisect recursively refines a Cartesian segment until each piece is
// below opt.Delta in configuration space, enforcing a total growth bound
// that detects self-motion-manifold discontinuities (spec §4.D).
func Bisect(
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
	return bisectResolve(ctx, robot, a, b, n, opt)
}

func bisectResolve(ctx context.Context, robot kinematics.Robot, a, b kinematics.WorkspacePoint, n *normalized, opt *Options) (*Trajectory, error) {
	if n.start == nil {
		return nil, errAt(StartUnreachable, 0, "no start configuration supplied")
	}
	startConfig := n.start
	endConfig := n.end

	if !n.haveEnd {
		robot.SetConfig(startConfig)
		if !solveAt(ctx, b, n.constraints, n.solver) {
			return nil, errAt(EndUnreachable, 1, "could not find an end configuration to match final Cartesian coordinates")
		}
		endConfig = robot.GetConfig()
	}

	robot.SetConfig(startConfig)
	setTarget(a, n.constraints, n.solver)
	if !n.solver.IsSolved() {
		if !n.solver.Solve(ctx) {
			return nil, errAt(StartUnreachable, 0, "initial configuration cannot be solved to match initial Cartesian coordinates, residual %v", n.solver.Residual())
		}
		opt.logger().Warnw("initial configuration does not match initial Cartesian coordinates, solving", "residual", n.solver.Residual())
		startConfig = robot.GetConfig()
	}
	robot.SetConfig(endConfig)
	setTarget(b, n.constraints, n.solver)
	if !n.solver.IsSolved() {
		if !n.solver.Solve(ctx) {
			return nil, errAt(EndUnreachable, 1, "final configuration cannot be solved to match final Cartesian coordinates, residual %v", n.solver.Residual())
		}
		opt.logger().Warnw("final configuration does not match final Cartesian coordinates, solving", "residual", n.solver.Residual())
		endConfig = robot.GetConfig()
	}
	if !opt.feasible(startConfig) {
		return nil, errAt(InfeasibleEndpoint, 0, "initial configuration is infeasible")
	}
	if !opt.feasible(endConfig) {
		return nil, errAt(InfeasibleEndpoint, 1, "final configuration is infeasible")
	}

	ss := scopeSolver(n.solver)
	defer ss.restore()

	root := &bisectNode{a: a, b: b, ua: 0, ub: 1, qa: startConfig, qb: endConfig}
	root.d = robot.Distance(startConfig, endConfig)
	if root.d == 0 {
		ss.restore()
		return &Trajectory{Times: []float64{0, 1}, Milestones: []kinematics.Configuration{startConfig, endConfig}}, nil
	}

	dtotal, dorig := root.d, root.d
	scalecond := 0.5 * (2 - 2.0/opt.GrowthTol)

	queue := []*bisectNode{root}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			ss.restore()
			return nil, err
		}
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		d0 := node.d
		if d0 <= opt.Delta {
			continue
		}
		m := n.constraints.Interpolate(node.a, node.b, 0.5)
		qm := robot.Interpolate(node.qa, node.qb, 0.5)
		um := (node.ua + node.ub) * 0.5

		robot.SetConfig(qm)
		ss.SetBiasConfig(qm)
		if !solveAt(ctx, m, n.constraints, n.solver) {
			ss.SetBiasConfig(nil)
			ss.restore()
			return nil, errAt(BisectIKFail, um, "failed to solve at parameter %v", um)
		}
		ss.SetBiasConfig(nil)
		qm = robot.GetConfig()
		d1 := robot.Distance(node.qa, qm)
		d2 := robot.Distance(qm, node.qb)
		dtotal += d1 + d2 - d0

		if dtotal > dorig*opt.GrowthTol || d1 > scalecond*d0 || d2 > scalecond*d0 {
			opt.logger().Debugw("excessive growth", "d0", d0, "d1", d1, "d2", d2, "u", um)
			ss.restore()
			return nil, errAt(ExcessiveGrowth, um, "bisection growth exceeded bound (d0=%v d1=%v d2=%v)", d0, d1, d2)
		}
		if !opt.feasible(qm) {
			ss.restore()
			return nil, errAt(Infeasible, um, "feasibility test rejected midpoint configuration")
		}

		node.left = &bisectNode{a: node.a, b: m, ua: node.ua, ub: um, qa: node.qa, qb: qm, d: d1}
		node.right = &bisectNode{a: m, b: node.b, ua: um, ub: node.ub, qa: qm, qb: node.qb, d: d2}
		if d1 < d2 {
			queue = append(queue, node.left, node.right)
		} else {
			queue = append(queue, node.right, node.left)
		}
	}

	res := &Trajectory{Times: []float64{0}, Milestones: []kinematics.Configuration{startConfig}}
	stack := []*bisectNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.left == nil {
			res.append(node.ub, node.qb)
			continue
		}
		stack = append(stack, node.right, node.left)
	}
	ss.restore()
	return res, nil
}
