package kinematics

import (
	"context"
	"math/rand"
)

// Solver is the IK solver collaborator consumed by the resolvers (spec
// §6). It operates against the Robot it was built over: Solve reads the
// robot's current configuration as its seed and leaves the robot's
// configuration at the solution (or at whatever the last iteration
// produced, on failure).
//
// Tolerance, joint limits, and the bias configuration are transiently
// mutated by every resolver in this module; callers sharing a Solver
// across concurrent resolver calls get undefined behavior (spec §5).
type Solver interface {
	// Add appends an objective to the solver's working constraint set.
	Add(o *Objective)
	// Clear empties the working constraint set.
	Clear()
	// Solve attempts to satisfy the working constraint set from the
	// robot's current configuration, leaving the robot at the result.
	Solve(ctx context.Context) bool
	// IsSolved reports whether the robot's current configuration already
	// satisfies the working constraint set within Tolerance.
	IsSolved() bool
	// Residual returns the scalar constraint violation at the robot's
	// current configuration.
	Residual() float64

	Tolerance() float64
	SetTolerance(t float64)

	JointLimits() (lo, hi Configuration)
	SetJointLimits(lo, hi Configuration)

	// SetBiasConfig hints which configuration to prefer among equally
	// valid solutions (the self-motion manifold's ambiguity). A nil or
	// empty Configuration clears the bias.
	SetBiasConfig(q Configuration)

	// SampleInitial reseeds the robot's configuration from the solver's
	// own initial-sample distribution, sourced from rng so that roadmap
	// sampling is deterministic under a fixed seed (spec §5).
	SampleInitial(rng *rand.Rand)

	MaxIters() int
	ActiveDofs() []int
}

// SolverFactory constructs a default Solver over a constraint list, used
// by the constraint normalizer (spec §4.A) when the caller does not
// supply one.
type SolverFactory func(robot Robot, objectives []*Objective) Solver

// FeasibilityTest rejects configurations outside of a user-supplied
// feasibility predicate (spec §4.C step 4, §4.D).
type FeasibilityTest func(q Configuration) bool
