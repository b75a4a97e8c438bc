package resolve

import (
	"go.viam.com/cartesianpath/kinematics"
)

// StartConfig models the startConfig/endConfig sentinel of spec §3/§4.A
// and §9 ("Optional start/end configurations... Model as sum type Config
// | FromRobot | Unspecified rather than a magic string sentinel").
type StartConfig struct {
	fromRobot bool
	q         kinematics.Configuration
}

// FromRobot is the 'robot' sentinel: substitute the robot's current
// configuration.
func FromRobot() StartConfig { return StartConfig{fromRobot: true} }

// Unspecified is the absent/None sentinel: no configuration constraint.
func Unspecified() StartConfig { return StartConfig{} }

// Config wraps a concrete configuration.
func Config(q kinematics.Configuration) StartConfig { return StartConfig{q: q} }

func (s StartConfig) isSet() bool { return s.fromRobot || s.q != nil }

func (s StartConfig) resolve(robot kinematics.Robot) kinematics.Configuration {
	if s.fromRobot {
		return robot.GetConfig()
	}
	return s.q
}

// normalized is the canonical form produced by normalize (spec §4.A).
type normalized struct {
	objectives []*kinematics.Objective
	constraints kinematics.ConstraintList
	start, end  kinematics.Configuration
	haveEnd     bool
	solver      kinematics.Solver
}

// normalize converts user input (a single constraint or a collection;
// bare link identifiers or full pose objectives) into the uniform
// (constraints, startConfig, endConfig, solver) tuple of spec §4.A.
func normalize(
	robot kinematics.Robot,
	elements []kinematics.ConstraintElement,
	constraints kinematics.ConstraintList,
	start, end StartConfig,
	solver kinematics.Solver,
	opt *Options,
) (*normalized, error) {
	objectives := make([]*kinematics.Objective, 0, len(elements))
	sawLink := false
	for _, e := range elements {
		switch v := e.(type) {
		case kinematics.LinkID:
			sawLink = true
			objectives = append(objectives, kinematics.NewIdentityObjective(v))
		case *kinematics.Objective:
			objectives = append(objectives, v)
		default:
			return nil, errAt(InvalidConstraint, 0, "unrecognized constraint element type")
		}
	}

	if constraints == nil {
		constraints = kinematics.NewPoseConstraintList(objectives)
	}
	if sawLink {
		// Rebuilding the solver over the new objectives is required
		// whenever link identifiers were replaced, even if the caller
		// passed one in: the solver's working set must match objectives.
		solver = nil
	}
	if solver == nil {
		factory := opt.SolverFactory
		if factory == nil {
			return nil, errAt(InvalidConstraint, 0, "no solver supplied and no SolverFactory configured")
		}
		solver = factory(robot, objectives)
	}

	n := &normalized{objectives: objectives, constraints: constraints, solver: solver}
	if start.isSet() {
		n.start = start.resolve(robot)
	}
	if end.isSet() {
		n.end = end.resolve(robot)
		n.haveEnd = true
	}
	return n, nil
}
