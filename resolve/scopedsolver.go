package resolve

import "go.viam.com/cartesianpath/kinematics"

// scopedSolver snapshots a Solver's tolerance and joint limits on
// construction and restores them exactly once via restore(), no matter
// which of a resolver's several exit paths is taken; restore() also
// clears the bias configuration (the previous bias is not snapshotted). This is the "scoped resource wrapper" design note recommends
// (spec §9) to keep the save/restore discipline (spec §5) from being
// duplicated, and easy to miss, at every return statement.
type scopedSolver struct {
	kinematics.Solver
	tol0        float64
	qmin0, qmax0 kinematics.Configuration
	restored    bool
}

func scopeSolver(s kinematics.Solver) *scopedSolver {
	qmin0, qmax0 := s.JointLimits()
	return &scopedSolver{
		Solver: s,
		tol0:   s.Tolerance(),
		qmin0:  qmin0.Clone(),
		qmax0:  qmax0.Clone(),
	}
}

// restore is idempotent so it can be deferred and also called explicitly
// on the success path without double-restoring.
func (s *scopedSolver) restore() {
	if s.restored {
		return
	}
	s.SetTolerance(s.tol0)
	s.SetJointLimits(s.qmin0, s.qmax0)
	s.SetBiasConfig(nil)
	s.restored = true
}
