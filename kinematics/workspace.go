package kinematics

// WorkspacePoint is an opaque parameter bundle describing a setting of a
// constraint list (spec §3). Resolvers never inspect its contents; they
// only pass it between GetConfig/SetConfig/Interpolate/Distance.
type WorkspacePoint []float64

// Clone returns an independent copy.
func (x WorkspacePoint) Clone() WorkspacePoint {
	out := make(WorkspacePoint, len(x))
	copy(out, x)
	return out
}

// ConstraintList is the ordered set of IK objectives consumed by the
// resolvers, doubling as the workspace-parameter helper of spec §6: it
// knows how to read/write its own setting on the robot and how to
// interpolate/measure distance between two settings. Both the
// constraint list and this workspace arithmetic are out-of-scope
// collaborators per spec §1; PoseConstraintList (poseconstraints.go) is a minimal
// concrete implementation used by fixtures and tests, not the
// deliverable itself.
type ConstraintList interface {
	Objectives() []*Objective

	// GetConfig reads the current workspace setting off of robot,
	// i.e. config.getConfig(constraints) in spec §3.
	GetConfig(robot Robot) WorkspacePoint
	// SetConfig assigns x onto the objectives in place.
	SetConfig(x WorkspacePoint)
	// Interpolate returns the geodesic workspace point at parameter u
	// between a and b.
	Interpolate(a, b WorkspacePoint, u float64) WorkspacePoint
	// Distance measures the geodesic workspace distance between a and b.
	Distance(a, b WorkspacePoint) float64
}
