package kinematics

// Robot is the kinematic model collaborator consumed by the resolvers
// (spec §6). Forward kinematics, joint limits, and configuration
// interpolation live entirely on the implementation; the resolve
// package never inspects a configuration's internal structure.
//
// Every call mutates shared state: SetConfig is a side effect on the
// robot's current configuration, and resolvers never restore it (spec
// §3 "Lifecycles", §5 "Discipline"). Implementations must be safe to
// call only from a single goroutine at a time (spec §5 "Ordering").
type Robot interface {
	SetConfig(q Configuration)
	GetConfig() Configuration
	Distance(a, b Configuration) float64
	Interpolate(a, b Configuration, u float64) Configuration
	NumLinks() int
}
