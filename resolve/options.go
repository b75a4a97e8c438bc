package resolve

import (
	"math/rand"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/google/uuid"

	"go.viam.com/cartesianpath/kinematics"
)

// Options gathers the ambient knobs shared across every resolver entry
// point, mirroring the teacher's plannerOptions/newBasicPlannerOptions
// pattern (go.viam.com/rdk/motionplan).
type Options struct {
	// Delta is the maximum per-step configuration-space distance (spec
	// §4.C, §4.D).
	Delta float64
	// GrowthTol bounds the bisection resolver's total arc-length growth
	// (spec §4.D). Unused by the linear resolver.
	GrowthTol float64
	// NumSamples caps the roadmap resolver's sampling budget (spec §4.F).
	NumSamples int
	// Method selects the path orchestrator's strategy (spec §4.E).
	Method Method
	// Maximize converts late-stage failures into a partial result (spec
	// §7).
	Maximize bool
	// FeasibilityTest rejects configurations outside of a user predicate
	// (spec §4.C step 4). Nil means every configuration is feasible.
	FeasibilityTest kinematics.FeasibilityTest
	// SolverFactory builds a default Solver when the caller does not
	// supply one (spec §4.A).
	SolverFactory kinematics.SolverFactory

	// EmitDiscontinuityMilestone reproduces the early (t+1e-7) milestone
	// the original Klampt implementation appends when the start
	// configuration is not yet solved against `a` after the tolerance
	// tightening (SPEC_FULL.md §4.1). Off by default.
	EmitDiscontinuityMilestone bool
	// RoadmapDiscretization is the number of evenly spaced sub-waypoints
	// the roadmap/any strategy re-discretizes an arbitrary-duration path
	// into before sampling (SPEC_FULL.md §4.2).
	RoadmapDiscretization int

	Logger golog.Logger
	Clock  clock.Clock
	Rand   *rand.Rand
}

// Method selects the orchestrator strategy (spec §4.E).
type Method int

const (
	MethodAny Method = iota
	MethodPointwise
	MethodRoadmap
)

// NewOptions returns the teacher-style defaults: delta=1e-2, growthTol=10,
// numSamples=1000, method=any, a process-global (but caller-overridable)
// logger and clock, and a seeded RNG for reproducible roadmap sampling.
func NewOptions() *Options {
	return &Options{
		Delta:                 1e-2,
		GrowthTol:             10,
		NumSamples:            1000,
		Method:                MethodAny,
		RoadmapDiscretization: 20,
		Logger:                golog.Global(),
		Clock:                 clock.New(),
		Rand:                  rand.New(rand.NewSource(1)),
	}
}

func (o *Options) logger() golog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return golog.Global()
}

func (o *Options) clock() clock.Clock {
	if o.Clock != nil {
		return o.Clock
	}
	return clock.New()
}

func (o *Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(1))
}

func (o *Options) feasible(q kinematics.Configuration) bool {
	if o.FeasibilityTest == nil {
		return true
	}
	return o.FeasibilityTest(q)
}

// newNodeID is used only for debug-log/DOT-export correlation (SPEC_FULL.md
// domain stack); it has no bearing on roadmap connectivity, which stays
// index-based per spec §3.
func newNodeID() string {
	return uuid.NewString()
}
