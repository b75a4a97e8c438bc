package resolve

import "go.viam.com/cartesianpath/kinematics"

// Trajectory is the minimal configuration-space output container of
// spec §3: strictly non-decreasing Times aligned with Milestones. The
// richer Trajectory type used elsewhere in the containing library
// (interpolation modes, serialization, ...) is an out-of-scope external
// collaborator (spec §1); this type only carries what the resolvers
// themselves need to produce and concatenate.
type Trajectory struct {
	Times      []float64
	Milestones []kinematics.Configuration
}

// NewTrajectory returns a single-milestone trajectory at t=0, the
// canonical result for a zero-length input segment (spec §7).
func NewTrajectory(q kinematics.Configuration) *Trajectory {
	return &Trajectory{Times: []float64{0}, Milestones: []kinematics.Configuration{q}}
}

func (t *Trajectory) append(at float64, q kinematics.Configuration) {
	t.Times = append(t.Times, at)
	t.Milestones = append(t.Milestones, q)
}

func (t *Trajectory) last() kinematics.Configuration {
	return t.Milestones[len(t.Milestones)-1]
}

func (t *Trajectory) lastTime() float64 {
	return t.Times[len(t.Times)-1]
}

// rescale maps this trajectory's [0,1] time domain onto [start,end],
// used by the orchestrator to place a segment's result into the
// multi-segment path's time domain (spec §4.E).
func (t *Trajectory) rescale(start, end float64) {
	dt := end - start
	for i, u := range t.Times {
		t.Times[i] = start + u*dt
	}
}

// concat appends other's milestones after this trajectory's, dropping
// other's first milestone (assumed identical to this trajectory's last).
// other's times are copied unchanged, so they must already lie in this
// trajectory's time domain. Times are not deduplicated: a repeated time at
// a segment join is a legitimate discontinuity marker (spec §3).
func (t *Trajectory) concat(other *Trajectory) {
	for i := 1; i < len(other.Times); i++ {
		t.append(other.Times[i], other.Milestones[i])
	}
}
