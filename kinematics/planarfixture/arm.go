// Package planarfixture implements a small analytic planar-arm Robot and
// a damped-least-squares Solver against the kinematics interfaces, for
// use as a test fixture. It is deliberately not a production IK
// solver — the spec treats the solver as an out-of-scope external
// collaborator (spec §1) — but gives the resolve package tests real
// forward/inverse kinematics to exercise instead of hand-wired stubs.
package planarfixture

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/cartesianpath/kinematics"
)

// Arm is an n-link planar (2D) revolute arm with given link lengths.
// Joint i's angle is measured relative to link i-1 (standard serial-chain
// convention), so the tip position is the running sum of link vectors at
// cumulative angles.
type Arm struct {
	Lengths []float64
	config  kinematics.Configuration
}

// NewArm builds an Arm at the all-zero configuration.
func NewArm(lengths []float64) *Arm {
	return &Arm{Lengths: lengths, config: kinematics.FloatsToConfiguration(make([]float64, len(lengths)))}
}

func (a *Arm) NumLinks() int { return len(a.Lengths) }

func (a *Arm) SetConfig(q kinematics.Configuration) { a.config = q.Clone() }

func (a *Arm) GetConfig() kinematics.Configuration { return a.config.Clone() }

func (a *Arm) Distance(x, y kinematics.Configuration) float64 {
	return floats.Distance(x.Floats(), y.Floats(), 2)
}

func (a *Arm) Interpolate(x, y kinematics.Configuration, u float64) kinematics.Configuration {
	xf, yf := x.Floats(), y.Floats()
	out := make([]float64, len(xf))
	for i := range xf {
		out[i] = xf[i] + (yf[i]-xf[i])*u
	}
	return kinematics.FloatsToConfiguration(out)
}

// Tip returns the forward-kinematics tip position of q.
func (a *Arm) Tip(q kinematics.Configuration) r3.Vector {
	x, y, heading := 0.0, 0.0, 0.0
	for i, link := range a.Lengths {
		heading += q[i].Value
		x += link * math.Cos(heading)
		y += link * math.Sin(heading)
	}
	return r3.Vector{X: x, Y: y}
}

// Heading returns the cumulative end-effector heading of q.
func (a *Arm) Heading(q kinematics.Configuration) float64 {
	h := 0.0
	for i := range a.Lengths {
		h += q[i].Value
	}
	return h
}

// Reach returns the arm's maximum and minimum radial reach.
func (a *Arm) Reach() (max, min float64) {
	total := 0.0
	for _, l := range a.Lengths {
		total += l
	}
	longest := 0.0
	for _, l := range a.Lengths {
		if l > longest {
			longest = l
		}
	}
	inner := 2*longest - total
	if inner < 0 {
		inner = 0
	}
	return total, inner
}
