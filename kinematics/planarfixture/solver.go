package planarfixture

import (
	"context"
	"math"
	"math/rand"

	"go.viam.com/cartesianpath/kinematics"
)

// Solver is a damped-least-squares iterative IK solver over a single
// position (and optionally heading) objective on an Arm's tip link,
// structurally analogous to the teacher's NLopt-based iterative solve
// (go.viam.com/rdk/motionplan's nloptIKSolver) but without the cgo
// dependency: a small finite-difference Jacobian and Levenberg-style
// damping, which is standard for redundant planar manipulators.
type Solver struct {
	arm         *Arm
	objectives  []*kinematics.Objective
	tol         float64
	maxIters    int
	lo, hi      kinematics.Configuration
	bias        kinematics.Configuration
	lambda      float64
}

// SolverFactory returns a kinematics.SolverFactory that builds a new
// Solver over arm and seeds it with the normalizer's objectives, for use
// as resolve.Options.SolverFactory in tests.
func SolverFactory(arm *Arm) kinematics.SolverFactory {
	return func(_ kinematics.Robot, objectives []*kinematics.Objective) kinematics.Solver {
		s := NewSolver(arm)
		for _, o := range objectives {
			s.Add(o)
		}
		return s
	}
}

// NewSolver builds a Solver over arm with generous default joint limits
// and tolerance.
func NewSolver(arm *Arm) *Solver {
	n := arm.NumLinks()
	lo := make([]float64, n)
	hi := make([]float64, n)
	for i := range lo {
		lo[i] = -2 * math.Pi
		hi[i] = 2 * math.Pi
	}
	return &Solver{
		arm:      arm,
		tol:      1e-6,
		maxIters: 200,
		lo:       kinematics.FloatsToConfiguration(lo),
		hi:       kinematics.FloatsToConfiguration(hi),
		lambda:   0.05,
	}
}

func (s *Solver) Add(o *kinematics.Objective)     { s.objectives = append(s.objectives, o) }
func (s *Solver) Clear()                          { s.objectives = nil }
func (s *Solver) Tolerance() float64               { return s.tol }
func (s *Solver) SetTolerance(t float64)           { s.tol = t }
func (s *Solver) JointLimits() (lo, hi kinematics.Configuration) { return s.lo, s.hi }
func (s *Solver) SetJointLimits(lo, hi kinematics.Configuration) { s.lo, s.hi = lo, hi }
func (s *Solver) SetBiasConfig(q kinematics.Configuration)       { s.bias = q }
func (s *Solver) MaxIters() int                    { return s.maxIters }
func (s *Solver) ActiveDofs() []int {
	out := make([]int, s.arm.NumLinks())
	for i := range out {
		out[i] = i
	}
	return out
}

// SampleInitial draws a uniform-random seed within the joint limits.
func (s *Solver) SampleInitial(rng *rand.Rand) {
	n := s.arm.NumLinks()
	q := make([]float64, n)
	for i := 0; i < n; i++ {
		q[i] = s.lo[i].Value + rng.Float64()*(s.hi[i].Value-s.lo[i].Value)
	}
	s.arm.SetConfig(kinematics.FloatsToConfiguration(q))
}

func (s *Solver) target() (*kinematics.Objective, bool) {
	if len(s.objectives) == 0 {
		return nil, false
	}
	return s.objectives[0], true
}

// Residual is the Euclidean position error (plus heading error, if
// constrained) at the arm's current configuration.
func (s *Solver) Residual() float64 {
	obj, ok := s.target()
	if !ok {
		return 0
	}
	q := s.arm.GetConfig()
	res := 0.0
	if obj.Position != nil {
		d := s.arm.Tip(q).Sub(*obj.Position)
		res += d.Norm()
	}
	if obj.Orientation != nil {
		res += math.Abs(angleDiff(s.arm.Heading(q), *obj.Orientation))
	}
	return res
}

func (s *Solver) IsSolved() bool { return s.Residual() <= s.tol }

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi) - math.Pi
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// Solve iterates damped-least-squares from the arm's current
// configuration, biasing any redundant (self-motion) degrees of freedom
// toward the bias configuration when one is set, and returns whether the
// result is within tolerance.
func (s *Solver) Solve(ctx context.Context) bool {
	obj, ok := s.target()
	if !ok {
		return true
	}
	n := s.arm.NumLinks()
	q := s.arm.GetConfig().Floats()

	errVec := func(q []float64) []float64 {
		cq := kinematics.FloatsToConfiguration(q)
		var e []float64
		if obj.Position != nil {
			d := s.arm.Tip(cq).Sub(*obj.Position)
			e = append(e, d.X, d.Y)
		}
		if obj.Orientation != nil {
			e = append(e, angleDiff(s.arm.Heading(cq), *obj.Orientation))
		}
		return e
	}

	for iter := 0; iter < s.maxIters; iter++ {
		if ctx.Err() != nil {
			break
		}
		e := errVec(q)
		norm := 0.0
		for _, v := range e {
			norm += v * v
		}
		if math.Sqrt(norm) <= s.tol {
			break
		}

		m := len(e)
		const h = 1e-6
		jac := make([][]float64, m)
		for r := 0; r < m; r++ {
			jac[r] = make([]float64, n)
		}
		for j := 0; j < n; j++ {
			qp := append([]float64(nil), q...)
			qp[j] += h
			ep := errVec(qp)
			for r := 0; r < m; r++ {
				jac[r][j] = (ep[r] - e[r]) / h
			}
		}

		dq := dampedLeastSquares(jac, e, s.lambda)
		if s.bias != nil {
			nullspaceBias(jac, dq, q, s.bias.Floats(), 0.1)
		}
		for j := 0; j < n; j++ {
			q[j] -= dq[j]
			if q[j] < s.lo[j].Value {
				q[j] = s.lo[j].Value
			}
			if q[j] > s.hi[j].Value {
				q[j] = s.hi[j].Value
			}
		}
	}
	s.arm.SetConfig(kinematics.FloatsToConfiguration(q))
	return s.IsSolved()
}

// dampedLeastSquares solves dq = J^T (J J^T + lambda^2 I)^-1 e for the
// small (m<=3) row counts this fixture ever sees, via Gaussian
// elimination on the m x m normal-equation matrix.
func dampedLeastSquares(jac [][]float64, e []float64, lambda float64) []float64 {
	m := len(e)
	n := len(jac[0])
	a := make([][]float64, m)
	for r := 0; r < m; r++ {
		a[r] = make([]float64, m+1)
		for c := 0; c < m; c++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += jac[r][k] * jac[c][k]
			}
			if r == c {
				sum += lambda * lambda
			}
			a[r][c] = sum
		}
		a[r][m] = e[r]
	}
	y := gaussianSolve(a)

	dq := make([]float64, n)
	for j := 0; j < n; j++ {
		sum := 0.0
		for r := 0; r < m; r++ {
			sum += jac[r][j] * y[r]
		}
		dq[j] = sum
	}
	return dq
}

func gaussianSolve(a [][]float64) []float64 {
	m := len(a)
	for i := 0; i < m; i++ {
		pivot := i
		for r := i + 1; r < m; r++ {
			if math.Abs(a[r][i]) > math.Abs(a[pivot][i]) {
				pivot = r
			}
		}
		a[i], a[pivot] = a[pivot], a[i]
		if math.Abs(a[i][i]) < 1e-12 {
			continue
		}
		for r := i + 1; r < m; r++ {
			f := a[r][i] / a[i][i]
			for c := i; c <= m; c++ {
				a[r][c] -= f * a[i][c]
			}
		}
	}
	x := make([]float64, m)
	for i := m - 1; i >= 0; i-- {
		sum := a[i][m]
		for j := i + 1; j < m; j++ {
			sum -= a[i][j] * x[j]
		}
		if math.Abs(a[i][i]) < 1e-12 {
			x[i] = 0
			continue
		}
		x[i] = sum / a[i][i]
	}
	return x
}

// nullspaceBias nudges dq, in place, toward reducing the distance from q
// to bias within the Jacobian's approximate null space, by projecting
// the raw bias pull through (I - J+J). For the small dimensions here a
// cheap projection via the already-computed dq and a finite-difference
// re-check is sufficient; this is not exact pseudo-inverse projection,
// only a bias nudge (the solver's primary task objective dominates).
func nullspaceBias(jac [][]float64, dq []float64, q, bias []float64, gain float64) {
	n := len(q)
	pull := make([]float64, n)
	for j := 0; j < n; j++ {
		pull[j] = gain * (q[j] - bias[j])
	}
	// Remove the component of pull that the task Jacobian would also
	// correct for, approximated by subtracting its projection onto dq.
	dot, norm := 0.0, 0.0
	for j := 0; j < n; j++ {
		dot += pull[j] * dq[j]
		norm += dq[j] * dq[j]
	}
	if norm > 1e-9 {
		scale := dot / norm
		for j := 0; j < n; j++ {
			pull[j] -= scale * dq[j]
		}
	}
	for j := 0; j < n; j++ {
		dq[j] += pull[j]
	}
}
