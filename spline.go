package spline

import (
	"errors"
	"fmt"
)

var (
	// ErrSegmentCount is returned by [CubicSpline.Configure] when the
	// requested number of segments is below two. A single segment leaves no
	// interior waypoints, so there is no system to solve.
	ErrSegmentCount = errors.New("spline: need at least two segments")

	// ErrNotConfigured is returned by [CubicSpline.Fit] before a successful
	// [CubicSpline.Configure].
	ErrNotConfigured = errors.New("spline: fitter is not configured")

	// ErrNotFitted is returned by the read-out methods before a successful
	// [CubicSpline.Fit].
	ErrNotFitted = errors.New("spline: no fit has been computed")

	// ErrNotImplemented marks declared operations whose computation is not
	// available yet.
	ErrNotImplemented = errors.New("spline: not implemented")
)

// segmentCoeffs holds one segment's polynomial coefficients, with the
// position at s ∈ [0, 1] given by a + b·s + c·s² + d·s³ per axis.
type segmentCoeffs struct {
	a, b, c, d Vec2
}

// CubicSpline fits a clamped cubic spline through a fixed head point, a
// caller-supplied sequence of interior waypoints, and a fixed tail point.
// The fitted curve interpolates every waypoint, is C² continuous, and has
// zero tangent at head and tail.
//
// Configure fixes the endpoints and segment count and sizes the tridiagonal
// tangent system; Fit may then be called any number of times with different
// interior waypoints. The zero value is unconfigured; a CubicSpline is not
// safe for concurrent use, use one instance per concurrent fit.
type CubicSpline struct {
	head   Point
	tail   Point
	n      int // number of segments; n+1 waypoints, n-1 interior
	sys    *BandedSystem
	rhs    []float64 // (n-1)×2, row-major, one column per axis
	coeffs []segmentCoeffs
	fitted bool
}

// Configure fixes the curve's endpoints and its number of segments, and
// allocates the (pieces−1)-unknown tridiagonal system the interior tangents
// are solved from. Any previous configuration and fit are discarded, along
// with their storage. It returns [ErrSegmentCount] if pieces < 2.
func (cs *CubicSpline) Configure(head, tail Point, pieces int) error {
	if pieces < 2 {
		return fmt.Errorf("%w: got %d", ErrSegmentCount, pieces)
	}
	sys, err := NewBandedSystem(pieces-1, 1, 1)
	if err != nil {
		return err
	}
	cs.head = head
	cs.tail = tail
	cs.n = pieces
	cs.sys = sys
	cs.rhs = make([]float64, (pieces-1)*2)
	cs.coeffs = make([]segmentCoeffs, pieces)
	cs.fitted = false
	return nil
}

// Fit solves for the spline through the configured endpoints and the given
// interior waypoints, in path order, and derives the per-segment polynomial
// coefficients. len(inner) must equal the configured segment count minus
// one, otherwise Fit returns [ErrDimensionMismatch].
//
// Interior tangents D[1..n-1] satisfy the C² junction conditions
//
//	D[i] + 4·D[i+1] + D[i+2] = 3·(X[i+2] − X[i])
//
// with the clamped boundary D[0] = D[n] = 0. The system matrix is strictly
// diagonally dominant, so the no-pivot factorization cannot fail on it.
func (cs *CubicSpline) Fit(inner []Point) error {
	if cs.sys == nil {
		return ErrNotConfigured
	}
	if len(inner) != cs.n-1 {
		return fmt.Errorf("%w: got %d interior points, want %d", ErrDimensionMismatch, len(inner), cs.n-1)
	}
	cs.fitted = false

	x := make([]Point, cs.n+1)
	x[0] = cs.head
	x[cs.n] = cs.tail
	copy(x[1:cs.n], inner)

	cs.sys.Reset()
	for i := 0; i <= cs.n-2; i++ {
		cs.sys.Set(i, i, 4)
		if i > 0 {
			cs.sys.Set(i, i-1, 1)
		}
		if i < cs.n-2 {
			cs.sys.Set(i, i+1, 1)
		}
		r := x[i+2].Sub(x[i]).Mul(3)
		cs.rhs[i*2] = r.X
		cs.rhs[i*2+1] = r.Y
	}
	if err := cs.sys.Factorize(); err != nil {
		return err
	}
	if err := cs.sys.Solve(cs.rhs, 2); err != nil {
		return err
	}

	d := make([]Vec2, cs.n+1)
	for i := 1; i <= cs.n-1; i++ {
		d[i] = Vec(cs.rhs[(i-1)*2], cs.rhs[(i-1)*2+1])
	}

	for i := 0; i < cs.n; i++ {
		step := x[i+1].Sub(x[i])
		cs.coeffs[i] = segmentCoeffs{
			a: Vec2(x[i]),
			b: d[i],
			c: step.Mul(3).Sub(d[i].Mul(2)).Sub(d[i+1]),
			d: step.Mul(-2).Add(d[i]).Add(d[i+1]),
		}
	}
	cs.fitted = true
	return nil
}

// Curve returns the fitted curve as unit-duration [CubicPolynomial]
// segments in path order. It returns [ErrNotFitted] before a successful
// [CubicSpline.Fit].
func (cs *CubicSpline) Curve() (CubicCurve, error) {
	if !cs.fitted {
		return nil, ErrNotFitted
	}
	curve := make(CubicCurve, cs.n)
	for i, sc := range cs.coeffs {
		curve[i] = CubicPolynomial{
			Duration: 1.0,
			Coeffs: [2][4]float64{
				{sc.d.X, sc.c.X, sc.b.X, sc.a.X},
				{sc.d.Y, sc.c.Y, sc.b.Y, sc.a.Y},
			},
		}
	}
	return curve, nil
}

// StretchEnergy returns the bending energy of the fitted curve, the exact
// integral over all segments of the squared second derivative:
//
//	Σᵢ ∫₀¹ ‖2·cᵢ + 6·dᵢ·s‖² ds = Σᵢ 4·‖cᵢ‖² + 12·‖dᵢ‖² + 12·(cᵢ·dᵢ)
//
// The closed form is exact, so downstream optimizers can rely on its
// gradient structure. It returns [ErrNotFitted] before a successful
// [CubicSpline.Fit].
func (cs *CubicSpline) StretchEnergy() (float64, error) {
	if !cs.fitted {
		return 0, ErrNotFitted
	}
	var energy float64
	for _, sc := range cs.coeffs {
		energy += 4*sc.c.Hypot2() + 12*sc.d.Hypot2() + 12*sc.c.Dot(sc.d)
	}
	return energy, nil
}

// GradWrtInnerPoints will compute the gradient of the stretch energy with
// respect to the interior waypoints, one vector per interior point, for use
// by trajectory optimizers. The adjoint solve it needs is available as
// [BandedSystem.SolveTranspose], but the chain rule through the tangent
// solve is not wired up yet, so the method currently only reports
// [ErrNotImplemented].
func (cs *CubicSpline) GradWrtInnerPoints(grad []Vec2) error {
	if !cs.fitted {
		return ErrNotFitted
	}
	return ErrNotImplemented
}
