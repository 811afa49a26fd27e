// Package spline fits smooth, twice-differentiable piecewise-cubic curves
// through ordered sequences of 2D waypoints.
//
// The fit is a clamped cubic spline: the curve passes through every waypoint,
// has zero tangent at the first and last waypoint, and is C² continuous at
// every interior junction. The interior tangents are the solution of a
// tridiagonal linear system, which [CubicSpline] solves in O(N) time using
// [BandedSystem], an in-place banded LU solver without pivoting.
//
// # Fitting
//
// A fit proceeds in two steps: [CubicSpline.Configure] fixes the endpoints
// and the number of segments, and [CubicSpline.Fit] takes the interior
// waypoints and solves for the per-segment polynomial coefficients. The
// fitted curve is read out with [CubicSpline.Curve]. Its bending energy, the
// exact integral of the squared second derivative that trajectory optimizers
// use as a smoothness cost, is read out with [CubicSpline.StretchEnergy].
//
// # Banded systems
//
// [BandedSystem] is generic in bandwidth and in the number of right-hand-side
// columns, and also solves transposed systems (see
// [BandedSystem.SolveTranspose]), which adjoint and gradient computations
// need. It does not pivot: callers must supply diagonally dominant matrices,
// and factorization reports [ErrSingular] when it encounters a pivot too
// close to zero to divide by.
package spline
