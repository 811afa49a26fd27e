package spline

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBandShape is returned when a banded system is requested with a
	// non-positive size or a negative bandwidth.
	ErrBandShape = errors.New("spline: invalid band shape")

	// ErrSingular is returned by [BandedSystem.Factorize] when a pivot is
	// zero or too close to zero to divide by. The factorization does not
	// pivot, so this also triggers for matrices that are merely far from
	// diagonally dominant.
	ErrSingular = errors.New("spline: zero pivot in factorization")

	// ErrNotFactored is returned by the solve methods when the system has
	// not been factorized, or has been mutated since its last factorization.
	ErrNotFactored = errors.New("spline: system is not factorized")

	// ErrDimensionMismatch is returned when a right-hand side or waypoint
	// sequence does not have the expected size.
	ErrDimensionMismatch = errors.New("spline: dimension mismatch")
)

// Pivots smaller than this in magnitude are treated as zero. The matrices
// this package builds have pivots of at least 2+√3, so the threshold only
// rejects genuinely degenerate input.
const minPivot = 1e-12

// BandedSystem is an n×n matrix whose nonzero entries are confined to a
// diagonal band: at most lowerBw diagonals below the main diagonal and
// upperBw above it. Only the in-band entries are stored, so factorizing
// costs O(n·(lowerBw+upperBw)²) and each solve O(n·(lowerBw+upperBw)).
//
// [BandedSystem.Factorize] overwrites the matrix in place with its LU
// factors. After that the entries read through [BandedSystem.At] belong to
// the factors, not to the original matrix; [BandedSystem.Reset] returns the
// system to a zeroed, unfactored state without reallocating.
//
// A BandedSystem is not safe for concurrent use.
type BandedSystem struct {
	n        int
	lowerBw  int
	upperBw  int
	data     []float64
	factored bool
}

// NewBandedSystem returns a zeroed n×n banded system with the given lower
// and upper bandwidths. It returns [ErrBandShape] if n < 1 or a bandwidth is
// negative.
func NewBandedSystem(n, lowerBw, upperBw int) (*BandedSystem, error) {
	if n < 1 || lowerBw < 0 || upperBw < 0 {
		return nil, fmt.Errorf("%w: n=%d, lower=%d, upper=%d", ErrBandShape, n, lowerBw, upperBw)
	}
	return &BandedSystem{
		n:       n,
		lowerBw: lowerBw,
		upperBw: upperBw,
		data:    make([]float64, n*(lowerBw+upperBw+1)),
	}, nil
}

// Size returns the number of unknowns n.
func (bs *BandedSystem) Size() int {
	return bs.n
}

// Bandwidths returns the lower and upper bandwidths.
func (bs *BandedSystem) Bandwidths() (lower, upper int) {
	return bs.lowerBw, bs.upperBw
}

// Reset zeroes all in-band entries and discards any factorization. The
// dimensions and backing storage are kept.
func (bs *BandedSystem) Reset() {
	clear(bs.data)
	bs.factored = false
}

// The band is stored as suggested in Golub & Van Loan, "Matrix
// Computations": entry (i, j) lives at (i-j+upperBw)*n + j. Offsets are in
// bijection with the in-band index pairs, so in-band entries never alias.
func (bs *BandedSystem) offset(i, j int) int {
	if i < 0 || i >= bs.n || j < 0 || j >= bs.n || i-j > bs.lowerBw || j-i > bs.upperBw {
		panic(fmt.Sprintf("spline: index (%d, %d) outside band of %d×%d system (lower=%d, upper=%d)",
			i, j, bs.n, bs.n, bs.lowerBw, bs.upperBw))
	}
	return (i-j+bs.upperBw)*bs.n + j
}

// At returns the entry at (i, j). After [BandedSystem.Factorize] it returns
// the corresponding entry of the packed LU factors instead. It panics if
// (i, j) lies outside the band; out-of-band entries are zero by definition
// and are never stored.
func (bs *BandedSystem) At(i, j int) float64 {
	return bs.data[bs.offset(i, j)]
}

// Set stores v at (i, j), discarding any factorization. It panics if (i, j)
// lies outside the band.
func (bs *BandedSystem) Set(i, j int, v float64) {
	bs.data[bs.offset(i, j)] = v
	bs.factored = false
}

// Factorize decomposes the matrix in place into unit-lower-triangular and
// upper-triangular band factors (Doolittle LU), without pivoting. The
// multipliers overwrite the lower band and the Schur updates the upper band.
//
// No pivoting means the caller must supply a matrix whose pivots stay away
// from zero, diagonal dominance being the usual guarantee. Factorize returns
// [ErrSingular] as soon as a pivot of magnitude below 1e-12 turns up; the
// entries processed so far are garbage at that point and the system must be
// Reset and refilled before another attempt.
//
// Factorize on an already factored system is a no-op: running the
// elimination over the stored factors would destroy them.
func (bs *BandedSystem) Factorize() error {
	if bs.factored {
		return nil
	}
	n := bs.n
	for k := 0; k <= n-2; k++ {
		piv := bs.At(k, k)
		if math.Abs(piv) < minPivot {
			return fmt.Errorf("%w: pivot %d is %g", ErrSingular, k, piv)
		}
		iMax := min(k+bs.lowerBw, n-1)
		for i := k + 1; i <= iMax; i++ {
			if bs.At(i, k) != 0.0 {
				bs.Set(i, k, bs.At(i, k)/piv)
			}
		}
		jMax := min(k+bs.upperBw, n-1)
		for j := k + 1; j <= jMax; j++ {
			ukj := bs.At(k, j)
			if ukj == 0.0 {
				continue
			}
			for i := k + 1; i <= iMax; i++ {
				if lik := bs.At(i, k); lik != 0.0 {
					bs.Set(i, j, bs.At(i, j)-lik*ukj)
				}
			}
		}
	}
	if piv := bs.At(n-1, n-1); math.Abs(piv) < minPivot {
		return fmt.Errorf("%w: pivot %d is %g", ErrSingular, n-1, piv)
	}
	bs.factored = true
	return nil
}

// checkRHS validates a row-major right-hand side of the given column count.
func (bs *BandedSystem) checkRHS(b []float64, cols int) error {
	if !bs.factored {
		return ErrNotFactored
	}
	if cols < 1 || len(b) != bs.n*cols {
		return fmt.Errorf("%w: got %d values, want %d rows × %d columns", ErrDimensionMismatch, len(b), bs.n, cols)
	}
	return nil
}

// Solve solves A·X = B for X and stores it back into b. The right-hand side
// b holds n rows of cols columns each, row-major; all columns are solved in
// one pass over the factors, without re-factorizing. The system must have
// been factorized, otherwise Solve returns [ErrNotFactored].
func (bs *BandedSystem) Solve(b []float64, cols int) error {
	if err := bs.checkRHS(b, cols); err != nil {
		return err
	}
	n := bs.n
	// Forward substitution through the unit lower factor.
	for j := 0; j <= n-1; j++ {
		iMax := min(j+bs.lowerBw, n-1)
		for i := j + 1; i <= iMax; i++ {
			if l := bs.At(i, j); l != 0.0 {
				subRow(b, cols, i, j, l)
			}
		}
	}
	// Back substitution through the upper factor.
	for j := n - 1; j >= 0; j-- {
		divRow(b, cols, j, bs.At(j, j))
		iMin := max(0, j-bs.upperBw)
		for i := iMin; i <= j-1; i++ {
			if u := bs.At(i, j); u != 0.0 {
				subRow(b, cols, i, j, u)
			}
		}
	}
	return nil
}

// SolveTranspose solves Aᵀ·X = B for X and stores it back into b, with the
// same right-hand-side layout and preconditions as [BandedSystem.Solve]. It
// reuses the factors of A: Aᵀ = Uᵀ·Lᵀ, so substitution runs forward through
// Uᵀ and backward through Lᵀ.
func (bs *BandedSystem) SolveTranspose(b []float64, cols int) error {
	if err := bs.checkRHS(b, cols); err != nil {
		return err
	}
	n := bs.n
	for j := 0; j <= n-1; j++ {
		divRow(b, cols, j, bs.At(j, j))
		iMax := min(j+bs.upperBw, n-1)
		for i := j + 1; i <= iMax; i++ {
			if u := bs.At(j, i); u != 0.0 {
				subRow(b, cols, i, j, u)
			}
		}
	}
	for j := n - 1; j >= 0; j-- {
		iMin := max(0, j-bs.lowerBw)
		for i := iMin; i <= j-1; i++ {
			if l := bs.At(j, i); l != 0.0 {
				subRow(b, cols, i, j, l)
			}
		}
	}
	return nil
}

// subRow computes row(i) -= f * row(j) on a row-major matrix.
func subRow(b []float64, cols, i, j int, f float64) {
	ri := b[i*cols : (i+1)*cols]
	rj := b[j*cols : (j+1)*cols]
	for k := range ri {
		ri[k] -= f * rj[k]
	}
}

// divRow computes row(j) /= f on a row-major matrix.
func divRow(b []float64, cols, j int, f float64) {
	rj := b[j*cols : (j+1)*cols]
	for k := range rj {
		rj[k] /= f
	}
}
