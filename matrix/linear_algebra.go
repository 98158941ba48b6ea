// SPDX-License-Identifier: MIT
// Package matrix: the linear-algebra kernels used by the spectra tools.
//
// Purpose:
//   - MatVec builds right-hand sides f = A·x for generated test problems.
//   - LU/SolveLU solve A·x = f without pivoting (diagonally dominant input
//     never produces a zero pivot).
//   - MaxNorm/SubVec measure ||x_true − x_computed||∞.
//   - Eigen is a Jacobi eigen kernel for symmetric input.
//
// Notes:
//   - All kernels validate through validators.go and wrap with matrixErrorf.
//   - Inputs are never mutated; results are freshly allocated.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for dot products and substitutions.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/SolveLU.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping.
const (
	opMatVec  = "MatVec"
	opLU      = "LU"
	opSolveLU = "SolveLU"
	opEigen   = "Eigen"
	opSubVec  = "SubVec"
	opMaxNorm = "MaxNorm"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns m itself when it already is a *Dense, otherwise a Dense
// copy read through At. Callers that mutate the result must Clone first.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	d, err := NewDense(r, c, WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			d.data[i*c+j] = v
		}
	}

	return d, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var i, j, base int
	var acc float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// LU computes the Doolittle factorization A = L*U with unit diagonal on L (no pivoting).
// Implementation:
//   - Stage 1: Validate m (not nil, square); allocate Dense L,U; set diag(L)=1.
//   - Stage 2: For i=0..n-1, build row i of U and column i of L in fixed order.
//
// Behavior highlights:
//   - Deterministic loops on flat buffers; zero-pivot guard enforced.
//
// Returns:
//   - *Dense: L (unit lower triangular).
//   - *Dense: U (upper triangular).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (if U[i,i]==0 during factorization).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - Strictly diagonally dominant input (see ValidateDiagonallyDominant)
//     guarantees non-zero pivots; generated test matrices always qualify.
func LU(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	a, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	n := a.r
	l, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	u, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	for i := 0; i < n; i++ {
		l.data[i*n+i] = 1.0
	}

	var i, j, k int
	var sum, pivot float64
	for i = 0; i < n; i++ {
		// U[i][j] for j >= i
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * u.data[k*n+j]
			}
			u.data[i*n+j] = a.data[i*n+j] - sum
		}

		pivot = u.data[i*n+i]
		if pivot == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, fmt.Errorf("pivot %d: %w", i, ErrSingular))
		}

		// L[j][i] for j > i
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += l.data[j*n+k] * u.data[k*n+i]
			}
			l.data[j*n+i] = (a.data[j*n+i] - sum) / pivot
		}
	}

	return l, u, nil
}

// SolveLU solves L*U*x = b by forward substitution (L*y = b) followed by
// backward substitution (U*x = y).
//
// Inputs: l unit lower triangular, u upper triangular (both n×n), len(b)==n.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular (U[i,i]==0).
// Complexity: Time O(n^2), Space O(n).
func SolveLU(l, u Matrix, b []float64) ([]float64, error) {
	if err := ValidateSquareNonNil(l); err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}
	if err := ValidateSquareNonNil(u); err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}
	if l.Rows() != u.Rows() {
		return nil, matrixErrorf(opSolveLU, ErrDimensionMismatch)
	}
	n := l.Rows()
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}
	ld, err := toDense(l)
	if err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}
	ud, err := toDense(u)
	if err != nil {
		return nil, matrixErrorf(opSolveLU, err)
	}

	var i, j int
	var sum float64

	// Forward: y[i] = b[i] - Σ_{j<i} L[i][j]*y[j]
	y := make([]float64, n)
	for i = 0; i < n; i++ {
		sum = ZeroSum
		for j = 0; j < i; j++ {
			sum += ld.data[i*n+j] * y[j]
		}
		y[i] = b[i] - sum
	}

	// Backward: x[i] = (y[i] - Σ_{j>i} U[i][j]*x[j]) / U[i][i]
	x := make([]float64, n)
	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		for j = i + 1; j < n; j++ {
			sum += ud.data[i*n+j] * x[j]
		}
		if ud.data[i*n+i] == ZeroPivot {
			return nil, matrixErrorf(opSolveLU, fmt.Errorf("pivot %d: %w", i, ErrSingular))
		}
		x[i] = (y[i] - sum) / ud.data[i*n+i]
	}

	return x, nil
}

// SubVec returns a − b element-wise.
// Errors: ErrNilMatrix (nil operand), ErrDimensionMismatch (length differs).
func SubVec(a, b []float64) ([]float64, error) {
	if a == nil {
		return nil, matrixErrorf(opSubVec, ErrNilMatrix)
	}
	if err := ValidateVecLen(b, len(a)); err != nil {
		return nil, matrixErrorf(opSubVec, err)
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}

	return out, nil
}

// MaxNorm returns ||v||∞ = max |v[i]|.
// An empty vector has no norm: ErrInvalidDimensions.
// A NaN entry propagates as NaN so a broken solve is never reported as exact.
func MaxNorm(v []float64) (float64, error) {
	if len(v) == 0 {
		return 0, matrixErrorf(opMaxNorm, ErrInvalidDimensions)
	}
	norm := math.Abs(v[0])
	for _, x := range v[1:] {
		if math.IsNaN(x) {
			return math.NaN(), nil
		}
		norm = math.Max(norm, math.Abs(x))
	}

	return norm, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// Implementation:
//   - Stage 1: Validate square → finite → symmetric within tol.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and
//     apply a Jacobi rotation that zeroes it, accumulating rotations into Q.
//
// Inputs:
//   - m: symmetric Matrix (within tol); n := m.Rows().
//   - tol: convergence threshold on max |A[p,q]| (converged once ≤ tol) (typ. 1e-9..1e-12 for float64).
//   - maxIter: cap on the number of rotations.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unsorted).
//   - *Dense: Q whose columns are the matching eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (non-finite entry or tol),
//     ErrAsymmetry, ErrMatrixEigenFailed (max off-diagonal > tol after maxIter).
//
// Determinism:
//   - Fixed i→j pivot search and fixed update order produce stable results.
//
// Complexity:
//   - Time O(maxIter * n^2), Space O(n^2).
//
// AI-Hints:
//   - A cyclic sweep needs about n²/2 rotations; 5..10 sweeps are typical,
//     so maxIter ≈ 5*n*n is a safe cap for well-conditioned input.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	a := src.Clone().(*Dense) // working copy; the input stays untouched
	n := a.r
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for i := 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	var (
		iter, i, j, p, q0 int
		maxOff, off       float64
		app, aqq, apq     float64
		aip, aiq          float64
		qip, qiq          float64
		theta, t, c, s    float64
	)
	converged := false
	for iter = 0; iter <= maxIter; iter++ {
		// J.1: pivot (p,q0) maximizing |A[p,q0]|
		maxOff = ZeroSum
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, q0 = off, i, j
				}
			}
		}
		// J.2: convergence
		if maxOff <= tol {
			converged = true
			break
		}
		if iter == maxIter {
			break
		}

		// J.3: rotation parameters
		app = a.data[p*n+p]
		aqq = a.data[q0*n+q0]
		apq = a.data[p*n+q0]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: rotate rows/cols p and q0, keeping A symmetric
		for i = 0; i < n; i++ {
			if i == p || i == q0 {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+q0]
			a.data[i*n+p] = c*aip - s*aiq
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+q0] = s*aip + c*aiq
			a.data[q0*n+i] = a.data[i*n+q0]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[q0*n+q0] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+q0], a.data[q0*n+p] = 0, 0

		// J.5: accumulate rotation into Q
		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qiq = q.data[i*n+q0]
			q.data[i*n+p] = c*qip - s*qiq
			q.data[i*n+q0] = s*qip + c*qiq
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen,
			fmt.Errorf("max off-diagonal %g > tol %g after %d rotations: %w", maxOff, tol, maxIter, ErrMatrixEigenFailed))
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}
