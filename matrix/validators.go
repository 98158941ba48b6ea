// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/symmetry/finiteness checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly and callers still match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape → content).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil. Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is non-nil. Returns ErrDimensionMismatch otherwise.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquareNonNil is the composite NotNil → Square.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(1).
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateVecLen ensures the vector is non-nil and has length n.
// Errors: ErrNilMatrix (nil vector), ErrDimensionMismatch. Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite ensures every entry of m is finite.
// Assumes m is non-nil. Returns ErrNaNInf on the first offending cell
// (row-major scan order). Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if d, ok := m.(*Dense); ok {
		for off, v := range d.data {
			if isNonFinite(v) {
				return validatorErrorf("ValidateFinite",
					fmt.Errorf("(%d,%d): %w", off/d.c, off%d.c, ErrNaNInf))
			}
		}

		return nil
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if isNonFinite(v) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
		}
	}

	return nil
}

// ValidateSymmetric checks m is symmetric within tolerance tol:
// |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Inputs: Matrix m, tolerance tol (finite; negative values are flipped).
// Returns ErrNilMatrix/ErrDimensionMismatch on structural issues, ErrNaNInf on
// bad tol, ErrAsymmetry on violation.
// Complexity: O(n²) time, O(1) space.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if isNonFinite(tol) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	// A 1×1 matrix is trivially symmetric.
	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if aji, err = m.At(j, i); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			// !(x <= tol) also rejects NaN differences.
			if !(math.Abs(aij-aji) <= tol) {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// IsSymmetric reports whether m is square and symmetric within the option
// epsilon (DefaultEpsilon unless WithEpsilon is given).
func IsSymmetric(m Matrix, opts ...Option) bool {
	o := gatherOptions(opts...)

	return ValidateSymmetric(m, o.eps) == nil
}

// ValidateDiagonallyDominant checks strict row diagonal dominance:
// |A[i,i]| > Σ_{j≠i} |A[i,j]| for every row i.
//
// Combined with symmetry and a positive diagonal this implies positive
// definiteness, and it guarantees non-zero pivots in LU without pivoting.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNotDominant (wrapped with the
// first failing row).
// Complexity: O(n²).
func ValidateDiagonallyDominant(m Matrix) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateDiagonallyDominant", err)
	}

	n := m.Rows()
	var (
		i, j      int
		v, diag   float64
		offDiagAb float64
		err       error
	)
	for i = 0; i < n; i++ {
		offDiagAb = 0
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateDiagonallyDominant", err)
			}
			if i == j {
				diag = math.Abs(v)
				continue
			}
			offDiagAb += math.Abs(v)
		}
		if !(diag > offDiagAb) {
			return validatorErrorf("ValidateDiagonallyDominant",
				fmt.Errorf("row %d: |%g| <= %g: %w", i, diag, offDiagAb, ErrNotDominant))
		}
	}

	return nil
}
