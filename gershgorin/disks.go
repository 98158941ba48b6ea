// SPDX-License-Identifier: MIT
package gershgorin

import (
	"fmt"
	"math"

	"github.com/katalvlaran/spectra/matrix"
)

const (
	opDisks    = "Disks"
	opSpectrum = "Spectrum"
	opReport   = "Report"
)

// shapeErrorf tags ErrShape and the matrix cause with the operation name.
func shapeErrorf(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrShape, cause)
}

// numericalErrorf tags ErrNumerical and the underlying cause with the operation name.
func numericalErrorf(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNumerical, cause)
}

// Disks computes one Gershgorin disk per row of m.
//
// Implementation:
//   - Stage 1: require a non-nil square matrix.
//   - Stage 2: for each row i in order, center = m[i][i] and
//     radius = Σ_j |m[i][j]| − |center|.
//
// Behavior highlights:
//   - Output order is row order; disks[i].Center == m[i][i] exactly.
//   - m is only read; calling Disks twice yields identical slices.
//   - Radius is clamped at 0 to absorb the (theoretical) cancellation of
//     Σ|·| − |center| when off-diagonal entries are all zero.
//
// Errors:
//   - ErrShape (wrapping matrix.ErrNilMatrix or matrix.ErrDimensionMismatch).
//
// Complexity:
//   - Time O(n²), Space O(n).
func Disks(m matrix.Matrix) ([]Disk, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, shapeErrorf(opDisks, err)
	}

	n := m.Rows()
	disks := make([]Disk, n)
	var (
		i, j      int
		v, center float64
		rowAbsSum float64
		err       error
	)
	for i = 0; i < n; i++ {
		rowAbsSum = 0
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("%s: %w", opDisks, err)
			}
			rowAbsSum += math.Abs(v)
		}
		if center, err = m.At(i, i); err != nil {
			return nil, fmt.Errorf("%s: %w", opDisks, err)
		}
		disks[i] = Disk{Center: center, Radius: math.Max(0, rowAbsSum-math.Abs(center))}
	}

	return disks, nil
}
