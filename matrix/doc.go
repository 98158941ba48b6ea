// SPDX-License-Identifier: MIT

// Package matrix provides the dense real matrices that spectra generates,
// loads and analyzes.
//
// The matrix package provides:
//
//   - Matrix, a minimal interface (Rows, Cols, At, Set, Clone) with safe,
//     error-returning accessors.
//   - Dense, a row-major implementation backed by one flat slice.
//   - Central validators (square, symmetric, finite, strictly diagonally
//     dominant) returning package sentinels.
//   - The small linear-algebra kernel set the tools need: MatVec, Doolittle
//     LU with triangular solves, the max norm, and a Jacobi eigen kernel for
//     symmetric input.
//
// All kernels treat their inputs as read-only and allocate fresh results.
// Errors are sentinels matched with errors.Is; wrappers only add an
// operation tag.
//
//	import "github.com/katalvlaran/spectra/matrix"
//
//	a, _ := matrix.NewDenseFromRows([][]float64{{4, -1}, {-1, 4}})
//	l, u, _ := matrix.LU(a)
//	x, _ := matrix.SolveLU(l, u, []float64{3, 3})
package matrix
