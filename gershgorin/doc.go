// SPDX-License-Identifier: MIT

// Package gershgorin localizes the eigenvalues of a square matrix with
// Gershgorin disks and cross-checks the localization against the matrix's
// exact spectrum.
//
// What it computes:
//
//   - Disks: one disk per row i, centered at A[i,i] with radius
//     Σ_{j≠i} |A[i,j]|, returned in row order so disk i always belongs to
//     diagonal entry i.
//   - Spectrum: the eigenvalues of A, obtained from a Solver. The solver is a
//     black box behind an interface; the default wraps gonum's dense
//     nonsymmetric eigensolver (a LAPACK Dgeev port).
//   - Report: disks, spectrum, and one containment flag per eigenvalue
//     ("lies within radius of at least one center"). By the Gershgorin circle
//     theorem every flag must be true; the flags are data so tests and callers
//     can assert them.
//
// Solvers:
//
//	GeneralSolver{}   - gonum mat.Eigen, any real square matrix (default)
//	SymmetricSolver{} - gonum mat.EigenSym, rejects asymmetric input
//	JacobiSolver{}    - matrix.Eigen (Jacobi rotations), symmetric input
//	SolverFunc(f)     - adapter for hand-computed spectra in tests
//
// Errors:
//
//	ErrShape     - input is nil or not square
//	ErrNumerical - non-finite entries, or the solver failed/rejected the input
//
// Both wrap the underlying matrix sentinel, so errors.Is works for either.
//
// Concurrency: Disks is a pure function and *Analyzer holds only immutable
// configuration; both are safe for concurrent use on shared, unmodified
// matrices.
//
// Complexity: Disks O(n²); Spectrum O(n³) (solver-bound).
package gershgorin
