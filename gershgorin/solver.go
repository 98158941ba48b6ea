// SPDX-License-Identifier: MIT
package gershgorin

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/spectra/matrix"
)

// Solver names accepted by NewSolver.
const (
	SolverGeneral   = "general"
	SolverSymmetric = "symmetric"
	SolverJacobi    = "jacobi"
)

// Jacobi defaults; both scale with the input (see JacobiSolver).
const (
	DefaultJacobiTol    = 1e-12
	DefaultJacobiSweeps = 50
)

// Solver computes the eigenvalues of a square, finite matrix.
// The order of the returned values is implementation-defined and carries no
// correspondence to rows. Implementations must not mutate m.
type Solver interface {
	Eigenvalues(m matrix.Matrix) ([]complex128, error)
}

// SolverFunc adapts an ordinary function to the Solver interface.
type SolverFunc func(m matrix.Matrix) ([]complex128, error)

// Eigenvalues calls f(m).
func (f SolverFunc) Eigenvalues(m matrix.Matrix) ([]complex128, error) { return f(m) }

// GeneralSolver uses gonum's nonsymmetric dense eigendecomposition.
// Complex-conjugate pairs are returned adjacent, as gonum reports them.
type GeneralSolver struct{}

// Eigenvalues implements Solver.
func (GeneralSolver) Eigenvalues(m matrix.Matrix) ([]complex128, error) {
	a, err := toGonum(m)
	if err != nil {
		return nil, err
	}
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, fmt.Errorf("general solver: %w", matrix.ErrMatrixEigenFailed)
	}

	return eig.Values(nil), nil
}

// SymmetricSolver uses gonum's symmetric eigendecomposition.
// Input must be symmetric within Tol (absolute); 0 demands exact symmetry.
type SymmetricSolver struct {
	Tol float64
}

// Eigenvalues implements Solver. Results are real and ascending.
func (s SymmetricSolver) Eigenvalues(m matrix.Matrix) ([]complex128, error) {
	if err := matrix.ValidateSymmetric(m, s.Tol); err != nil {
		return nil, fmt.Errorf("symmetric solver: %w", err)
	}
	a, err := toGonum(m)
	if err != nil {
		return nil, err
	}
	n, _ := a.Dims()
	sym := mat.NewSymDense(n, a.RawMatrix().Data)

	var es mat.EigenSym
	if ok := es.Factorize(sym, false); !ok {
		return nil, fmt.Errorf("symmetric solver: %w", matrix.ErrMatrixEigenFailed)
	}

	return toComplex(es.Values(nil)), nil
}

// JacobiSolver runs classical (largest-pivot) Jacobi rotations via matrix.Eigen.
//
// Tol is relative: convergence is declared once every off-diagonal entry is
// ≤ Tol·max(1, max|a_ij|). MaxIter caps the number of rotations; 0 selects
// DefaultJacobiSweeps·n². Zero-valued fields take defaults.
type JacobiSolver struct {
	Tol     float64
	MaxIter int
}

// Eigenvalues implements Solver. Results are real and unsorted.
func (s JacobiSolver) Eigenvalues(m matrix.Matrix) ([]complex128, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, fmt.Errorf("jacobi solver: %w", err)
	}
	n := m.Rows()
	tol := s.Tol
	if tol <= 0 {
		tol = DefaultJacobiTol
	}
	scale, err := maxAbs(m)
	if err != nil {
		return nil, fmt.Errorf("jacobi solver: %w", err)
	}
	tol *= math.Max(1, scale)

	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultJacobiSweeps * n * n
	}
	vals, _, err := matrix.Eigen(m, tol, maxIter)
	if err != nil {
		return nil, fmt.Errorf("jacobi solver: %w", err)
	}

	return toComplex(vals), nil
}

// NewSolver maps a solver name ("general", "symmetric", "jacobi"; case-insensitive,
// empty means "general") to a Solver. jacobi configures the Jacobi variant and
// is ignored otherwise.
func NewSolver(name string, jacobi JacobiSolver) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SolverGeneral:
		return GeneralSolver{}, nil
	case SolverSymmetric:
		return SymmetricSolver{}, nil
	case SolverJacobi:
		return jacobi, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
	}
}

// toGonum copies m into a gonum dense matrix, refusing shapes gonum would panic on.
func toGonum(m matrix.Matrix) (*mat.Dense, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, err
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, err
	}
	n := m.Rows()
	if d, ok := m.(*matrix.Dense); ok {
		return mat.NewDense(n, n, d.Values()), nil
	}
	data := make([]float64, n*n)
	var (
		i, j int
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if data[i*n+j], err = m.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	return mat.NewDense(n, n, data), nil
}

func toComplex(vals []float64) []complex128 {
	out := make([]complex128, len(vals))
	for i, v := range vals {
		out[i] = complex(v, 0)
	}

	return out
}

func maxAbs(m matrix.Matrix) (float64, error) {
	var (
		best, v float64
		err     error
	)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, err
			}
			best = math.Max(best, math.Abs(v))
		}
	}

	return best, nil
}
