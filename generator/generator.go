// SPDX-License-Identifier: MIT
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/spectra/matrix"
)

// ErrInvalidArgument indicates a non-positive size, a nil random source, or
// unusable vector bounds. Generation refuses to proceed.
var ErrInvalidArgument = errors.New("generator: invalid argument")

// Default bounds for the exact solution of a generated Problem.
const (
	SolutionLow  = -1.0
	SolutionHigh = 1.0
)

const (
	opGenerate   = "Generate"
	opVector     = "GenerateVector"
	opNewProblem = "NewProblem"
)

// errorf tags ErrInvalidArgument with the operation and a formatted reason.
func errorf(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// Generate returns a random size×size symmetric, strictly diagonally
// dominant matrix with integer entries.
//
// Draw order is row-major over the full n×n grid (n² calls to rng.Float64),
// so a given seed always yields the same matrix. Rounding is half-to-even.
//
// Errors:
//   - ErrInvalidArgument - size < 1 or rng == nil.
func Generate(rng *rand.Rand, size int, opts ...Option) (*matrix.Dense, error) {
	if rng == nil {
		return nil, errorf(opGenerate, "nil random source")
	}
	if size < 1 {
		return nil, errorf(opGenerate, "size %d must be >= 1", size)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	n := size
	raw := make([]float64, n*n)
	for k := range raw {
		raw[k] = rng.Float64()
	}

	// S = round((R + Rᵀ) / 2); symmetric by construction.
	sym := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			sym[i*n+j] = math.RoundToEven((raw[i*n+j] + raw[j*n+i]) / 2)
		}
	}

	boost := diagonalBoost(o.Boost, sym, n)
	for i = 0; i < n; i++ {
		sym[i*n+i] += boost
	}

	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGenerate, err)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if err = m.Set(i, j, sym[i*n+j]); err != nil {
				return nil, fmt.Errorf("%s: %w", opGenerate, err)
			}
		}
	}

	return m, nil
}

// diagonalBoost computes the value added to every diagonal entry.
func diagonalBoost(policy Boost, sym []float64, n int) float64 {
	if policy != BoostTight {
		return float64(n)
	}

	// Smallest integer b with dᵢ + b > offᵢ for every row.
	need := 0.0
	var i, j int
	var off float64
	for i = 0; i < n; i++ {
		off = 0
		for j = 0; j < n; j++ {
			if j != i {
				off += math.Abs(sym[i*n+j])
			}
		}
		need = math.Max(need, off-sym[i*n+i]+1)
	}

	return need
}

// GenerateVector returns size independent draws uniform on [0,1).
//
// Errors:
//   - ErrInvalidArgument - size < 1 or rng == nil.
func GenerateVector(rng *rand.Rand, size int) ([]float64, error) {
	return GenerateVectorIn(rng, size, 0, 1)
}

// GenerateVectorIn returns size independent draws uniform on [lo,hi).
//
// Errors:
//   - ErrInvalidArgument - size < 1, rng == nil, non-finite bounds or lo >= hi.
func GenerateVectorIn(rng *rand.Rand, size int, lo, hi float64) ([]float64, error) {
	if rng == nil {
		return nil, errorf(opVector, "nil random source")
	}
	if size < 1 {
		return nil, errorf(opVector, "size %d must be >= 1", size)
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) || lo >= hi {
		return nil, errorf(opVector, "bounds [%g,%g) are not a finite non-empty interval", lo, hi)
	}

	v := make([]float64, size)
	width := hi - lo
	for i := range v {
		v[i] = lo + width*rng.Float64()
	}

	return v, nil
}

// NewProblem generates A (see Generate), an exact solution X uniform on
// [SolutionLow, SolutionHigh), and the right-hand side F = A·X.
// A is drawn first, then X, so the sequence is reproducible from a seed.
func NewProblem(rng *rand.Rand, size int, opts ...Option) (*Problem, error) {
	a, err := Generate(rng, size, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewProblem, err)
	}

	return NewProblemFrom(rng, a, SolutionLow, SolutionHigh)
}

// NewProblemFrom wraps an existing square matrix: X is drawn uniform on
// [lo,hi) and F = A·X. a is kept by reference, not copied.
//
// Errors:
//   - ErrInvalidArgument - nil rng, bad bounds.
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch - a is nil or not square.
func NewProblemFrom(rng *rand.Rand, a *matrix.Dense, lo, hi float64) (*Problem, error) {
	if a == nil {
		return nil, fmt.Errorf("%s: %w", opNewProblem, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewProblem, err)
	}
	x, err := GenerateVectorIn(rng, a.Rows(), lo, hi)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewProblem, err)
	}
	f, err := matrix.MatVec(a, x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewProblem, err)
	}

	return &Problem{A: a, X: x, F: f}, nil
}

// ErrorNorm returns ||X − xs||∞, the accuracy of a computed solution xs.
func (p *Problem) ErrorNorm(xs []float64) (float64, error) {
	d, err := matrix.SubVec(p.X, xs)
	if err != nil {
		return 0, err
	}

	return matrix.MaxNorm(d)
}
