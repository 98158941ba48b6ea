// SPDX-License-Identifier: MIT
package generator

import "github.com/katalvlaran/spectra/matrix"

// Boost selects how much is added to every diagonal entry after rounding.
//
//   - BoostSize  - add n (the matrix size). Always sufficient because each
//     rounded off-diagonal entry is 0 or 1.
//   - BoostTight - add maxᵢ(offᵢ − dᵢ) + 1 clamped at 0, where offᵢ is row i's
//     off-diagonal sum and dᵢ its rounded diagonal: the smallest integer that
//     keeps every row strictly dominant for this particular draw.
type Boost int

const (
	// BoostSize adds the matrix size to each diagonal entry.
	BoostSize Boost = iota

	// BoostTight adds the minimal integer preserving strict dominance.
	BoostTight
)

// String returns the config/CLI spelling of the policy.
func (b Boost) String() string {
	switch b {
	case BoostSize:
		return "size"
	case BoostTight:
		return "tight"
	default:
		return "unknown"
	}
}

// ParseBoost maps "size"/"tight" to a Boost; anything else is ErrInvalidArgument.
func ParseBoost(s string) (Boost, error) {
	switch s {
	case "", "size":
		return BoostSize, nil
	case "tight":
		return BoostTight, nil
	default:
		return BoostSize, errorf("ParseBoost", "unknown boost %q", s)
	}
}

// Options configures Generate.
//
// Fields:
//   - Boost - diagonal boost policy (default BoostSize).
type Options struct {
	Boost Boost
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the classic recipe: BoostSize.
func DefaultOptions() Options {
	return Options{Boost: BoostSize}
}

// WithBoost selects the diagonal boost policy.
// Panics on an unknown policy (programmer error).
func WithBoost(b Boost) Option {
	if b != BoostSize && b != BoostTight {
		panic("generator: WithBoost: unknown boost policy")
	}

	return func(o *Options) { o.Boost = b }
}

// Problem is a ready-made linear system A·X = F with a known exact solution.
//
// A is symmetric and strictly diagonally dominant, X is uniform on [-1,1),
// and F is computed as A·X. Solvers are judged by ||X − X̃||∞.
type Problem struct {
	A *matrix.Dense
	X []float64
	F []float64
}
