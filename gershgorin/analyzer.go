// SPDX-License-Identifier: MIT
package gershgorin

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/cmplx"
	"time"

	"github.com/katalvlaran/spectra/matrix"
)

// DefaultEpsilon is the relative containment tolerance. Eigenvalues that land
// exactly on a disk boundary in exact arithmetic must still count as contained
// after floating-point rounding.
const DefaultEpsilon = 1e-9

// Options configures an Analyzer.
type Options struct {
	Solver  Solver
	Epsilon float64
	Logger  *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: GeneralSolver,
// DefaultEpsilon, and a logger that discards everything.
func DefaultOptions() Options {
	return Options{
		Solver:  GeneralSolver{},
		Epsilon: DefaultEpsilon,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSolver selects the eigensolver. Panics on nil.
func WithSolver(s Solver) Option {
	if s == nil {
		panic("gershgorin: WithSolver(nil)")
	}

	return func(o *Options) { o.Solver = s }
}

// WithEpsilon sets the relative containment tolerance.
// Panics if eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("gershgorin: WithEpsilon(%v): must be finite and >= 0", eps))
	}

	return func(o *Options) { o.Epsilon = eps }
}

// WithLogger routes analyzer debug records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("gershgorin: WithLogger(nil)")
	}

	return func(o *Options) { o.Logger = l }
}

// Analyzer computes spectra and Gershgorin reports. Configuration is fixed at
// construction; an *Analyzer is safe for concurrent use.
type Analyzer struct {
	opts Options
}

// NewAnalyzer builds an Analyzer from DefaultOptions plus opts.
func NewAnalyzer(opts ...Option) *Analyzer {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Analyzer{opts: o}
}

// Epsilon returns the configured containment tolerance.
func (a *Analyzer) Epsilon() float64 { return a.opts.Epsilon }

// Spectrum returns the n eigenvalues of m (complex in general, real parts
// only for symmetric input up to rounding). Order is solver-defined.
//
// Errors:
//   - ErrShape     - m is nil or not square.
//   - ErrNumerical - m has a NaN/±Inf entry, the solver failed, or it returned
//     the wrong number of values.
func (a *Analyzer) Spectrum(m matrix.Matrix) ([]complex128, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, shapeErrorf(opSpectrum, err)
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, numericalErrorf(opSpectrum, err)
	}

	vals, err := a.opts.Solver.Eigenvalues(m)
	if err != nil {
		return nil, numericalErrorf(opSpectrum, err)
	}
	if len(vals) != m.Rows() {
		return nil, numericalErrorf(opSpectrum,
			fmt.Errorf("%w: solver returned %d values for n=%d", matrix.ErrMatrixEigenFailed, len(vals), m.Rows()))
	}
	for _, v := range vals {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, numericalErrorf(opSpectrum, matrix.ErrNaNInf)
		}
	}

	return vals, nil
}

// Report computes disks and spectrum of m and flags each eigenvalue by
// containment in the union of disks.
//
// Containment of λ in disk (c, r) is |λ − c| ≤ r + ε·max(1, |c|+r), so
// boundary eigenvalues (e.g. 2 and 6 against center 4, radius 2) are kept.
//
// Errors: as Spectrum.
func (a *Analyzer) Report(m matrix.Matrix) (*Report, error) {
	start := time.Now()
	disks, err := Disks(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opReport, err)
	}
	vals, err := a.Spectrum(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opReport, err)
	}

	r := &Report{
		Disks:       disks,
		Eigenvalues: vals,
		Contained:   make([]bool, len(vals)),
		Bounds:      Union(disks),
		Epsilon:     a.opts.Epsilon,
	}
	outside := 0
	for k, v := range vals {
		r.Contained[k] = containedIn(v, disks, a.opts.Epsilon)
		if !r.Contained[k] {
			outside++
			a.opts.Logger.Warn("eigenvalue outside every disk",
				slog.Int("index", k),
				slog.String("value", formatComplex(v)))
		}
	}
	a.opts.Logger.Debug("gershgorin report",
		slog.Int("n", len(disks)),
		slog.Int("outside", outside),
		slog.Float64("bounds_lo", r.Bounds.Lo),
		slog.Float64("bounds_hi", r.Bounds.Hi),
		slog.Duration("elapsed", time.Since(start)))

	return r, nil
}

// Contains reports whether v lies within some disk, using the same tolerance
// rule as Analyzer.Report.
func Contains(disks []Disk, v complex128, eps float64) bool {
	return containedIn(v, disks, eps)
}

func containedIn(v complex128, disks []Disk, eps float64) bool {
	for _, d := range disks {
		tol := eps * math.Max(1, math.Abs(d.Center)+d.Radius)
		if cmplx.Abs(v-complex(d.Center, 0)) <= d.Radius+tol {
			return true
		}
	}

	return false
}
