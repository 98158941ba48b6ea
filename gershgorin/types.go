// SPDX-License-Identifier: MIT
package gershgorin

import (
	"errors"
	"math"
)

var (
	// ErrShape indicates the input is nil or not square.
	ErrShape = errors.New("gershgorin: matrix is not square")

	// ErrNumerical indicates non-finite input or an eigensolver failure.
	ErrNumerical = errors.New("gershgorin: numerical failure")

	// ErrUnknownSolver indicates an unrecognized solver name in NewSolver.
	ErrUnknownSolver = errors.New("gershgorin: unknown solver")
)

// Disk is a closed disk in the complex plane on the real axis.
// Radius is always ≥ 0.
type Disk struct {
	Center float64
	Radius float64
}

// Interval returns the disk's trace on the real axis, [Center−Radius, Center+Radius].
func (d Disk) Interval() Interval {
	return Interval{Lo: d.Center - d.Radius, Hi: d.Center + d.Radius}
}

// Interval is a closed real interval [Lo, Hi].
type Interval struct {
	Lo float64
	Hi float64
}

// Contains reports whether Lo−tol ≤ x ≤ Hi+tol.
func (iv Interval) Contains(x, tol float64) bool {
	return x >= iv.Lo-tol && x <= iv.Hi+tol
}

// Union returns the smallest interval covering every disk, or the zero
// Interval when disks is empty.
func Union(disks []Disk) Interval {
	if len(disks) == 0 {
		return Interval{}
	}
	out := disks[0].Interval()
	for _, d := range disks[1:] {
		iv := d.Interval()
		out.Lo = math.Min(out.Lo, iv.Lo)
		out.Hi = math.Max(out.Hi, iv.Hi)
	}

	return out
}

// Report is the outcome of one analysis.
//
// Fields:
//   - Disks       - one per row, row order.
//   - Eigenvalues - the spectrum, in solver order (no correspondence to rows).
//   - Contained   - Contained[k] is true when Eigenvalues[k] lies within some disk.
//   - Bounds      - real-axis hull of the union of disks.
//   - Epsilon     - relative tolerance the containment flags were computed with.
type Report struct {
	Disks       []Disk
	Eigenvalues []complex128
	Contained   []bool
	Bounds      Interval
	Epsilon     float64
}

// AllContained reports whether every eigenvalue lies within the union of disks.
func (r *Report) AllContained() bool {
	for _, ok := range r.Contained {
		if !ok {
			return false
		}
	}

	return true
}

// SpectralRange returns [min Re λ, max Re λ]; zero Interval for an empty spectrum.
func (r *Report) SpectralRange() Interval {
	if len(r.Eigenvalues) == 0 {
		return Interval{}
	}
	out := Interval{Lo: real(r.Eigenvalues[0]), Hi: real(r.Eigenvalues[0])}
	for _, v := range r.Eigenvalues[1:] {
		out.Lo = math.Min(out.Lo, real(v))
		out.Hi = math.Max(out.Hi, real(v))
	}

	return out
}

// Brackets reports whether Bounds covers SpectralRange (within tolerance).
// For symmetric input this is the practical form of the containment property.
func (r *Report) Brackets() bool {
	sr := r.SpectralRange()
	tol := r.Epsilon * math.Max(1, math.Max(math.Abs(r.Bounds.Lo), math.Abs(r.Bounds.Hi)))

	return r.Bounds.Contains(sr.Lo, tol) && r.Bounds.Contains(sr.Hi, tol)
}

// IsReal reports whether every eigenvalue has a zero imaginary part.
// Symmetric input must satisfy this; callers can assert it as a cross-check.
func (r *Report) IsReal() bool {
	for _, v := range r.Eigenvalues {
		if imag(v) != 0 {
			return false
		}
	}

	return true
}
