// SPDX-License-Identifier: MIT

// Package csvio reads and writes the flat files around the analyzer:
// square matrices stored as comma-separated rows, and the two
// one-dimensional sequences (iteration index, error norm) an iterative
// solver logs while it runs.
//
// Matrix files:
//
//	4,-1,0,-1
//	-1,4,-1,0
//	...
//
// No header; one row per line; '#' starts a comment line. Ragged rows fail
// with matrix.ErrBadShape, unparsable fields with ErrParse. Squareness is
// left to the consumer (gershgorin reports it as ErrShape).
//
// Series files are read leniently: every field of every line is flattened
// into one sequence, and empty or "nan" fields become NaN. PairSeries then
// drops every index whose error value is NaN, because a diverged iteration
// step is expected and simply excluded from the curve.
package csvio
