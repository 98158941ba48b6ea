// SPDX-License-Identifier: MIT
package gershgorin

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteText renders the report in its plain-text form:
//
//	Gershgorin circle 1: Center = 4, Radius = 2
//	...
//	Matrix spectrum (eigenvalues): [2 4 4 6]
//
// Circles are numbered from 1 in row order; eigenvalues print in solver
// order, real values without an imaginary part.
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, d := range r.Disks {
		fmt.Fprintf(bw, "Gershgorin circle %d: Center = %s, Radius = %s\n",
			i+1, formatFloat(d.Center), formatFloat(d.Radius))
	}
	parts := make([]string, len(r.Eigenvalues))
	for k, v := range r.Eigenvalues {
		parts[k] = formatComplex(v)
	}
	fmt.Fprintf(bw, "Matrix spectrum (eigenvalues): [%s]\n", strings.Join(parts, " "))

	return bw.Flush()
}

// WriteContainment writes one line per eigenvalue with its containment flag,
// followed by the disk-union bounds.
func (r *Report) WriteContainment(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for k, v := range r.Eigenvalues {
		fmt.Fprintf(bw, "eigenvalue %d: %s contained=%t\n", k+1, formatComplex(v), r.Contained[k])
	}
	fmt.Fprintf(bw, "disk union: [%s, %s]\n", formatFloat(r.Bounds.Lo), formatFloat(r.Bounds.Hi))

	return bw.Flush()
}

// String returns the WriteText rendering.
func (r *Report) String() string {
	var sb strings.Builder
	_ = r.WriteText(&sb)

	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatComplex(v complex128) string {
	if imag(v) == 0 {
		return formatFloat(real(v))
	}

	return strconv.FormatComplex(v, 'g', -1, 128)
}
