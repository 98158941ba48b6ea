// SPDX-License-Identifier: MIT
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/spectra/matrix"
)

var (
	// ErrParse indicates a field that is not a real number.
	ErrParse = errors.New("csvio: unparsable field")

	// ErrShape indicates sequences whose lengths disagree.
	ErrShape = errors.New("csvio: shape mismatch")
)

const commentRune = '#'

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comment = commentRune
	cr.FieldsPerRecord = -1 // row-length checks are ours
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return cr
}

// ReadMatrix parses comma-separated rows into a Dense matrix.
//
// Errors:
//   - matrix.ErrBadShape - no rows, or rows of different length.
//   - ErrParse           - a field is empty or not a number.
//
// "nan" and "inf" fields are accepted and stored as-is; the analyzer reports
// them as numerical errors.
//   - I/O and CSV syntax errors from the underlying reader, wrapped.
func ReadMatrix(r io.Reader) (*matrix.Dense, error) {
	cr := newReader(r)
	var rows [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadMatrix: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rows) > 0 && len(rec) != len(rows[0]) {
			return nil, fmt.Errorf("ReadMatrix: line %d has %d fields, want %d: %w",
				line, len(rec), len(rows[0]), matrix.ErrBadShape)
		}
		row := make([]float64, len(rec))
		for j, field := range rec {
			v, perr := parseField(field)
			if perr != nil {
				return nil, fmt.Errorf("ReadMatrix: line %d field %d: %w", line, j+1, perr)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	m, err := matrix.NewDenseFromRows(rows, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("ReadMatrix: %w", err)
	}

	return m, nil
}

// LoadMatrix opens path and reads it with ReadMatrix.
func LoadMatrix(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadMatrix: %w", err)
	}
	defer f.Close()

	m, err := ReadMatrix(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// WriteMatrix writes m in the ReadMatrix format, shortest round-trip
// formatting per entry (integers have no fractional part).
func WriteMatrix(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("WriteMatrix: %w", err)
	}
	cw := csv.NewWriter(w)
	rec := make([]string, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := range rec {
			v, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("WriteMatrix: %w", err)
			}
			rec[j] = formatFloat(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("WriteMatrix: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// SaveMatrix writes m to path (created or truncated, mode 0644).
func SaveMatrix(path string, m matrix.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("SaveMatrix: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("SaveMatrix: %w", cerr)
		}
	}()

	return WriteMatrix(f, m)
}

// parseField parses a matrix entry; matrices carry no missing values.
func parseField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrParse)
	}

	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
