// SPDX-License-Identifier: MIT
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Series is a convergence curve: X[k] is an iteration index and Y[k] the
// error norm at that iteration. Y never holds NaN.
type Series struct {
	X []float64
	Y []float64
	// Dropped counts the input points removed because Y was NaN.
	Dropped int
}

// Len returns the number of kept points.
func (s *Series) Len() int { return len(s.X) }

// ReadSeries flattens every field of every line into one sequence.
// Empty fields and any spelling of "nan" become NaN; other unparsable
// fields fail with ErrParse.
func ReadSeries(r io.Reader) ([]float64, error) {
	cr := newReader(r)
	var out []float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadSeries: %w", err)
		}
		for j, field := range rec {
			v, perr := parseSeriesField(field)
			if perr != nil {
				line, _ := cr.FieldPos(j)
				return nil, fmt.Errorf("ReadSeries: line %d field %d: %w", line, j+1, perr)
			}
			out = append(out, v)
		}
	}

	return out, nil
}

// LoadSeries opens path and reads it with ReadSeries.
func LoadSeries(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSeries: %w", err)
	}
	defer f.Close()

	v, err := ReadSeries(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// PairSeries zips x and y after checking their lengths agree, then drops
// every index where y is NaN. NaN in x is kept: only the error axis marks
// a failed iteration.
//
// Errors:
//   - ErrShape - len(x) != len(y) (checked before filtering).
func PairSeries(x, y []float64) (*Series, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("PairSeries: %d x values vs %d y values: %w", len(x), len(y), ErrShape)
	}
	s := &Series{
		X: make([]float64, 0, len(x)),
		Y: make([]float64, 0, len(y)),
	}
	for k := range y {
		if math.IsNaN(y[k]) {
			s.Dropped++
			continue
		}
		s.X = append(s.X, x[k])
		s.Y = append(s.Y, y[k])
	}

	return s, nil
}

// LoadCurve loads both files and pairs them.
func LoadCurve(xPath, yPath string) (*Series, error) {
	x, err := LoadSeries(xPath)
	if err != nil {
		return nil, err
	}
	y, err := LoadSeries(yPath)
	if err != nil {
		return nil, err
	}

	return PairSeries(x, y)
}

// Summary describes a filtered curve.
type Summary struct {
	Points  int
	Dropped int
	First   float64 // Y at the first kept point
	Last    float64 // Y at the last kept point
	Min     float64
	MinAt   float64 // X where Min occurs (first occurrence)
}

// Summarize returns the curve statistics. An empty series yields only the
// counts.
func (s *Series) Summarize() Summary {
	sum := Summary{Points: s.Len(), Dropped: s.Dropped}
	if s.Len() == 0 {
		return sum
	}
	sum.First, sum.Last = s.Y[0], s.Y[len(s.Y)-1]
	sum.Min, sum.MinAt = s.Y[0], s.X[0]
	for k := 1; k < len(s.Y); k++ {
		if s.Y[k] < sum.Min {
			sum.Min, sum.MinAt = s.Y[k], s.X[k]
		}
	}

	return sum
}

// SeriesHeader is the header row WriteSeries emits.
var SeriesHeader = []string{"iteration", "error"}

// WriteSeries writes the kept points as "iteration,error" rows under a
// header, ready for a chart renderer.
func WriteSeries(w io.Writer, s *Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SeriesHeader); err != nil {
		return fmt.Errorf("WriteSeries: %w", err)
	}
	for k := range s.X {
		if err := cw.Write([]string{formatFloat(s.X[k]), formatFloat(s.Y[k])}); err != nil {
			return fmt.Errorf("WriteSeries: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

func parseSeriesField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrParse)
	}

	return v, nil
}
