package gershgorin_test

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/spectra/generator"
	"github.com/katalvlaran/spectra/gershgorin"
	"github.com/katalvlaran/spectra/matrix"
)

func mustDense(t testing.TB, rows [][]float64, opts ...matrix.Option) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows, opts...)
	require.NoError(t, err)

	return m
}

// cyclic4 has four identical disks (4, 2) and eigenvalues {2, 4, 4, 6};
// two of them sit exactly on the disk boundary.
func cyclic4(t testing.TB) *matrix.Dense {
	return mustDense(t, [][]float64{
		{4, -1, 0, -1},
		{-1, 4, -1, 0},
		{0, -1, 4, -1},
		{-1, 0, -1, 4},
	})
}

func sortedReal(vals []complex128) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = real(v)
	}
	sort.Float64s(out)

	return out
}

func TestDisks_Cyclic(t *testing.T) {
	disks, err := gershgorin.Disks(cyclic4(t))
	require.NoError(t, err)
	require.Len(t, disks, 4)
	for i, d := range disks {
		assert.Equal(t, gershgorin.Disk{Center: 4, Radius: 2}, d, "disk %d", i)
	}
}

// TestDisks_RowOrder pins disk i to row i with distinct diagonals and
// signed off-diagonal entries.
func TestDisks_RowOrder(t *testing.T) {
	m := mustDense(t, [][]float64{
		{3, -1, 0.5},
		{2, -5, -2},
		{0, 4, 10},
	})
	disks, err := gershgorin.Disks(m)
	require.NoError(t, err)
	assert.Equal(t, []gershgorin.Disk{
		{Center: 3, Radius: 1.5},
		{Center: -5, Radius: 4},
		{Center: 10, Radius: 4},
	}, disks)
	assert.Equal(t, gershgorin.Interval{Lo: -9, Hi: 14}, gershgorin.Union(disks))
}

func TestDisks_Idempotent(t *testing.T) {
	m, err := generator.Generate(rand.New(rand.NewSource(3)), 7)
	require.NoError(t, err)
	before := m.Values()

	a, err := gershgorin.Disks(m)
	require.NoError(t, err)
	b, err := gershgorin.Disks(m)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, before, m.Values(), "input untouched")
}

func TestDisks_Shape(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = gershgorin.Disks(m)
	require.ErrorIs(t, err, gershgorin.ErrShape)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = gershgorin.Disks(nil)
	require.ErrorIs(t, err, gershgorin.ErrShape)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestUnion_Empty(t *testing.T) {
	assert.Equal(t, gershgorin.Interval{}, gershgorin.Union(nil))
}

func TestContains_Tolerance(t *testing.T) {
	disks := []gershgorin.Disk{{Center: 4, Radius: 2}}
	assert.True(t, gershgorin.Contains(disks, 6, 0), "exact boundary")
	assert.True(t, gershgorin.Contains(disks, complex(6+1e-12, 0), 1e-9), "rounded boundary")
	assert.False(t, gershgorin.Contains(disks, complex(6+1e-12, 0), 0), "no tolerance")
	assert.False(t, gershgorin.Contains(disks, 7, 1e-9))
	assert.True(t, gershgorin.Contains(disks, complex(4, 2), 0), "off-axis boundary")
	assert.False(t, gershgorin.Contains(nil, 0, 1))
}

// AnalyzerSuite exercises spectrum and report across solvers.
type AnalyzerSuite struct {
	suite.Suite
	solvers map[string]gershgorin.Solver
}

func (s *AnalyzerSuite) SetupSuite() {
	s.solvers = map[string]gershgorin.Solver{
		gershgorin.SolverGeneral:   gershgorin.GeneralSolver{},
		gershgorin.SolverSymmetric: gershgorin.SymmetricSolver{},
		gershgorin.SolverJacobi:    gershgorin.JacobiSolver{},
	}
}

// TestCyclicSpectrum checks {2,4,4,6} and boundary containment for every solver.
func (s *AnalyzerSuite) TestCyclicSpectrum() {
	for name, solver := range s.solvers {
		a := gershgorin.NewAnalyzer(gershgorin.WithSolver(solver))
		r, err := a.Report(cyclic4(s.T()))
		require.NoError(s.T(), err, name)
		require.InDeltaSlice(s.T(), []float64{2, 4, 4, 6}, sortedReal(r.Eigenvalues), 1e-9, name)
		require.True(s.T(), r.AllContained(), "%s: %v", name, r.Eigenvalues)
		require.True(s.T(), r.Brackets(), name)
		require.Equal(s.T(), gershgorin.Interval{Lo: 2, Hi: 6}, r.Bounds)
	}
}

func (s *AnalyzerSuite) TestOneByOne() {
	for name, solver := range s.solvers {
		a := gershgorin.NewAnalyzer(gershgorin.WithSolver(solver))
		r, err := a.Report(mustDense(s.T(), [][]float64{{7}}))
		require.NoError(s.T(), err, name)
		require.Equal(s.T(), []gershgorin.Disk{{Center: 7, Radius: 0}}, r.Disks)
		require.Len(s.T(), r.Eigenvalues, 1)
		require.InDelta(s.T(), 7.0, real(r.Eigenvalues[0]), 1e-12, name)
		require.True(s.T(), r.AllContained(), name)
	}
}

// TestGeneratedContainment is the circle theorem over generated matrices.
func (s *AnalyzerSuite) TestGeneratedContainment() {
	for name, solver := range s.solvers {
		a := gershgorin.NewAnalyzer(gershgorin.WithSolver(solver))
		rng := rand.New(rand.NewSource(99))
		for n := 1; n <= 25; n++ {
			m, err := generator.Generate(rng, n)
			require.NoError(s.T(), err)
			r, err := a.Report(m)
			require.NoError(s.T(), err, "%s n=%d", name, n)
			require.Len(s.T(), r.Eigenvalues, n)
			require.Len(s.T(), r.Disks, n)
			require.True(s.T(), r.AllContained(), "%s n=%d", name, n)
			require.True(s.T(), r.Brackets(), "%s n=%d", name, n)
			// strictly dominant with positive diagonal: positive definite
			require.Greater(s.T(), r.SpectralRange().Lo, 0.0, "%s n=%d", name, n)
		}
	}
}

// TestSolversAgree compares the three solvers on the same symmetric input.
func (s *AnalyzerSuite) TestSolversAgree() {
	m, err := generator.Generate(rand.New(rand.NewSource(5)), 12)
	require.NoError(s.T(), err)

	ref, err := gershgorin.NewAnalyzer().Spectrum(m)
	require.NoError(s.T(), err)
	want := sortedReal(ref)
	for name, solver := range s.solvers {
		got, err := gershgorin.NewAnalyzer(gershgorin.WithSolver(solver)).Spectrum(m)
		require.NoError(s.T(), err, name)
		require.InDeltaSlice(s.T(), want, sortedReal(got), 1e-8, name)
	}

	sym, err := gershgorin.NewAnalyzer(gershgorin.WithSolver(gershgorin.SymmetricSolver{})).Report(m)
	require.NoError(s.T(), err)
	require.True(s.T(), sym.IsReal())
}

// TestNonSymmetric covers real and complex spectra of general matrices.
func (s *AnalyzerSuite) TestNonSymmetric() {
	a := gershgorin.NewAnalyzer()

	tri := mustDense(s.T(), [][]float64{{2, 1}, {0, 3}})
	r, err := a.Report(tri)
	require.NoError(s.T(), err)
	require.InDeltaSlice(s.T(), []float64{2, 3}, sortedReal(r.Eigenvalues), 1e-12)
	require.True(s.T(), r.AllContained())

	rot := mustDense(s.T(), [][]float64{{0, -1}, {1, 0}})
	r, err = a.Report(rot)
	require.NoError(s.T(), err)
	require.False(s.T(), r.IsReal())
	for _, v := range r.Eigenvalues {
		require.InDelta(s.T(), 1.0, math.Abs(imag(v)), 1e-12)
	}
	require.True(s.T(), r.AllContained(), "±i lie on the unit circles")

	_, err = gershgorin.NewAnalyzer(gershgorin.WithSolver(gershgorin.SymmetricSolver{})).Spectrum(tri)
	require.ErrorIs(s.T(), err, gershgorin.ErrNumerical)
	require.ErrorIs(s.T(), err, matrix.ErrAsymmetry)
}

func (s *AnalyzerSuite) TestShapeErrors() {
	a := gershgorin.NewAnalyzer()
	m, err := matrix.NewDense(2, 3)
	require.NoError(s.T(), err)

	_, err = a.Spectrum(m)
	require.ErrorIs(s.T(), err, gershgorin.ErrShape)
	_, err = a.Report(m)
	require.ErrorIs(s.T(), err, gershgorin.ErrShape)
	_, err = a.Report(nil)
	require.ErrorIs(s.T(), err, gershgorin.ErrShape)
}

func (s *AnalyzerSuite) TestNonFinite() {
	m := mustDense(s.T(), [][]float64{{1, 0}, {0, 1}}, matrix.WithNoValidateNaNInf())
	require.NoError(s.T(), m.Set(1, 0, math.NaN()))

	for name, solver := range s.solvers {
		a := gershgorin.NewAnalyzer(gershgorin.WithSolver(solver))
		_, err := a.Spectrum(m)
		require.ErrorIs(s.T(), err, gershgorin.ErrNumerical, name)
		require.ErrorIs(s.T(), err, matrix.ErrNaNInf, name)
		_, err = a.Report(m)
		require.ErrorIs(s.T(), err, gershgorin.ErrNumerical, name)
	}

	require.NoError(s.T(), m.Set(1, 0, math.Inf(1)))
	_, err := gershgorin.NewAnalyzer().Spectrum(m)
	require.ErrorIs(s.T(), err, gershgorin.ErrNumerical)
}

// TestSolverFailures checks how solver misbehavior surfaces.
func (s *AnalyzerSuite) TestSolverFailures() {
	m := mustDense(s.T(), [][]float64{{1, 0}, {0, 2}})
	boom := errors.New("boom")

	cases := map[string]gershgorin.SolverFunc{
		"error":     func(matrix.Matrix) ([]complex128, error) { return nil, boom },
		"too few":   func(matrix.Matrix) ([]complex128, error) { return []complex128{1}, nil },
		"nan value": func(matrix.Matrix) ([]complex128, error) { return []complex128{1, complex(math.NaN(), 0)}, nil },
	}
	for name, fn := range cases {
		_, err := gershgorin.NewAnalyzer(gershgorin.WithSolver(fn)).Spectrum(m)
		require.ErrorIs(s.T(), err, gershgorin.ErrNumerical, name)
	}

	_, err := gershgorin.NewAnalyzer(gershgorin.WithSolver(cases["error"])).Spectrum(m)
	require.ErrorIs(s.T(), err, boom)

	// one rotation cannot diagonalize the cyclic matrix
	capped := gershgorin.JacobiSolver{MaxIter: 1}
	_, err = gershgorin.NewAnalyzer(gershgorin.WithSolver(capped)).Spectrum(cyclic4(s.T()))
	require.ErrorIs(s.T(), err, gershgorin.ErrNumerical)
	require.ErrorIs(s.T(), err, matrix.ErrMatrixEigenFailed)
}

// TestOutsideFlag shows the flags are data: a wrong spectrum is reported, not hidden.
func (s *AnalyzerSuite) TestOutsideFlag() {
	fake := gershgorin.SolverFunc(func(matrix.Matrix) ([]complex128, error) {
		return []complex128{1, 100}, nil
	})
	r, err := gershgorin.NewAnalyzer(gershgorin.WithSolver(fake)).Report(mustDense(s.T(), [][]float64{{1, 0}, {0, 2}}))
	require.NoError(s.T(), err)
	require.Equal(s.T(), []bool{true, false}, r.Contained)
	require.False(s.T(), r.AllContained())
	require.False(s.T(), r.Brackets())
}

func (s *AnalyzerSuite) TestReportIdempotent() {
	m, err := generator.Generate(rand.New(rand.NewSource(17)), 9)
	require.NoError(s.T(), err)
	a := gershgorin.NewAnalyzer()
	r1, err := a.Report(m)
	require.NoError(s.T(), err)
	r2, err := a.Report(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), r1, r2)
}

func TestAnalyzerSuite(t *testing.T) {
	suite.Run(t, new(AnalyzerSuite))
}

func TestReport_WriteText(t *testing.T) {
	exact := gershgorin.SolverFunc(func(matrix.Matrix) ([]complex128, error) {
		return []complex128{6, 2, 4, 4}, nil
	})
	r, err := gershgorin.NewAnalyzer(gershgorin.WithSolver(exact)).Report(cyclic4(t))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, r.WriteText(&sb))
	assert.Equal(t, strings.Join([]string{
		"Gershgorin circle 1: Center = 4, Radius = 2",
		"Gershgorin circle 2: Center = 4, Radius = 2",
		"Gershgorin circle 3: Center = 4, Radius = 2",
		"Gershgorin circle 4: Center = 4, Radius = 2",
		"Matrix spectrum (eigenvalues): [6 2 4 4]",
		"",
	}, "\n"), sb.String())
	assert.Equal(t, sb.String(), r.String())

	sb.Reset()
	require.NoError(t, r.WriteContainment(&sb))
	assert.Contains(t, sb.String(), "eigenvalue 1: 6 contained=true\n")
	assert.Contains(t, sb.String(), "disk union: [2, 6]\n")
}

func TestReport_WriteTextComplex(t *testing.T) {
	r := &gershgorin.Report{
		Disks:       []gershgorin.Disk{{Center: 0, Radius: 1}},
		Eigenvalues: []complex128{complex(0, 1), complex(0, -1)},
	}
	assert.Contains(t, r.String(), "Matrix spectrum (eigenvalues): [(0+1i) (0-1i)]")
}

func TestNewSolver(t *testing.T) {
	for name, want := range map[string]gershgorin.Solver{
		"":          gershgorin.GeneralSolver{},
		"General":   gershgorin.GeneralSolver{},
		"symmetric": gershgorin.SymmetricSolver{},
		" jacobi ":  gershgorin.JacobiSolver{Tol: 1e-6, MaxIter: 50},
	} {
		got, err := gershgorin.NewSolver(name, gershgorin.JacobiSolver{Tol: 1e-6, MaxIter: 50})
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := gershgorin.NewSolver("qr", gershgorin.JacobiSolver{})
	require.ErrorIs(t, err, gershgorin.ErrUnknownSolver)
}

func TestOptions(t *testing.T) {
	assert.Panics(t, func() { gershgorin.WithSolver(nil) })
	assert.Panics(t, func() { gershgorin.WithLogger(nil) })
	assert.Panics(t, func() { gershgorin.WithEpsilon(-1) })
	assert.Panics(t, func() { gershgorin.WithEpsilon(math.NaN()) })
	assert.NotPanics(t, func() { gershgorin.WithEpsilon(0) })

	assert.Equal(t, gershgorin.DefaultEpsilon, gershgorin.NewAnalyzer().Epsilon())
	assert.Equal(t, 1e-6, gershgorin.NewAnalyzer(gershgorin.WithEpsilon(1e-6)).Epsilon())
}
