package generator_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/spectra/generator"
	"github.com/katalvlaran/spectra/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRNG(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// TestGenerate_DominanceAndSymmetry checks both guarantees for every size in
// [1,50] and for both boost policies.
func TestGenerate_DominanceAndSymmetry(t *testing.T) {
	for _, policy := range []generator.Boost{generator.BoostSize, generator.BoostTight} {
		rng := newRNG(2024)
		for n := 1; n <= 50; n++ {
			m, err := generator.Generate(rng, n, generator.WithBoost(policy))
			require.NoError(t, err, "%s n=%d", policy, n)
			require.Equal(t, n, m.Rows())
			require.Equal(t, n, m.Cols())

			require.NoError(t, matrix.ValidateDiagonallyDominant(m), "%s n=%d", policy, n)
			require.NoError(t, matrix.ValidateSymmetric(m, 0), "%s n=%d", policy, n)
			require.True(t, m.IsInteger(), "%s n=%d", policy, n)
			for i := 0; i < n; i++ {
				require.Positive(t, at(t, m, i, i), "positive diagonal")
			}
		}
	}
}

func TestGenerate_EntryRanges(t *testing.T) {
	const n = 20
	m, err := generator.Generate(newRNG(5), n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := at(t, m, i, j)
			if i == j {
				assert.Contains(t, []float64{n, n + 1}, v, "diag (%d,%d)", i, j)
			} else {
				assert.Contains(t, []float64{0, 1}, v, "off-diag (%d,%d)", i, j)
			}
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a, err := generator.Generate(newRNG(77), 9)
	require.NoError(t, err)
	b, err := generator.Generate(newRNG(77), 9)
	require.NoError(t, err)
	assert.Equal(t, a.Values(), b.Values())
}

// TestGenerate_OneByOne pins the exact single entry: size + round(x).
func TestGenerate_OneByOne(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		x := newRNG(seed).Float64()
		m, err := generator.Generate(newRNG(seed), 1)
		require.NoError(t, err)
		assert.Equal(t, 1+math.RoundToEven(x), at(t, m, 0, 0), "seed %d", seed)
	}
}

func TestGenerate_ExactFromSeed(t *testing.T) {
	const n = 4
	ref := newRNG(31)
	raw := make([]float64, n*n)
	for k := range raw {
		raw[k] = ref.Float64()
	}

	m, err := generator.Generate(newRNG(31), n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := math.RoundToEven((raw[i*n+j] + raw[j*n+i]) / 2)
			if i == j {
				want += n
			}
			assert.Equal(t, want, at(t, m, i, j), "(%d,%d)", i, j)
		}
	}
}

// TestGenerate_TightBoostIsMinimal shows that lowering the tight boost by one
// breaks dominance (whenever the boost is positive at all).
func TestGenerate_TightBoostIsMinimal(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		const n = 12
		sized, err := generator.Generate(newRNG(seed), n)
		require.NoError(t, err)
		tight, err := generator.Generate(newRNG(seed), n, generator.WithBoost(generator.BoostTight))
		require.NoError(t, err)

		boost := at(t, tight, 0, 0) - (at(t, sized, 0, 0) - n)
		require.GreaterOrEqual(t, boost, 0.0)
		require.LessOrEqual(t, boost, float64(n))
		if boost == 0 {
			continue
		}

		lowered := tight.Clone()
		for i := 0; i < n; i++ {
			require.NoError(t, lowered.Set(i, i, at(t, tight, i, i)-1))
		}
		require.ErrorIs(t, matrix.ValidateDiagonallyDominant(lowered), matrix.ErrNotDominant, "seed %d", seed)
	}
}

func TestGenerate_InvalidArgument(t *testing.T) {
	for _, size := range []int{0, -3} {
		_, err := generator.Generate(newRNG(1), size)
		require.ErrorIs(t, err, generator.ErrInvalidArgument, "size %d", size)
	}
	_, err := generator.Generate(nil, 3)
	require.ErrorIs(t, err, generator.ErrInvalidArgument)
}

func TestGenerateVector(t *testing.T) {
	v, err := generator.GenerateVector(newRNG(3), 100)
	require.NoError(t, err)
	require.Len(t, v, 100)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}

	w, err := generator.GenerateVectorIn(newRNG(3), 100, -1, 1)
	require.NoError(t, err)
	for i, x := range w {
		assert.GreaterOrEqual(t, x, -1.0)
		assert.Less(t, x, 1.0)
		assert.InDelta(t, 2*v[i]-1, x, 1e-15, "same draws, affine map")
	}

	_, err = generator.GenerateVector(newRNG(3), 0)
	require.ErrorIs(t, err, generator.ErrInvalidArgument)
	_, err = generator.GenerateVectorIn(newRNG(3), 2, 1, 1)
	require.ErrorIs(t, err, generator.ErrInvalidArgument)
	_, err = generator.GenerateVectorIn(newRNG(3), 2, math.Inf(-1), 1)
	require.ErrorIs(t, err, generator.ErrInvalidArgument)
	_, err = generator.GenerateVector(nil, 2)
	require.ErrorIs(t, err, generator.ErrInvalidArgument)
}

func TestNewProblem(t *testing.T) {
	p, err := generator.NewProblem(newRNG(8), 6)
	require.NoError(t, err)
	require.Len(t, p.X, 6)
	require.Len(t, p.F, 6)

	f, err := matrix.MatVec(p.A, p.X)
	require.NoError(t, err)
	assert.Equal(t, f, p.F)
	for _, x := range p.X {
		assert.GreaterOrEqual(t, x, generator.SolutionLow)
		assert.Less(t, x, generator.SolutionHigh)
	}

	_, err = generator.NewProblem(newRNG(8), 0)
	require.ErrorIs(t, err, generator.ErrInvalidArgument)
}

func TestParseBoost(t *testing.T) {
	b, err := generator.ParseBoost("tight")
	require.NoError(t, err)
	assert.Equal(t, generator.BoostTight, b)
	assert.Equal(t, "tight", b.String())

	b, err = generator.ParseBoost("")
	require.NoError(t, err)
	assert.Equal(t, generator.BoostSize, b)

	_, err = generator.ParseBoost("huge")
	require.ErrorIs(t, err, generator.ErrInvalidArgument)

	assert.Panics(t, func() { generator.WithBoost(generator.Boost(9)) })
}

func TestNewProblemFrom(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{4, 1}, {1, 3}})
	require.NoError(t, err)

	p, err := generator.NewProblemFrom(newRNG(2), a, 5, 6)
	require.NoError(t, err)
	require.Same(t, a, p.A)
	for _, x := range p.X {
		assert.GreaterOrEqual(t, x, 5.0)
		assert.Less(t, x, 6.0)
	}
	assert.Equal(t, 4*p.X[0]+p.X[1], p.F[0])

	norm, err := p.ErrorNorm(p.X)
	require.NoError(t, err)
	assert.Zero(t, norm)
	norm, err = p.ErrorNorm([]float64{p.X[0], p.X[1] + 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, norm, 1e-15)
	_, err = p.ErrorNorm([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = generator.NewProblemFrom(newRNG(2), rect, -1, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = generator.NewProblemFrom(newRNG(2), nil, -1, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = generator.NewProblemFrom(newRNG(2), a, 1, -1)
	require.ErrorIs(t, err, generator.ErrInvalidArgument)
}

// TestNewProblem_SolvesWithLU runs the full generate, factor, substitute loop.
func TestNewProblem_SolvesWithLU(t *testing.T) {
	p, err := generator.NewProblem(newRNG(11), 30)
	require.NoError(t, err)
	l, u, err := matrix.LU(p.A)
	require.NoError(t, err)
	xs, err := matrix.SolveLU(l, u, p.F)
	require.NoError(t, err)
	norm, err := p.ErrorNorm(xs)
	require.NoError(t, err)
	assert.Less(t, norm, 1e-12)
}
