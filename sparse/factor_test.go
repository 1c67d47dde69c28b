package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func residual(m *Matrix, x, rhs []float64, transposed bool) float64 {
	worst := 0.0
	for i := 1; i <= m.Rows; i++ {
		sum := 0.0
		for j := 1; j <= m.Cols; j++ {
			if transposed {
				sum += m.RealAt(j, i) * x[j]
			} else {
				sum += m.RealAt(i, j) * x[j]
			}
		}
		worst = maxOf(worst, abs(sum-rhs[i]))
	}
	return worst
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestFactorSolve(t *testing.T) {
	m := buildReal(t, 5, [][]float64{
		{11, -2, 2, 1, 5},
		{2, 9, -1, 2, 3},
		{0, 1, 15, 7, 2},
		{1, 2, 0, 8, 1},
		{3, 1, 4, 2, 12},
	})
	rhs := []float64{0, 5, 0, 0, 0, 0}

	for _, ordering := range []Ordering{NaturalOrdering, MarkowitzOrdering} {
		t.Run(ordering.String(), func(t *testing.T) {
			config := DefaultConfiguration()
			config.Ordering = ordering

			lu, err := m.Factor(&config)
			require.NoError(t, err)

			x, err := lu.Solve(rhs)
			require.NoError(t, err)
			assert.Len(t, x, 6)
			assert.Less(t, residual(m, x, rhs, false), 1e-10)

			xt, err := lu.SolveTransposed(rhs)
			require.NoError(t, err)
			assert.Less(t, residual(m, xt, rhs, true), 1e-10)
		})
	}
}

func TestFactorLeavesMatrixUntouched(t *testing.T) {
	m := starMatrix(t)
	before := m.CDense()

	_, err := m.Factor(nil)
	require.NoError(t, err)

	assert.Equal(t, before.RawCMatrix().Data, m.CDense().RawCMatrix().Data)
}

func TestMarkowitzOrderAvoidsFillins(t *testing.T) {
	m := starMatrix(t)

	natural := DefaultConfiguration()
	natural.Ordering = NaturalOrdering
	lu, err := m.Factor(&natural)
	require.NoError(t, err)
	assert.Equal(t, 6, lu.Fillins)

	lu, err = m.Factor(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, lu.Fillins)
	assert.Equal(t, []int{0, 2, 3, 1, 4}, lu.IntToExtRow)
	assert.Equal(t, lu.IntToExtRow, lu.IntToExtCol)
	for i := 1; i <= 4; i++ {
		assert.Equal(t, i, lu.ExtToIntRow[lu.IntToExtRow[i]])
		assert.Equal(t, i, lu.ExtToIntCol[lu.IntToExtCol[i]])
	}
}

func TestFactorExchangesZeroDiagonal(t *testing.T) {
	tests := []struct {
		name   string
		values [][]float64
		det    float64
	}{
		{"antidiagonal", [][]float64{{0, -1}, {-1, 0}}, -1},
		{"zero diagonal", [][]float64{{0, 2, 1}, {1, 0, 3}, {4, 1, 0}}, 25},
		{"cancelling diagonal", [][]float64{{1, 1, 0}, {1, 1, 2}, {0, 3, 1}}, -6},
	}

	for _, tt := range tests {
		for _, ordering := range []Ordering{NaturalOrdering, MarkowitzOrdering} {
			t.Run(tt.name+"/"+ordering.String(), func(t *testing.T) {
				size := len(tt.values)
				m := buildReal(t, size, tt.values)
				config := DefaultConfiguration()
				config.Ordering = ordering

				lu, err := m.Factor(&config)
				require.NoError(t, err)
				assert.InDelta(t, tt.det, lu.Determinant(), 1e-12)

				rhs := make([]float64, size+1)
				for i := 1; i <= size; i++ {
					rhs[i] = float64(i)
				}

				x, err := lu.Solve(rhs)
				require.NoError(t, err)
				assert.Less(t, residual(m, x, rhs, false), 1e-12)

				xt, err := lu.SolveTransposed(rhs)
				require.NoError(t, err)
				assert.Less(t, residual(m, xt, rhs, true), 1e-12)

				for i := 1; i <= size; i++ {
					assert.Equal(t, i, lu.ExtToIntRow[lu.IntToExtRow[i]])
					assert.Equal(t, i, lu.ExtToIntCol[lu.IntToExtCol[i]])
				}
			})
		}
	}
}

func TestDeterminant(t *testing.T) {
	m := buildReal(t, 2, [][]float64{{2, 1}, {1, 3}})
	lu, err := m.Factor(nil)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, lu.Determinant(), 1e-12)
}

func TestFactorSingular(t *testing.T) {
	laplacian := buildReal(t, 3, [][]float64{
		{10, -10, 0},
		{-10, 20, -10},
		{0, -10, 10},
	})

	_, err := laplacian.Factor(nil)
	require.ErrorIs(t, err, ErrSingular)

	missingDiag := buildReal(t, 2, [][]float64{{1, 0}, {0, 0}})
	_, err = missingDiag.Factor(nil)
	require.ErrorIs(t, err, ErrSingular)
}

func TestFactorRejectsInvalidShapes(t *testing.T) {
	b, err := NewBuilder(2, 3, false, nil)
	require.NoError(t, err)
	rect, err := b.Build()
	require.NoError(t, err)
	_, err = rect.Factor(nil)
	require.ErrorIs(t, err, ErrDimension)

	cb, err := NewBuilder(2, 2, true, nil)
	require.NoError(t, err)
	require.NoError(t, cb.Add(1, 1, complex(1, 1)))
	c, err := cb.Build()
	require.NoError(t, err)
	_, err = c.Factor(nil)
	require.ErrorIs(t, err, ErrComplex)
}

func TestSolveChecks(t *testing.T) {
	var lu *LU
	_, err := lu.Solve([]float64{0, 1})
	require.ErrorIs(t, err, ErrNotFactored)

	m := buildReal(t, 2, [][]float64{{2, 0}, {0, 2}})
	lu, err = m.Factor(nil)
	require.NoError(t, err)
	_, err = lu.Solve([]float64{0, 1})
	require.ErrorIs(t, err, ErrDimension)
}
