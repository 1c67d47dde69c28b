package sparse

import (
	"fmt"
	"math"
)

// LU holds the factors of a square real matrix in permuted internal order.
// Diagonal elements store the reciprocal of the pivot; the upper triangle is
// scaled to a unit diagonal.
type LU struct {
	matrix *Matrix

	Size     int
	Fillins  int
	Factored bool

	SingularRow int // External row of the zero pivot, 0 when none
	SingularCol int // External column of the zero pivot, 0 when none

	IntToExtRow []int // Internal->External row map [1...Size]
	IntToExtCol []int // Internal->External column map [1...Size]
	ExtToIntRow []int // External->Internal row map [1...Size]
	ExtToIntCol []int // External->Internal column map [1...Size]

	exchanges    int // row plus column exchanges made while pivoting
	intermediate []float64
}

// Factor orders and factors m. Pivots are taken from the diagonal in the
// configured order; when a diagonal pivot is negligible the whole active
// submatrix is searched and the chosen element is moved onto the diagonal.
// The matrix itself is left untouched; the factorization works on a copy.
func (m *Matrix) Factor(config *Configuration) (*LU, error) {
	if !m.IsSquare() {
		return nil, fmt.Errorf("factor %dx%d: %w", m.Rows, m.Cols, ErrDimension)
	}
	if m.Complex {
		return nil, fmt.Errorf("factor: %w", ErrComplex)
	}

	if config == nil {
		config = &m.Config
	}

	size := m.Rows

	var order []int
	switch config.Ordering {
	case NaturalOrdering:
		order = naturalOrder(size)
	default:
		order = m.markowitzOrder()
	}

	extToInt := make([]int, size+1)
	for i := 1; i <= size; i++ {
		extToInt[order[i]] = i
	}

	largest := 0.0
	entries := make([]triplet, 0, m.Elements)
	m.Do(func(row, col int, value complex128) {
		largest = maxOf(largest, math.Abs(real(value)))
		entries = append(entries, triplet{row: extToInt[row], col: extToInt[col], value: value})
	})

	work, err := fromTriplets(size, size, false, config, mergeTriplets(entries))
	if err != nil {
		return nil, err
	}

	lu := &LU{
		matrix:       work,
		Size:         size,
		IntToExtRow:  order,
		IntToExtCol:  append([]int(nil), order...),
		ExtToIntRow:  extToInt,
		ExtToIntCol:  append([]int(nil), extToInt...),
		intermediate: make([]float64, size+1),
	}

	floor := maxOf(config.AbsThreshold, config.RelThreshold*largest)

	elementsBefore := work.Elements
	for step := 1; step <= size; step++ {
		pivot := work.Diags[step]
		if pivot == nil || isNegligible(pivot.Real, floor) {
			pivot = work.searchEntireMatrix(step, floor, config.RelThreshold)
			if pivot == nil {
				lu.SingularRow = lu.IntToExtRow[step]
				lu.SingularCol = lu.IntToExtCol[step]
				return nil, fmt.Errorf("zero pivot at row %d (step %d): %w", lu.SingularRow, step, ErrSingular)
			}
			lu.exchangeRowsAndCols(pivot, step)
		}

		work.realRowColElimination(pivot)
	}

	lu.Fillins = work.Elements - elementsBefore
	lu.Factored = true
	return lu, nil
}

func (m *Matrix) realRowColElimination(pivot *Element) {
	pivot.Real = 1.0 / pivot.Real
	pUpper := pivot.NextInRow

	for pUpper != nil {
		pUpper.Real *= pivot.Real

		pSub := pUpper.NextInCol
		pLower := pivot.NextInCol
		ppAbove := &pUpper.NextInCol
		for pLower != nil {
			row := pLower.Row

			for pSub != nil && pSub.Row < row {
				ppAbove = &pSub.NextInCol
				pSub = pSub.NextInCol
			}

			if pSub == nil || pSub.Row > row {
				pSub = m.createElement(row, pUpper.Col, &pLower.NextInRow, ppAbove)
			}

			pSub.Real -= pUpper.Real * pLower.Real
			ppAbove = &pSub.NextInCol
			pSub = pSub.NextInCol
			pLower = pLower.NextInCol
		}
		pUpper = pUpper.NextInRow
	}
}

// Determinant returns the determinant of the factored matrix.
func (lu *LU) Determinant() float64 {
	if !lu.Factored {
		return 0
	}

	det := 1.0
	for i := 1; i <= lu.Size; i++ {
		det /= lu.matrix.Diags[i].Real
	}

	if lu.exchanges%2 == 1 {
		det = -det
	}
	return det
}
