package sparse

import (
	"fmt"
)

// Solve solves A x = rhs. Both vectors are 1-based: rhs[0] is ignored and
// solution[0] is zero.
func (lu *LU) Solve(rhs []float64) (solution []float64, err error) {
	if err := lu.checkSolve(rhs); err != nil {
		return nil, err
	}

	size := lu.Size
	intermediate := lu.intermediate
	diags := lu.matrix.Diags

	for i := size; i > 0; i-- {
		intermediate[i] = rhs[lu.IntToExtRow[i]]
	}

	// Forward elimination - Solves Lc = b
	for i := 1; i <= size; i++ {
		temp := intermediate[i]
		if temp != 0.0 {
			pivot := diags[i]
			temp *= pivot.Real
			intermediate[i] = temp

			for element := pivot.NextInCol; element != nil; element = element.NextInCol {
				intermediate[element.Row] -= temp * element.Real
			}
		}
	}

	// Backward Substitution - Solves Ux = c
	for i := size; i > 0; i-- {
		temp := intermediate[i]

		for element := diags[i].NextInRow; element != nil; element = element.NextInRow {
			temp -= element.Real * intermediate[element.Col]
		}
		intermediate[i] = temp
	}

	solution = make([]float64, size+1)
	for i := size; i > 0; i-- {
		solution[lu.IntToExtCol[i]] = intermediate[i]
	}

	return solution, nil
}

// SolveTransposed solves A^T x = rhs using the factors of A.
func (lu *LU) SolveTransposed(rhs []float64) (solution []float64, err error) {
	if err := lu.checkSolve(rhs); err != nil {
		return nil, err
	}

	size := lu.Size
	intermediate := lu.intermediate
	diags := lu.matrix.Diags

	for i := size; i > 0; i-- {
		intermediate[i] = rhs[lu.IntToExtCol[i]]
	}

	// Forward elimination - Solves U^T c = b
	for i := 1; i <= size; i++ {
		temp := intermediate[i]
		if temp != 0.0 {
			for element := diags[i].NextInRow; element != nil; element = element.NextInRow {
				intermediate[element.Col] -= temp * element.Real
			}
		}
	}

	// Backward Substitution - Solves L^T x = c
	for i := size; i > 0; i-- {
		pivot := diags[i]
		temp := intermediate[i]

		for element := pivot.NextInCol; element != nil; element = element.NextInCol {
			temp -= element.Real * intermediate[element.Row]
		}

		intermediate[i] = temp * pivot.Real
	}

	solution = make([]float64, size+1)
	for i := size; i > 0; i-- {
		solution[lu.IntToExtRow[i]] = intermediate[i]
	}

	return solution, nil
}

func (lu *LU) checkSolve(rhs []float64) error {
	if lu == nil || !lu.Factored {
		return ErrNotFactored
	}
	if len(rhs) < lu.Size+1 {
		return fmt.Errorf("rhs length %d is smaller than matrix size %d + 1: %w", len(rhs), lu.Size, ErrDimension)
	}
	return nil
}
