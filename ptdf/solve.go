package ptdf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"gridmodel/sparse"
)

// solve removes the reference bus from B and A and returns
// S_reduced^T = B_reduced^-T * A_reduced * X^-1 as rows of reduced buses:
// out[k][b] is the sensitivity of branch b+1 to reduced bus k+1.
func (n *network) solve(reference int, config *Configuration) ([][]float64, error) {
	reducedB, err := n.b.Reduce(reference, reference)
	if err != nil {
		return nil, err
	}
	reducedA, err := n.incidence.Reduce(reference, 0)
	if err != nil {
		return nil, err
	}

	size := n.busCount - 1
	branchCount := reducedA.Cols

	out := make([][]float64, size)
	for k := range out {
		out[k] = make([]float64, branchCount)
	}
	if size == 0 {
		return out, nil
	}

	switch config.Solver {
	case SolverDense:
		err = solveDense(out, reducedB, reducedA, n.admittance, config)
	default:
		err = solveSparse(out, reducedB, reducedA, n.admittance, config)
	}
	if err != nil {
		return nil, fmt.Errorf("reduced susceptance matrix (reference bus %d): %w", reference, err)
	}
	return out, nil
}

func solveSparse(out [][]float64, reducedB, reducedA *sparse.Matrix, admittance []float64, config *Configuration) error {
	lu, err := reducedB.Factor(&config.Sparse)
	if err != nil {
		return err
	}

	size := reducedB.Rows
	rhs := make([]float64, size+1)

	for b := 0; b < reducedA.Cols; b++ {
		if admittance[b] == 0 {
			continue
		}

		clear(rhs)
		for element := reducedA.FirstInCol[b+1]; element != nil; element = element.NextInCol {
			rhs[element.Row] = element.Real * admittance[b]
		}

		solution, err := lu.SolveTransposed(rhs)
		if err != nil {
			return err
		}
		for k := 1; k <= size; k++ {
			out[k-1][b] = solution[k]
		}
	}
	return nil
}

func solveDense(out [][]float64, reducedB, reducedA *sparse.Matrix, admittance []float64, config *Configuration) error {
	size := reducedB.Rows
	branchCount := reducedA.Cols

	var lu mat.LU
	lu.Factorize(reducedB.Dense())

	limit := config.ConditionLimit
	if limit <= 0 {
		limit = DefaultConditionLimit
	}
	if cond := lu.Cond(); math.IsInf(cond, 1) || math.IsNaN(cond) || cond > limit {
		return fmt.Errorf("condition number %g: %w", cond, sparse.ErrSingular)
	}
	if branchCount == 0 {
		return nil
	}

	rhs := mat.NewDense(size, branchCount, nil)
	for b := 0; b < branchCount; b++ {
		for element := reducedA.FirstInCol[b+1]; element != nil; element = element.NextInCol {
			rhs.Set(element.Row-1, b, element.Real*admittance[b])
		}
	}

	var z mat.Dense
	if err := lu.SolveTo(&z, true, rhs); err != nil {
		return fmt.Errorf("%v: %w", err, sparse.ErrSingular)
	}

	for k := 0; k < size; k++ {
		for b := 0; b < branchCount; b++ {
			out[k][b] = z.At(k, b)
		}
	}
	return nil
}
