// Package ptdf builds the node-branch incidence matrix and the DC power
// transfer distribution factors of a network.
//
// The DC susceptance matrix B is assembled from 1/(jx) of every in-service
// branch, so its diagonal holds -1/x and its off-diagonals +1/x. With the
// reference bus row and column removed,
//
//	PTDF = X^-1 * A^T * B^-1
//
// where A is the incidence matrix without the reference row and X the
// diagonal branch reactance matrix. X covers every branch, so an
// out-of-service branch still gets the row it would carry if closed, unless
// Configuration.ZeroOutOfService is set. An out-of-service branch with zero
// reactance always gets a zero row. A zero column is put back at the
// reference bus.
package ptdf

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gridmodel/grid"
	"gridmodel/sparse"
)

type Result struct {
	Incidence   *sparse.Matrix // busCount x branchCount
	PTDF        *Matrix        // nil when no reference bus was found
	Reference   int            // 0 when no reference bus was found
	Diagnostics []grid.Diagnostic
}

// Sensitivity returns the PTDF matrix and whether it is defined.
func (r *Result) Sensitivity() (*Matrix, bool) {
	return r.PTDF, r.PTDF != nil
}

// network is the DC view of the branch collection.
type network struct {
	busCount   int
	incidence  *sparse.Matrix
	b          *sparse.Matrix
	admittance []float64 // 1/x per branch, [0...branchCount-1]
}

func Assemble(busCount int, branches []grid.Branch, buses []grid.Bus, config *Configuration) (*Result, error) {
	if config == nil {
		defaultConfig := DefaultConfiguration()
		config = &defaultConfig
	}

	if err := grid.CheckBranches(busCount, branches); err != nil {
		return nil, err
	}

	net, err := buildNetwork(busCount, branches, config)
	if err != nil {
		return nil, err
	}

	result := &Result{Incidence: net.incidence}

	reference, diags, err := resolveReference(busCount, buses, config)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = append(result.Diagnostics, diags...)
	if reference == 0 {
		return result, nil
	}

	transposed, err := net.solve(reference, config)
	if err != nil {
		return nil, err
	}

	result.PTDF = expand(transposed, len(branches), busCount, reference)
	result.Reference = reference
	return result, nil
}

// buildNetwork writes +1/-1 into the incidence column of every branch and
// accumulates B from the in-service branches.
func buildNetwork(busCount int, branches []grid.Branch, config *Configuration) (*network, error) {
	incidence, err := sparse.NewBuilder(busCount, len(branches), false, &config.Sparse)
	if err != nil {
		return nil, err
	}
	susceptance, err := sparse.NewBuilder(busCount, busCount, false, &config.Sparse)
	if err != nil {
		return nil, err
	}

	admittance := make([]float64, len(branches))

	for _, branch := range branches {
		number := branch.Number()
		from, to := grid.FromTo(branch)

		if err := incidence.AddReal(from, number, 1); err != nil {
			return nil, fmt.Errorf("branch %d: %w", number, err)
		}
		if err := incidence.AddReal(to, number, -1); err != nil {
			return nil, fmt.Errorf("branch %d: %w", number, err)
		}

		x, err := grid.SeriesReactance(branch)
		if err != nil {
			return nil, err
		}

		if !branch.InService() {
			if x != 0 && !config.ZeroOutOfService {
				admittance[number-1] = 1 / x
			}
			continue
		}

		if x == 0 {
			return nil, fmt.Errorf("branch %d: %w", number, grid.ErrZeroReactance)
		}

		admittance[number-1] = 1 / x
		if err := susceptance.AddQuad(from, to, complex(-1/x, 0)); err != nil {
			return nil, fmt.Errorf("branch %d: %w", number, err)
		}
	}

	net := &network{busCount: busCount, admittance: admittance}
	if net.incidence, err = incidence.Build(); err != nil {
		return nil, err
	}
	if net.b, err = susceptance.Build(); err != nil {
		return nil, err
	}
	return net, nil
}

// resolveReference returns the reference bus, or 0 with a diagnostic when
// none is marked.
func resolveReference(busCount int, buses []grid.Bus, config *Configuration) (int, []grid.Diagnostic, error) {
	if config.ReferenceBus != 0 {
		if config.ReferenceBus < 1 || config.ReferenceBus > busCount {
			return 0, nil, fmt.Errorf("reference bus %d not in [1, %d]: %w", config.ReferenceBus, busCount, grid.ErrBusIndex)
		}
		return config.ReferenceBus, nil, nil
	}

	var marked []int
	for _, bus := range buses {
		if bus.IsReference() {
			marked = append(marked, bus.Number)
		}
	}

	switch {
	case len(marked) == 0:
		return 0, []grid.Diagnostic{{
			Kind:    grid.DiagNoReference,
			Message: "no reference bus found, PTDF is undefined",
		}}, nil
	case len(marked) == 1:
		return marked[0], nil, nil
	case config.ReferencePolicy == ReferenceFirst:
		return marked[0], []grid.Diagnostic{{
			Kind:    grid.DiagMultipleReference,
			Bus:     marked[0],
			Message: fmt.Sprintf("%d reference buses %v, using bus %d", len(marked), marked, marked[0]),
		}}, nil
	}
	return 0, nil, fmt.Errorf("reference buses %v: %w", marked, grid.ErrMultipleReference)
}

// expand turns the reduced (busCount-1) x branchCount transposed sensitivities
// into the full branchCount x busCount PTDF with a zero reference column.
func expand(transposed [][]float64, branchCount, busCount, reference int) *Matrix {
	p := &Matrix{branches: branchCount, buses: busCount, reference: reference}
	if branchCount == 0 {
		return p
	}

	p.data = mat.NewDense(branchCount, busCount, nil)
	for k, column := range transposed {
		bus := k + 1
		if bus >= reference {
			bus++
		}
		for b, value := range column {
			p.data.Set(b, bus-1, value)
		}
	}
	return p
}
