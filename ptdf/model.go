package ptdf

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gridmodel/sparse"
)

// Solver selects how the reduced susceptance system is solved.
type Solver int

const (
	SolverSparse Solver = iota // ordered sparse LU, one transposed solve per branch
	SolverDense                // gonum dense LU
)

func (s Solver) String() string {
	switch s {
	case SolverSparse:
		return "sparse"
	case SolverDense:
		return "dense"
	}
	return fmt.Sprintf("Solver(%d)", int(s))
}

// ParseSolver maps "sparse" or "dense" to a Solver.
func ParseSolver(name string) (Solver, error) {
	switch name {
	case "sparse", "":
		return SolverSparse, nil
	case "dense":
		return SolverDense, nil
	}
	return SolverSparse, fmt.Errorf("unknown solver %q", name)
}

// ReferencePolicy decides what happens when several buses are marked as
// reference.
type ReferencePolicy int

const (
	ReferenceStrict ReferencePolicy = iota // several reference buses is an error
	ReferenceFirst                         // first in bus order wins
)

// DefaultConditionLimit bounds the condition number accepted by the dense
// solver before the reduced matrix is declared singular.
const DefaultConditionLimit = 1e12

type Configuration struct {
	Solver          Solver
	ReferencePolicy ReferencePolicy
	ReferenceBus    int     // explicit reference bus; 0 scans the bus roles
	ConditionLimit  float64 // dense solver only

	// ZeroOutOfService gives out-of-service branches a zero PTDF row instead
	// of (1/x) * A^T * B^-1.
	ZeroOutOfService bool

	Sparse sparse.Configuration
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Solver:          SolverSparse,
		ReferencePolicy: ReferenceStrict,
		ConditionLimit:  DefaultConditionLimit,
		Sparse:          sparse.DefaultConfiguration(),
	}
}

// Matrix holds branch flow sensitivities to bus injections relative to one
// reference bus. Branches index rows and buses index columns, both 1-based.
type Matrix struct {
	branches  int
	buses     int
	reference int
	data      *mat.Dense // nil when there are no branches
}

func (p *Matrix) Dims() (branches, buses int) {
	return p.branches, p.buses
}

// Reference is the bus whose column is zero.
func (p *Matrix) Reference() int {
	return p.reference
}

// At returns the sensitivity of branch flow to an injection at bus. It panics
// when either index is out of range.
func (p *Matrix) At(branch, bus int) float64 {
	if branch < 1 || branch > p.branches || bus < 1 || bus > p.buses {
		panic(fmt.Errorf("ptdf at (%d,%d) of %dx%d: %w", branch, bus, p.branches, p.buses, sparse.ErrIndexOutOfRange))
	}
	return p.data.At(branch-1, bus-1)
}

// Row returns a copy of the sensitivities of one branch, indexed by bus-1.
func (p *Matrix) Row(branch int) []float64 {
	row := make([]float64, p.buses)
	for bus := 1; bus <= p.buses; bus++ {
		row[bus-1] = p.At(branch, bus)
	}
	return row
}

// Dense returns a 0-based copy of the matrix, or nil when there are no
// branches.
func (p *Matrix) Dense() *mat.Dense {
	if p.data == nil {
		return nil
	}
	return mat.DenseCopyOf(p.data)
}
