// Package gridmodel builds the steady-state network model of a power grid:
// the nodal admittance matrix, the branch rating vector and, when a reference
// bus is known, the DC power transfer distribution factors.
//
// A Network is assembled once by Build and never changes afterwards. Matrices
// returned by its accessors are shared and must not be modified.
package gridmodel

import (
	"fmt"
	"log/slog"

	"gridmodel/grid"
	"gridmodel/ptdf"
	"gridmodel/sparse"
	"gridmodel/ybus"
)

type Network struct {
	busCount    int
	buses       []grid.Bus
	ybus        *sparse.Matrix
	ratings     []float64
	ptdf        *ptdf.Matrix
	incidence   *sparse.Matrix
	reference   int
	diagnostics []grid.Diagnostic
}

// Build validates the bus and branch collections, assembles Ybus and the
// ratings, then the incidence and PTDF matrices. Any fatal condition aborts the
// build; degraded conditions are returned as diagnostics and logged.
func Build(busCount int, buses []grid.Bus, branches []grid.Branch, config *Configuration) (*Network, error) {
	if config == nil {
		defaultConfig := DefaultConfiguration()
		config = &defaultConfig
	}
	logger := config.logger()

	if err := grid.Validate(busCount, buses, branches); err != nil {
		return nil, err
	}

	sparseConfig := config.sparseConfiguration()
	admittance, err := ybus.Assemble(busCount, branches, &sparseConfig)
	if err != nil {
		return nil, fmt.Errorf("assemble ybus: %w", err)
	}

	ptdfConfig := config.ptdfConfiguration()
	sensitivity, err := ptdf.Assemble(busCount, branches, buses, &ptdfConfig)
	if err != nil {
		return nil, fmt.Errorf("assemble ptdf: %w", err)
	}

	n := &Network{
		busCount:  busCount,
		buses:     append([]grid.Bus(nil), buses...),
		ybus:      admittance.Y,
		ratings:   admittance.Ratings,
		ptdf:      sensitivity.PTDF,
		reference: sensitivity.Reference,
	}
	if config.RetainIncidence {
		n.incidence = sensitivity.Incidence
	}
	n.diagnostics = append(n.diagnostics, admittance.Diagnostics...)
	n.diagnostics = append(n.diagnostics, sensitivity.Diagnostics...)

	for _, diag := range n.diagnostics {
		logger.Warn(diag.Message,
			slog.String("kind", diag.Kind.String()),
			slog.Int("branch", diag.Branch),
			slog.Int("bus", diag.Bus))
	}
	logger.Debug("network built",
		slog.Int("buses", busCount),
		slog.Int("branches", len(branches)),
		slog.Int("nnz", n.ybus.ElementCount()),
		slog.Int("reference", n.reference),
		slog.String("solver", config.Solver.String()))

	return n, nil
}

// Ybus is the busCount x busCount complex admittance matrix.
func (n *Network) Ybus() *sparse.Matrix {
	return n.ybus
}

func (n *Network) BusCount() int {
	return n.busCount
}

func (n *Network) BranchCount() int {
	return len(n.ratings)
}

// Buses returns a copy of the bus collection in input order.
func (n *Network) Buses() []grid.Bus {
	return append([]grid.Bus(nil), n.buses...)
}

// Ratings returns a copy of the rating vector; index b-1 holds branch b.
func (n *Network) Ratings() []float64 {
	return append([]float64(nil), n.ratings...)
}

func (n *Network) Rating(branch int) (float64, error) {
	if branch < 1 || branch > len(n.ratings) {
		return 0, fmt.Errorf("branch %d not in [1, %d]: %w", branch, len(n.ratings), grid.ErrBranchIndex)
	}
	return n.ratings[branch-1], nil
}

// PTDF returns the sensitivity matrix, or false when no reference bus was
// found.
func (n *Network) PTDF() (*ptdf.Matrix, bool) {
	return n.ptdf, n.ptdf != nil
}

// Incidence returns the busCount x branchCount incidence matrix when the
// network was built with RetainIncidence.
func (n *Network) Incidence() (*sparse.Matrix, bool) {
	return n.incidence, n.incidence != nil
}

func (n *Network) Reference() (int, bool) {
	return n.reference, n.reference != 0
}

// Diagnostics returns a copy of the non-fatal findings, Ybus findings first.
func (n *Network) Diagnostics() []grid.Diagnostic {
	return append([]grid.Diagnostic(nil), n.diagnostics...)
}
