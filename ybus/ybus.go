// Package ybus assembles the complex nodal admittance matrix of a network.
package ybus

import (
	"fmt"
	"math/cmplx"

	"gridmodel/grid"
	"gridmodel/sparse"
)

// Result is the output of Assemble.
type Result struct {
	Y           *sparse.Matrix    // busCount x busCount, complex
	Ratings     []float64         // Ratings[b-1] is the rating of branch b
	Diagnostics []grid.Diagnostic // non-fatal findings
}

// stanza is the 2x2 admittance block a branch adds between its From and To
// buses.
type stanza struct {
	from, to int
	y11, y12 complex128
	y21, y22 complex128
}

// Assemble builds Ybus and the rating vector. Every in-service branch adds
// its stanza into Ybus; out-of-service branches add nothing but still get a
// rating entry. An empty branch collection gives a zero matrix.
func Assemble(busCount int, branches []grid.Branch, config *sparse.Configuration) (*Result, error) {
	if err := grid.CheckBranches(busCount, branches); err != nil {
		return nil, err
	}

	builder, err := sparse.NewBuilder(busCount, busCount, true, config)
	if err != nil {
		return nil, err
	}

	result := &Result{Ratings: make([]float64, len(branches))}

	for _, branch := range branches {
		result.Ratings[branch.Number()-1] = branch.Rating()
		if !branch.InService() {
			continue
		}

		s, diag, err := branchStanza(branch)
		if err != nil {
			return nil, err
		}
		if diag != nil {
			result.Diagnostics = append(result.Diagnostics, *diag)
		}
		if err := s.stamp(builder); err != nil {
			return nil, fmt.Errorf("branch %d: %w", branch.Number(), err)
		}
	}

	if result.Y, err = builder.Build(); err != nil {
		return nil, err
	}
	return result, nil
}

func branchStanza(branch grid.Branch) (stanza, *grid.Diagnostic, error) {
	switch b := branch.(type) {
	case *grid.Line:
		return lineStanza(b.From, b.To, b.R, b.X, b.B), nil, nil
	case *grid.Transformer2W:
		s, err := transformer2WStanza(b)
		return s, nil, err
	case *grid.Transformer3W:
		diag := &grid.Diagnostic{
			Kind:    grid.DiagThreeWindingApprox,
			Branch:  b.ID,
			Message: fmt.Sprintf("branch %d: winding to bus %d not modeled, using winding 1 between buses %d and %d", b.ID, b.Buses[2], b.Buses[0], b.Buses[1]),
		}
		return lineStanza(b.Buses[0], b.Buses[1], b.R[0], b.X[0], b.B[0]), diag, nil
	}
	return stanza{}, nil, fmt.Errorf("branch %d (%T): %w", branch.Number(), branch, grid.ErrUnknownBranch)
}

// lineStanza is the pi model: series y = 1/(r+jx), half the charging
// susceptance at each end.
func lineStanza(from, to int, r, x, b float64) stanza {
	y := 1 / complex(r, x)
	shunt := complex(0, b/2)

	return stanza{
		from: from, to: to,
		y11: y + shunt, y12: -y,
		y21: -y, y22: y + shunt,
	}
}

// transformer2WStanza applies tap t and shift a on the From side:
// ya = y/(t*e^{ja}), c = 1/t.
func transformer2WStanza(t *grid.Transformer2W) (stanza, error) {
	if t.Tap == 0 {
		return stanza{}, fmt.Errorf("branch %d: %w", t.ID, grid.ErrInvalidTap)
	}

	y := 1 / complex(t.R, t.X)
	ya := y / cmplx.Rect(t.Tap, t.Shift)
	c := complex(1/t.Tap, 0)

	return stanza{
		from: t.From, to: t.To,
		y11: ya + y*c*(c-1) + t.Zb, y12: -ya,
		y21: -ya, y22: ya + y*(1-c),
	}, nil
}

func (s stanza) stamp(builder *sparse.Builder) error {
	if err := builder.Add(s.from, s.from, s.y11); err != nil {
		return err
	}
	if err := builder.Add(s.from, s.to, s.y12); err != nil {
		return err
	}
	if err := builder.Add(s.to, s.from, s.y21); err != nil {
		return err
	}
	return builder.Add(s.to, s.to, s.y22)
}
