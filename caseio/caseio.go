// Package caseio reads and writes network case files in JSON.
//
// A case lists buses and branches with per-unit electrical data:
//
//	{
//	  "name": "two-bus",
//	  "baseMVA": 100,
//	  "buses": [{"number": 1, "type": "slack"}, {"number": 2, "type": "pq"}],
//	  "branches": [{"number": 1, "kind": "line", "from": 1, "to": 2, "r": 0.01, "x": 0.1, "rate": 100}]
//	}
//
// Three-winding transformers name their buses in "terminals" and give "r",
// "x" and "b" as arrays with one value per winding. A missing "status" means
// in service and a missing "tap" means 1.
package caseio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gridmodel/grid"
)

var ErrFormat = errors.New("caseio: malformed case")

// Case is a decoded network snapshot.
type Case struct {
	Name     string
	BaseMVA  float64
	Buses    []grid.Bus
	Branches []grid.Branch
}

type caseFile struct {
	Name     string         `json:"name,omitempty"`
	BaseMVA  float64        `json:"baseMVA,omitempty"`
	Buses    []busRecord    `json:"buses"`
	Branches []branchRecord `json:"branches"`
}

type busRecord struct {
	Number int    `json:"number"`
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
}

type branchRecord struct {
	Number    int      `json:"number"`
	Kind      string   `json:"kind"`
	From      int      `json:"from,omitempty"`
	To        int      `json:"to,omitempty"`
	Terminals []int    `json:"terminals,omitempty"`
	R         values   `json:"r,omitempty"`
	X         values   `json:"x,omitempty"`
	B         values   `json:"b,omitempty"`
	ZbReal    float64  `json:"zbReal,omitempty"`
	ZbImag    float64  `json:"zbImag,omitempty"`
	Tap       *float64 `json:"tap,omitempty"`
	Shift     float64  `json:"shift,omitempty"`
	Rate      float64  `json:"rate,omitempty"`
	Status    *int     `json:"status,omitempty"`
}

// values is a number or an array of numbers.
type values []float64

func (v *values) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		*v = values{scalar}
		return nil
	}

	var list []float64
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected number or array of numbers: %w", err)
	}
	*v = list
	return nil
}

func (v values) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	return json.Marshal([]float64(v))
}

// at returns the i-th value, zero when absent.
func (v values) at(i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// Load reads the case file at path.
func Load(path string) (*Case, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads one case from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Case, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var file caseFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	c := &Case{
		Name:     file.Name,
		BaseMVA:  file.BaseMVA,
		Buses:    make([]grid.Bus, 0, len(file.Buses)),
		Branches: make([]grid.Branch, 0, len(file.Branches)),
	}

	for _, record := range file.Buses {
		role, err := grid.ParseBusRole(record.Type)
		if err != nil {
			return nil, fmt.Errorf("bus %d: %w", record.Number, err)
		}
		c.Buses = append(c.Buses, grid.Bus{Number: record.Number, Role: role, Name: record.Name})
	}

	for _, record := range file.Branches {
		branch, err := record.branch()
		if err != nil {
			return nil, err
		}
		c.Branches = append(c.Branches, branch)
	}

	return c, nil
}

func (r *branchRecord) branch() (grid.Branch, error) {
	status := r.Status == nil || *r.Status != 0
	tap := 1.0
	if r.Tap != nil {
		tap = *r.Tap
	}

	switch r.Kind {
	case "line", "":
		if err := r.scalars(); err != nil {
			return nil, err
		}
		return &grid.Line{
			ID:     r.Number,
			From:   r.From,
			To:     r.To,
			R:      r.R.at(0),
			X:      r.X.at(0),
			B:      r.B.at(0),
			Rate:   r.Rate,
			Status: status,
		}, nil

	case "transformer2w":
		if err := r.scalars(); err != nil {
			return nil, err
		}
		return &grid.Transformer2W{
			ID:     r.Number,
			From:   r.From,
			To:     r.To,
			R:      r.R.at(0),
			X:      r.X.at(0),
			Zb:     complex(r.ZbReal, r.ZbImag),
			Tap:    tap,
			Shift:  r.Shift,
			Rate:   r.Rate,
			Status: status,
		}, nil

	case "transformer3w":
		if len(r.Terminals) != 3 {
			return nil, fmt.Errorf("%w: branch %d has %d terminals, want 3", ErrFormat, r.Number, len(r.Terminals))
		}
		t := &grid.Transformer3W{ID: r.Number, Rate: r.Rate, Status: status}
		for i := 0; i < 3; i++ {
			t.Buses[i] = r.Terminals[i]
			t.R[i] = r.R.at(i)
			t.X[i] = r.X.at(i)
			t.B[i] = r.B.at(i)
		}
		return t, nil
	}

	return nil, fmt.Errorf("branch %d kind %q: %w", r.Number, r.Kind, grid.ErrUnknownBranch)
}

// scalars rejects per-winding arrays on two-terminal branches.
func (r *branchRecord) scalars() error {
	if len(r.R) > 1 || len(r.X) > 1 || len(r.B) > 1 || len(r.Terminals) > 0 {
		return fmt.Errorf("%w: branch %d of kind %q takes from/to and scalar r, x, b", ErrFormat, r.Number, r.Kind)
	}
	return nil
}

// Encode writes c as indented JSON.
func Encode(w io.Writer, c *Case) error {
	file := caseFile{
		Name:     c.Name,
		BaseMVA:  c.BaseMVA,
		Buses:    make([]busRecord, 0, len(c.Buses)),
		Branches: make([]branchRecord, 0, len(c.Branches)),
	}

	for _, bus := range c.Buses {
		record := busRecord{Number: bus.Number, Name: bus.Name}
		if bus.Role != grid.RoleUnset {
			record.Type = bus.Role.String()
		}
		file.Buses = append(file.Buses, record)
	}

	for _, branch := range c.Branches {
		status := int(grid.Status(branch))
		record := branchRecord{
			Number: branch.Number(),
			Kind:   branch.Kind().String(),
			Rate:   branch.Rating(),
			Status: &status,
		}

		switch b := branch.(type) {
		case *grid.Line:
			record.From, record.To = b.From, b.To
			record.R, record.X, record.B = values{b.R}, values{b.X}, values{b.B}
		case *grid.Transformer2W:
			tap := b.Tap
			record.From, record.To = b.From, b.To
			record.R, record.X = values{b.R}, values{b.X}
			record.ZbReal, record.ZbImag = real(b.Zb), imag(b.Zb)
			record.Tap, record.Shift = &tap, b.Shift
		case *grid.Transformer3W:
			record.Terminals = b.Buses[:]
			record.R = values(b.R[:])
			record.X = values(b.X[:])
			record.B = values(b.B[:])
		default:
			return fmt.Errorf("branch %d (%T): %w", branch.Number(), branch, grid.ErrUnknownBranch)
		}

		file.Branches = append(file.Branches, record)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(file)
}
