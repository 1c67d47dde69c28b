package sparse

import (
	"fmt"
)

// Builder collects (row, col, value) contributions and links them into a
// Matrix once. Contributions to the same position are summed on Build, so the
// order of Add calls does not matter.
type Builder struct {
	rows    int
	cols    int
	complex bool
	config  Configuration
	entries []triplet
}

func NewBuilder(rows, cols int, complexValued bool, config *Configuration) (*Builder, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid size %dx%d: %w", rows, cols, ErrDimension)
	}

	if config == nil {
		defaultConfig := DefaultConfiguration()
		config = &defaultConfig
	}

	return &Builder{rows: rows, cols: cols, complex: complexValued, config: *config}, nil
}

func (b *Builder) Dims() (rows, cols int) {
	return b.rows, b.cols
}

// Add accumulates value at (row, col).
func (b *Builder) Add(row, col int, value complex128) error {
	if !inRange(row, 1, b.rows) || !inRange(col, 1, b.cols) {
		return fmt.Errorf("add at (%d,%d) of %dx%d: %w", row, col, b.rows, b.cols, ErrIndexOutOfRange)
	}
	if !b.complex && imag(value) != 0 {
		return fmt.Errorf("add %v at (%d,%d): %w", value, row, col, ErrComplex)
	}
	if value == 0 {
		return nil
	}

	b.entries = append(b.entries, triplet{row: row, col: col, value: value})
	return nil
}

func (b *Builder) AddReal(row, col int, value float64) error {
	return b.Add(row, col, complex(value, 0))
}

// AddQuad stamps an admittance y between node1 and node2: +y on both
// diagonals, -y on both off-diagonals.
func (b *Builder) AddQuad(node1, node2 int, y complex128) error {
	if err := b.Add(node1, node1, y); err != nil {
		return err
	}
	if err := b.Add(node2, node2, y); err != nil {
		return err
	}
	if err := b.Add(node2, node1, -y); err != nil {
		return err
	}
	return b.Add(node1, node2, -y)
}

// Build sums duplicate contributions and returns the finished matrix. The
// builder may keep accumulating afterwards; each Build returns a fresh matrix.
func (b *Builder) Build() (*Matrix, error) {
	return fromTriplets(b.rows, b.cols, b.complex, &b.config, mergeTriplets(b.entries))
}
