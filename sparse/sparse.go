package sparse

import (
	"fmt"
	"sort"
)

func newMatrix(rows, cols int, complexValued bool, config *Configuration) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid size %dx%d: %w", rows, cols, ErrDimension)
	}

	if config == nil {
		defaultConfig := DefaultConfiguration()
		config = &defaultConfig
	}

	m := &Matrix{
		Config:     *config,
		Rows:       rows,
		Cols:       cols,
		Complex:    complexValued,
		Diags:      make([]*Element, minOf(rows, cols)+1),
		FirstInRow: make([]*Element, rows+1),
		FirstInCol: make([]*Element, cols+1),
	}

	return m, nil
}

// fromTriplets links merged, column-major sorted triplets into a new matrix.
func fromTriplets(rows, cols int, complexValued bool, config *Configuration, entries []triplet) (*Matrix, error) {
	m, err := newMatrix(rows, cols, complexValued, config)
	if err != nil {
		return nil, err
	}

	lastInRow := make([]*Element, rows+1)
	lastInCol := make([]*Element, cols+1)

	for _, t := range entries {
		element := &Element{Row: t.row, Col: t.col, Real: real(t.value), Imag: imag(t.value)}

		if last := lastInCol[t.col]; last == nil {
			m.FirstInCol[t.col] = element
		} else {
			last.NextInCol = element
		}
		lastInCol[t.col] = element

		if last := lastInRow[t.row]; last == nil {
			m.FirstInRow[t.row] = element
		} else {
			last.NextInRow = element
		}
		lastInRow[t.row] = element

		if t.row == t.col {
			m.Diags[t.row] = element
		}
		m.Elements++
	}

	return m, nil
}

// mergeTriplets sorts entries column-major and sums duplicates. Entries whose
// sum is exactly zero are dropped.
func mergeTriplets(entries []triplet) []triplet {
	sorted := make([]triplet, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].col != sorted[j].col {
			return sorted[i].col < sorted[j].col
		}
		return sorted[i].row < sorted[j].row
	})

	merged := sorted[:0]
	for _, t := range sorted {
		n := len(merged)
		if n > 0 && merged[n-1].row == t.row && merged[n-1].col == t.col {
			merged[n-1].value += t.value
			continue
		}
		merged = append(merged, t)
	}

	kept := merged[:0]
	for _, t := range merged {
		if t.value != 0 {
			kept = append(kept, t)
		}
	}
	return kept
}

// createElement inserts a zero element at (row, col), scanning the row list
// from firstInRow and the column list from firstInCol. An existing element is
// returned unchanged.
func (m *Matrix) createElement(row, col int, firstInRow, firstInCol **Element) *Element {
	current := *firstInCol
	prev := firstInCol
	for current != nil && current.Row < row {
		prev = &current.NextInCol
		current = current.NextInCol
	}

	if current != nil && current.Row == row {
		return current
	}

	element := &Element{Row: row, Col: col}
	element.NextInCol = current
	*prev = element

	current = *firstInRow
	prev = firstInRow
	for current != nil && current.Col < col {
		prev = &current.NextInRow
		current = current.NextInRow
	}
	element.NextInRow = current
	*prev = element

	if row == col {
		m.Diags[row] = element
	}

	m.Elements++
	return element
}

// Element returns the stored element at (row, col), or nil when the position
// holds a structural zero or lies outside the matrix.
func (m *Matrix) Element(row, col int) *Element {
	if !inRange(row, 1, m.Rows) || !inRange(col, 1, m.Cols) {
		return nil
	}

	if row == col {
		return m.Diags[row]
	}

	for element := m.FirstInCol[col]; element != nil && element.Row <= row; element = element.NextInCol {
		if element.Row == row {
			return element
		}
	}
	return nil
}

// At returns the value at (row, col). It panics when the position lies outside
// the matrix.
func (m *Matrix) At(row, col int) complex128 {
	if !inRange(row, 1, m.Rows) || !inRange(col, 1, m.Cols) {
		panic(fmt.Errorf("at (%d,%d) of %dx%d: %w", row, col, m.Rows, m.Cols, ErrIndexOutOfRange))
	}

	if element := m.Element(row, col); element != nil {
		return element.Value()
	}
	return 0
}

// RealAt returns the real part of the value at (row, col).
func (m *Matrix) RealAt(row, col int) float64 {
	return real(m.At(row, col))
}

// Do calls fn for every stored element in column-major order.
func (m *Matrix) Do(fn func(row, col int, value complex128)) {
	for col := 1; col <= m.Cols; col++ {
		for element := m.FirstInCol[col]; element != nil; element = element.NextInCol {
			fn(element.Row, element.Col, element.Value())
		}
	}
}

// Reduce returns a copy of m with row dropRow and column dropCol removed.
// Remaining indices above a dropped one shift down by one. A zero index keeps
// every row (or column).
func (m *Matrix) Reduce(dropRow, dropCol int) (*Matrix, error) {
	if dropRow != 0 && !inRange(dropRow, 1, m.Rows) {
		return nil, fmt.Errorf("drop row %d of %d: %w", dropRow, m.Rows, ErrIndexOutOfRange)
	}
	if dropCol != 0 && !inRange(dropCol, 1, m.Cols) {
		return nil, fmt.Errorf("drop column %d of %d: %w", dropCol, m.Cols, ErrIndexOutOfRange)
	}

	rows, cols := m.Rows, m.Cols
	if dropRow != 0 {
		rows--
	}
	if dropCol != 0 {
		cols--
	}

	shift := func(i, dropped int) int {
		if dropped != 0 && i > dropped {
			return i - 1
		}
		return i
	}

	entries := make([]triplet, 0, m.Elements)
	m.Do(func(row, col int, value complex128) {
		if row == dropRow || col == dropCol {
			return
		}
		entries = append(entries, triplet{row: shift(row, dropRow), col: shift(col, dropCol), value: value})
	})

	return fromTriplets(rows, cols, m.Complex, &m.Config, entries)
}

// Transpose returns a new matrix holding the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	entries := make([]triplet, 0, m.Elements)
	m.Do(func(row, col int, value complex128) {
		entries = append(entries, triplet{row: col, col: row, value: value})
	})

	t, err := fromTriplets(m.Cols, m.Rows, m.Complex, &m.Config, mergeTriplets(entries))
	if err != nil {
		panic(err) // dimensions were valid for m
	}
	return t
}

// Equal reports whether a and b have the same shape and identical values.
func Equal(a, b *Matrix) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols || a.Elements != b.Elements {
		return false
	}
	for col := 1; col <= a.Cols; col++ {
		ea, eb := a.FirstInCol[col], b.FirstInCol[col]
		for ea != nil && eb != nil {
			if ea.Row != eb.Row || ea.Real != eb.Real || ea.Imag != eb.Imag {
				return false
			}
			ea, eb = ea.NextInCol, eb.NextInCol
		}
		if ea != nil || eb != nil {
			return false
		}
	}
	return true
}
