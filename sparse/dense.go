package sparse

import (
	"gonum.org/v1/gonum/mat"
)

// Dense returns the real part of m as a 0-based gonum matrix, or nil when m
// has no rows or no columns.
func (m *Matrix) Dense() *mat.Dense {
	if m.Rows == 0 || m.Cols == 0 {
		return nil
	}
	d := mat.NewDense(m.Rows, m.Cols, nil)
	m.Do(func(row, col int, value complex128) {
		d.Set(row-1, col-1, real(value))
	})
	return d
}

// CDense returns m as a 0-based complex gonum matrix, or nil when m has no
// rows or no columns.
func (m *Matrix) CDense() *mat.CDense {
	if m.Rows == 0 || m.Cols == 0 {
		return nil
	}
	d := mat.NewCDense(m.Rows, m.Cols, nil)
	m.Do(func(row, col int, value complex128) {
		d.Set(row-1, col-1, value)
	})
	return d
}
