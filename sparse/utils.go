package sparse

import (
	"math"

	"golang.org/x/exp/constraints"
)

func (m *Matrix) ElementCount() int {
	return m.Elements
}

func (m *Matrix) Dims() (rows, cols int) {
	return m.Rows, m.Cols
}

func (m *Matrix) IsSquare() bool {
	return m.Rows == m.Cols
}

// elementMag is the 1-norm of an element, |real| + |imag|.
func elementMag(e *Element) float64 {
	return math.Abs(e.Real) + math.Abs(e.Imag)
}

func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func inRange[T constraints.Integer](i, lo, hi T) bool {
	return i >= lo && i <= hi
}

// isNegligible reports whether |x| is at or below tolerance.
func isNegligible[T constraints.Float](x, tolerance T) bool {
	if x < 0 {
		x = -x
	}
	return x <= tolerance
}
