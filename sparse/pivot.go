package sparse

import (
	"math"
)

// searchEntireMatrix looks through the active submatrix (rows and columns at
// or after step) for the element with the smallest Markowitz product whose
// magnitude exceeds both floor and RelThreshold times the largest active
// element of its column. Among equal products the element closest to its
// column maximum wins. It returns nil when every active element is
// negligible.
func (m *Matrix) searchEntireMatrix(step int, floor, relThreshold float64) *Element {
	size := m.Rows

	rowCount := make([]int64, size+1)
	colCount := make([]int64, size+1)
	for col := step; col <= size; col++ {
		for element := m.FirstInCol[col]; element != nil; element = element.NextInCol {
			if element.Row >= step {
				rowCount[element.Row]++
				colCount[col]++
			}
		}
	}

	var chosenPivot *Element
	minMarkowitzProduct := int64(math.MaxInt64)
	var ratioOfAccepted float64

	for col := step; col <= size; col++ {
		current := m.FirstInCol[col]
		for current != nil && current.Row < step {
			current = current.NextInCol
		}

		largestInCol := m.findBiggestInCol(current)
		if largestInCol <= floor {
			continue
		}

		for ; current != nil; current = current.NextInCol {
			magnitude := elementMag(current)
			if magnitude <= floor || magnitude <= relThreshold*largestInCol {
				continue
			}

			product := markowitzProduct(rowCount[current.Row]-1, colCount[col]-1)
			ratio := largestInCol / magnitude

			if product < minMarkowitzProduct || (product == minMarkowitzProduct && ratio < ratioOfAccepted) {
				chosenPivot = current
				minMarkowitzProduct = product
				ratioOfAccepted = ratio
			}
		}
	}

	return chosenPivot
}

// findBiggestInCol returns the largest magnitude from element down its column.
func (m *Matrix) findBiggestInCol(element *Element) float64 {
	largest := 0.0
	for current := element; current != nil; current = current.NextInCol {
		largest = maxOf(largest, elementMag(current))
	}
	return largest
}
