package sparse

import (
	"fmt"
	"io"
	"math"
)

// Print writes m to w in column pages no wider than Config.PrinterWidth.
// With data false only the nonzero pattern is shown ('x' and '.').
func (m *Matrix) Print(w io.Writer, data bool, header bool) {
	if m == nil {
		return
	}

	if header {
		fmt.Fprintf(w, "MATRIX SUMMARY\n\n")
		fmt.Fprintf(w, "Size of matrix = %d x %d.\n", m.Rows, m.Cols)
		if m.Complex {
			fmt.Fprintf(w, "Matrix is complex.\n")
		}
		fmt.Fprintln(w)
	}

	columns := m.Config.PrinterWidth
	if columns <= 0 {
		columns = DefaultPrinterWidth
	}
	if header {
		columns -= 5
	}
	if data {
		columns = (columns + 1) / 10
	}
	columns = maxOf(columns, 1)

	for startCol := 1; startCol <= m.Cols; {
		stopCol := minOf(startCol+columns-1, m.Cols)

		if header {
			if data {
				fmt.Fprintf(w, "    ")
				for col := startCol; col <= stopCol; col++ {
					fmt.Fprintf(w, " %9d", col)
				}
				fmt.Fprintf(w, "\n\n")
			} else {
				fmt.Fprintf(w, "Columns %d to %d.\n", startCol, stopCol)
			}
		}

		for row := 1; row <= m.Rows; row++ {
			if header {
				fmt.Fprintf(w, "%4d", row)
				if !data {
					fmt.Fprintf(w, " ")
				}
			}

			imagElements := make([]*Element, stopCol-startCol+1)
			for col := startCol; col <= stopCol; col++ {
				element := m.Element(row, col)
				imagElements[col-startCol] = element

				switch {
				case element != nil && data:
					fmt.Fprintf(w, " %9.3g", element.Real)
				case element != nil:
					fmt.Fprintf(w, "x")
				case data:
					fmt.Fprintf(w, "       ...")
				default:
					fmt.Fprintf(w, ".")
				}
			}
			fmt.Fprintln(w)

			if data && m.Complex {
				if header {
					fmt.Fprintf(w, "    ")
				}
				for _, element := range imagElements {
					if element != nil {
						fmt.Fprintf(w, " %8.2gj", element.Imag)
					} else {
						fmt.Fprintf(w, "          ")
					}
				}
				fmt.Fprintln(w)
			}
		}

		fmt.Fprintln(w)
		startCol = stopCol + 1
	}

	if header {
		stats := m.calculateStatistics()
		fmt.Fprintf(w, "\nLargest element in matrix = %-1.4g.\n", stats.largestElement)
		fmt.Fprintf(w, "Smallest element in matrix = %-1.4g.\n", stats.smallestElement)
		if m.IsSquare() {
			fmt.Fprintf(w, "\nLargest diagonal element = %-1.4g.\n", stats.largestDiag)
			fmt.Fprintf(w, "Smallest diagonal element = %-1.4g.\n", stats.smallestDiag)
		}

		density := 0.0
		if m.Rows*m.Cols > 0 {
			density = float64(stats.elementCount) * 100.0 / float64(m.Rows*m.Cols)
		}
		fmt.Fprintf(w, "\nDensity = %.2f%%.\n", density)
		fmt.Fprintln(w)
	}
}

type matrixStats struct {
	largestElement  float64
	smallestElement float64
	largestDiag     float64
	smallestDiag    float64
	elementCount    int
}

func (m *Matrix) calculateStatistics() matrixStats {
	stats := matrixStats{
		smallestElement: math.MaxFloat64,
		smallestDiag:    math.MaxFloat64,
	}

	for col := 1; col <= m.Cols; col++ {
		for element := m.FirstInCol[col]; element != nil; element = element.NextInCol {
			stats.elementCount++
			magnitude := elementMag(element)

			if magnitude > stats.largestElement {
				stats.largestElement = magnitude
			}
			if magnitude < stats.smallestElement && magnitude != 0 {
				stats.smallestElement = magnitude
			}

			if element.Row == element.Col {
				if magnitude > stats.largestDiag {
					stats.largestDiag = magnitude
				}
				if magnitude < stats.smallestDiag && magnitude != 0 {
					stats.smallestDiag = magnitude
				}
			}
		}
	}

	if stats.elementCount == 0 {
		stats.smallestElement = 0
		stats.largestElement = 0
	}
	if stats.smallestDiag == math.MaxFloat64 {
		stats.smallestDiag = 0
	}

	return stats
}
