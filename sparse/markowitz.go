package sparse

const (
	largestShortInteger = 32767
	largestLongInteger  = 2147483647
)

// markowitzOrder picks diagonal pivots one at a time, each with the smallest
// Markowitz product among the rows not yet eliminated, simulating fill-in on
// the symmetrized pattern. Ties go to the lowest index. The result maps
// internal step to external index, [1...Size].
func (m *Matrix) markowitzOrder() []int {
	size := m.Rows

	adjacent := make([]map[int]struct{}, size+1)
	for i := 1; i <= size; i++ {
		adjacent[i] = make(map[int]struct{})
	}
	m.Do(func(row, col int, _ complex128) {
		if row != col {
			adjacent[row][col] = struct{}{}
			adjacent[col][row] = struct{}{}
		}
	})

	eliminated := make([]bool, size+1)
	intToExt := make([]int, size+1)

	for step := 1; step <= size; step++ {
		pivot := 0
		best := int64(largestLongInteger) + 1
		for i := 1; i <= size; i++ {
			if eliminated[i] {
				continue
			}
			degree := int64(len(adjacent[i]))
			if product := markowitzProduct(degree, degree); product < best {
				best = product
				pivot = i
			}
		}

		intToExt[step] = pivot
		eliminated[pivot] = true

		// Eliminating the pivot connects all of its remaining neighbours.
		neighbours := make([]int, 0, len(adjacent[pivot]))
		for n := range adjacent[pivot] {
			delete(adjacent[n], pivot)
			neighbours = append(neighbours, n)
		}
		for _, a := range neighbours {
			for _, b := range neighbours {
				if a != b {
					adjacent[a][b] = struct{}{}
				}
			}
		}
		adjacent[pivot] = nil
	}

	return intToExt
}

func naturalOrder(size int) []int {
	intToExt := make([]int, size+1)
	for i := 1; i <= size; i++ {
		intToExt[i] = i
	}
	return intToExt
}

func markowitzProduct(op1, op2 int64) int64 {
	if (op1 > largestShortInteger && op2 != 0) || (op2 > largestShortInteger && op1 != 0) {
		fProduct := float64(op1) * float64(op2)
		if fProduct >= float64(largestLongInteger) {
			return largestLongInteger
		}
		return int64(fProduct)
	}
	return op1 * op2
}
