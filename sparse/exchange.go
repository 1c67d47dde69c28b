package sparse

func (m *Matrix) findDiag(index int) *Element {
	element := m.FirstInCol[index]

	for element != nil && element.Row < index {
		element = element.NextInCol
	}

	if element != nil && element.Row == index {
		return element
	}

	return nil
}

// exchangeRowsAndCols moves pivot to (step, step) and keeps the row and
// column maps of lu in step with the matrix.
func (lu *LU) exchangeRowsAndCols(pivot *Element, step int) {
	m := lu.matrix
	row := pivot.Row
	col := pivot.Col

	if row == step && col == step {
		return
	}

	if row != step {
		m.rowExchange(step, row)
		lu.IntToExtRow[step], lu.IntToExtRow[row] = lu.IntToExtRow[row], lu.IntToExtRow[step]
		lu.ExtToIntRow[lu.IntToExtRow[step]] = step
		lu.ExtToIntRow[lu.IntToExtRow[row]] = row
		lu.exchanges++
	}

	if col != step {
		m.colExchange(step, col)
		lu.IntToExtCol[step], lu.IntToExtCol[col] = lu.IntToExtCol[col], lu.IntToExtCol[step]
		lu.ExtToIntCol[lu.IntToExtCol[step]] = step
		lu.ExtToIntCol[lu.IntToExtCol[col]] = col
		lu.exchanges++
	}

	m.Diags[step] = m.findDiag(step)
	m.Diags[row] = m.findDiag(row)
	m.Diags[col] = m.findDiag(col)
}

func (m *Matrix) rowExchange(row1, row2 int) {
	if row1 > row2 {
		row1, row2 = row2, row1
	}

	row1Ptr := m.FirstInRow[row1]
	row2Ptr := m.FirstInRow[row2]

	for row1Ptr != nil || row2Ptr != nil {
		var column int
		var element1, element2 *Element

		switch {
		case row1Ptr == nil:
			column = row2Ptr.Col
			element2 = row2Ptr
			row2Ptr = row2Ptr.NextInRow
		case row2Ptr == nil:
			column = row1Ptr.Col
			element1 = row1Ptr
			row1Ptr = row1Ptr.NextInRow
		case row1Ptr.Col < row2Ptr.Col:
			column = row1Ptr.Col
			element1 = row1Ptr
			row1Ptr = row1Ptr.NextInRow
		case row1Ptr.Col > row2Ptr.Col:
			column = row2Ptr.Col
			element2 = row2Ptr
			row2Ptr = row2Ptr.NextInRow
		default:
			column = row1Ptr.Col
			element1 = row1Ptr
			element2 = row2Ptr
			row1Ptr = row1Ptr.NextInRow
			row2Ptr = row2Ptr.NextInRow
		}

		m.exchangeColElements(row1, element1, row2, element2, column)
	}

	m.FirstInRow[row1], m.FirstInRow[row2] = m.FirstInRow[row2], m.FirstInRow[row1]
}

func (m *Matrix) colExchange(col1, col2 int) {
	if col1 > col2 {
		col1, col2 = col2, col1
	}

	col1Ptr := m.FirstInCol[col1]
	col2Ptr := m.FirstInCol[col2]

	for col1Ptr != nil || col2Ptr != nil {
		var row int
		var element1, element2 *Element

		switch {
		case col1Ptr == nil:
			row = col2Ptr.Row
			element2 = col2Ptr
			col2Ptr = col2Ptr.NextInCol
		case col2Ptr == nil:
			row = col1Ptr.Row
			element1 = col1Ptr
			col1Ptr = col1Ptr.NextInCol
		case col1Ptr.Row < col2Ptr.Row:
			row = col1Ptr.Row
			element1 = col1Ptr
			col1Ptr = col1Ptr.NextInCol
		case col1Ptr.Row > col2Ptr.Row:
			row = col2Ptr.Row
			element2 = col2Ptr
			col2Ptr = col2Ptr.NextInCol
		default:
			row = col1Ptr.Row
			element1 = col1Ptr
			element2 = col2Ptr
			col1Ptr = col1Ptr.NextInCol
			col2Ptr = col2Ptr.NextInCol
		}

		m.exchangeRowElements(col1, element1, col2, element2, row)
	}

	m.FirstInCol[col1], m.FirstInCol[col2] = m.FirstInCol[col2], m.FirstInCol[col1]
}

// exchangeColElements swaps the elements of rows row1 < row2 within one
// column list. Either element may be nil.
func (m *Matrix) exchangeColElements(row1 int, element1 *Element, row2 int, element2 *Element, column int) {
	var elementAboveRow2 **Element
	var elementBelowRow1, elementBelowRow2 *Element

	elementAboveRow1 := &m.FirstInCol[column]
	pElement := *elementAboveRow1
	for pElement.Row < row1 {
		elementAboveRow1 = &pElement.NextInCol
		pElement = *elementAboveRow1
	}

	if element1 != nil {
		elementBelowRow1 = element1.NextInCol
		if element2 == nil {
			if elementBelowRow1 != nil && elementBelowRow1.Row < row2 {
				*elementAboveRow1 = elementBelowRow1

				pElement = elementBelowRow1
				for pElement != nil && pElement.Row < row2 {
					elementAboveRow2 = &pElement.NextInCol
					pElement = *elementAboveRow2
				}

				*elementAboveRow2 = element1
				element1.NextInCol = pElement
			}
			element1.Row = row2
		} else {
			if elementBelowRow1.Row == row2 {
				element1.NextInCol = element2.NextInCol
				element2.NextInCol = element1
				*elementAboveRow1 = element2
			} else {
				pElement = elementBelowRow1
				for pElement.Row < row2 {
					elementAboveRow2 = &pElement.NextInCol
					pElement = *elementAboveRow2
				}

				elementBelowRow2 = element2.NextInCol

				*elementAboveRow1 = element2
				element2.NextInCol = elementBelowRow1
				*elementAboveRow2 = element1
				element1.NextInCol = elementBelowRow2
			}
			element1.Row = row2
			element2.Row = row1
		}
	} else {
		elementBelowRow1 = pElement

		if elementBelowRow1.Row != row2 {
			for pElement.Row < row2 {
				elementAboveRow2 = &pElement.NextInCol
				pElement = *elementAboveRow2
			}

			elementBelowRow2 = element2.NextInCol

			*elementAboveRow2 = elementBelowRow2
			*elementAboveRow1 = element2
			element2.NextInCol = elementBelowRow1
		}
		element2.Row = row1
	}
}

// exchangeRowElements swaps the elements of columns col1 < col2 within one
// row list. Either element may be nil.
func (m *Matrix) exchangeRowElements(col1 int, element1 *Element, col2 int, element2 *Element, row int) {
	var elementLeftOfCol2 **Element

	elementLeftOfCol1 := &m.FirstInRow[row]
	pElement := *elementLeftOfCol1
	for pElement.Col < col1 {
		elementLeftOfCol1 = &pElement.NextInRow
		pElement = *elementLeftOfCol1
	}

	if element1 != nil {
		elementRightOfCol1 := element1.NextInRow
		if element2 == nil {
			if elementRightOfCol1 != nil && elementRightOfCol1.Col < col2 {
				*elementLeftOfCol1 = elementRightOfCol1

				pElement = elementRightOfCol1
				for pElement != nil && pElement.Col < col2 {
					elementLeftOfCol2 = &pElement.NextInRow
					pElement = *elementLeftOfCol2
				}

				*elementLeftOfCol2 = element1
				element1.NextInRow = pElement
			}
			element1.Col = col2
		} else {
			if elementRightOfCol1.Col == col2 {
				element1.NextInRow = element2.NextInRow
				element2.NextInRow = element1
				*elementLeftOfCol1 = element2
			} else {
				pElement = elementRightOfCol1
				for pElement.Col < col2 {
					elementLeftOfCol2 = &pElement.NextInRow
					pElement = *elementLeftOfCol2
				}

				elementRightOfCol2 := element2.NextInRow

				*elementLeftOfCol1 = element2
				element2.NextInRow = elementRightOfCol1
				*elementLeftOfCol2 = element1
				element1.NextInRow = elementRightOfCol2
			}
			element1.Col = col2
			element2.Col = col1
		}
	} else {
		elementRightOfCol1 := pElement

		if elementRightOfCol1.Col != col2 {
			for pElement.Col < col2 {
				elementLeftOfCol2 = &pElement.NextInRow
				pElement = *elementLeftOfCol2
			}

			elementRightOfCol2 := element2.NextInRow

			*elementLeftOfCol2 = elementRightOfCol2
			*elementLeftOfCol1 = element2
			element2.NextInRow = elementRightOfCol1
		}
		element2.Col = col1
	}
}
