package state

// Cursor tracks the focused button of a screen as a row/column pair. Rows
// may be empty; the cursor never rests on an empty row.
type Cursor struct {
	Row int
	Col int
}

// NewCursor places a cursor on the first button, if any.
func NewCursor(rowLens []int) Cursor {
	c := Cursor{Row: -1}
	for i, n := range rowLens {
		if n > 0 {
			c.Row = i
			break
		}
	}
	return c
}

// Valid reports whether the cursor points at a button.
func (c Cursor) Valid(rowLens []int) bool {
	return c.Row >= 0 && c.Row < len(rowLens) && c.Col >= 0 && c.Col < rowLens[c.Row]
}

// MoveRow moves by delta non-empty rows, wrapping at either end. The column
// is clamped to the new row.
func (c *Cursor) MoveRow(rowLens []int, delta int) bool {
	if !hasButtons(rowLens) {
		c.Row, c.Col = -1, 0
		return false
	}
	if c.Row < 0 || c.Row >= len(rowLens) {
		*c = NewCursor(rowLens)
		return true
	}
	old := *c
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	row := c.Row
	for moved := 0; moved < delta; {
		row = (row + step + len(rowLens)) % len(rowLens)
		if rowLens[row] > 0 {
			moved++
		}
	}
	c.Row = row
	if c.Col >= rowLens[row] {
		c.Col = rowLens[row] - 1
	}
	return *c != old
}

// MoveCol moves within the current row, wrapping at either end.
func (c *Cursor) MoveCol(rowLens []int, delta int) bool {
	if !c.Valid(rowLens) {
		return false
	}
	n := rowLens[c.Row]
	old := c.Col
	c.Col = ((c.Col+delta)%n + n) % n
	return c.Col != old
}

func hasButtons(rowLens []int) bool {
	for _, n := range rowLens {
		if n > 0 {
			return true
		}
	}
	return false
}
