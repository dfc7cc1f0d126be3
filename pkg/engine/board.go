package engine

// BoardSize is the side length of the grid.
const BoardSize = 15

// Row is the inclusive endpoints of a maximal contiguous same-stone
// line.
type Row struct {
	Start, End Point
}

// Board is the grid of stones. The zero value is an empty board. Cell
// values are mutated only through the game ledger, never directly.
type Board struct {
	cells [BoardSize * BoardSize]Stone
}

// Contains reports whether the point lies on the board.
func (b *Board) Contains(p Point) bool {
	return p.X < BoardSize && p.Y < BoardSize
}

// At returns the stone at the point. It panics if the point is off the
// board; passing an unvalidated point is a caller bug, not a game
// state.
func (b *Board) At(p Point) Stone {
	if !b.Contains(p) {
		panic("engine: point out of board")
	}
	return b.cells[p.Y*BoardSize+p.X]
}

// set and unset mutate cells directly. Occupancy rules are the
// ledger's responsibility and are not re-checked here.
func (b *Board) set(p Point, s Stone) {
	if !b.Contains(p) {
		panic("engine: point out of board")
	}
	b.cells[p.Y*BoardSize+p.X] = s
}

func (b *Board) unset(p Point) {
	b.set(p, None)
}

// ScanRow walks both directions along the axis from p while adjacent
// cells hold the same stone, returning the total run length and the
// inclusive endpoints. The cell at p must be occupied.
func (b *Board) ScanRow(p Point, axis Axis) (int, Row) {
	stone := b.At(p)
	length := 1
	row := Row{Start: p, End: p}

	for next := row.Start.Adjacent(axis, false); b.Contains(next) && b.At(next) == stone; next = next.Adjacent(axis, false) {
		length++
		row.Start = next
	}
	for next := row.End.Adjacent(axis, true); b.Contains(next) && b.At(next) == stone; next = next.Adjacent(axis, true) {
		length++
		row.End = next
	}
	return length, row
}

// FindWinRow scans all four axes through p and returns the first row
// of five or more. Rows longer than five are returned whole. The
// second result is false when p is empty or no axis reaches five.
func (b *Board) FindWinRow(p Point) (Row, bool) {
	if b.At(p) == None {
		return Row{}, false
	}
	for _, axis := range Axes {
		if length, row := b.ScanRow(p, axis); length >= 5 {
			return row, true
		}
	}
	return Row{}, false
}
