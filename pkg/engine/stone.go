// Package engine implements the rules and state of a two-player
// five-in-a-row game on a 15x15 board: the move ledger with
// undo/redo/jump, win detection, and the binary game record codecs.
package engine

// Stone is the occupancy of a board cell.
type Stone uint8

const (
	None Stone = iota
	Black
	White
)

// Opposite returns the opposing stone. None is its own opposite.
func (s Stone) Opposite() Stone {
	if s == None {
		return s
	}
	return s ^ 3
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "none"
}
