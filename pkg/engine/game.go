package engine

// Move is a single placement event. Immutable once recorded.
type Move struct {
	Pos   Point
	Stone Stone
}

// Win records the first five-in-a-row witnessed on the current
// timeline and the move count at which it appeared.
type Win struct {
	Index int // move count after the winning placement
	Row   Row
}

// Game is a complete, replayable game record. It keeps every move ever
// entered (including ones currently undone) and a cursor separating
// the applied past from the pending future; the board is always
// exactly the replay of the past prefix. The zero value is an empty
// game.
//
// A Game is not safe for concurrent use; callers that share one must
// serialize access themselves.
type Game struct {
	board Board
	moves []Move
	index int
	win   *Win
}

// NewGame returns an empty game.
func NewGame() *Game {
	return &Game{}
}

// TotalMoves returns the number of moves ever entered, in the past or
// in the future.
func (g *Game) TotalMoves() int {
	return len(g.moves)
}

// MoveIndex returns the cursor: how many moves are applied to the
// board.
func (g *Game) MoveIndex() int {
	return g.index
}

// PastMoves returns the applied moves in order. The slice aliases the
// ledger and must not be mutated.
func (g *Game) PastMoves() []Move {
	return g.moves[:g.index]
}

// FutureMoves returns the undone moves awaiting redo, in replay order.
// The slice aliases the ledger and must not be mutated.
func (g *Game) FutureMoves() []Move {
	return g.moves[g.index:]
}

// StoneAt returns the stone at the point. It panics if the point is
// off the board.
func (g *Game) StoneAt(p Point) Stone {
	return g.board.At(p)
}

// FirstWin returns the first win witnessed in the past, if any. A win
// whose index lies beyond the cursor is in the future and not
// reported.
func (g *Game) FirstWin() (Win, bool) {
	if g.win != nil && g.win.Index <= g.index {
		return *g.win, true
	}
	return Win{}, false
}

// MakeMove places a stone at the point, clearing any moves in the
// future. It returns false without mutating anything when the cell is
// occupied. It panics if the point is off the board.
func (g *Game) MakeMove(p Point, s Stone) bool {
	if g.board.At(p) != None {
		return false
	}
	g.board.set(p, s)

	g.moves = append(g.moves[:g.index], Move{Pos: p, Stone: s})
	g.index++

	// The cached win stays valid only while it was found strictly
	// before the new cursor; one found at or past it belonged to a
	// discarded branch and must be recomputed from the placed stone.
	if g.win == nil || g.win.Index >= g.index {
		if row, ok := g.board.FindWinRow(p); ok {
			g.win = &Win{Index: g.index, Row: row}
		} else {
			g.win = nil
		}
	}
	return true
}

// Undo retracts the last applied move, if any. The ledger keeps the
// move for redo.
func (g *Game) Undo() bool {
	if g.index == 0 {
		return false
	}
	g.index--
	g.board.unset(g.moves[g.index].Pos)
	return true
}

// Redo re-applies the next pending move, if any.
func (g *Game) Redo() bool {
	if g.index >= len(g.moves) {
		return false
	}
	next := g.moves[g.index]
	g.index++
	g.board.set(next.Pos, next.Stone)
	return true
}

// Jump moves the cursor to the given index, applying or retracting
// every move crossed; the cost is proportional to the distance. It
// returns false when already there and panics when the index exceeds
// the total move count.
func (g *Game) Jump(to int) bool {
	if to < 0 || to > len(g.moves) {
		panic("engine: move index out of range")
	}
	if g.index == to {
		return false
	}
	if g.index < to {
		for i := g.index; i < to; i++ {
			next := g.moves[i]
			g.board.set(next.Pos, next.Stone)
		}
	} else {
		for i := g.index; i > to; i-- {
			g.board.unset(g.moves[i-1].Pos)
		}
	}
	g.index = to
	return true
}

// InferTurn returns the next stone to play based on past moves: Black
// opens, then strict alternation.
func (g *Game) InferTurn() Stone {
	if g.index == 0 {
		return Black
	}
	return g.moves[g.index-1].Stone.Opposite()
}

// Equal reports whether two games hold the same move record and
// cursor. The board and win record are derived from those, so they
// are not compared separately.
func (g *Game) Equal(other *Game) bool {
	if g.index != other.index || len(g.moves) != len(other.moves) {
		return false
	}
	for i := range g.moves {
		if g.moves[i] != other.moves[i] {
			return false
		}
	}
	return true
}
