package engine

// Axis is one of the four line directions through a cell.
type Axis uint8

const (
	Vertical Axis = iota
	Ascending
	Horizontal
	Descending
)

// Axes lists the axes in scan order. The order is part of the win
// detection contract: the first axis to reach five in a row wins.
var Axes = [4]Axis{Vertical, Ascending, Horizontal, Descending}

// UnitVec returns the unit step vector of the axis.
func (a Axis) UnitVec() (dx, dy int32) {
	switch a {
	case Vertical:
		return 0, 1
	case Ascending:
		return 1, -1
	case Horizontal:
		return 1, 0
	case Descending:
		return 1, 1
	}
	return 0, 0
}

// Point is a cell coordinate. Coordinates are unsigned: stepping off
// the low edge wraps around to a huge value that Board.Contains
// rejects, so no separate underflow handling is needed.
type Point struct {
	X, Y uint32
}

// Adjacent returns the neighboring point along the axis.
func (p Point) Adjacent(a Axis, forward bool) Point {
	dx, dy := a.UnitVec()
	if !forward {
		dx, dy = -dx, -dy
	}
	return Point{p.X + uint32(dx), p.Y + uint32(dy)}
}
