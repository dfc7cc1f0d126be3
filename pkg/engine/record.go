package engine

import (
	"errors"
	"fmt"

	"github.com/yourusername/gomoku/internal/bitpack"
)

// Format selects one of the two wire encodings of a game record. The
// formats are not interoperable and carry no version tag; callers must
// know which one they hold and pick it explicitly.
type Format uint8

const (
	// FormatPointStream encodes each past move as a 14-bit varint:
	// the board-centered offsets are zigzagged, Morton-interleaved,
	// shifted left once, and tagged with the stone parity in the low
	// bit.
	FormatPointStream Format = iota

	// FormatRunLength encodes each past move as its cell index byte
	// with implicit stone alternation from Black, bracketing runs of
	// same-stone moves with control bytes. This is the canonical
	// format.
	FormatRunLength
)

// ErrInvalidRecord is returned when a serialized game record cannot be
// decoded. Decoding rejects the whole stream; no partial game is ever
// returned.
var ErrInvalidRecord = errors.New("invalid game record")

// Control bytes of the run-length format. Cell index bytes stay below
// BoardSize*BoardSize = 225 and cannot collide with them.
const (
	beginSeq = 0xff
	endSeq   = 0xfe
)

// center is the board offset origin of the point-stream format.
const center = BoardSize / 2

// Serialize encodes the past moves of the game in the given format.
// Future (undone) moves are not part of the record.
func (g *Game) Serialize(f Format) []byte {
	switch f {
	case FormatPointStream:
		return g.serializePointStream()
	case FormatRunLength:
		return g.serializeRunLength()
	}
	panic("engine: unknown record format")
}

// Deserialize decodes a game record, replaying every inferred move
// through MakeMove so that any decoded game is legally reachable and
// its win record is computed incrementally along the way.
func Deserialize(f Format, data []byte) (*Game, error) {
	switch f {
	case FormatPointStream:
		return deserializePointStream(data)
	case FormatRunLength:
		return deserializeRunLength(data)
	}
	panic("engine: unknown record format")
}

func (g *Game) serializePointStream() []byte {
	var buf []byte
	for _, m := range g.PastMoves() {
		x := bitpack.ZigzagEncode(int32(m.Pos.X) - center)
		y := bitpack.ZigzagEncode(int32(m.Pos.Y) - center)
		val := bitpack.Interleave(x, y)<<1 | uint32(m.Stone-1)
		buf = bitpack.AppendVarUint14(buf, val)
	}
	return buf
}

func deserializePointStream(data []byte) (*Game, error) {
	g := NewGame()
	for off := 0; off < len(data); {
		val, n := bitpack.ReadVarUint14(data[off:])
		if n == 0 {
			return nil, fmt.Errorf("point stream: malformed varint: %w", ErrInvalidRecord)
		}
		off += n

		stone := Stone(val&1) + 1
		ux, uy := bitpack.Deinterleave(val >> 1)
		pos := Point{
			X: uint32(bitpack.ZigzagDecode(ux) + center),
			Y: uint32(bitpack.ZigzagDecode(uy) + center),
		}
		if !g.board.Contains(pos) {
			return nil, fmt.Errorf("point stream: point out of board: %w", ErrInvalidRecord)
		}
		if !g.MakeMove(pos, stone) {
			return nil, fmt.Errorf("point stream: cell occupied twice: %w", ErrInvalidRecord)
		}
	}
	return g, nil
}

func (g *Game) serializeRunLength() []byte {
	past := g.PastMoves()
	var buf []byte

	// The decoder starts at Black; a White opening is forced with a
	// degenerate empty run, which flips once before the first byte.
	if len(past) > 0 && past[0].Stone == White {
		buf = append(buf, beginSeq, endSeq)
	}

	for i := 0; i < len(past); {
		j := i + 1
		for j < len(past) && past[j].Stone == past[i].Stone {
			j++
		}
		if j-i > 1 {
			buf = append(buf, beginSeq)
		}
		for _, m := range past[i:j] {
			buf = append(buf, byte(m.Pos.Y*BoardSize+m.Pos.X))
		}
		if j-i > 1 {
			buf = append(buf, endSeq)
		}
		i = j
	}
	return buf
}

func deserializeRunLength(data []byte) (*Game, error) {
	g := NewGame()
	stone := Black
	inSeq := false

	for _, b := range data {
		switch b {
		case beginSeq:
			if inSeq {
				return nil, fmt.Errorf("run length: nested sequence: %w", ErrInvalidRecord)
			}
			inSeq = true
			continue
		case endSeq:
			if !inSeq {
				return nil, fmt.Errorf("run length: unmatched sequence end: %w", ErrInvalidRecord)
			}
			inSeq = false
			stone = stone.Opposite()
			continue
		}

		pos := Point{X: uint32(b) % BoardSize, Y: uint32(b) / BoardSize}
		if !g.board.Contains(pos) {
			return nil, fmt.Errorf("run length: point out of board: %w", ErrInvalidRecord)
		}
		if !g.MakeMove(pos, stone) {
			return nil, fmt.Errorf("run length: cell occupied twice: %w", ErrInvalidRecord)
		}
		if !inSeq {
			stone = stone.Opposite()
		}
	}

	if inSeq {
		return nil, fmt.Errorf("run length: unterminated sequence: %w", ErrInvalidRecord)
	}
	return g, nil
}
