// Package bitpack implements the bit-level primitives behind the game
// record encodings: the zigzag signed-to-unsigned mapping, Morton
// interleaving of 2D coordinates, and a bounded two-byte varint.
package bitpack

// ZigzagEncode maps a signed integer to an unsigned one so that small
// magnitudes stay small: 0, -1, 1, -2, 2, ... map to 0, 1, 2, 3, 4, ...
func ZigzagEncode(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// ZigzagDecode inverts ZigzagEncode.
func ZigzagDecode(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// Interleave spreads x over the even bits and y over the odd bits,
// jointly encoding a 2D coordinate as a single Morton code. Only the
// low 16 bits of each input participate.
func Interleave(x, y uint32) uint32 {
	return scatter(x) | scatter(y)<<1
}

// Deinterleave inverts Interleave.
func Deinterleave(v uint32) (x, y uint32) {
	return gather(v), gather(v >> 1)
}

func scatter(x uint32) uint32 {
	x = (x | x<<8) & 0x00ff00ff
	x = (x | x<<4) & 0x0f0f0f0f
	x = (x | x<<2) & 0x33333333
	return (x | x<<1) & 0x55555555
}

func gather(x uint32) uint32 {
	x &= 0x55555555
	x = (x | x>>1) & 0x33333333
	x = (x | x>>2) & 0x0f0f0f0f
	x = (x | x>>4) & 0x00ff00ff
	return (x | x>>8) & 0x0000ffff
}

// AppendVarUint14 appends v to buf as one or two bytes. A value wider
// than 7 bits emits its low 7 bits with the continuation bit (0x80)
// set, followed by the remaining bits. v must fit in 14 bits.
func AppendVarUint14(buf []byte, v uint32) []byte {
	if v&0x3f80 != 0 {
		buf = append(buf, byte(v&0x7f|0x80))
		v >>= 7
	}
	return append(buf, byte(v&0x7f))
}

// ReadVarUint14 reads one value from the front of buf, returning the
// value and the number of bytes consumed. n is zero when buf is empty,
// ends mid-value, or the second byte has its continuation bit set.
func ReadVarUint14(buf []byte) (v uint32, n int) {
	if len(buf) == 0 {
		return 0, 0
	}
	lo := buf[0]
	if lo&0x80 == 0 {
		return uint32(lo), 1
	}
	if len(buf) < 2 {
		return 0, 0
	}
	hi := buf[1]
	if hi&0x80 != 0 {
		return 0, 0
	}
	return uint32(hi)<<7 | uint32(lo&0x7f), 2
}
