package shogi

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares stored in two 64-bit words. Square n
// occupies bit n-1: squares 1..64 live in lo, squares 65..81 in hi.
type Bitboard struct {
	lo, hi uint64
}

const hiMask = (1 << 17) - 1

// SquareBB returns a bitboard containing only sq.
func SquareBB(sq Square) Bitboard {
	var b Bitboard
	b.Set(sq)
	return b
}

// AllBB returns a bitboard with every square set.
func AllBB() Bitboard {
	return Bitboard{lo: ^uint64(0), hi: hiMask}
}

// Set adds sq to the set. Invalid squares are ignored.
func (b *Bitboard) Set(sq Square) {
	if !sq.IsValid() {
		return
	}
	if sq <= 64 {
		b.lo |= 1 << (sq - 1)
	} else {
		b.hi |= 1 << (sq - 65)
	}
}

// Clear removes sq from the set.
func (b *Bitboard) Clear(sq Square) {
	if !sq.IsValid() {
		return
	}
	if sq <= 64 {
		b.lo &^= 1 << (sq - 1)
	} else {
		b.hi &^= 1 << (sq - 65)
	}
}

// IsSet reports whether sq is in the set.
func (b Bitboard) IsSet(sq Square) bool {
	if !sq.IsValid() {
		return false
	}
	if sq <= 64 {
		return b.lo&(1<<(sq-1)) != 0
	}
	return b.hi&(1<<(sq-65)) != 0
}

// Or returns the union of b and o.
func (b Bitboard) Or(o Bitboard) Bitboard {
	return Bitboard{lo: b.lo | o.lo, hi: b.hi | o.hi}
}

// And returns the intersection of b and o.
func (b Bitboard) And(o Bitboard) Bitboard {
	return Bitboard{lo: b.lo & o.lo, hi: b.hi & o.hi}
}

// AndNot returns the squares of b that are not in o.
func (b Bitboard) AndNot(o Bitboard) Bitboard {
	return Bitboard{lo: b.lo &^ o.lo, hi: b.hi &^ o.hi}
}

// Not returns the complement of b within the 81 board squares.
func (b Bitboard) Not() Bitboard {
	return Bitboard{lo: ^b.lo, hi: ^b.hi & hiMask}
}

// IsEmpty reports whether no square is set.
func (b Bitboard) IsEmpty() bool {
	return b.lo == 0 && b.hi == 0
}

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// LSB returns the lowest square in the set, or NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b.lo != 0 {
		return Square(bits.TrailingZeros64(b.lo) + 1)
	}
	if b.hi != 0 {
		return Square(bits.TrailingZeros64(b.hi) + 65)
	}
	return NoSquare
}

// PopLSB removes and returns the lowest square in the set.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	b.Clear(sq)
	return sq
}

// Flip returns the set rotated 180 degrees (square n maps to 82-n).
func (b Bitboard) Flip() Bitboard {
	// Reverse the full 128-bit value, then shift the 81 payload bits
	// back down: 128 - 81 = 47.
	rlo := bits.Reverse64(b.lo)
	rhi := bits.Reverse64(b.hi)
	return Bitboard{
		lo: rhi>>47 | rlo<<17,
		hi: rlo >> 47,
	}
}

// ForEach calls f for every square in the set in ascending order.
func (b Bitboard) ForEach(f func(Square)) {
	for !b.IsEmpty() {
		f(b.PopLSB())
	}
}

// Squares returns the squares of the set in ascending order.
func (b Bitboard) Squares() []Square {
	sqs := make([]Square, 0, b.PopCount())
	b.ForEach(func(sq Square) {
		sqs = append(sqs, sq)
	})
	return sqs
}

// String renders the set as a 9x9 diagram with file 9 on the left and
// rank 1 on top, for debugging.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 1; rank <= 9; rank++ {
		for file := 9; file >= 1; file-- {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('.')
			}
			if file > 1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
