package shogi

import "fmt"

// Square addresses one of the 81 board cells. Files run 1..9 from the
// right, ranks 1..9 from White's back rank, and the encoding is
// 9*(file-1) + rank so that values 1..81 are valid and 0 means absent.
type Square uint8

const NoSquare Square = 0

// NumSquares is the number of board cells.
const NumSquares = 81

// NewSquare builds a square from 1-based file and rank coordinates.
// Out-of-range coordinates yield NoSquare.
func NewSquare(file, rank int) Square {
	if file < 1 || file > 9 || rank < 1 || rank > 9 {
		return NoSquare
	}
	return Square(9*(file-1) + rank)
}

// IsValid reports whether s addresses a board cell.
func (s Square) IsValid() bool {
	return s >= 1 && s <= NumSquares
}

// File returns the 1-based file of s.
func (s Square) File() int {
	return (int(s) + 8) / 9
}

// Rank returns the 1-based rank of s.
func (s Square) Rank() int {
	return (int(s)-1)%9 + 1
}

// RelativeFile returns the file of s as seen by c: for White the board
// is rotated 180 degrees.
func (s Square) RelativeFile(c Color) int {
	if c == White {
		return 10 - s.File()
	}
	return s.File()
}

// RelativeRank returns the rank of s as seen by c. Rank 1 is always the
// farthest rank from c's own camp, so the promotion zone is relative
// ranks 1..3 for both players.
func (s Square) RelativeRank(c Color) int {
	if c == White {
		return 10 - s.Rank()
	}
	return s.Rank()
}

// Flip returns the square rotated 180 degrees.
func (s Square) Flip() Square {
	return 82 - s
}

// String returns the USI form of s, e.g. "7g".
func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{byte('0' + s.File()), byte('a' + s.Rank() - 1)})
}

// ParseSquare parses the USI form of a square, e.g. "7g".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - '0')
	rank := int(s[1]-'a') + 1
	sq := NewSquare(file, rank)
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return sq, nil
}
