package shogi

import (
	"fmt"
	"strings"
)

// Move is either a normal board move (from, to, optional promotion) or a
// drop of a hand piece onto a vacant square. The zero value NoMove is
// not a move.
type Move struct {
	from    Square
	to      Square
	drop    Piece
	promote bool
}

var NoMove = Move{}

// NewMove builds a normal move.
func NewMove(from, to Square, promote bool) Move {
	return Move{from: from, to: to, promote: promote}
}

// NewDrop builds a drop of piece onto to.
func NewDrop(piece Piece, to Square) Move {
	return Move{to: to, drop: piece}
}

// IsDrop reports whether m is a drop.
func (m Move) IsDrop() bool {
	return m.drop != NoPiece
}

// From returns the origin square of a normal move, NoSquare for drops.
func (m Move) From() Square {
	return m.from
}

// To returns the destination square.
func (m Move) To() Square {
	return m.to
}

// DropPiece returns the dropped piece, NoPiece for normal moves.
func (m Move) DropPiece() Piece {
	return m.drop
}

// IsPromotion reports whether a normal move promotes the moving piece.
func (m Move) IsPromotion() bool {
	return m.promote
}

// USI returns the USI form of the move, e.g. "7g7f", "8h2b+" or "P*3d".
func (m Move) USI() string {
	if m == NoMove {
		return "none"
	}
	if m.IsDrop() {
		return m.drop.Kind().String() + "*" + m.to.String()
	}
	s := m.from.String() + m.to.String()
	if m.promote {
		s += "+"
	}
	return s
}

func (m Move) String() string {
	return m.USI()
}

// ParseMove parses the USI form of a move. Dropped pieces take the
// given side, since USI drop notation does not carry a color.
func ParseMove(s string, side Color) (Move, error) {
	if i := strings.IndexByte(s, '*'); i >= 0 {
		if i != 1 {
			return NoMove, fmt.Errorf("invalid drop %q", s)
		}
		var kind PieceKind
		for k := Pawn; k <= Rook; k++ {
			if kindLetters[k] == s[:1] {
				kind = k
				break
			}
		}
		if kind == NoPieceKind {
			return NoMove, fmt.Errorf("invalid drop %q: bad piece letter", s)
		}
		to, err := ParseSquare(s[2:])
		if err != nil {
			return NoMove, fmt.Errorf("invalid drop %q: %w", s, err)
		}
		piece := NewPiece(kind, side)
		if piece == NoPiece {
			return NoMove, fmt.Errorf("invalid drop %q: no side to move", s)
		}
		return NewDrop(piece, to), nil
	}

	promote := false
	if strings.HasSuffix(s, "+") {
		promote = true
		s = s[:len(s)-1]
	}
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	return NewMove(from, to, promote), nil
}
