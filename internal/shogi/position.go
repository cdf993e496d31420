// Package shogi implements shogi board representation and move
// legality: value types for squares, pieces and moves, 81-square
// bitboards, attack generation, and the two-phase legality test
// including the drop-pawn-mate rule.
package shogi

import "fmt"

// Position is the full state of a game at one point: the 9x9 board, the
// two hands, the side to move, the ply counter and the last move played.
// All fields are values, so a plain struct copy is a deep copy.
type Position struct {
	board    [NumSquares + 1]Piece
	occupied [2]Bitboard
	hands    [2]Hand
	side     Color
	ply      int
	lastMove Move
}

// NewEmptyPosition returns a position with an empty board and empty
// hands, Black to move at ply 1.
func NewEmptyPosition() *Position {
	return &Position{side: Black, ply: 1}
}

// NewPosition returns the even-game starting position.
func NewPosition() *Position {
	p, err := ParseSFEN(StartSFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns an independent copy of p.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// PieceAt returns the piece on sq, or NoPiece if the square is vacant
// or invalid.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.board[sq]
}

// SetPiece places piece on sq, replacing whatever was there. NoPiece
// clears the square. Invalid squares are ignored.
func (p *Position) SetPiece(sq Square, piece Piece) {
	if !sq.IsValid() {
		return
	}
	if old := p.board[sq]; old != NoPiece {
		p.occupied[old.Color().Index()].Clear(sq)
	}
	p.board[sq] = piece
	if piece != NoPiece {
		p.occupied[piece.Color().Index()].Set(sq)
	}
}

// Hand returns the hand of c for inspection and mutation.
func (p *Position) Hand(c Color) *Hand {
	return &p.hands[c.Index()]
}

// SideToMove returns the player to move.
func (p *Position) SideToMove() Color {
	return p.side
}

// SetSideToMove sets the player to move. Invalid colors are ignored.
func (p *Position) SetSideToMove(c Color) {
	if c.IsValid() {
		p.side = c
	}
}

// Ply returns the 1-based move counter.
func (p *Position) Ply() int {
	return p.ply
}

// SetPly sets the move counter.
func (p *Position) SetPly(ply int) {
	if ply >= 1 {
		p.ply = ply
	}
}

// LastMove returns the move that produced this position, or NoMove.
func (p *Position) LastMove() Move {
	return p.lastMove
}

// ColorBB returns the squares occupied by c's pieces.
func (p *Position) ColorBB(c Color) Bitboard {
	if !c.IsValid() {
		return Bitboard{}
	}
	return p.occupied[c.Index()]
}

// OccupiedBB returns the squares occupied by either side.
func (p *Position) OccupiedBB() Bitboard {
	return p.occupied[0].Or(p.occupied[1])
}

// VacantBB returns the empty squares.
func (p *Position) VacantBB() Bitboard {
	return p.OccupiedBB().Not()
}

// KingSquare returns the square of c's king, or NoSquare if the king is
// not on the board.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	bb := p.ColorBB(c)
	for !bb.IsEmpty() {
		sq := bb.PopLSB()
		if p.board[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// MakeMove applies m to the position: it moves or drops the piece,
// sends a captured piece to the mover's hand demoted to its base kind,
// flips the side to move and advances the ply. The move is not checked
// for full legality, only for playability; on error the position is
// left untouched.
func (p *Position) MakeMove(m Move) error {
	if m == NoMove {
		return fmt.Errorf("no move")
	}
	if !m.To().IsValid() {
		return fmt.Errorf("invalid destination in %v", m)
	}

	if m.IsDrop() {
		piece := m.DropPiece()
		if !piece.IsValid() {
			return fmt.Errorf("invalid drop piece in %v", m)
		}
		if piece.Color() != p.side {
			return fmt.Errorf("drop %v out of turn", m)
		}
		if p.hands[p.side.Index()].Count(piece.Kind()) == 0 {
			return fmt.Errorf("drop %v: piece not in hand", m)
		}
		if p.board[m.To()] != NoPiece {
			return fmt.Errorf("drop %v: square occupied", m)
		}
		p.hands[p.side.Index()].Remove(piece.Kind())
		p.SetPiece(m.To(), piece)
		p.finishMove(m)
		return nil
	}

	if !m.From().IsValid() {
		return fmt.Errorf("invalid origin in %v", m)
	}
	moving := p.board[m.From()]
	if moving == NoPiece {
		return fmt.Errorf("move %v: no piece at origin", m)
	}
	if moving.Color() != p.side {
		return fmt.Errorf("move %v out of turn", m)
	}
	placed := moving
	if m.IsPromotion() {
		placed = moving.Promote()
		if placed == NoPiece {
			return fmt.Errorf("move %v: %v cannot promote", m, moving.Kind())
		}
	}
	captured := p.board[m.To()]
	if captured != NoPiece {
		if captured.Color() == p.side {
			return fmt.Errorf("move %v: own piece at destination", m)
		}
		kind := captured.Kind()
		if base := kind.Unpromote(); base != NoPieceKind {
			kind = base
		}
		// A king can never enter a hand; refusing here also rejects
		// king captures during simulation.
		if !p.hands[p.side.Index()].Add(kind) {
			return fmt.Errorf("move %v: cannot take %v in hand", m, kind)
		}
	}
	p.SetPiece(m.From(), NoPiece)
	p.SetPiece(m.To(), placed)
	p.finishMove(m)
	return nil
}

func (p *Position) finishMove(m Move) {
	p.side = p.side.Flip()
	p.ply++
	p.lastMove = m
}

func (p *Position) String() string {
	return p.SFEN()
}
