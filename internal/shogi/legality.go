package shogi

// Ruling is the outcome of the legality test for a single move. A move
// is legal only when the ruling is RulingLegal; every other value names
// the first rule the move breaks.
type Ruling uint8

const (
	RulingLegal Ruling = iota
	RulingNoPiece
	RulingWrongSide
	RulingOwnPiece
	RulingStuck
	RulingBadPromotion
	RulingUnreachable
	RulingNotInHand
	RulingOccupied
	RulingDropPawnMate
	RulingExposesKing
	RulingUnplayable
)

var rulingNames = [...]string{
	"legal",
	"no piece at origin",
	"not the mover's piece",
	"own piece at destination",
	"piece would be stuck",
	"impossible promotion",
	"destination unreachable",
	"piece not in hand",
	"destination occupied",
	"drop pawn mate",
	"exposes king",
	"unplayable",
}

func (r Ruling) String() string {
	if int(r) < len(rulingNames) {
		return rulingNames[r]
	}
	return "unknown"
}

// IsLegal reports whether m is fully legal in p.
func (p *Position) IsLegal(m Move) bool {
	return p.Judge(m) == RulingLegal
}

// Judge runs the full two-phase legality test on m: first the
// structural rules (ownership, stuck ranks, promotion zone,
// reachability, hand and vacancy for drops, drop-pawn-mate), then king
// safety on a copy with the move applied.
func (p *Position) Judge(m Move) Ruling {
	var next *Position
	if m.IsDrop() {
		if r := p.judgeDropShape(m); r != RulingLegal {
			return r
		}
		next = p.Clone()
		if next.MakeMove(m) != nil {
			return RulingUnplayable
		}
		// Mating with a dropped pawn is forbidden.
		if m.DropPiece().Kind() == Pawn && next.IsMate() {
			return RulingDropPawnMate
		}
	} else {
		if r := p.judgeMoveShape(m); r != RulingLegal {
			return r
		}
		next = p.Clone()
		if next.MakeMove(m) != nil {
			return RulingUnplayable
		}
	}
	if next.isKingAttacked(p.side) {
		return RulingExposesKing
	}
	return RulingLegal
}

// judgeMoveShape checks the structural rules of a normal move.
func (p *Position) judgeMoveShape(m Move) Ruling {
	piece := p.PieceAt(m.From())
	if piece == NoPiece {
		return RulingNoPiece
	}
	if piece.Color() != p.side {
		return RulingWrongSide
	}
	if !m.To().IsValid() {
		return RulingUnreachable
	}
	if target := p.PieceAt(m.To()); target != NoPiece && target.Color() == p.side {
		return RulingOwnPiece
	}
	kind := piece.Kind()
	if m.IsPromotion() {
		if kind.Promote() == NoPieceKind {
			return RulingBadPromotion
		}
		if m.From().RelativeRank(p.side) > 3 && m.To().RelativeRank(p.side) > 3 {
			return RulingBadPromotion
		}
	} else if stuckRank(kind, m.To(), p.side) {
		return RulingStuck
	}
	if !p.Attacks(piece, m.From()).IsSet(m.To()) {
		return RulingUnreachable
	}
	return RulingLegal
}

// judgeDropShape checks the structural rules of a drop, except the
// drop-pawn-mate rule which needs the applied position.
func (p *Position) judgeDropShape(m Move) Ruling {
	piece := m.DropPiece()
	if !piece.IsValid() {
		return RulingNoPiece
	}
	if piece.Color() != p.side {
		return RulingWrongSide
	}
	if p.hands[p.side.Index()].Count(piece.Kind()) == 0 {
		return RulingNotInHand
	}
	if !m.To().IsValid() {
		return RulingUnreachable
	}
	if p.PieceAt(m.To()) != NoPiece {
		return RulingOccupied
	}
	if stuckRank(piece.Kind(), m.To(), p.side) {
		return RulingStuck
	}
	return RulingLegal
}

// stuckRank reports whether a piece of the given kind on sq could never
// move again: pawns and lances on the last relative rank, knights on
// the last two.
func stuckRank(kind PieceKind, sq Square, side Color) bool {
	switch kind {
	case Pawn, Lance:
		return sq.RelativeRank(side) == 1
	case Knight:
		return sq.RelativeRank(side) <= 2
	}
	return false
}

// isKingAttacked reports whether any enemy piece attacks c's king. A
// missing king is never attacked.
func (p *Position) isKingAttacked(c Color) bool {
	king := p.KingSquare(c)
	if king == NoSquare {
		return false
	}
	occupied := p.OccupiedBB()
	enemies := p.ColorBB(c.Flip())
	for !enemies.IsEmpty() {
		sq := enemies.PopLSB()
		if AttackBB(p.board[sq], sq, occupied).IsSet(king) {
			return true
		}
	}
	return false
}

// IsInCheck reports whether c's king is currently attacked.
func (p *Position) IsInCheck(c Color) bool {
	return p.isKingAttacked(c)
}

// IsMate reports whether the side to move has no legal move at all.
// The king does not need to be in check: a stalemated player has lost.
func (p *Position) IsMate() bool {
	return !p.HasLegalMoves()
}

// HasLegalMoves reports whether the side to move has at least one legal
// move.
func (p *Position) HasLegalMoves() bool {
	found := false
	p.scanLegalMoves(func(Move) bool {
		found = true
		return false
	})
	return found
}

// AllLegalMoves returns every legal move of the side to move: all
// origin/destination/promotion candidates plus all hand-kind/
// destination drop candidates, filtered through the full legality test.
func (p *Position) AllLegalMoves() []Move {
	moves := make([]Move, 0, 128)
	p.scanLegalMoves(func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// scanLegalMoves calls f for each legal move until f returns false.
func (p *Position) scanLegalMoves(f func(Move) bool) {
	own := p.ColorBB(p.side)
	for bb := own; !bb.IsEmpty(); {
		from := bb.PopLSB()
		for to := Square(1); to <= NumSquares; to++ {
			for _, promote := range [2]bool{false, true} {
				m := NewMove(from, to, promote)
				if p.IsLegal(m) && !f(m) {
					return
				}
			}
		}
	}
	hand := &p.hands[p.side.Index()]
	for kind := Pawn; kind <= Rook; kind++ {
		if hand.Count(kind) == 0 {
			continue
		}
		piece := NewPiece(kind, p.side)
		for to := Square(1); to <= NumSquares; to++ {
			m := NewDrop(piece, to)
			if p.IsLegal(m) && !f(m) {
				return
			}
		}
	}
}

// LegalDestinations returns the squares legally reachable from the
// given origin, with or without promotion.
func (p *Position) LegalDestinations(from Square) Bitboard {
	var b Bitboard
	for to := Square(1); to <= NumSquares; to++ {
		if p.IsLegal(NewMove(from, to, false)) || p.IsLegal(NewMove(from, to, true)) {
			b.Set(to)
		}
	}
	return b
}

// LegalOrigins returns the squares from which the given piece can
// legally reach to, with or without promotion.
func (p *Position) LegalOrigins(piece Piece, to Square) Bitboard {
	var b Bitboard
	own := p.ColorBB(piece.Color())
	for !own.IsEmpty() {
		from := own.PopLSB()
		if p.PieceAt(from) != piece {
			continue
		}
		if p.IsLegal(NewMove(from, to, false)) || p.IsLegal(NewMove(from, to, true)) {
			b.Set(from)
		}
	}
	return b
}

// LegalDropSquares returns the squares on which the given piece can
// legally be dropped.
func (p *Position) LegalDropSquares(piece Piece) Bitboard {
	var b Bitboard
	for to := Square(1); to <= NumSquares; to++ {
		if p.IsLegal(NewDrop(piece, to)) {
			b.Set(to)
		}
	}
	return b
}
