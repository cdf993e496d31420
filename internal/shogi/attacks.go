package shogi

// Short-range attack tables, filled eagerly at package init. Gold,
// tokin and the promoted lance/knight/silver all share the gold table.
var (
	pawnAttacks   [2][NumSquares + 1]Bitboard
	knightAttacks [2][NumSquares + 1]Bitboard
	silverAttacks [2][NumSquares + 1]Bitboard
	goldAttacks   [2][NumSquares + 1]Bitboard
	kingAttacks   [NumSquares + 1]Bitboard
)

// offset is a (file, rank) delta from Black's point of view; rank -1 is
// one step toward the opponent.
type offset struct{ df, dr int }

var (
	pawnOffsets   = []offset{{0, -1}}
	knightOffsets = []offset{{-1, -2}, {1, -2}}
	silverOffsets = []offset{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 1}, {1, 1},
	}
	goldOffsets = []offset{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{0, 1},
	}
	kingOffsets = []offset{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
)

func init() {
	for sq := Square(1); sq <= NumSquares; sq++ {
		for _, c := range []Color{Black, White} {
			i := c.Index()
			pawnAttacks[i][sq] = offsetAttacks(sq, c, pawnOffsets)
			knightAttacks[i][sq] = offsetAttacks(sq, c, knightOffsets)
			silverAttacks[i][sq] = offsetAttacks(sq, c, silverOffsets)
			goldAttacks[i][sq] = offsetAttacks(sq, c, goldOffsets)
		}
		kingAttacks[sq] = offsetAttacks(sq, Black, kingOffsets)
	}
}

// offsetAttacks builds the destination set of the given step offsets,
// mirrored vertically for White.
func offsetAttacks(sq Square, c Color, offsets []offset) Bitboard {
	var b Bitboard
	file, rank := sq.File(), sq.Rank()
	for _, o := range offsets {
		dr := o.dr
		if c == White {
			dr = -dr
		}
		b.Set(NewSquare(file+o.df, rank+dr))
	}
	return b
}

// rayAttacks walks from sq one step at a time in the given direction,
// collecting squares up to and including the first occupied one.
func rayAttacks(sq Square, c Color, df, dr int, occupied Bitboard) Bitboard {
	var b Bitboard
	if c == White {
		dr = -dr
	}
	file, rank := sq.File(), sq.Rank()
	for {
		file += df
		rank += dr
		cur := NewSquare(file, rank)
		if cur == NoSquare {
			return b
		}
		b.Set(cur)
		if occupied.IsSet(cur) {
			return b
		}
	}
}

func bishopAttacks(sq Square, occupied Bitboard) Bitboard {
	b := rayAttacks(sq, Black, -1, -1, occupied)
	b = b.Or(rayAttacks(sq, Black, 1, -1, occupied))
	b = b.Or(rayAttacks(sq, Black, -1, 1, occupied))
	b = b.Or(rayAttacks(sq, Black, 1, 1, occupied))
	return b
}

func rookAttacks(sq Square, occupied Bitboard) Bitboard {
	b := rayAttacks(sq, Black, -1, 0, occupied)
	b = b.Or(rayAttacks(sq, Black, 1, 0, occupied))
	b = b.Or(rayAttacks(sq, Black, 0, -1, occupied))
	b = b.Or(rayAttacks(sq, Black, 0, 1, occupied))
	return b
}

// AttackBB returns the squares attacked by piece standing on from, given
// the occupied squares. The set includes the first blocker on each ray;
// it does not exclude the mover's own pieces.
func AttackBB(piece Piece, from Square, occupied Bitboard) Bitboard {
	c := piece.Color()
	if !c.IsValid() || !from.IsValid() {
		return Bitboard{}
	}
	i := c.Index()
	switch piece.Kind() {
	case Pawn:
		return pawnAttacks[i][from]
	case Lance:
		return rayAttacks(from, c, 0, -1, occupied)
	case Knight:
		return knightAttacks[i][from]
	case Silver:
		return silverAttacks[i][from]
	case Gold, ProPawn, ProLance, ProKnight, ProSilver:
		return goldAttacks[i][from]
	case Bishop:
		return bishopAttacks(from, occupied)
	case Rook:
		return rookAttacks(from, occupied)
	case King:
		return kingAttacks[from]
	case ProBishop:
		return bishopAttacks(from, occupied).Or(kingAttacks[from])
	case ProRook:
		return rookAttacks(from, occupied).Or(kingAttacks[from])
	}
	return Bitboard{}
}

// Attacks returns the squares piece can move to from the given square in
// this position: its attack set minus squares held by its own side.
func (p *Position) Attacks(piece Piece, from Square) Bitboard {
	if !piece.IsValid() {
		return Bitboard{}
	}
	raw := AttackBB(piece, from, p.OccupiedBB())
	return raw.AndNot(p.ColorBB(piece.Color()))
}
