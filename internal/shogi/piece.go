package shogi

// Color identifies a player. Black moves first.
type Color uint8

const (
	NoColor Color = 0
	Black   Color = 1
	White   Color = 2
)

// Flip returns the opponent of c.
func (c Color) Flip() Color {
	return c ^ 3
}

// Index maps a valid color to 0 (Black) or 1 (White) for array indexing.
func (c Color) Index() int {
	return int(c) - 1
}

// IsValid reports whether c is Black or White.
func (c Color) IsValid() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "no color"
}

// PieceKind identifies one of the fourteen piece kinds, ignoring the owner.
type PieceKind uint8

const (
	NoPieceKind PieceKind = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	ProBishop
	ProRook
)

// NumPieceKinds is the number of valid piece kinds.
const NumPieceKinds = 14

// IsValid reports whether k names a piece kind.
func (k PieceKind) IsValid() bool {
	return k >= Pawn && k <= ProRook
}

// Promote returns the promoted counterpart of k, or NoPieceKind if k
// cannot promote (gold, king, and already-promoted kinds).
func (k PieceKind) Promote() PieceKind {
	switch k {
	case Pawn:
		return ProPawn
	case Lance:
		return ProLance
	case Knight:
		return ProKnight
	case Silver:
		return ProSilver
	case Bishop:
		return ProBishop
	case Rook:
		return ProRook
	}
	return NoPieceKind
}

// Unpromote returns the base counterpart of a promoted kind, or
// NoPieceKind if k is not promoted.
func (k PieceKind) Unpromote() PieceKind {
	switch k {
	case ProPawn:
		return Pawn
	case ProLance:
		return Lance
	case ProKnight:
		return Knight
	case ProSilver:
		return Silver
	case ProBishop:
		return Bishop
	case ProRook:
		return Rook
	}
	return NoPieceKind
}

// IsDroppable reports whether k may be held in hand and dropped.
func (k PieceKind) IsDroppable() bool {
	return k >= Pawn && k <= Rook
}

var kindLetters = [NumPieceKinds + 1]string{
	"", "P", "L", "N", "S", "G", "B", "R", "K",
	"+P", "+L", "+N", "+S", "+B", "+R",
}

// String returns the USI letter of k ("P", "+B", ...).
func (k PieceKind) String() string {
	if !k.IsValid() {
		return "?"
	}
	return kindLetters[k]
}

// Piece is a piece kind plus its owner, packed into one byte: the kind
// discriminant in the low four bits and the white flag in bit four.
type Piece uint8

const NoPiece Piece = 0

const whiteFlag Piece = 16

// NewPiece packs a kind and a color. Invalid input yields NoPiece.
func NewPiece(k PieceKind, c Color) Piece {
	if !k.IsValid() || !c.IsValid() {
		return NoPiece
	}
	p := Piece(k)
	if c == White {
		p |= whiteFlag
	}
	return p
}

// Kind returns the piece kind of p.
func (p Piece) Kind() PieceKind {
	return PieceKind(p & 15)
}

// Color returns the owner of p, or NoColor for NoPiece.
func (p Piece) Color() Color {
	if p == NoPiece {
		return NoColor
	}
	if p&whiteFlag != 0 {
		return White
	}
	return Black
}

// IsValid reports whether p encodes a real piece.
func (p Piece) IsValid() bool {
	return p.Kind().IsValid()
}

// Promote returns the promoted counterpart of p, or NoPiece if the kind
// cannot promote.
func (p Piece) Promote() Piece {
	return NewPiece(p.Kind().Promote(), p.Color())
}

// Unpromote returns the base counterpart of p, or NoPiece if the kind is
// not promoted.
func (p Piece) Unpromote() Piece {
	return NewPiece(p.Kind().Unpromote(), p.Color())
}

// String returns the USI/SFEN token of p: uppercase for Black, lowercase
// for White, with a '+' prefix for promoted pieces.
func (p Piece) String() string {
	if !p.IsValid() {
		return "?"
	}
	s := kindLetters[p.Kind()]
	if p.Color() == White {
		if len(s) == 2 {
			return "+" + string(s[1]+'a'-'A')
		}
		return string(s[0] + 'a' - 'A')
	}
	return s
}
