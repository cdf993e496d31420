package shogi

import (
	"fmt"
	"strconv"
	"strings"
)

// StartSFEN is the even-game starting position.
const StartSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// sfenHandOrder is the piece order used when rendering a hand segment.
var sfenHandOrder = [...]PieceKind{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// ParseSFEN parses an SFEN position string, with or without the leading
// "sfen " tag: board, side to move, hands and an optional ply counter.
func ParseSFEN(s string) (*Position, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "sfen ")
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return nil, fmt.Errorf("invalid sfen %q: want board, side and hands", s)
	}

	p := NewEmptyPosition()
	if err := parseBoard(p, fields[0]); err != nil {
		return nil, fmt.Errorf("invalid sfen %q: %w", s, err)
	}

	switch fields[1] {
	case "b":
		p.SetSideToMove(Black)
	case "w":
		p.SetSideToMove(White)
	default:
		return nil, fmt.Errorf("invalid sfen %q: bad side %q", s, fields[1])
	}

	if err := parseHands(p, fields[2]); err != nil {
		return nil, fmt.Errorf("invalid sfen %q: %w", s, err)
	}

	if len(fields) >= 4 {
		ply, err := strconv.Atoi(fields[3])
		if err != nil || ply < 1 {
			return nil, fmt.Errorf("invalid sfen %q: bad ply %q", s, fields[3])
		}
		p.SetPly(ply)
	}
	return p, nil
}

func parseBoard(p *Position, board string) error {
	rows := strings.Split(board, "/")
	if len(rows) != 9 {
		return fmt.Errorf("board has %d rows, want 9", len(rows))
	}
	for i, row := range rows {
		rank := i + 1
		file := 9
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '9' {
				file -= int(ch - '0')
				continue
			}
			promoted := false
			if ch == '+' {
				promoted = true
				j++
				if j >= len(row) {
					return fmt.Errorf("dangling '+' in row %q", row)
				}
				ch = row[j]
			}
			piece := pieceFromLetter(ch)
			if piece == NoPiece {
				return fmt.Errorf("bad piece letter %q in row %q", ch, row)
			}
			if promoted {
				piece = piece.Promote()
				if piece == NoPiece {
					return fmt.Errorf("unpromotable piece %q in row %q", ch, row)
				}
			}
			if file < 1 {
				return fmt.Errorf("row %q overflows the board", row)
			}
			p.SetPiece(NewSquare(file, rank), piece)
			file--
		}
		if file != 0 {
			return fmt.Errorf("row %q covers %d files, want 9", row, 9-file)
		}
	}
	return nil
}

func parseHands(p *Position, hands string) error {
	if hands == "-" {
		return nil
	}
	count := 0
	for i := 0; i < len(hands); i++ {
		ch := hands[i]
		if ch >= '0' && ch <= '9' {
			count = count*10 + int(ch-'0')
			continue
		}
		piece := pieceFromLetter(ch)
		if piece == NoPiece || !piece.Kind().IsDroppable() {
			return fmt.Errorf("bad hand piece %q", ch)
		}
		if count == 0 {
			count = 1
		}
		hand := p.Hand(piece.Color())
		for n := 0; n < count; n++ {
			if !hand.Add(piece.Kind()) {
				return fmt.Errorf("too many %v in hand", piece.Kind())
			}
		}
		count = 0
	}
	if count != 0 {
		return fmt.Errorf("dangling count in hands %q", hands)
	}
	return nil
}

// pieceFromLetter decodes a single SFEN piece letter: uppercase is
// Black, lowercase is White.
func pieceFromLetter(ch byte) Piece {
	color := Black
	if ch >= 'a' && ch <= 'z' {
		color = White
		ch -= 'a' - 'A'
	}
	for k := Pawn; k <= King; k++ {
		if kindLetters[k][0] == ch {
			return NewPiece(k, color)
		}
	}
	return NoPiece
}

// SFEN renders the position as an SFEN string with ply counter.
func (p *Position) SFEN() string {
	var sb strings.Builder
	for rank := 1; rank <= 9; rank++ {
		if rank > 1 {
			sb.WriteByte('/')
		}
		vacant := 0
		for file := 9; file >= 1; file-- {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				vacant++
				continue
			}
			if vacant > 0 {
				sb.WriteByte(byte('0' + vacant))
				vacant = 0
			}
			sb.WriteString(piece.String())
		}
		if vacant > 0 {
			sb.WriteByte(byte('0' + vacant))
		}
	}

	sb.WriteByte(' ')
	if p.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.handsSFEN())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.ply))
	return sb.String()
}

func (p *Position) handsSFEN() string {
	var sb strings.Builder
	for _, c := range []Color{Black, White} {
		hand := &p.hands[c.Index()]
		for _, kind := range sfenHandOrder {
			n := hand.Count(kind)
			if n == 0 {
				continue
			}
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			sb.WriteString(NewPiece(kind, c).String())
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
