// Package kifu renders moves in Japanese kifu notation and imports KIF
// game files.
package kifu

import (
	"fmt"
	"strings"

	"github.com/hailam/shogiban/internal/shogi"
)

// Full-width digits for files and (in the default style) ranks, and the
// kanji digits used by the traditional style.
var (
	wideDigits  = [9]rune{'１', '２', '３', '４', '５', '６', '７', '８', '９'}
	kanjiDigits = [9]rune{'一', '二', '三', '四', '五', '六', '七', '八', '九'}
)

var pieceKanji = map[shogi.PieceKind]string{
	shogi.King:      "玉",
	shogi.Rook:      "飛",
	shogi.Bishop:    "角",
	shogi.Gold:      "金",
	shogi.Silver:    "銀",
	shogi.Knight:    "桂",
	shogi.Lance:     "香",
	shogi.Pawn:      "歩",
	shogi.ProRook:   "竜",
	shogi.ProBishop: "馬",
	shogi.ProSilver: "成銀",
	shogi.ProKnight: "成桂",
	shogi.ProLance:  "成香",
	shogi.ProPawn:   "と",
}

// FormatMove renders m as played in p, e.g. "▲７六歩" or "△同金上".
// Ranks use full-width digits; FormatMoveTraditional uses kanji ranks.
func FormatMove(p *shogi.Position, m shogi.Move) (string, error) {
	return formatMove(p, m, false)
}

// FormatMoveTraditional renders m with kanji rank digits, the style
// used in books and magazines, e.g. "▲７六歩".
func FormatMoveTraditional(p *shogi.Position, m shogi.Move) (string, error) {
	return formatMove(p, m, true)
}

func formatMove(p *shogi.Position, m shogi.Move, kanjiRank bool) (string, error) {
	side := p.SideToMove()
	if !side.IsValid() {
		return "", fmt.Errorf("position has no side to move")
	}
	var sb strings.Builder
	if side == shogi.Black {
		sb.WriteRune('▲')
	} else {
		sb.WriteRune('△')
	}

	// A normal move onto the previous destination is written 同.
	same := !m.IsDrop() && p.LastMove() != shogi.NoMove && p.LastMove().To() == m.To()
	if same {
		sb.WriteRune('同')
	} else {
		to := m.To()
		if !to.IsValid() {
			return "", fmt.Errorf("move %v has no destination", m)
		}
		sb.WriteRune(wideDigits[to.File()-1])
		if kanjiRank {
			sb.WriteRune(kanjiDigits[to.Rank()-1])
		} else {
			sb.WriteRune(wideDigits[to.Rank()-1])
		}
	}

	if m.IsDrop() {
		kind := m.DropPiece().Kind()
		sb.WriteString(pieceKanji[kind])
		// 打 is written only when a board piece of the same kind could
		// also move to the destination.
		onBoard := shogi.NewPiece(kind, side)
		if !p.LegalOrigins(onBoard, m.To()).IsEmpty() {
			sb.WriteRune('打')
		}
		return sb.String(), nil
	}

	piece := p.PieceAt(m.From())
	if piece == shogi.NoPiece || piece.Color() != side {
		return "", fmt.Errorf("move %v: no piece of %v at origin", m, side)
	}
	sb.WriteString(pieceKanji[piece.Kind()])

	candidates := p.LegalOrigins(piece, m.To())
	if candidates.IsEmpty() {
		return "", fmt.Errorf("move %v is not legal here", m)
	}
	suffix, err := disambiguate(p, piece, m.From(), m.To(), candidates)
	if err != nil {
		return "", err
	}
	sb.WriteString(suffix)

	couldPromote := piece.Kind().Promote() != shogi.NoPieceKind &&
		(m.From().RelativeRank(side) <= 3 || m.To().RelativeRank(side) <= 3)
	if m.IsPromotion() {
		sb.WriteRune('成')
	} else if couldPromote {
		sb.WriteString("不成")
	}
	return sb.String(), nil
}

// disambiguate picks the origin suffix (上/引/寄, 左/右/直, or a pair)
// that distinguishes from among the candidate origins of the same
// piece. Preference order: no suffix, vertical alone, horizontal
// alone, horizontal plus vertical.
func disambiguate(p *shogi.Position, piece shogi.Piece, from, to shogi.Square, candidates shogi.Bitboard) (string, error) {
	if candidates.PopCount() == 1 {
		return "", nil
	}
	side := p.SideToMove()

	// Vertical: does the piece advance, retreat or slide sideways?
	delta := sign(from.RelativeRank(side) - to.RelativeRank(side))
	var vertSub shogi.Bitboard
	for bb := candidates; !bb.IsEmpty(); {
		c := bb.PopLSB()
		if sign(c.RelativeRank(side)-to.RelativeRank(side)) == delta {
			vertSub.Set(c)
		}
	}
	var vert rune
	switch {
	case delta > 0:
		vert = '上'
	case delta < 0:
		vert = '引'
	default:
		vert = '寄'
	}

	horizSub, horiz := horizontal(piece, from, to, side, candidates)

	if vertSub.PopCount() == 1 {
		return string(vert), nil
	}
	if horizSub.PopCount() == 1 && horiz != 0 {
		return string(horiz), nil
	}
	if horizSub.And(vertSub).PopCount() == 1 && horiz != 0 {
		return string([]rune{horiz, vert}), nil
	}
	return "", fmt.Errorf("cannot disambiguate move from %v to %v", from, to)
}

// horizontal computes the 左/右/直 suffix candidate. Gold movers and
// silvers use the file offset toward the destination; sliding pieces
// compare the two possible origins directly.
func horizontal(piece shogi.Piece, from, to shogi.Square, side shogi.Color, candidates shogi.Bitboard) (shogi.Bitboard, rune) {
	if isGoldLike(piece.Kind()) {
		fileDiff := from.File() - to.File()
		if fileDiff == 0 && from.RelativeRank(side) > to.RelativeRank(side) {
			// Straight ahead gets its own character.
			return shogi.SquareBB(from), '直'
		}
		rel := fileDiff
		if side == shogi.White {
			rel = -rel
		}
		var ch rune
		switch {
		case rel < 0:
			ch = '右'
		case rel > 0:
			ch = '左'
		}
		var sub shogi.Bitboard
		for bb := candidates; !bb.IsEmpty(); {
			c := bb.PopLSB()
			if c.File()-to.File() == fileDiff {
				sub.Set(c)
			}
		}
		return sub, ch
	}

	// Sliding pieces: at most two candidates can share a destination.
	if candidates.PopCount() != 2 {
		return candidates, 0
	}
	bb := candidates
	c1 := bb.PopLSB()
	c2 := bb.PopLSB()
	if c1.File() == c2.File() {
		return candidates, 0
	}
	right, left := c1, c2
	if right.RelativeFile(side) > left.RelativeFile(side) {
		right, left = left, right
	}
	switch from {
	case right:
		return shogi.SquareBB(from), '右'
	case left:
		return shogi.SquareBB(from), '左'
	}
	return candidates, 0
}

func isGoldLike(k shogi.PieceKind) bool {
	switch k {
	case shogi.Gold, shogi.Silver, shogi.ProPawn, shogi.ProLance, shogi.ProKnight, shogi.ProSilver:
		return true
	}
	return false
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// FormatSequence renders a whole line of play starting from p.
func FormatSequence(p *shogi.Position, moves []shogi.Move) ([]string, error) {
	out := make([]string, 0, len(moves))
	cur := p.Clone()
	for i, m := range moves {
		s, err := FormatMove(cur, m)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		out = append(out, s)
		if err := cur.MakeMove(m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return out, nil
}
