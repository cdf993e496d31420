package kifu

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/hailam/shogiban/internal/shogi"
)

// Document is a parsed KIF game record: the replayed game, the header
// fields, and the terminal marker (投了 and friends) if the record has
// one.
type Document struct {
	Game    *shogi.Game
	Headers map[string]string
	Result  string
}

var (
	kifMoveLineRe     = regexp.MustCompile(`^\s*(\d+)\s+(.+?)\s+\(`)
	kifTerminalLineRe = regexp.MustCompile(`^\s*(\d+)\s+(.+?)\s*$`)
	kifOriginRe       = regexp.MustCompile(`\((\d)(\d)\)`)
)

// ParseKIF parses a KIF game record. Records are accepted in UTF-8
// (with or without a BOM) or Shift-JIS. Only even (hirate) games are
// supported: a 手合割 header naming a handicap is an error.
func ParseKIF(data []byte) (*Document, error) {
	text, err := decodeKIF(data)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(text, "\n")

	doc := &Document{
		Headers: parseKIFHeaders(lines),
	}
	if teai, ok := doc.Headers["手合割"]; ok && !strings.Contains(teai, "平手") {
		return nil, fmt.Errorf("unsupported handicap %q", teai)
	}
	doc.Game = shogi.NewGame()

	for i, line := range lines {
		token, ok := kifMoveToken(line)
		if !ok {
			continue
		}
		if isKIFTerminal(token) {
			doc.Result = token
			break
		}
		m, err := parseKIFMove(token, doc.Game.Current())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if err := doc.Game.MakeMove(m); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return doc, nil
}

// decodeKIF turns raw KIF bytes into UTF-8 text. Exported files are
// traditionally Shift-JIS; modern tools write UTF-8, sometimes with a
// BOM.
func decodeKIF(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), nil
	}
	r := transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder())
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding Shift-JIS: %w", err)
	}
	if !utf8.Valid(decoded) {
		return "", errors.New("KIF data is neither UTF-8 nor Shift-JIS")
	}
	return string(decoded), nil
}

// parseKIFHeaders collects the key：value header lines that precede the
// move list.
func parseKIFHeaders(lines []string) map[string]string {
	headers := make(map[string]string)
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, "*") {
			continue
		}
		if kifMoveLineRe.MatchString(trim) {
			break
		}
		key, value, found := strings.Cut(trim, "：")
		if !found {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers
}

// kifMoveToken extracts the move text of a numbered move line, with or
// without a trailing clock annotation.
func kifMoveToken(line string) (string, bool) {
	if m := kifMoveLineRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2]), true
	}
	if m := kifTerminalLineRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2]), true
	}
	return "", false
}

func isKIFTerminal(token string) bool {
	switch token {
	case "投了", "中断", "持将棋", "千日手", "詰み", "切れ負け",
		"反則勝ち", "反則負け", "入玉勝ち", "勝ち宣言":
		return true
	}
	return false
}

// kifPieceNames maps KIF piece names to kinds, longest names first so
// that 成銀 is never read as 成 + 銀.
var kifPieceNames = []struct {
	name string
	kind shogi.PieceKind
}{
	{"成銀", shogi.ProSilver},
	{"成桂", shogi.ProKnight},
	{"成香", shogi.ProLance},
	{"と", shogi.ProPawn},
	{"馬", shogi.ProBishop},
	{"龍", shogi.ProRook},
	{"竜", shogi.ProRook},
	{"王", shogi.King},
	{"玉", shogi.King},
	{"飛", shogi.Rook},
	{"角", shogi.Bishop},
	{"金", shogi.Gold},
	{"銀", shogi.Silver},
	{"桂", shogi.Knight},
	{"香", shogi.Lance},
	{"歩", shogi.Pawn},
}

// parseKIFMove parses one move token, e.g. "７六歩(77)", "同　金(69)",
// "２二角成(88)" or "４五桂打", against the position it is played in.
func parseKIFMove(token string, pos *shogi.Position) (shogi.Move, error) {
	work := strings.TrimSpace(token)

	var to shogi.Square
	if rest, found := strings.CutPrefix(work, "同"); found {
		last := pos.LastMove()
		if last == shogi.NoMove {
			return shogi.NoMove, fmt.Errorf("%q without a previous move", token)
		}
		to = last.To()
		work = strings.TrimLeft(rest, " 　")
	} else {
		runes := []rune(work)
		if len(runes) < 2 {
			return shogi.NoMove, fmt.Errorf("move token %q too short", token)
		}
		file, ok := kifFileDigit(runes[0])
		if !ok {
			return shogi.NoMove, fmt.Errorf("bad destination file in %q", token)
		}
		rank, ok := kifRankDigit(runes[1])
		if !ok {
			return shogi.NoMove, fmt.Errorf("bad destination rank in %q", token)
		}
		to = shogi.NewSquare(file, rank)
		work = string(runes[2:])
	}

	var from shogi.Square
	if m := kifOriginRe.FindStringSubmatch(work); m != nil {
		from = shogi.NewSquare(int(m[1][0]-'0'), int(m[2][0]-'0'))
		if from == shogi.NoSquare {
			return shogi.NoMove, fmt.Errorf("bad origin in %q", token)
		}
		work = kifOriginRe.ReplaceAllString(work, "")
	}

	kind := shogi.NoPieceKind
	for _, def := range kifPieceNames {
		if rest, found := strings.CutPrefix(work, def.name); found {
			kind = def.kind
			work = rest
			break
		}
	}
	if kind == shogi.NoPieceKind {
		return shogi.NoMove, fmt.Errorf("unknown piece in %q", token)
	}

	promote := false
	drop := false
	switch strings.TrimSpace(work) {
	case "":
	case "成":
		promote = true
	case "不成":
	case "打":
		drop = true
	default:
		return shogi.NoMove, fmt.Errorf("trailing %q in move %q", work, token)
	}

	side := pos.SideToMove()
	if drop || from == shogi.NoSquare {
		piece := shogi.NewPiece(kind, side)
		if piece == shogi.NoPiece || !kind.IsDroppable() {
			return shogi.NoMove, fmt.Errorf("cannot drop %v in %q", kind, token)
		}
		return shogi.NewDrop(piece, to), nil
	}

	moving := pos.PieceAt(from)
	if moving == shogi.NoPiece || moving.Kind() != kind {
		return shogi.NoMove, fmt.Errorf("move %q: %v does not sit on %v", token, kind, from)
	}
	return shogi.NewMove(from, to, promote), nil
}

func kifFileDigit(r rune) (int, bool) {
	switch {
	case r >= '1' && r <= '9':
		return int(r - '0'), true
	case r >= '１' && r <= '９':
		return int(r-'１') + 1, true
	}
	return 0, false
}

func kifRankDigit(r rune) (int, bool) {
	for i, k := range kanjiDigits {
		if r == k {
			return i + 1, true
		}
	}
	return kifFileDigit(r)
}
