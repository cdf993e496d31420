package kifu

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const sampleKIF = `# KIF形式棋譜ファイル
開始日時：2026/08/23
先手：先手太郎
後手：後手花子
手合割：平手
手数----指手---------消費時間--
   1 ７六歩(77)   ( 0:01/00:00:01)
   2 ３四歩(33)   ( 0:01/00:00:01)
   3 ２二角成(88) ( 0:02/00:00:03)
   4 同　銀(31)   ( 0:01/00:00:02)
   5 ４五角打     ( 0:03/00:00:06)
   6 投了         ( 0:00/00:00:06)
`

var sampleUSI = []string{"7g7f", "3c3d", "8h2b+", "3a2b", "B*4e"}

func checkSampleDocument(t *testing.T, doc *Document) {
	t.Helper()
	got := doc.Game.USIMoves()
	if len(got) != len(sampleUSI) {
		t.Fatalf("parsed %d moves (%v), want %d", len(got), got, len(sampleUSI))
	}
	for i := range sampleUSI {
		if got[i] != sampleUSI[i] {
			t.Errorf("move %d = %s, want %s", i+1, got[i], sampleUSI[i])
		}
	}
	if doc.Result != "投了" {
		t.Errorf("result = %q, want 投了", doc.Result)
	}
	if doc.Headers["先手"] != "先手太郎" {
		t.Errorf("black player header = %q", doc.Headers["先手"])
	}
	if doc.Headers["手合割"] != "平手" {
		t.Errorf("handicap header = %q", doc.Headers["手合割"])
	}
}

func TestParseKIFUTF8(t *testing.T) {
	doc, err := ParseKIF([]byte(sampleKIF))
	if err != nil {
		t.Fatal(err)
	}
	checkSampleDocument(t, doc)

	// The dropped bishop must have come from the 2b exchange.
	if got := doc.Game.Current().SideToMove().String(); got != "white" {
		t.Errorf("side to move after 5 moves = %s, want white", got)
	}
}

func TestParseKIFWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, sampleKIF...)
	doc, err := ParseKIF(data)
	if err != nil {
		t.Fatal(err)
	}
	checkSampleDocument(t, doc)
}

func TestParseKIFShiftJIS(t *testing.T) {
	encoded, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), sampleKIF)
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	doc, err := ParseKIF([]byte(encoded))
	if err != nil {
		t.Fatal(err)
	}
	checkSampleDocument(t, doc)
}

func TestParseKIFRejectsHandicap(t *testing.T) {
	kif := strings.Replace(sampleKIF, "平手", "香落ち", 1)
	if _, err := ParseKIF([]byte(kif)); err == nil {
		t.Error("handicap record must be rejected")
	}
}

func TestParseKIFRejectsIllegalMove(t *testing.T) {
	kif := strings.Replace(sampleKIF, "７六歩(77)", "７四歩(77)", 1)
	if _, err := ParseKIF([]byte(kif)); err == nil {
		t.Error("illegal two-square pawn push must be rejected")
	}
}

func TestParseKIFRejectsWrongOriginPiece(t *testing.T) {
	kif := strings.Replace(sampleKIF, "７六歩(77)", "７六銀(77)", 1)
	if _, err := ParseKIF([]byte(kif)); err == nil {
		t.Error("piece name that contradicts the origin must be rejected")
	}
}

func TestParseKIFMoveTokens(t *testing.T) {
	doc, err := ParseKIF([]byte(sampleKIF))
	if err != nil {
		t.Fatal(err)
	}
	pos := doc.Game.Current()
	if _, err := parseKIFMove("同", pos); err == nil {
		t.Error("bare 同 must be rejected")
	}
	if _, err := parseKIFMove("０五歩(77)", pos); err == nil {
		t.Error("bad destination file must be rejected")
	}
	if _, err := parseKIFMove("７六竜(77)", pos); err == nil {
		t.Error("missing dragon at origin must be rejected")
	}
}
