package shogi

import "testing"

func TestSFENStartposRoundTrip(t *testing.T) {
	p := mustParseSFEN(t, StartSFEN)
	if got := p.SFEN(); got != StartSFEN {
		t.Errorf("round trip:\n got %s\nwant %s", got, StartSFEN)
	}
	if p.SideToMove() != Black {
		t.Errorf("side to move = %v, want black", p.SideToMove())
	}
	if p.Ply() != 1 {
		t.Errorf("ply = %d, want 1", p.Ply())
	}
	if got := p.OccupiedBB().PopCount(); got != 40 {
		t.Errorf("occupied squares = %d, want 40", got)
	}
	if got := p.PieceAt(NewSquare(8, 2)); got != NewPiece(Rook, White) {
		t.Errorf("8b holds %v, want white rook", got)
	}
	if got := p.PieceAt(NewSquare(8, 8)); got != NewPiece(Bishop, Black) {
		t.Errorf("8h holds %v, want black bishop", got)
	}
}

func TestSFENPrefixAccepted(t *testing.T) {
	p := mustParseSFEN(t, "sfen "+StartSFEN)
	if p.SFEN() != StartSFEN {
		t.Error("leading sfen tag must be tolerated")
	}
}

func TestSFENHands(t *testing.T) {
	const sfen = "9/9/9/9/9/9/9/9/9 b RG4P2b2s3p 5"
	p := mustParseSFEN(t, sfen)
	black, white := p.Hand(Black), p.Hand(White)
	checks := []struct {
		hand *Hand
		kind PieceKind
		want int
	}{
		{black, Rook, 1},
		{black, Gold, 1},
		{black, Pawn, 4},
		{white, Bishop, 2},
		{white, Silver, 2},
		{white, Pawn, 3},
		{black, Bishop, 0},
		{white, Rook, 0},
	}
	for _, c := range checks {
		if got := c.hand.Count(c.kind); got != c.want {
			t.Errorf("hand count of %v = %d, want %d", c.kind, got, c.want)
		}
	}
	if p.Ply() != 5 {
		t.Errorf("ply = %d, want 5", p.Ply())
	}
	if got := p.SFEN(); got != sfen {
		t.Errorf("round trip:\n got %s\nwant %s", got, sfen)
	}
}

func TestSFENPromotedPieces(t *testing.T) {
	const sfen = "9/4+R4/9/9/9/9/9/4+p4/9 w - 1"
	p := mustParseSFEN(t, sfen)
	if got := p.PieceAt(NewSquare(5, 2)); got != NewPiece(ProRook, Black) {
		t.Errorf("5b holds %v, want black dragon", got)
	}
	if got := p.PieceAt(NewSquare(5, 8)); got != NewPiece(ProPawn, White) {
		t.Errorf("5h holds %v, want white tokin", got)
	}
	if got := p.SFEN(); got != sfen {
		t.Errorf("round trip:\n got %s\nwant %s", got, sfen)
	}
}

func TestSFENErrors(t *testing.T) {
	bad := []string{
		"",
		"9/9/9/9/9/9/9/9 b - 1",            // eight rows
		"9/9/9/9/9/9/9/9/9 x - 1",          // bad side
		"9/9/9/9/9/9/9/9/8Q b - 1",         // bad letter
		"9/9/9/9/9/9/9/9/+K8 b - 1",        // king cannot promote
		"pppppppppp/9/9/9/9/9/9/9/9 b - 1", // row overflow
		"9/9/9/9/9/9/9/9/9 b K 1",          // king in hand
		"9/9/9/9/9/9/9/9/9 b - 0",          // bad ply
		"9/9/9/9/9/9/9/9/9 b 4 1",          // dangling hand count
	}
	for _, s := range bad {
		if _, err := ParseSFEN(s); err == nil {
			t.Errorf("ParseSFEN(%q) succeeded, want error", s)
		}
	}
}

func TestParseMoveUSI(t *testing.T) {
	cases := []struct {
		usi  string
		want Move
	}{
		{"7g7f", NewMove(NewSquare(7, 7), NewSquare(7, 6), false)},
		{"8h2b+", NewMove(NewSquare(8, 8), NewSquare(2, 2), true)},
		{"P*3d", NewDrop(NewPiece(Pawn, Black), NewSquare(3, 4))},
	}
	for _, c := range cases {
		got, err := ParseMove(c.usi, Black)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", c.usi, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseMove(%q) = %v, want %v", c.usi, got, c.want)
		}
		if got.USI() != c.usi {
			t.Errorf("%v.USI() = %q, want %q", got, got.USI(), c.usi)
		}
	}
	if m, err := ParseMove("R*5e", White); err != nil {
		t.Errorf("white drop: %v", err)
	} else if m.DropPiece() != NewPiece(Rook, White) {
		t.Errorf("white drop piece = %v", m.DropPiece())
	}
	for _, bad := range []string{"", "7g", "7g7j", "p*3d", "K*5e", "X*3d", "7g7f++"} {
		if _, err := ParseMove(bad, Black); err == nil {
			t.Errorf("ParseMove(%q) succeeded, want error", bad)
		}
	}
}
