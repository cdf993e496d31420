package shogi

import "testing"

func squareSet(coords ...[2]int) Bitboard {
	var b Bitboard
	for _, c := range coords {
		b.Set(NewSquare(c[0], c[1]))
	}
	return b
}

func TestAttackFlipSymmetry(t *testing.T) {
	var empty Bitboard
	for k := Pawn; k <= ProRook; k++ {
		for sq := Square(1); sq <= NumSquares; sq++ {
			black := AttackBB(NewPiece(k, Black), sq, empty)
			white := AttackBB(NewPiece(k, White), sq.Flip(), empty)
			if black.Flip() != white {
				t.Fatalf("%v at %v: black attacks flipped != white attacks at %v\nblack:\n%v\nwhite:\n%v",
					k, sq, sq.Flip(), black, white)
			}
		}
	}
}

func TestStartposShortRangeAttacks(t *testing.T) {
	p := NewPosition()
	cases := []struct {
		name string
		from Square
		want Bitboard
	}{
		{"pawn 7g", NewSquare(7, 7), squareSet([2]int{7, 6})},
		{"silver 3i", NewSquare(3, 9), squareSet([2]int{3, 8}, [2]int{4, 8})},
		{"gold 4i", NewSquare(4, 9), squareSet([2]int{3, 8}, [2]int{4, 8}, [2]int{5, 8})},
		{"king 5i", NewSquare(5, 9), squareSet([2]int{4, 8}, [2]int{5, 8}, [2]int{6, 8})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			piece := p.PieceAt(c.from)
			if piece == NoPiece {
				t.Fatalf("no piece at %v", c.from)
			}
			got := p.Attacks(piece, c.from)
			if got != c.want {
				t.Errorf("attacks from %v:\n%vwant:\n%v", c.from, got, c.want)
			}
		})
	}
}

func TestSlidingAttacksWithBlockers(t *testing.T) {
	p := NewPosition()
	for _, usi := range []string{"7g7f", "3c3d"} {
		m, err := ParseMove(usi, p.SideToMove())
		if err != nil {
			t.Fatal(err)
		}
		if err := p.MakeMove(m); err != nil {
			t.Fatal(err)
		}
	}

	bishopFrom := NewSquare(8, 8)
	bishop := p.PieceAt(bishopFrom)
	wantBishop := squareSet(
		[2]int{7, 7}, [2]int{6, 6}, [2]int{5, 5}, [2]int{4, 4},
		[2]int{3, 3}, [2]int{2, 2}, // stops at the white bishop, inclusive
	)
	if got := p.Attacks(bishop, bishopFrom); got != wantBishop {
		t.Errorf("bishop attacks:\n%vwant:\n%v", got, wantBishop)
	}

	rookFrom := NewSquare(2, 8)
	rook := p.PieceAt(rookFrom)
	wantRook := squareSet(
		[2]int{1, 8},
		[2]int{3, 8}, [2]int{4, 8}, [2]int{5, 8}, [2]int{6, 8}, [2]int{7, 8},
	)
	if got := p.Attacks(rook, rookFrom); got != wantRook {
		t.Errorf("rook attacks:\n%vwant:\n%v", got, wantRook)
	}
}

func TestLanceRayIncludesBlocker(t *testing.T) {
	p := NewPosition()
	from := NewSquare(9, 9)
	lance := p.PieceAt(from)
	if lance.Kind() != Lance {
		t.Fatalf("expected a lance at %v", from)
	}
	// Own pawn on 9g blocks the file; the blocker itself is excluded
	// from the movable set because it is friendly.
	want := squareSet([2]int{9, 8})
	if got := p.Attacks(lance, from); got != want {
		t.Errorf("lance attacks:\n%vwant:\n%v", got, want)
	}
	// The raw set includes the friendly blocker.
	raw := AttackBB(lance, from, p.OccupiedBB())
	if !raw.IsSet(NewSquare(9, 7)) {
		t.Error("raw lance ray must include the first occupied square")
	}
}

func TestPromotedSlidersAddKingSteps(t *testing.T) {
	var empty Bitboard
	from := NewSquare(5, 5)
	horse := AttackBB(NewPiece(ProBishop, Black), from, empty)
	dragon := AttackBB(NewPiece(ProRook, Black), from, empty)
	bishop := AttackBB(NewPiece(Bishop, Black), from, empty)
	rook := AttackBB(NewPiece(Rook, Black), from, empty)
	if horse != bishop.Or(kingAttacks[from]) {
		t.Error("horse must attack like a bishop plus king steps")
	}
	if dragon != rook.Or(kingAttacks[from]) {
		t.Error("dragon must attack like a rook plus king steps")
	}
	if horse.PopCount() != bishop.PopCount()+4 {
		t.Errorf("horse adds %d squares, want 4", horse.PopCount()-bishop.PopCount())
	}
	if dragon.PopCount() != rook.PopCount()+4 {
		t.Errorf("dragon adds %d squares, want 4", dragon.PopCount()-rook.PopCount())
	}
}

func TestGoldMoversShareAttacks(t *testing.T) {
	var empty Bitboard
	for _, sq := range []Square{NewSquare(5, 5), NewSquare(1, 1), NewSquare(9, 9)} {
		gold := AttackBB(NewPiece(Gold, Black), sq, empty)
		for _, k := range []PieceKind{ProPawn, ProLance, ProKnight, ProSilver} {
			if got := AttackBB(NewPiece(k, Black), sq, empty); got != gold {
				t.Errorf("%v at %v attacks differently from gold", k, sq)
			}
		}
	}
}
