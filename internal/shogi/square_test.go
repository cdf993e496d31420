package shogi

import "testing"

func TestSquareRoundTrip(t *testing.T) {
	seen := make(map[Square]bool)
	for file := 1; file <= 9; file++ {
		for rank := 1; rank <= 9; rank++ {
			sq := NewSquare(file, rank)
			if !sq.IsValid() {
				t.Fatalf("NewSquare(%d, %d) invalid", file, rank)
			}
			if seen[sq] {
				t.Fatalf("NewSquare(%d, %d) collides with another square", file, rank)
			}
			seen[sq] = true
			if sq.File() != file || sq.Rank() != rank {
				t.Errorf("NewSquare(%d, %d) decodes to (%d, %d)", file, rank, sq.File(), sq.Rank())
			}
			if want := Square(9*(file-1) + rank); sq != want {
				t.Errorf("NewSquare(%d, %d) = %d, want %d", file, rank, sq, want)
			}
		}
	}
	if len(seen) != NumSquares {
		t.Errorf("got %d distinct squares, want %d", len(seen), NumSquares)
	}
}

func TestSquareOutOfRange(t *testing.T) {
	cases := []struct{ file, rank int }{
		{0, 5}, {10, 5}, {5, 0}, {5, 10}, {0, 0}, {10, 10}, {-1, 3},
	}
	for _, c := range cases {
		if sq := NewSquare(c.file, c.rank); sq != NoSquare {
			t.Errorf("NewSquare(%d, %d) = %v, want NoSquare", c.file, c.rank, sq)
		}
	}
}

func TestSquareFlip(t *testing.T) {
	for sq := Square(1); sq <= NumSquares; sq++ {
		f := sq.Flip()
		if f.File() != 10-sq.File() || f.Rank() != 10-sq.Rank() {
			t.Errorf("%v.Flip() = %v, want mirrored coordinates", sq, f)
		}
		if f.Flip() != sq {
			t.Errorf("%v flipped twice is %v", sq, f.Flip())
		}
	}
}

func TestSquareRelativeRank(t *testing.T) {
	sq := NewSquare(7, 7)
	if got := sq.RelativeRank(Black); got != 7 {
		t.Errorf("black relative rank = %d, want 7", got)
	}
	if got := sq.RelativeRank(White); got != 3 {
		t.Errorf("white relative rank = %d, want 3", got)
	}
}

func TestSquareUSI(t *testing.T) {
	cases := []struct {
		sq   Square
		want string
	}{
		{NewSquare(7, 7), "7g"},
		{NewSquare(1, 1), "1a"},
		{NewSquare(9, 9), "9i"},
		{NewSquare(2, 8), "2h"},
	}
	for _, c := range cases {
		if got := c.sq.String(); got != c.want {
			t.Errorf("%d.String() = %q, want %q", c.sq, got, c.want)
		}
		parsed, err := ParseSquare(c.want)
		if err != nil {
			t.Errorf("ParseSquare(%q): %v", c.want, err)
		}
		if parsed != c.sq {
			t.Errorf("ParseSquare(%q) = %v, want %v", c.want, parsed, c.sq)
		}
	}
	for _, bad := range []string{"", "7", "0a", "7j", "xg", "10a"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) succeeded, want error", bad)
		}
	}
}
