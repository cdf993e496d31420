package shogi

import "fmt"

// Game is a position plus its full history: the initial snapshot and
// every move played since, so past states can be replayed on demand.
type Game struct {
	initial Position
	moves   []Move
	current Position
}

// NewGame starts a game from the even starting position.
func NewGame() *Game {
	return NewGameFrom(NewPosition())
}

// NewGameFrom starts a game from an arbitrary position.
func NewGameFrom(p *Position) *Game {
	return &Game{initial: *p, current: *p}
}

// Current returns the live position. Mutating it directly bypasses the
// history; use MakeMove.
func (g *Game) Current() *Position {
	return &g.current
}

// Initial returns a copy of the starting position.
func (g *Game) Initial() *Position {
	p := g.initial
	return &p
}

// Moves returns the moves played so far.
func (g *Game) Moves() []Move {
	return g.moves
}

// MakeMove plays m if it is fully legal and records it in the history.
func (g *Game) MakeMove(m Move) error {
	if r := g.current.Judge(m); r != RulingLegal {
		return fmt.Errorf("illegal move %v: %v", m, r)
	}
	if err := g.current.MakeMove(m); err != nil {
		return err
	}
	g.moves = append(g.moves, m)
	return nil
}

// PositionAt replays the history and returns the position after the
// first n moves. n ranges from 0 (the initial position) to len(Moves()).
func (g *Game) PositionAt(n int) (*Position, error) {
	if n < 0 || n > len(g.moves) {
		return nil, fmt.Errorf("no position after %d moves, game has %d", n, len(g.moves))
	}
	p := g.initial
	for _, m := range g.moves[:n] {
		if err := p.MakeMove(m); err != nil {
			return nil, fmt.Errorf("corrupt history at move %v: %w", m, err)
		}
	}
	return &p, nil
}

// USIMoves returns the history in USI notation.
func (g *Game) USIMoves() []string {
	out := make([]string, len(g.moves))
	for i, m := range g.moves {
		out[i] = m.USI()
	}
	return out
}
