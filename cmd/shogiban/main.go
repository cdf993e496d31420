package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hailam/shogiban/internal/kifu"
	"github.com/hailam/shogiban/internal/records"
	"github.com/hailam/shogiban/internal/shogi"
	"github.com/hailam/shogiban/internal/storage"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "legal":
		cmdLegal(os.Args[2:])
	case "check":
		cmdCheck(os.Args[2:])
	case "kifu":
		cmdKifu(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shogiban <command> [flags]

commands:
  legal   list the legal moves of a position
  check   judge a single move against a position
  kifu    render a move sequence in Japanese notation
  import  import a KIF file into the game store
  export  export the game store to a parquet file`)
}

func parsePosition(sfen string) *shogi.Position {
	if sfen == "" {
		return shogi.NewPosition()
	}
	p, err := shogi.ParseSFEN(sfen)
	if err != nil {
		log.Fatalf("bad position: %v", err)
	}
	return p
}

func cmdLegal(args []string) {
	fs := flag.NewFlagSet("legal", flag.ExitOnError)
	sfen := fs.String("sfen", "", "position to enumerate (default: start position)")
	fs.Parse(args)

	p := parsePosition(*sfen)
	moves := p.AllLegalMoves()
	for _, m := range moves {
		fmt.Println(m.USI())
	}
	log.Printf("%d legal moves", len(moves))
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	sfen := fs.String("sfen", "", "position to check against (default: start position)")
	move := fs.String("move", "", "move in USI notation, e.g. 7g7f or P*3d")
	fs.Parse(args)

	if *move == "" {
		log.Fatal("check: -move is required")
	}
	p := parsePosition(*sfen)
	m, err := shogi.ParseMove(*move, p.SideToMove())
	if err != nil {
		log.Fatalf("bad move: %v", err)
	}
	fmt.Println(p.Judge(m))
}

func cmdKifu(args []string) {
	fs := flag.NewFlagSet("kifu", flag.ExitOnError)
	sfen := fs.String("sfen", "", "starting position (default: start position)")
	kanji := fs.Bool("kanji", false, "use kanji rank digits")
	fs.Parse(args)

	if fs.NArg() == 0 {
		log.Fatal("kifu: no moves given")
	}
	p := parsePosition(*sfen)
	for _, usi := range fs.Args() {
		m, err := shogi.ParseMove(usi, p.SideToMove())
		if err != nil {
			log.Fatalf("bad move %q: %v", usi, err)
		}
		var text string
		if *kanji {
			text, err = kifu.FormatMoveTraditional(p, m)
		} else {
			text, err = kifu.FormatMove(p, m)
		}
		if err != nil {
			log.Fatalf("formatting %q: %v", usi, err)
		}
		fmt.Println(text)
		if err := p.MakeMove(m); err != nil {
			log.Fatalf("playing %q: %v", usi, err)
		}
	}
}

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	id := fs.String("id", "", "id to store the game under (default: file name)")
	dbDir := fs.String("db", "", "database directory (default: platform data dir)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatal("import: exactly one KIF file expected")
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	doc, err := kifu.ParseKIF(data)
	if err != nil {
		log.Fatalf("parsing %s: %v", path, err)
	}

	gameID := *id
	if gameID == "" {
		gameID = path
	}
	stored := &storage.StoredGame{
		ID:        gameID,
		StartSFEN: doc.Game.Initial().SFEN(),
		Moves:     doc.Game.USIMoves(),
		Result:    resultFromKIF(doc),
		Tags:      doc.Headers,
	}

	s := openStore(*dbDir)
	defer s.Close()
	if err := s.RecordGame(stored); err != nil {
		log.Fatalf("storing %s: %v", gameID, err)
	}
	log.Printf("imported %s: %d moves, result %q", gameID, len(stored.Moves), stored.Result)
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "games.parquet", "output parquet file")
	dbDir := fs.String("db", "", "database directory (default: platform data dir)")
	fs.Parse(args)

	s := openStore(*dbDir)
	defer s.Close()
	n, err := records.Export(s, *out)
	if err != nil {
		log.Fatalf("exporting: %v", err)
	}
	log.Printf("exported %d games to %s", n, *out)
}

func openStore(dir string) *storage.Storage {
	var s *storage.Storage
	var err error
	if dir == "" {
		s, err = storage.NewStorage()
	} else {
		s, err = storage.Open(dir)
	}
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	return s
}

// resultFromKIF maps a KIF terminal marker to a stored result. 投了,
// 詰み and 切れ負け are losses for the side that was to move.
func resultFromKIF(doc *kifu.Document) string {
	switch doc.Result {
	case "投了", "詰み", "切れ負け", "反則負け":
		if doc.Game.Current().SideToMove() == shogi.Black {
			return storage.ResultWhiteWin
		}
		return storage.ResultBlackWin
	case "反則勝ち", "入玉勝ち", "勝ち宣言":
		if doc.Game.Current().SideToMove() == shogi.Black {
			return storage.ResultBlackWin
		}
		return storage.ResultWhiteWin
	case "持将棋", "千日手":
		return storage.ResultDraw
	}
	return storage.ResultUnknown
}
