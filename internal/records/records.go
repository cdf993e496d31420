// Package records exports stored games as parquet rows for offline
// analysis.
package records

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/hailam/shogiban/internal/shogi"
	"github.com/hailam/shogiban/internal/storage"
)

const writerParallelism = 4

// GameRow is one exported game, aggregated by replaying its moves
// through the legality engine.
type GameRow struct {
	GameID     string `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Result     string `parquet:"name=result, type=BYTE_ARRAY, convertedtype=UTF8"`
	MoveCount  int32  `parquet:"name=move_count, type=INT32"`
	Drops      int32  `parquet:"name=drops, type=INT32"`
	Captures   int32  `parquet:"name=captures, type=INT32"`
	Promotions int32  `parquet:"name=promotions, type=INT32"`
	FinalSFEN  string `parquet:"name=final_sfen, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Collect replays a stored game and aggregates it into a row. A game
// whose moves do not replay legally is an error.
func Collect(g *storage.StoredGame) (GameRow, error) {
	pos, err := shogi.ParseSFEN(g.StartSFEN)
	if err != nil {
		return GameRow{}, fmt.Errorf("game %s: %w", g.ID, err)
	}

	row := GameRow{
		GameID:    g.ID,
		Result:    g.Result,
		MoveCount: int32(len(g.Moves)),
	}
	for i, usi := range g.Moves {
		m, err := shogi.ParseMove(usi, pos.SideToMove())
		if err != nil {
			return GameRow{}, fmt.Errorf("game %s move %d: %w", g.ID, i+1, err)
		}
		switch {
		case m.IsDrop():
			row.Drops++
		case pos.PieceAt(m.To()) != shogi.NoPiece:
			row.Captures++
		}
		if m.IsPromotion() {
			row.Promotions++
		}
		if err := pos.MakeMove(m); err != nil {
			return GameRow{}, fmt.Errorf("game %s move %d: %w", g.ID, i+1, err)
		}
	}
	row.FinalSFEN = pos.SFEN()

	return row, nil
}

// Write writes rows to a parquet file at path.
func Write(path string, rows []GameRow) error {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(GameRow), writerParallelism)
	if err != nil {
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := parquetWriter.Write(row); err != nil {
			return err
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return err
	}
	return fileWriter.Close()
}

// Export collects every game in the store and writes them to path.
func Export(s *storage.Storage, path string) (int, error) {
	ids, err := s.ListGames()
	if err != nil {
		return 0, err
	}

	rows := make([]GameRow, 0, len(ids))
	for _, id := range ids {
		g, err := s.LoadGame(id)
		if err != nil {
			return 0, err
		}
		row, err := Collect(g)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	if err := Write(path, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
