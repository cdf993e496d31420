package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	gameKeyPrefix = "game:"
	keyStats      = "stats"
)

// Game results
const (
	ResultBlackWin = "black"
	ResultWhiteWin = "white"
	ResultDraw     = "draw"
	ResultUnknown  = ""
)

// ErrNotFound is returned when a requested game does not exist.
var ErrNotFound = errors.New("game not found")

// StoredGame is a persisted game record: the starting position, the
// moves in USI notation and whatever metadata came with the source.
type StoredGame struct {
	ID        string            `json:"id"`
	StartSFEN string            `json:"start_sfen"`
	Moves     []string          `json:"moves"`
	Result    string            `json:"result"`
	Tags      map[string]string `json:"tags,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// PlayStats aggregates over every recorded game.
type PlayStats struct {
	GamesPlayed int `json:"games_played"`
	BlackWins   int `json:"black_wins"`
	WhiteWins   int `json:"white_wins"`
	Draws       int `json:"draws"`
	TotalMoves  int `json:"total_moves"`
	TotalDrops  int `json:"total_drops"`
}

// NewPlayStats returns empty statistics
func NewPlayStats() *PlayStats {
	return &PlayStats{}
}

// BlackWinRate returns black's win rate as a percentage (0-100)
func (s *PlayStats) BlackWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.BlackWins) / float64(s.GamesPlayed) * 100
}

// Storage wraps BadgerDB for persistent game records
type Storage struct {
	db *badger.DB
}

// NewStorage opens the store in the platform data directory
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the store in an explicit directory
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gameKeyPrefix + id)
}

// SaveGame writes a game record, stamping the timestamps
func (s *Storage) SaveGame(g *StoredGame) error {
	if g.ID == "" {
		return errors.New("game has no id")
	}
	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now

	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(g.ID), data)
	})
}

// LoadGame reads a game record, ErrNotFound if absent
func (s *Storage) LoadGame(id string) (*StoredGame, error) {
	var g StoredGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%q: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// ListGames returns the ids of every stored game
func (s *Storage) ListGames() ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// DeleteGame removes a game record, ErrNotFound if absent
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%q: %w", id, ErrNotFound)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// SaveStats saves aggregate statistics
func (s *Storage) SaveStats(stats *PlayStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads aggregate statistics, empty if never saved
func (s *Storage) LoadStats() (*PlayStats, error) {
	stats := NewPlayStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordGame saves a completed game and folds it into the statistics
func (s *Storage) RecordGame(g *StoredGame) error {
	if err := s.SaveGame(g); err != nil {
		return err
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalMoves += len(g.Moves)
	for _, m := range g.Moves {
		if strings.ContainsRune(m, '*') {
			stats.TotalDrops++
		}
	}

	switch g.Result {
	case ResultBlackWin:
		stats.BlackWins++
	case ResultWhiteWin:
		stats.WhiteWins++
	case ResultDraw:
		stats.Draws++
	}

	return s.SaveStats(stats)
}
