// path: internal/storage/storage.go
// Package storage persists user preferences and match statistics in a local
// BadgerDB instance.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	matchKeyPrefix = "match/"
)

// Preferences stores user settings for the Shadows mode client.
type Preferences struct {
	PlayerName   string    `json:"player_name"`
	SoundEnabled bool      `json:"sound_enabled"`
	PinnedSeed   int64     `json:"pinned_seed"` // 0 means a fresh seed per match
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns the settings used before a player saves any.
func DefaultPreferences() *Preferences {
	return &Preferences{
		PlayerName:   "Player",
		SoundEnabled: true,
		LastPlayed:   time.Now(),
	}
}

// MatchStats aggregates finished matches.
type MatchStats struct {
	MatchesPlayed    int           `json:"matches_played"`
	Victories        int           `json:"victories"`
	Defeats          int           `json:"defeats"`
	Abandoned        int           `json:"abandoned"`
	CurrentStreak    int           `json:"current_streak"`
	LongestWinStreak int           `json:"longest_win_streak"`
	TotalPlayTime    time.Duration `json:"total_play_time"`
}

// WinRate returns the victory percentage over finished matches.
func (s *MatchStats) WinRate() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.Victories) / float64(s.MatchesPlayed) * 100
}

// MatchRecord is one finished match.
type MatchRecord struct {
	ID       string        `json:"id"`
	Outcome  string        `json:"outcome"`
	Turns    int           `json:"turns"`
	Duration time.Duration `json:"duration"`
	Finished time.Time     `json:"finished"`
}

// Store wraps BadgerDB for persistent storage.
type Store struct {
	db *badger.DB
}

// DatabaseDir returns the badger directory, creating it if needed.
func DatabaseDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "shadow-chess", "db")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Open opens (or creates) the store at dir. An empty dir uses DatabaseDir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DatabaseDir()
		if err != nil {
			return nil, err
		}
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences persists the player's settings.
func (s *Store) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences returns the saved settings, or defaults if none exist.
func (s *Store) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	return prefs, err
}

// LoadStats returns the aggregate stats, empty if none were saved yet.
func (s *Store) LoadStats() (*MatchStats, error) {
	stats := &MatchStats{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
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

// RecordMatch stores one finished match and folds it into the aggregate
// stats. The record keeps its id even if it carried none.
func (s *Store) RecordMatch(rec MatchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Finished.IsZero() {
		rec.Finished = time.Now()
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.MatchesPlayed++
	stats.TotalPlayTime += rec.Duration
	switch rec.Outcome {
	case "victory":
		stats.Victories++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStreak {
			stats.LongestWinStreak = stats.CurrentStreak
		}
	case "defeat":
		stats.Defeats++
		stats.CurrentStreak = 0
	default:
		stats.Abandoned++
		stats.CurrentStreak = 0
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	statsData, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(matchKeyPrefix+rec.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
}

// Matches returns every stored match record.
func (s *Store) Matches() ([]MatchRecord, error) {
	var out []MatchRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(matchKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var rec MatchRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}
