// Package store keeps a local record of snapshot runs in a bbolt
// database, so `repotext history` can show what was generated and when.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var runsBucket = []byte("runs")

// Run is one recorded snapshot run.
type Run struct {
	ID          string    `json:"id"`
	Repo        string    `json:"repo"`
	GeneratedAt time.Time `json:"generated_at"`
	Files       int       `json:"files"`
	Commits     int       `json:"commits"`
	Tokens      int       `json:"tokens"`
	Output      string    `json:"output"`
}

// Store wraps the bbolt database.
type Store struct {
	db *bolt.DB
}

// DefaultPath returns the per-user history database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".repotext", "history.db")
	}
	return filepath.Join(home, ".repotext", "history.db")
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records one run. Keys are the run timestamp in big-endian
// nanoseconds, so bbolt's key order is chronological.
func (s *Store) SaveRun(run Run) error {
	value, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(run.GeneratedAt.UnixNano()))

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).Put(key, value)
	})
}

// ListRuns returns up to limit runs, newest first. limit <= 0 returns
// everything.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	var runs []Run

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(runsBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				// Skip records a future version wrote differently.
				continue
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}
