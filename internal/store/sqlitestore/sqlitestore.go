// Package sqlitestore keeps the checklist snapshot as one row of a
// key/value table in a SQLite database.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/store"
)

// DefaultFileName is used when no path is configured.
const DefaultFileName = "checklist.db"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Slot is a SQLite-backed store.Slot addressed by a single key.
type Slot struct {
	conn *sql.DB
	key  string
}

// Open opens (creating if needed) the database at path and binds the
// slot to model.StorageKey.
func Open(path string) (*Slot, error) {
	return OpenKey(path, model.StorageKey)
}

// OpenKey is Open with an explicit slot key.
func OpenKey(path, key string) (*Slot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Slot{conn: conn, key: key}, nil
}

// Close releases the database.
func (s *Slot) Close() error {
	return s.conn.Close()
}

func (s *Slot) Get() ([]byte, error) {
	var b []byte
	err := s.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, s.key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query slot: %w", err)
	}
	return b, nil
}

// Put upserts the row in a single statement; SQLite makes it atomic.
func (s *Slot) Put(b []byte) error {
	_, err := s.conn.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, b)
	if err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}
