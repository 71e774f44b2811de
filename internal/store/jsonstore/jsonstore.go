package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/checklist/internal/store"
)

// JSON-backed slot. Single file, human-readable, portable.
// No locking; the checklist is a single-user, single-process tool.

// DefaultFileName is used when no path is configured.
const DefaultFileName = "checklist.json"

// Slot stores the snapshot in one JSON file.
type Slot struct {
	path string
}

// New returns a slot backed by the file at path.
func New(path string) *Slot {
	return &Slot{path: path}
}

// Path is the backing file.
func (s *Slot) Path() string { return s.path }

func (s *Slot) Get() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Put writes through a temp file in the same directory and renames it
// over the target, so a failed write leaves the old file intact.
func (s *Slot) Put(b []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
