package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/store"
)

func TestGetMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), DefaultFileName))
	_, err := s.Get()
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPutCreatesDirectoryAndReplaces(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "nested", DefaultFileName))

	require.NoError(t, s.Put([]byte(`{"a":1}`)))
	require.NoError(t, s.Put([]byte(`{"b":2}`)))

	got, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestPutFailureLeavesFileIntact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	s := New(path)
	require.NoError(t, s.Put([]byte("old")))

	// The parent is a regular file, so nothing can be written below it.
	bad := New(filepath.Join(path, "child.json"))
	assert.Error(t, bad.Put([]byte("new")))

	got, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
}

func TestAdapterOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	a := store.NewAdapter(New(path), nil)

	snap := model.DefaultSnapshot()
	snap.Values["homework-12"] = true
	require.NoError(t, a.Save(snap))
	assert.Equal(t, snap, a.Load())

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	assert.Equal(t, model.DefaultSnapshot(), a.Load())
}
