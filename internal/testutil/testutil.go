// Package testutil provides shared test helpers for setting up data dirs, note logs and databases.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/starford/desknote/internal/index"
	"github.com/starford/desknote/internal/notelog"
	"github.com/starford/desknote/internal/storage"
)

// LogPath is the note log location used by test helpers, relative to the data dir.
const LogPath = "daily_note/note_log.txt"

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "desknote-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a temporary data directory with a storage.Provider.
func TestStore(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dataDir := t.TempDir()
	store, err := storage.NewFS(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	return dataDir, store
}

// TestLog creates a note log in a temporary data directory.
func TestLog(t *testing.T, opts ...notelog.Option) (string, *notelog.Log) {
	t.Helper()
	dataDir, store := TestStore(t)
	return dataDir, notelog.New(store, LogPath, opts...)
}

// QuietLogger returns a logger that only emits errors.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// FakeRenderer records rendered texts and returns a fixed image path.
type FakeRenderer struct {
	Path  string
	Err   error
	Texts []string
}

// Render implements render.Renderer.
func (f *FakeRenderer) Render(_ context.Context, text string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.Texts = append(f.Texts, text)
	return f.Path, nil
}
