// Package notelog stores the newest-first history of logged notes in a single text file.
package notelog

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/starford/desknote/internal/models"
	"github.com/starford/desknote/internal/parser"
	"github.com/starford/desknote/internal/storage"
)

// NoNotesYet is returned by Read when the log file has never been created.
const NoNotesYet = "No notes logged yet."

// Log is the note history file.
//
// Append rewrites the whole file with the new entry on top. Writes are
// serialized within the process and committed by atomic rename; separate
// processes writing the same file are not coordinated.
type Log struct {
	store storage.Provider
	path  string
	now   func() time.Time

	mu sync.Mutex
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// New returns a Log stored at path (relative to the store root).
func New(store storage.Provider, path string, opts ...Option) *Log {
	l := &Log{store: store, path: path, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the log path relative to the store root.
func (l *Log) Path() string {
	return l.path
}

// AbsPath returns the absolute path of the log file.
func (l *Log) AbsPath() (string, error) {
	return l.store.Abs(l.path)
}

// Read returns the full log content, or NoNotesYet if it cannot be read.
func (l *Log) Read() string {
	data, err := l.store.Read(l.path)
	if err != nil {
		return NoNotesYet
	}
	return string(data)
}

// Raw returns the log content, distinguishing a missing file (nil, nil) from read failures.
func (l *Log) Raw() ([]byte, error) {
	data, err := l.store.Read(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("notelog: read: %w", err)
	}
	return data, nil
}

// Append puts a new entry for body at the top of the log and returns it.
func (l *Log) Append(body string) (models.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensure(); err != nil {
		return models.Entry{}, err
	}
	old, err := l.store.Read(l.path)
	if err != nil {
		return models.Entry{}, fmt.Errorf("notelog: read: %w", err)
	}

	ts := l.now().Truncate(time.Second)
	block := parser.FormatEntry(ts, body)
	content := make([]byte, 0, len(block)+len(old))
	content = append(content, block...)
	content = append(content, old...)
	if err := l.store.Write(l.path, content); err != nil {
		return models.Entry{}, fmt.Errorf("notelog: write: %w", err)
	}
	return models.Entry{Position: 0, Timestamp: ts, Body: body}, nil
}

// Entries returns every logged entry, newest first.
func (l *Log) Entries() ([]models.Entry, error) {
	data, err := l.Raw()
	if err != nil {
		return nil, err
	}
	return parser.ParseEntries(data), nil
}

// Latest returns the newest entry, if any.
func (l *Log) Latest() (models.Entry, bool, error) {
	entries, err := l.Entries()
	if err != nil || len(entries) == 0 {
		return models.Entry{}, false, err
	}
	return entries[0], true, nil
}

// ensure creates an empty log file if none exists.
func (l *Log) ensure() error {
	ok, err := l.store.Exists(l.path)
	if err != nil {
		return fmt.Errorf("notelog: stat: %w", err)
	}
	if ok {
		return nil
	}
	if err := l.store.Write(l.path, nil); err != nil {
		return fmt.Errorf("notelog: create: %w", err)
	}
	return nil
}
