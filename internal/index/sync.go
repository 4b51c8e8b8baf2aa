package index

import (
	"log/slog"

	"github.com/starford/desknote/internal/checksum"
	"github.com/starford/desknote/internal/notelog"
	"github.com/starford/desknote/internal/parser"
)

// Sync brings the index up to date with the note log. Unchanged content
// (same checksum) is skipped. It reports whether the index was rewritten.
func Sync(db NoteIndex, notes *notelog.Log, logger *slog.Logger) (bool, error) {
	data, err := notes.Raw()
	if err != nil {
		return false, err
	}

	stored, err := db.Checksum()
	if err != nil {
		return false, err
	}
	if checksum.Matches(data, stored) {
		logger.Debug("sync: log unchanged", slog.String("checksum", stored))
		return false, nil
	}
	cs := checksum.Sum(data)

	entries := parser.ParseEntries(data)
	if err := db.Replace(entries, cs); err != nil {
		return false, err
	}
	logger.Debug("sync: indexed", slog.Int("entries", len(entries)), slog.String("checksum", cs))
	return true, nil
}
