package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/desknote/internal/models"
)

const checksumKey = "log_checksum"

// SearchResult represents one search hit.
type SearchResult struct {
	Position  int       `json:"position"`
	Timestamp time.Time `json:"timestamp"`
	Snippet   string    `json:"snippet"`
}

// Replace swaps the indexed entries for entries and records the checksum of
// the log content they came from, all within one transaction.
func (db *DB) Replace(entries []models.Entry, checksum string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("index: clear entries: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	if len(entries) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO entries (position, logged_at, body) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare entry insert: %w", err)
		}
		defer stmt.Close()
		for _, e := range entries {
			if _, err := stmt.Exec(e.Position, e.Timestamp, e.Body); err != nil {
				return fmt.Errorf("index: insert entry: %w", err)
			}
			if err := ftsInsert(tx, e.Position, e.Body); err != nil {
				return err
			}
		}
	}

	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, checksumKey, checksum)
	if err != nil {
		return fmt.Errorf("index: store checksum: %w", err)
	}

	return tx.Commit()
}

// Checksum returns the checksum of the last indexed log content, or empty string.
func (db *DB) Checksum() (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, checksumKey).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: checksum: %w", err)
	}
	return cs, nil
}

// Count returns the number of indexed entries.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}
