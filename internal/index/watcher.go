package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/starford/desknote/internal/notelog"
)

// EventCallback is called after a watcher-driven index change with the
// number of entries now indexed.
type EventCallback func(entries int)

const syncDelay = 150 * time.Millisecond

// Watch starts an fsnotify watcher on the directory holding the note log
// and re-syncs the index whenever the log file changes, until ctx is
// cancelled. It calls cb (if non-nil) after each sync that rewrote the index.
//
// The directory is watched rather than the file because log writes replace
// the file by rename. Bursts of events are coalesced into one sync.
func Watch(ctx context.Context, db NoteIndex, notes *notelog.Log, logger *slog.Logger, cb EventCallback) error {
	logPath, err := notes.AbsPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("log", logPath))

	var syncTimer *time.Timer
	var syncCh <-chan time.Time

	scheduleSync := func() {
		if syncTimer == nil {
			syncTimer = time.NewTimer(syncDelay)
			syncCh = syncTimer.C
		} else {
			syncTimer.Reset(syncDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if syncTimer != nil {
				syncTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-syncCh:
			changed, syncErr := Sync(db, notes, logger)
			if syncErr != nil {
				logger.Warn("watcher: sync failed", slog.String("error", syncErr.Error()))
				continue
			}
			if !changed || cb == nil {
				continue
			}
			n, countErr := db.Count()
			if countErr != nil {
				logger.Warn("watcher: count failed", slog.String("error", countErr.Error()))
				continue
			}
			cb(n)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != logPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watcher: log event", slog.String("op", ev.Op.String()))
			scheduleSync()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
