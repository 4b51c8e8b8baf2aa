// Package noteservice runs a note submission through command processing,
// continuation, formatting, rendering, wallpaper setting and logging.
package noteservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/desknote/internal/apperr"
	"github.com/starford/desknote/internal/command"
	"github.com/starford/desknote/internal/continuation"
	"github.com/starford/desknote/internal/format"
	"github.com/starford/desknote/internal/index"
	"github.com/starford/desknote/internal/models"
	"github.com/starford/desknote/internal/notelog"
	"github.com/starford/desknote/internal/render"
	"github.com/starford/desknote/internal/wallpaper"
)

// Outcome describes a submission that reached the renderer.
type Outcome struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"` // styled text that was rendered
	ImagePath string        `json:"image_path"`
	Flags     command.Flags `json:"flags"`
	Entry     *models.Entry `json:"entry,omitempty"` // set when the note was logged
	Exit      bool          `json:"exit"`

	// WallpaperErr and LogErr are reported but do not fail the submission.
	WallpaperErr error `json:"-"`
	LogErr       error `json:"-"`
}

// WallpaperSet reports whether the wallpaper was applied.
func (o *Outcome) WallpaperSet() bool {
	return o.WallpaperErr == nil
}

// Preview is the result of preparing a note without side effects.
type Preview struct {
	Text  string        `json:"text"`
	Flags command.Flags `json:"flags"`
}

// Listener is notified after every completed submission.
type Listener func(*Outcome)

// Service coordinates the submission pipeline.
// Submissions are serialized; each one runs to completion before the next starts.
type Service struct {
	notes     *notelog.Log
	renderer  render.Renderer
	setter    wallpaper.Setter
	db        index.NoteIndex
	logger    *slog.Logger
	now       func() time.Time
	listeners []Listener

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithIndex enables history search through db.
func WithIndex(db index.NoteIndex) Option {
	return func(s *Service) {
		s.db = db
	}
}

// WithListener registers fn to be called after each submission.
func WithListener(fn Listener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, fn)
	}
}

// WithClock overrides the clock used for /time, /date and /now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new submission service.
func NewService(notes *notelog.Log, renderer render.Renderer, setter wallpaper.Setter, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		notes:    notes,
		renderer: renderer,
		setter:   setter,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare processes raw note text up to and including formatting. It reads
// the log for /continue but renders, sets and writes nothing.
func (s *Service) Prepare(raw string) (*Preview, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, apperr.ErrEmptyInput
	}

	res, err := command.Process(text, s.now())
	if err != nil {
		return nil, err
	}
	if res.Flags.Strip && !res.Flags.Continue {
		return nil, apperr.ErrMisplacedStrip
	}

	text = res.Text
	if res.Flags.Continue {
		text = continuation.Merge(continuation.PreviousBody(s.notes.Read()), text)
	}

	// magick reads pango:@path as a file name.
	text = format.Apply(text)
	if strings.HasPrefix(text, "@") {
		return nil, apperr.ErrFileReference
	}
	return &Preview{Text: text, Flags: res.Flags}, nil
}

// Submit runs the full pipeline for raw note text.
//
// Input errors and render failures are returned as errors and leave no
// trace. Once an image is rendered the submission is considered done:
// wallpaper and logging failures are recorded on the Outcome instead.
func (s *Service) Submit(ctx context.Context, raw string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Prepare(raw)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		ID:    uuid.NewString(),
		Text:  p.Text,
		Flags: p.Flags,
		Exit:  p.Flags.Exit,
	}

	path, err := s.renderer.Render(ctx, p.Text)
	if err != nil {
		if !errors.Is(err, apperr.ErrRenderFailure) {
			err = fmt.Errorf("%w: %v", apperr.ErrRenderFailure, err)
		}
		s.logger.Error("render failed", slog.String("id", out.ID), slog.String("error", err.Error()))
		return nil, err
	}
	out.ImagePath = path

	if err := s.setter.Set(ctx, path); err != nil {
		if !errors.Is(err, apperr.ErrWallpaperSet) {
			err = fmt.Errorf("%w: %v", apperr.ErrWallpaperSet, err)
		}
		out.WallpaperErr = err
		s.logger.Warn("set wallpaper failed", slog.String("id", out.ID), slog.String("error", err.Error()))
	}

	if p.Flags.Log {
		entry, err := s.notes.Append(p.Text)
		if err != nil {
			out.LogErr = err
			s.logger.Warn("log note failed", slog.String("id", out.ID), slog.String("error", err.Error()))
		} else {
			out.Entry = &entry
		}
	}

	s.logger.Info("note submitted",
		slog.String("id", out.ID),
		slog.String("image", out.ImagePath),
		slog.Bool("wallpaper_set", out.WallpaperSet()),
		slog.Bool("logged", out.Entry != nil),
		slog.Bool("exit", out.Exit))

	for _, fn := range s.listeners {
		fn(out)
	}
	return out, nil
}

// ReadLog returns the raw log text, or notelog.NoNotesYet.
func (s *Service) ReadLog(_ context.Context) string {
	return s.notes.Read()
}

// ListNotes returns logged entries, newest first, paginated.
func (s *Service) ListNotes(_ context.Context, limit, offset int) ([]models.Entry, int, error) {
	entries, err := s.notes.Entries()
	if err != nil {
		return nil, 0, err
	}
	total := len(entries)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return nonNilSlice(entries[offset:end]), total, nil
}

// LatestNote returns the newest logged entry.
func (s *Service) LatestNote(_ context.Context) (*models.Entry, error) {
	e, ok, err := s.notes.Latest()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &e, nil
}

// Search delegates full-text search over logged notes to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	if s.db == nil {
		return nil, fmt.Errorf("noteservice: search index not configured")
	}
	res, err := s.db.Search(query, limit)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(res), nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
