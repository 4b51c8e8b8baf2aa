// Package render turns styled note text into a wallpaper image with ImageMagick.
package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/starford/desknote/internal/apperr"
	"github.com/starford/desknote/internal/storage"
)

const imagePattern = "wallpaper_*.jpg"

// Renderer produces an image file for the given Pango-styled text and
// returns its absolute path.
type Renderer interface {
	Render(ctx context.Context, text string) (string, error)
}

// Options are the fixed presentation parameters of the image.
type Options struct {
	Binary     string
	Font       string
	PointSize  int
	Background string
	Fill       string
	Size       string // WxH
	TextWidth  int
	Margin     int
	Timeout    time.Duration // 0 means no limit
	Keep       int           // images to keep in the output dir, 0 keeps all
}

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Magick renders with the ImageMagick "magick" binary and the pango coder.
type Magick struct {
	opts   Options
	store  storage.Provider
	dir    string // output dir relative to the store root
	logger *slog.Logger
	now    func() time.Time
	run    Runner
}

// MagickOption configures a Magick renderer.
type MagickOption func(*Magick)

// WithRunner replaces the process runner.
func WithRunner(run Runner) MagickOption {
	return func(m *Magick) {
		m.run = run
	}
}

// WithClock overrides the clock used for image names.
func WithClock(now func() time.Time) MagickOption {
	return func(m *Magick) {
		m.now = now
	}
}

// NewMagick creates a renderer writing into outputDir under store.
func NewMagick(store storage.Provider, outputDir string, opts Options, logger *slog.Logger, mopts ...MagickOption) *Magick {
	m := &Magick{
		opts:   opts,
		store:  store,
		dir:    outputDir,
		logger: logger,
		now:    time.Now,
		run:    execRunner,
	}
	for _, o := range mopts {
		o(m)
	}
	return m
}

var _ Renderer = (*Magick)(nil)

// Args builds the magick argument list that draws text onto a solid canvas
// and writes the result to out.
//
// text is passed as Pango markup without escaping. A stray '<' or '&' makes
// magick fail, and a leading '@' names a file to read, so callers must not
// pass one.
func (m *Magick) Args(text, out string) []string {
	margin := "+" + strconv.Itoa(m.opts.Margin)
	return []string{
		"-background", m.opts.Background,
		"-fill", m.opts.Fill,
		"-font", m.opts.Font,
		"-pointsize", strconv.Itoa(m.opts.PointSize),
		"-size", strconv.Itoa(m.opts.TextWidth) + "x",
		"pango:" + text,
		"-size", m.opts.Size,
		"xc:" + m.opts.Background,
		"+swap",
		"-gravity", "northwest",
		"-geometry", margin + margin,
		"-composite",
		out,
	}
}

// Render writes wallpaper_<unixtime>.jpg into the output directory.
func (m *Magick) Render(ctx context.Context, text string) (string, error) {
	dir, err := m.store.Abs(m.dir)
	if err != nil {
		return "", fmt.Errorf("render: output dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("render: mkdir: %w", err)
	}

	name := fmt.Sprintf("wallpaper_%d.jpg", m.now().Unix())
	out := filepath.Join(dir, name)

	if m.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.Timeout)
		defer cancel()
	}

	started := time.Now()
	output, err := m.run(ctx, m.opts.Binary, m.Args(text, out)...)
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			return "", fmt.Errorf("%w: %v", apperr.ErrRenderFailure, err)
		}
		return "", fmt.Errorf("%w: %v: %s", apperr.ErrRenderFailure, err, detail)
	}
	if ok, _ := m.store.Exists(filepath.Join(m.dir, name)); !ok {
		return "", fmt.Errorf("%w: %s was not written", apperr.ErrRenderFailure, name)
	}

	m.logger.Debug("render: image written",
		slog.String("path", out),
		slog.Duration("took", time.Since(started)))

	m.prune(name)
	return out, nil
}

// prune deletes the oldest images beyond the Keep limit, never the current one.
func (m *Magick) prune(current string) {
	if m.opts.Keep <= 0 {
		return
	}
	items, err := m.store.List(m.dir, imagePattern)
	if err != nil {
		m.logger.Warn("render: list images failed", slog.String("error", err.Error()))
		return
	}
	excess := len(items) - m.opts.Keep
	for _, it := range items {
		if excess <= 0 {
			return
		}
		if filepath.Base(it.Path) == current {
			continue
		}
		if err := m.store.Delete(it.Path); err != nil {
			m.logger.Warn("render: prune failed", slog.String("path", it.Path), slog.String("error", err.Error()))
			continue
		}
		m.logger.Debug("render: pruned", slog.String("path", it.Path))
		excess--
	}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}
