// Package wallpaper applies an image as the desktop background.
package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/starford/desknote/internal/apperr"
)

// Setter applies the image at an absolute path as the wallpaper.
type Setter interface {
	Set(ctx context.Context, path string) error
}

// SetterFunc adapts a function to Setter.
type SetterFunc func(ctx context.Context, path string) error

// Set calls f.
func (f SetterFunc) Set(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Command runs a user-supplied command line, replacing "{path}" in each
// argument with the image path. The line is split on whitespace and is not
// passed through a shell.
type Command struct {
	args []string
	run  Runner
}

// NewCommand parses a command template such as "feh --bg-fill {path}".
func NewCommand(template string, run Runner) (*Command, error) {
	args := strings.Fields(template)
	if len(args) == 0 {
		return nil, fmt.Errorf("wallpaper: empty command")
	}
	if run == nil {
		run = execRunner
	}
	return &Command{args: args, run: run}, nil
}

// Set runs the command for path.
func (c *Command) Set(ctx context.Context, path string) error {
	args := make([]string, len(c.args)-1)
	for i, a := range c.args[1:] {
		args[i] = strings.ReplaceAll(a, "{path}", path)
	}
	return runChecked(ctx, c.run, c.args[0], args...)
}

// New returns the setter for this platform, or a Command setter when
// template is non-empty.
func New(template string) (Setter, error) {
	if template != "" {
		return NewCommand(template, nil)
	}
	return platformSetter(execRunner), nil
}

func runChecked(ctx context.Context, run Runner, name string, args ...string) error {
	out, err := run(ctx, name, args...)
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail == "" {
			return fmt.Errorf("%w: %s: %v", apperr.ErrWallpaperSet, name, err)
		}
		return fmt.Errorf("%w: %s: %v: %s", apperr.ErrWallpaperSet, name, err, detail)
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}
