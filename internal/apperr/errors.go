// Package apperr defines the error kinds shared by the submission pipeline and its shells.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrEmptyInput     = errors.New("please enter some text for the wallpaper")
	ErrInvalidCommand = errors.New("invalid command")
	ErrMisplacedStrip = errors.New("use '/continue' to strip lines from previous note")
	ErrFileReference  = errors.New("note text cannot start with '@'")
	ErrRenderFailure  = errors.New("error generating image")
	ErrWallpaperSet   = errors.New("failed to set wallpaper")
)

// CommandError reports the first unrecognised command found in a note.
type CommandError struct {
	Command string // name without the leading slash, as typed
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("inappropriate command '/%s' used", e.Command)
}

// Unwrap lets errors.Is match ErrInvalidCommand.
func (e *CommandError) Unwrap() error {
	return ErrInvalidCommand
}

// IsUserError reports whether err was caused by the submitted text rather than the environment.
func IsUserError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInvalidCommand) ||
		errors.Is(err, ErrMisplacedStrip) ||
		errors.Is(err, ErrFileReference)
}
