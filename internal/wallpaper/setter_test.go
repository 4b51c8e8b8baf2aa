package wallpaper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/desknote/internal/apperr"
)

func TestCommand_ReplacesPlaceholder(t *testing.T) {
	var got []string
	c, err := NewCommand("feh --bg-fill {path}", func(_ context.Context, name string, args ...string) ([]byte, error) {
		got = append([]string{name}, args...)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}
	if err := c.Set(context.Background(), "/tmp/wallpaper_1.jpg"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if strings.Join(got, " ") != "feh --bg-fill /tmp/wallpaper_1.jpg" {
		t.Errorf("command = %v", got)
	}
}

func TestCommand_FailureIsWallpaperSet(t *testing.T) {
	c, _ := NewCommand("setbg {path}", func(context.Context, string, ...string) ([]byte, error) {
		return []byte("no display"), errors.New("exit status 1")
	})
	err := c.Set(context.Background(), "/x.jpg")
	if !errors.Is(err, apperr.ErrWallpaperSet) {
		t.Fatalf("err = %v, want ErrWallpaperSet", err)
	}
	if !strings.Contains(err.Error(), "no display") {
		t.Errorf("output missing from error: %v", err)
	}
}

func TestNewCommand_Empty(t *testing.T) {
	if _, err := NewCommand("   ", nil); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestNew_UsesTemplate(t *testing.T) {
	s, err := New("echo {path}")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := s.(*Command); !ok {
		t.Errorf("setter = %T, want *Command", s)
	}
}
