package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/starford/desknote/internal/apperr"
	"github.com/starford/desknote/internal/markup"
	"github.com/starford/desknote/internal/models"
	"github.com/starford/desknote/internal/noteservice"
	"github.com/starford/desknote/internal/parser"
)

func init() {
	color.NoColor = true
}

func TestNoteText(t *testing.T) {
	got, err := noteText([]string{"buy", "milk", "/nolog"}, strings.NewReader("ignored"))
	if err != nil || got != "buy milk /nolog" {
		t.Errorf("args = %q, %v", got, err)
	}

	got, err = noteText(nil, strings.NewReader("line one\nline two\n"))
	if err != nil || got != "line one\nline two\n" {
		t.Errorf("stdin = %q, %v", got, err)
	}
}

func TestPrintOutcome(t *testing.T) {
	ts := time.Date(2024, 10, 12, 9, 15, 0, 0, time.Local)
	var buf bytes.Buffer
	printOutcome(&buf, &noteservice.Outcome{
		ImagePath:    "/data/temp/wallpaper_1.jpg",
		Entry:        &models.Entry{Timestamp: ts, Body: "x"},
		WallpaperErr: apperr.ErrWallpaperSet,
	})
	out := buf.String()
	for _, want := range []string{"Rendered /data/temp/wallpaper_1.jpg", "Wallpaper not set", "Logged at 2024-10-12 09:15:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printOutcome(&buf, &noteservice.Outcome{ImagePath: "a.jpg", LogErr: errors.New("disk full")})
	if !strings.Contains(buf.String(), "Note not logged: disk full") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintLog(t *testing.T) {
	ts := time.Date(2024, 10, 12, 9, 15, 0, 0, time.Local)
	content := parser.FormatEntry(ts, "hello")

	var buf bytes.Buffer
	printLog(&buf, content)
	if !strings.Contains(buf.String(), "DeskNote 2024-10-12 09:15:00:\nhello\n"+parser.Divider) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer
	printEntries(&buf, nil, 0)
	if !strings.Contains(buf.String(), "History - 0 entries") || !strings.Contains(buf.String(), "none") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	ts := time.Date(2024, 10, 12, 9, 15, 0, 0, time.Local)
	printEntries(&buf, []models.Entry{{Timestamp: ts, Body: "only"}}, 1)
	if !strings.Contains(buf.String(), "History - 1 entry\n2024-10-12 09:15:00\nonly\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintCommands(t *testing.T) {
	var buf bytes.Buffer
	printCommands(&buf, markup.Commands)
	out := buf.String()
	for _, c := range markup.Commands {
		if !strings.Contains(out, c.Usage) || !strings.Contains(out, c.Description) {
			t.Errorf("missing %s", c.Usage)
		}
	}
}
