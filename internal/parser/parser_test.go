package parser

import (
	"testing"
	"time"
)

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 59, 58, 0, time.Local)
	got := FormatEntry(ts, "body")
	want := "\nDeskNote 2025-12-31 23:59:58:\nbody\n=====================\n"
	if got != want {
		t.Errorf("FormatEntry = %q, want %q", got, want)
	}
}

func TestParseEntries_NewestFirst(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)
	t2 := time.Date(2024, 5, 2, 10, 0, 0, 0, time.Local)
	data := FormatEntry(t2, "new\nlines") + FormatEntry(t1, "old")

	entries := ParseEntries([]byte(data))
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Body != "new\nlines" || entries[0].Position != 0 || !entries[0].Timestamp.Equal(t2) {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Body != "old" || entries[1].Position != 1 || !entries[1].Timestamp.Equal(t1) {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestParseEntries_EmptyBody(t *testing.T) {
	data := FormatEntry(time.Now(), "")
	entries := ParseEntries([]byte(data))
	if len(entries) != 1 || entries[0].Body != "" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestParseEntries_BodyContainingDivider(t *testing.T) {
	body := "above\n=====================\nbelow"
	entries := ParseEntries([]byte(FormatEntry(time.Now(), body)))
	if len(entries) != 1 || entries[0].Body != body {
		t.Errorf("entries = %+v", entries)
	}
}

func TestParseEntries_HeaderShapedBodyLineSplits(t *testing.T) {
	ts := time.Date(2024, 5, 2, 10, 0, 0, 0, time.Local)
	data := FormatEntry(ts, "a\nDeskNote 2024-01-01 00:00:00:\nb")
	entries := ParseEntries([]byte(data))
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Body != "a" || entries[1].Body != "b" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestParseEntries_MissingDivider(t *testing.T) {
	data := "\nDeskNote 2024-01-01 00:00:00:\ntruncated\n"
	entries := ParseEntries([]byte(data))
	if len(entries) != 1 || entries[0].Body != "truncated" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestParseEntries_NoHeaders(t *testing.T) {
	if entries := ParseEntries([]byte("No notes logged yet.")); len(entries) != 0 {
		t.Errorf("entries = %+v", entries)
	}
	if entries := ParseEntries(nil); len(entries) != 0 {
		t.Errorf("entries = %+v", entries)
	}
}
