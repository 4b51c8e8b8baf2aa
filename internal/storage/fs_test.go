package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempStore(t)
	content := []byte("\nDeskNote 2024-01-01 10:00:00:\nhello\n=====================\n")
	if err := s.Write("note_log.txt", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note_log.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempStore(t)
	if err := s.Write("daily_note/note_log.txt", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("daily_note/note_log.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestReadMissingIsNotExist(t *testing.T) {
	s := tempStore(t)
	_, err := s.Read("missing.txt")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestExists(t *testing.T) {
	s := tempStore(t)
	ok, err := s.Exists("a.txt")
	if err != nil || ok {
		t.Fatalf("Exists before write = %v, %v", ok, err)
	}
	_ = s.Write("a.txt", nil)
	ok, err = s.Exists("a.txt")
	if err != nil || !ok {
		t.Fatalf("Exists after write = %v, %v", ok, err)
	}
	_ = os.MkdirAll(filepath.Join(s.Root(), "dir"), 0o755)
	if ok, _ := s.Exists("dir"); ok {
		t.Error("directory should not count as an existing file")
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("del.jpg", []byte("bye"))
	if err := s.Delete("del.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.jpg"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("temp/wallpaper_2.jpg", []byte("b"))
	_ = s.Write("temp/wallpaper_1.jpg", []byte("a"))
	_ = s.Write("temp/readme.txt", []byte("x"))

	old := time.Now().Add(-time.Hour)
	_ = os.Chtimes(filepath.Join(s.Root(), "temp", "wallpaper_1.jpg"), old, old)

	items, err := s.List("temp", "wallpaper_*.jpg")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Path != filepath.Join("temp", "wallpaper_1.jpg") {
		t.Errorf("oldest first: got %q", items[0].Path)
	}
}

func TestListMissingDir(t *testing.T) {
	s := tempStore(t)
	items, err := s.List("nope", "*")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v", items)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempStore(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.txt",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteNoLeftovers(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("atomic.txt", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write("atomic.txt", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.txt")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".desknote-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	s, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if info, err := os.Stat(s.Root()); err != nil || !info.IsDir() {
		t.Errorf("root not created: %v", err)
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "desknote-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
