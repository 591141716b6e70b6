package logs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", s.Dir(), dir)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("log directory should exist: %v", err)
	}
}

func TestWriterCreatesLogFile(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	w := s.Writer()
	if _, err := w.Write([]byte("first entry\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	files, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected one log file, got %v", files)
	}
	if filepath.Base(files[0]) != "rasterstat.log" {
		t.Errorf("unexpected active log name: %s", files[0])
	}
}

func TestListIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	mustWrite(t, filepath.Join(dir, "rasterstat.log"), "active")
	mustWrite(t, filepath.Join(dir, "rasterstat-2026-01-02T15-04-05.000.log.gz"), "rotated")
	mustWrite(t, filepath.Join(dir, "notes.txt"), "unrelated")
	mustWrite(t, filepath.Join(dir, "other.log"), "different app")

	files, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 log files, got %v", files)
	}
}

func TestDumpConcatenatesWithHeaders(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	mustWrite(t, filepath.Join(dir, "rasterstat.log"), "entry one\nentry two\n")

	var sb strings.Builder
	if err := s.Dump(&sb); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "File: "+filepath.Join(dir, "rasterstat.log")) {
		t.Errorf("dump missing file header:\n%s", out)
	}
	if !strings.Contains(out, "entry two") {
		t.Errorf("dump missing log content:\n%s", out)
	}
}

func TestDumpEmptyStore(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	var sb strings.Builder
	if err := s.Dump(&sb); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if sb.Len() != 0 {
		t.Errorf("empty store should dump nothing, got %q", sb.String())
	}
}

func TestClearDeletesLogFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	mustWrite(t, filepath.Join(dir, "rasterstat.log"), "a")
	mustWrite(t, filepath.Join(dir, "rasterstat-2026-01-02.log"), "b")
	mustWrite(t, filepath.Join(dir, "keep.txt"), "c")

	deleted, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if len(deleted) != 2 {
		t.Errorf("expected 2 deletions, got %v", deleted)
	}

	files, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("log files should be gone, got %v", files)
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.txt")); err != nil {
		t.Errorf("unrelated file should survive Clear: %v", err)
	}
}

func TestClearErrorType(t *testing.T) {
	err := error(&ClearError{Failed: []string{"/tmp/a.log"}})

	var clearErr *ClearError
	if !errors.As(err, &clearErr) {
		t.Fatal("errors.As should match *ClearError")
	}
	if !strings.Contains(err.Error(), "/tmp/a.log") {
		t.Errorf("error message should name the surviving file: %s", err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
