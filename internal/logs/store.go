// Package logs manages the application's error-log directory: the rotating
// writer the logger targets plus the view and clear maintenance operations.
package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	activeLogName = "rasterstat.log"

	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
	defaultMaxAgeDays = 30
)

// Store is rooted at a single log directory. The zero rotation limits fall
// back to the package defaults.
type Store struct {
	dir string

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the log directory path.
func (s *Store) Dir() string { return s.dir }

// Writer returns a size-rotating writer for the active log file. Closing it
// is the caller's responsibility.
func (s *Store) Writer() io.WriteCloser {
	maxSize := s.MaxSizeMB
	if maxSize == 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := s.MaxBackups
	if maxBackups == 0 {
		maxBackups = defaultMaxBackups
	}
	maxAge := s.MaxAgeDays
	if maxAge == 0 {
		maxAge = defaultMaxAgeDays
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(s.dir, activeLogName),
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
}

// List returns the paths of all log files, active and rotated, sorted by name.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan log directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		// Rotated files look like rasterstat-<timestamp>.log, optionally .gz.
		if !strings.HasPrefix(name, "rasterstat") {
			continue
		}
		if strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".log.gz") {
			files = append(files, filepath.Join(s.dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Dump writes the contents of every log file to w, each prefixed with a
// "File:" header line.
func (s *Store) Dump(w io.Writer) error {
	files, err := s.List()
	if err != nil {
		return err
	}
	for _, path := range files {
		if _, err := fmt.Fprintf(w, "File: %s\n\n", path); err != nil {
			return err
		}
		if err := copyFile(w, path); err != nil {
			return fmt.Errorf("failed to read log file %s: %w", path, err)
		}
		if _, err := io.WriteString(w, "\n\n"); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// ClearError reports log files that survived a Clear because they could not
// be removed, typically because another process still holds them open.
type ClearError struct {
	Failed []string
}

func (e *ClearError) Error() string {
	return fmt.Sprintf("could not delete %d log file(s): %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

// Clear deletes every log file, including the active one. Files that cannot
// be removed are skipped and reported via *ClearError alongside the paths
// that were deleted.
func (s *Store) Clear() (deleted []string, err error) {
	files, err := s.List()
	if err != nil {
		return nil, err
	}

	var failed []string
	for _, path := range files {
		if rmErr := os.Remove(path); rmErr != nil {
			failed = append(failed, path)
			continue
		}
		deleted = append(deleted, path)
	}
	if len(failed) > 0 {
		return deleted, &ClearError{Failed: failed}
	}
	return deleted, nil
}
