// Package scratch manages short-lived files such as downloaded voice notes.
//
// Every File is owned by one handler invocation and must be released on all
// exit paths; Sweep removes whatever a crashed process left behind.
package scratch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Dir is a directory holding scratch files.
type Dir struct {
	path string
}

// NewDir creates the directory if needed.
func NewDir(path string) (*Dir, error) {
	if path == "" {
		return nil, fmt.Errorf("scratch directory path is empty")
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory path
func (d *Dir) Path() string {
	return d.path
}

// Create opens a new uniquely named file using an os.CreateTemp pattern.
func (d *Dir) Create(pattern string) (*File, error) {
	f, err := os.CreateTemp(d.path, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	return &File{File: f}, nil
}

// Sweep removes regular files whose modification time is older than maxAge
// and returns how many were removed.
func (d *Dir) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read scratch directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	var errs []error
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(d.path, e.Name())); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// File is a scratch file. Release closes and deletes it.
type File struct {
	*os.File

	once sync.Once
	err  error
}

// Release closes and removes the file. Safe to call more than once; later
// calls return the first result. A file already gone is not an error.
func (f *File) Release() error {
	f.once.Do(func() {
		closeErr := f.File.Close()
		if errors.Is(closeErr, os.ErrClosed) {
			closeErr = nil
		}
		rmErr := os.Remove(f.Name())
		if os.IsNotExist(rmErr) {
			rmErr = nil
		}
		f.err = errors.Join(closeErr, rmErr)
	})
	return f.err
}
