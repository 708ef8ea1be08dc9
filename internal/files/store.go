package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotConfigured = errors.New("file directory not configured")
	ErrInvalidName   = errors.New("invalid file name")
)

// Store reads and writes whole files directly under one directory. It holds
// no mutable state and is shared by all connections. Concurrent writes to
// the same name race at the filesystem; the last write wins.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. An empty dir disables the store.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Configured reports whether a directory was given
func (s *Store) Configured() bool {
	return s != nil && s.dir != ""
}

func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Read returns the full contents of name
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Write creates or truncates name and writes data to it
func (s *Store) Write(name string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// path resolves name inside the directory. Names must be a single path
// element.
func (s *Store) path(name string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return filepath.Join(s.dir, name), nil
}
