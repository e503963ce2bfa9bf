// Package filesystem stores generated files in a local output directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.OutputStore = (*Store)(nil)

// Store writes files into a single directory.
// The directory must exist: the store never creates it.
type Store struct {
	dir string
}

// New creates a store for dir.
func New(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Create opens dir/name with create-if-absent semantics.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if err := validName(name); err != nil {
		return nil, "", err
	}
	if err := s.checkDir(); err != nil {
		return nil, "", err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("%s: %w", path, domain.ErrAlreadyExists)
		}
		return nil, "", &domain.StorageError{Op: "create", Path: path, Err: err}
	}
	return f, path, nil
}

// Exists returns true if dir/name is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validName(name); err != nil {
		return false, err
	}
	path := filepath.Join(s.dir, name)
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, &domain.StorageError{Op: "stat", Path: path, Err: err}
	}
}

// Claimed returns true if dir holds stem or any stem.<ext> file.
func (s *Store) Claimed(ctx context.Context, stem string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validName(stem); err != nil {
		return false, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return false, &domain.StorageError{Op: "list", Path: s.dir, Err: err}
	}
	for _, e := range entries {
		if name := e.Name(); name == stem || strings.HasPrefix(name, stem+".") {
			return true, nil
		}
	}
	return false, nil
}

// Open returns a reader over the file at path.
func (s *Store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return nil, &domain.StorageError{Op: "open", Path: path, Err: err}
	}
	return f, nil
}

// Remove deletes the file at path.
func (s *Store) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.StorageError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

func (s *Store) checkDir() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return &domain.StorageError{Op: "stat", Path: s.dir, Err: err}
	}
	if !info.IsDir() {
		return &domain.StorageError{Op: "stat", Path: s.dir, Err: errors.New("not a directory")}
	}
	return nil
}

// validName rejects names that would escape the output directory.
func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: bad file name %q", domain.ErrInvalidInput, name)
	}
	return nil
}
