// Package local serves resumes from a directory on disk, used in dev and by
// the CLI when no bucket is configured.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"ats-checker/internal/shared/storage/object"
)

// Store implements object.Reader confined to baseDir. Keys are resolved
// through os.Root so symlinks cannot lead outside the directory.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. The directory is opened lazily.
func New(baseDir string) *Store {
	return &Store{baseDir: filepath.Clean(baseDir)}
}

// Open returns the document stored under storageKey.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := object.CleanKey(storageKey)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("open store root %s: %w", s.baseDir, err)
	}
	defer root.Close()

	f, err := root.Open(filepath.FromSlash(key))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", object.ErrNotFound, key)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", object.ErrInvalidKey, key, err)
	}
	if info, err := f.Stat(); err != nil || info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", object.ErrNotFound, key)
	}
	return f, nil
}

var _ object.Reader = (*Store)(nil)
