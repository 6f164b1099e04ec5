// filepath: internal/storage/blob.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrBlobNotFound is returned when a blob key does not exist.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore holds the bytes behind registry entries. Keys are slash separated
// paths relative to the media root, e.g. "Pictures/Trips/a.png".
type BlobStore interface {
	Create(ctx context.Context, key string) (io.WriteCloser, error)
	Rename(ctx context.Context, from, to string) error
	Remove(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// LocalBlobStore stores blobs below a directory on local disk.
type LocalBlobStore struct {
	root string
}

var _ BlobStore = (*LocalBlobStore)(nil)

// NewLocalBlobStore creates the root directory if it doesn't exist.
func NewLocalBlobStore(root string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &LocalBlobStore{root: root}, nil
}

// Root returns the media root directory.
func (s *LocalBlobStore) Root() string { return s.root }

// Path returns the absolute file path for key.
func (s *LocalBlobStore) Path(key string) (string, error) {
	return resolve(s.root, key)
}

// Create opens key for writing, creating parent directories. An existing
// blob under the same key is truncated.
func (s *LocalBlobStore) Create(ctx context.Context, key string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create directory structure: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create blob: %w", err)
	}
	return f, nil
}

// Rename moves a blob, replacing any blob at the destination.
func (s *LocalBlobStore) Rename(_ context.Context, from, to string) error {
	src, err := s.Path(from)
	if err != nil {
		return err
	}
	dst, err := s.Path(to)
	if err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBlobNotFound, from)
		}
		return fmt.Errorf("could not rename blob: %w", err)
	}
	return nil
}

// Remove deletes a blob. Missing blobs are not an error.
func (s *LocalBlobStore) Remove(_ context.Context, key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove blob: %w", err)
	}
	return nil
}

// Exists reports whether a blob is present.
func (s *LocalBlobStore) Exists(_ context.Context, key string) (bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
