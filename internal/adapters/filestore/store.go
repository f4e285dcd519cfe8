// Package filestore keeps the collection in a single JSON or YAML file,
// guarded by an advisory lock file next to it.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"shelfmerge/internal/application"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/logging"
	"shelfmerge/internal/ports"
)

const (
	fileMode   = 0644
	lockRetry  = 50 * time.Millisecond
	lockSuffix = ".lock"
)

// Store implements ports.CollectionStore on a file
type Store struct {
	path  string
	codec Codec
	lock  *flock.Flock
}

var (
	_ ports.CollectionStore = (*Store)(nil)
	_ ports.SaveTimer       = (*Store)(nil)
)

// New creates a store for path. A nil codec is chosen from the extension.
func New(path string, codec Codec) *Store {
	if codec == nil {
		codec = CodecFor(path)
	}
	return &Store{
		path:  path,
		codec: codec,
		lock:  flock.New(path + lockSuffix),
	}
}

func (s *Store) Location() string { return s.path }

// SavedAt returns the modification time of the collection file
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, fmt.Errorf("%s: %w", s.path, application.ErrNoCollection)
	}
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Save writes the collection through a temporary file and renames it into place
func (s *Store) Save(ctx context.Context, c *domain.Collection) error {
	data, err := s.codec.Encode(c)
	if err != nil {
		return fmt.Errorf("failed to encode collection as %s: %w", s.codec.Name(), err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.path, err)
	}
	if !locked {
		return fmt.Errorf("failed to lock %s", s.path)
	}
	defer s.lock.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	logging.FromContext(ctx).Info().
		Str("path", s.path).
		Int("merged", len(c.Merged)).
		Int("unresolved", len(c.Unresolved)).
		Msg("saved collection")
	return nil
}

// Load reads the collection; a missing file yields application.ErrNoCollection
func (s *Store) Load(ctx context.Context) (*domain.Collection, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.path, application.ErrNoCollection)
	}

	locked, err := s.lock.TryRLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", s.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock %s", s.path)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.path, application.ErrNoCollection)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	c, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	if c.Merged == nil {
		c.Merged = []*domain.Book{}
	}
	if c.Unresolved == nil {
		c.Unresolved = []*domain.Book{}
	}
	return c, nil
}

// Close releases the lock file handle
func (s *Store) Close() error {
	return s.lock.Close()
}
