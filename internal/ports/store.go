package ports

import (
	"context"
	"time"

	"shelfmerge/internal/domain"
)

// CollectionStore persists the result of a collect run.
// Save replaces whatever was stored before.
type CollectionStore interface {
	Save(ctx context.Context, c *domain.Collection) error

	// Load returns application.ErrNoCollection when nothing has been saved yet
	Load(ctx context.Context) (*domain.Collection, error)

	// Location describes where the collection lives, for messages and the editor
	Location() string

	Close() error
}

// KeyFinder is implemented by stores that can look records up by identity key
// without loading the whole collection
type KeyFinder interface {
	FindByKey(ctx context.Context, key domain.Key) ([]*domain.Book, error)
}

// SaveTimer is implemented by stores that know when the collection was last written
type SaveTimer interface {
	SavedAt(ctx context.Context) (time.Time, error)
}
