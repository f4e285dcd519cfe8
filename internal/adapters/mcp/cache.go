package mcp

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"shelfmerge/internal/domain"
	"shelfmerge/internal/ports"
)

const collectionKey = "collection"

// CachedStore keeps the last loaded collection for a while so a burst of
// tool calls reads the store once
type CachedStore struct {
	ports.CollectionStore
	cache *gocache.Cache
}

var (
	_ ports.CollectionStore = (*CachedStore)(nil)
	_ ports.SaveTimer       = (*CachedStore)(nil)
)

// NewCachedStore wraps store with a cache entry that expires after ttl
func NewCachedStore(store ports.CollectionStore, ttl time.Duration) *CachedStore {
	return &CachedStore{
		CollectionStore: store,
		cache:           gocache.New(ttl, 2*ttl),
	}
}

func (s *CachedStore) Load(ctx context.Context) (*domain.Collection, error) {
	if v, ok := s.cache.Get(collectionKey); ok {
		return v.(*domain.Collection), nil
	}
	collection, err := s.CollectionStore.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(collectionKey, collection)
	return collection, nil
}

func (s *CachedStore) Save(ctx context.Context, collection *domain.Collection) error {
	s.cache.Delete(collectionKey)
	return s.CollectionStore.Save(ctx, collection)
}

// SavedAt asks the wrapped store; stores that do not track it report the zero time
func (s *CachedStore) SavedAt(ctx context.Context) (time.Time, error) {
	if timer, ok := s.CollectionStore.(ports.SaveTimer); ok {
		return timer.SavedAt(ctx)
	}
	return time.Time{}, nil
}

// Invalidate drops the cached collection
func (s *CachedStore) Invalidate() {
	s.cache.Flush()
}
