package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
)

// Ensure CollectionStore implements the interface.
var _ driven.CollectionStore = (*CollectionStore)(nil)

// CollectionStore is an in-memory implementation of driven.CollectionStore.
type CollectionStore struct {
	mu          sync.RWMutex
	collections map[string]domain.Collection
}

// NewCollectionStore creates a new in-memory collection store.
func NewCollectionStore() *CollectionStore {
	return &CollectionStore{collections: make(map[string]domain.Collection)}
}

// SaveCollection stores or updates a collection.
func (s *CollectionStore) SaveCollection(_ context.Context, collection *domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection.ID] = *collection
	return nil
}

// GetCollection retrieves a collection by ID.
func (s *CollectionStore) GetCollection(_ context.Context, id string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	collection, ok := s.collections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &collection, nil
}

// DeleteCollection removes a collection.
func (s *CollectionStore) DeleteCollection(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, id)
	return nil
}

// ListCollections returns up to limit collections ordered by item count
// descending. Ties break by label for a stable order.
func (s *CollectionStore) ListCollections(_ context.Context, limit int) ([]domain.Collection, error) {
	s.mu.RLock()
	collections := make([]domain.Collection, 0, len(s.collections))
	for _, collection := range s.collections {
		collections = append(collections, collection)
	}
	s.mu.RUnlock()

	sort.SliceStable(collections, func(i, j int) bool {
		if collections[i].ItemCount != collections[j].ItemCount {
			return collections[i].ItemCount > collections[j].ItemCount
		}
		return collections[i].Label < collections[j].Label
	})

	if limit > 0 && len(collections) > limit {
		collections = collections[:limit]
	}
	return collections, nil
}
