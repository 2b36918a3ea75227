// Package memory provides in-memory store implementations, used by tests and
// by the zero-config mode where no data directory exists yet.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
)

// Ensure ItemStore implements the interface.
var _ driven.ItemStore = (*ItemStore)(nil)

// ItemStore is an in-memory implementation of driven.ItemStore.
type ItemStore struct {
	mu    sync.RWMutex
	items map[string]domain.MediaItem
}

// NewItemStore creates a new in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[string]domain.MediaItem)}
}

// SaveItem stores or updates an item.
func (s *ItemStore) SaveItem(_ context.Context, item *domain.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

// GetItem retrieves an item by internal ID.
func (s *ItemStore) GetItem(_ context.Context, id string) (*domain.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

// DeleteItem removes an item.
func (s *ItemStore) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// ListItems returns items matching the query's sort and limit.
func (s *ItemStore) ListItems(_ context.Context, query driven.ItemQuery) ([]domain.MediaItem, error) {
	s.mu.RLock()
	items := make([]domain.MediaItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	s.mu.RUnlock()

	if query.Sort == driven.ItemSortRecency {
		sort.SliceStable(items, func(i, j int) bool {
			ri, rj := items[i].LastRelevantAt(), items[j].LastRelevantAt()
			if !ri.Equal(rj) {
				return ri.After(rj)
			}
			return items[i].AddedAt.After(items[j].AddedAt)
		})
	}

	if query.Limit > 0 && len(items) > query.Limit {
		items = items[:query.Limit]
	}
	return items, nil
}
