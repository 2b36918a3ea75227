package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
)

// Ensure ItemLookupService implements the interface.
var _ driving.ItemLookup = (*ItemLookupService)(nil)

// Lookup bounds. Suggestion and search fetch a bounded recency window and
// filter in memory: the store is not assumed to be predicate-capable for
// substring or tag-array matching.
const (
	suggestedItemLimit = 20
	searchFetchLimit   = 100
)

// ItemLookupService resolves, suggests and searches library items.
// Persistence failures pass through unchanged; no new error kinds are
// introduced here.
type ItemLookupService struct {
	items driven.ItemStore
}

// NewItemLookupService creates an item lookup over the given store.
func NewItemLookupService(items driven.ItemStore) *ItemLookupService {
	return &ItemLookupService{items: items}
}

// Resolve returns items whose external identity matches any of the ids.
func (s *ItemLookupService) Resolve(ctx context.Context, ids []string) ([]domain.MediaItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	all, err := s.items.ListItems(ctx, driven.ItemQuery{Sort: driven.ItemSortRecency})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	var matched []domain.MediaItem
	for _, item := range all {
		if _, ok := wanted[item.ExternalIdentity()]; ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Suggest returns up to 20 items, most recently accessed or watched first,
// added date as the stable tie-break.
func (s *ItemLookupService) Suggest(ctx context.Context) ([]domain.MediaItem, error) {
	items, err := s.items.ListItems(ctx, driven.ItemQuery{
		Sort:  driven.ItemSortRecency,
		Limit: suggestedItemLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// DefaultItem returns the single top item of the suggestion ordering, or nil
// when the library is empty.
func (s *ItemLookupService) DefaultItem(ctx context.Context) (*domain.MediaItem, error) {
	items, err := s.items.ListItems(ctx, driven.ItemQuery{
		Sort:  driven.ItemSortRecency,
		Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Search matches the query case-insensitively against title, channel and
// tags, over at most the 100 most recent items. Results keep the recency
// ordering.
func (s *ItemLookupService) Search(ctx context.Context, query string) ([]domain.MediaItem, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	recent, err := s.items.ListItems(ctx, driven.ItemQuery{
		Sort:  driven.ItemSortRecency,
		Limit: searchFetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	var matched []domain.MediaItem
	for _, item := range recent {
		if itemMatches(&item, query) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// itemMatches reports whether the lowercased query occurs in the item's
// title, channel or any tag.
func itemMatches(item *domain.MediaItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Channel), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
