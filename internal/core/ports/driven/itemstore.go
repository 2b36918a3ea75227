package driven

import (
	"context"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

// ItemSort selects the ordering applied by ItemStore.List.
type ItemSort int

// Available item orderings.
const (
	// ItemSortNone applies no particular ordering.
	ItemSortNone ItemSort = iota

	// ItemSortRecency orders by last access or watch descending, then by
	// added date descending as a stable tie-break.
	ItemSortRecency
)

// ItemQuery bounds an ItemStore.List call.
// Substring and tag matching is not assumed to be predicate-capable at the
// store level; services fetch a bounded set and filter in memory.
type ItemQuery struct {
	// Sort is the store-side ordering.
	Sort ItemSort

	// Limit caps the number of returned items. Zero means no limit.
	Limit int
}

// ItemStore persists media items.
// Backed by SQLite for durable storage, or an in-memory map in tests.
type ItemStore interface {
	// SaveItem stores or updates an item.
	SaveItem(ctx context.Context, item *domain.MediaItem) error

	// GetItem retrieves an item by internal ID.
	GetItem(ctx context.Context, id string) (*domain.MediaItem, error)

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, id string) error

	// ListItems returns items matching the query's sort and limit.
	ListItems(ctx context.Context, query ItemQuery) ([]domain.MediaItem, error)
}
