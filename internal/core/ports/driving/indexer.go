package driving

import (
	"context"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

// IndexStatus reports the externally visible indexing state.
// It is a best-effort cache of the external index's contents, not a source
// of truth.
type IndexStatus struct {
	// Enabled mirrors the user's indexing preference.
	Enabled bool

	// IndexedCount is the number of entries believed to be in the index.
	IndexedCount int
}

// SearchIndexer keeps the external search index consistent with the library.
// Index failures are best-effort: they are logged and never surface to the
// item-management flow that triggered them.
type SearchIndexer interface {
	// IndexItem mirrors one item into the external index. No-op when the
	// indexing preference is disabled.
	IndexItem(ctx context.Context, item *domain.MediaItem)

	// RemoveItem removes an item's entry from the external index.
	RemoveItem(ctx context.Context, item *domain.MediaItem)

	// RemoveByID removes an entry by external ID. Bare IDs are normalized to
	// the correct prefix before the delete is submitted.
	RemoveByID(ctx context.Context, id string)

	// ReindexAll clears Medley's domain and rebuilds entries for all given
	// items as one batch. Empty input is a complete no-op that does not
	// touch the external index.
	ReindexAll(ctx context.Context, items []domain.MediaItem)

	// ClearAll deletes every entry under Medley's domain tag and resets the
	// indexing state.
	ClearAll(ctx context.Context)

	// Status returns the current indexing state.
	Status() IndexStatus

	// IsIndexed reports whether an external ID is believed to be indexed.
	IsIndexed(id string) bool
}
