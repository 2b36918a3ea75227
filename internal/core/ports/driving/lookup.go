package driving

import (
	"context"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

// ItemLookup resolves, suggests and searches library items.
// It is the entity-resolution contract consumed by automation front-ends
// and UI pickers.
type ItemLookup interface {
	// Resolve returns items whose external identity (remote ID if present,
	// else local path) matches any of the given ids.
	Resolve(ctx context.Context, ids []string) ([]domain.MediaItem, error)

	// Suggest returns up to 20 items ordered by last access or watch
	// descending, then by added date descending.
	Suggest(ctx context.Context) ([]domain.MediaItem, error)

	// DefaultItem returns the single top item of the suggestion ordering,
	// or nil when the library is empty.
	DefaultItem(ctx context.Context) (*domain.MediaItem, error)

	// Search returns items whose title, channel or any tag contains the
	// query (case-insensitive), evaluated over at most the 100 most recent
	// items. Result order follows the recency ordering.
	Search(ctx context.Context, query string) ([]domain.MediaItem, error)
}

// CollectionLookup resolves, suggests and searches collections.
type CollectionLookup interface {
	// Resolve returns collections matching any of the given collection IDs.
	Resolve(ctx context.Context, ids []string) ([]domain.Collection, error)

	// Suggest returns the top 20 collections by item count, filtered to
	// those with confidence at or above the minimum threshold. The filter
	// runs after the limit: a collection excluded by the limit is never
	// reconsidered even if it would pass the confidence filter.
	Suggest(ctx context.Context) ([]domain.Collection, error)

	// DefaultCollection returns the first of the top 10 collections by item
	// count with confidence at or above the threshold, falling back to the
	// single largest collection regardless of confidence, or nil when the
	// library has no collections.
	DefaultCollection(ctx context.Context) (*domain.Collection, error)

	// Search returns collections among the top 50 by item count whose label
	// contains the query (case-insensitive). No confidence filter applies.
	Search(ctx context.Context, query string) ([]domain.Collection, error)
}
