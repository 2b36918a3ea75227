package driven

import (
	"context"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

// SearchIndex is the external full-text search facility.
// Entries are keyed by (UniqueID, Domain); Medley owns a single domain tag
// and never touches entries outside it.
type SearchIndex interface {
	// IndexBatch adds or updates entries as one batch.
	IndexBatch(ctx context.Context, entries []domain.IndexEntry) error

	// DeleteByIDs removes entries by unique ID.
	DeleteByIDs(ctx context.Context, ids []string) error

	// DeleteByDomain removes every entry under the given domain tag.
	DeleteByDomain(ctx context.Context, domainTag string) error

	// Close releases resources.
	Close() error
}
