package driven

import (
	"context"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

// CollectionStore persists collections produced by the external clustering job.
// The core reads collections; only the clustering job writes them.
type CollectionStore interface {
	// SaveCollection stores or updates a collection. Used by the clustering
	// job and by tests; the core services never call it.
	SaveCollection(ctx context.Context, collection *domain.Collection) error

	// GetCollection retrieves a collection by ID.
	GetCollection(ctx context.Context, id string) (*domain.Collection, error)

	// DeleteCollection removes a collection.
	DeleteCollection(ctx context.Context, id string) error

	// ListCollections returns up to limit collections ordered by item count
	// descending. Zero limit means no limit.
	ListCollections(ctx context.Context, limit int) ([]domain.Collection, error)
}
