package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
)

// Ensure CollectionRanker implements the interface.
var _ driving.CollectionLookup = (*CollectionRanker)(nil)

// Collection ranking bounds. Fetch limits apply before any confidence
// filtering, so filters only ever see the bounded window.
const (
	// minSuggestConfidence is the confidence floor for suggestions and the
	// default collection.
	minSuggestConfidence = 0.5

	suggestedCollectionLimit = 20
	defaultCollectionLimit   = 10
	collectionSearchLimit    = 50
)

// CollectionRanker resolves, suggests and searches collections produced by
// the external clustering job.
type CollectionRanker struct {
	collections driven.CollectionStore
}

// NewCollectionRanker creates a ranker over the given store.
func NewCollectionRanker(collections driven.CollectionStore) *CollectionRanker {
	return &CollectionRanker{collections: collections}
}

// Resolve returns collections matching any of the given IDs.
func (r *CollectionRanker) Resolve(ctx context.Context, ids []string) ([]domain.Collection, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	all, err := r.collections.ListCollections(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	var matched []domain.Collection
	for _, collection := range all {
		if _, ok := wanted[collection.ID]; ok {
			matched = append(matched, collection)
		}
	}
	return matched, nil
}

// Suggest fetches the top 20 collections by item count, then filters to those
// with confidence at or above the threshold. The filter runs after the limit:
// a collection excluded by the limit is never reconsidered even if it would
// pass the confidence filter.
func (r *CollectionRanker) Suggest(ctx context.Context) ([]domain.Collection, error) {
	top, err := r.collections.ListCollections(ctx, suggestedCollectionLimit)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	var confident []domain.Collection
	for _, collection := range top {
		if collection.Confidence >= minSuggestConfidence {
			confident = append(confident, collection)
		}
	}
	return confident, nil
}

// DefaultCollection fetches the top 10 collections by item count and returns
// the first with confidence at or above the threshold. When none qualifies it
// falls back to the single largest collection regardless of confidence, or
// nil when the library has no collections.
func (r *CollectionRanker) DefaultCollection(ctx context.Context) (*domain.Collection, error) {
	top, err := r.collections.ListCollections(ctx, defaultCollectionLimit)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	if len(top) == 0 {
		return nil, nil
	}

	for i := range top {
		if top[i].Confidence >= minSuggestConfidence {
			return &top[i], nil
		}
	}
	return &top[0], nil
}

// Search matches the query case-insensitively against labels of the top 50
// collections by item count. No confidence filter applies.
func (r *CollectionRanker) Search(ctx context.Context, query string) ([]domain.Collection, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	top, err := r.collections.ListCollections(ctx, collectionSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	var matched []domain.Collection
	for _, collection := range top {
		if strings.Contains(strings.ToLower(collection.Label), query) {
			matched = append(matched, collection)
		}
	}
	return matched, nil
}
