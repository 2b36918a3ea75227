package services

import (
	"context"
	"fmt"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
	"github.com/medley-app/medley-cli/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// Library orchestrates the indexing pipeline: compose the text blob from
// metadata, generate the semantic fingerprint, persist the item, and mirror
// it into the external search index.
type Library struct {
	items    driven.ItemStore
	composer *TextComposer
	embedder driving.Embedder
	indexer  driving.SearchIndexer
}

// NewLibrary creates a library service.
func NewLibrary(
	items driven.ItemStore,
	composer *TextComposer,
	embedder driving.Embedder,
	indexer driving.SearchIndexer,
) *Library {
	return &Library{
		items:    items,
		composer: composer,
		embedder: embedder,
		indexer:  indexer,
	}
}

// AddItem imports an item into the library. The item is persisted even when
// embedding generation fails - the fingerprint is then populated later by
// EmbedPending. Index mirroring is best-effort.
func (l *Library) AddItem(ctx context.Context, input driving.NewItemInput) (*domain.MediaItem, error) {
	item, err := domain.NewMediaItem(input.RemoteID, input.LocalPath, input.Title)
	if err != nil {
		return nil, err
	}
	item.Channel = input.Channel
	item.Description = input.Description
	item.Tags = input.Tags
	item.DurationSeconds = input.DurationSeconds
	item.OCRText = input.OCRText

	text := l.composer.BuildForItem(item)
	if text != "" {
		vector, err := l.embedder.Generate(ctx, text)
		if err != nil {
			logger.Warn("embedding for %q deferred: %v", item.Title, err)
		} else {
			item.Embedding = vector
		}
	}

	if err := l.items.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	l.indexer.IndexItem(ctx, item)
	return item, nil
}

// RemoveItem deletes an item and its external index entry.
func (l *Library) RemoveItem(ctx context.Context, id string) error {
	item, err := l.items.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}

	if err := l.items.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	l.indexer.RemoveItem(ctx, item)
	return nil
}

// EmbedPending generates fingerprints for items that do not have one yet.
// Items whose metadata composes to an empty blob are skipped. Returns the
// number of items embedded; the engine's fail-fast batch contract means a
// mid-batch failure embeds none.
func (l *Library) EmbedPending(ctx context.Context) (int, error) {
	all, err := l.items.ListItems(ctx, driven.ItemQuery{})
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	var pending []domain.MediaItem
	var texts []string
	for _, item := range all {
		if item.HasEmbedding() {
			continue
		}
		text := l.composer.BuildForItem(&item)
		if text == "" {
			logger.Debug("item %s has no embeddable metadata, skipping", item.ID)
			continue
		}
		pending = append(pending, item)
		texts = append(texts, text)
	}

	if len(pending) == 0 {
		return 0, nil
	}

	logger.Info("Embedding %d pending items", len(pending))
	vectors, err := l.embedder.GenerateBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("generate embeddings: %w", err)
	}

	for i := range pending {
		pending[i].Embedding = vectors[i]
		if err := l.items.SaveItem(ctx, &pending[i]); err != nil {
			return i, fmt.Errorf("save item %s: %w", pending[i].ID, err)
		}
	}
	return len(pending), nil
}

// ReindexLibrary rebuilds the external index from all persisted items.
func (l *Library) ReindexLibrary(ctx context.Context) error {
	all, err := l.items.ListItems(ctx, driven.ItemQuery{})
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	l.indexer.ReindexAll(ctx, all)
	return nil
}
