package driving

import (
	"context"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

// NewItemInput describes an item being imported into the library.
type NewItemInput struct {
	RemoteID        string
	LocalPath       string
	Title           string
	Channel         string
	Description     string
	Tags            []string
	DurationSeconds float64
	OCRText         string
}

// LibraryService orchestrates the indexing pipeline: compose text, generate
// the embedding, persist the item and mirror it into the external index.
type LibraryService interface {
	// AddItem imports an item. The item is persisted even when embedding
	// generation fails; the fingerprint is then populated later by
	// EmbedPending.
	AddItem(ctx context.Context, input NewItemInput) (*domain.MediaItem, error)

	// RemoveItem deletes an item and its external index entry.
	RemoveItem(ctx context.Context, id string) error

	// EmbedPending generates fingerprints for items that do not have one
	// yet. Returns the number of items embedded.
	EmbedPending(ctx context.Context) (int, error)

	// ReindexLibrary rebuilds the external index from all persisted items.
	ReindexLibrary(ctx context.Context) error
}
