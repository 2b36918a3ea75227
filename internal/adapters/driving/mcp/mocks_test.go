package mcp

import (
	"context"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
)

// mockItemLookup is a mock implementation of driving.ItemLookup.
type mockItemLookup struct {
	items []domain.MediaItem
	item  *domain.MediaItem
	err   error
}

func (m *mockItemLookup) Resolve(_ context.Context, _ []string) ([]domain.MediaItem, error) {
	return m.items, m.err
}

func (m *mockItemLookup) Suggest(_ context.Context) ([]domain.MediaItem, error) {
	return m.items, m.err
}

func (m *mockItemLookup) DefaultItem(_ context.Context) (*domain.MediaItem, error) {
	return m.item, m.err
}

func (m *mockItemLookup) Search(_ context.Context, _ string) ([]domain.MediaItem, error) {
	return m.items, m.err
}

// mockCollectionLookup is a mock implementation of driving.CollectionLookup.
type mockCollectionLookup struct {
	collections []domain.Collection
	collection  *domain.Collection
	err         error
}

func (m *mockCollectionLookup) Resolve(_ context.Context, _ []string) ([]domain.Collection, error) {
	return m.collections, m.err
}

func (m *mockCollectionLookup) Suggest(_ context.Context) ([]domain.Collection, error) {
	return m.collections, m.err
}

func (m *mockCollectionLookup) DefaultCollection(_ context.Context) (*domain.Collection, error) {
	return m.collection, m.err
}

func (m *mockCollectionLookup) Search(_ context.Context, _ string) ([]domain.Collection, error) {
	return m.collections, m.err
}

// mockIndexer is a mock implementation of driving.SearchIndexer.
type mockIndexer struct {
	status driving.IndexStatus
}

func (m *mockIndexer) IndexItem(_ context.Context, _ *domain.MediaItem)   {}
func (m *mockIndexer) RemoveItem(_ context.Context, _ *domain.MediaItem)  {}
func (m *mockIndexer) RemoveByID(_ context.Context, _ string)             {}
func (m *mockIndexer) ReindexAll(_ context.Context, _ []domain.MediaItem) {}
func (m *mockIndexer) ClearAll(_ context.Context)                         {}
func (m *mockIndexer) Status() driving.IndexStatus                        { return m.status }
func (m *mockIndexer) IsIndexed(_ string) bool                            { return false }

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	added *domain.MediaItem
	err   error
	input driving.NewItemInput
}

func (m *mockLibraryService) AddItem(_ context.Context, input driving.NewItemInput) (*domain.MediaItem, error) {
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	if m.added != nil {
		return m.added, nil
	}
	return domain.NewMediaItem(input.RemoteID, input.LocalPath, input.Title)
}

func (m *mockLibraryService) RemoveItem(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) EmbedPending(_ context.Context) (int, error) {
	return 0, m.err
}

func (m *mockLibraryService) ReindexLibrary(_ context.Context) error {
	return m.err
}
