package cli

import (
	"context"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
)

// fakeLibrary is a mock implementation of driving.LibraryService.
type fakeLibrary struct {
	added        *domain.MediaItem
	addErr       error
	removeErr    error
	removedID    string
	embedCount   int
	embedErr     error
	reindexErr   error
	reindexCalls int
}

func (f *fakeLibrary) AddItem(_ context.Context, input driving.NewItemInput) (*domain.MediaItem, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	if f.added != nil {
		return f.added, nil
	}
	return domain.NewMediaItem(input.RemoteID, input.LocalPath, input.Title)
}

func (f *fakeLibrary) RemoveItem(_ context.Context, id string) error {
	f.removedID = id
	return f.removeErr
}

func (f *fakeLibrary) EmbedPending(_ context.Context) (int, error) {
	return f.embedCount, f.embedErr
}

func (f *fakeLibrary) ReindexLibrary(_ context.Context) error {
	f.reindexCalls++
	return f.reindexErr
}

// fakeItemLookup is a mock implementation of driving.ItemLookup.
type fakeItemLookup struct {
	items []domain.MediaItem
	err   error
}

func (f *fakeItemLookup) Resolve(_ context.Context, _ []string) ([]domain.MediaItem, error) {
	return f.items, f.err
}

func (f *fakeItemLookup) Suggest(_ context.Context) ([]domain.MediaItem, error) {
	return f.items, f.err
}

func (f *fakeItemLookup) DefaultItem(_ context.Context) (*domain.MediaItem, error) {
	if len(f.items) == 0 {
		return nil, f.err
	}
	return &f.items[0], f.err
}

func (f *fakeItemLookup) Search(_ context.Context, _ string) ([]domain.MediaItem, error) {
	return f.items, f.err
}

// fakeCollectionLookup is a mock implementation of driving.CollectionLookup.
type fakeCollectionLookup struct {
	collections []domain.Collection
	err         error
}

func (f *fakeCollectionLookup) Resolve(_ context.Context, _ []string) ([]domain.Collection, error) {
	return f.collections, f.err
}

func (f *fakeCollectionLookup) Suggest(_ context.Context) ([]domain.Collection, error) {
	return f.collections, f.err
}

func (f *fakeCollectionLookup) DefaultCollection(_ context.Context) (*domain.Collection, error) {
	if len(f.collections) == 0 {
		return nil, f.err
	}
	return &f.collections[0], f.err
}

func (f *fakeCollectionLookup) Search(_ context.Context, _ string) ([]domain.Collection, error) {
	return f.collections, f.err
}

// fakeEmbedder is a mock implementation of driving.Embedder.
type fakeEmbedder struct {
	available bool
}

func (f *fakeEmbedder) Generate(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (f *fakeEmbedder) GenerateBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) Available(_ context.Context) bool { return f.available }

func (f *fakeEmbedder) Preload(_ context.Context) {}

// fakeIndexer is a mock implementation of driving.SearchIndexer.
type fakeIndexer struct {
	status     driving.IndexStatus
	clearCalls int
}

func (f *fakeIndexer) IndexItem(_ context.Context, _ *domain.MediaItem)  {}
func (f *fakeIndexer) RemoveItem(_ context.Context, _ *domain.MediaItem) {}
func (f *fakeIndexer) RemoveByID(_ context.Context, _ string)            {}
func (f *fakeIndexer) ReindexAll(_ context.Context, _ []domain.MediaItem) {
}

func (f *fakeIndexer) ClearAll(_ context.Context) {
	f.clearCalls++
	f.status.IndexedCount = 0
}

func (f *fakeIndexer) Status() driving.IndexStatus { return f.status }
func (f *fakeIndexer) IsIndexed(_ string) bool     { return false }

// fakeSettings is a mock implementation of driving.SettingsService.
type fakeSettings struct {
	settings    *domain.AppSettings
	saved       *domain.AppSettings
	lastEnabled *bool
	err         error
}

func (f *fakeSettings) Get() (*domain.AppSettings, error) {
	if f.settings == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, f.err
	}
	return f.settings, f.err
}

func (f *fakeSettings) Save(settings *domain.AppSettings) error {
	f.saved = settings
	return f.err
}

func (f *fakeSettings) SetIndexingEnabled(enabled bool) error {
	f.lastEnabled = &enabled
	return f.err
}

// testServices bundles the fakes wired by setupTestServices.
type testServices struct {
	library     *fakeLibrary
	items       *fakeItemLookup
	collections *fakeCollectionLookup
	embedder    *fakeEmbedder
	indexer     *fakeIndexer
	settings    *fakeSettings
}

// setupTestServices installs fake services and returns them plus a cleanup
// that restores the previous wiring.
func setupTestServices() (*testServices, func()) {
	old := Services{
		Library:     libraryService,
		Items:       itemLookup,
		Collections: collectionLookup,
		Embedder:    embedderService,
		Indexer:     indexerService,
		Settings:    settingsService,
	}

	fakes := &testServices{
		library:     &fakeLibrary{},
		items:       &fakeItemLookup{},
		collections: &fakeCollectionLookup{},
		embedder:    &fakeEmbedder{available: true},
		indexer:     &fakeIndexer{status: driving.IndexStatus{Enabled: true}},
		settings:    &fakeSettings{},
	}

	SetServices(Services{
		Library:     fakes.library,
		Items:       fakes.items,
		Collections: fakes.collections,
		Embedder:    fakes.embedder,
		Indexer:     fakes.indexer,
		Settings:    fakes.settings,
	})

	return fakes, func() { SetServices(old) }
}
