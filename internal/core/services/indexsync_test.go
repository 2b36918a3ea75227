package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockSearchIndex implements driven.SearchIndex for testing.
type mockSearchIndex struct {
	mu             sync.Mutex
	batches        [][]domain.IndexEntry
	deletedIDs     [][]string
	deletedDomains []string
	indexErr       error
	deleteErr      error
	clearErr       error
}

func (m *mockSearchIndex) IndexBatch(_ context.Context, entries []domain.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexErr != nil {
		return m.indexErr
	}
	batch := append([]domain.IndexEntry(nil), entries...)
	m.batches = append(m.batches, batch)
	return nil
}

func (m *mockSearchIndex) DeleteByIDs(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, append([]string(nil), ids...))
	return nil
}

func (m *mockSearchIndex) DeleteByDomain(_ context.Context, domainTag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	m.deletedDomains = append(m.deletedDomains, domainTag)
	return nil
}

func (m *mockSearchIndex) Close() error { return nil }

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	mu   sync.Mutex
	data map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	v, _ := m.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetBool(key string) bool {
	v, _ := m.Get(key)
	b, _ := v.(bool)
	return b
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "mock"
}

// --- Helpers ---

func remoteItem(t *testing.T, remoteID, title string) *domain.MediaItem {
	t.Helper()
	item, err := domain.NewMediaItem(remoteID, "", title)
	require.NoError(t, err)
	return item
}

func localItem(t *testing.T, path, title string) *domain.MediaItem {
	t.Helper()
	item, err := domain.NewMediaItem("", path, title)
	require.NoError(t, err)
	return item
}

// --- Tests ---

func TestUniqueExternalID(t *testing.T) {
	t.Run("remote", func(t *testing.T) {
		item := remoteItem(t, "yt-abc", "t")
		assert.Equal(t, "remote-yt-abc", UniqueExternalID(item))
	})

	t.Run("local is deterministic across instances", func(t *testing.T) {
		a := localItem(t, "/media/clips/My Video.mp4", "t")
		b := localItem(t, "/media/clips/My Video.mp4", "t")

		// Different internal IDs, identical external IDs: the hash depends
		// only on the path, so it survives process restarts.
		require.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, UniqueExternalID(a), UniqueExternalID(b))
	})

	t.Run("local format", func(t *testing.T) {
		id := UniqueExternalID(localItem(t, "/media/clips/My Video.mp4", "t"))
		require.True(t, strings.HasPrefix(id, "local-My%20Video.mp4-"))

		digest := strings.TrimPrefix(id, "local-My%20Video.mp4-")
		assert.Len(t, digest, localPathHashLength)
	})

	t.Run("same filename different directories differ", func(t *testing.T) {
		a := UniqueExternalID(localItem(t, "/media/a/clip.mp4", "t"))
		b := UniqueExternalID(localItem(t, "/media/b/clip.mp4", "t"))
		assert.NotEqual(t, a, b)
	})

	t.Run("unknown falls back to persisted internal id", func(t *testing.T) {
		// Legacy data may predate the construction-time identity check.
		item := &domain.MediaItem{ID: "fixed-internal-id", Title: "t"}
		assert.Equal(t, "unknown-fixed-internal-id", UniqueExternalID(item))
		assert.Equal(t, UniqueExternalID(item), UniqueExternalID(item))
	})
}

func TestBuildIndexEntry(t *testing.T) {
	t.Run("remote item", func(t *testing.T) {
		item := remoteItem(t, "yt-1", "A Title")
		item.Tags = []string{"one", "two"}
		item.DurationSeconds = 90

		entry := BuildIndexEntry(item)
		require.NotNil(t, entry)
		assert.Equal(t, "remote-yt-1", entry.UniqueID)
		assert.Equal(t, domain.SearchDomain, entry.Domain)
		assert.Equal(t, "A Title", entry.Title)
		assert.Equal(t, []string{"one", "two"}, entry.Keywords)
		assert.Equal(t, 90.0, entry.DurationSeconds)
		assert.Empty(t, entry.ContentURL)
	})

	t.Run("local item gets content locator", func(t *testing.T) {
		entry := BuildIndexEntry(localItem(t, "/media/clip.mp4", "Clip"))
		require.NotNil(t, entry)
		assert.Equal(t, "file:///media/clip.mp4", entry.ContentURL)
	})

	t.Run("no tags means no keywords attribute", func(t *testing.T) {
		entry := BuildIndexEntry(remoteItem(t, "yt-1", "t"))
		require.NotNil(t, entry)
		assert.Nil(t, entry.Keywords)
	})

	t.Run("nil item", func(t *testing.T) {
		assert.Nil(t, BuildIndexEntry(nil))
	})
}

func TestIndexItem(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled preference is a no-op", func(t *testing.T) {
		index := &mockSearchIndex{}
		config := newMockConfigStore()
		require.NoError(t, config.Set(keyIndexingEnabled, false))
		sync := NewSearchIndexSync(index, config)

		sync.IndexItem(ctx, remoteItem(t, "yt-1", "t"))

		assert.Empty(t, index.batches)
		assert.Zero(t, sync.Status().IndexedCount)
	})

	t.Run("indexes as single-item batch and records state", func(t *testing.T) {
		index := &mockSearchIndex{}
		config := newMockConfigStore()
		sync := NewSearchIndexSync(index, config)

		sync.IndexItem(ctx, remoteItem(t, "yt-1", "t"))

		require.Len(t, index.batches, 1)
		require.Len(t, index.batches[0], 1)
		assert.Equal(t, "remote-yt-1", index.batches[0][0].UniqueID)
		assert.True(t, sync.IsIndexed("yt-1"))
		assert.Equal(t, 1, sync.Status().IndexedCount)
		assert.Equal(t, 1, config.GetInt(keyIndexedCount))
	})

	t.Run("index failure is swallowed and state untouched", func(t *testing.T) {
		index := &mockSearchIndex{indexErr: errors.New("index down")}
		sync := NewSearchIndexSync(index, newMockConfigStore())

		sync.IndexItem(ctx, remoteItem(t, "yt-1", "t"))

		assert.False(t, sync.IsIndexed("yt-1"))
		assert.Zero(t, sync.Status().IndexedCount)
	})

	t.Run("idempotent reindex of the same item", func(t *testing.T) {
		index := &mockSearchIndex{}
		sync := NewSearchIndexSync(index, newMockConfigStore())

		item := remoteItem(t, "yt-1", "t")
		sync.IndexItem(ctx, item)
		sync.IndexItem(ctx, item)

		assert.Equal(t, 1, sync.Status().IndexedCount)
	})
}

func TestRemoveByID(t *testing.T) {
	ctx := context.Background()

	t.Run("bare id gets remote prefix", func(t *testing.T) {
		index := &mockSearchIndex{}
		sync := NewSearchIndexSync(index, newMockConfigStore())

		sync.RemoveByID(ctx, "yt-1")

		require.Len(t, index.deletedIDs, 1)
		assert.Equal(t, []string{"remote-yt-1"}, index.deletedIDs[0])
	})

	t.Run("prefixed ids pass through", func(t *testing.T) {
		index := &mockSearchIndex{}
		sync := NewSearchIndexSync(index, newMockConfigStore())

		sync.RemoveByID(ctx, "local-clip.mp4-abcdef123456")

		require.Len(t, index.deletedIDs, 1)
		assert.Equal(t, "local-clip.mp4-abcdef123456", index.deletedIDs[0][0])
	})

	t.Run("delete failure keeps state", func(t *testing.T) {
		index := &mockSearchIndex{}
		sync := NewSearchIndexSync(index, newMockConfigStore())
		item := remoteItem(t, "yt-1", "t")
		sync.IndexItem(ctx, item)

		index.deleteErr = errors.New("index down")
		sync.RemoveItem(ctx, item)

		assert.True(t, sync.IsIndexed("remote-yt-1"))
	})

	t.Run("successful remove updates state", func(t *testing.T) {
		index := &mockSearchIndex{}
		config := newMockConfigStore()
		sync := NewSearchIndexSync(index, config)
		item := remoteItem(t, "yt-1", "t")
		sync.IndexItem(ctx, item)

		sync.RemoveItem(ctx, item)

		assert.False(t, sync.IsIndexed("remote-yt-1"))
		assert.Zero(t, config.GetInt(keyIndexedCount))
	})
}

func TestReindexAll(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input touches nothing", func(t *testing.T) {
		index := &mockSearchIndex{}
		config := newMockConfigStore()
		sync := NewSearchIndexSync(index, config)
		sync.IndexItem(ctx, remoteItem(t, "existing", "t"))

		sync.ReindexAll(ctx, nil)
		sync.ReindexAll(ctx, []domain.MediaItem{})

		// No clear, no batch beyond the initial IndexItem, state unchanged.
		assert.Empty(t, index.deletedDomains)
		assert.Len(t, index.batches, 1)
		assert.Equal(t, 1, sync.Status().IndexedCount)
	})

	t.Run("clears domain then rebuilds as one batch", func(t *testing.T) {
		index := &mockSearchIndex{}
		config := newMockConfigStore()
		sync := NewSearchIndexSync(index, config)

		items := []domain.MediaItem{
			*remoteItem(t, "yt-1", "one"),
			*remoteItem(t, "yt-2", "two"),
			*localItem(t, "/m/three.mp4", "three"),
		}
		sync.ReindexAll(ctx, items)

		require.Equal(t, []string{domain.SearchDomain}, index.deletedDomains)
		require.Len(t, index.batches, 1)
		assert.Len(t, index.batches[0], 3)
		assert.Equal(t, 3, sync.Status().IndexedCount)
		assert.Equal(t, 3, config.GetInt(keyIndexedCount))
	})

	t.Run("clear failure aborts before the batch", func(t *testing.T) {
		index := &mockSearchIndex{clearErr: errors.New("index down")}
		sync := NewSearchIndexSync(index, newMockConfigStore())

		sync.ReindexAll(ctx, []domain.MediaItem{*remoteItem(t, "yt-1", "t")})

		assert.Empty(t, index.batches)
		assert.Zero(t, sync.Status().IndexedCount)
	})
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	index := &mockSearchIndex{}
	config := newMockConfigStore()
	sync := NewSearchIndexSync(index, config)

	sync.IndexItem(ctx, remoteItem(t, "yt-1", "t"))
	sync.IndexItem(ctx, remoteItem(t, "yt-2", "t"))
	require.Equal(t, 2, sync.Status().IndexedCount)

	sync.ClearAll(ctx)

	assert.Equal(t, []string{domain.SearchDomain}, index.deletedDomains)
	assert.Zero(t, sync.Status().IndexedCount)
	assert.Zero(t, config.GetInt(keyIndexedCount))
}

func TestIndexingDefaultsToEnabled(t *testing.T) {
	// The preference has never been set: indexing follows the default.
	sync := NewSearchIndexSync(&mockSearchIndex{}, newMockConfigStore())
	assert.True(t, sync.Status().Enabled)
}
