package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
	"github.com/medley-app/medley-cli/internal/logger"
)

// Ensure SearchIndexSync implements the interface.
var _ driving.SearchIndexer = (*SearchIndexSync)(nil)

// External ID prefixes. The hash suffix on local IDs is a stable content
// hash, not a language-runtime hash: identifiers must be identical across
// process restarts or reindexing creates duplicate and orphaned entries.
const (
	remoteIDPrefix  = "remote-"
	localIDPrefix   = "local-"
	unknownIDPrefix = "unknown-"

	localPathHashLength = 12
)

// SearchIndexSync mirrors library items into the external full-text search
// index, gated by the user's indexing preference. Index failures are
// best-effort: logged and swallowed, never surfaced to the item-management
// flow that triggered them.
//
// One mutex serializes all operations so IndexingState mutations stay
// linearizable with the external index's batch calls. The state is a
// best-effort cache of the index's actual contents, not a source of truth;
// it is mutated only after the corresponding external call succeeds, and
// either a full state delta is applied or none of it.
type SearchIndexSync struct {
	mu     sync.Mutex
	index  driven.SearchIndex
	config driven.ConfigStore

	// indexed is the set of external IDs believed to be in the index.
	indexed map[string]struct{}
}

// NewSearchIndexSync creates a sync service over the given index and the
// user preference store.
func NewSearchIndexSync(index driven.SearchIndex, config driven.ConfigStore) *SearchIndexSync {
	return &SearchIndexSync{
		index:   index,
		config:  config,
		indexed: make(map[string]struct{}),
	}
}

// UniqueExternalID derives the stable identifier addressing an item in the
// external search index. Remote items use their remote ID; local items use
// the percent-encoded filename plus a SHA-256 prefix of the full path.
// Items with neither (legacy data predating the construction-time identity
// requirement) fall back to the persisted internal ID, which is assigned
// once and therefore still deterministic across restarts.
func UniqueExternalID(item *domain.MediaItem) string {
	switch {
	case item.RemoteID != "":
		return remoteIDPrefix + item.RemoteID
	case item.LocalPath != "":
		sum := sha256.Sum256([]byte(item.LocalPath))
		digest := hex.EncodeToString(sum[:])[:localPathHashLength]
		return localIDPrefix + url.PathEscape(filepath.Base(item.LocalPath)) + "-" + digest
	default:
		return unknownIDPrefix + item.ID
	}
}

// BuildIndexEntry derives the external-search-visible projection of an item.
// Returns nil only when entry construction is structurally impossible.
func BuildIndexEntry(item *domain.MediaItem) *domain.IndexEntry {
	if item == nil {
		return nil
	}

	entry := &domain.IndexEntry{
		UniqueID:        UniqueExternalID(item),
		Domain:          domain.SearchDomain,
		Title:           item.Title,
		DurationSeconds: item.DurationSeconds,
	}
	if len(item.Tags) > 0 {
		entry.Keywords = append([]string(nil), item.Tags...)
	}
	if item.IsLocal() {
		entry.ContentURL = "file://" + item.LocalPath
	}
	return entry
}

// IndexItem mirrors one item into the external index as a single-item batch.
// No-op when the indexing preference is disabled.
func (s *SearchIndexSync) IndexItem(ctx context.Context, item *domain.MediaItem) {
	if !s.indexingEnabled() {
		logger.Debug("indexing disabled, skipping %q", item.Title)
		return
	}

	entry := BuildIndexEntry(item)
	if entry == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.IndexBatch(ctx, []domain.IndexEntry{*entry}); err != nil {
		logger.Warn("%v", &domain.IndexError{Op: "index item", Err: err})
		return
	}

	s.indexed[entry.UniqueID] = struct{}{}
	s.publishCountLocked()
}

// RemoveItem removes an item's entry from the external index.
func (s *SearchIndexSync) RemoveItem(ctx context.Context, item *domain.MediaItem) {
	s.RemoveByID(ctx, UniqueExternalID(item))
}

// RemoveByID removes an entry by external ID. Bare IDs (no known prefix) are
// normalized to the remote prefix before the delete is submitted.
func (s *SearchIndexSync) RemoveByID(ctx context.Context, id string) {
	id = normalizeExternalID(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.DeleteByIDs(ctx, []string{id}); err != nil {
		logger.Warn("%v", &domain.IndexError{Op: "delete", Err: err})
		return
	}

	delete(s.indexed, id)
	s.publishCountLocked()
}

// ReindexAll clears Medley's domain in the external index, then rebuilds
// entries for all given items as one batch. Empty input is a complete no-op:
// the clear-then-rebuild is skipped entirely and neither the external index
// nor the indexing state is touched.
func (s *SearchIndexSync) ReindexAll(ctx context.Context, items []domain.MediaItem) {
	if len(items) == 0 {
		logger.Debug("reindex requested with no items, skipping")
		return
	}

	entries := make([]domain.IndexEntry, 0, len(items))
	for i := range items {
		if entry := BuildIndexEntry(&items[i]); entry != nil {
			entries = append(entries, *entry)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Reindex")
	logger.Info("Rebuilding %d index entries", len(entries))

	if err := s.index.DeleteByDomain(ctx, domain.SearchDomain); err != nil {
		logger.Warn("%v", &domain.IndexError{Op: "clear domain", Err: err})
		return
	}

	if err := s.index.IndexBatch(ctx, entries); err != nil {
		logger.Warn("%v", &domain.IndexError{Op: "index batch", Err: err})
		// The clear succeeded but the rebuild did not; reflect the cleared
		// index rather than leaving stale membership behind.
		s.indexed = make(map[string]struct{})
		s.publishCountLocked()
		return
	}

	s.indexed = make(map[string]struct{}, len(entries))
	for i := range entries {
		s.indexed[entries[i].UniqueID] = struct{}{}
	}
	s.publishCountLocked()
}

// ClearAll deletes every entry under Medley's domain tag and resets the
// indexing state to empty.
func (s *SearchIndexSync) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.DeleteByDomain(ctx, domain.SearchDomain); err != nil {
		logger.Warn("%v", &domain.IndexError{Op: "clear domain", Err: err})
		return
	}

	s.indexed = make(map[string]struct{})
	s.publishCountLocked()
}

// Status returns the current indexing state.
func (s *SearchIndexSync) Status() driving.IndexStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return driving.IndexStatus{
		Enabled:      s.indexingEnabled(),
		IndexedCount: len(s.indexed),
	}
}

// IsIndexed reports whether an external ID is believed to be indexed.
func (s *SearchIndexSync) IsIndexed(id string) bool {
	id = normalizeExternalID(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.indexed[id]
	return ok
}

// indexingEnabled reads the user preference; indexing defaults to on when
// the preference has never been set.
func (s *SearchIndexSync) indexingEnabled() bool {
	if s.config == nil {
		return true
	}
	if _, exists := s.config.Get(keyIndexingEnabled); !exists {
		return domain.DefaultAppSettings().SearchIndex.Enabled
	}
	return s.config.GetBool(keyIndexingEnabled)
}

// publishCountLocked pushes the indexed count to the preference sink.
// Callers must hold s.mu.
func (s *SearchIndexSync) publishCountLocked() {
	if s.config == nil {
		return
	}
	if err := s.config.Set(keyIndexedCount, len(s.indexed)); err != nil {
		logger.Warn("persist indexed count: %v", err)
	}
}

// normalizeExternalID ensures the ID carries a known prefix, defaulting bare
// IDs to the remote prefix.
func normalizeExternalID(id string) string {
	if strings.HasPrefix(id, remoteIDPrefix) ||
		strings.HasPrefix(id, localIDPrefix) ||
		strings.HasPrefix(id, unknownIDPrefix) {
		return id
	}
	return remoteIDPrefix + id
}
