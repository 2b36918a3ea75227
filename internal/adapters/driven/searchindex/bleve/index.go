// Package bleve provides a full-text search index adapter backed by Bleve.
package bleve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

// deletePageSize bounds how many entries a domain-wide delete collects per
// search round trip.
const deletePageSize = 250

// Index is a Bleve-backed search index.
type Index struct {
	index bleve.Index
	path  string
}

// document is the indexed projection of a domain.IndexEntry.
type document struct {
	Domain          string   `json:"domain"`
	Title           string   `json:"title"`
	Keywords        []string `json:"keywords,omitempty"`
	DurationSeconds float64  `json:"duration_seconds"`
	ContentURL      string   `json:"content_url,omitempty"`
}

// NewIndex opens the search index at the given data directory, creating it on
// first use. If dataDir is empty, defaults to ~/.medley/data/search.bleve.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".medley", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	indexPath := filepath.Join(dataDir, "search.bleve")

	idx, err := bleve.Open(indexPath)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(indexPath, buildMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("opening search index: %w", err)
	}

	return &Index{index: idx, path: indexPath}, nil
}

// NewMemoryIndex creates a non-persistent index, used by tests.
func NewMemoryIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating in-memory index: %w", err)
	}
	return &Index{index: idx}, nil
}

// buildMapping defines how entry fields are analyzed. The domain tag is an
// exact-match keyword so domain-wide deletes never leak across domains.
func buildMapping() mapping.IndexMapping {
	entryMapping := bleve.NewDocumentMapping()

	domainField := bleve.NewTextFieldMapping()
	domainField.Analyzer = keyword.Name
	entryMapping.AddFieldMappingsAt("domain", domainField)

	entryMapping.AddFieldMappingsAt("title", bleve.NewTextFieldMapping())
	entryMapping.AddFieldMappingsAt("keywords", bleve.NewTextFieldMapping())
	entryMapping.AddFieldMappingsAt("duration_seconds", bleve.NewNumericFieldMapping())

	urlField := bleve.NewTextFieldMapping()
	urlField.Analyzer = keyword.Name
	urlField.IncludeInAll = false
	entryMapping.AddFieldMappingsAt("content_url", urlField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = entryMapping
	return indexMapping
}

// Path returns the index directory, empty for in-memory indexes.
func (i *Index) Path() string {
	return i.path
}

// IndexBatch adds or updates entries as one batch.
func (i *Index) IndexBatch(_ context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := i.index.NewBatch()
	for _, entry := range entries {
		doc := document{
			Domain:          entry.Domain,
			Title:           entry.Title,
			Keywords:        entry.Keywords,
			DurationSeconds: entry.DurationSeconds,
			ContentURL:      entry.ContentURL,
		}
		if err := batch.Index(entry.UniqueID, doc); err != nil {
			return fmt.Errorf("batching entry %s: %w", entry.UniqueID, err)
		}
	}

	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("indexing batch: %w", err)
	}
	return nil
}

// DeleteByIDs removes entries by unique ID.
func (i *Index) DeleteByIDs(_ context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	batch := i.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}

	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("deleting entries: %w", err)
	}
	return nil
}

// DeleteByDomain removes every entry under the given domain tag. Bleve has no
// delete-by-query, so matching IDs are collected and deleted page by page.
func (i *Index) DeleteByDomain(ctx context.Context, domainTag string) error {
	query := bleve.NewTermQuery(domainTag)
	query.SetField("domain")

	for {
		req := bleve.NewSearchRequestOptions(query, deletePageSize, 0, false)
		result, err := i.index.SearchInContext(ctx, req)
		if err != nil {
			return fmt.Errorf("searching domain %s: %w", domainTag, err)
		}
		if len(result.Hits) == 0 {
			return nil
		}

		batch := i.index.NewBatch()
		for _, hit := range result.Hits {
			batch.Delete(hit.ID)
		}
		if err := i.index.Batch(batch); err != nil {
			return fmt.Errorf("deleting domain batch: %w", err)
		}
	}
}

// Count returns the number of indexed entries across all domains.
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Close releases resources.
func (i *Index) Close() error {
	return i.index.Close()
}
