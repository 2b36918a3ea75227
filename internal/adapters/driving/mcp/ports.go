package mcp

import (
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Items resolves, suggests and searches library items.
	Items driving.ItemLookup

	// Collections resolves, suggests and searches collections.
	Collections driving.CollectionLookup

	// Library imports and removes items. Optional.
	Library driving.LibraryService

	// Indexer reports external index state. Optional.
	Indexer driving.SearchIndexer
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Items == nil {
		return ErrMissingItemLookup
	}
	if p.Collections == nil {
		return ErrMissingCollectionLookup
	}
	// Library and Indexer are optional
	return nil
}
