package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
)

// ResolveInput is the input schema for the resolve tools.
type ResolveInput struct {
	IDs []string `json:"ids" jsonschema:"identifiers to resolve"`
}

// SearchInput is the input schema for the search tools.
type SearchInput struct {
	Query string `json:"query" jsonschema:"substring to match, case-insensitive"`
}

// SuggestInput is the input schema for the suggest tools.
type SuggestInput struct{}

// AddItemInput is the input schema for the add_item tool.
type AddItemInput struct {
	RemoteID        string   `json:"remote_id,omitempty" jsonschema:"remote source identifier; exactly one of remote_id and local_path is required"`
	LocalPath       string   `json:"local_path,omitempty" jsonschema:"absolute path of a local file"`
	Title           string   `json:"title" jsonschema:"human-readable title"`
	Channel         string   `json:"channel,omitempty" jsonschema:"channel or author name"`
	Description     string   `json:"description,omitempty" jsonschema:"long-form description"`
	Tags            []string `json:"tags,omitempty" jsonschema:"free-form labels"`
	DurationSeconds float64  `json:"duration_seconds,omitempty" jsonschema:"playback duration in seconds"`
}

// ItemOutput is the tool-visible projection of a media item.
type ItemOutput struct {
	ID              string   `json:"id"`
	ExternalID      string   `json:"external_id"`
	Title           string   `json:"title"`
	Channel         string   `json:"channel,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	DurationSeconds float64  `json:"duration_seconds,omitempty"`
	Local           bool     `json:"local"`
	HasEmbedding    bool     `json:"has_embedding"`
}

// ItemsOutput is the output schema for item tools.
type ItemsOutput struct {
	Items []ItemOutput `json:"items"`
	Count int          `json:"count"`
}

// CollectionOutput is the tool-visible projection of a collection.
type CollectionOutput struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	ItemCount  int     `json:"item_count"`
	Confidence float64 `json:"confidence"`
}

// CollectionsOutput is the output schema for collection tools.
type CollectionsOutput struct {
	Collections []CollectionOutput `json:"collections"`
	Count       int                `json:"count"`
}

// IndexStatusOutput is the output schema for the index_status tool.
type IndexStatusOutput struct {
	Enabled      bool `json:"enabled"`
	IndexedCount int  `json:"indexed_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_items",
		Description: "Resolve library items by remote ID or local path",
	}, s.handleResolveItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_items",
		Description: "Suggest recently watched or added library items",
	}, s.handleSuggestItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_items",
		Description: "Search library items by title, channel or tag",
	}, s.handleSearchItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "default_item",
		Description: "Return the single most recently watched or added item",
	}, s.handleDefaultItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_collections",
		Description: "Resolve collections by collection ID",
	}, s.handleResolveCollections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_collections",
		Description: "Suggest the largest confident collections",
	}, s.handleSuggestCollections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_collections",
		Description: "Search collections by label",
	}, s.handleSearchCollections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "default_collection",
		Description: "Return the best single collection to present",
	}, s.handleDefaultCollection)

	if s.ports.Library != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "add_item",
			Description: "Import an item into the media library",
		}, s.handleAddItem)
	}

	if s.ports.Indexer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "index_status",
			Description: "Report search index state and entry count",
		}, s.handleIndexStatus)
	}
}

// handleResolveItems handles the resolve_items tool invocation.
func (s *Server) handleResolveItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	items, err := s.ports.Items.Resolve(ctx, input.IDs)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	return nil, itemsOutput(items), nil
}

// handleSuggestItems handles the suggest_items tool invocation.
func (s *Server) handleSuggestItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SuggestInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	items, err := s.ports.Items.Suggest(ctx)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	return nil, itemsOutput(items), nil
}

// handleSearchItems handles the search_items tool invocation.
func (s *Server) handleSearchItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	items, err := s.ports.Items.Search(ctx, input.Query)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	return nil, itemsOutput(items), nil
}

// handleDefaultItem handles the default_item tool invocation. An empty
// library yields an empty result, not an error.
func (s *Server) handleDefaultItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SuggestInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	item, err := s.ports.Items.DefaultItem(ctx)
	if err != nil {
		return nil, ItemsOutput{}, err
	}
	if item == nil {
		return nil, itemsOutput(nil), nil
	}
	return nil, itemsOutput([]domain.MediaItem{*item}), nil
}

// handleResolveCollections handles the resolve_collections tool invocation.
func (s *Server) handleResolveCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, CollectionsOutput, error) {
	collections, err := s.ports.Collections.Resolve(ctx, input.IDs)
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	return nil, collectionsOutput(collections), nil
}

// handleSuggestCollections handles the suggest_collections tool invocation.
func (s *Server) handleSuggestCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SuggestInput,
) (*mcp.CallToolResult, CollectionsOutput, error) {
	collections, err := s.ports.Collections.Suggest(ctx)
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	return nil, collectionsOutput(collections), nil
}

// handleSearchCollections handles the search_collections tool invocation.
func (s *Server) handleSearchCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, CollectionsOutput, error) {
	collections, err := s.ports.Collections.Search(ctx, input.Query)
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	return nil, collectionsOutput(collections), nil
}

// handleDefaultCollection handles the default_collection tool invocation.
// A library with no collections yields an empty result, not an error.
func (s *Server) handleDefaultCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SuggestInput,
) (*mcp.CallToolResult, CollectionsOutput, error) {
	collection, err := s.ports.Collections.DefaultCollection(ctx)
	if err != nil {
		return nil, CollectionsOutput{}, err
	}
	if collection == nil {
		return nil, collectionsOutput(nil), nil
	}
	return nil, collectionsOutput([]domain.Collection{*collection}), nil
}

// handleAddItem handles the add_item tool invocation.
func (s *Server) handleAddItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddItemInput,
) (*mcp.CallToolResult, ItemsOutput, error) {
	if s.ports.Library == nil {
		return nil, ItemsOutput{}, errors.New("mcp: library service not configured")
	}

	item, err := s.ports.Library.AddItem(ctx, driving.NewItemInput{
		RemoteID:        input.RemoteID,
		LocalPath:       input.LocalPath,
		Title:           input.Title,
		Channel:         input.Channel,
		Description:     input.Description,
		Tags:            input.Tags,
		DurationSeconds: input.DurationSeconds,
	})
	if err != nil {
		return nil, ItemsOutput{}, err
	}

	return nil, itemsOutput([]domain.MediaItem{*item}), nil
}

// handleIndexStatus handles the index_status tool invocation.
func (s *Server) handleIndexStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SuggestInput,
) (*mcp.CallToolResult, IndexStatusOutput, error) {
	if s.ports.Indexer == nil {
		return nil, IndexStatusOutput{}, errors.New("mcp: indexer not configured")
	}

	status := s.ports.Indexer.Status()
	return nil, IndexStatusOutput{
		Enabled:      status.Enabled,
		IndexedCount: status.IndexedCount,
	}, nil
}

// itemsOutput converts items to the tool output schema.
func itemsOutput(items []domain.MediaItem) ItemsOutput {
	out := ItemsOutput{
		Items: make([]ItemOutput, len(items)),
		Count: len(items),
	}
	for i := range items {
		out.Items[i] = ItemOutput{
			ID:              items[i].ID,
			ExternalID:      items[i].ExternalIdentity(),
			Title:           items[i].Title,
			Channel:         items[i].Channel,
			Tags:            items[i].Tags,
			DurationSeconds: items[i].DurationSeconds,
			Local:           items[i].IsLocal(),
			HasEmbedding:    items[i].HasEmbedding(),
		}
	}
	return out
}

// collectionsOutput converts collections to the tool output schema.
func collectionsOutput(collections []domain.Collection) CollectionsOutput {
	out := CollectionsOutput{
		Collections: make([]CollectionOutput, len(collections)),
		Count:       len(collections),
	}
	for i := range collections {
		out.Collections[i] = CollectionOutput{
			ID:         collections[i].ID,
			Label:      collections[i].Label,
			ItemCount:  collections[i].ItemCount,
			Confidence: collections[i].Confidence,
		}
	}
	return out
}
