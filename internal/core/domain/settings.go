package domain

// AppSettings holds user-configurable application settings.
type AppSettings struct {
	Embedding   EmbeddingSettings
	SearchIndex SearchIndexSettings
}

// EmbeddingSettings configures the embedding model adapter.
type EmbeddingSettings struct {
	// BaseURL is the embedding server address.
	BaseURL string

	// Model is the embedding model name.
	Model string

	// Dimensions is the vector size produced by the model.
	Dimensions int
}

// SearchIndexSettings configures synchronization with the external search index.
type SearchIndexSettings struct {
	// Enabled gates all index writes. When false, indexing operations are
	// silent no-ops.
	Enabled bool

	// IndexedCount is the externally visible number of indexed items,
	// updated after each successful index operation.
	IndexedCount int
}

// DefaultAppSettings returns settings used when no configuration exists.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			BaseURL:    "http://localhost:11434",
			Model:      "nomic-embed-text",
			Dimensions: EmbeddingDimensions,
		},
		SearchIndex: SearchIndexSettings{
			Enabled: true,
		},
	}
}
