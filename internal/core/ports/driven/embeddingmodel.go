package driven

import "context"

// EmbeddingModel is the opaque embedding model collaborator.
// The model maps text to a fixed-dimension vector, or to nil when it cannot
// produce one. It is NOT safe for concurrent use; the embedding engine
// serializes all calls to a single instance.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingModel interface {
	// Available reports whether the model is loaded and reachable.
	Available(ctx context.Context) bool

	// Vector returns the raw (unnormalized) embedding for the text, or nil
	// with an error describing why no vector was produced.
	Vector(ctx context.Context, text string) ([]float32, error)

	// Close releases resources.
	Close() error
}
