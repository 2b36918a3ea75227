package driving

import "context"

// Embedder generates semantic fingerprints from text.
// All operations on one instance execute one at a time, in call order,
// because the underlying model is not safe for concurrent use.
type Embedder interface {
	// Generate returns a unit-norm (or all-zero) fixed-dimension vector for
	// the text. Empty or whitespace-only text fails with domain.ErrEmptyInput;
	// an unloaded model fails with domain.ErrModelUnavailable.
	Generate(ctx context.Context, text string) ([]float32, error)

	// GenerateBatch embeds texts strictly sequentially and in input order.
	// The first failure aborts the batch and is returned; results for prior
	// texts are discarded.
	GenerateBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Available reports whether the underlying model can serve requests.
	Available(ctx context.Context) bool

	// Preload forces any lazy model load by issuing a throwaway generation.
	// Success means "model is loaded", not that a specific vector was produced.
	Preload(ctx context.Context)
}
