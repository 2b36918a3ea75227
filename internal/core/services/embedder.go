package services

import (
	"context"
	"strings"
	"sync"

	"github.com/medley-app/medley-cli/internal/core/domain"
	"github.com/medley-app/medley-cli/internal/core/ports/driven"
	"github.com/medley-app/medley-cli/internal/core/ports/driving"
	"github.com/medley-app/medley-cli/internal/logger"
)

// Ensure EmbeddingEngine implements the interface.
var _ driving.Embedder = (*EmbeddingEngine)(nil)

// EmbeddingEngine wraps the opaque embedding model: it validates input,
// requests a vector, and L2-normalizes the result. One mutex per engine
// serializes every operation because the model is not safe for concurrent
// use; batches run sequentially under the same mutex hold.
type EmbeddingEngine struct {
	mu    sync.Mutex
	model driven.EmbeddingModel
}

// NewEmbeddingEngine creates an engine around the given model.
func NewEmbeddingEngine(model driven.EmbeddingModel) *EmbeddingEngine {
	return &EmbeddingEngine{model: model}
}

// Generate returns a unit-norm (or all-zero) vector for the text.
func (e *EmbeddingEngine) Generate(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generateLocked(ctx, text)
}

// GenerateBatch embeds texts strictly sequentially and in input order.
// The first failure aborts the batch and is returned.
func (e *EmbeddingEngine) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vector, err := e.generateLocked(ctx, text)
		if err != nil {
			logger.Debug("batch embedding aborted at text %d: %v", i, err)
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

// Available reports whether the underlying model can serve requests.
func (e *EmbeddingEngine) Available(ctx context.Context) bool {
	return e.model != nil && e.model.Available(ctx)
}

// Preload forces any lazy model load by issuing a throwaway generation.
// The result is discarded; success means the model is loaded, not that a
// specific vector was produced.
func (e *EmbeddingEngine) Preload(ctx context.Context) {
	if !e.Available(ctx) {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.generateLocked(ctx, "warmup"); err != nil {
		logger.Debug("embedding preload: %v", err)
	}
}

// generateLocked performs one generation. Callers must hold e.mu.
func (e *EmbeddingEngine) generateLocked(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyInput
	}

	if e.model == nil || !e.model.Available(ctx) {
		return nil, domain.ErrModelUnavailable
	}

	vector, err := e.model.Vector(ctx, text)
	if err != nil {
		return nil, &domain.GenerationError{Reason: err.Error()}
	}
	if vector == nil {
		return nil, &domain.GenerationError{Reason: "model returned no vector"}
	}

	return normalize(vector), nil
}

// normalize scales a vector to unit Euclidean norm. The zero vector is
// returned unchanged - there is no direction to preserve.
func normalize(vector []float32) []float32 {
	norm := domain.Norm(vector)
	if norm == 0 {
		return vector
	}

	unit := make([]float32, len(vector))
	for i, v := range vector {
		unit[i] = float32(float64(v) / norm)
	}
	return unit
}
