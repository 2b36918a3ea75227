package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates text input was empty or whitespace-only.
	ErrEmptyInput = errors.New("empty input")

	// ErrMissingIdentity indicates an item was constructed without a remote ID
	// or a local path. Every item needs one so its external identifier stays
	// stable across process restarts.
	ErrMissingIdentity = errors.New("item requires a remote ID or a local path")

	// ErrModelUnavailable indicates the embedding model is not loaded or not
	// configured. Semantic features are disabled without it.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrIndexUnavailable indicates the external search index is not configured.
	ErrIndexUnavailable = errors.New("search index unavailable")
)

// GenerationError indicates the embedding model ran but produced no vector.
type GenerationError struct {
	// Reason describes why generation failed, as reported by the model.
	Reason string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("embedding generation failed: %s", e.Reason)
}

// IndexError wraps a failure from the external search index.
// SearchIndexSync treats these as non-fatal: they are logged and swallowed so
// a broken index never breaks the item-management flow that triggered it.
type IndexError struct {
	// Op is the index operation that failed (e.g. "index batch").
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("search index %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IndexError) Unwrap() error {
	return e.Err
}
