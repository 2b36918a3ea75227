package domain

import "time"

// Collection is a labeled group of items sharing embedding proximity.
// Collections are created and refreshed by an external clustering job;
// the core reads them but never creates them.
type Collection struct {
	// ID is the collection identifier.
	ID string

	// Label is the human-readable name.
	Label string

	// Centroid is the mean embedding of the collection's items.
	// Same dimension as item embeddings.
	Centroid []float32

	// ItemCount is the number of items in the collection.
	ItemCount int

	// Confidence measures how well the collection's items cohere, in [0,1].
	// Low-confidence collections are filtered out of suggestions.
	Confidence float64

	// UpdatedAt is when the clustering job last refreshed the collection.
	UpdatedAt time.Time
}
