package domain

import "math"

// EmbeddingDimensions is the fixed length of every embedding vector.
// It is determined by the embedding model and must match the vector size
// stored alongside items and collection centroids.
const EmbeddingDimensions = 512

// UnitNormTolerance is the floating tolerance used when checking that a
// non-zero embedding has Euclidean norm 1.
const UnitNormTolerance = 1e-5

// Norm returns the Euclidean (L2) norm of a vector.
func Norm(vector []float32) float64 {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// IsZeroVector reports whether every component of the vector is zero.
func IsZeroVector(vector []float32) bool {
	for _, v := range vector {
		if v != 0 {
			return false
		}
	}
	return true
}
