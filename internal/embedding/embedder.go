// Package embedding provides the embedding-provider adapter consumed by the
// chunker (write path) and the hybrid retriever (query path). The core never
// computes embeddings itself; it only calls through this interface.
package embedding

import (
	"context"
	"errors"
)

// ErrZeroVector is returned when a provider yields an all-zero vector, which
// the index refuses to store. Callers may fall back to a mock embedder in
// non-production paths (see MockEmbedder), never in production writes.
var ErrZeroVector = errors.New("embedding: provider returned an all-zero vector")

// Embedder produces vector embeddings for text. Implementations must be
// deterministic per (model, text) and must return vectors matching
// Dimensions(); an all-zero vector is invalid and must never be written to
// the vector index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// IsZeroVector reports whether every component of v is zero.
func IsZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
