// Package vectorindex defines the vector-index adapter contract consumed by
// the ingestion pipeline (write side) and the hybrid retriever (read side),
// plus two reference implementations: an in-memory index for tests and a
// SQLite-backed index for persistence.
package vectorindex

import (
	"context"
	"errors"

	"github.com/lexforge/ragengine/internal/models"
)

// ErrDimensionMismatch is returned when a vector's length does not match the
// index's configured dimensionality.
var ErrDimensionMismatch = errors.New("vectorindex: vector dimension mismatch")

// Filter restricts Query and Scan to records whose metadata matches every
// key/value pair. Values are compared with equality; a nil or empty Filter
// matches everything.
type Filter map[string]models.MetadataValue

// Match reports whether md satisfies f.
func (f Filter) Match(md map[string]models.MetadataValue) bool {
	for k, v := range f {
		if md[k] != v {
			return false
		}
	}
	return true
}

// ScoredRecord is a record returned by Query, carrying the similarity score
// that produced its rank.
type ScoredRecord struct {
	Record *models.IndexRecord
	Score  float64
}

// Stats summarizes the current contents of the index.
type Stats struct {
	RecordCount int
	Dimensions  int
}

// Index is the vector-index adapter contract. Implementations must be safe
// for concurrent use: multiple queries may run concurrently with each other
// and with upserts from ingestion. Consistency is eventually consistent at
// second-scale: a record written by Upsert is not guaranteed to be visible
// to a Query issued from another goroutine before it returns, but becomes
// visible promptly after.
type Index interface {
	// Upsert writes or replaces records by ChunkID.
	Upsert(ctx context.Context, records []*models.IndexRecord) error

	// DeleteByFilter removes every record matching filter and reports how
	// many were removed.
	DeleteByFilter(ctx context.Context, filter Filter) (int, error)

	// ReplaceDocument atomically removes every record matching filter and
	// writes records, as a single operation: a Query or Scan running
	// concurrently on another goroutine observes either the pre-delete or
	// the post-upsert generation, never a window with neither.
	ReplaceDocument(ctx context.Context, filter Filter, records []*models.IndexRecord) (removed int, err error)

	// Query returns the topK records most similar to embedding by cosine
	// similarity, restricted to records matching filter.
	Query(ctx context.Context, embedding []float32, topK int, filter Filter) ([]ScoredRecord, error)

	// Scan iterates up to limit records matching filter, in an
	// implementation-defined but stable order, without regard to similarity.
	// Used by the keyword-anchoring fallback's bounded document scan.
	Scan(ctx context.Context, filter Filter, limit int) ([]*models.IndexRecord, error)

	Stats(ctx context.Context) (Stats, error)

	Close() error
}
