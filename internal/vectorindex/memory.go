package vectorindex

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/lexforge/ragengine/internal/models"
)

// MemoryIndex is an in-memory Index using brute-force cosine similarity.
// Suitable for tests and small corpora; the reference persistent backing is
// SQLiteIndex.
type MemoryIndex struct {
	dimensions int
	mu         sync.RWMutex
	records    map[string]*models.IndexRecord
}

// NewMemoryIndex builds an empty in-memory index for vectors of the given
// dimensionality.
func NewMemoryIndex(dimensions int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("vectorindex: dimensions must be positive")
	}
	return &MemoryIndex{
		dimensions: dimensions,
		records:    make(map[string]*models.IndexRecord),
	}, nil
}

func (m *MemoryIndex) Upsert(ctx context.Context, records []*models.IndexRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		if len(r.Embedding) != m.dimensions {
			return fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(r.Embedding), m.dimensions)
		}
		if err := models.ValidateMetadata(r.Metadata); err != nil {
			return err
		}
		cp := *r
		cp.Embedding = append([]float32(nil), r.Embedding...)
		m.records[r.ChunkID] = &cp
	}
	return nil
}

func (m *MemoryIndex) DeleteByFilter(ctx context.Context, filter Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, r := range m.records {
		if filter.Match(r.Metadata) {
			delete(m.records, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryIndex) ReplaceDocument(ctx context.Context, filter Filter, records []*models.IndexRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		if len(r.Embedding) != m.dimensions {
			return 0, fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(r.Embedding), m.dimensions)
		}
		if err := models.ValidateMetadata(r.Metadata); err != nil {
			return 0, err
		}
	}

	removed := 0
	for id, r := range m.records {
		if filter.Match(r.Metadata) {
			delete(m.records, id)
			removed++
		}
	}
	for _, r := range records {
		cp := *r
		cp.Embedding = append([]float32(nil), r.Embedding...)
		m.records[r.ChunkID] = &cp
	}
	return removed, nil
}

func (m *MemoryIndex) Query(ctx context.Context, embedding []float32, topK int, filter Filter) ([]ScoredRecord, error) {
	if len(embedding) != m.dimensions {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(embedding), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var scored []ScoredRecord
	for _, r := range m.records {
		if !filter.Match(r.Metadata) {
			continue
		}
		scored = append(scored, ScoredRecord{Record: r, Score: CosineSimilarity(embedding, r.Embedding)})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Record.ChunkID < scored[j].Record.ChunkID
	})
	if topK > 0 && topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

func (m *MemoryIndex) Scan(ctx context.Context, filter Filter, limit int) ([]*models.IndexRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*models.IndexRecord
	for _, id := range ids {
		r := m.records[id]
		if !filter.Match(r.Metadata) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryIndex) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{RecordCount: len(m.records), Dimensions: m.dimensions}, nil
}

func (m *MemoryIndex) Close() error { return nil }

// CosineSimilarity returns the cosine similarity of two vectors, clamped to
// [0, 1]. Vectors are assumed comparable (non-zero, same length); mismatched
// or zero-length inputs score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(0, math.Min(1, sim))
}
