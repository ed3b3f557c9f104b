package vectorindex

import (
	"context"
	"testing"

	"github.com/lexforge/ragengine/internal/models"
)

func TestMemoryIndex_UpsertAndQuery(t *testing.T) {
	idx, err := NewMemoryIndex(3)
	if err != nil {
		t.Fatalf("NewMemoryIndex: %v", err)
	}
	ctx := context.Background()

	records := []*models.IndexRecord{
		{ChunkID: "a", Embedding: []float32{1, 0, 0}, Metadata: map[string]models.MetadataValue{"document_id": "doc1"}},
		{ChunkID: "b", Embedding: []float32{0, 1, 0}, Metadata: map[string]models.MetadataValue{"document_id": "doc2"}},
	}
	if err := idx.Upsert(ctx, records); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := idx.Query(ctx, []float32{1, 0, 0}, 2, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Record.ChunkID != "a" {
		t.Errorf("expected top result 'a', got %q", results[0].Record.ChunkID)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not sorted descending by score")
	}
}

func TestMemoryIndex_DeleteByFilter(t *testing.T) {
	idx, _ := NewMemoryIndex(2)
	ctx := context.Background()
	_ = idx.Upsert(ctx, []*models.IndexRecord{
		{ChunkID: "a", Embedding: []float32{1, 0}, Metadata: map[string]models.MetadataValue{"document_id": "doc1"}},
		{ChunkID: "b", Embedding: []float32{0, 1}, Metadata: map[string]models.MetadataValue{"document_id": "doc1"}},
		{ChunkID: "c", Embedding: []float32{1, 1}, Metadata: map[string]models.MetadataValue{"document_id": "doc2"}},
	})

	removed, err := idx.DeleteByFilter(ctx, Filter{"document_id": "doc1"})
	if err != nil {
		t.Fatalf("DeleteByFilter: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	stats, _ := idx.Stats(ctx)
	if stats.RecordCount != 1 {
		t.Errorf("expected 1 remaining record, got %d", stats.RecordCount)
	}
}

func TestMemoryIndex_ReplaceDocument(t *testing.T) {
	idx, _ := NewMemoryIndex(2)
	ctx := context.Background()
	_ = idx.Upsert(ctx, []*models.IndexRecord{
		{ChunkID: "doc-1:0", Embedding: []float32{1, 0}, Metadata: map[string]models.MetadataValue{"document_id": "doc-1"}},
		{ChunkID: "doc-1:1", Embedding: []float32{0, 1}, Metadata: map[string]models.MetadataValue{"document_id": "doc-1"}},
		{ChunkID: "other:0", Embedding: []float32{1, 1}, Metadata: map[string]models.MetadataValue{"document_id": "doc-2"}},
	})

	removed, err := idx.ReplaceDocument(ctx, Filter{"document_id": "doc-1"}, []*models.IndexRecord{
		{ChunkID: "doc-1:0", Embedding: []float32{1, 1}, Metadata: map[string]models.MetadataValue{"document_id": "doc-1"}},
	})
	if err != nil {
		t.Fatalf("ReplaceDocument: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	stats, _ := idx.Stats(ctx)
	if stats.RecordCount != 2 {
		t.Fatalf("expected 2 remaining records (1 replaced + 1 untouched), got %d", stats.RecordCount)
	}
}

func TestMemoryIndex_DimensionMismatch(t *testing.T) {
	idx, _ := NewMemoryIndex(3)
	ctx := context.Background()
	err := idx.Upsert(ctx, []*models.IndexRecord{
		{ChunkID: "a", Embedding: []float32{1, 0}, Metadata: nil},
	})
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("identical vectors: got %v, want ~1", got)
	}
	if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); got > 0.001 {
		t.Errorf("orthogonal vectors: got %v, want ~0", got)
	}
}
