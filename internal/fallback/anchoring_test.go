package fallback

import (
	"context"
	"testing"

	"github.com/lexforge/ragengine/internal/domain"
	"github.com/lexforge/ragengine/internal/models"
	"github.com/lexforge/ragengine/internal/vectorindex"
)

func TestExtractKeywords_UnionsCategorySurfaceFormsAndLegalTerms(t *testing.T) {
	kws := ExtractKeywords("is pre-existing disease excluded from coverage", []string{domain.CategoryPreexistingDiseases, domain.CategoryExclusions})

	want := map[string]bool{"pre-existing disease": true, "excluded": true, "coverage": true}
	got := map[string]bool{}
	for _, kw := range kws {
		got[kw] = true
	}
	for w := range want {
		if !got[w] {
			t.Errorf("expected keyword %q among %v", w, kws)
		}
	}
}

func TestExtractKeywords_DeduplicatesCaseInsensitively(t *testing.T) {
	kws := ExtractKeywords("coverage coverage coverage", nil)
	count := 0
	for _, kw := range kws {
		if kw == "coverage" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 'coverage' to appear once, got %d times in %v", count, kws)
	}
}

func TestExtractKeywords_EmptyQueryYieldsNoKeywords(t *testing.T) {
	if kws := ExtractKeywords("", nil); len(kws) != 0 {
		t.Errorf("expected no keywords for an empty query, got %v", kws)
	}
}

func newFallbackIndex(t *testing.T) vectorindex.Index {
	t.Helper()
	idx, err := vectorindex.NewMemoryIndex(2)
	if err != nil {
		t.Fatalf("NewMemoryIndex: %v", err)
	}
	return idx
}

func TestSearch_NoKeywordsReturnsEmpty(t *testing.T) {
	idx := newFallbackIndex(t)
	results, err := Search(context.Background(), idx, nil, nil, nil, 10, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results with no keywords, got %d", len(results))
	}
}

func TestSearch_ScoresAndOrdersByStructuralRankThenScore(t *testing.T) {
	idx := newFallbackIndex(t)
	ctx := context.Background()
	_ = idx.Upsert(ctx, []*models.IndexRecord{
		{ChunkID: "category-match", Embedding: []float32{1, 0}, Metadata: map[string]models.MetadataValue{
			"text": "Pre-existing disease coverage exclusion applies for 48 months.",
		}},
		{ChunkID: "generic-legal-only", Embedding: []float32{0, 1}, Metadata: map[string]models.MetadataValue{
			"text": "Section 4 exclusion: this clause is not covered under any circumstance whatsoever here.",
		}},
		{ChunkID: "no-match", Embedding: []float32{1, 1}, Metadata: map[string]models.MetadataValue{
			"text": "Totally unrelated boilerplate about office hours.",
		}},
	})

	keywords := ExtractKeywords("pre-existing disease exclusion", []string{domain.CategoryPreexistingDiseases})
	results, err := Search(ctx, idx, keywords, []string{domain.CategoryPreexistingDiseases}, nil, 10, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("expected at least 2 scored results, got %d", len(results))
	}
	if results[0].ChunkID != "category-match" {
		t.Errorf("expected the category-matching chunk to rank first, got %q", results[0].ChunkID)
	}
	if results[0].StructuralRank != 1 {
		t.Errorf("expected structural rank 1 for a category surface-form match, got %d", results[0].StructuralRank)
	}
	for _, r := range results {
		if r.ChunkID == "generic-legal-only" && r.StructuralRank == 1 {
			t.Errorf("expected a non-1 structural rank for a chunk with no matched-category overlap, got %d", r.StructuralRank)
		}
	}
}

func TestSearch_RespectsMaxResults(t *testing.T) {
	idx := newFallbackIndex(t)
	ctx := context.Background()
	_ = idx.Upsert(ctx, []*models.IndexRecord{
		{ChunkID: "a", Embedding: []float32{1, 0}, Metadata: map[string]models.MetadataValue{"text": "coverage coverage coverage"}},
		{ChunkID: "b", Embedding: []float32{0, 1}, Metadata: map[string]models.MetadataValue{"text": "coverage details here"}},
	})

	results, err := Search(ctx, idx, []string{"coverage"}, nil, nil, 10, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected maxResults=1 to cap the result set, got %d", len(results))
	}
}

func TestSearch_FilterRestrictsScan(t *testing.T) {
	idx := newFallbackIndex(t)
	ctx := context.Background()
	_ = idx.Upsert(ctx, []*models.IndexRecord{
		{ChunkID: "a", Embedding: []float32{1, 0}, Metadata: map[string]models.MetadataValue{"text": "coverage", "document_id": "doc-1"}},
		{ChunkID: "b", Embedding: []float32{0, 1}, Metadata: map[string]models.MetadataValue{"text": "coverage", "document_id": "doc-2"}},
	})

	results, err := Search(ctx, idx, []string{"coverage"}, nil, vectorindex.Filter{"document_id": "doc-1"}, 10, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ChunkID != "a" {
		t.Fatalf("expected filter to restrict the scan to doc-1's chunk, got %+v", results)
	}
}
