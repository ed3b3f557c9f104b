package retrieval

import (
	"context"
	"fmt"
	"testing"

	"github.com/lexforge/ragengine/internal/config"
	"github.com/lexforge/ragengine/internal/embedding"
	"github.com/lexforge/ragengine/internal/models"
	"github.com/lexforge/ragengine/internal/vectorindex"
)

func TestRetrieve_HybridDisabledCombinedEqualsSemantic(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	idx, _ := vectorindex.NewMemoryIndex(8)
	ctx := context.Background()

	vec, _ := embedder.Embed(ctx, "waiting period for pre-existing disease")
	_ = idx.Upsert(ctx, []*models.IndexRecord{
		{ChunkID: "c1", Embedding: vec, Metadata: map[string]models.MetadataValue{
			"text": "The waiting period for pre-existing disease is twelve months.",
		}},
	})

	cfg := config.RetrievalConfig{
		ThresholdMin: 0.0, ThresholdMed: 0.3, ThresholdHigh: 0.6,
		BaseThreshold: 0.0, MinResultsRequired: 1,
		SemanticWeight: 0.7, KeywordWeight: 0.3,
		MaxQueryVariants: 1,
	}
	disabled := false
	cfg.EnableHybridSearch = &disabled
	cfg.EnableQueryEnhancement = &disabled

	eng := New(embedder, idx, cfg)
	qc := models.QueryContext{Normalized: "waiting period for pre-existing disease"}

	results, _, err := eng.Retrieve(ctx, qc, nil, 10)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	for _, r := range results {
		if r.CombinedScore != r.SemanticScore {
			t.Errorf("combined score (%v) != semantic score (%v) with hybrid disabled", r.CombinedScore, r.SemanticScore)
		}
		if r.RetrievalMethod != models.RetrievalSemantic {
			t.Errorf("retrieval method = %q, want %q with hybrid disabled", r.RetrievalMethod, models.RetrievalSemantic)
		}
	}
}

func TestRetrieve_CandidatePoolSizeLimitsStage1Query(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	idx, _ := vectorindex.NewMemoryIndex(8)
	ctx := context.Background()

	records := make([]*models.IndexRecord, 0, 5)
	for i := 0; i < 5; i++ {
		vec, _ := embedder.Embed(ctx, "waiting period")
		records = append(records, &models.IndexRecord{
			ChunkID:   fmt.Sprintf("c%d", i),
			Embedding: vec,
			Metadata:  map[string]models.MetadataValue{"text": "waiting period is twelve months."},
		})
	}
	_ = idx.Upsert(ctx, records)

	cfg := config.RetrievalConfig{
		ThresholdMin: 0.0, ThresholdMed: 0.3, ThresholdHigh: 0.6,
		BaseThreshold: 0.0, MinResultsRequired: 1,
		SemanticWeight: 0.7, KeywordWeight: 0.3,
		MaxQueryVariants: 1, CandidatePoolSize: 2, KeywordScanFloor: 0,
	}
	disabled := false
	cfg.EnableQueryEnhancement = &disabled

	eng := New(embedder, idx, cfg)
	qc := models.QueryContext{Normalized: "waiting period"}

	results, _, err := eng.Retrieve(ctx, qc, nil, 10)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected CandidatePoolSize to cap Stage 1's fan-out query at 2 records, got %d", len(results))
	}
}

func TestRetrieve_KeywordScanFloorExpandsSparsePool(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	idx, _ := vectorindex.NewMemoryIndex(8)
	ctx := context.Background()

	relevantVec, _ := embedder.Embed(ctx, "waiting period for pre-existing disease")
	_ = idx.Upsert(ctx, []*models.IndexRecord{
		{ChunkID: "relevant", Embedding: relevantVec, Metadata: map[string]models.MetadataValue{
			"text": "The waiting period for pre-existing disease is twelve months.",
		}},
		{ChunkID: "unrelated-1", Embedding: []float32{1, 0, 0, 0, 0, 0, 0, 0}, Metadata: map[string]models.MetadataValue{
			"text": "Unrelated clause about claim filing deadlines.",
		}},
		{ChunkID: "unrelated-2", Embedding: []float32{0, 1, 0, 0, 0, 0, 0, 0}, Metadata: map[string]models.MetadataValue{
			"text": "Unrelated clause about renewal terms.",
		}},
	})

	cfg := config.RetrievalConfig{
		ThresholdMin: 0.0, ThresholdMed: 0.3, ThresholdHigh: 0.6,
		BaseThreshold: 0.0, MinResultsRequired: 1,
		SemanticWeight: 0.7, KeywordWeight: 0.3,
		MaxQueryVariants: 1, CandidatePoolSize: 1, KeywordScanFloor: 3, MaxKeywordSearchVectors: 10,
	}
	disabled := false
	cfg.EnableQueryEnhancement = &disabled
	cfg.AdaptiveThreshold = &disabled

	eng := New(embedder, idx, cfg)
	qc := models.QueryContext{Normalized: "waiting period for pre-existing disease"}

	results, _, err := eng.Retrieve(ctx, qc, nil, 10)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected the pool-floor scan to merge in the 2 records Stage 1's capped query missed, got %d results", len(results))
	}
}

func TestRetrieve_EmptyIndexYieldsNoSurvivors(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	idx, _ := vectorindex.NewMemoryIndex(8)
	ctx := context.Background()

	cfg := config.RetrievalConfig{
		ThresholdMin: 0.3, ThresholdMed: 0.5, ThresholdHigh: 0.8,
		BaseThreshold: 0.3, MinResultsRequired: 1,
		SemanticWeight: 0.7, KeywordWeight: 0.3,
		MaxQueryVariants: 1,
	}
	disabled := false
	cfg.EnableQueryEnhancement = &disabled

	eng := New(embedder, idx, cfg)
	qc := models.QueryContext{Normalized: "anything at all"}

	results, _, err := eng.Retrieve(ctx, qc, nil, 10)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results from an empty index, got %d", len(results))
	}
}
