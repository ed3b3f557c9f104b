package assembler

import (
	"context"
	"testing"

	"github.com/lexforge/ragengine/internal/config"
	"github.com/lexforge/ragengine/internal/llmprovider"
	"github.com/lexforge/ragengine/internal/models"
)

func TestAssemble_MultiSubQuestionCitationQuality(t *testing.T) {
	qc := models.QueryContext{
		Intent: models.IntentCoverage,
		SubQuestions: []string{
			"what is covered?", "what is excluded?", "what is the waiting period?",
			"how do I file a claim?", "what is the deductible?",
		},
	}
	results := []*models.RetrievalResult{
		{ChunkID: "c1", Text: "Section 1 covers hospitalization.", CombinedScore: 0.9,
			Metadata: map[string]models.MetadataValue{"document_title": "Policy", "section_anchor": "1"}},
	}

	resp := Assemble(context.Background(), Deps{LLM: llmprovider.NewMockProvider()}, qc, "what is covered, what is excluded, what is the waiting period, how do I file a claim, and what is the deductible",
		results, 0.3, false, config.RetrievalConfig{ThresholdMin: 0.2}, config.LLMConfig{MaxTokens: 4000, Temperature: 0.1}, "2026-08-06T00:00:00Z", "resp-1")

	if resp.ResponseType == models.ResponseError {
		t.Fatalf("unexpected error response: %+v", resp.Warnings)
	}
	if resp.Confidence.CitationQuality < 0 || resp.Confidence.CitationQuality > 1 {
		t.Errorf("citation quality out of range: %v", resp.Confidence.CitationQuality)
	}
}

func TestNoResults_IsErrorFree(t *testing.T) {
	qc := models.QueryContext{Intent: models.IntentInformationSeeking}
	resp := NoResults(qc, "what about xyz?", "2026-08-06T00:00:00Z", "resp-2", 0.3)
	if resp.ResponseType != models.ResponseNoResults {
		t.Errorf("response type = %q, want no_results", resp.ResponseType)
	}
	if len(resp.Sources) != 0 {
		t.Errorf("expected empty sources, got %d", len(resp.Sources))
	}
}

func TestExtractClauseReferences(t *testing.T) {
	results := []*models.RetrievalResult{
		{ChunkID: "c1", Text: "See Section 4 for details on exclusion 1.2."},
	}
	refs := ExtractClauseReferences("As stated in Section 4, this is excluded.", results)
	if len(refs) == 0 {
		t.Fatal("expected at least one clause reference")
	}
}

func TestUnaddressedSubQuestions(t *testing.T) {
	sub := []string{"a?", "b?", "c?"}
	answer := "1. Answer to a.\n2. Answer to b."
	missing := UnaddressedSubQuestions(answer, sub)
	if len(missing) != 1 || missing[0] != "c?" {
		t.Errorf("missing = %v, want [c?]", missing)
	}
}
