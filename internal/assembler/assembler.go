package assembler

import (
	"context"
	"fmt"

	"github.com/lexforge/ragengine/internal/config"
	"github.com/lexforge/ragengine/internal/keywordindex"
	"github.com/lexforge/ragengine/internal/llmprovider"
	"github.com/lexforge/ragengine/internal/models"
)

// Deps bundles the assembler's external dependencies: the answer-generation
// provider and, optionally, the corpus term index used to score result
// specificity. TermIndex may be nil, in which case Specificity falls back to
// the clause-citation-derived quality signal.
type Deps struct {
	LLM       llmprovider.Provider
	TermIndex *keywordindex.TermIndex
}

// Assemble runs steps 1-9 of the response assembler and returns the final
// StructuredResponse. It never returns a nil response: an LLM failure
// (after the provider's own retry) produces an error-kind response instead
// of propagating the error, per the failure-semantics contract.
func Assemble(ctx context.Context, deps Deps, qc models.QueryContext, originalQuestion string, results []*models.RetrievalResult, effectiveThreshold float64, usedFallback bool, cfg config.RetrievalConfig, llmCfg config.LLMConfig, nowTimestamp string, responseID string) *models.StructuredResponse {
	blocks := FormatContext(results)
	system, user := BuildPrompt(qc, originalQuestion, blocks)

	answer, err := llmprovider.CompleteWithRetry(ctx, deps.LLM, system, user, llmCfg.MaxTokens, llmCfg.Temperature)
	if err != nil {
		return errorResponse(qc, originalQuestion, nowTimestamp, responseID, "prompted", fmt.Sprintf("answer generation failed: %v", err))
	}

	unaddressed := UnaddressedSubQuestions(answer, qc.SubQuestions)
	clauseRefs := ExtractClauseReferences(answer, results)

	sourceRelevance := SourceRelevance(results)
	completeness := ResponseCompleteness(answer, len(qc.SubQuestions), len(unaddressed), llmCfg.MaxTokens)
	citationQuality := CitationQuality(len(clauseRefs), len(qc.SubQuestions))
	lengthFactor := LengthFactor(answer, llmCfg.MaxTokens)
	confidence := Overall(sourceRelevance, completeness, citationQuality, lengthFactor)

	specificity := citationQuality
	if deps.TermIndex != nil {
		if s, err := deps.TermIndex.Specificity(uniqueMatchedKeywords(results)); err == nil {
			specificity = s
		}
	}

	responseType := ClassifyResponseType(qc.Intent, answer)
	warnings := BuildWarnings(confidence, effectiveThreshold, cfg.ThresholdMin, usedFallback, unaddressed, len(results))
	recommendations := BuildRecommendations(confidence, len(results))

	sources := make([]models.SourceRef, 0, len(results))
	methodCounts := make(map[models.RetrievalMethod]int)
	docs := map[string]bool{}
	pages := map[int]bool{}
	sections := map[string]bool{}
	for _, r := range results {
		title, _ := r.Metadata["document_title"].(string)
		anchor, _ := r.Metadata["section_anchor"].(string)
		secTitle, _ := r.Metadata["section_title"].(string)
		page, _ := r.Metadata["page_number"].(int)
		docID, _ := r.Metadata["document_id"].(string)

		sources = append(sources, models.SourceRef{
			ChunkID:       r.ChunkID,
			DocumentTitle: title,
			SectionAnchor: anchor,
			SectionTitle:  secTitle,
			PageNumber:    page,
			Score:         r.CombinedScore,
			Method:        r.RetrievalMethod,
		})
		methodCounts[r.RetrievalMethod]++
		if docID != "" {
			docs[docID] = true
		}
		if page > 0 {
			pages[page] = true
		}
		if anchor != "" {
			sections[anchor] = true
		}
	}

	method := models.RetrievalHybrid
	if usedFallback {
		method = models.RetrievalKeywordAnchored
	} else if !cfg.IsHybridSearchEnabled() {
		method = models.RetrievalSemantic
	}

	return &models.StructuredResponse{
		ResponseID:   responseID,
		Timestamp:    nowTimestamp,
		Answer:       answer,
		ResponseType: responseType,
		Category:     string(qc.Intent),
		Query:        qc,
		Confidence:   confidence,
		Sources:      sources,
		SearchParameters: models.SearchParameters{
			ThresholdUsed: effectiveThreshold,
			Adaptive:      cfg.IsAdaptiveThreshold(),
			Method:        method,
		},
		QualityIndicators: models.QualityIndicators{
			Completeness:  completeness,
			Specificity:   specificity,
			CitationCount: len(clauseRefs),
		},
		Warnings:         warnings,
		Recommendations:  recommendations,
		ClauseReferences: clauseRefs,
		Explainability: models.Explainability{
			QueryAnalysis: models.QueryAnalysisRecord{
				Intent:               qc.Intent,
				Complexity:           qc.Complexity,
				NormalizationApplied: qc.Raw != qc.Normalized,
			},
			SourceAnalysis: models.SourceAnalysisRecord{
				TotalCount:            len(results),
				DocumentsRepresented:  len(docs),
				PagesRepresented:      len(pages),
				SectionsRepresented:   len(sections),
				RetrievalMethodCounts: methodCounts,
			},
			AuditTrail: models.AuditTrail{
				Query:         originalQuestion,
				Timestamp:     nowTimestamp,
				ThresholdUsed: effectiveThreshold,
				StagesFired:   stagesFired(usedFallback),
			},
		},
	}
}

// NoResults builds the terminal no_results response for a query with zero
// survivors after all stages, including the fallback.
func NoResults(qc models.QueryContext, originalQuestion, nowTimestamp, responseID string, effectiveThreshold float64) *models.StructuredResponse {
	return &models.StructuredResponse{
		ResponseID:   responseID,
		Timestamp:    nowTimestamp,
		Answer:       "",
		ResponseType: models.ResponseNoResults,
		Category:     string(qc.Intent),
		Query:        qc,
		Confidence:   models.ConfidenceBreakdown{Level: models.ConfidenceVeryLow},
		Sources:      []models.SourceRef{},
		SearchParameters: models.SearchParameters{
			ThresholdUsed: effectiveThreshold,
		},
		Warnings: []models.Warning{{
			Type:     models.WarningNoSources,
			Severity: models.SeverityError,
			Message:  "No relevant documents were found for this question.",
		}},
		Recommendations: BuildRecommendations(models.ConfidenceBreakdown{Level: models.ConfidenceVeryLow}, 0),
		Explainability: models.Explainability{
			QueryAnalysis: models.QueryAnalysisRecord{Intent: qc.Intent, Complexity: qc.Complexity},
			AuditTrail: models.AuditTrail{
				Query:         originalQuestion,
				Timestamp:     nowTimestamp,
				ThresholdUsed: effectiveThreshold,
				StagesFired:   []string{"received", "normalized", "intent_analyzed", "retrieved"},
			},
		},
	}
}

func errorResponse(qc models.QueryContext, originalQuestion, nowTimestamp, responseID, failedStage, message string) *models.StructuredResponse {
	return &models.StructuredResponse{
		ResponseID:   responseID,
		Timestamp:    nowTimestamp,
		Answer:       "",
		ResponseType: models.ResponseError,
		Category:     string(qc.Intent),
		Query:        qc,
		Confidence:   models.ConfidenceBreakdown{Level: models.ConfidenceVeryLow},
		Sources:      []models.SourceRef{},
		Warnings: []models.Warning{{
			Type:     models.WarningExternalFailure,
			Severity: models.SeverityError,
			Message:  message,
		}},
		Explainability: models.Explainability{
			QueryAnalysis: models.QueryAnalysisRecord{Intent: qc.Intent, Complexity: qc.Complexity},
			AuditTrail: models.AuditTrail{
				Query:       originalQuestion,
				Timestamp:   nowTimestamp,
				FailedStage: failedStage,
			},
		},
	}
}

// uniqueMatchedKeywords collects the deduplicated union of every result's
// MatchedKeywords, in first-seen order, for use as the term-index
// specificity query.
func uniqueMatchedKeywords(results []*models.RetrievalResult) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range results {
		for _, kw := range r.MatchedKeywords {
			if seen[kw] {
				continue
			}
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

func stagesFired(usedFallback bool) []string {
	stages := []string{"received", "normalized", "intent_analyzed", "retrieved"}
	if usedFallback {
		stages = append(stages, "fallback")
	}
	return append(stages, "ranked", "prompted", "answered", "assembled")
}
