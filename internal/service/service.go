// Package service wires the ingestion and query pipelines into the three
// public operations the core exposes: Ingest, Query, and Analyze. It owns
// per-query deadline propagation and translates pipeline-level failures into
// the closed set of response outcomes (answered, no_results, error).
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lexforge/ragengine/internal/assembler"
	"github.com/lexforge/ragengine/internal/chunk"
	"github.com/lexforge/ragengine/internal/config"
	"github.com/lexforge/ragengine/internal/embedding"
	"github.com/lexforge/ragengine/internal/fallback"
	"github.com/lexforge/ragengine/internal/ingest"
	"github.com/lexforge/ragengine/internal/intent"
	"github.com/lexforge/ragengine/internal/keywordindex"
	"github.com/lexforge/ragengine/internal/llmprovider"
	"github.com/lexforge/ragengine/internal/models"
	"github.com/lexforge/ragengine/internal/normalize"
	"github.com/lexforge/ragengine/internal/retrieval"
	"github.com/lexforge/ragengine/internal/vectorindex"
)

// AnalysisResult is the return value of Analyze: the query-understanding
// stages run with no retrieval or answer generation attached.
type AnalysisResult struct {
	Normalized        string
	Intent            models.Intent
	SecondaryIntents  []models.Intent
	Confidence        float64
	Complexity        models.Complexity
	SubQuestions      []string
	MatchedCategories []string
}

// Service is the core's single entry point, composing every pipeline stage
// package behind the three public operations.
type Service struct {
	embedder  embedding.Embedder
	index     vectorindex.Index
	ingester  *ingest.Ingester
	termIndex *keywordindex.TermIndex
	llm       llmprovider.Provider
	cfg       *config.Config
	logger    *zap.Logger

	nowFunc func() time.Time
	idFunc  func() string
}

// New builds a Service from its already-constructed dependencies.
// termIndex may be nil, in which case ingestion skips term indexing and the
// assembler's specificity score has no bleve-backed corpus statistics.
// Keyword-anchoring scans the vector index whether or not termIndex is set.
func New(cfg *config.Config, embedder embedding.Embedder, index vectorindex.Index, termIndex *keywordindex.TermIndex, llm llmprovider.Provider, logger *zap.Logger) *Service {
	chunker := chunk.New(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	return &Service{
		embedder:  embedder,
		index:     index,
		ingester:  ingest.New(chunker, embedder, index, termIndex, logger),
		termIndex: termIndex,
		llm:       llm,
		cfg:       cfg,
		logger:    logger,
		nowFunc:   time.Now,
		idFunc:    func() string { return uuid.New().String() },
	}
}

// Ingest chunks and embeds a document and atomically replaces any prior
// generation of the same doc_id in the vector index.
func (s *Service) Ingest(ctx context.Context, docID, docTitle string, docType chunk.DocType, rawText string, metadata map[string]models.MetadataValue) (ingest.Result, error) {
	if docID == "" {
		return ingest.Result{}, &ValidationError{Field: "doc_id", Reason: "must not be empty"}
	}
	if rawText == "" {
		return ingest.Result{}, &ValidationError{Field: "raw_text", Reason: "must not be empty"}
	}
	return s.ingester.Ingest(ctx, docID, docTitle, docType, rawText, metadata)
}

// Delete removes every chunk belonging to docID from the index.
func (s *Service) Delete(ctx context.Context, docID string) error {
	return s.ingester.Delete(ctx, docID)
}

// Analyze runs normalization and intent analysis only, with no retrieval or
// answer generation. Used to preview how a question would be understood
// without spending an LLM call.
func (s *Service) Analyze(question string) (AnalysisResult, error) {
	if question == "" {
		return AnalysisResult{}, &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	normalized := normalize.Normalize(question)
	result := intent.Analyze(normalized)

	return AnalysisResult{
		Normalized:        normalized,
		Intent:            result.Intent,
		SecondaryIntents:  result.SecondaryIntents,
		Confidence:        result.Confidence,
		Complexity:        result.Complexity,
		SubQuestions:      result.SubQuestions,
		MatchedCategories: result.MatchedCategories,
	}, nil
}

// QueryOptions overrides the configured defaults for a single Query call.
// A zero value applies every configured default unchanged.
type QueryOptions struct {
	TopK          int
	BaseThreshold float64
	DeadlineMS    int
	Filter        vectorindex.Filter
}

// Query runs the full pipeline: normalize, analyze intent, retrieve
// (with keyword-anchoring fallback on zero survivors), and assemble a
// structured answer. It never returns a nil response paired with a nil
// error; a pipeline failure surfaces as an error-kind response instead of a
// bare Go error, except for input validation, which fails fast before any
// external call.
func (s *Service) Query(ctx context.Context, question string, opts QueryOptions) (*models.StructuredResponse, error) {
	if question == "" {
		return nil, &ValidationError{Field: "question", Reason: "must not be empty"}
	}

	deadlineMS := opts.DeadlineMS
	if deadlineMS <= 0 {
		deadlineMS = s.cfg.Retrieval.QueryDeadlineMS
	}
	if deadlineMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(deadlineMS)*time.Millisecond)
		defer cancel()
	}

	responseID := s.idFunc()
	timestamp := s.nowFunc().UTC().Format(time.RFC3339)

	normalized := normalize.Normalize(question)
	analysis := intent.Analyze(normalized)

	qc := models.QueryContext{
		Raw:               question,
		Normalized:        normalized,
		Intent:            analysis.Intent,
		SecondaryIntents:  analysis.SecondaryIntents,
		IntentConfidence:  analysis.Confidence,
		Complexity:        analysis.Complexity,
		SubQuestions:      analysis.SubQuestions,
		MatchedCategories: analysis.MatchedCategories,
	}

	cfg := s.cfg.Retrieval
	if opts.TopK > 0 {
		cfg.ReturnCount = opts.TopK
	}
	if opts.BaseThreshold > 0 {
		cfg.BaseThreshold = opts.BaseThreshold
	}
	retriever := retrieval.New(s.embedder, s.index, cfg)

	results, effectiveThreshold, err := retriever.Retrieve(ctx, qc, opts.Filter, cfg.ReturnCount)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("retrieval failed", zap.Error(err), zap.String("response_id", responseID))
		}
		return s.errorResponse(qc, question, timestamp, responseID, "retrieved", err), nil
	}

	usedFallback := false
	if len(results) == 0 {
		if !cfg.IsKeywordAnchoringEnabled() {
			return assembler.NoResults(qc, question, timestamp, responseID, effectiveThreshold), nil
		}
		keywords := fallback.ExtractKeywords(normalized, qc.MatchedCategories)
		fbResults, err := fallback.Search(ctx, s.index, keywords, qc.MatchedCategories, opts.Filter, cfg.MaxKeywordSearchVectors, cfg.MaxKeywordResults)
		if err != nil {
			return s.errorResponse(qc, question, timestamp, responseID, "retrieved", err), nil
		}
		if len(fbResults) == 0 {
			return assembler.NoResults(qc, question, timestamp, responseID, effectiveThreshold), nil
		}
		results = fbResults
		usedFallback = true
	}

	resp := assembler.Assemble(ctx, assembler.Deps{LLM: s.llm, TermIndex: s.termIndex}, qc, question, results, effectiveThreshold, usedFallback, cfg, s.cfg.LLM, timestamp, responseID)
	if s.logger != nil {
		s.logger.Info("query answered",
			zap.String("response_id", responseID),
			zap.String("response_type", string(resp.ResponseType)),
			zap.Int("source_count", len(resp.Sources)))
	}
	return resp, nil
}

// errorResponse builds the terminal error-kind response for a failure that
// happened before an answer could be generated, such as an unreachable
// vector index.
func (s *Service) errorResponse(qc models.QueryContext, question, timestamp, responseID, failedStage string, err error) *models.StructuredResponse {
	return &models.StructuredResponse{
		ResponseID:   responseID,
		Timestamp:    timestamp,
		ResponseType: models.ResponseError,
		Category:     string(qc.Intent),
		Query:        qc,
		Confidence:   models.ConfidenceBreakdown{Level: models.ConfidenceVeryLow},
		Sources:      []models.SourceRef{},
		Warnings: []models.Warning{{
			Type:     models.WarningExternalFailure,
			Severity: models.SeverityError,
			Message:  err.Error(),
		}},
		Explainability: models.Explainability{
			QueryAnalysis: models.QueryAnalysisRecord{Intent: qc.Intent, Complexity: qc.Complexity},
			AuditTrail: models.AuditTrail{
				Query:       question,
				Timestamp:   timestamp,
				FailedStage: failedStage,
			},
		},
	}
}

// ValidationError signals that caller-supplied input failed validation
// before any external dependency was invoked.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Reason)
}
