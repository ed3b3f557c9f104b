package models

// ResponseType is a tagged variant; each value constrains which fields of
// StructuredResponse are populated (e.g. error implies empty Sources).
type ResponseType string

const (
	ResponseDirectAnswer  ResponseType = "direct_answer"
	ResponseProcedural    ResponseType = "procedural"
	ResponseExclusion     ResponseType = "exclusion"
	ResponseCoverage      ResponseType = "coverage"
	ResponseClaim         ResponseType = "claim"
	ResponseWaitingPeriod ResponseType = "waiting_period"
	ResponsePremium       ResponseType = "premium"
	ResponseRenewal       ResponseType = "renewal"
	ResponseTermination   ResponseType = "termination"
	ResponseLimitation    ResponseType = "limitation"
	ResponseGeneral       ResponseType = "general"
	ResponseError         ResponseType = "error"
	ResponseNoResults     ResponseType = "no_results"
)

// ConfidenceLevel buckets the overall confidence score.
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "high"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceVeryLow ConfidenceLevel = "very_low"
)

// ConfidenceBreakdown is the {overall, source_relevance, response_completeness,
// citation_quality} tuple defined in the response data model.
type ConfidenceBreakdown struct {
	Overall               float64
	SourceRelevance       float64
	ResponseCompleteness  float64
	CitationQuality       float64
	Level                 ConfidenceLevel
}

// SearchParameters records which threshold and retrieval method actually
// produced the sources attached to a response.
type SearchParameters struct {
	ThresholdUsed float64
	Adaptive      bool
	Method        RetrievalMethod
}

// QualityIndicators are coarse summary signals surfaced alongside confidence.
type QualityIndicators struct {
	Completeness  float64
	Specificity   float64
	CitationCount int
}

// WarningType classifies a Warning for programmatic handling.
type WarningType string

const (
	WarningLowConfidence        WarningType = "low_confidence"
	WarningLowThreshold         WarningType = "low_threshold"
	WarningNoSources            WarningType = "no_sources"
	WarningLimitedSources       WarningType = "limited_sources"
	WarningShortAnswer          WarningType = "short_answer"
	WarningFallbackUsed         WarningType = "fallback_used"
	WarningSubQuestionUnaddressed WarningType = "sub_question_unaddressed"
	WarningValidation           WarningType = "validation"
	WarningExternalFailure      WarningType = "external_failure"
)

// Severity of a Warning.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning is a structured caution attached to a StructuredResponse.
type Warning struct {
	Type       WarningType
	Severity   Severity
	Message    string
	Suggestion string
}

// Recommendation suggests a caller-facing next step.
type Recommendation struct {
	Message string
}

// ClauseReference cross-references a clause identifier found in the answer
// against the source chunk it was drawn from.
type ClauseReference struct {
	Identifier      string
	SourceChunkID   string
	FoundInResponse bool
}

// QueryAnalysisRecord is the query-analysis slice of the explainability record.
type QueryAnalysisRecord struct {
	Intent               Intent
	Complexity           Complexity
	NormalizationApplied bool
}

// SourceAnalysisRecord is the source-analysis slice of the explainability
// record: counts and coverage over the retrieved sources.
type SourceAnalysisRecord struct {
	TotalCount             int
	DocumentsRepresented   int
	PagesRepresented       int
	SectionsRepresented    int
	RetrievalMethodCounts  map[RetrievalMethod]int
}

// AuditTrail is the minimal per-query trace: what happened, when, and why.
type AuditTrail struct {
	Query          string
	Timestamp      string
	ThresholdUsed  float64
	StagesFired    []string
	FailedStage    string // set only on error responses
}

// Explainability bundles the three records the assembler produces to justify
// its output.
type Explainability struct {
	QueryAnalysis  QueryAnalysisRecord
	SourceAnalysis SourceAnalysisRecord
	AuditTrail     AuditTrail
}

// StructuredResponse is produced once per query and never mutated afterward.
type StructuredResponse struct {
	ResponseID        string
	Timestamp         string
	Answer            string
	ResponseType      ResponseType
	Category          string
	Query             QueryContext
	Confidence        ConfidenceBreakdown
	Sources           []SourceRef
	SearchParameters  SearchParameters
	QualityIndicators QualityIndicators
	Warnings          []Warning
	Recommendations   []Recommendation
	ClauseReferences  []ClauseReference
	Explainability    Explainability
}
