package models

// Intent is the closed set of legal-query intents.
type Intent string

const (
	IntentInformationSeeking Intent = "information_seeking"
	IntentProcedural         Intent = "procedural"
	IntentCoverage           Intent = "coverage"
	IntentExclusion          Intent = "exclusion"
	IntentFinancial          Intent = "financial"
	IntentTemporal           Intent = "temporal"
	IntentClaim              Intent = "claim"
)

// IntentPriority breaks ties among categories with equal match counts,
// highest priority first.
var IntentPriority = []Intent{
	IntentExclusion,
	IntentCoverage,
	IntentTemporal,
	IntentFinancial,
	IntentClaim,
	IntentProcedural,
	IntentInformationSeeking,
}

// Complexity buckets a query by how much work the pipeline should expect.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// QueryContext carries a question through normalization, intent analysis,
// retrieval, and assembly. It is built once per query and never mutated
// after intent analysis completes.
type QueryContext struct {
	Raw               string
	Normalized        string
	Intent            Intent
	SecondaryIntents  []Intent
	IntentConfidence  float64
	Complexity        Complexity
	Keywords          []string
	SubQuestions      []string
	MatchedCategories []string
}
