// Package domain holds the static, read-only legal/insurance domain
// knowledge shared by normalization, intent analysis, keyword scoring, and
// the keyword-anchoring fallback: the category dictionary, the synonym
// table, and the general legal-term list. Everything here is loaded once at
// startup and never mutated.
package domain

import "github.com/lexforge/ragengine/internal/models"

// Category names index into Dictionary.
const (
	CategoryPreexistingDiseases = "preexisting_diseases"
	CategoryExclusions          = "exclusions"
	CategoryCoverage            = "coverage"
	CategoryClaims              = "claims"
	CategoryDeductibles         = "deductibles"
	CategoryPremiums            = "premiums"
	CategoryWaitingPeriods      = "waiting_periods"
	CategoryRenewals            = "renewals"
	CategoryTerminations        = "terminations"
)

// Dictionary maps each legal category to its surface forms. Order within a
// slice does not matter; iteration order over the map is deliberately not
// relied upon anywhere that requires determinism (tie-breaks use
// models.IntentPriority instead).
var Dictionary = map[string][]string{
	CategoryPreexistingDiseases: {
		"pre-existing disease", "ped", "excl 01", "preexisting condition",
		"existing illness", "pre-existing illness", "medical history",
		"preexisting diseases",
	},
	CategoryExclusions: {
		"exclusion", "excluded", "not covered", "limitations",
		"excluded conditions", "coverage limitations",
	},
	CategoryCoverage: {
		"coverage", "covered", "benefits", "insurance coverage",
		"policy coverage", "medical coverage",
	},
	CategoryClaims: {
		"claim", "claim filing", "claim process", "claim submission",
		"claim amount", "claim limits",
	},
	CategoryDeductibles: {
		"deductible", "deductible amount", "out-of-pocket",
		"deductible limit", "cost sharing",
	},
	CategoryPremiums: {
		"premium", "insurance premium", "monthly premium",
		"annual premium", "payment",
	},
	CategoryWaitingPeriods: {
		"waiting period", "waiting time", "wait period",
		"exclusion period", "initial period",
	},
	CategoryRenewals: {
		"renewal", "policy renewal", "renewal process",
		"renewal terms", "extension",
	},
	CategoryTerminations: {
		"termination", "policy termination", "cancellation",
		"end of coverage", "discontinuation",
	},
}

// CategoryToIntent maps each domain category onto the closed intent set. A
// category can only ever map to one intent; several categories collapse onto
// the same intent (e.g. claims -> claim, deductibles/premiums -> financial).
var CategoryToIntent = map[string]models.Intent{
	CategoryPreexistingDiseases: models.IntentExclusion,
	CategoryExclusions:          models.IntentExclusion,
	CategoryCoverage:            models.IntentCoverage,
	CategoryClaims:              models.IntentClaim,
	CategoryDeductibles:         models.IntentFinancial,
	CategoryPremiums:            models.IntentFinancial,
	CategoryWaitingPeriods:      models.IntentTemporal,
	CategoryRenewals:            models.IntentTemporal,
	CategoryTerminations:        models.IntentTemporal,
}

// SectionTitleIntents maps recognizable section-title fragments to the
// intent they signal, used by the context-aware re-rank intent boost
// (temporal intent <-> a section titled "Waiting Period", and so on).
var SectionTitleIntents = map[string]models.Intent{
	"waiting period": models.IntentTemporal,
	"exclusion":       models.IntentExclusion,
	"coverage":        models.IntentCoverage,
	"claim":           models.IntentClaim,
	"premium":         models.IntentFinancial,
	"deductible":      models.IntentFinancial,
	"renewal":         models.IntentTemporal,
	"termination":     models.IntentTemporal,
	"procedure":       models.IntentProcedural,
}

// LegalTerms is the general-purpose legal vocabulary used by legal-density
// scoring during chunking (§4.1) and by metadata-builder-style term
// occurrence counting.
var LegalTerms = []string{
	"whereas", "hereby", "hereinafter", "party", "parties", "agreement",
	"contract", "clause", "section", "article", "paragraph", "subparagraph",
	"jurisdiction", "governing law", "dispute resolution", "arbitration",
	"breach", "termination", "liability", "indemnification", "confidentiality",
	"intellectual property", "force majeure", "amendment", "waiver",
}

// GeneralLegalTerms is the fixed set of terms consulted (in addition to the
// category dictionary) when extracting keywords for the anchoring fallback.
var GeneralLegalTerms = []string{
	"pre-existing disease", "exclusion", "coverage", "claim", "deductible",
	"premium", "waiting period", "renewal", "termination", "policy",
	"insurance", "medical", "hospitalization", "treatment", "expenses",
}

// RelevantSingleWords is the general relevant-word list consulted against
// individual query tokens during fallback keyword extraction.
var RelevantSingleWords = map[string]bool{
	"disease": true, "exclusion": true, "coverage": true, "claim": true,
	"deductible": true, "premium": true, "waiting": true, "renewal": true,
	"termination": true, "policy": true, "insurance": true, "medical": true,
	"hospital": true, "treatment": true, "expense": true, "limit": true,
	"amount": true, "period": true,
}

// Synonyms maps a canonical token to its recognized surface forms. Longer
// surface forms are matched first by the normalizer to avoid partial
// substitution (e.g. "pre-existing disease" before "disease").
var Synonyms = map[string][]string{
	"preexisting diseases": {
		"pre-existing disease", "ped", "existing illness", "pre-existing condition",
	},
	"coverage": {
		"insurance coverage", "policy coverage", "benefits", "protection",
	},
	"exclusion": {
		"excluded conditions", "not covered", "excluded items", "limitations",
	},
	"claim": {
		"insurance claim", "claim filing", "claim process", "claim submission",
	},
	"deductible": {
		"deductible amount", "deductible limit", "out-of-pocket",
	},
	"premium": {
		"insurance premium", "monthly premium", "annual premium", "payment",
	},
	"waiting period": {
		"waiting time", "wait period", "exclusion period", "initial period",
	},
	"renewal": {
		"policy renewal", "renewal process", "renewal terms", "extension",
	},
	"termination": {
		"policy termination", "cancellation", "end of coverage", "discontinuation",
	},
}
