package assembler

import (
	"fmt"

	"github.com/lexforge/ragengine/internal/models"
)

// BuildWarnings emits structured warnings for low confidence, a threshold
// at or below the configured floor, fallback usage, and unanswered
// sub-questions.
func BuildWarnings(confidence models.ConfidenceBreakdown, effectiveThreshold, thresholdMin float64, usedFallback bool, unaddressed []string, sourceCount int) []models.Warning {
	var warnings []models.Warning

	if confidence.Level == models.ConfidenceLow || confidence.Level == models.ConfidenceVeryLow {
		warnings = append(warnings, models.Warning{
			Type:       models.WarningLowConfidence,
			Severity:   models.SeverityWarning,
			Message:    "The retrieved sources have limited relevance to this question.",
			Suggestion: "Consider rephrasing the question or uploading additional documents.",
		})
	}

	if effectiveThreshold <= thresholdMin {
		warnings = append(warnings, models.Warning{
			Type:       models.WarningLowThreshold,
			Severity:   models.SeverityInfo,
			Message:    "The similarity threshold was relaxed to the configured minimum to surface any results.",
			Suggestion: "Answers may be less directly on-topic than usual.",
		})
	}

	if usedFallback {
		warnings = append(warnings, models.Warning{
			Type:       models.WarningFallbackUsed,
			Severity:   models.SeverityInfo,
			Message:    "Semantic retrieval found no matches; results were found by direct keyword search instead.",
			Suggestion: "",
		})
	}

	if sourceCount == 0 {
		warnings = append(warnings, models.Warning{
			Type:     models.WarningNoSources,
			Severity: models.SeverityError,
			Message:  "No relevant sources were found for this question.",
		})
	} else if sourceCount < 3 {
		warnings = append(warnings, models.Warning{
			Type:     models.WarningLimitedSources,
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("Only %d source(s) contributed to this answer.", sourceCount),
		})
	}

	for _, sq := range unaddressed {
		warnings = append(warnings, models.Warning{
			Type:     models.WarningSubQuestionUnaddressed,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("The answer may not address: %q", sq),
		})
	}

	return warnings
}

// BuildRecommendations suggests caller-facing next steps based on the
// outcome.
func BuildRecommendations(confidence models.ConfidenceBreakdown, sourceCount int) []models.Recommendation {
	var recs []models.Recommendation

	if confidence.Level == models.ConfidenceVeryLow || sourceCount == 0 {
		recs = append(recs, models.Recommendation{Message: "Try rephrasing the question with more specific policy or contract terms."})
	}
	if sourceCount == 0 {
		recs = append(recs, models.Recommendation{Message: "Upload the relevant policy or contract document if it has not been ingested yet."})
	}
	return recs
}
