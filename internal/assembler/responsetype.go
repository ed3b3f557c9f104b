package assembler

import (
	"strings"

	"github.com/lexforge/ragengine/internal/models"
)

// ClassifyResponseType picks a ResponseType from the primary intent plus
// content cues in the answer, matching the closed set of 13 response
// variants.
func ClassifyResponseType(primaryIntent models.Intent, answer string) models.ResponseType {
	lower := strings.ToLower(answer)

	switch {
	case strings.Contains(lower, "excluded") || strings.Contains(lower, "exclusion"):
		return models.ResponseExclusion
	case strings.Contains(lower, "limitation") || strings.Contains(lower, "limited to"):
		return models.ResponseLimitation
	case strings.Contains(lower, "waiting period"):
		return models.ResponseWaitingPeriod
	case strings.Contains(lower, "premium"):
		return models.ResponsePremium
	case strings.Contains(lower, "renewal") || strings.Contains(lower, "renew"):
		return models.ResponseRenewal
	case strings.Contains(lower, "termination") || strings.Contains(lower, "terminate"):
		return models.ResponseTermination
	case strings.Contains(lower, "claim"):
		return models.ResponseClaim
	case strings.Contains(lower, "covered") || strings.Contains(lower, "coverage"):
		return models.ResponseCoverage
	}

	switch primaryIntent {
	case models.IntentExclusion:
		return models.ResponseExclusion
	case models.IntentCoverage:
		return models.ResponseCoverage
	case models.IntentClaim:
		return models.ResponseClaim
	case models.IntentProcedural:
		return models.ResponseProcedural
	case models.IntentFinancial:
		return models.ResponsePremium
	case models.IntentTemporal:
		return models.ResponseWaitingPeriod
	default:
		return models.ResponseDirectAnswer
	}
}
