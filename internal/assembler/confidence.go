package assembler

import (
	"regexp"
	"strings"

	"github.com/lexforge/ragengine/internal/models"
)

var ordinalMarkerRe = regexp.MustCompile(`^\s*\d+[.)]`)

// UnaddressedSubQuestions returns the sub-questions with no matching ordinal
// marker ("1.", "2)", ...) found in the answer, in the order given.
// Presence-only: it never truncates the answer to make this determination.
func UnaddressedSubQuestions(answer string, subQuestions []string) []string {
	if len(subQuestions) <= 1 {
		return nil
	}

	lines := strings.Split(answer, "\n")
	addressed := make(map[int]bool)
	for _, line := range lines {
		if m := ordinalMarkerRe.FindString(line); m != "" {
			n := extractOrdinal(m)
			if n >= 1 && n <= len(subQuestions) {
				addressed[n] = true
			}
		}
	}

	var missing []string
	for i, sq := range subQuestions {
		if !addressed[i+1] {
			missing = append(missing, sq)
		}
	}
	return missing
}

func extractOrdinal(marker string) int {
	n := 0
	for _, r := range marker {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// ExtractClauseReferences finds every clause identifier in answer and
// records whether it also appears in one of the source chunks, attributing
// it to the first chunk it is found in.
func ExtractClauseReferences(answer string, results []*models.RetrievalResult) []models.ClauseReference {
	identifiers := extractClauseIdentifiers(answer)
	var refs []models.ClauseReference
	for _, id := range identifiers {
		ref := models.ClauseReference{Identifier: id, FoundInResponse: true}
		for _, r := range results {
			if strings.Contains(strings.ToLower(r.Text), strings.ToLower(id)) {
				ref.SourceChunkID = r.ChunkID
				break
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

// ResponseCompleteness scores [0,1] from three signals: the answer ends with
// terminal punctuation, its length relative to the token budget is
// reasonable, and it addresses every sub-question.
func ResponseCompleteness(answer string, subQuestionCount int, unaddressedCount int, maxTokens int) float64 {
	score := 0.0

	trimmed := strings.TrimSpace(answer)
	if trimmed != "" {
		last := trimmed[len(trimmed)-1]
		if last == '.' || last == '!' || last == '?' {
			score += 1.0 / 3
		}
	}

	wordCount := len(strings.Fields(answer))
	budgetWords := maxTokens / 2 // rough tokens-to-words ratio
	if budgetWords <= 0 {
		budgetWords = 1
	}
	lengthRatio := float64(wordCount) / float64(budgetWords)
	switch {
	case lengthRatio >= 0.05 && lengthRatio <= 1.0:
		score += 1.0 / 3
	case lengthRatio > 1.0:
		score += 1.0 / 3
	}

	if subQuestionCount <= 1 || unaddressedCount == 0 {
		score += 1.0 / 3
	} else {
		fraction := 1 - float64(unaddressedCount)/float64(subQuestionCount)
		score += fraction / 3
	}

	if score > 1 {
		score = 1
	}
	return score
}

// SourceRelevance is the mean combined_score of the top-3 (or fewer)
// results.
func SourceRelevance(results []*models.RetrievalResult) float64 {
	if len(results) == 0 {
		return 0
	}
	n := len(results)
	if n > 3 {
		n = 3
	}
	sum := 0.0
	for _, r := range results[:n] {
		sum += r.CombinedScore
	}
	return sum / float64(n)
}

// CitationQuality is citations found divided by sub-question count, clamped
// to [0,1].
func CitationQuality(citationCount, subQuestionCount int) float64 {
	denom := subQuestionCount
	if denom < 1 {
		denom = 1
	}
	q := float64(citationCount) / float64(denom)
	if q > 1 {
		q = 1
	}
	return q
}

// LengthFactor scores how close the answer's length is to the configured
// token budget, in [0,1].
func LengthFactor(answer string, maxTokens int) float64 {
	wordCount := len(strings.Fields(answer))
	budgetWords := maxTokens / 2
	if budgetWords <= 0 {
		return 0
	}
	ratio := float64(wordCount) / float64(budgetWords)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// Overall computes the weighted overall confidence and its level.
func Overall(sourceRelevance, responseCompleteness, citationQuality, lengthFactor float64) models.ConfidenceBreakdown {
	overall := 0.4*sourceRelevance + 0.3*responseCompleteness + 0.2*citationQuality + 0.1*lengthFactor

	var level models.ConfidenceLevel
	switch {
	case overall >= 0.8:
		level = models.ConfidenceHigh
	case overall >= 0.6:
		level = models.ConfidenceMedium
	case overall >= 0.4:
		level = models.ConfidenceLow
	default:
		level = models.ConfidenceVeryLow
	}

	return models.ConfidenceBreakdown{
		Overall:              overall,
		SourceRelevance:      sourceRelevance,
		ResponseCompleteness: responseCompleteness,
		CitationQuality:      citationQuality,
		Level:                level,
	}
}
