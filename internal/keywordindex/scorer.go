// Package keywordindex provides the keyword-relevance scoring formula shared
// by Stage 2 of the hybrid retriever and the keyword-anchoring fallback, and
// a Bleve-backed term index used for corpus-level statistics.
package keywordindex

import "strings"

// RelevanceScore computes the keyword-anchoring relevance of text against a
// set of keywords: density (0.4) + coverage (0.4) + position bonus (0.2).
// These weights are the intra-keyword-score weights and must never be
// confused with the semantic/keyword fusion weights used in Stage 3.
func RelevanceScore(text string, keywords []string) (float64, []string) {
	if len(keywords) == 0 {
		return 0, nil
	}

	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	if len(words) == 0 {
		return 0, nil
	}

	var matched []string
	occurrences := 0
	earliestIdx := -1

	for _, kw := range keywords {
		kwLower := strings.ToLower(kw)
		count := strings.Count(lower, kwLower)
		if count == 0 {
			continue
		}
		matched = append(matched, kw)
		occurrences += count

		idx := strings.Index(lower, kwLower)
		if earliestIdx == -1 || idx < earliestIdx {
			earliestIdx = idx
		}
	}

	if len(matched) == 0 {
		return 0, nil
	}

	density := float64(occurrences) / float64(len(words))
	coverage := float64(len(matched)) / float64(len(keywords))
	normalizedPosition := float64(earliestIdx) / float64(len(lower))
	positionBonus := (1 - normalizedPosition) * 0.2

	score := density*0.4 + coverage*0.4 + positionBonus
	if score > 1 {
		score = 1
	}
	return score, matched
}
