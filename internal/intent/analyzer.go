// Package intent classifies a normalized query into one of the closed
// intent categories, estimates confidence, and buckets query complexity.
package intent

import (
	"strings"

	"github.com/lexforge/ragengine/internal/domain"
	"github.com/lexforge/ragengine/internal/models"
	"github.com/lexforge/ragengine/internal/normalize"
)

// Result is the outcome of analyzing a single normalized query.
type Result struct {
	Intent            models.Intent
	SecondaryIntents  []models.Intent
	Confidence        float64
	Complexity        models.Complexity
	MatchedCategories []string
	SubQuestions      []string
}

// Analyze classifies normalized against the domain dictionary. An empty
// query returns intent=information_seeking with confidence 0, per contract.
func Analyze(normalized string) Result {
	subQuestions := normalize.SplitSubQuestions(normalized)

	if strings.TrimSpace(normalized) == "" {
		return Result{
			Intent:            models.IntentInformationSeeking,
			Confidence:        0,
			Complexity:        models.ComplexityLow,
			MatchedCategories: []string{},
			SubQuestions:      subQuestions,
		}
	}

	categoryScores := matchCategories(normalized)

	matched := make([]string, 0, len(categoryScores))
	for cat := range categoryScores {
		matched = append(matched, cat)
	}

	primary, secondary := classify(categoryScores)
	confidence := float64(len(categoryScores)) / float64(max(1, len(domain.Dictionary)))
	complexity := classifyComplexity(normalized, subQuestions, len(categoryScores))

	return Result{
		Intent:            primary,
		SecondaryIntents:  secondary,
		Confidence:        confidence,
		Complexity:        complexity,
		MatchedCategories: matched,
		SubQuestions:      subQuestions,
	}
}

// matchCategories counts, per domain category, how many of its surface
// forms occur in the query.
func matchCategories(query string) map[string]int {
	scores := make(map[string]int)
	for category, forms := range domain.Dictionary {
		count := 0
		for _, form := range forms {
			count += strings.Count(query, form)
		}
		if count > 0 {
			scores[category] = count
		}
	}
	return scores
}

// classify picks the primary intent by highest category match count,
// breaking ties with models.IntentPriority, and collects every other
// matched category's intent as secondary.
func classify(categoryScores map[string]int) (models.Intent, []models.Intent) {
	if len(categoryScores) == 0 {
		return models.IntentInformationSeeking, nil
	}

	intentScores := make(map[models.Intent]int)
	for category, count := range categoryScores {
		in := domain.CategoryToIntent[category]
		intentScores[in] += count
	}

	best := -1
	var primary models.Intent
	for _, in := range models.IntentPriority {
		if score, ok := intentScores[in]; ok && score > best {
			best = score
			primary = in
		}
	}

	var secondary []models.Intent
	for _, in := range models.IntentPriority {
		if in == primary {
			continue
		}
		if _, ok := intentScores[in]; ok {
			secondary = append(secondary, in)
		}
	}

	return primary, secondary
}

// classifyComplexity buckets query complexity. Three or more matched
// categories is High on its own; otherwise complexity is a 2-of-3 score
// over word count, sub-question count, and category count, with more than
// one sub-question alone enough to reach at least Medium.
func classifyComplexity(query string, subQuestions []string, matchedCategories int) models.Complexity {
	if matchedCategories >= 3 {
		return models.ComplexityHigh
	}

	wordCount := len(strings.Fields(query))

	score := 0
	if wordCount > 25 {
		score++
	}
	if len(subQuestions) > 1 {
		score++
	}
	if matchedCategories > 1 {
		score++
	}

	switch {
	case score >= 2:
		return models.ComplexityHigh
	case score >= 1:
		return models.ComplexityMedium
	default:
		return models.ComplexityLow
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
