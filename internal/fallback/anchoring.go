// Package fallback implements the keyword-anchoring fallback retrieval path,
// activated when semantic retrieval yields zero Stage-4 survivors.
package fallback

import (
	"context"
	"strings"

	"github.com/lexforge/ragengine/internal/domain"
	"github.com/lexforge/ragengine/internal/keywordindex"
	"github.com/lexforge/ragengine/internal/models"
	"github.com/lexforge/ragengine/internal/threshold"
	"github.com/lexforge/ragengine/internal/vectorindex"
)

// ExtractKeywords unions surface forms of every matched domain category, the
// fixed general legal terms literally present in the query, and query
// tokens found in the general relevant-word list. The result preserves
// first-seen order and is deduplicated case-insensitively.
func ExtractKeywords(normalizedQuery string, matchedCategories []string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(kw string) {
		key := strings.ToLower(kw)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, kw)
	}

	for _, category := range matchedCategories {
		for _, form := range domain.Dictionary[category] {
			if strings.Contains(normalizedQuery, form) {
				add(form)
			}
		}
	}

	for _, term := range domain.GeneralLegalTerms {
		if strings.Contains(normalizedQuery, term) {
			add(term)
		}
	}

	for _, word := range strings.Fields(normalizedQuery) {
		word = strings.Trim(word, ".,;:!?")
		if domain.RelevantSingleWords[word] {
			add(word)
		}
	}

	return out
}

// Search scans up to maxVectors records from idx matching filter, scores
// each by keyword-anchoring relevance, and returns the top maxResults
// ordered by structural rank then descending score, ties broken by chunk_id
// ascending. matchedCategories drives the same structural-rank computation
// used by the main retrieval path, so a fallback hit whose text co-occurs
// with a matched category's surface form still ranks ahead of one that only
// shares a generic legal term. An empty return means the caller should
// render a no-results response.
func Search(ctx context.Context, idx vectorindex.Index, keywords []string, matchedCategories []string, filter vectorindex.Filter, maxVectors, maxResults int) ([]*models.RetrievalResult, error) {
	if len(keywords) == 0 {
		return []*models.RetrievalResult{}, nil
	}

	records, err := idx.Scan(ctx, filter, maxVectors)
	if err != nil {
		return nil, err
	}

	var scored []*models.RetrievalResult
	for _, r := range records {
		text, _ := r.Metadata["text"].(string)
		if text == "" {
			continue
		}
		score, matched := keywordindex.RelevanceScore(text, keywords)
		if score <= 0 {
			continue
		}
		scored = append(scored, &models.RetrievalResult{
			ChunkID:         r.ChunkID,
			Text:            text,
			Metadata:        r.Metadata,
			SemanticScore:   0,
			KeywordScore:    score,
			CombinedScore:   score,
			StructuralRank:  threshold.Rank(matchedCategories, text),
			RetrievalMethod: models.RetrievalKeywordAnchored,
			MatchedKeywords: matched,
		})
	}

	sortByScoreThenID(scored)

	if maxResults > 0 && len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	if scored == nil {
		scored = []*models.RetrievalResult{}
	}
	return scored, nil
}

// sortByScoreThenID orders results by structural rank ascending, then by
// combined score descending, then by chunk_id ascending as a final
// tie-break.
func sortByScoreThenID(results []*models.RetrievalResult) {
	less := func(a, b *models.RetrievalResult) bool {
		if a.StructuralRank != b.StructuralRank {
			return a.StructuralRank < b.StructuralRank
		}
		if a.CombinedScore != b.CombinedScore {
			return a.CombinedScore > b.CombinedScore
		}
		return a.ChunkID < b.ChunkID
	}
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && less(results[j], results[j-1]); j-- {
			results[j-1], results[j] = results[j], results[j-1]
		}
	}
}
