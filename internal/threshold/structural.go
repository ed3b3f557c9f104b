package threshold

import (
	"sort"
	"strings"

	"github.com/lexforge/ragengine/internal/domain"
	"github.com/lexforge/ragengine/internal/models"
)

var genericLegalTerms = []string{"exclusion", "limitation", "not covered"}
var structuralHeaders = []string{"section", "article", "clause", "subsection"}

// Rank computes the structural rank of a candidate's text against the
// query's matched domain categories: 1 when a matched category's surface
// form also appears in the text, 2 when only a generic legal term or
// structural header overlaps, 3 otherwise.
func Rank(matchedCategories []string, text string) int {
	lower := strings.ToLower(text)

	for _, category := range matchedCategories {
		for _, form := range domain.Dictionary[category] {
			if strings.Contains(lower, form) {
				return 1
			}
		}
	}

	for _, term := range genericLegalTerms {
		if strings.Contains(lower, term) {
			return 2
		}
	}
	for _, header := range structuralHeaders {
		if strings.Contains(lower, header) {
			return 2
		}
	}

	return 3
}

// ApplyIntentBoost re-sorts results within each structural-rank bucket after
// applying up to a +0.1 multiplicative bonus to CombinedScore for results
// whose section_title metadata matches primaryIntent; no other metadata key
// (such as a category) is consulted. Buckets never cross: a rank-2 result
// never sorts ahead of a rank-1 result.
func ApplyIntentBoost(results []*models.RetrievalResult, primaryIntent models.Intent) {
	buckets := map[int][]*models.RetrievalResult{}
	for _, r := range results {
		if matchesIntent(r, primaryIntent) {
			r.CombinedScore = r.CombinedScore * 1.1
			if r.CombinedScore > 1 {
				r.CombinedScore = 1
			}
		}
		buckets[r.StructuralRank] = append(buckets[r.StructuralRank], r)
	}

	for rank, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].CombinedScore != bucket[j].CombinedScore {
				return bucket[i].CombinedScore > bucket[j].CombinedScore
			}
			return bucket[i].ChunkID < bucket[j].ChunkID
		})
		buckets[rank] = bucket
	}

	i := 0
	for rank := 1; rank <= 3; rank++ {
		for _, r := range buckets[rank] {
			results[i] = r
			i++
		}
	}
}

func matchesIntent(r *models.RetrievalResult, primaryIntent models.Intent) bool {
	sectionTitle, _ := r.Metadata["section_title"].(string)
	sectionTitle = strings.ToLower(sectionTitle)
	for fragment, in := range domain.SectionTitleIntents {
		if in == primaryIntent && strings.Contains(sectionTitle, fragment) {
			return true
		}
	}
	return false
}
