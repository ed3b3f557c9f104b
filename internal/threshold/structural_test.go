package threshold

import (
	"testing"

	"github.com/lexforge/ragengine/internal/models"
)

func TestRank_CategoryCoOccurrence(t *testing.T) {
	got := Rank([]string{"exclusions"}, "This clause lists excluded conditions for the policy.")
	if got != 1 {
		t.Errorf("Rank() = %d, want 1", got)
	}
}

func TestRank_GenericOverlap(t *testing.T) {
	got := Rank([]string{"premiums"}, "See Section 4 for exclusion details.")
	if got != 2 {
		t.Errorf("Rank() = %d, want 2", got)
	}
}

func TestRank_NoOverlap(t *testing.T) {
	got := Rank([]string{"premiums"}, "The office is located downtown.")
	if got != 3 {
		t.Errorf("Rank() = %d, want 3", got)
	}
}

func TestApplyIntentBoost_BucketsNeverCross(t *testing.T) {
	results := []*models.RetrievalResult{
		{ChunkID: "b", StructuralRank: 2, CombinedScore: 0.95, Metadata: map[string]models.MetadataValue{"section_title": "Waiting Period"}},
		{ChunkID: "a", StructuralRank: 1, CombinedScore: 0.10},
	}
	ApplyIntentBoost(results, models.IntentTemporal)

	if results[0].StructuralRank != 1 {
		t.Errorf("rank-1 result should stay first even after boost, got chunk %q first", results[0].ChunkID)
	}
}
