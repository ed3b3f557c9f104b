package keywordindex

import "testing"

func TestRelevanceScore_NoMatch(t *testing.T) {
	score, matched := RelevanceScore("no relevant content here", []string{"deductible"})
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
	if len(matched) != 0 {
		t.Errorf("matched = %v, want empty", matched)
	}
}

func TestRelevanceScore_MatchIncreasesWithCoverage(t *testing.T) {
	single, _ := RelevanceScore("the deductible amount applies per claim", []string{"deductible", "claim"})
	partial, _ := RelevanceScore("the deductible amount applies", []string{"deductible", "claim"})
	if single <= partial {
		t.Errorf("score with full coverage (%v) should exceed partial coverage (%v)", single, partial)
	}
}

func TestRelevanceScore_EmptyKeywords(t *testing.T) {
	score, _ := RelevanceScore("some text", nil)
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

// TestRelevanceScore_PositionBonusAppliedOnceFromEarliestMatch pins down the
// 0.4/0.4/0.2 density/coverage/position weighting with an exact expected
// score, guarding against the position bonus being summed per matched
// keyword instead of taken once from the earliest occurrence.
func TestRelevanceScore_PositionBonusAppliedOnceFromEarliestMatch(t *testing.T) {
	text := "alpha beta gamma delta"

	single, _ := RelevanceScore(text, []string{"alpha"})
	if want := 0.7; single != want {
		t.Errorf("single-keyword score = %v, want %v (density 0.25*0.4 + coverage 1.0*0.4 + position 0.2)", single, want)
	}

	both, _ := RelevanceScore(text, []string{"alpha", "beta"})
	if want := 0.8; both != want {
		t.Errorf("two-keyword score = %v, want %v (density 0.5*0.4 + coverage 1.0*0.4 + a single 0.2 position bonus from the earliest match)", both, want)
	}
}
