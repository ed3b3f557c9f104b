package retrieval

// Fuse computes a candidate's combined score from its semantic and keyword
// scores. When hybridEnabled is false, combined_score is exactly the
// semantic score: keywordWeight and semanticWeight are never consulted in
// that case, so a caller cannot accidentally blend them. These fusion
// weights (default 0.7/0.3) are distinct from the intra-keyword-score
// density/coverage/position weights used in keywordindex.RelevanceScore, and
// must never be conflated with them.
func Fuse(semanticScore, keywordScore, semanticWeight, keywordWeight float64, hybridEnabled bool) float64 {
	if !hybridEnabled {
		return semanticScore
	}
	return semanticWeight*semanticScore + keywordWeight*keywordScore
}
