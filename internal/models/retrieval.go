package models

// RetrievalMethod records which stage produced a RetrievalResult.
type RetrievalMethod string

const (
	RetrievalSemantic        RetrievalMethod = "semantic"
	RetrievalKeywordAnchored RetrievalMethod = "keyword_anchoring"
	RetrievalHybrid          RetrievalMethod = "hybrid"
)

// RetrievalResult is a single ranked candidate surviving the pipeline.
type RetrievalResult struct {
	ChunkID         string
	Text            string
	Metadata        map[string]MetadataValue
	SemanticScore   float64
	KeywordScore    float64
	CombinedScore   float64
	StructuralRank  int // 1 (best) .. 3
	RetrievalMethod RetrievalMethod
	MatchedKeywords []string
}

// SourceRef is the citation-facing projection of a RetrievalResult carried in
// a StructuredResponse.
type SourceRef struct {
	ChunkID       string
	DocumentTitle string
	SectionAnchor string
	SectionTitle  string
	PageNumber    int
	Score         float64
	Method        RetrievalMethod
}
