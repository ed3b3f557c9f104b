// Package models holds the data types shared across the ingestion and query
// pipelines: chunks and index records on the write side, query context and
// retrieval results on the read side, and the structured response returned
// to callers.
package models

import "fmt"

// ChunkingMethod identifies which strategy produced a Chunk.
type ChunkingMethod string

const (
	ChunkingPolicySection ChunkingMethod = "policy_section"
	ChunkingLegalSection  ChunkingMethod = "legal_section"
	ChunkingSlidingWindow ChunkingMethod = "sliding_window"
)

// Chunk is a contiguous text fragment produced by the Chunker. It is created
// once during ingestion, never mutated, and deleted only when its owning
// document is deleted.
type Chunk struct {
	ID              string
	DocumentID      string
	DocumentTitle   string
	SectionAnchor   string // e.g. "1.2"; empty when not section-derived
	SectionTitle    string
	PageNumber      int // 0 when unknown
	Text            string
	WordCount       int
	LegalDensity    float64
	LegalTerms      []string // flat list of occurrences, one entry per hit, order preserved
	ChunkingMethod  ChunkingMethod
	IsLegalDocument bool
	ChunkIndex      int
}

// ChunkID builds the stable identifier for a positionally-derived chunk.
func ChunkID(docID string, index int) string {
	return fmt.Sprintf("%s:%d", docID, index)
}

// SectionChunkID builds the stable identifier for a structure-derived chunk.
func SectionChunkID(docID, anchor string) string {
	return fmt.Sprintf("%s:section_%s", docID, anchor)
}
