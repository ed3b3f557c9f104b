package models

// MetadataValue is any value legal in IndexRecord metadata: string, number,
// bool, or a list-of-strings. Dictionaries are never legal values; anything
// that would naturally be a mapping (e.g. counted terms) must be flattened to
// a list with repetition instead of aggregated into a nested structure.
type MetadataValue = interface{}

// IndexRecord is the unit written to and read from the vector index.
type IndexRecord struct {
	ChunkID   string
	Embedding []float32
	Metadata  map[string]MetadataValue
}

// ValidateMetadata reports whether every value in m is a legal MetadataValue:
// string, bool, a numeric type, or []string. A nil map is valid (no metadata).
func ValidateMetadata(m map[string]MetadataValue) error {
	for k, v := range m {
		if !isScalarOrList(v) {
			return &InvariantError{Field: k, Reason: "metadata value must be a string, number, boolean, or list of strings"}
		}
	}
	return nil
}

func isScalarOrList(v MetadataValue) bool {
	switch v.(type) {
	case string, bool, int, int32, int64, float32, float64:
		return true
	case []string:
		return true
	default:
		return false
	}
}

// InvariantError names a data-model invariant that was violated.
type InvariantError struct {
	Field  string
	Reason string
}

func (e *InvariantError) Error() string {
	return "invariant violated on " + e.Field + ": " + e.Reason
}

// ChunkToRecord builds the IndexRecord written for a chunk. legal_terms is
// carried as a flat, possibly-empty list of occurrences, never a mapping.
func ChunkToRecord(c *Chunk, embedding []float32) *IndexRecord {
	terms := c.LegalTerms
	if terms == nil {
		terms = []string{}
	}
	return &IndexRecord{
		ChunkID:   c.ID,
		Embedding: embedding,
		Metadata: map[string]MetadataValue{
			"document_id":       c.DocumentID,
			"document_title":    c.DocumentTitle,
			"section_anchor":    c.SectionAnchor,
			"section_title":     c.SectionTitle,
			"page_number":       c.PageNumber,
			"word_count":        c.WordCount,
			"legal_density":     c.LegalDensity,
			"legal_terms":       terms,
			"chunking_method":   string(c.ChunkingMethod),
			"is_legal_document": c.IsLegalDocument,
			"text":              c.Text,
			"chunk_index":       c.ChunkIndex,
		},
	}
}
