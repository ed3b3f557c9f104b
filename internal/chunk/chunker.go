// Package chunk splits raw document text into models.Chunk fragments during
// ingestion, choosing a strategy from the document type and falling back to
// a fixed-size sliding window when no structural markers are found.
package chunk

import (
	"regexp"
	"strings"

	"github.com/lexforge/ragengine/internal/domain"
	"github.com/lexforge/ragengine/internal/models"
)

// DocType is the ingestion-time hint used to pick a chunking strategy.
type DocType string

const (
	DocTypePolicy        DocType = "policy"
	DocTypeInsurancePolicy DocType = "insurance_policy"
	DocTypeHealthPolicy  DocType = "health_policy"
	DocTypeContract      DocType = "contract"
	DocTypeAgreement     DocType = "agreement"
	DocTypeLegalContract DocType = "legal_contract"
)

var policyHeadingRe = regexp.MustCompile(`(?m)^(\d+(?:\.\d+)?)\s+([A-Z][^\n]*)$`)

var legalHeadingRe = regexp.MustCompile(`(?m)^(?:(ARTICLE|SECTION|CLAUSE)\s+(\d+)|(\d+)\.\s+([A-Z][A-Z0-9 ,'&/-]*))$`)

// Chunker turns raw document text into an ordered slice of chunks.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// New builds a Chunker with the given sliding-window size and overlap, in
// tokens. Both must be positive; the caller (config.ApplyDefaults) is
// responsible for supplying sane values.
func New(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Chunk splits text according to the strategy implied by docType, falling
// back to sliding_window when no structural heading is found. Empty input
// yields an empty, non-nil slice.
func (c *Chunker) Chunk(docID, docTitle string, docType DocType, text string) []*models.Chunk {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []*models.Chunk{}
	}

	switch docType {
	case DocTypePolicy, DocTypeInsurancePolicy, DocTypeHealthPolicy:
		if chunks := c.chunkByHeadings(docID, docTitle, trimmed, policyHeadingRe, models.ChunkingPolicySection, headingAnchorPolicy); len(chunks) > 0 {
			return chunks
		}
	case DocTypeContract, DocTypeAgreement, DocTypeLegalContract:
		if chunks := c.chunkByHeadings(docID, docTitle, trimmed, legalHeadingRe, models.ChunkingLegalSection, headingAnchorLegal); len(chunks) > 0 {
			return chunks
		}
	}

	return c.slidingWindow(docID, docTitle, trimmed)
}

func headingAnchorPolicy(m []string) (anchor, title string) {
	return m[1], strings.TrimSpace(m[2])
}

func headingAnchorLegal(m []string) (anchor, title string) {
	if m[2] != "" {
		return m[2], strings.TrimSpace(m[1] + " " + m[2])
	}
	return m[3], strings.TrimSpace(m[4])
}

type headingExtractor func(m []string) (anchor, title string)

func (c *Chunker) chunkByHeadings(docID, docTitle, text string, re *regexp.Regexp, method models.ChunkingMethod, extract headingExtractor) []*models.Chunk {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	chunks := make([]*models.Chunk, 0, len(locs))
	for i, loc := range locs {
		start := loc[0]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[start:end])
		if body == "" {
			continue
		}

		groups := submatches(text, loc)
		anchor, title := extract(groups)

		chunk := buildChunk(models.SectionChunkID(docID, anchor), docID, docTitle, anchor, title, method, body, i)
		chunks = append(chunks, chunk)
	}
	return chunks
}

func submatches(text string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			out[i/2] = ""
			continue
		}
		out[i/2] = text[loc[i]:loc[i+1]]
	}
	return out
}

func (c *Chunker) slidingWindow(docID, docTitle, text string) []*models.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []*models.Chunk{}
	}

	step := c.chunkSize - c.chunkOverlap
	if step <= 0 {
		step = c.chunkSize
	}

	var chunks []*models.Chunk
	for start, index := 0, 0; start < len(words); start += step {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		body := strings.Join(words[start:end], " ")
		chunks = append(chunks, buildChunk(models.ChunkID(docID, index), docID, docTitle, "", "", models.ChunkingSlidingWindow, body, index))
		index++
		if end == len(words) {
			break
		}
	}
	return chunks
}

func buildChunk(id, docID, docTitle, anchor, title string, method models.ChunkingMethod, body string, index int) *models.Chunk {
	body = strings.TrimSpace(body)
	words := strings.Fields(body)
	density, terms := legalDensity(words)

	return &models.Chunk{
		ID:              id,
		DocumentID:      docID,
		DocumentTitle:   docTitle,
		SectionAnchor:   anchor,
		SectionTitle:    title,
		Text:            body,
		WordCount:       len(words),
		LegalDensity:    density,
		LegalTerms:      terms,
		ChunkingMethod:  method,
		IsLegalDocument: density > 0.01,
		ChunkIndex:      index,
	}
}

// legalDensity scans words for occurrences of domain.LegalTerms (including
// multi-word terms) and returns the occurrence density and a flat,
// order-preserving list of the terms found, one entry per occurrence.
func legalDensity(words []string) (float64, []string) {
	if len(words) == 0 {
		return 0, []string{}
	}
	lower := strings.ToLower(strings.Join(words, " "))

	var terms []string
	for _, term := range domain.LegalTerms {
		count := strings.Count(lower, term)
		for i := 0; i < count; i++ {
			terms = append(terms, term)
		}
	}
	if terms == nil {
		terms = []string{}
	}
	return float64(len(terms)) / float64(len(words)), terms
}
