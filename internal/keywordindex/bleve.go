package keywordindex

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
)

// chunkDoc is the shape indexed into Bleve: just enough to support term
// document-frequency lookups over chunk text, used to compute the
// specificity quality indicator surfaced in a StructuredResponse.
type chunkDoc struct {
	Text          string `json:"text"`
	DocumentTitle string `json:"document_title"`
}

// TermIndex is a Bleve-backed term index over ingested chunk text, used for
// corpus-level term document-frequency statistics. It complements the
// vector index rather than replacing it: retrieval ranking never depends on
// Bleve's own relevance scoring, only on document-frequency counts.
type TermIndex struct {
	index bleve.Index
}

// NewTermIndex creates or opens a Bleve index at path.
func NewTermIndex(path string) (*TermIndex, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("text", textFieldMapping)
	docMapping.AddFieldMappingsAt("document_title", textFieldMapping)
	im.AddDocumentMapping("chunk", docMapping)
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		idx, err := bleve.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open term index: %w", err)
		}
		return &TermIndex{index: idx}, nil
	}

	idx, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create term index: %w", err)
	}
	return &TermIndex{index: idx}, nil
}

// Index adds or replaces a chunk's text under chunkID.
func (t *TermIndex) Index(chunkID, text, documentTitle string) error {
	return t.index.Index(chunkID, chunkDoc{Text: text, DocumentTitle: documentTitle})
}

// Delete removes a chunk from the term index.
func (t *TermIndex) Delete(chunkID string) error {
	return t.index.Delete(chunkID)
}

// DeleteByDocumentTitle removes every chunk indexed under documentTitle,
// used to keep the term index consistent with atomic document replacement.
func (t *TermIndex) DeleteByDocumentTitle(documentTitle string) error {
	q := bleve.NewMatchQuery(documentTitle)
	q.SetField("document_title")
	req := bleve.NewSearchRequest(q)
	req.Size = 10000
	req.Fields = []string{"document_title"}
	results, err := t.index.Search(req)
	if err != nil {
		return fmt.Errorf("failed to find chunks for document: %w", err)
	}
	for _, hit := range results.Hits {
		if title, _ := hit.Fields["document_title"].(string); title != documentTitle {
			continue
		}
		if err := t.index.Delete(hit.ID); err != nil {
			return err
		}
	}
	return nil
}

// DocFrequency returns the number of chunks whose text contains term.
func (t *TermIndex) DocFrequency(term string) (int, error) {
	q := bleve.NewMatchQuery(term)
	q.SetField("text")
	req := bleve.NewSearchRequest(q)
	req.Size = 1
	results, err := t.index.Search(req)
	if err != nil {
		return 0, fmt.Errorf("failed to search term frequency: %w", err)
	}
	return int(results.Total), nil
}

// Specificity scores a set of matched keywords by how rare they are in the
// corpus: rarer terms (lower document frequency relative to corpus size)
// indicate a more specific match. Returns a value in [0,1].
func (t *TermIndex) Specificity(keywords []string) (float64, error) {
	total, err := t.index.DocCount()
	if err != nil {
		return 0, err
	}
	if total == 0 || len(keywords) == 0 {
		return 0, nil
	}

	var sum float64
	for _, kw := range keywords {
		freq, err := t.DocFrequency(kw)
		if err != nil {
			return 0, err
		}
		rarity := 1 - float64(freq)/float64(total)
		if rarity < 0 {
			rarity = 0
		}
		sum += rarity
	}
	return sum / float64(len(keywords)), nil
}

// DocCount returns the total number of chunks indexed.
func (t *TermIndex) DocCount() (uint64, error) {
	return t.index.DocCount()
}

// Close closes the underlying Bleve index.
func (t *TermIndex) Close() error {
	return t.index.Close()
}
