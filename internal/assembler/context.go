// Package assembler builds the final StructuredResponse from a QueryContext,
// the ranked retrieval results, the effective threshold, and the LLM's raw
// answer: context formatting, prompt construction, completeness checking,
// citation extraction, confidence scoring, response typing, warnings, and
// the explainability record.
package assembler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexforge/ragengine/internal/models"
)

var clauseIdentifierRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)clause\s+\d+`),
	regexp.MustCompile(`(?i)section\s+\d+`),
	regexp.MustCompile(`(?i)article\s+\d+`),
	regexp.MustCompile(`(?i)paragraph\s+\d+`),
	regexp.MustCompile(`\b\d+\.\d+\b`),
	regexp.MustCompile(`\b\d+[a-z]\b`),
}

// ContextBlock is a single formatted source block fed to the LLM prompt.
type ContextBlock struct {
	ChunkID           string
	DocumentTitle     string
	SectionAnchor     string
	SectionTitle      string
	PageNumber        int
	ClauseIdentifiers []string
	Text              string
}

// FormatContext builds one ContextBlock per retrieval result, in order.
func FormatContext(results []*models.RetrievalResult) []ContextBlock {
	blocks := make([]ContextBlock, 0, len(results))
	for _, r := range results {
		title, _ := r.Metadata["document_title"].(string)
		anchor, _ := r.Metadata["section_anchor"].(string)
		secTitle, _ := r.Metadata["section_title"].(string)
		page, _ := r.Metadata["page_number"].(int)

		blocks = append(blocks, ContextBlock{
			ChunkID:           r.ChunkID,
			DocumentTitle:     title,
			SectionAnchor:     anchor,
			SectionTitle:      secTitle,
			PageNumber:        page,
			ClauseIdentifiers: extractClauseIdentifiers(r.Text),
			Text:              r.Text,
		})
	}
	return blocks
}

func extractClauseIdentifiers(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, re := range clauseIdentifierRes {
		for _, m := range re.FindAllString(text, -1) {
			key := strings.ToLower(m)
			if !seen[key] {
				seen[key] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// RenderBlock renders a ContextBlock as the text handed to the LLM.
func RenderBlock(b ContextBlock) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s", b.DocumentTitle)
	if b.SectionAnchor != "" {
		fmt.Fprintf(&sb, ", Section %s", b.SectionAnchor)
	}
	if b.SectionTitle != "" {
		fmt.Fprintf(&sb, " (%s)", b.SectionTitle)
	}
	if b.PageNumber > 0 {
		fmt.Fprintf(&sb, ", Page %d", b.PageNumber)
	}
	sb.WriteString("\n")
	sb.WriteString(b.Text)
	return sb.String()
}
