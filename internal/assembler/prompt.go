package assembler

import (
	"fmt"
	"strings"

	"github.com/lexforge/ragengine/internal/models"
)

const systemDirective = `You are a legal and insurance document assistant. Answer strictly from the
provided context; never invent facts not present in it. Cite the clause,
section, or article you draw each statement from. When the question bundles
multiple sub-questions, address each one separately and in order. Do not
truncate mid-sentence; finish every thought you start.`

// BuildPrompt renders the system directive and a user block containing the
// formatted context blocks and the original, un-normalized question.
func BuildPrompt(qc models.QueryContext, originalQuestion string, blocks []ContextBlock) (system, user string) {
	var sb strings.Builder
	sb.WriteString("Context:\n\n")
	for i, b := range blocks {
		fmt.Fprintf(&sb, "[%d] %s\n\n", i+1, RenderBlock(b))
	}

	sb.WriteString("Question")
	if len(qc.SubQuestions) > 1 {
		sb.WriteString(" (multiple parts)")
	}
	sb.WriteString(":\n")
	for _, sq := range qc.SubQuestions {
		fmt.Fprintf(&sb, "Q: %s\n", sq)
	}
	fmt.Fprintf(&sb, "\nOriginal question: %s\n", originalQuestion)

	return systemDirective, sb.String()
}
