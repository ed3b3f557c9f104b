package chunk

import (
	"strings"
	"testing"

	"github.com/lexforge/ragengine/internal/models"
)

func TestChunk_PolicySectioning(t *testing.T) {
	text := "1.1 COVERAGE\nThe policy covers hospitalization expenses.\n" +
		"1.2 EXCLUSIONS\nPre-existing disease is excluded for the first year.\n" +
		"2.1 DEDUCTIBLE\nA deductible amount applies per claim."

	c := New(800, 300)
	chunks := c.Chunk("doc1", "Sample Policy", DocTypePolicy, text)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	wantAnchors := []string{"1.1", "1.2", "2.1"}
	for i, want := range wantAnchors {
		if chunks[i].SectionAnchor != want {
			t.Errorf("chunk %d: anchor = %q, want %q", i, chunks[i].SectionAnchor, want)
		}
		if chunks[i].ChunkingMethod != models.ChunkingPolicySection {
			t.Errorf("chunk %d: method = %q, want policy_section", i, chunks[i].ChunkingMethod)
		}
	}
	if !strings.Contains(chunks[1].Text, "Pre-existing disease") {
		t.Errorf("chunk 1 missing expected body: %q", chunks[1].Text)
	}
}

func TestChunk_LegalSectioning(t *testing.T) {
	text := "ARTICLE 1\nThe parties agree to the following terms.\n" +
		"SECTION 2\nEither party may terminate this agreement.\n"

	c := New(800, 300)
	chunks := c.Chunk("doc2", "Sample Contract", DocTypeContract, text)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].ChunkingMethod != models.ChunkingLegalSection {
		t.Errorf("method = %q, want legal_section", chunks[0].ChunkingMethod)
	}
	if chunks[1].SectionAnchor != "2" {
		t.Errorf("anchor = %q, want 2", chunks[1].SectionAnchor)
	}
}

func TestChunk_SlidingWindowFallback(t *testing.T) {
	words := make([]string, 50)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	c := New(20, 5)
	chunks := c.Chunk("doc3", "Untyped Document", DocType("unknown"), text)

	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	for _, ch := range chunks {
		if ch.ChunkingMethod != models.ChunkingSlidingWindow {
			t.Errorf("method = %q, want sliding_window", ch.ChunkingMethod)
		}
		if ch.WordCount > 20 {
			t.Errorf("word count %d exceeds chunk size", ch.WordCount)
		}
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	c := New(800, 300)
	chunks := c.Chunk("doc4", "Empty", DocTypePolicy, "   ")
	if chunks == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks, got %d", len(chunks))
	}
}

func TestChunk_TextIsTrimmed(t *testing.T) {
	text := "1.1 COVERAGE\n  leading and trailing space in body  \n"
	c := New(800, 300)
	chunks := c.Chunk("doc5", "Doc", DocTypePolicy, text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != strings.TrimSpace(chunks[0].Text) {
		t.Errorf("chunk text not trimmed: %q", chunks[0].Text)
	}
}
