package keywordindex

import (
	"path/filepath"
	"testing"
)

func newTestTermIndex(t *testing.T) *TermIndex {
	t.Helper()
	idx, err := NewTermIndex(filepath.Join(t.TempDir(), "bleve"))
	if err != nil {
		t.Fatalf("NewTermIndex: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestTermIndex_IndexAndDocFrequency(t *testing.T) {
	idx := newTestTermIndex(t)

	if err := idx.Index("doc1:0", "this policy excludes pre-existing disease claims", "Health Policy"); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if err := idx.Index("doc1:1", "the deductible amount is fixed annually", "Health Policy"); err != nil {
		t.Fatalf("Index: %v", err)
	}

	freq, err := idx.DocFrequency("disease")
	if err != nil {
		t.Fatalf("DocFrequency: %v", err)
	}
	if freq != 1 {
		t.Errorf("expected 1 matching chunk, got %d", freq)
	}

	count, err := idx.DocCount()
	if err != nil {
		t.Fatalf("DocCount: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 indexed chunks, got %d", count)
	}
}

func TestTermIndex_DeleteByDocumentTitle(t *testing.T) {
	idx := newTestTermIndex(t)
	_ = idx.Index("doc1:0", "coverage overview", "Health Policy")
	_ = idx.Index("doc1:1", "exclusions list", "Health Policy")
	_ = idx.Index("doc2:0", "unrelated document", "Other Policy")

	if err := idx.DeleteByDocumentTitle("Health Policy"); err != nil {
		t.Fatalf("DeleteByDocumentTitle: %v", err)
	}

	count, err := idx.DocCount()
	if err != nil {
		t.Fatalf("DocCount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining chunk, got %d", count)
	}
}

func TestTermIndex_SpecificityEmptyCorpus(t *testing.T) {
	idx := newTestTermIndex(t)
	score, err := idx.Specificity([]string{"exclusion"})
	if err != nil {
		t.Fatalf("Specificity: %v", err)
	}
	if score != 0 {
		t.Errorf("expected 0 specificity on empty corpus, got %v", score)
	}
}

func TestTermIndex_SpecificityRareTermScoresHigher(t *testing.T) {
	idx := newTestTermIndex(t)
	_ = idx.Index("a", "coverage coverage coverage", "P1")
	_ = idx.Index("b", "coverage coverage coverage", "P2")
	_ = idx.Index("c", "rare arbitration clause", "P3")

	common, err := idx.Specificity([]string{"coverage"})
	if err != nil {
		t.Fatalf("Specificity: %v", err)
	}
	rare, err := idx.Specificity([]string{"arbitration"})
	if err != nil {
		t.Fatalf("Specificity: %v", err)
	}
	if rare <= common {
		t.Errorf("expected rare term specificity (%v) > common term specificity (%v)", rare, common)
	}
}
