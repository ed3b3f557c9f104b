// Package ingest orchestrates the write path: chunk a document, embed its
// chunks, atomically replace the document's records in the vector index, and
// then refresh the term index. A query running concurrently with a re-ingest
// always sees either the old or the new vector-index snapshot of the
// document, never a mixture. The term-index refresh is a separate,
// non-atomic step whose failures are reported as warnings.
package ingest

import (
	"context"
	"fmt"

	"github.com/lexforge/ragengine/internal/chunk"
	"github.com/lexforge/ragengine/internal/embedding"
	"github.com/lexforge/ragengine/internal/keywordindex"
	"github.com/lexforge/ragengine/internal/models"
	"github.com/lexforge/ragengine/internal/vectorindex"
	"go.uber.org/zap"
)

// Result is the outcome of a single ingest call.
type Result struct {
	ChunksWritten int
	Warnings      []string
}

// Ingester turns raw document text into indexed chunks.
type Ingester struct {
	chunker   *chunk.Chunker
	embedder  embedding.Embedder
	index     vectorindex.Index
	termIndex *keywordindex.TermIndex
	logger    *zap.Logger
}

// New builds an Ingester. termIndex and logger may be nil.
func New(chunker *chunk.Chunker, embedder embedding.Embedder, index vectorindex.Index, termIndex *keywordindex.TermIndex, logger *zap.Logger) *Ingester {
	return &Ingester{chunker: chunker, embedder: embedder, index: index, termIndex: termIndex, logger: logger}
}

// Ingest chunks rawText, embeds every chunk, and atomically replaces every
// existing record for docID with the new set. Idempotent: calling Ingest
// twice with identical inputs produces the same IndexRecords (same ids,
// same metadata), because chunk IDs are derived from document ID and
// position, not from a fresh random identifier.
func (in *Ingester) Ingest(ctx context.Context, docID, docTitle string, docType chunk.DocType, rawText string, extraMetadata map[string]models.MetadataValue) (Result, error) {
	if docID == "" {
		return Result{}, fmt.Errorf("ingest: doc_id must not be empty")
	}

	chunks := in.chunker.Chunk(docID, docTitle, docType, rawText)
	if len(chunks) == 0 {
		if _, err := in.index.DeleteByFilter(ctx, vectorindex.Filter{"document_id": docID}); err != nil {
			return Result{}, fmt.Errorf("ingest: failed to clear existing document: %w", err)
		}
		return Result{ChunksWritten: 0}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	embeddings, err := in.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return Result{}, fmt.Errorf("ingest: embedding failed: %w", err)
	}

	var warnings []string
	records := make([]*models.IndexRecord, len(chunks))
	for i, c := range chunks {
		if embedding.IsZeroVector(embeddings[i]) {
			return Result{}, fmt.Errorf("ingest: %w for chunk %s", embedding.ErrZeroVector, c.ID)
		}
		rec := models.ChunkToRecord(c, embeddings[i])
		for k, v := range extraMetadata {
			rec.Metadata[k] = v
		}
		if err := models.ValidateMetadata(rec.Metadata); err != nil {
			return Result{}, fmt.Errorf("ingest: %w", err)
		}
		records[i] = rec
	}

	if _, err := in.index.ReplaceDocument(ctx, vectorindex.Filter{"document_id": docID}, records); err != nil {
		return Result{}, fmt.Errorf("ingest: failed to replace document: %w", err)
	}

	if in.termIndex != nil {
		if err := in.termIndex.DeleteByDocumentTitle(docTitle); err != nil {
			warnings = append(warnings, fmt.Sprintf("term index cleanup failed: %v", err))
		}
		for _, c := range chunks {
			if err := in.termIndex.Index(c.ID, c.Text, docTitle); err != nil {
				warnings = append(warnings, fmt.Sprintf("term index write failed for %s: %v", c.ID, err))
			}
		}
	}

	if in.logger != nil {
		in.logger.Info("document ingested", zap.String("document_id", docID), zap.Int("chunks", len(chunks)))
	}

	return Result{ChunksWritten: len(chunks), Warnings: warnings}, nil
}

// Delete removes every record belonging to docID.
func (in *Ingester) Delete(ctx context.Context, docID string) error {
	_, err := in.index.DeleteByFilter(ctx, vectorindex.Filter{"document_id": docID})
	return err
}
