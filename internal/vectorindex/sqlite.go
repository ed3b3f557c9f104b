package vectorindex

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lexforge/ragengine/internal/models"
)

// SQLiteIndex is the reference persistent Index backing: vectors and
// metadata are stored as JSON blobs and similarity is computed in Go after
// loading candidate rows, since sqlite has no native vector search. It
// exists to demonstrate what a durable adapter looks like; production
// deployments at real scale would back Index with a dedicated vector store
// instead.
type SQLiteIndex struct {
	db         *sql.DB
	dimensions int
}

// NewSQLiteIndex opens or creates a database at dbPath and initializes the
// schema. Parent directories are created if needed.
func NewSQLiteIndex(dbPath string, dimensions int) (*SQLiteIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("vectorindex: dimensions must be positive")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initIndexSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteIndex{db: db, dimensions: dimensions}, nil
}

func initIndexSchema(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS index_records (
		chunk_id TEXT PRIMARY KEY,
		embedding TEXT NOT NULL,
		metadata TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteIndex) Upsert(ctx context.Context, records []*models.IndexRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO index_records (chunk_id, embedding, metadata) VALUES (?, ?, ?)
		 ON CONFLICT(chunk_id) DO UPDATE SET embedding = excluded.embedding, metadata = excluded.metadata`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if len(r.Embedding) != s.dimensions {
			return fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(r.Embedding), s.dimensions)
		}
		if err := models.ValidateMetadata(r.Metadata); err != nil {
			return err
		}
		embJSON, err := json.Marshal(r.Embedding)
		if err != nil {
			return err
		}
		metaJSON, err := json.Marshal(r.Metadata)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, r.ChunkID, string(embJSON), string(metaJSON)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteIndex) DeleteByFilter(ctx context.Context, filter Filter) (int, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	removed := 0
	for _, r := range all {
		if filter.Match(r.Metadata) {
			if _, err := tx.ExecContext(ctx, `DELETE FROM index_records WHERE chunk_id = ?`, r.ChunkID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, tx.Commit()
}

// ReplaceDocument removes every record matching filter and writes records
// within a single transaction, so a reader's Query/Scan never observes a
// window where the filtered records are entirely absent.
func (s *SQLiteIndex) ReplaceDocument(ctx context.Context, filter Filter, records []*models.IndexRecord) (int, error) {
	for _, r := range records {
		if len(r.Embedding) != s.dimensions {
			return 0, fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(r.Embedding), s.dimensions)
		}
		if err := models.ValidateMetadata(r.Metadata); err != nil {
			return 0, err
		}
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	removed := 0
	for _, r := range all {
		if filter.Match(r.Metadata) {
			if _, err := tx.ExecContext(ctx, `DELETE FROM index_records WHERE chunk_id = ?`, r.ChunkID); err != nil {
				return removed, err
			}
			removed++
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO index_records (chunk_id, embedding, metadata) VALUES (?, ?, ?)
		 ON CONFLICT(chunk_id) DO UPDATE SET embedding = excluded.embedding, metadata = excluded.metadata`)
	if err != nil {
		return removed, err
	}
	defer stmt.Close()

	for _, r := range records {
		embJSON, err := json.Marshal(r.Embedding)
		if err != nil {
			return removed, err
		}
		metaJSON, err := json.Marshal(r.Metadata)
		if err != nil {
			return removed, err
		}
		if _, err := stmt.ExecContext(ctx, r.ChunkID, string(embJSON), string(metaJSON)); err != nil {
			return removed, err
		}
	}

	return removed, tx.Commit()
}

func (s *SQLiteIndex) Query(ctx context.Context, embedding []float32, topK int, filter Filter) ([]ScoredRecord, error) {
	if len(embedding) != s.dimensions {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(embedding), s.dimensions)
	}
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	var scored []ScoredRecord
	for _, r := range all {
		if !filter.Match(r.Metadata) {
			continue
		}
		scored = append(scored, ScoredRecord{Record: r, Score: CosineSimilarity(embedding, r.Embedding)})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Record.ChunkID < scored[j].Record.ChunkID
	})
	if topK > 0 && topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

func (s *SQLiteIndex) Scan(ctx context.Context, filter Filter, limit int) ([]*models.IndexRecord, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ChunkID < all[j].ChunkID })

	var out []*models.IndexRecord
	for _, r := range all {
		if !filter.Match(r.Metadata) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *SQLiteIndex) Stats(ctx context.Context) (Stats, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM index_records`).Scan(&count); err != nil {
		return Stats{}, err
	}
	return Stats{RecordCount: count, Dimensions: s.dimensions}, nil
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteIndex) loadAll(ctx context.Context) ([]*models.IndexRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT chunk_id, embedding, metadata FROM index_records`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.IndexRecord
	for rows.Next() {
		var chunkID, embJSON, metaJSON string
		if err := rows.Scan(&chunkID, &embJSON, &metaJSON); err != nil {
			return nil, err
		}
		var emb []float32
		if err := json.Unmarshal([]byte(embJSON), &emb); err != nil {
			return nil, err
		}
		meta := make(map[string]models.MetadataValue)
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, err
		}
		out = append(out, &models.IndexRecord{ChunkID: chunkID, Embedding: emb, Metadata: meta})
	}
	return out, rows.Err()
}
