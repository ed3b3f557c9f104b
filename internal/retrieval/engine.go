// Package retrieval implements the hybrid retriever: a five-stage pipeline
// that fans out semantic queries across enhanced variants, scores keyword
// relevance over the merged pool, fuses the two scores, filters by an
// adaptive threshold, and structurally re-ranks the survivors.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lexforge/ragengine/internal/config"
	"github.com/lexforge/ragengine/internal/domain"
	"github.com/lexforge/ragengine/internal/embedding"
	"github.com/lexforge/ragengine/internal/keywordindex"
	"github.com/lexforge/ragengine/internal/models"
	"github.com/lexforge/ragengine/internal/threshold"
	"github.com/lexforge/ragengine/internal/vectorindex"
)

// Engine runs the hybrid retrieval pipeline against a vector index.
type Engine struct {
	embedder embedding.Embedder
	index    vectorindex.Index
	cfg      config.RetrievalConfig
}

// New builds an Engine with the given embedder, vector index, and settings.
func New(embedder embedding.Embedder, index vectorindex.Index, cfg config.RetrievalConfig) *Engine {
	return &Engine{embedder: embedder, index: index, cfg: cfg}
}

// candidatePool tracks the maximum semantic score observed per chunk across
// every fanned-out query variant.
type candidatePool struct {
	mu   sync.Mutex
	best map[string]vectorindex.ScoredRecord
}

func newCandidatePool() *candidatePool {
	return &candidatePool{best: make(map[string]vectorindex.ScoredRecord)}
}

func (p *candidatePool) merge(results []vectorindex.ScoredRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range results {
		if existing, ok := p.best[r.Record.ChunkID]; !ok || r.Score > existing.Score {
			p.best[r.Record.ChunkID] = r
		}
	}
}

// mergeScan folds in records found only by Stage 2's pool-floor scan,
// which carries no similarity score of its own: a record already present in
// the pool from Stage 1's semantic fan-out keeps its semantic score, and a
// scan-only record is added at score 0 so it is still eligible for keyword
// scoring and fusion.
func (p *candidatePool) mergeScan(records []*models.IndexRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range records {
		if _, ok := p.best[r.ChunkID]; !ok {
			p.best[r.ChunkID] = vectorindex.ScoredRecord{Record: r, Score: 0}
		}
	}
}

func (p *candidatePool) values() []vectorindex.ScoredRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]vectorindex.ScoredRecord, 0, len(p.best))
	for _, r := range p.best {
		out = append(out, r)
	}
	return out
}

// variants builds up to maxVariants query strings to fan out over: the
// normalized query itself, each sub-question, and the normalized query with
// each matched category's first dictionary surface form appended as an
// expansion, deduplicated and capped.
func variants(normalized string, subQuestions []string, matchedCategories []string, max int) []string {
	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	add(normalized)
	for _, sq := range subQuestions {
		if len(out) >= max {
			break
		}
		add(sq)
	}
	for _, category := range matchedCategories {
		if len(out) >= max {
			break
		}
		forms := domain.Dictionary[category]
		if len(forms) > 0 {
			add(normalized + " " + forms[0])
		}
	}

	if len(out) > max {
		out = out[:max]
	}
	return out
}

// Retrieve runs stages 1-5 and returns the final ranked, truncated results.
// An empty result means Stage 4 produced zero survivors; the caller decides
// whether to invoke the keyword-anchoring fallback. filter restricts every
// vector-index read (Stage 1's fan-out queries and Stage 2's pool-floor scan)
// to records matching it; a nil filter matches everything.
func (e *Engine) Retrieve(ctx context.Context, qc models.QueryContext, filter vectorindex.Filter, returnCount int) ([]*models.RetrievalResult, float64, error) {
	maxVariants := e.cfg.MaxQueryVariants
	if !e.cfg.IsQueryEnhancementEnabled() {
		maxVariants = 1
	}
	vs := variants(qc.Normalized, qc.SubQuestions, qc.MatchedCategories, maxVariants)

	pool, err := e.stage1SemanticFanOut(ctx, vs, filter)
	if err != nil {
		return nil, 0, err
	}

	records := pool.values()
	if len(records) < e.cfg.KeywordScanFloor {
		scanned, err := e.index.Scan(ctx, filter, e.cfg.MaxKeywordSearchVectors)
		if err != nil {
			return nil, 0, fmt.Errorf("stage 2 pool-floor scan failed: %w", err)
		}
		pool.mergeScan(scanned)
		records = pool.values()
	}
	keywords := stage2Keywords(qc)
	scores := make([]float64, 0, len(records))
	results := make([]*models.RetrievalResult, 0, len(records))

	hybridEnabled := e.cfg.IsHybridSearchEnabled()

	for _, sr := range records {
		text, _ := sr.Record.Metadata["text"].(string)
		var keywordScore float64
		var matched []string
		if hybridEnabled {
			keywordScore, matched = keywordindex.RelevanceScore(text, keywords)
		}
		combined := Fuse(sr.Score, keywordScore, e.cfg.SemanticWeight, e.cfg.KeywordWeight, hybridEnabled)
		method := models.RetrievalSemantic
		if hybridEnabled {
			method = models.RetrievalHybrid
		}

		results = append(results, &models.RetrievalResult{
			ChunkID:         sr.Record.ChunkID,
			Text:            text,
			Metadata:        sr.Record.Metadata,
			SemanticScore:   sr.Score,
			KeywordScore:    keywordScore,
			CombinedScore:   combined,
			RetrievalMethod: method,
			MatchedKeywords: matched,
		})
		scores = append(scores, sr.Score)
	}

	bounds := threshold.Bounds{Min: e.cfg.ThresholdMin, Medium: e.cfg.ThresholdMed, High: e.cfg.ThresholdHigh}
	base := e.cfg.BaseThreshold
	effectiveThreshold := base
	if e.cfg.IsAdaptiveThreshold() {
		effectiveThreshold = threshold.Effective(base, scores, bounds)
	} else if effectiveThreshold == 0 {
		effectiveThreshold = bounds.Min
	}

	survivors := stage4Filter(results, effectiveThreshold, e.cfg.MinResultsRequired)
	if len(survivors) == 0 {
		return []*models.RetrievalResult{}, effectiveThreshold, nil
	}

	for _, r := range survivors {
		r.StructuralRank = threshold.Rank(qc.MatchedCategories, r.Text)
	}
	sort.SliceStable(survivors, func(i, j int) bool {
		if survivors[i].StructuralRank != survivors[j].StructuralRank {
			return survivors[i].StructuralRank < survivors[j].StructuralRank
		}
		if survivors[i].CombinedScore != survivors[j].CombinedScore {
			return survivors[i].CombinedScore > survivors[j].CombinedScore
		}
		return survivors[i].ChunkID < survivors[j].ChunkID
	})
	threshold.ApplyIntentBoost(survivors, qc.Intent)

	if returnCount > 0 && len(survivors) > returnCount {
		survivors = survivors[:returnCount]
	}
	return survivors, effectiveThreshold, nil
}

func (e *Engine) stage1SemanticFanOut(ctx context.Context, variants []string, filter vectorindex.Filter) (*candidatePool, error) {
	pool := newCandidatePool()
	errCh := make(chan error, len(variants))
	var wg sync.WaitGroup

	for _, v := range variants {
		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			vec, err := e.embedder.Embed(ctx, query)
			if err != nil {
				errCh <- fmt.Errorf("embedding failed for variant %q: %w", query, err)
				return
			}
			results, err := e.index.Query(ctx, vec, e.cfg.CandidatePoolSize, filter)
			if err != nil {
				errCh <- fmt.Errorf("vector query failed for variant %q: %w", query, err)
				return
			}
			pool.merge(results)
		}(v)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return pool, nil
}

func stage2Keywords(qc models.QueryContext) []string {
	var kws []string
	for _, category := range qc.MatchedCategories {
		kws = append(kws, domain.Dictionary[category]...)
	}
	return kws
}

func stage4Filter(results []*models.RetrievalResult, effectiveThreshold float64, minResultsRequired int) []*models.RetrievalResult {
	var survivors []*models.RetrievalResult
	for _, r := range results {
		if r.CombinedScore >= effectiveThreshold {
			survivors = append(survivors, r)
		}
	}
	if len(survivors) >= minResultsRequired || len(results) == 0 {
		return survivors
	}

	sorted := append([]*models.RetrievalResult(nil), results...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CombinedScore > sorted[j].CombinedScore })
	if len(sorted) > minResultsRequired {
		sorted = sorted[:minResultsRequired]
	}
	return sorted
}
