// Package config provides configuration loading and structs for the
// retrieval engine. Once Load returns, the Config is treated as frozen:
// nothing in the pipeline mutates it after startup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the retrieval engine.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	LLM       LLMConfig       `yaml:"llm"`
}

// ServerConfig holds the thin HTTP surface's listen settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the persistent vector-index and
// keyword-index backings.
type StorageConfig struct {
	DatabasePath   string `yaml:"database_path"`
	BleveIndexPath string `yaml:"bleve_index_path"`
}

// EmbeddingConfig holds embedding-provider settings.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// ChunkingConfig holds the chunker's size/overlap settings.
type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// RetrievalConfig holds the hybrid retriever, threshold, and fallback
// settings described by the retrieval pipeline's configuration surface.
type RetrievalConfig struct {
	ThresholdMin  float64 `yaml:"threshold_min"`
	ThresholdMed  float64 `yaml:"threshold_medium"`
	ThresholdHigh float64 `yaml:"threshold_high"`
	BaseThreshold float64 `yaml:"base_threshold"`

	AdaptiveThreshold  *bool `yaml:"adaptive_threshold"`
	MinResultsRequired int   `yaml:"min_results_required"`

	EnableHybridSearch *bool   `yaml:"enable_hybrid_search"`
	SemanticWeight     float64 `yaml:"semantic_weight"`
	KeywordWeight      float64 `yaml:"keyword_weight"`

	EnableKeywordAnchoring  *bool `yaml:"enable_keyword_anchoring"`
	MaxKeywordSearchVectors int   `yaml:"max_keyword_search_vectors"`
	MaxKeywordResults       int   `yaml:"max_keyword_results"`

	EnableQueryEnhancement *bool `yaml:"enable_query_enhancement"`
	MaxQueryVariants       int   `yaml:"max_query_variants"`

	// CandidatePoolSize is the per-variant top-K requested from the vector
	// index during Stage 1's semantic fan-out, independent of the caller's
	// requested result count (ReturnCount), which only truncates the final
	// ranked list.
	CandidatePoolSize int `yaml:"candidate_pool_size"`

	// KeywordScanFloor is the minimum Stage-1 candidate-pool size below which
	// Stage 2 supplements the pool with a bounded Scan of the index (up to
	// MaxKeywordSearchVectors records, honoring any caller-supplied filter)
	// before computing keyword scores.
	KeywordScanFloor int `yaml:"keyword_scan_floor"`

	QueryDeadlineMS int `yaml:"query_deadline_ms"`
	ReturnCount     int `yaml:"return_count"`
}

// IsAdaptiveThreshold reports whether adaptive thresholding is enabled;
// defaults to true when unset.
func (r RetrievalConfig) IsAdaptiveThreshold() bool { return r.AdaptiveThreshold == nil || *r.AdaptiveThreshold }

// IsHybridSearchEnabled reports whether hybrid (semantic+keyword) search is
// enabled; defaults to true when unset.
func (r RetrievalConfig) IsHybridSearchEnabled() bool { return r.EnableHybridSearch == nil || *r.EnableHybridSearch }

// IsKeywordAnchoringEnabled reports whether the keyword-anchoring fallback is
// enabled; defaults to true when unset.
func (r RetrievalConfig) IsKeywordAnchoringEnabled() bool {
	return r.EnableKeywordAnchoring == nil || *r.EnableKeywordAnchoring
}

// IsQueryEnhancementEnabled reports whether multi-variant query enhancement
// is enabled; defaults to true when unset.
func (r RetrievalConfig) IsQueryEnhancementEnabled() bool {
	return r.EnableQueryEnhancement == nil || *r.EnableQueryEnhancement
}

// LLMConfig holds the answer-generation provider's settings.
type LLMConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Load reads and parses the config file at path and applies defaults for any
// zero-valued field. A missing file is not an error: Load returns the
// all-defaults Config, since every field has a sensible default.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
