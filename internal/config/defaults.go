package config

// ApplyDefaults sets default values for any zero-valued field in cfg. Zero
// is never a meaningful configured value for anything here, so a bare
// zero-value struct always ends up fully populated.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./data/db/documents.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "./data/indices/bleve"
	}

	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 1024
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 512
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}

	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = 800
	}
	if cfg.Chunking.ChunkOverlap == 0 {
		cfg.Chunking.ChunkOverlap = 300
	}

	if cfg.Retrieval.ThresholdMin == 0 {
		cfg.Retrieval.ThresholdMin = 0.2
	}
	if cfg.Retrieval.ThresholdMed == 0 {
		cfg.Retrieval.ThresholdMed = 0.5
	}
	if cfg.Retrieval.ThresholdHigh == 0 {
		cfg.Retrieval.ThresholdHigh = 0.8
	}
	if cfg.Retrieval.BaseThreshold == 0 {
		cfg.Retrieval.BaseThreshold = cfg.Retrieval.ThresholdMin
	}
	if cfg.Retrieval.MinResultsRequired == 0 {
		cfg.Retrieval.MinResultsRequired = 1
	}

	if cfg.Retrieval.SemanticWeight == 0 && cfg.Retrieval.KeywordWeight == 0 {
		cfg.Retrieval.SemanticWeight = 0.7
		cfg.Retrieval.KeywordWeight = 0.3
	}

	if cfg.Retrieval.MaxKeywordSearchVectors == 0 {
		cfg.Retrieval.MaxKeywordSearchVectors = 1000
	}
	if cfg.Retrieval.MaxKeywordResults == 0 {
		cfg.Retrieval.MaxKeywordResults = 3
	}

	if cfg.Retrieval.MaxQueryVariants == 0 {
		cfg.Retrieval.MaxQueryVariants = 5
	}

	if cfg.Retrieval.CandidatePoolSize == 0 {
		cfg.Retrieval.CandidatePoolSize = 10
	}
	if cfg.Retrieval.KeywordScanFloor == 0 {
		cfg.Retrieval.KeywordScanFloor = 10
	}

	if cfg.Retrieval.QueryDeadlineMS == 0 {
		cfg.Retrieval.QueryDeadlineMS = 10000
	}
	if cfg.Retrieval.ReturnCount == 0 {
		cfg.Retrieval.ReturnCount = 10
	}

	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 4000
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
}
