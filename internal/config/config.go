package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// EmbeddingConfig configures the Gemini embedding gateway.
type EmbeddingConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	Dimension   int    `yaml:"dimension"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// GenerationConfig configures the Gemini answer-generation gateway.
type GenerationConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type       string `yaml:"type"`
	URL        string `yaml:"url"`
	APIKeyEnv  string `yaml:"api_key_env"`
	Collection string `yaml:"collection"`
}

// IngestConfig configures the ingestion pipeline.
type IngestConfig struct {
	ChunkSize int `yaml:"chunk_size"`
}

// AnswerConfig configures answer synthesis.
type AnswerConfig struct {
	TopK int `yaml:"top_k"`
	// MaxContextChars caps the context block passed to generation.
	// Zero disables the cap.
	MaxContextChars int `yaml:"max_context_chars"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Generation  GenerationConfig  `yaml:"generation"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Answer      AnswerConfig      `yaml:"answer"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults. Environment overrides apply after the file.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{Addr: ":8000"},
		Embedding: EmbeddingConfig{
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
			APIKeyEnv:   "GEMINI_API_KEY",
			Model:       "gemini-embedding-001",
			Dimension:   3072,
			TimeoutSecs: 30,
		},
		Generation: GenerationConfig{
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
			APIKeyEnv:   "GEMINI_API_KEY",
			Model:       "gemini-2.5-flash",
			TimeoutSecs: 60,
		},
		VectorStore: VectorStoreConfig{
			Type:       "qdrant",
			APIKeyEnv:  "QDRANT_API_KEY",
			Collection: "doc",
		},
		Ingest: IngestConfig{ChunkSize: 5000},
		Answer: AnswerConfig{TopK: 10},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "gemini-embedding-001"
	}
	if cfg.Embedding.Dimension == 0 {
		cfg.Embedding.Dimension = 3072
	}
	if cfg.Embedding.TimeoutSecs == 0 {
		cfg.Embedding.TimeoutSecs = 30
	}
	if cfg.Generation.BaseURL == "" {
		cfg.Generation.BaseURL = cfg.Embedding.BaseURL
	}
	if cfg.Generation.APIKeyEnv == "" {
		cfg.Generation.APIKeyEnv = cfg.Embedding.APIKeyEnv
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = "gemini-2.5-flash"
	}
	if cfg.Generation.TimeoutSecs == 0 {
		cfg.Generation.TimeoutSecs = 60
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "qdrant"
	}
	if cfg.VectorStore.APIKeyEnv == "" {
		cfg.VectorStore.APIKeyEnv = "QDRANT_API_KEY"
	}
	if cfg.VectorStore.Collection == "" {
		cfg.VectorStore.Collection = "doc"
	}
	if cfg.Ingest.ChunkSize == 0 {
		cfg.Ingest.ChunkSize = 5000
	}
	if cfg.Answer.TopK == 0 {
		cfg.Answer.TopK = 10
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("DOCQA_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("QDRANT_URL"); v != "" {
		cfg.VectorStore.URL = v
	}
	if v := os.Getenv("COLLECTION_NAME"); v != "" {
		cfg.VectorStore.Collection = v
	}
}
