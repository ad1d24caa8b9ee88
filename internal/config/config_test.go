package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "gemini-embedding-001", cfg.Embedding.Model)
	assert.Equal(t, 3072, cfg.Embedding.Dimension)
	assert.Equal(t, "doc", cfg.VectorStore.Collection)
	assert.Equal(t, 5000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 10, cfg.Answer.TopK)
	assert.Equal(t, 0, cfg.Answer.MaxContextChars)
}

func TestLoadAppliesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9999"
vector_store:
  type: memory
  collection: papers
ingest:
  chunk_size: 1000
answer:
  top_k: 3
  max_context_chars: 4000
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, "papers", cfg.VectorStore.Collection)
	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 3, cfg.Answer.TopK)
	assert.Equal(t, 4000, cfg.Answer.MaxContextChars)
	// untouched sections keep their defaults
	assert.Equal(t, "gemini-2.5-flash", cfg.Generation.Model)
	assert.Equal(t, 60, cfg.Generation.TimeoutSecs)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant.test:6333")
	t.Setenv("COLLECTION_NAME", "env-coll")
	t.Setenv("DOCQA_ADDR", ":7777")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://qdrant.test:6333", cfg.VectorStore.URL)
	assert.Equal(t, "env-coll", cfg.VectorStore.Collection)
	assert.Equal(t, ":7777", cfg.Server.Addr)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
