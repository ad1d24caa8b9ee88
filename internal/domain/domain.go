package domain

import "context"

// Chunk is a bounded slice of a document's text, embedded and stored
// independently in the vector store.
type Chunk struct {
	ID      string
	Content string
	Source  string
	Index   int
}

// SearchResult is a stored chunk matched against a query, with its
// cosine similarity score. Results are always ordered by descending score.
type SearchResult struct {
	ID      string
	Score   float64
	Content string
}

// Answer pairs a question with the synthesized answer text.
type Answer struct {
	Question string
	Answer   string
}

// ChunkRef identifies one uploaded chunk within a file.
type ChunkRef struct {
	Index int
	ID    string
}

// FileReport is the per-file outcome of a bulk upload. Exactly one of
// Error or the success fields is populated.
type FileReport struct {
	Filename       string
	ChunksUploaded int
	Chunks         []ChunkRef
	Error          string
}

// UploadedFile is one file received for ingestion.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// Embedder converts text into a fixed-dimensionality vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
}

// VectorStore persists embedded chunks and performs similarity search.
type VectorStore interface {
	// EnsureCollection creates the collection if absent. Idempotent;
	// safe to race from concurrent first writers.
	EnsureCollection(ctx context.Context, name string, dimension int) error
	// Upsert writes one record, last-write-wins on id collision.
	Upsert(ctx context.Context, collection string, chunk Chunk, vector []float64) error
	// Search returns up to limit nearest records by cosine similarity,
	// descending. Fails if the collection does not exist.
	Search(ctx context.Context, collection string, vector []float64, limit int) ([]SearchResult, error)
}

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(data []byte, filename string) (string, error)
}

// Generator produces an answer for a fully constructed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
