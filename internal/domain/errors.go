package domain

import "errors"

// Failure kinds surfaced by the pipelines. Gateways wrap their
// underlying errors with one of these so callers can match with
// errors.Is without depending on transport details.
var (
	ErrEmbedding         = errors.New("embedding failed")
	ErrStore             = errors.New("vector store failed")
	ErrExtraction        = errors.New("text extraction failed")
	ErrNoRelevantContent = errors.New("no relevant documents found")
	ErrGeneration        = errors.New("answer generation failed")
)
