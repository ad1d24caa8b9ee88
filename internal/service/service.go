package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"docqa/internal/chunker"
	"docqa/internal/domain"
)

const promptTemplate = `You are a helpful assistant. Use the following context to answer the question:

Context:
%s

Question:
%s

Guardrails:
Answer should be less than 100 words.
`

// Options carries the fixed pipeline parameters.
type Options struct {
	Collection      string
	ChunkSize       int
	TopK            int
	MaxContextChars int
}

// Service wires the chunker and the gateways into the ingestion,
// retrieval, and answer pipelines. All collaborators are injected;
// there is no ambient client state.
type Service struct {
	chunker   *chunker.SizeChunker
	embedder  domain.Embedder
	store     domain.VectorStore
	extractor domain.Extractor
	generator domain.Generator
	opts      Options
}

func New(embedder domain.Embedder, store domain.VectorStore, extractor domain.Extractor, generator domain.Generator, opts Options) *Service {
	if opts.Collection == "" {
		opts.Collection = "doc"
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 5000
	}
	if opts.TopK <= 0 {
		opts.TopK = 10
	}
	return &Service{
		chunker:   chunker.NewSizeChunker(opts.ChunkSize),
		embedder:  embedder,
		store:     store,
		extractor: extractor,
		generator: generator,
		opts:      opts,
	}
}

// IngestText embeds one piece of content and stores it under a fresh
// id. The sequence embeds first, then ensures the collection, then
// upserts; any step failing surfaces the error and nothing is
// reported as written.
func (s *Service) IngestText(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty content", domain.ErrEmbedding)
	}
	vector, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return "", err
	}
	if err := s.store.EnsureCollection(ctx, s.opts.Collection, s.embedder.Dimension()); err != nil {
		return "", err
	}
	chunk := domain.Chunk{ID: uuid.NewString(), Content: content}
	if err := s.store.Upsert(ctx, s.opts.Collection, chunk, vector); err != nil {
		return "", err
	}
	return chunk.ID, nil
}

// IngestFiles processes each uploaded file independently and returns a
// per-file report. One file's failure never aborts the rest; within a
// file, chunks commit one at a time and a chunk failure is recorded
// without rolling back chunks already written.
func (s *Service) IngestFiles(ctx context.Context, files []domain.UploadedFile) []domain.FileReport {
	reports := make([]domain.FileReport, 0, len(files))
	for _, f := range files {
		reports = append(reports, s.ingestFile(ctx, f))
	}
	return reports
}

func (s *Service) ingestFile(ctx context.Context, f domain.UploadedFile) domain.FileReport {
	report := domain.FileReport{Filename: f.Filename}
	text, err := s.extractor.Extract(f.Data, f.Filename)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	if strings.TrimSpace(text) == "" {
		report.Error = "no readable text found in PDF"
		return report
	}
	for idx, piece := range s.chunker.Split(text) {
		vector, err := s.embedder.Embed(ctx, piece)
		if err != nil {
			report.Error = fmt.Sprintf("chunk %d: %v", idx, err)
			return report
		}
		if err := s.store.EnsureCollection(ctx, s.opts.Collection, s.embedder.Dimension()); err != nil {
			report.Error = fmt.Sprintf("chunk %d: %v", idx, err)
			return report
		}
		chunk := domain.Chunk{
			ID:      uuid.NewString(),
			Content: piece,
			Source:  f.Filename,
			Index:   idx,
		}
		if err := s.store.Upsert(ctx, s.opts.Collection, chunk, vector); err != nil {
			report.Error = fmt.Sprintf("chunk %d: %v", idx, err)
			return report
		}
		report.Chunks = append(report.Chunks, domain.ChunkRef{Index: idx, ID: chunk.ID})
	}
	report.ChunksUploaded = len(report.Chunks)
	return report
}

// Search embeds the query with the same model as ingestion and
// delegates ranking to the vector store.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, s.opts.Collection, vector, limit)
}

// Retrieve returns the ranked contents for a question, dropping
// results whose stored content is empty.
func (s *Service) Retrieve(ctx context.Context, question string, limit int) ([]string, error) {
	results, err := s.Search(ctx, question, limit)
	if err != nil {
		return nil, err
	}
	contents := make([]string, 0, len(results))
	for _, r := range results {
		if r.Content != "" {
			contents = append(contents, r.Content)
		}
	}
	return contents, nil
}

// Answer retrieves the top matching chunks, builds the prompt, and
// asks the generation service. No relevant stored content is a
// distinct failure; the generation service is not called in that case.
func (s *Service) Answer(ctx context.Context, question string) (domain.Answer, error) {
	contents, err := s.Retrieve(ctx, question, s.opts.TopK)
	if err != nil {
		return domain.Answer{}, err
	}
	if len(contents) == 0 {
		return domain.Answer{}, domain.ErrNoRelevantContent
	}
	prompt := fmt.Sprintf(promptTemplate, s.buildContext(contents), question)
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.Answer{}, err
	}
	return domain.Answer{Question: question, Answer: answer}, nil
}

// buildContext joins the ranked contents with blank lines. When a cap
// is configured the block is cut at whole chunks only; the top chunk
// is always included even if it alone exceeds the cap.
func (s *Service) buildContext(contents []string) string {
	if s.opts.MaxContextChars <= 0 {
		return strings.Join(contents, "\n\n")
	}
	var b strings.Builder
	for i, c := range contents {
		add := len(c)
		if i > 0 {
			add += 2
		}
		if i > 0 && b.Len()+add > s.opts.MaxContextChars {
			break
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(c)
	}
	return b.String()
}
