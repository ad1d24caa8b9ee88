package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"docqa/internal/domain"
)

// Store is an in-memory vector store using brute-force cosine
// similarity. Meant for development and tests.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	dimension int
	records   []record
}

type record struct {
	chunk  domain.Chunk
	vector []float64
}

func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

func (s *Store) EnsureCollection(_ context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", domain.ErrStore, dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.collections[name]; ok {
		if c.dimension != dimension {
			return fmt.Errorf("%w: collection %q has dimension %d, want %d", domain.ErrStore, name, c.dimension, dimension)
		}
		return nil
	}
	s.collections[name] = &collection{dimension: dimension}
	return nil
}

func (s *Store) Upsert(_ context.Context, name string, chunk domain.Chunk, vector []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: collection %q does not exist", domain.ErrStore, name)
	}
	if len(vector) != c.dimension {
		return fmt.Errorf("%w: vector dimension mismatch", domain.ErrStore)
	}
	for i := range c.records {
		if c.records[i].chunk.ID == chunk.ID {
			c.records[i] = record{chunk: chunk, vector: vector}
			return nil
		}
	}
	c.records = append(c.records, record{chunk: chunk, vector: vector})
	return nil
}

func (s *Store) Search(_ context.Context, name string, vector []float64, limit int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: collection %q does not exist", domain.ErrStore, name)
	}
	if limit <= 0 {
		limit = 5
	}
	results := make([]domain.SearchResult, 0, len(c.records))
	for _, r := range c.records {
		results = append(results, domain.SearchResult{
			ID:      r.chunk.ID,
			Score:   cosine(r.vector, vector),
			Content: r.chunk.Content,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
