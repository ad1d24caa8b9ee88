package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"docqa/internal/domain"
)

// Store is a minimal REST client to Qdrant using cosine distance.
type Store struct {
	url    string
	apiKey string
	client *http.Client
}

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the collection if it is absent. Concurrent
// first writers may both issue the create; Qdrant treats a create with
// an identical schema as a no-op, so the race is harmless.
func (s *Store) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", domain.ErrStore, dimension)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, name), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
	default:
		return fmt.Errorf("%w: collection check returned %s", domain.ErrStore, resp.Status)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, name), body)
}

// Upsert writes one point. The chunk id doubles as the point id, so a
// repeated id overwrites the previous record.
func (s *Store) Upsert(ctx context.Context, collection string, chunk domain.Chunk, vector []float64) error {
	payload := map[string]any{"content": chunk.Content}
	if chunk.Source != "" {
		payload["source"] = chunk.Source
		payload["chunk_index"] = chunk.Index
	}
	body := map[string]any{
		"points": []map[string]any{
			{
				"id":      chunk.ID,
				"vector":  vector,
				"payload": payload,
			},
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, collection), body)
}

// Search returns up to limit nearest points by cosine similarity. A
// missing collection surfaces as an error, never as empty results.
func (s *Store) Search(ctx context.Context, collection string, vector []float64, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      string         `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		content := ""
		if v, ok := r.Payload["content"].(string); ok {
			content = v
		}
		results = append(results, domain.SearchResult{ID: r.ID, Score: r.Score, Content: content})
	}
	return results, nil
}

func (s *Store) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: PUT %s returned %s", domain.ErrStore, url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: POST %s returned %s", domain.ErrStore, url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStore, err)
		}
	}
	return nil
}
