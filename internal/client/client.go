package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"docqa/internal/domain"
)

// Client is a small Go client for the docqa HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 90 * time.Second},
	}
}

// Health reports whether the server answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %s", resp.Status)
	}
	return nil
}

// AddDocument ingests one piece of text and returns its chunk id.
func (c *Client) AddDocument(ctx context.Context, content string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.postJSON(ctx, "/add_document", map[string]string{"content": content}, &out)
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

// Search returns the ranked matches for a query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search_document?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}
	var out struct {
		Results []struct {
			ID      string  `json:"id"`
			Score   float64 `json:"score"`
			Content string  `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, domain.SearchResult{ID: r.ID, Score: r.Score, Content: r.Content})
	}
	return results, nil
}

// Ask submits a question and returns the synthesized answer. A 404
// surfaces as domain.ErrNoRelevantContent.
func (c *Client) Ask(ctx context.Context, question string) (domain.Answer, error) {
	body, _ := json.Marshal(map[string]string{"question": question})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask_question", bytes.NewReader(body))
	if err != nil {
		return domain.Answer{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Answer{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return domain.Answer{}, domain.ErrNoRelevantContent
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Answer{}, apiError(resp)
	}
	var out struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Answer{}, err
	}
	return domain.Answer{Question: out.Question, Answer: out.Answer}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func apiError(resp *http.Response) error {
	var out struct {
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(resp.Body)
	if json.Unmarshal(data, &out) == nil && out.Detail != "" {
		return fmt.Errorf("%s: %s", resp.Status, out.Detail)
	}
	return fmt.Errorf("request failed: %s", resp.Status)
}
