package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docqa/internal/domain"
)

// Client calls the Gemini streamGenerateContent endpoint and
// concatenates the streamed candidates into a single answer string.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing generation API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: t},
	}, nil
}

type textPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string     `json:"role,omitempty"`
	Parts []textPart `json:"parts"`
}

type candidate struct {
	Content content `json:"content"`
}

type genResponse struct {
	Candidates []candidate `json:"candidates"`
}

// Generate sends the prompt and returns the concatenated answer text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"contents": []content{
			{Role: "user", Parts: []textPart{{Text: prompt}}},
		},
		"generationConfig": map[string]any{
			"thinkingConfig": map[string]any{"thinkingBudget": -1},
		},
		"tools": []map[string]any{
			{"googleSearch": map[string]any{}},
		},
	}
	data, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/models/%s:streamGenerateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: generateContent returned %s", domain.ErrGeneration, resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	answer, err := parseAnswer(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return answer, nil
}

// parseAnswer accepts both response shapes: a JSON array of streamed
// chunks, concatenated in order, or a single response object.
func parseAnswer(payload []byte) (string, error) {
	var chunks []genResponse
	if err := json.Unmarshal(payload, &chunks); err == nil {
		var b strings.Builder
		for _, ch := range chunks {
			b.WriteString(candidateText(ch))
		}
		if b.Len() == 0 {
			return "", fmt.Errorf("no candidates in response")
		}
		return b.String(), nil
	}
	var single genResponse
	if err := json.Unmarshal(payload, &single); err != nil {
		return "", fmt.Errorf("malformed response body")
	}
	text := candidateText(single)
	if text == "" {
		return "", fmt.Errorf("no candidates in response")
	}
	return text, nil
}

func candidateText(r genResponse) string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
