package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaClient is the local development backend. The rubric travels as free
// text and the model is asked to emit a bare JSON array, so any parse failure
// is a full-batch failure.
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOllamaClient(baseURL string) *OllamaClient {
	return &OllamaClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      "llama3.1:8b",
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *OllamaClient) Name() string {
	return "ollama"
}

func (c *OllamaClient) ClassifyBatch(ctx context.Context, articles []ClassifyInput) ([]Classification, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(`%s

%s
Respond ONLY with a JSON array in this exact format:
[
  {"article_id": 1, "importance_score": 8.5, "summary": "Two sentence summary of article 1.", "is_english": true},
  {"article_id": 2, "importance_score": 6.2, "summary": "Two sentence summary of article 2.", "is_english": true}
]`, scoringSystemPrompt, formatArticlesForScoring(articles))

	body, err := json.Marshal(ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("ollama request encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama call: unexpected status %d", resp.StatusCode)
	}

	var raw ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("ollama decode: %w", err)
	}

	content := cleanJSONResponse(raw.Response)

	var results []Classification
	if err := json.Unmarshal([]byte(content), &results); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return results, nil
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}
