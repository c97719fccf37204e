package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type PolygonSource struct {
	apiKey     string
	httpClient *http.Client
}

func NewPolygonSource(apiKey string) *PolygonSource {
	return &PolygonSource{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *PolygonSource) Name() string {
	return "Polygon"
}

func (s *PolygonSource) Fetch(ctx context.Context) ([]RawArticle, error) {
	url := fmt.Sprintf(
		"https://api.polygon.io/v2/reference/news?limit=50&order=desc&sort=published_utc&apiKey=%s",
		s.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("polygon request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polygon fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("polygon fetch: unexpected status %d", resp.StatusCode)
	}

	var raw polygonResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("polygon decode: %w", err)
	}

	if raw.Status != "OK" {
		return nil, fmt.Errorf("polygon api error: %s", raw.Error)
	}

	articles := make([]RawArticle, 0, len(raw.Results))
	for _, item := range raw.Results {
		articles = append(articles, RawArticle{
			"title":       item.Title,
			"description": item.Description,
			"article_url": item.ArticleURL,
			"source":      item.Publisher.Name,
		})
	}

	return articles, nil
}

type polygonResponse struct {
	Status  string          `json:"status"`
	Error   string          `json:"error"`
	Results []polygonResult `json:"results"`
}

type polygonResult struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ArticleURL  string           `json:"article_url"`
	Publisher   polygonPublisher `json:"publisher"`
}

type polygonPublisher struct {
	Name string `json:"name"`
}
