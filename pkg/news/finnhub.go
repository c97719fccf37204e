package news

import (
	"context"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnhubSource struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubSource(apiKey string) *FinnhubSource {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubSource{client: client}
}

func (s *FinnhubSource) Name() string {
	return "Finnhub"
}

func (s *FinnhubSource) Fetch(ctx context.Context) ([]RawArticle, error) {
	res, _, err := s.client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, err
	}

	articles := make([]RawArticle, 0, len(res))
	for _, item := range res {
		a := RawArticle{}

		if item.Headline != nil {
			a["headline"] = *item.Headline
		}
		if item.Summary != nil {
			a["summary"] = *item.Summary
		}
		if item.Url != nil {
			a["url"] = *item.Url
		}
		if item.Source != nil {
			a["source"] = *item.Source
		}

		articles = append(articles, a)
	}

	return articles, nil
}
