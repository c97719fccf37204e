package news

import "context"

// RawArticle is one upstream record before normalization. Field names vary
// per source (headline/title, summary/description, url/article_url).
type RawArticle map[string]any

type Source interface {
	Fetch(ctx context.Context) ([]RawArticle, error)
	Name() string
}
