package llm

import "context"

type ClassifyInput struct {
	Headline string
	Summary  string
}

// Classification is one per-article scoring result. ArticleID is 1-based and
// matches the article's position in the batch that produced it.
type Classification struct {
	ArticleID       int     `json:"article_id"`
	ImportanceScore float64 `json:"importance_score"`
	Summary         string  `json:"summary"`
	IsEnglish       bool    `json:"is_english"`
}

type Classifier interface {
	ClassifyBatch(ctx context.Context, articles []ClassifyInput) ([]Classification, error)
	Name() string
}
