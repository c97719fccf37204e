package model

import "time"

type Article struct {
	Headline  string
	Summary   string
	URL       string
	Source    string
	FetchedAt time.Time
}

// Alert is the payload pushed to subscribers for one important article.
type Alert struct {
	Headline        string  `json:"headline"`
	Source          string  `json:"source"`
	URL             string  `json:"url"`
	ImportanceScore float64 `json:"importance_score"`
	Summary         string  `json:"summary"`
	Timestamp       int64   `json:"timestamp"`
}
