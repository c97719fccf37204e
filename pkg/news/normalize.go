package news

import (
	"time"

	"github.com/leo88345/Marketlive/internal/model"
)

var (
	headlineKeys = []string{"headline", "title"}
	summaryKeys  = []string{"summary", "description"}
	urlKeys      = []string{"url", "article_url"}
	sourceKeys   = []string{"source", "publisher"}
)

// Normalize maps one upstream record onto the canonical article shape.
// Returns false when headline or URL is missing under every accepted alias.
func Normalize(raw RawArticle) (model.Article, bool) {
	headline := firstString(raw, headlineKeys)
	url := firstString(raw, urlKeys)

	if headline == "" || url == "" {
		return model.Article{}, false
	}

	source := firstString(raw, sourceKeys)
	if source == "" {
		source = "Unknown"
	}

	return model.Article{
		Headline:  headline,
		Summary:   firstString(raw, summaryKeys),
		URL:       url,
		Source:    source,
		FetchedAt: time.Now(),
	}, true
}

func firstString(raw RawArticle, keys []string) string {
	for _, key := range keys {
		if v, ok := raw[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
