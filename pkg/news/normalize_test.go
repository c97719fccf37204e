package news

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestNormalizeFinnhubKeys(t *testing.T) {
	raw := RawArticle{
		"headline": "Fed cuts rates",
		"summary":  "The Fed cut rates today.",
		"url":      "https://example.com/a1",
		"source":   "Finnhub",
	}

	article, ok := Normalize(raw)

	assert.Equal(t, true, ok)
	assert.Equal(t, "Fed cuts rates", article.Headline)
	assert.Equal(t, "The Fed cut rates today.", article.Summary)
	assert.Equal(t, "https://example.com/a1", article.URL)
	assert.Equal(t, "Finnhub", article.Source)
}

func TestNormalizePolygonKeys(t *testing.T) {
	raw := RawArticle{
		"title":       "Fed cuts rates",
		"description": "The Fed cut rates today.",
		"article_url": "https://example.com/a1",
		"publisher":   "Reuters",
	}

	article, ok := Normalize(raw)

	assert.Equal(t, true, ok)
	assert.Equal(t, "Fed cuts rates", article.Headline)
	assert.Equal(t, "The Fed cut rates today.", article.Summary)
	assert.Equal(t, "https://example.com/a1", article.URL)
	assert.Equal(t, "Reuters", article.Source)
}

func TestNormalizeMissingHeadline(t *testing.T) {
	raw := RawArticle{
		"summary": "No headline here.",
		"url":     "https://example.com/a1",
	}

	_, ok := Normalize(raw)
	assert.Equal(t, false, ok)
}

func TestNormalizeMissingURL(t *testing.T) {
	raw := RawArticle{
		"headline": "Headline without a link",
	}

	_, ok := Normalize(raw)
	assert.Equal(t, false, ok)
}

func TestNormalizeDefaultsSource(t *testing.T) {
	raw := RawArticle{
		"headline": "Fed cuts rates",
		"url":      "https://example.com/a1",
	}

	article, ok := Normalize(raw)

	assert.Equal(t, true, ok)
	assert.Equal(t, "Unknown", article.Source)
}

func TestNormalizeNonStringValues(t *testing.T) {
	raw := RawArticle{
		"headline": 42,
		"url":      "https://example.com/a1",
	}

	_, ok := Normalize(raw)
	assert.Equal(t, false, ok)
}
