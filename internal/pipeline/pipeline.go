package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/leo88345/Marketlive/internal/dedup"
	"github.com/leo88345/Marketlive/internal/model"
	"github.com/leo88345/Marketlive/pkg/llm"
	"github.com/leo88345/Marketlive/pkg/news"
)

const DefaultThreshold = 7.0

type Gateway interface {
	Classify(ctx context.Context, articles []llm.ClassifyInput) []llm.Classification
}

type Broadcaster interface {
	Broadcast(message any)
}

// Pipeline runs one fetched batch through normalize, dedup, classification and
// the importance filter, then hands qualifying articles to the broadcaster.
type Pipeline struct {
	filter    *dedup.Filter
	gateway   Gateway
	hub       Broadcaster
	threshold float64
}

func New(filter *dedup.Filter, gateway Gateway, hub Broadcaster, threshold float64) *Pipeline {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Pipeline{
		filter:    filter,
		gateway:   gateway,
		hub:       hub,
		threshold: threshold,
	}
}

func (p *Pipeline) Threshold() float64 {
	return p.threshold
}

func (p *Pipeline) ProcessBatch(ctx context.Context, raw []news.RawArticle) {
	if len(raw) == 0 {
		return
	}

	var admitted []model.Article
	for _, record := range raw {
		article, ok := news.Normalize(record)
		if !ok {
			continue
		}
		if p.filter.Admit(ctx, article) {
			admitted = append(admitted, article)
		}
	}

	if len(admitted) == 0 {
		slog.Debug("no new articles after deduplication", "fetched", len(raw))
		return
	}

	slog.Info("processing new articles", "admitted", len(admitted), "fetched", len(raw))

	inputs := make([]llm.ClassifyInput, len(admitted))
	for i, a := range admitted {
		inputs[i] = llm.ClassifyInput{Headline: a.Headline, Summary: a.Summary}
	}

	classifications := p.gateway.Classify(ctx, inputs)

	var sent int
	for j, c := range classifications {
		if j >= len(admitted) {
			break
		}

		// Results must line up with batch positions; a stray id is skipped,
		// not fatal.
		if c.ArticleID != j+1 {
			slog.Warn("article id mismatch", "expected", j+1, "got", c.ArticleID)
			continue
		}

		article := admitted[j]

		if !c.IsEnglish {
			slog.Debug("skipping non-english article", "headline", article.Headline)
			continue
		}

		if c.ImportanceScore < p.threshold {
			slog.Debug("below threshold", "headline", article.Headline, "score", c.ImportanceScore)
			continue
		}

		sent++
		slog.Info("broadcasting article", "headline", article.Headline, "score", c.ImportanceScore)
		p.hub.Broadcast(model.Alert{
			Headline:        article.Headline,
			Source:          article.Source,
			URL:             article.URL,
			ImportanceScore: c.ImportanceScore,
			Summary:         c.Summary,
			Timestamp:       time.Now().Unix(),
		})
	}

	slog.Info("batch complete", "sent", sent, "classified", len(classifications))
}
