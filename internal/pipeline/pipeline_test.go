package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/leo88345/Marketlive/internal/dedup"
	"github.com/leo88345/Marketlive/internal/model"
	"github.com/leo88345/Marketlive/pkg/llm"
	"github.com/leo88345/Marketlive/pkg/news"
)

type fakeGateway struct {
	results []llm.Classification
	inputs  [][]llm.ClassifyInput
}

func (f *fakeGateway) Classify(ctx context.Context, articles []llm.ClassifyInput) []llm.Classification {
	f.inputs = append(f.inputs, articles)
	return f.results
}

type fakeHub struct {
	mu     sync.Mutex
	alerts []model.Alert
}

func (f *fakeHub) Broadcast(message any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if alert, ok := message.(model.Alert); ok {
		f.alerts = append(f.alerts, alert)
	}
}

func newTestPipeline(gateway *fakeGateway, h *fakeHub) *Pipeline {
	return New(dedup.NewFilter(dedup.NewMemoryStore()), gateway, h, 7.0)
}

func rawArticle(headline, url string) news.RawArticle {
	return news.RawArticle{
		"headline": headline,
		"summary":  "summary for " + headline,
		"url":      url,
		"source":   "TestWire",
	}
}

func TestProcessBatchBroadcastsImportantArticle(t *testing.T) {
	gateway := &fakeGateway{results: []llm.Classification{
		{ArticleID: 1, ImportanceScore: 9.5, Summary: "Big rate cut.", IsEnglish: true},
	}}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)

	p.ProcessBatch(context.Background(), []news.RawArticle{
		rawArticle("Fed cuts rates", "https://example.com/u1"),
	})

	assert.Equal(t, 1, len(h.alerts))
	assert.Equal(t, "Fed cuts rates", h.alerts[0].Headline)
	assert.Equal(t, 9.5, h.alerts[0].ImportanceScore)
	assert.Equal(t, "Big rate cut.", h.alerts[0].Summary)
	assert.Equal(t, "https://example.com/u1", h.alerts[0].URL)
	assert.Equal(t, "TestWire", h.alerts[0].Source)
	assert.NotEqual(t, int64(0), h.alerts[0].Timestamp)
}

func TestProcessBatchDuplicateURLNeverReachesClassifier(t *testing.T) {
	gateway := &fakeGateway{results: []llm.Classification{
		{ArticleID: 1, ImportanceScore: 9.5, IsEnglish: true},
	}}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)
	ctx := context.Background()

	batch := []news.RawArticle{rawArticle("Fed cuts rates", "https://example.com/u1")}
	p.ProcessBatch(ctx, batch)
	p.ProcessBatch(ctx, batch)

	// The second round deduplicates everything, so only one classify call.
	assert.Equal(t, 1, len(gateway.inputs))
	assert.Equal(t, 1, len(h.alerts))
}

func TestProcessBatchDuplicateContentDifferentURL(t *testing.T) {
	gateway := &fakeGateway{results: []llm.Classification{
		{ArticleID: 1, ImportanceScore: 9.5, IsEnglish: true},
	}}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)
	ctx := context.Background()

	p.ProcessBatch(ctx, []news.RawArticle{rawArticle("Fed cuts rates", "https://example.com/u1")})
	p.ProcessBatch(ctx, []news.RawArticle{rawArticle("Fed cuts rates", "https://other.com/u2")})

	assert.Equal(t, 1, len(gateway.inputs))
	assert.Equal(t, 1, len(h.alerts))
}

func TestProcessBatchDropsInvalidRecords(t *testing.T) {
	gateway := &fakeGateway{}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)

	p.ProcessBatch(context.Background(), []news.RawArticle{
		{"summary": "no headline", "url": "https://example.com/u1"},
		{"headline": "no url"},
	})

	// Nothing valid admitted, so the backend is never called.
	assert.Equal(t, 0, len(gateway.inputs))
	assert.Equal(t, 0, len(h.alerts))
}

func TestProcessBatchEmptyClassificationIsSilent(t *testing.T) {
	gateway := &fakeGateway{results: nil}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)

	var batch []news.RawArticle
	for _, u := range []string{"u1", "u2", "u3", "u4", "u5"} {
		batch = append(batch, rawArticle("headline "+u, "https://example.com/"+u))
	}

	p.ProcessBatch(context.Background(), batch)

	assert.Equal(t, 1, len(gateway.inputs))
	assert.Equal(t, 5, len(gateway.inputs[0]))
	assert.Equal(t, 0, len(h.alerts))
}

func TestProcessBatchSkipsNonEnglish(t *testing.T) {
	gateway := &fakeGateway{results: []llm.Classification{
		{ArticleID: 1, ImportanceScore: 9.0, IsEnglish: false},
	}}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)

	p.ProcessBatch(context.Background(), []news.RawArticle{
		rawArticle("Une baisse des taux", "https://example.com/u1"),
	})

	assert.Equal(t, 0, len(h.alerts))
}

func TestProcessBatchSkipsBelowThreshold(t *testing.T) {
	gateway := &fakeGateway{results: []llm.Classification{
		{ArticleID: 1, ImportanceScore: 6.9, IsEnglish: true},
	}}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)

	p.ProcessBatch(context.Background(), []news.RawArticle{
		rawArticle("Minor corporate update", "https://example.com/u1"),
	})

	assert.Equal(t, 0, len(h.alerts))
}

func TestProcessBatchSkipsMismatchedIDOnly(t *testing.T) {
	gateway := &fakeGateway{results: []llm.Classification{
		{ArticleID: 1, ImportanceScore: 8.0, IsEnglish: true},
		{ArticleID: 5, ImportanceScore: 9.0, IsEnglish: true},
		{ArticleID: 3, ImportanceScore: 8.5, IsEnglish: true},
	}}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)

	p.ProcessBatch(context.Background(), []news.RawArticle{
		rawArticle("first", "https://example.com/u1"),
		rawArticle("second", "https://example.com/u2"),
		rawArticle("third", "https://example.com/u3"),
	})

	// The middle entry declares the wrong id and is skipped; its neighbours
	// still go out.
	assert.Equal(t, 2, len(h.alerts))
	assert.Equal(t, "first", h.alerts[0].Headline)
	assert.Equal(t, "third", h.alerts[1].Headline)
}

func TestProcessBatchIgnoresExtraResults(t *testing.T) {
	gateway := &fakeGateway{results: []llm.Classification{
		{ArticleID: 1, ImportanceScore: 8.0, IsEnglish: true},
		{ArticleID: 2, ImportanceScore: 9.0, IsEnglish: true},
	}}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)

	p.ProcessBatch(context.Background(), []news.RawArticle{
		rawArticle("only article", "https://example.com/u1"),
	})

	assert.Equal(t, 1, len(h.alerts))
}

func TestProcessBatchEmptyInput(t *testing.T) {
	gateway := &fakeGateway{}
	h := &fakeHub{}
	p := newTestPipeline(gateway, h)

	p.ProcessBatch(context.Background(), nil)

	assert.Equal(t, 0, len(gateway.inputs))
}

func TestNewDefaultsThreshold(t *testing.T) {
	p := New(dedup.NewFilter(dedup.NewMemoryStore()), &fakeGateway{}, &fakeHub{}, 0)
	assert.Equal(t, DefaultThreshold, p.Threshold())
}
