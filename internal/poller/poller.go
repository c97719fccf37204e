package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leo88345/Marketlive/pkg/news"
)

const (
	DefaultPollInterval  = 60 * time.Second
	DefaultRetryInterval = 30 * time.Second
)

type Processor interface {
	ProcessBatch(ctx context.Context, articles []news.RawArticle)
}

type Config struct {
	Source        news.Source
	PollInterval  time.Duration
	RetryInterval time.Duration
}

// Supervisor runs one polling loop per source. Loops are independent: a dead
// source retries forever on its own cadence without touching the others.
type Supervisor struct {
	processor Processor
	sources   []Config
}

func NewSupervisor(processor Processor, sources ...Config) *Supervisor {
	return &Supervisor{processor: processor, sources: sources}
}

func (s *Supervisor) Sources() []string {
	names := make([]string, len(s.sources))
	for i, cfg := range s.sources {
		names[i] = cfg.Source.Name()
	}
	return names
}

// Run starts every polling loop and blocks until ctx is cancelled and all
// loops have drained.
func (s *Supervisor) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, cfg := range s.sources {
		wg.Add(1)
		go func(cfg Config) {
			defer wg.Done()
			s.poll(ctx, cfg)
		}(cfg)
	}

	wg.Wait()
}

func (s *Supervisor) poll(ctx context.Context, cfg Config) {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	retryInterval := cfg.RetryInterval
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}

	source := cfg.Source
	slog.Info("starting news poller", "source", source.Name(), "interval", pollInterval)

	for {
		articles, err := source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("stopping news poller", "source", source.Name())
				return
			}
			slog.Error("fetch failed", "source", source.Name(), "error", err, "retry_in", retryInterval)
			if !sleep(ctx, retryInterval) {
				slog.Info("stopping news poller", "source", source.Name())
				return
			}
			continue
		}

		slog.Info("fetched articles", "source", source.Name(), "count", len(articles))
		s.processor.ProcessBatch(ctx, articles)

		if !sleep(ctx, pollInterval) {
			slog.Info("stopping news poller", "source", source.Name())
			return
		}
	}
}

// sleep waits for d or until ctx is cancelled, reporting false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
