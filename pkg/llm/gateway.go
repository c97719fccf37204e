package llm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Gateway fronts the configured classification backends. Exactly one backend
// is active at a time and can be switched at runtime. Classify is best-effort:
// any backend failure yields an empty result set, never a partial one.
type Gateway struct {
	mu       sync.RWMutex
	active   string
	backends map[string]Classifier
	order    []string
}

func NewGateway(backends ...Classifier) *Gateway {
	g := &Gateway{backends: make(map[string]Classifier)}
	for _, b := range backends {
		if _, exists := g.backends[b.Name()]; exists {
			continue
		}
		g.backends[b.Name()] = b
		g.order = append(g.order, b.Name())
	}
	if len(g.order) > 0 {
		g.active = g.order[0]
	}
	return g
}

// SetBackend switches the active backend. Unknown or unconfigured names are
// rejected so a bad configure call can never leave the gateway without a
// working backend.
func (g *Gateway) SetBackend(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.backends[name]; !ok {
		return fmt.Errorf("backend %q is not configured", name)
	}
	g.active = name
	return nil
}

func (g *Gateway) Backend() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active
}

func (g *Gateway) Backends() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

func (g *Gateway) Classify(ctx context.Context, articles []ClassifyInput) []Classification {
	if len(articles) == 0 {
		return nil
	}

	g.mu.RLock()
	backend := g.backends[g.active]
	g.mu.RUnlock()

	if backend == nil {
		slog.Error("no classification backend configured")
		return nil
	}

	results, err := backend.ClassifyBatch(ctx, articles)
	if err != nil {
		slog.Error("batch classification failed", "backend", backend.Name(), "error", err)
		return nil
	}

	slog.Info("batch classified", "backend", backend.Name(), "count", len(results))
	return results
}

// ClassifyOne scores a single article through the active backend. It is the
// degenerate one-element batch, kept for callers outside the polling pipeline.
func (g *Gateway) ClassifyOne(ctx context.Context, article ClassifyInput) (Classification, bool) {
	results := g.Classify(ctx, []ClassifyInput{article})
	if len(results) == 0 {
		return Classification{}, false
	}
	return results[0], true
}
