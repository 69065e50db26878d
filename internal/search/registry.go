package search

import (
	"context"
	"sync"

	"github.com/amityadav/studybuddy/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Registry holds all registered search providers
type Registry struct {
	mu        sync.RWMutex
	providers []SearchProvider
	log       *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNop()
	}
	return &Registry{log: log.With("component", "SearchRegistry")}
}

func (r *Registry) Register(provider SearchProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, provider)
}

func (r *Registry) GetAll() []SearchProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]SearchProvider(nil), r.providers...)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// Gather queries every provider concurrently and merges their results in
// registration order, dropping duplicate URLs. A failing provider is logged
// and skipped.
func (r *Registry) Gather(ctx context.Context, query string, perProvider int) []Article {
	providers := r.GetAll()
	results := make([][]Article, len(providers))

	var g errgroup.Group
	for i, p := range providers {
		g.Go(func() error {
			articles, err := p.Search(ctx, query, perProvider)
			if err != nil {
				r.log.Warn("[Registry.Gather] provider failed", "provider", p.Name(), "error", err)
				return nil
			}
			results[i] = articles
			return nil
		})
	}
	_ = g.Wait()

	var out []Article
	seen := map[string]bool{}
	for _, articles := range results {
		for _, a := range articles {
			if a.URL == "" || seen[a.URL] {
				continue
			}
			seen[a.URL] = true
			out = append(out, a)
		}
	}
	return out
}
