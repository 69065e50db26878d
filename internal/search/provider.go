package search

import "context"

// Article is one web result from any provider
type Article struct {
	Title    string
	URL      string
	Snippet  string
	Provider string // "tavily", "serpapi"
}

// SearchProvider is the interface all search providers implement
type SearchProvider interface {
	// Name returns the provider identifier
	Name() string

	// Search returns up to maxResults web results for query
	Search(ctx context.Context, query string, maxResults int) ([]Article, error)
}
