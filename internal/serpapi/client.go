package serpapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/search"
	g "github.com/serpapi/google-search-results-golang"
)

// Client is a wrapper around the SerpApi Google search service
type Client struct {
	apiKey string
	log    *logger.Logger
}

func NewClient(apiKey string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{apiKey: apiKey, log: log.With("component", "SerpApi")}
}

func (c *Client) Name() string {
	return "serpapi"
}

// Search implements search.SearchProvider. The SerpApi SDK has no context
// support, so the call runs on its own goroutine and is abandoned when ctx
// ends first.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]search.Article, error) {
	if c.apiKey == "" {
		return nil, errors.New("serpapi api key is not set")
	}
	params := map[string]string{
		"engine":        "google",
		"q":             query,
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
	}

	type result struct {
		data map[string]interface{}
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := g.NewGoogleSearch(params, c.apiKey).GetJSON()
		done <- result{data, err}
	}()

	c.log.Debug("[SerpApi.Search] Searching", "query", query)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("serpapi search failed: %w", r.err)
		}
		articles := parseOrganic(r.data, maxResults)
		c.log.Debug("[SerpApi.Search] Done", "query", query, "results", len(articles))
		return articles, nil
	}
}

// parseOrganic reads the organic_results node of a SerpApi response
func parseOrganic(data map[string]interface{}, maxResults int) []search.Article {
	organic, ok := data["organic_results"].([]interface{})
	if !ok {
		return []search.Article{}
	}
	out := make([]search.Article, 0, len(organic))
	for _, item := range organic {
		if maxResults > 0 && len(out) >= maxResults {
			break
		}
		res, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := res["title"].(string)
		link, _ := res["link"].(string)
		snippet, _ := res["snippet"].(string)
		if title == "" || link == "" {
			continue
		}
		out = append(out, search.Article{Title: title, URL: link, Snippet: snippet, Provider: "serpapi"})
	}
	return out
}
