package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/search"
)

const defaultAPIURL = "https://api.tavily.com/search"

// Client is a Tavily Search API client
type Client struct {
	apiKey string
	apiURL string
	client *http.Client
	log    *logger.Logger
}

func NewClient(apiKey string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		apiKey: apiKey,
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log.With("component", "Tavily"),
	}
}

// WithBaseURL points the client at another endpoint, for tests
func (c *Client) WithBaseURL(u string) *Client {
	c.apiURL = u
	return c
}

type searchRequest struct {
	Query         string `json:"query"`
	APIKey        string `json:"api_key"`
	SearchDepth   string `json:"search_depth,omitempty"` // "basic" or "advanced"
	Topic         string `json:"topic,omitempty"`
	IncludeAnswer bool   `json:"include_answer,omitempty"`
	MaxResults    int    `json:"max_results,omitempty"`
}

type searchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

func (c *Client) Name() string {
	return "tavily"
}

// Search implements search.SearchProvider with a general-topic search
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]search.Article, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	body, err := json.Marshal(searchRequest{
		Query:       query,
		APIKey:      c.apiKey,
		SearchDepth: "basic",
		Topic:       "general",
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.log.Debug("[Tavily.Search] Searching", "query", query, "max_results", maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error: %d %s", resp.StatusCode, string(b))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	articles := make([]search.Article, 0, len(sr.Results))
	for _, r := range sr.Results {
		articles = append(articles, search.Article{
			Title:    r.Title,
			URL:      r.URL,
			Snippet:  r.Content,
			Provider: c.Name(),
		})
	}
	c.log.Debug("[Tavily.Search] Done", "query", query, "results", len(articles))
	return articles, nil
}
