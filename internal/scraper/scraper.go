package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/logger"
)

const (
	minUsefulChars = 100
	maxPageChars   = 50000
)

var ErrNoContent = errors.New("scraper: no readable content")

// Options configures the fallback readers. Empty base URLs use the public
// endpoints.
type Options struct {
	SupadataAPIKey  string
	JinaBaseURL     string
	SupadataBaseURL string
	Timeout         time.Duration
}

// Scraper turns a web page into plain text: a direct goquery scrape first,
// then the Jina reader, then Supadata
type Scraper struct {
	client *http.Client
	opts   Options
	log    *logger.Logger
}

func NewScraper(opts Options, log *logger.Logger) *Scraper {
	if opts.JinaBaseURL == "" {
		opts.JinaBaseURL = "https://r.jina.ai/"
	}
	if opts.SupadataBaseURL == "" {
		opts.SupadataBaseURL = "https://api.supadata.ai/v1/web/scrape"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Scraper{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
		log:    log.With("component", "Scraper"),
	}
}

type reader struct {
	name string
	read func(ctx context.Context, target string) (string, error)
}

// Scrape fetches target and returns its readable text
func (s *Scraper) Scrape(ctx context.Context, target string) (string, error) {
	readers := []reader{
		{"direct", s.directScrape},
		{"jina", s.jinaScrape},
		{"supadata", s.supadataScrape},
	}
	for _, r := range readers {
		content, err := r.read(ctx, target)
		if err == nil && len(content) > minUsefulChars {
			s.log.Debug("[Scraper.Scrape] extracted", "url", target, "reader", r.name, "chars", len(content))
			return ai.TruncateToLimit(content, maxPageChars), nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.log.Debug("[Scraper.Scrape] reader gave nothing useful", "url", target, "reader", r.name, "error", err)
	}
	return "", fmt.Errorf("%s: %w", target, ErrNoContent)
}

func (s *Scraper) get(ctx context.Context, target string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}

var browserHeaders = http.Header{
	"User-Agent":      {"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"},
	"Accept":          {"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
	"Accept-Language": {"en-US,en;q=0.9"},
	"Cache-Control":   {"no-cache"},
}

var contentSelectors = []string{"article", "[role='main']", "main", ".post-content", ".article-content", ".entry-content", ".content"}

func (s *Scraper) directScrape(ctx context.Context, target string) (string, error) {
	resp, err := s.get(ctx, target, browserHeaders)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find("script, style, nav, footer, header, aside, .sidebar, .advertisement, .ads").Remove()

	var sb strings.Builder
	collect := func(sel *goquery.Selection, minLen int) {
		sel.Each(func(_ int, n *goquery.Selection) {
			if text := strings.TrimSpace(n.Text()); len(text) > minLen {
				sb.WriteString(text)
				sb.WriteString("\n\n")
			}
		})
	}
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			collect(sel.Find("p, h1, h2, h3, li"), 20)
			break
		}
	}
	if sb.Len() == 0 {
		collect(doc.Find("body p"), 30)
	}
	return strings.TrimSpace(sb.String()), nil
}

func (s *Scraper) jinaScrape(ctx context.Context, target string) (string, error) {
	resp, err := s.get(ctx, s.opts.JinaBaseURL+target, http.Header{"Accept": {"text/plain"}})
	if err != nil {
		return "", fmt.Errorf("jina: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read jina response: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

func (s *Scraper) supadataScrape(ctx context.Context, target string) (string, error) {
	if s.opts.SupadataAPIKey == "" {
		return "", errors.New("supadata api key not set")
	}
	endpoint := s.opts.SupadataBaseURL + "?url=" + url.QueryEscape(target)
	resp, err := s.get(ctx, endpoint, http.Header{
		"X-Api-Key":    {s.opts.SupadataAPIKey},
		"Content-Type": {"application/json"},
	})
	if err != nil {
		return "", fmt.Errorf("supadata: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse supadata response: %w", err)
	}
	if result.Content == "" {
		return "", errors.New("no content in supadata response")
	}
	return result.Content, nil
}
