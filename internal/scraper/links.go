package scraper

import (
	"context"
	"regexp"
	"strings"
	"sync"
)

const maxExpandedLinks = 5

var urlPattern = regexp.MustCompile(`https?://[^\s<>"'\)\]]+`)

// ExtractURLs returns the distinct http(s) URLs in text, in order of first
// appearance
func ExtractURLs(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, u := range urlPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;:!?")
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

// Expand appends the text of every linked page to content. Pages that fail
// to load are skipped; Expand never fails.
func (s *Scraper) Expand(ctx context.Context, content string) string {
	urls := ExtractURLs(content)
	if len(urls) == 0 {
		return content
	}
	if len(urls) > maxExpandedLinks {
		urls = urls[:maxExpandedLinks]
	}

	pages := make([]string, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			text, err := s.Scrape(ctx, u)
			if err != nil {
				s.log.Warn("[Scraper.Expand] skipping link", "url", u, "error", err)
				return
			}
			pages[i] = text
		}(i, u)
	}
	wg.Wait()

	var sb strings.Builder
	sb.WriteString(content)
	for i, text := range pages {
		if text == "" {
			continue
		}
		sb.WriteString("\n\n--- Source: ")
		sb.WriteString(urls[i])
		sb.WriteString(" ---\n")
		sb.WriteString(text)
	}
	return sb.String()
}
