package search

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	name     string
	articles []Article
	err      error
}

func (s stubProvider) Name() string { return s.name }

func (s stubProvider) Search(context.Context, string, int) ([]Article, error) {
	return s.articles, s.err
}

func TestRegistry_GatherMergesAndDedupes(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(stubProvider{name: "a", articles: []Article{{URL: "https://x"}, {URL: "https://y"}}})
	r.Register(stubProvider{name: "broken", err: errors.New("quota")})
	r.Register(stubProvider{name: "b", articles: []Article{{URL: "https://y"}, {URL: "https://z"}, {URL: ""}}})

	got := r.Gather(context.Background(), "q", 5)
	if len(got) != 3 || got[0].URL != "https://x" || got[1].URL != "https://y" || got[2].URL != "https://z" {
		t.Fatalf("unexpected articles: %+v", got)
	}
	if r.Count() != 3 {
		t.Fatalf("Count() = %d", r.Count())
	}
}

func TestRegistry_GatherEmpty(t *testing.T) {
	if got := NewRegistry(nil).Gather(context.Background(), "q", 5); len(got) != 0 {
		t.Fatalf("expected nothing, got %v", got)
	}
}
