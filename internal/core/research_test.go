package core

import (
	"context"
	"errors"
	"testing"

	"github.com/amityadav/studybuddy/internal/search"
)

func TestResearch_UsesProviderArticles(t *testing.T) {
	reg := search.NewRegistry(nil)
	reg.Register(stubSearch{articles: []search.Article{{Title: "A", URL: "https://a"}}})
	r := &fakeResearcher{}

	report, err := NewResearchService(reg, r, nil).Research(context.Background(), "  volcanoes ")
	if err != nil {
		t.Fatal(err)
	}
	if r.grounded || len(r.articles) != 1 {
		t.Fatalf("expected provider path, grounded=%v articles=%d", r.grounded, len(r.articles))
	}
	if report.SummaryHTML != "<p>report</p>" {
		t.Fatalf("summary not sanitized: %q", report.SummaryHTML)
	}
}

func TestResearch_FallsBackToGrounding(t *testing.T) {
	r := &fakeResearcher{}
	report, err := NewResearchService(search.NewRegistry(nil), r, nil).Research(context.Background(), "volcanoes")
	if err != nil {
		t.Fatal(err)
	}
	if !r.grounded || report.SummaryHTML != "<p>grounded</p>" {
		t.Fatalf("expected grounded research, got %+v", report)
	}
}

func TestResearch_EmptyQuery(t *testing.T) {
	_, err := NewResearchService(search.NewRegistry(nil), &fakeResearcher{}, nil).Research(context.Background(), " ")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}
