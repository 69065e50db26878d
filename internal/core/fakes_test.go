package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/search"
	"github.com/amityadav/studybuddy/internal/store"
)

var errBoom = errors.New("boom")

// fakeGenerator returns canned artifacts; fail names the calls that error
type fakeGenerator struct {
	fail      map[string]bool
	calls     atomic.Int32
	nilLesson bool
}

func (f *fakeGenerator) check(name string) error {
	f.calls.Add(1)
	if f.fail[name] {
		return errBoom
	}
	return nil
}

func (f *fakeGenerator) Summary(_ context.Context, in ai.Input) (string, error) {
	return "<p>Summary of " + in.Content + "</p><script>x()</script>", f.check("summary")
}

func (f *fakeGenerator) Overview(context.Context, ai.Input) (string, error) {
	return "A short overview.", f.check("overview")
}

func (f *fakeGenerator) Flashcards(context.Context, ai.Input) ([]domain.Flashcard, error) {
	return []domain.Flashcard{{ID: "c1", Front: "Q", Back: "A", Status: domain.CardNew}}, f.check("flashcards")
}

func (f *fakeGenerator) Quiz(context.Context, ai.Input) ([]domain.QuizQuestion, error) {
	return []domain.QuizQuestion{
		{ID: "q1", Question: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1},
		{ID: "q2", Question: "Sky?", Options: []string{"blue", "green"}, CorrectAnswer: 0},
	}, f.check("quiz")
}

func (f *fakeGenerator) ConceptMap(context.Context, ai.Input) (*domain.ConceptMapNode, error) {
	return &domain.ConceptMapNode{ID: "root", Label: "Topic"}, f.check("map")
}

func (f *fakeGenerator) Locations(context.Context, ai.Input) ([]domain.StudyLocation, error) {
	return []domain.StudyLocation{{ID: "l1", Name: "Paris", Lat: 48.85, Lng: 2.35, Category: domain.LocationHistorical}}, f.check("locations")
}

func (f *fakeGenerator) KeyTerms(context.Context, ai.Input) ([]string, error) {
	return []string{"term"}, f.check("terms")
}

func (f *fakeGenerator) AudioLesson(_ context.Context, title string, _ ai.Input) (*domain.AudioLesson, error) {
	if err := f.check("lesson"); err != nil || f.nilLesson {
		return nil, err
	}
	return &domain.AudioLesson{
		ID:    "lesson",
		Title: title,
		Segments: []domain.AudioLessonSegment{
			{Text: "Part one & more"},
			{Text: "Part two", VideoQuery: "part two video"},
		},
		FinalTest: []domain.QuizQuestion{{Question: "Final?", Options: []string{"a", "b"}, CorrectAnswer: 1}},
	}, nil
}

// failingSetBackend fails writes to keys with the given suffix
type failingSetBackend struct {
	*store.MemoryBackend
	suffix string
}

func (b failingSetBackend) Set(ctx context.Context, key string, value []byte) error {
	if strings.HasSuffix(key, b.suffix) {
		return errBoom
	}
	return b.MemoryBackend.Set(ctx, key, value)
}

type fakeResearcher struct {
	grounded bool
	articles []search.Article
}

func (f *fakeResearcher) Research(_ context.Context, _ string, articles []search.Article) (ai.ResearchReport, error) {
	f.articles = articles
	return ai.ResearchReport{SummaryHTML: "<p>report</p><script>bad()</script>", Timeline: []string{}, Sources: []ai.Citation{{URI: articles[0].URL}}}, nil
}

func (f *fakeResearcher) GroundedResearch(context.Context, string) (ai.ResearchReport, error) {
	f.grounded = true
	return ai.ResearchReport{SummaryHTML: "<p>grounded</p>"}, nil
}

type stubSearch struct{ articles []search.Article }

func (stubSearch) Name() string { return "stub" }

func (s stubSearch) Search(context.Context, string, int) ([]search.Article, error) {
	return s.articles, nil
}

type suffixExpander struct{}

func (suffixExpander) Expand(_ context.Context, content string) string {
	return content + " +linked"
}

// barrierGenerator holds every call until want calls have entered, so it
// only succeeds when the calls run at the same time
type barrierGenerator struct {
	fakeGenerator
	want    int32
	entered atomic.Int32
	once    sync.Once
	ready   chan struct{}
}

func newBarrierGenerator(want int) *barrierGenerator {
	return &barrierGenerator{want: int32(want), ready: make(chan struct{})}
}

func (b *barrierGenerator) wait(ctx context.Context) error {
	if b.entered.Add(1) >= b.want {
		b.once.Do(func() { close(b.ready) })
	}
	select {
	case <-b.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		return fmt.Errorf("only %d of %d calls in flight", b.entered.Load(), b.want)
	}
}

func (b *barrierGenerator) Summary(ctx context.Context, in ai.Input) (string, error) {
	if err := b.wait(ctx); err != nil {
		return "", err
	}
	return b.fakeGenerator.Summary(ctx, in)
}

func (b *barrierGenerator) Overview(ctx context.Context, in ai.Input) (string, error) {
	if err := b.wait(ctx); err != nil {
		return "", err
	}
	return b.fakeGenerator.Overview(ctx, in)
}

func (b *barrierGenerator) Flashcards(ctx context.Context, in ai.Input) ([]domain.Flashcard, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return b.fakeGenerator.Flashcards(ctx, in)
}

func (b *barrierGenerator) Quiz(ctx context.Context, in ai.Input) ([]domain.QuizQuestion, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return b.fakeGenerator.Quiz(ctx, in)
}

func (b *barrierGenerator) ConceptMap(ctx context.Context, in ai.Input) (*domain.ConceptMapNode, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return b.fakeGenerator.ConceptMap(ctx, in)
}

func (b *barrierGenerator) Locations(ctx context.Context, in ai.Input) ([]domain.StudyLocation, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return b.fakeGenerator.Locations(ctx, in)
}

func (b *barrierGenerator) KeyTerms(ctx context.Context, in ai.Input) ([]string, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return b.fakeGenerator.KeyTerms(ctx, in)
}
