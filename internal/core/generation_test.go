package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/store"
)

var families = []string{"materials", "flashcards", "quizzes", "overviews", "conceptMaps", "locations", "keyTerms"}

func newOrchestrator(t *testing.T, gen ai.Generator) (*Orchestrator, *store.Store, *store.MemoryBackend) {
	t.Helper()
	b := store.NewMemoryBackend()
	s := store.New(b, "test", nil)
	t.Cleanup(func() { _ = s.Close() })
	o := NewOrchestrator(s, gen, nil, nil)
	o.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return o, s, b
}

func TestGenerate_AllModules(t *testing.T) {
	ctx := context.Background()
	o, s, _ := newOrchestrator(t, &fakeGenerator{})

	id, err := o.Generate(ctx, GenerateRequest{Title: "Cells", Content: "cells", Subject: "bio", Modules: AllModules()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	m, ok := s.Material(ctx, id)
	if !ok {
		t.Fatal("material not stored")
	}
	if m.Type != domain.MaterialText || m.Title != "Cells" || m.Subject != "bio" || m.CreatedAt != 1700000000000 {
		t.Fatalf("unexpected material: %+v", m)
	}
	if m.Content != "<p>Summary of cells</p>" {
		t.Fatalf("summary not sanitized: %q", m.Content)
	}
	if s.Overview(ctx, id) != "A short overview." {
		t.Fatal("overview missing")
	}
	if len(s.Flashcards(ctx, id)) != 1 || len(s.Quiz(ctx, id)) != 2 || s.ConceptMap(ctx, id) == nil ||
		len(s.Locations(ctx, id)) != 1 || len(s.KeyTerms(ctx, id)) != 1 {
		t.Fatal("side tables not written")
	}
}

func TestGenerate_FailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	o, s, b := newOrchestrator(t, &fakeGenerator{fail: map[string]bool{"quiz": true}})

	_, err := o.Generate(ctx, GenerateRequest{Title: "x", Content: "x", Modules: AllModules()})
	if !errors.Is(err, ErrGenerationFailed) || !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped generation failure, got %v", err)
	}
	if got := s.Materials(ctx); len(got) != 0 {
		t.Fatalf("material persisted after failure: %v", got)
	}
	for _, f := range families {
		if _, ok, _ := b.Get(ctx, "test:"+f); ok {
			t.Errorf("family %s written after failure", f)
		}
	}
}

func TestGenerate_ModuleSkip(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{}
	o, s, _ := newOrchestrator(t, gen)

	id, err := o.Generate(ctx, GenerateRequest{Title: "t", Content: "only", Modules: Modules{Summary: true}})
	if err != nil {
		t.Fatal(err)
	}
	m, _ := s.Material(ctx, id)
	if m.Content != "<p>Summary of only</p>" {
		t.Fatalf("content = %q", m.Content)
	}
	if len(s.Flashcards(ctx, id)) != 0 || len(s.Quiz(ctx, id)) != 0 || s.ConceptMap(ctx, id) != nil ||
		len(s.Locations(ctx, id)) != 0 || len(s.KeyTerms(ctx, id)) != 0 {
		t.Fatal("disabled modules produced side tables")
	}
	// summary + overview
	if n := gen.calls.Load(); n != 2 {
		t.Fatalf("expected 2 collaborator calls, got %d", n)
	}
}

func TestGenerate_NoSummaryMeansEmptyContent(t *testing.T) {
	ctx := context.Background()
	o, s, _ := newOrchestrator(t, &fakeGenerator{})

	id, err := o.Generate(ctx, GenerateRequest{Title: "t", Content: "c", Modules: Modules{Flashcards: true}})
	if err != nil {
		t.Fatal(err)
	}
	m, _ := s.Material(ctx, id)
	if m.Content != "" || s.Overview(ctx, id) != "" {
		t.Fatalf("expected empty content and overview, got %q / %q", m.Content, s.Overview(ctx, id))
	}
}

func TestGenerate_PersistenceFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	b := failingSetBackend{MemoryBackend: store.NewMemoryBackend(), suffix: ":locations"}
	s := store.New(b, "test", nil)
	defer s.Close()
	o := NewOrchestrator(s, &fakeGenerator{}, nil, nil)

	_, err := o.Generate(ctx, GenerateRequest{Title: "t", Content: "c", Modules: AllModules()})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if got := s.Materials(ctx); len(got) != 0 {
		t.Fatalf("material left behind: %v", got)
	}
	raw, _, _ := b.Get(ctx, "test:flashcards")
	if strings.Contains(string(raw), "c1") {
		t.Fatalf("flashcards left behind: %s", raw)
	}
}

func TestGenerate_UnconfiguredCredential(t *testing.T) {
	o, _, _ := newOrchestrator(t, ai.Unconfigured{})
	_, err := o.Generate(context.Background(), GenerateRequest{Title: "t", Content: "c", Modules: AllModules()})
	if !errors.Is(err, ai.ErrMissingCredential) {
		t.Fatalf("expected missing credential, got %v", err)
	}
}

func TestGenerate_UsesLinkExpander(t *testing.T) {
	ctx := context.Background()
	o, s, _ := newOrchestrator(t, &fakeGenerator{})
	o.expander = suffixExpander{}

	id, err := o.Generate(ctx, GenerateRequest{Title: "t", Content: "see link", Modules: Modules{Summary: true}})
	if err != nil {
		t.Fatal(err)
	}
	if m, _ := s.Material(ctx, id); m.Content != "<p>Summary of see link +linked</p>" {
		t.Fatalf("content = %q", m.Content)
	}
}

func TestGenerate_ModulesRunConcurrently(t *testing.T) {
	tests := []struct {
		name  string
		mods  Modules
		calls int
	}{
		// the summary flag drives both the summary and the overview call
		{"all modules", AllModules(), 7},
		{"partial", Modules{Summary: true, Quiz: true, Locations: true}, 4},
		{"single", Modules{Terms: true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newBarrierGenerator(tt.calls)
			o, s, _ := newOrchestrator(t, gen)

			id, err := o.Generate(context.Background(), GenerateRequest{Title: "t", Content: "c", Modules: tt.mods})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if got := gen.entered.Load(); got != int32(tt.calls) {
				t.Fatalf("calls = %d, want %d", got, tt.calls)
			}
			if _, ok := s.Material(context.Background(), id); !ok {
				t.Fatal("material not stored")
			}
		})
	}
}

func TestGenerateAudioLesson(t *testing.T) {
	ctx := context.Background()
	o, s, _ := newOrchestrator(t, &fakeGenerator{})

	id, err := o.GenerateAudioLesson(ctx, AudioLessonRequest{Title: "Lesson", Content: "c"})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := s.Material(ctx, id)
	if !ok || m.Type != domain.MaterialAudioLesson || m.AudioLessonData == nil || len(m.AudioLessonData.Segments) != 2 {
		t.Fatalf("unexpected material: %+v", m)
	}
	if m.Content != "<p>Part one &amp; more</p><p>Part two</p>" {
		t.Fatalf("content = %q", m.Content)
	}
}

func TestGenerateAudioLesson_FailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	o, s, _ := newOrchestrator(t, &fakeGenerator{fail: map[string]bool{"lesson": true}})

	if _, err := o.GenerateAudioLesson(ctx, AudioLessonRequest{Title: "L"}); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if len(s.Materials(ctx)) != 0 {
		t.Fatal("lesson persisted after failure")
	}
}

func TestGenerateAudioLesson_NilLessonIsFailure(t *testing.T) {
	ctx := context.Background()
	o, s, _ := newOrchestrator(t, &fakeGenerator{nilLesson: true})

	_, err := o.GenerateAudioLesson(ctx, AudioLessonRequest{Title: "L", Content: "c"})
	if !errors.Is(err, ErrGenerationFailed) || !errors.Is(err, errEmptyLesson) {
		t.Fatalf("expected ErrGenerationFailed wrapping errEmptyLesson, got %v", err)
	}
	if len(s.Materials(ctx)) != 0 {
		t.Fatal("material stored for an empty lesson")
	}
}
