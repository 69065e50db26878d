package ai

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amityadav/studybuddy/internal/domain"
	"google.golang.org/genai"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain array", `[1,2]`, `[1,2]`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Here you go: [\"x\"] hope it helps", `["x"]`},
		{"nested object", "```\n{\"a\":{\"b\":[1]}}\n```", `{"a":{"b":[1]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSON(tt.in); got != tt.want {
				t.Errorf("cleanJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateToLimit(t *testing.T) {
	if got := TruncateToLimit("héllo", 2); got != "hé" {
		t.Fatalf("TruncateToLimit rune-aware = %q", got)
	}
	if got := TruncateToLimit("abc", 0); got != "abc" {
		t.Fatalf("zero limit should disable truncation, got %q", got)
	}
	in := DefaultLimits().Apply(Input{Content: strings.Repeat("a", 30005), Context: strings.Repeat("b", 10001)})
	if len(in.Content) != 30000 || len(in.Context) != 10000 {
		t.Fatalf("Apply lengths = %d/%d", len(in.Content), len(in.Context))
	}
}

func TestNormalizeQuiz_DropsUnanswerable(t *testing.T) {
	got := normalizeQuiz([]domain.QuizQuestion{
		{Question: "ok", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Question: "out of range", Options: []string{"a", "b"}, CorrectAnswer: 2},
		{Question: "one option", Options: []string{"a"}, CorrectAnswer: 0},
		{Question: "  ", Options: []string{"a", "b"}},
	})
	if len(got) != 1 || got[0].Question != "ok" || got[0].ID == "" {
		t.Fatalf("unexpected quiz: %+v", got)
	}
}

func TestNormalizeConceptMap_UniqueIDs(t *testing.T) {
	root := &domain.ConceptMapNode{ID: "a", Label: "Root", Children: []*domain.ConceptMapNode{
		{ID: "a", Label: "Dup"},
		{ID: "", Label: "NoID"},
		{ID: "x", Label: ""},
	}}
	got := normalizeConceptMap(root)
	if len(got.Children) != 2 {
		t.Fatalf("expected unlabeled child dropped, got %d children", len(got.Children))
	}
	ids := map[string]bool{got.ID: true}
	for _, c := range got.Children {
		if c.ID == "" || ids[c.ID] {
			t.Fatalf("duplicate or empty id %q", c.ID)
		}
		ids[c.ID] = true
	}
	if normalizeConceptMap(&domain.ConceptMapNode{}) != nil {
		t.Fatal("root without label should be rejected")
	}
}

func TestNormalizeLocationsAndTerms(t *testing.T) {
	locs := normalizeLocations([]rawLocation{
		{Name: "Giza", Lat: 29.97, Lng: 31.13, Category: "Historical"},
		{Name: "Nowhere", Lat: 200, Lng: 0},
		{Name: "CERN", Lat: 46.23, Lng: 6.05, Category: "physics"},
	})
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %+v", locs)
	}
	if locs[0].Category != domain.LocationHistorical || locs[1].Category != domain.LocationOther {
		t.Fatalf("unexpected categories: %s %s", locs[0].Category, locs[1].Category)
	}

	terms := normalizeKeyTerms([]string{"Osmosis", " osmosis ", "", "Diffusion"})
	if len(terms) != 2 || terms[0] != "Osmosis" || terms[1] != "Diffusion" {
		t.Fatalf("unexpected terms: %v", terms)
	}
}

func TestNormalizeLesson(t *testing.T) {
	bad := &domain.QuizQuestion{Question: "q", Options: []string{"a"}}
	l, err := normalizeLesson("Cells", domain.AudioLesson{
		Segments: []domain.AudioLessonSegment{
			{Text: "Intro", Quiz: bad, VideoQuery: " cell video "},
			{Text: "   "},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Segments) != 1 || l.Segments[0].Quiz != nil || l.Segments[0].VideoQuery != "cell video" {
		t.Fatalf("unexpected segments: %+v", l.Segments)
	}
	if l.Title != "Cells" || l.ID == "" || l.FinalTest == nil {
		t.Fatalf("unexpected lesson: %+v", l)
	}

	if _, err := normalizeLesson("Empty", domain.AudioLesson{}); !errors.Is(err, errEmptyLesson) {
		t.Fatalf("expected errEmptyLesson, got %v", err)
	}
}

func TestPCMToWAV_Header(t *testing.T) {
	pcm := make([]byte, 100)
	wav := pcmToWAV(pcm, sampleRate("audio/L16;codec=pcm;rate=16000"))
	if len(wav) != 144 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("bad header: %q", wav[:12])
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 16000 {
		t.Fatalf("sample rate = %d", rate)
	}
	if size := binary.LittleEndian.Uint32(wav[40:44]); size != 100 {
		t.Fatalf("data size = %d", size)
	}
	if sampleRate("audio/L16") != defaultSampleRate {
		t.Fatal("expected default sample rate")
	}
}

func TestUnconfigured(t *testing.T) {
	var e Engine = Unconfigured{}
	if _, err := e.Flashcards(context.Background(), Input{}); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if _, err := NewGeminiGenerator(nil, "m", DefaultLimits(), nil).Summary(context.Background(), Input{}); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("nil client should report missing credential, got %v", err)
	}
}

// fakeGemini serves a canned generateContent response for any model
func fakeGemini(t *testing.T, text string) *genai.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	if err != nil {
		t.Fatalf("genai.NewClient: %v", err)
	}
	return client
}

func TestGeminiGenerator_Flashcards(t *testing.T) {
	client := fakeGemini(t, "```json\n[{\"front\":\"What is ATP?\",\"back\":\"Energy currency\"},{\"front\":\"\",\"back\":\"x\"}]\n```")
	g := NewGeminiGenerator(client, "gemini-test", DefaultLimits(), nil)

	cards, err := g.Flashcards(context.Background(), Input{Content: "ATP stores energy."})
	if err != nil {
		t.Fatalf("Flashcards: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "What is ATP?" || cards[0].Status != domain.CardNew {
		t.Fatalf("unexpected cards: %+v", cards)
	}
}

func TestGeminiGenerator_MalformedJSON(t *testing.T) {
	client := fakeGemini(t, "sorry, I cannot help with that")
	g := NewGeminiGenerator(client, "gemini-test", DefaultLimits(), nil)

	if _, err := g.Quiz(context.Background(), Input{Content: "x"}); err == nil {
		t.Fatal("expected parse error for non-JSON reply")
	}
}
