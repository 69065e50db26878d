package ai

import (
	"context"
	"errors"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/search"
)

// ErrMissingCredential is returned by every call when no Gemini API key is configured
var ErrMissingCredential = errors.New("ai: gemini api key not configured")

// Input is the raw material a generation call works from
type Input struct {
	Content string
	Context string
	Images  []domain.Image
}

// Generator produces every derived artifact of a study material. Each call
// is independent; failures are returned as-is and never retried.
type Generator interface {
	Summary(ctx context.Context, in Input) (string, error)
	Overview(ctx context.Context, in Input) (string, error)
	Flashcards(ctx context.Context, in Input) ([]domain.Flashcard, error)
	Quiz(ctx context.Context, in Input) ([]domain.QuizQuestion, error)
	ConceptMap(ctx context.Context, in Input) (*domain.ConceptMapNode, error)
	Locations(ctx context.Context, in Input) ([]domain.StudyLocation, error)
	KeyTerms(ctx context.Context, in Input) ([]string, error)
	AudioLesson(ctx context.Context, title string, in Input) (*domain.AudioLesson, error)
}

// Citation is one web source backing a research report
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ResearchReport is the web-search collaborator's result
type ResearchReport struct {
	SummaryHTML string     `json:"summaryHtml"`
	Timeline    []string   `json:"timeline"`
	Sources     []Citation `json:"sources"`
}

// Researcher writes research reports, either from articles gathered by
// search providers or through the model's own search grounding
type Researcher interface {
	Research(ctx context.Context, query string, articles []search.Article) (ResearchReport, error)
	GroundedResearch(ctx context.Context, query string) (ResearchReport, error)
}
