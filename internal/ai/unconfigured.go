package ai

import (
	"context"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/search"
)

// Unconfigured fails every call with ErrMissingCredential
type Unconfigured struct{}

func (Unconfigured) Summary(context.Context, Input) (string, error) {
	return "", ErrMissingCredential
}

func (Unconfigured) Overview(context.Context, Input) (string, error) {
	return "", ErrMissingCredential
}

func (Unconfigured) Flashcards(context.Context, Input) ([]domain.Flashcard, error) {
	return nil, ErrMissingCredential
}

func (Unconfigured) Quiz(context.Context, Input) ([]domain.QuizQuestion, error) {
	return nil, ErrMissingCredential
}

func (Unconfigured) ConceptMap(context.Context, Input) (*domain.ConceptMapNode, error) {
	return nil, ErrMissingCredential
}

func (Unconfigured) Locations(context.Context, Input) ([]domain.StudyLocation, error) {
	return nil, ErrMissingCredential
}

func (Unconfigured) KeyTerms(context.Context, Input) ([]string, error) {
	return nil, ErrMissingCredential
}

func (Unconfigured) AudioLesson(context.Context, string, Input) (*domain.AudioLesson, error) {
	return nil, ErrMissingCredential
}

func (Unconfigured) Research(context.Context, string, []search.Article) (ResearchReport, error) {
	return ResearchReport{}, ErrMissingCredential
}

func (Unconfigured) GroundedResearch(context.Context, string) (ResearchReport, error) {
	return ResearchReport{}, ErrMissingCredential
}
