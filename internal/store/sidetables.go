package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/amityadav/studybuddy/internal/domain"
)

// Side tables are map-valued families keyed by material id. Reads of a
// missing id return the type's empty value.

func (s *Store) Flashcards(ctx context.Context, materialID string) []domain.Flashcard {
	cards, _ := readEntry[[]domain.Flashcard](ctx, s, familyFlashcards, materialID)
	if cards == nil {
		return []domain.Flashcard{}
	}
	return cards
}

func (s *Store) SaveFlashcards(ctx context.Context, materialID string, cards []domain.Flashcard) error {
	return writeEntry(ctx, s, familyFlashcards, materialID, cards)
}

// UpdateFlashcard applies fn to one card in place and returns the updated
// card. ErrNotFound is returned when the card does not exist.
func (s *Store) UpdateFlashcard(ctx context.Context, materialID, cardID string, fn func(*domain.Flashcard)) (domain.Flashcard, error) {
	var updated domain.Flashcard
	_, err := mutate(ctx, s, familyFlashcards, newMap[[]domain.Flashcard], func(m map[string][]domain.Flashcard) (map[string][]domain.Flashcard, error) {
		cards := m[materialID]
		for i := range cards {
			if cards[i].ID == cardID {
				fn(&cards[i])
				updated = cards[i]
				return m, nil
			}
		}
		return nil, fmt.Errorf("flashcard %s/%s: %w", materialID, cardID, ErrNotFound)
	})
	if err != nil {
		return domain.Flashcard{}, err
	}
	return updated, nil
}

func (s *Store) Quiz(ctx context.Context, materialID string) []domain.QuizQuestion {
	qs, _ := readEntry[[]domain.QuizQuestion](ctx, s, familyQuizzes, materialID)
	if qs == nil {
		return []domain.QuizQuestion{}
	}
	return qs
}

func (s *Store) SaveQuiz(ctx context.Context, materialID string, questions []domain.QuizQuestion) error {
	return writeEntry(ctx, s, familyQuizzes, materialID, questions)
}

func (s *Store) Overview(ctx context.Context, materialID string) string {
	text, _ := readEntry[string](ctx, s, familyOverviews, materialID)
	return text
}

func (s *Store) SaveOverview(ctx context.Context, materialID, text string) error {
	return writeEntry(ctx, s, familyOverviews, materialID, text)
}

// ConceptMap returns nil when no map was generated
func (s *Store) ConceptMap(ctx context.Context, materialID string) *domain.ConceptMapNode {
	root, _ := readEntry[*domain.ConceptMapNode](ctx, s, familyConceptMaps, materialID)
	return root
}

func (s *Store) SaveConceptMap(ctx context.Context, materialID string, root *domain.ConceptMapNode) error {
	return writeEntry(ctx, s, familyConceptMaps, materialID, root)
}

func (s *Store) Locations(ctx context.Context, materialID string) []domain.StudyLocation {
	locs, _ := readEntry[[]domain.StudyLocation](ctx, s, familyLocations, materialID)
	if locs == nil {
		return []domain.StudyLocation{}
	}
	return locs
}

func (s *Store) SaveLocations(ctx context.Context, materialID string, locs []domain.StudyLocation) error {
	return writeEntry(ctx, s, familyLocations, materialID, locs)
}

func (s *Store) KeyTerms(ctx context.Context, materialID string) []string {
	terms, _ := readEntry[[]string](ctx, s, familyKeyTerms, materialID)
	if terms == nil {
		return []string{}
	}
	return terms
}

func (s *Store) SaveKeyTerms(ctx context.Context, materialID string, terms []string) error {
	return writeEntry(ctx, s, familyKeyTerms, materialID, terms)
}

// DeleteSideTables removes every side-table entry owned by materialID.
// Every family is attempted; the joined error reports the ones that failed.
func (s *Store) DeleteSideTables(ctx context.Context, materialID string) error {
	return errors.Join(
		deleteEntry[[]domain.Flashcard](ctx, s, familyFlashcards, materialID),
		deleteEntry[[]domain.QuizQuestion](ctx, s, familyQuizzes, materialID),
		deleteEntry[string](ctx, s, familyOverviews, materialID),
		deleteEntry[*domain.ConceptMapNode](ctx, s, familyConceptMaps, materialID),
		deleteEntry[[]domain.StudyLocation](ctx, s, familyLocations, materialID),
		deleteEntry[[]string](ctx, s, familyKeyTerms, materialID),
	)
}
