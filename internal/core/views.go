package core

import (
	"context"
	"sort"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/store"
)

// View is one tab the presentation layer can offer for a material
type View string

const (
	ViewOverview   View = "overview"
	ViewFlashcards View = "flashcards"
	ViewQuiz       View = "quiz"
	ViewLocations  View = "locations"
	ViewKeyTerms   View = "keyTerms"
)

// Bundle is a material with every side table entry it owns
type Bundle struct {
	Material   domain.StudyMaterial   `json:"material"`
	Overview   string                 `json:"overview"`
	Flashcards []domain.Flashcard     `json:"flashcards"`
	Quiz       []domain.QuizQuestion  `json:"quiz"`
	ConceptMap *domain.ConceptMapNode `json:"conceptMap"`
	Locations  []domain.StudyLocation `json:"locations"`
	KeyTerms   []string               `json:"keyTerms"`
}

// Library is the read side over stored materials
type Library struct {
	store *store.Store
}

func NewLibrary(s *store.Store) *Library {
	return &Library{store: s}
}

// ListMaterials returns materials newest first. Equal timestamps keep
// insertion order.
func (l *Library) ListMaterials(ctx context.Context) []domain.StudyMaterial {
	list := l.store.Materials(ctx)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt > list[j].CreatedAt
	})
	return list
}

// LoadBundle gathers a material and its side tables. Missing side tables
// come back as empty values; found reports whether the material exists.
func (l *Library) LoadBundle(ctx context.Context, id string) (b Bundle, found bool) {
	b.Material, found = l.store.Material(ctx, id)
	b.Overview = l.store.Overview(ctx, id)
	b.Flashcards = l.store.Flashcards(ctx, id)
	b.Quiz = l.store.Quiz(ctx, id)
	b.ConceptMap = l.store.ConceptMap(ctx, id)
	b.Locations = l.store.Locations(ctx, id)
	b.KeyTerms = l.store.KeyTerms(ctx, id)
	return b, found
}

// AvailableViews always starts with the overview, followed by each
// non-empty side table in fixed priority order
func AvailableViews(b Bundle) []View {
	views := []View{ViewOverview}
	if len(b.Flashcards) > 0 {
		views = append(views, ViewFlashcards)
	}
	if len(b.Quiz) > 0 {
		views = append(views, ViewQuiz)
	}
	if len(b.Locations) > 0 {
		views = append(views, ViewLocations)
	}
	if len(b.KeyTerms) > 0 {
		views = append(views, ViewKeyTerms)
	}
	return views
}

// ClampView returns selected when it indexes views and 0 otherwise
func ClampView(views []View, selected int) int {
	if selected < 0 || selected >= len(views) {
		return 0
	}
	return selected
}
