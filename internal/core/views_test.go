package core

import (
	"context"
	"reflect"
	"testing"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/store"
)

func TestListMaterials_NewestFirstStable(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryBackend(), "test", nil)
	defer s.Close()

	for _, m := range []domain.StudyMaterial{
		{ID: "a", CreatedAt: 10},
		{ID: "b", CreatedAt: 30},
		{ID: "c", CreatedAt: 20},
		{ID: "d", CreatedAt: 30},
	} {
		if err := s.AppendMaterial(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	var ids []string
	for _, m := range NewLibrary(s).ListMaterials(ctx) {
		ids = append(ids, m.ID)
	}
	if want := []string{"b", "d", "c", "a"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
}

func TestLoadBundle_MissingSideTablesAreEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryBackend(), "test", nil)
	defer s.Close()
	_ = s.AppendMaterial(ctx, domain.StudyMaterial{ID: "m1", Title: "Bare"})

	b, found := NewLibrary(s).LoadBundle(ctx, "m1")
	if !found || b.Material.Title != "Bare" {
		t.Fatalf("material not loaded: %+v", b.Material)
	}
	if b.Flashcards == nil || b.Quiz == nil || b.Locations == nil || b.KeyTerms == nil {
		t.Fatal("side tables should be empty, not nil")
	}
	if b.Overview != "" || b.ConceptMap != nil {
		t.Fatal("unexpected overview or concept map")
	}
	if views := AvailableViews(b); !reflect.DeepEqual(views, []View{ViewOverview}) {
		t.Fatalf("views = %v", views)
	}

	if _, found := NewLibrary(s).LoadBundle(ctx, "never-saved"); found {
		t.Fatal("unknown id reported as found")
	}
}

func TestAvailableViews_PriorityOrder(t *testing.T) {
	b := Bundle{
		KeyTerms:   []string{"x"},
		Locations:  []domain.StudyLocation{{Name: "Rome"}},
		Flashcards: []domain.Flashcard{{ID: "c"}},
		Quiz:       []domain.QuizQuestion{{ID: "q"}},
	}
	want := []View{ViewOverview, ViewFlashcards, ViewQuiz, ViewLocations, ViewKeyTerms}
	if got := AvailableViews(b); !reflect.DeepEqual(got, want) {
		t.Fatalf("AvailableViews() = %v, want %v", got, want)
	}
}

func TestClampView(t *testing.T) {
	views := AvailableViews(Bundle{Flashcards: []domain.Flashcard{{ID: "c"}}})
	tests := []struct {
		selected int
		want     int
	}{
		{0, 0},
		{1, 1},
		{3, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := ClampView(views, tt.selected); got != tt.want {
			t.Errorf("ClampView(%d) = %d, want %d", tt.selected, got, tt.want)
		}
	}
}
