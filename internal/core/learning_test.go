package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/stats"
	"github.com/amityadav/studybuddy/internal/store"
)

func newLearning(t *testing.T, cascade bool) (*LearningCore, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), "test", nil)
	t.Cleanup(func() { _ = s.Close() })
	c := NewLearningCore(s, stats.NewTracker(s, time.UTC, nil), cascade, nil)
	c.now = func() time.Time { return time.UnixMilli(1000) }
	return c, s
}

func TestNextReview(t *testing.T) {
	tests := []struct {
		current  domain.CardStatus
		grade    domain.Difficulty
		status   domain.CardStatus
		interval time.Duration
	}{
		{domain.CardNew, domain.DifficultyHard, domain.CardLearning, 10 * time.Minute},
		{domain.CardMastered, domain.DifficultyHard, domain.CardLearning, 10 * time.Minute},
		{domain.CardNew, domain.DifficultyMedium, domain.CardReview, 24 * time.Hour},
		{domain.CardNew, domain.DifficultyEasy, domain.CardReview, 72 * time.Hour},
		{domain.CardLearning, domain.DifficultyEasy, domain.CardReview, 72 * time.Hour},
		{domain.CardReview, domain.DifficultyEasy, domain.CardMastered, 168 * time.Hour},
		{domain.CardMastered, domain.DifficultyEasy, domain.CardMastered, 168 * time.Hour},
	}
	for _, tt := range tests {
		status, interval := nextReview(tt.current, tt.grade)
		if status != tt.status || interval != tt.interval {
			t.Errorf("nextReview(%s, %s) = %s/%s, want %s/%s", tt.current, tt.grade, status, interval, tt.status, tt.interval)
		}
	}
}

func TestGradeFlashcard(t *testing.T) {
	ctx := context.Background()
	c, s := newLearning(t, false)
	_ = s.SaveFlashcards(ctx, "m1", []domain.Flashcard{{ID: "c1", Status: domain.CardNew}})

	card, err := c.GradeFlashcard(ctx, "m1", "c1", domain.DifficultyMedium)
	if err != nil {
		t.Fatal(err)
	}
	if card.Status != domain.CardReview || card.NextReview != 1000+24*60*60*1000 || card.Difficulty != domain.DifficultyMedium {
		t.Fatalf("unexpected card: %+v", card)
	}
	if s.Stats(ctx).TotalCardsLearned != 1 {
		t.Fatal("graded card not counted")
	}

	if _, err := c.GradeFlashcard(ctx, "m1", "missing", domain.DifficultyEasy); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.GradeFlashcard(ctx, "m1", "c1", "impossible"); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestCheckAnswers(t *testing.T) {
	qs := []domain.QuizQuestion{{CorrectAnswer: 0}, {CorrectAnswer: 1}, {CorrectAnswer: 2}}
	tests := []struct {
		answers []int
		correct int
		percent int
	}{
		{[]int{0, 1, 2}, 3, 100},
		{[]int{0, 0}, 1, 33},
		{nil, 0, 0},
		{[]int{0, 1, 2, 3}, 3, 100},
	}
	for _, tt := range tests {
		correct, percent := CheckAnswers(qs, tt.answers)
		if correct != tt.correct || percent != tt.percent {
			t.Errorf("CheckAnswers(%v) = %d/%d, want %d/%d", tt.answers, correct, percent, tt.correct, tt.percent)
		}
	}
	if c, p := CheckAnswers(nil, []int{1}); c != 0 || p != 0 {
		t.Fatal("empty quiz should score zero")
	}
}

func TestCompleteQuiz(t *testing.T) {
	ctx := context.Background()
	c, s := newLearning(t, false)
	_ = s.SaveQuiz(ctx, "m1", []domain.QuizQuestion{{CorrectAnswer: 1}, {CorrectAnswer: 0}})

	r, err := c.CompleteQuiz(ctx, "m1", []int{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if r.Score != 50 || r.TotalQuestions != 2 || r.MaterialID != "m1" {
		t.Fatalf("unexpected result: %+v", r)
	}
	if got := s.QuizResults(ctx); len(got) != 1 || got[0].ID != r.ID {
		t.Fatalf("result not stored: %v", got)
	}
	if st := s.Stats(ctx); st.TotalQuizzesTaken != 1 || st.AverageQuizScore != 50 {
		t.Fatalf("stats not updated: %+v", st)
	}

	if _, err := c.CompleteQuiz(ctx, "nope", []int{0}); !errors.Is(err, ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
}

func TestCompleteQuiz_AudioLessonFinalTest(t *testing.T) {
	ctx := context.Background()
	c, s := newLearning(t, false)
	_ = s.AppendMaterial(ctx, domain.StudyMaterial{
		ID:   "lesson",
		Type: domain.MaterialAudioLesson,
		AudioLessonData: &domain.AudioLesson{
			FinalTest: []domain.QuizQuestion{{CorrectAnswer: 2}},
		},
	})

	r, err := c.CompleteQuiz(ctx, "lesson", []int{2})
	if err != nil || r.Score != 100 {
		t.Fatalf("result=%+v err=%v", r, err)
	}
}

func TestDeleteMaterial_CascadeFlag(t *testing.T) {
	ctx := context.Background()
	for _, cascade := range []bool{false, true} {
		c, s := newLearning(t, cascade)
		_ = s.AppendMaterial(ctx, domain.StudyMaterial{ID: "m1"})
		_ = s.SaveFlashcards(ctx, "m1", []domain.Flashcard{{ID: "c1"}})

		if err := c.DeleteMaterial(ctx, "m1"); err != nil {
			t.Fatal(err)
		}
		if _, ok := s.Material(ctx, "m1"); ok {
			t.Fatal("material not deleted")
		}
		remaining := len(s.Flashcards(ctx, "m1"))
		if cascade && remaining != 0 {
			t.Fatal("cascade delete left flashcards")
		}
		if !cascade && remaining != 1 {
			t.Fatal("non-cascade delete removed flashcards")
		}
	}
}
