package core

import (
	"context"
	"fmt"
	"time"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/stats"
	"github.com/amityadav/studybuddy/internal/store"
	"github.com/google/uuid"
)

// LearningCore handles review actions on stored materials: grading cards,
// completing quizzes and deleting materials
type LearningCore struct {
	store         *store.Store
	tracker       *stats.Tracker
	cascadeDelete bool
	log           *logger.Logger
	now           func() time.Time
}

func NewLearningCore(s *store.Store, tracker *stats.Tracker, cascadeDelete bool, log *logger.Logger) *LearningCore {
	if log == nil {
		log = logger.NewNop()
	}
	return &LearningCore{
		store:         s,
		tracker:       tracker,
		cascadeDelete: cascadeDelete,
		log:           log.With("component", "LearningCore"),
		now:           time.Now,
	}
}

// GradeFlashcard schedules the card's next review from the grade:
//
//	hard   -> learning, 10 minutes
//	medium -> review, 1 day
//	easy   -> review, 3 days; mastered, 7 days if it was already in review
func (c *LearningCore) GradeFlashcard(ctx context.Context, materialID, cardID string, d domain.Difficulty) (domain.Flashcard, error) {
	if !d.Valid() {
		return domain.Flashcard{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, d)
	}
	now := c.now()
	card, err := c.store.UpdateFlashcard(ctx, materialID, cardID, func(card *domain.Flashcard) {
		status, interval := nextReview(card.Status, d)
		card.Status = status
		card.Difficulty = d
		card.NextReview = now.Add(interval).UnixMilli()
	})
	if err != nil {
		c.log.Warn("[LearningCore.GradeFlashcard] update failed", "material_id", materialID, "card_id", cardID, "error", err)
		return domain.Flashcard{}, err
	}

	if _, err := c.tracker.RecordCardGraded(ctx); err != nil {
		c.log.Warn("[LearningCore.GradeFlashcard] stats update failed", "error", err)
	}
	c.log.Debug("[LearningCore.GradeFlashcard] graded", "card_id", cardID, "difficulty", d, "status", card.Status)
	return card, nil
}

func nextReview(current domain.CardStatus, d domain.Difficulty) (domain.CardStatus, time.Duration) {
	switch d {
	case domain.DifficultyHard:
		return domain.CardLearning, 10 * time.Minute
	case domain.DifficultyMedium:
		return domain.CardReview, 24 * time.Hour
	default:
		if current == domain.CardReview || current == domain.CardMastered {
			return domain.CardMastered, 7 * 24 * time.Hour
		}
		return domain.CardReview, 3 * 24 * time.Hour
	}
}

// CheckAnswers scores answers against questions by position. Missing or
// out-of-range answers count as wrong. An empty quiz scores 0.
func CheckAnswers(questions []domain.QuizQuestion, answers []int) (correct, percent int) {
	if len(questions) == 0 {
		return 0, 0
	}
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return correct, correct * 100 / len(questions)
}

// CompleteQuiz scores a quiz attempt, appends the result and updates the
// running average. Audio lessons are scored against their final test.
func (c *LearningCore) CompleteQuiz(ctx context.Context, materialID string, answers []int) (domain.QuizResult, error) {
	questions := c.store.Quiz(ctx, materialID)
	if len(questions) == 0 {
		if m, ok := c.store.Material(ctx, materialID); ok && m.AudioLessonData != nil {
			questions = m.AudioLessonData.FinalTest
		}
	}
	if len(questions) == 0 {
		return domain.QuizResult{}, fmt.Errorf("material %s: %w", materialID, ErrEmptyQuiz)
	}

	_, percent := CheckAnswers(questions, answers)
	result := domain.QuizResult{
		ID:             uuid.NewString(),
		MaterialID:     materialID,
		Score:          percent,
		TotalQuestions: len(questions),
		Date:           c.now().UnixMilli(),
	}
	if err := c.store.AppendQuizResult(ctx, result); err != nil {
		return domain.QuizResult{}, fmt.Errorf("failed to save quiz result: %w", err)
	}
	if _, err := c.tracker.RecordQuiz(ctx, float64(percent)); err != nil {
		c.log.Warn("[LearningCore.CompleteQuiz] stats update failed", "error", err)
	}

	c.log.Info("[LearningCore.CompleteQuiz] recorded", "material_id", materialID, "score", percent, "questions", len(questions))
	return result, nil
}

// DeleteMaterial removes the material record. Side tables stay behind unless
// cascade deletion is enabled.
func (c *LearningCore) DeleteMaterial(ctx context.Context, id string) error {
	c.log.Info("[LearningCore.DeleteMaterial] Deleting material", "material_id", id, "cascade", c.cascadeDelete)
	if err := c.store.DeleteMaterial(ctx, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	if c.cascadeDelete {
		if err := c.store.DeleteSideTables(ctx, id); err != nil {
			return fmt.Errorf("failed to delete side tables: %w", err)
		}
	}
	return nil
}
