package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/store"
)

// Tracker applies stats events through the store. Every event is one atomic
// read-modify-write, so the store's stats hook runs after each of them.
type Tracker struct {
	store *store.Store
	loc   *time.Location
	now   func() time.Time
	log   *logger.Logger
}

func NewTracker(s *store.Store, loc *time.Location, log *logger.Logger) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Tracker{store: s, loc: loc, now: time.Now, log: log}
}

// WithClock overrides the time source, for tests
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Today returns the current calendar day in the tracker's timezone
func (t *Tracker) Today() string {
	return t.now().In(t.loc).Format(DateLayout)
}

func (t *Tracker) Current(ctx context.Context) domain.UserStats {
	return t.store.Stats(ctx)
}

func (t *Tracker) RecordLogin(ctx context.Context) (domain.UserStats, error) {
	today := t.Today()
	st, err := t.store.UpdateStats(ctx, func(s domain.UserStats) domain.UserStats {
		return OnLogin(s, today)
	})
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to record login: %w", err)
	}
	t.log.Debug("[Tracker.RecordLogin] streak updated", "streak_days", st.StreakDays, "date", today)
	return st, nil
}

func (t *Tracker) RecordQuiz(ctx context.Context, score float64) (domain.UserStats, error) {
	st, err := t.store.UpdateStats(ctx, func(s domain.UserStats) domain.UserStats {
		return OnQuizCompleted(s, score)
	})
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to record quiz: %w", err)
	}
	return st, nil
}

func (t *Tracker) RecordCardGraded(ctx context.Context) (domain.UserStats, error) {
	st, err := t.store.UpdateStats(ctx, OnCardGraded)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to record graded card: %w", err)
	}
	return st, nil
}
