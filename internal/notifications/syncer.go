package notifications

import (
	"context"
	"strconv"
	"sync"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/logger"
)

// Syncer mirrors task and stats changes to every sink. Delivery is best
// effort: each sink runs on its own goroutine and its failures are only
// logged.
type Syncer struct {
	sinks []Sink
	log   *logger.Logger
}

func NewSyncer(sinks []Sink, log *logger.Logger) *Syncer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Syncer{sinks: sinks, log: log.With("component", "Syncer")}
}

// Sinks reports the configured sink names
func (s *Syncer) Sinks() []string {
	names := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		names = append(names, sink.Name())
	}
	return names
}

// TasksChanged pushes the number of incomplete tasks as the badge count
func (s *Syncer) TasksChanged(ctx context.Context, tasks []domain.Task) {
	s.Broadcast(ctx, BadgeUpdate(tasks))
}

// StatsChanged pushes the widget payload
func (s *Syncer) StatsChanged(ctx context.Context, stats domain.UserStats) {
	s.Broadcast(ctx, StatsUpdate(stats))
}

// Broadcast delivers u to every sink and waits for all of them
func (s *Syncer) Broadcast(ctx context.Context, u Update) {
	var wg sync.WaitGroup
	for _, sink := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.log.Warn("[Syncer.Broadcast] sink panicked", "sink", sink.Name(), "panic", r)
				}
			}()
			if err := sink.Publish(ctx, u); err != nil {
				s.log.Warn("[Syncer.Broadcast] sink failed", "sink", sink.Name(), "kind", u.Kind, "error", err)
			}
		}()
	}
	wg.Wait()
}

func BadgeUpdate(tasks []domain.Task) Update {
	open := 0
	for _, t := range tasks {
		if !t.Completed {
			open++
		}
	}
	return Update{Kind: KindBadge, Data: map[string]string{"count": strconv.Itoa(open)}}
}

func StatsUpdate(st domain.UserStats) Update {
	return Update{Kind: KindStats, Data: map[string]string{
		"streakDays":        strconv.Itoa(st.StreakDays),
		"lastStudyDate":     st.LastStudyDate,
		"totalCardsLearned": strconv.Itoa(st.TotalCardsLearned),
		"totalQuizzesTaken": strconv.Itoa(st.TotalQuizzesTaken),
		"averageQuizScore":  strconv.FormatFloat(st.AverageQuizScore, 'f', 1, 64),
	}}
}
