package store

import (
	"context"

	"github.com/amityadav/studybuddy/internal/domain"
)

func emptyTasks() []domain.Task { return []domain.Task{} }
func emptyResults() []domain.QuizResult { return []domain.QuizResult{} }
func emptyStats() domain.UserStats { return domain.UserStats{} }
func defaultSettings() domain.AppSettings { return domain.DefaultSettings() }

func (s *Store) QuizResults(ctx context.Context) []domain.QuizResult {
	return read(ctx, s, familyQuizResults, emptyResults)
}

func (s *Store) AppendQuizResult(ctx context.Context, r domain.QuizResult) error {
	_, err := mutate(ctx, s, familyQuizResults, emptyResults, func(list []domain.QuizResult) ([]domain.QuizResult, error) {
		return append(list, r), nil
	})
	return err
}

func (s *Store) Tasks(ctx context.Context) []domain.Task {
	return read(ctx, s, familyTasks, emptyTasks)
}

func (s *Store) AddTask(ctx context.Context, t domain.Task) error {
	return s.mutateTasks(ctx, func(list []domain.Task) []domain.Task {
		return append(list, t)
	})
}

// UpdateTask replaces the task with the same id; unknown ids are a no-op
func (s *Store) UpdateTask(ctx context.Context, t domain.Task) error {
	return s.mutateTasks(ctx, func(list []domain.Task) []domain.Task {
		for i := range list {
			if list[i].ID == t.ID {
				list[i] = t
				break
			}
		}
		return list
	})
}

// ToggleTask flips the completion flag of one task
func (s *Store) ToggleTask(ctx context.Context, id string) error {
	return s.mutateTasks(ctx, func(list []domain.Task) []domain.Task {
		for i := range list {
			if list[i].ID == id {
				list[i].Completed = !list[i].Completed
				break
			}
		}
		return list
	})
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.mutateTasks(ctx, func(list []domain.Task) []domain.Task {
		out := list[:0]
		for _, t := range list {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	})
}

func (s *Store) mutateTasks(ctx context.Context, fn func([]domain.Task) []domain.Task) error {
	_, err := mutateNotify(ctx, s, familyTasks, emptyTasks, func(list []domain.Task) ([]domain.Task, error) {
		return fn(list), nil
	}, func(next []domain.Task) {
		snapshot := append([]domain.Task(nil), next...)
		s.fire("tasks", func(ctx context.Context, h Hooks) {
			h.TasksChanged(ctx, snapshot)
		})
	})
	return err
}

func (s *Store) Stats(ctx context.Context) domain.UserStats {
	return read(ctx, s, familyStats, emptyStats)
}

func (s *Store) SaveStats(ctx context.Context, stats domain.UserStats) error {
	_, err := s.UpdateStats(ctx, func(domain.UserStats) domain.UserStats { return stats })
	return err
}

// UpdateStats applies fn to the current stats atomically and returns the
// stored result
func (s *Store) UpdateStats(ctx context.Context, fn func(domain.UserStats) domain.UserStats) (domain.UserStats, error) {
	next, err := mutateNotify(ctx, s, familyStats, emptyStats, func(cur domain.UserStats) (domain.UserStats, error) {
		return fn(cur), nil
	}, func(next domain.UserStats) {
		s.fire("stats", func(ctx context.Context, h Hooks) {
			h.StatsChanged(ctx, next)
		})
	})
	if err != nil {
		return domain.UserStats{}, err
	}
	return next, nil
}

func (s *Store) Settings(ctx context.Context) domain.AppSettings {
	return read(ctx, s, familySettings, defaultSettings)
}

func (s *Store) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	_, err := mutate(ctx, s, familySettings, defaultSettings, func(domain.AppSettings) (domain.AppSettings, error) {
		return settings, nil
	})
	return err
}
