package notifications

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/stats"
	"github.com/robfig/cron/v3"
)

const AppName = "StudyBuddy"

// TaskSource is the read side the reminder needs
type TaskSource interface {
	Tasks(ctx context.Context) []domain.Task
}

// StatsSource reports today's date and the current stats
type StatsSource interface {
	Today() string
	Current(ctx context.Context) domain.UserStats
}

// Worker sends the daily study reminder on a cron schedule
type Worker struct {
	tasks    TaskSource
	stats    StatsSource
	syncer   *Syncer
	schedule string
	cron     *cron.Cron
	log      *logger.Logger
}

// NewWorker creates a reminder worker firing on schedule in loc
func NewWorker(tasks TaskSource, st StatsSource, syncer *Syncer, schedule string, loc *time.Location, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Worker{
		tasks:    tasks,
		stats:    st,
		syncer:   syncer,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
		log:      log.With("component", "Worker"),
	}
}

// Start schedules the reminder job and starts the scheduler
func (w *Worker) Start() error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		// Run async to not block the scheduler
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			w.SendDailyReminder(ctx)
		}()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder %q: %w", w.schedule, err)
	}

	w.cron.Start()
	w.log.Info("[Worker.Start] Scheduled daily reminder", "schedule", w.schedule, "sinks", w.syncer.Sinks())
	return nil
}

// Stop stops the scheduler and waits for a running job to return
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
	w.log.Info("[Worker.Stop] Stopped")
}

// SendDailyReminder refreshes the badge and sends today's reminder
func (w *Worker) SendDailyReminder(ctx context.Context) {
	today := w.stats.Today()
	all := w.tasks.Tasks(ctx)
	w.syncer.Broadcast(ctx, BadgeUpdate(all))

	var open []domain.Task
	for _, t := range all {
		if t.Date == today && !t.Completed {
			open = append(open, t)
		}
	}
	st := w.stats.Current(ctx)
	status := stats.Status(st, today)

	w.log.Info("[Worker.SendDailyReminder] Sending reminder", "openTasks", len(open), "streak", st.StreakDays, "status", status)
	w.syncer.Broadcast(ctx, Update{
		Kind:  KindReminder,
		Title: AppName + " - Time to study!",
		Body:  BuildReminderBody(open, st, status),
		Data: map[string]string{
			"openTasks":    strconv.Itoa(len(open)),
			"streakDays":   strconv.Itoa(st.StreakDays),
			"streakStatus": string(status),
		},
	})
}

// BuildReminderBody creates the reminder text
func BuildReminderBody(open []domain.Task, st domain.UserStats, status stats.StreakStatus) string {
	var taskPart string
	switch len(open) {
	case 0:
		taskPart = "No tasks planned for today."
	case 1:
		taskPart = fmt.Sprintf("\"%s\" is on today's plan.", open[0].Title)
	default:
		taskPart = fmt.Sprintf("\"%s\" and %d more tasks are on today's plan.", open[0].Title, len(open)-1)
	}

	switch status {
	case stats.StreakSafe:
		return fmt.Sprintf("%s Your %d-day streak is safe.", taskPart, st.StreakDays)
	case stats.StreakAtRisk:
		return fmt.Sprintf("%s Study today to keep your %d-day streak.", taskPart, st.StreakDays)
	default:
		return taskPart + " Start a new streak today."
	}
}
