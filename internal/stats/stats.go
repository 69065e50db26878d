// Package stats implements the streak and progress rules applied to
// domain.UserStats.
package stats

import (
	"time"

	"github.com/amityadav/studybuddy/internal/domain"
)

// DateLayout is the calendar-day format used for LastStudyDate and task dates
const DateLayout = "2006-01-02"

// OnLogin advances the streak for a study session on day today (DateLayout).
// Same day is a no-op, the following day extends the streak, anything else
// starts a new streak of 1.
func OnLogin(s domain.UserStats, today string) domain.UserStats {
	if s.LastStudyDate == today {
		return s
	}
	if s.LastStudyDate != "" && s.LastStudyDate == previousDay(today) {
		s.StreakDays++
	} else {
		s.StreakDays = 1
	}
	s.LastStudyDate = today
	return s
}

// OnQuizCompleted folds one quiz score (0..100) into the running average
func OnQuizCompleted(s domain.UserStats, score float64) domain.UserStats {
	n := float64(s.TotalQuizzesTaken)
	s.AverageQuizScore = (s.AverageQuizScore*n + score) / (n + 1)
	s.TotalQuizzesTaken++
	return s
}

// OnCardGraded counts one graded flashcard
func OnCardGraded(s domain.UserStats) domain.UserStats {
	s.TotalCardsLearned++
	return s
}

func previousDay(day string) string {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// StreakStatus describes the streak as seen on day today
type StreakStatus string

const (
	StreakSafe   StreakStatus = "safe"    // already studied today
	StreakAtRisk StreakStatus = "at_risk" // studied yesterday, not yet today
	StreakBroken StreakStatus = "broken"
)

func Status(s domain.UserStats, today string) StreakStatus {
	switch {
	case s.LastStudyDate == today && s.StreakDays > 0:
		return StreakSafe
	case s.LastStudyDate != "" && s.LastStudyDate == previousDay(today):
		return StreakAtRisk
	default:
		return StreakBroken
	}
}
