package domain

// CardStatus is the review lifecycle of a flashcard
type CardStatus string

const (
	CardNew      CardStatus = "new"
	CardLearning CardStatus = "learning"
	CardReview   CardStatus = "review"
	CardMastered CardStatus = "mastered"
)

// Difficulty is the grade a user gives a card
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known grades
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Flashcard struct {
	ID         string     `json:"id"`
	Front      string     `json:"front"`
	Back       string     `json:"back"`
	Status     CardStatus `json:"status"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	NextReview int64      `json:"nextReview,omitempty"` // epoch millis
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizResult is one completed quiz attempt. Score is a percentage (0..100).
type QuizResult struct {
	ID             string `json:"id"`
	MaterialID     string `json:"materialId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Date           int64  `json:"date"`
}

// Task is a standalone planner entry, not tied to any material
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
	Time      string `json:"time,omitempty"`
}

// UserStats is the singleton progress record
type UserStats struct {
	StreakDays        int     `json:"streakDays"`
	LastStudyDate     string  `json:"lastStudyDate"`
	TotalCardsLearned int     `json:"totalCardsLearned"`
	TotalQuizzesTaken int     `json:"totalQuizzesTaken"`
	AverageQuizScore  float64 `json:"averageQuizScore"`
}

// AppSettings holds user feature toggles
type AppSettings struct {
	ShowSnow bool `json:"showSnow"`
}

// DefaultSettings is what a fresh profile starts with
func DefaultSettings() AppSettings {
	return AppSettings{ShowSnow: true}
}
