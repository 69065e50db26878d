package ai

import (
	"errors"
	"strings"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/google/uuid"
)

var errEmptyLesson = errors.New("lesson has no narrated segments")

type rawFlashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

func normalizeFlashcards(raw []rawFlashcard) []domain.Flashcard {
	out := make([]domain.Flashcard, 0, len(raw))
	for _, c := range raw {
		front, back := strings.TrimSpace(c.Front), strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			continue
		}
		out = append(out, domain.Flashcard{
			ID:     uuid.NewString(),
			Front:  front,
			Back:   back,
			Status: domain.CardNew,
		})
	}
	return out
}

// normalizeQuestion returns false for questions that cannot be answered:
// fewer than two options or a correct index out of range
func normalizeQuestion(q domain.QuizQuestion) (domain.QuizQuestion, bool) {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" || len(q.Options) < 2 {
		return q, false
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return q, false
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return q, true
}

func normalizeQuiz(raw []domain.QuizQuestion) []domain.QuizQuestion {
	out := make([]domain.QuizQuestion, 0, len(raw))
	for _, q := range raw {
		if nq, ok := normalizeQuestion(q); ok {
			out = append(out, nq)
		}
	}
	return out
}

// normalizeConceptMap fills missing ids and makes every id unique
func normalizeConceptMap(root *domain.ConceptMapNode) *domain.ConceptMapNode {
	if root == nil || strings.TrimSpace(root.Label) == "" {
		return nil
	}
	seen := map[string]bool{}
	var walk func(n *domain.ConceptMapNode)
	walk = func(n *domain.ConceptMapNode) {
		if n.ID == "" || seen[n.ID] {
			n.ID = uuid.NewString()
		}
		seen[n.ID] = true
		kids := n.Children[:0]
		for _, c := range n.Children {
			if c != nil && strings.TrimSpace(c.Label) != "" {
				walk(c)
				kids = append(kids, c)
			}
		}
		n.Children = kids
	}
	walk(root)
	return root
}

func normalizeLocations(raw []rawLocation) []domain.StudyLocation {
	out := make([]domain.StudyLocation, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l.Name) == "" {
			continue
		}
		if l.Lat < -90 || l.Lat > 90 || l.Lng < -180 || l.Lng > 180 {
			continue
		}
		out = append(out, domain.StudyLocation{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(l.Name),
			Description: l.Description,
			Lat:         l.Lat,
			Lng:         l.Lng,
			Category:    domain.NormalizeCategory(strings.ToLower(l.Category)),
		})
	}
	return out
}

type rawLocation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Category    string  `json:"category"`
}

func normalizeKeyTerms(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := map[string]bool{}
	for _, t := range raw {
		t = strings.TrimSpace(t)
		k := strings.ToLower(t)
		if t == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}

func normalizeLesson(title string, l domain.AudioLesson) (*domain.AudioLesson, error) {
	segments := make([]domain.AudioLessonSegment, 0, len(l.Segments))
	for _, s := range l.Segments {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		if s.Quiz != nil {
			if q, ok := normalizeQuestion(*s.Quiz); ok {
				s.Quiz = &q
			} else {
				s.Quiz = nil
			}
		}
		s.VideoQuery = strings.TrimSpace(s.VideoQuery)
		segments = append(segments, s)
	}
	if len(segments) == 0 {
		return nil, errEmptyLesson
	}
	return &domain.AudioLesson{
		ID:        uuid.NewString(),
		Title:     title,
		Segments:  segments,
		FinalTest: normalizeQuiz(l.FinalTest),
	}, nil
}
