package core

import (
	"fmt"
	"sync"

	"github.com/amityadav/studybuddy/internal/domain"
)

// PlaybackState is where a listener is inside an audio lesson
type PlaybackState string

const (
	StatePlayingSegment     PlaybackState = "playing_segment"
	StateSegmentQuizVisible PlaybackState = "segment_quiz"
	StateVideoVisible       PlaybackState = "video"
	StateFinalTest          PlaybackState = "final_test"
	StateFinished           PlaybackState = "finished"
)

// PlaybackResult is reported once when the final test is done
type PlaybackResult struct {
	Correct int
	Total   int
	Percent int
}

// Playback drives segment, quiz and video sequencing for one listening
// session. Segments without a quiz skip the quiz state, and a lesson with no
// segments starts at the final test.
type Playback struct {
	mu         sync.Mutex
	lesson     *domain.AudioLesson
	state      PlaybackState
	segment    int
	question   int
	answers    []int
	onComplete func(PlaybackResult)
	completed  bool
}

func NewPlayback(lesson *domain.AudioLesson, onComplete func(PlaybackResult)) *Playback {
	p := &Playback{lesson: lesson, onComplete: onComplete}
	if lesson == nil {
		p.lesson = &domain.AudioLesson{}
	}
	var result *PlaybackResult
	if len(p.lesson.Segments) == 0 {
		result = p.enterFinalTest()
	} else {
		p.state = StatePlayingSegment
	}
	p.report(result)
	return p
}

func (p *Playback) State() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Segment is the index of the current segment
func (p *Playback) Segment() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.segment
}

// Question is the index of the current final-test question
func (p *Playback) Question() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.question
}

// VideoQuery returns the current segment's video search query
func (p *Playback) VideoQuery() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.segment < len(p.lesson.Segments) {
		return p.lesson.Segments[p.segment].VideoQuery
	}
	return ""
}

// NarrationEnded moves past the spoken part of the current segment
func (p *Playback) NarrationEnded() error {
	p.mu.Lock()
	if p.state != StatePlayingSegment {
		defer p.mu.Unlock()
		return p.invalid("narration end")
	}
	var result *PlaybackResult
	if p.lesson.Segments[p.segment].Quiz != nil {
		p.state = StateSegmentQuizVisible
	} else {
		result = p.afterQuiz()
	}
	p.mu.Unlock()
	p.report(result)
	return nil
}

// AnswerSegmentQuiz records the answer to the current segment's question
func (p *Playback) AnswerSegmentQuiz(answer int) (bool, error) {
	p.mu.Lock()
	if p.state != StateSegmentQuizVisible {
		defer p.mu.Unlock()
		return false, p.invalid("segment answer")
	}
	correct := answer == p.lesson.Segments[p.segment].Quiz.CorrectAnswer
	result := p.afterQuiz()
	p.mu.Unlock()
	p.report(result)
	return correct, nil
}

// Continue leaves the video and moves to the next segment
func (p *Playback) Continue() error {
	p.mu.Lock()
	if p.state != StateVideoVisible {
		defer p.mu.Unlock()
		return p.invalid("continue")
	}
	result := p.nextSegment()
	p.mu.Unlock()
	p.report(result)
	return nil
}

// AnswerFinal records the answer to the current final-test question
func (p *Playback) AnswerFinal(answer int) (bool, error) {
	p.mu.Lock()
	if p.state != StateFinalTest {
		defer p.mu.Unlock()
		return false, p.invalid("final answer")
	}
	correct := answer == p.lesson.FinalTest[p.question].CorrectAnswer
	p.answers = append(p.answers, answer)
	p.question++
	var result *PlaybackResult
	if p.question >= len(p.lesson.FinalTest) {
		result = p.finish()
	}
	p.mu.Unlock()
	p.report(result)
	return correct, nil
}

func (p *Playback) afterQuiz() *PlaybackResult {
	if p.lesson.Segments[p.segment].VideoQuery != "" {
		p.state = StateVideoVisible
		return nil
	}
	return p.nextSegment()
}

func (p *Playback) nextSegment() *PlaybackResult {
	if p.segment+1 < len(p.lesson.Segments) {
		p.segment++
		p.state = StatePlayingSegment
		return nil
	}
	return p.enterFinalTest()
}

func (p *Playback) enterFinalTest() *PlaybackResult {
	p.state = StateFinalTest
	p.question = 0
	if len(p.lesson.FinalTest) == 0 {
		return p.finish()
	}
	return nil
}

func (p *Playback) finish() *PlaybackResult {
	p.state = StateFinished
	if p.completed {
		return nil
	}
	p.completed = true
	correct, percent := CheckAnswers(p.lesson.FinalTest, p.answers)
	return &PlaybackResult{Correct: correct, Total: len(p.lesson.FinalTest), Percent: percent}
}

// report runs the completion callback outside the lock
func (p *Playback) report(r *PlaybackResult) {
	if r != nil && p.onComplete != nil {
		p.onComplete(*r)
	}
}

func (p *Playback) invalid(event string) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, event, p.state)
}
