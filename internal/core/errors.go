package core

import "errors"

var (
	// ErrGenerationFailed is the single user-visible failure of a generation
	// run. The underlying cause is wrapped alongside it.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrInvalidTransition is returned by Playback for moves the current
	// state does not allow
	ErrInvalidTransition = errors.New("invalid playback transition")

	ErrEmptyQuiz         = errors.New("material has no quiz questions")
	ErrEmptyQuery        = errors.New("query is empty")
	ErrInvalidDifficulty = errors.New("unknown difficulty")

	errEmptyLesson = errors.New("generator returned no lesson")
)
