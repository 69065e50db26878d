package ai

import (
	"unicode/utf8"
)

// Limits caps how much input is sent to the model
type Limits struct {
	MaxContentChars int
	MaxContextChars int
}

// DefaultLimits keeps the first 30k characters of content and 10k of context
func DefaultLimits() Limits {
	return Limits{
		MaxContentChars: 30000,
		MaxContextChars: 10000,
	}
}

// TruncateToLimit keeps at most maxChars runes of content. A limit <= 0
// disables truncation.
func TruncateToLimit(content string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(content) <= maxChars {
		return content
	}
	n := 0
	for i := range content {
		if n == maxChars {
			return content[:i]
		}
		n++
	}
	return content
}

// Apply truncates the input's content and context
func (l Limits) Apply(in Input) Input {
	in.Content = TruncateToLimit(in.Content, l.MaxContentChars)
	in.Context = TruncateToLimit(in.Context, l.MaxContextChars)
	return in
}

// EstimateTokens provides a rough token count (4 chars ≈ 1 token)
func EstimateTokens(content string) int {
	return len(content) / 4
}
