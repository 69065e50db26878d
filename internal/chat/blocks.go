package chat

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type BlockKind string

const (
	KindText        BlockKind = "text"
	KindChart       BlockKind = "chart"
	KindSimulation  BlockKind = "simulation"
	KindQuiz        BlockKind = "quiz"
	KindUnsupported BlockKind = "unsupported"
)

// Block is one renderable piece of a tutor reply. Exactly one payload is
// set, matching Kind; unsupported blocks carry the raw JSON.
type Block struct {
	Kind       BlockKind   `json:"kind"`
	Text       string      `json:"text,omitempty"`
	Chart      *Chart      `json:"chart,omitempty"`
	Simulation *Simulation `json:"simulation,omitempty"`
	Quiz       *QuizBlock  `json:"quiz,omitempty"`
	Raw        string      `json:"raw,omitempty"`
}

type Chart struct {
	Title  string    `json:"title" validate:"required"`
	Labels []string  `json:"labels" validate:"required,min=1,dive,required"`
	Values []float64 `json:"values" validate:"required,min=1"`
}

type Simulation struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters" validate:"required,min=1,dive"`
}

type Parameter struct {
	Name  string  `json:"name" validate:"required"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max" validate:"gtfield=Min"`
	Value float64 `json:"value"`
}

type QuizBlock struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
}

var (
	fencePattern = regexp.MustCompile("(?s)```json[ \t]*\\r?\\n(.*?)```")
	validate     = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(Chart)
		if len(c.Labels) != len(c.Values) {
			sl.ReportError(c.Values, "Values", "values", "len_labels", "")
		}
	}, Chart{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(Parameter)
		if p.Value < p.Min || p.Value > p.Max {
			sl.ReportError(p.Value, "Value", "value", "in_range", "")
		}
	}, Parameter{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		q := sl.Current().Interface().(QuizBlock)
		if q.CorrectAnswer >= len(q.Options) {
			sl.ReportError(q.CorrectAnswer, "CorrectAnswer", "correctAnswer", "option_index", "")
		}
	}, QuizBlock{})
	return v
}

// ParseBlocks splits a reply into prose and structured blocks in the order
// they appear. A fenced json block that is unknown or fails validation
// becomes an unsupported block; parsing never fails.
func ParseBlocks(text string) []Block {
	blocks := []Block{}
	last := 0
	for _, loc := range fencePattern.FindAllStringSubmatchIndex(text, -1) {
		blocks = appendText(blocks, text[last:loc[0]])
		blocks = append(blocks, decodeBlock(text[loc[2]:loc[3]]))
		last = loc[1]
	}
	return appendText(blocks, text[last:])
}

func appendText(blocks []Block, s string) []Block {
	s = strings.TrimSpace(s)
	if s == "" {
		return blocks
	}
	return append(blocks, Block{Kind: KindText, Text: s})
}

func decodeBlock(raw string) Block {
	raw = strings.TrimSpace(raw)
	unsupported := Block{Kind: KindUnsupported, Raw: raw}

	var head struct {
		Kind BlockKind `json:"kind"`
	}
	if err := json.Unmarshal([]byte(raw), &head); err != nil {
		return unsupported
	}

	switch head.Kind {
	case KindChart:
		var c Chart
		if decodeValid(raw, &c) {
			return Block{Kind: KindChart, Chart: &c}
		}
	case KindSimulation:
		var s Simulation
		if decodeValid(raw, &s) {
			return Block{Kind: KindSimulation, Simulation: &s}
		}
	case KindQuiz:
		var q QuizBlock
		if decodeValid(raw, &q) {
			return Block{Kind: KindQuiz, Quiz: &q}
		}
	}
	return unsupported
}

func decodeValid(raw string, dst any) bool {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false
	}
	return validate.Struct(dst) == nil
}
