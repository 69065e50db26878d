package chat

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"

	"github.com/amityadav/studybuddy/internal/ai"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// scriptedLLM answers every request with the same text and records the
// size of each conversation it was sent
type scriptedLLM struct {
	reply string

	mu      sync.Mutex
	lengths []int
}

func (s *scriptedLLM) Name() string { return "scripted" }

func (s *scriptedLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	s.mu.Lock()
	s.lengths = append(s.lengths, len(req.Contents))
	s.mu.Unlock()
	return func(yield func(*model.LLMResponse, error) bool) {
		yield(&model.LLMResponse{
			Content:      genai.NewContentFromText(s.reply, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}, nil)
	}
}

func TestTutor_Ask(t *testing.T) {
	llm := &scriptedLLM{reply: "Mitochondria make ATP.\n```json\n{\"kind\":\"quiz\",\"question\":\"What makes ATP?\",\"options\":[\"Mitochondria\",\"Ribosome\"],\"correctAnswer\":0}\n```"}
	tutor, err := NewTutor(llm, nil, nil)
	if err != nil {
		t.Fatalf("NewTutor: %v", err)
	}

	ctx := context.Background()
	reply, err := tutor.Ask(ctx, "m1", "s1", "What do mitochondria do?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(reply.Blocks) != 2 || reply.Blocks[0].Kind != KindText || reply.Blocks[1].Kind != KindQuiz {
		t.Fatalf("unexpected blocks: %+v", reply.Blocks)
	}

	if _, err := tutor.Ask(ctx, "m1", "s1", "And ribosomes?"); err != nil {
		t.Fatalf("second Ask: %v", err)
	}
	llm.mu.Lock()
	defer llm.mu.Unlock()
	if len(llm.lengths) != 2 || llm.lengths[1] <= llm.lengths[0] {
		t.Errorf("second turn should carry history, got conversation sizes %v", llm.lengths)
	}
}

func TestTutor_SeparateSessions(t *testing.T) {
	llm := &scriptedLLM{reply: "ok"}
	tutor, err := NewTutor(llm, nil, nil)
	if err != nil {
		t.Fatalf("NewTutor: %v", err)
	}
	ctx := context.Background()
	for _, mat := range []string{"m1", "m2"} {
		if _, err := tutor.Ask(ctx, mat, "", "hi"); err != nil {
			t.Fatalf("Ask(%s): %v", mat, err)
		}
	}
	llm.mu.Lock()
	defer llm.mu.Unlock()
	if llm.lengths[0] != llm.lengths[1] {
		t.Errorf("sessions for different materials should not share history: %v", llm.lengths)
	}
}

func TestTutor_Errors(t *testing.T) {
	disabled, err := NewTutor(nil, nil, nil)
	if err != nil {
		t.Fatalf("NewTutor: %v", err)
	}
	if _, err := disabled.Ask(context.Background(), "m1", "s1", "hi"); !errors.Is(err, ai.ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}

	tutor, _ := NewTutor(&scriptedLLM{reply: "ok"}, nil, nil)
	if _, err := tutor.Ask(context.Background(), "m1", "s1", "  "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}

	silent, _ := NewTutor(&scriptedLLM{reply: ""}, nil, nil)
	if _, err := silent.Ask(context.Background(), "m1", "s1", "hi"); !errors.Is(err, ErrNoReply) {
		t.Errorf("expected ErrNoReply, got %v", err)
	}
}
