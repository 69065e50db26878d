package gemini

import (
	"testing"

	"google.golang.org/genai"
)

func TestToLLMResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{genai.NewPartFromText("hello")}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
	out := toLLMResponse(resp)
	if out.Content.Role != genai.RoleModel || out.Content.Parts[0].Text != "hello" || out.FinishReason != genai.FinishReasonStop {
		t.Fatalf("unexpected response: %+v", out)
	}

	empty := toLLMResponse(&genai.GenerateContentResponse{})
	if empty.Content == nil || len(empty.Content.Parts) != 0 {
		t.Fatalf("expected empty content, got %+v", empty.Content)
	}
}

func TestNewModel_RequiresClient(t *testing.T) {
	if _, err := NewModel(Config{}); err == nil {
		t.Fatal("expected error without client")
	}
}
