package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/amityadav/studybuddy/internal/logger"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// Model implements the adk model.LLM interface on a shared genai client
type Model struct {
	client    *genai.Client
	modelName string
	log       *logger.Logger
}

// Config for creating a new Gemini Model
type Config struct {
	Client    *genai.Client
	ModelName string // Defaults to gemini-2.5-flash
	Logger    *logger.Logger
}

func NewModel(cfg Config) (*Model, error) {
	if cfg.Client == nil {
		return nil, errors.New("gemini client is required")
	}
	if cfg.ModelName == "" {
		cfg.ModelName = "gemini-2.5-flash"
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	return &Model{
		client:    cfg.Client,
		modelName: cfg.ModelName,
		log:       cfg.Logger.With("component", "GeminiAdapter"),
	}, nil
}

func (m *Model) Name() string {
	return m.modelName
}

// GenerateContent sends the agent's conversation, tools included in
// req.Config, as one non-streaming request
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		name := m.modelName
		if req.Model != "" {
			name = req.Model
		}

		m.log.Debug("[GeminiAdapter.GenerateContent] Sending request", "model", name, "contents", len(req.Contents))
		resp, err := m.client.Models.GenerateContent(ctx, name, req.Contents, req.Config)
		if err != nil {
			yield(nil, fmt.Errorf("gemini request failed: %w", err))
			return
		}
		yield(toLLMResponse(resp), nil)
	}
}

func toLLMResponse(resp *genai.GenerateContentResponse) *model.LLMResponse {
	out := &model.LLMResponse{UsageMetadata: resp.UsageMetadata}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		out.Content = &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{}}
		out.FinishReason = genai.FinishReasonOther
		return out
	}
	c := resp.Candidates[0]
	out.Content = c.Content
	if out.Content.Role == "" {
		out.Content.Role = genai.RoleModel
	}
	out.FinishReason = c.FinishReason
	return out
}
