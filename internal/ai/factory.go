package ai

import (
	"context"
	"fmt"

	"github.com/amityadav/studybuddy/internal/config"
	"github.com/amityadav/studybuddy/internal/logger"
	"google.golang.org/genai"
)

// Engine is everything the generation backend offers
type Engine interface {
	Generator
	Researcher
}

// NewGeminiClient creates the shared Gemini client. It returns a nil client
// without error when no API key is configured.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

// NewEngine picks the Gemini engine when a client is available and the
// unconfigured engine otherwise
func NewEngine(client *genai.Client, cfg config.Config, log *logger.Logger) Engine {
	if client == nil {
		if log != nil {
			log.Warn("[ai.NewEngine] GEMINI_API_KEY not set, generation is disabled")
		}
		return Unconfigured{}
	}
	return NewGeminiGenerator(client, cfg.GeminiTextModel, Limits{
		MaxContentChars: cfg.MaxContentChars,
		MaxContextChars: cfg.MaxContextChars,
	}, log)
}
