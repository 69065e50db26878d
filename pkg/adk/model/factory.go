package model

import (
	"fmt"

	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/pkg/adk/model/gemini"
	adkmodel "google.golang.org/adk/model"
	"google.golang.org/genai"
)

// NewModel creates an ADK model adapter based on provider name.
// Supported providers: "gemini"
//
// Example:
//
//	model, err := NewModel("gemini", client, "gemini-2.5-flash", log)
//	if err != nil {
//	    return err
//	}
func NewModel(providerName string, client *genai.Client, modelID string, log *logger.Logger) (adkmodel.LLM, error) {
	switch providerName {
	case "gemini":
		m, err := gemini.NewModel(gemini.Config{
			Client:    client,
			ModelName: modelID,
			Logger:    log,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported ADK model provider: %s (supported: gemini)", providerName)
	}
}
