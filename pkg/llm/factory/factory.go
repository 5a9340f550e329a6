package factory

import (
	"context"
	"fmt"

	"ai-note-assistant/internal/constant"
	"ai-note-assistant/pkg/llm"
	"ai-note-assistant/pkg/llm/gemini"
	"ai-note-assistant/pkg/llm/ollama"
)

// NewLLMProvider builds the oracle named by providerType. Empty model and
// base URL fall back to the defaults in constant.
func NewLLMProvider(ctx context.Context, providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = constant.OllamaDefaultBaseURL
		}
		if modelName == "" {
			modelName = constant.OllamaDefaultModel
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		if modelName == "" {
			modelName = constant.GeminiDefaultModel
		}
		return gemini.NewGeminiProvider(ctx, apiKey, modelName)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
