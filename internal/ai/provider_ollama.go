package ai

import "strings"

// NewOllamaProvider creates a provider for a self-hosted Ollama server, which
// exposes an OpenAI-compatible API under /v1.
func NewOllamaProvider(baseURL string, opts ...OpenAIOption) *OpenAIProvider {
	defaults := []OpenAIOption{
		WithBaseURL(strings.TrimRight(baseURL, "/") + "/v1"),
		WithProviderName("ollama"),
		WithDefaultModel("llama3:8b"),
		withJSONMode(jsonObject),
		WithModels([]ModelInfo{
			{ID: "llama3:8b", Name: "Llama 3 8B", MaxTokens: 8192, Description: "Free self-hosted model via Ollama"},
		}),
	}
	return NewOpenAIProvider("ollama", append(defaults, opts...)...)
}
