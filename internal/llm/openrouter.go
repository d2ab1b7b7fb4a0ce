package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is the chat completions client pointed at OpenRouter.
// Model IDs are vendor-prefixed ("google/gemini-2.0-flash-001") and are
// never alias-expanded.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return &OpenRouterProvider{newChatProvider("openrouter", cfg.APIKey, baseURL, cfg.Model)}, nil
}
