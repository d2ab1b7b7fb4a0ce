package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects a provider and carries the settings of every backend so
// that switching providers is a one-field change.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one completion, retries included.
	Timeout time.Duration

	MaxTokens   int
	Temperature float64
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses OpenAI with gpt-4o-mini. Temperature stays zero so
// answer validation is as repeatable as the backend allows.
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout:   time.Minute,
		MaxTokens: defaultMaxTokens,
	}
}

// endpoint points at the per-provider fields Override and Validate touch.
// baseURL is nil for providers without a configurable endpoint.
type endpoint struct {
	apiKey, model, baseURL *string
	keyEnv                 string
}

func (c *Config) endpoint(provider string) (endpoint, bool) {
	switch provider {
	case "anthropic":
		return endpoint{&c.Anthropic.APIKey, &c.Anthropic.Model, &c.Anthropic.BaseURL, "BS2TUTOR_ANTHROPIC_API_KEY"}, true
	case "openai":
		return endpoint{&c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL, "BS2TUTOR_OPENAI_API_KEY"}, true
	case "gemini":
		return endpoint{&c.Gemini.APIKey, &c.Gemini.Model, nil, "BS2TUTOR_GEMINI_API_KEY"}, true
	case "openrouter":
		return endpoint{&c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL, "BS2TUTOR_OPENROUTER_API_KEY"}, true
	}
	return endpoint{}, false
}

// discoveryOrder lists the vendor key variables probed when no provider is
// named, in priority order.
var discoveryOrder = []struct{ provider, env string }{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// ConfigFromEnv reads BS2TUTOR_LLM_PROVIDER and the per-provider
// BS2TUTOR_<PROVIDER>_{API_KEY,MODEL,BASE_URL} variables over the defaults.
// The vendors' own key variables (OPENAI_API_KEY etc.) fill any key left
// empty, and when no provider is named the first of them that is set
// picks the provider.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	named := os.Getenv("BS2TUTOR_LLM_PROVIDER")

	discovered := ""
	for _, d := range discoveryOrder {
		ep, _ := cfg.endpoint(d.provider)
		setIf(ep.apiKey, os.Getenv(ep.keyEnv))
		if *ep.apiKey == "" {
			setIf(ep.apiKey, os.Getenv(d.env))
		}
		if discovered == "" && os.Getenv(d.env) != "" {
			discovered = d.provider
		}

		prefix := "BS2TUTOR_" + strings.ToUpper(d.provider)
		setIf(ep.model, os.Getenv(prefix+"_MODEL"))
		if ep.baseURL != nil {
			setIf(ep.baseURL, os.Getenv(prefix+"_BASE_URL"))
		}
	}

	switch {
	case named != "":
		cfg.Provider = named
	case discovered != "":
		cfg.Provider = discovered
	}
	return cfg
}

// Override applies a selection from the config file. Empty values keep
// whatever the environment set.
func (c *Config) Override(provider, model, apiKey, baseURL string) {
	setIf(&c.Provider, provider)
	ep, ok := c.endpoint(c.Provider)
	if !ok {
		return
	}
	setIf(ep.model, model)
	setIf(ep.apiKey, apiKey)
	if ep.baseURL != nil {
		setIf(ep.baseURL, baseURL)
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate reports a missing API key for the selected provider.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	ep, ok := c.endpoint(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *ep.apiKey == "" {
		return fmt.Errorf("%s is required for the %s provider", ep.keyEnv, c.Provider)
	}
	return nil
}
