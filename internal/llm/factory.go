package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/bs2tutor/internal/logger"
	"github.com/abhisek/bs2tutor/internal/store"
)

type constructor func(ctx context.Context, cfg Config) (Provider, error)

var constructors = map[string]constructor{
	"anthropic": func(_ context.Context, cfg Config) (Provider, error) {
		return NewAnthropicProvider(cfg.Anthropic)
	},
	"openai": func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenAIProvider(cfg.OpenAI)
	},
	"gemini": func(ctx context.Context, cfg Config) (Provider, error) {
		return NewGeminiProvider(ctx, cfg.Gemini)
	},
	"openrouter": func(_ context.Context, cfg Config) (Provider, error) {
		return NewOpenRouterProvider(cfg.OpenRouter)
	},
}

// NewProvider builds the configured vendor client and stacks the
// middleware on it, outermost first: timeout, retry, logging. Every retry
// attempt is therefore logged as its own event. The mock provider is
// returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}
	build, ok := constructors[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if log == nil {
		log = logger.Nop()
	}

	base, err := build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}
	log.Info("llm provider ready", "provider", cfg.Provider, "model", base.ModelID())

	var p Provider = WithLogging(base, events, log)
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}
