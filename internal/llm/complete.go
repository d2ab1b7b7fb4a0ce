package llm

import (
	"context"
	"fmt"
	"strings"
)

// Completer is the prompt-in/text-out view of a Provider. The question
// generator and chat tutor depend on this rather than on Provider so that
// they never see request plumbing.
type Completer interface {
	Complete(ctx context.Context, purpose, prompt string) (string, error)
}

// TextCompleter adapts a Provider into a Completer. Responses are requested
// without a schema; callers must extract any structure themselves.
type TextCompleter struct {
	Provider    Provider
	MaxTokens   int
	Temperature float64
}

// NewCompleter wraps p using the token and temperature settings from cfg.
func NewCompleter(p Provider, cfg Config) *TextCompleter {
	return &TextCompleter{Provider: p, MaxTokens: cfg.MaxTokens, Temperature: cfg.Temperature}
}

func (c *TextCompleter) Complete(ctx context.Context, purpose, prompt string) (string, error) {
	ctx = WithPurpose(ctx, purpose)

	resp, err := c.Provider.Generate(ctx, Request{
		Prompt:      prompt,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completion (%s): %w", purpose, err)
	}
	if resp.Stop == StopMaxTokens {
		return "", &ErrMaxTokensExceeded{Partial: resp.Text}
	}
	return strings.TrimSpace(resp.Text), nil
}
