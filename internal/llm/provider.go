package llm

import "context"

// Provider sends a single-turn completion to a model backend.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is one prompt with an optional system instruction.
// Every call the tutor makes is single-turn, so there is no history.
type Request struct {
	System string
	Prompt string

	// MaxTokens caps the completion. Zero means defaultMaxTokens.
	MaxTokens int

	// Temperature is passed through when positive; zero keeps the
	// backend deterministic as far as it allows.
	Temperature float64
}

// StopReason is the normalized reason a completion ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the text a provider produced.
type Response struct {
	Text  string
	Usage Usage

	// Model is the model that served the call, which may carry a dated
	// suffix the configured ID lacks.
	Model string
	Stop  StopReason
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

const defaultMaxTokens = 1024

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}

// normalizeStop folds the provider specific finish reasons onto StopReason.
func normalizeStop(raw string) StopReason {
	switch raw {
	case "max_tokens", "length", "MAX_TOKENS":
		return StopMaxTokens
	default:
		return StopEnd
	}
}
