package llm

import (
	"context"
	"time"

	"github.com/abhisek/bs2tutor/internal/logger"
	"github.com/abhisek/bs2tutor/internal/store"
)

// LoggingProvider persists every call as an LLM event and writes a one
// line summary to the log. It sits directly above the base provider so
// that each retry attempt is recorded separately.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
	log    *logger.Logger
	name   string
}

// WithLogging decorates p. A nil repo only logs.
func WithLogging(p Provider, events store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, events: events, log: log, name: providerName(p)}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start).Milliseconds()

	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   elapsed,
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text
	}

	if err != nil {
		ev.ErrorMessage = err.Error()
		l.log.Warn("llm call failed", "provider", l.name, "purpose", purpose, "latency_ms", elapsed, "error", err)
	} else {
		l.log.Debug("llm call", "provider", l.name, "model", ev.Model, "purpose", purpose,
			"tokens", resp.Usage.Total(), "latency_ms", elapsed)
	}

	if l.events != nil {
		if rerr := l.events.AppendLLMRequest(ctx, ev); rerr != nil {
			l.log.Warn("record llm event", "error", rerr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func providerName(p Provider) string {
	switch v := p.(type) {
	case *AnthropicProvider:
		return "anthropic"
	case *OpenRouterProvider:
		return v.name
	case *OpenAIProvider:
		return v.name
	case *GeminiProvider:
		return "gemini"
	case *MockProvider:
		return "mock"
	default:
		return p.ModelID()
	}
}

// transcript is the human readable request stored with the event.
func transcript(req Request) string {
	if req.System == "" {
		return "[user]\n" + req.Prompt
	}
	return "[system]\n" + req.System + "\n\n[user]\n" + req.Prompt
}
