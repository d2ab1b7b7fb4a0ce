package store

import (
	"context"
	"time"
)

// LLMRequestEventData is one provider call as the logging middleware sees
// it. RequestBody holds the rendered prompt, ResponseBody the raw answer.
type LLMRequestEventData struct {
	Provider string
	Model    string
	Purpose  string

	InputTokens  int
	OutputTokens int
	LatencyMs    int64

	Success      bool
	ErrorMessage string

	RequestBody  string
	ResponseBody string
}

// LLMEvent is a persisted call.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts filters QueryLLMEvents. Zero values disable a filter; a zero
// Limit returns everything. From and To are inclusive.
type QueryOpts struct {
	Limit    int
	Purpose  string
	From, To time.Time
}

type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo is the call log. Queries return the newest events first and
// GetLLMEvent returns nil, nil for an unknown ID.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// DeleteLLMEventsBefore reports the number of rows removed.
	DeleteLLMEventsBefore(ctx context.Context, before time.Time) (int64, error)
}
