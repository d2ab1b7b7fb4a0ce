package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimit is returned for HTTP 429 responses.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAuth means the provider rejected the API key. It is never retried.
type ErrAuth struct {
	Status int
	Err    error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("authentication failed (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network failures, timeouts and 5xx
// responses, along with any other status the classifier does not single out.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return "LLM provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model answered with nothing usable: no
// text at all, or JSON that fails its schema.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return "invalid LLM response: " + e.Err.Error()
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded carries the truncated text of a completion that
// ran into its token cap.
type ErrMaxTokensExceeded struct {
	Partial string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("LLM response truncated after %d bytes: max tokens exceeded", len(e.Partial))
}

var errEmptyCompletion = errors.New("completion contained no text")

// classifyStatus turns an HTTP status reported by a provider SDK into one
// of the package error types.
func classifyStatus(status int, retryAfter time.Duration, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrAuth{Status: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// retryAfter reads a Retry-After header given in whole seconds.
func retryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// Retryable reports whether another attempt of the same call can succeed.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var auth *ErrAuth
	if errors.As(err, &auth) {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	return !errors.As(err, &maxTok)
}
