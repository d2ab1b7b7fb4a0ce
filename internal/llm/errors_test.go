package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("upstream")

	var rl *ErrRateLimit
	assert.ErrorAs(t, classifyStatus(http.StatusTooManyRequests, 3*time.Second, cause), &rl)
	assert.Equal(t, 3*time.Second, rl.RetryAfter)

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		var auth *ErrAuth
		assert.ErrorAs(t, classifyStatus(status, 0, cause), &auth)
		assert.Equal(t, status, auth.Status)
	}

	for _, status := range []int{0, http.StatusRequestTimeout, http.StatusBadGateway, http.StatusServiceUnavailable} {
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, classifyStatus(status, 0, cause), &unavail, "status %d", status)
	}

	assert.ErrorIs(t, classifyStatus(http.StatusInternalServerError, 0, cause), cause)
}

func TestRetryAfter(t *testing.T) {
	resp := func(v string) *http.Response {
		h := http.Header{}
		if v != "" {
			h.Set("Retry-After", v)
		}
		return &http.Response{Header: h}
	}

	assert.Equal(t, 12*time.Second, retryAfter(resp("12")))
	assert.Zero(t, retryAfter(resp("")))
	assert.Zero(t, retryAfter(resp("Wed, 21 Oct 2026 07:28:00 GMT")))
	assert.Zero(t, retryAfter(resp("-1")))
	assert.Zero(t, retryAfter(nil))
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&ErrRateLimit{Err: errors.New("429")}, true},
		{&ErrProviderUnavailable{Err: errors.New("dial tcp")}, true},
		{&ErrInvalidResponse{Err: errEmptyCompletion}, true},
		{errors.New("connection reset"), true},
		{&ErrAuth{Status: 401, Err: errors.New("bad key")}, false},
		{fmt.Errorf("completion (question-gen): %w", &ErrAuth{Status: 403}), false},
		{&ErrMaxTokensExceeded{}, false},
		{context.Canceled, false},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Retryable(tt.err), "%v", tt.err)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "LLM provider unavailable", (&ErrProviderUnavailable{}).Error())
	assert.Equal(t, "rate limited: 429", (&ErrRateLimit{Err: errors.New("429")}).Error())
	assert.Contains(t, (&ErrRateLimit{RetryAfter: 2 * time.Second, Err: errors.New("429")}).Error(), "retry after 2s")
	assert.Contains(t, (&ErrAuth{Status: 401, Err: errors.New("bad key")}).Error(), "HTTP 401")
	assert.Contains(t, (&ErrMaxTokensExceeded{Partial: "abc"}).Error(), "3 bytes")
}
