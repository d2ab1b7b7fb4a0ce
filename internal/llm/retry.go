package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider repeats failed calls that Retryable accepts, waiting with
// capped exponential backoff between attempts. An empty completion is
// retried only once since the model rarely recovers from it.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidSeen := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if werr := sleepCtx(ctx, r.delay(attempt-1, err)); werr != nil {
				return nil, werr
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !Retryable(err) {
			return nil, err
		}

		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// delay is the wait before attempt n+1. A server supplied Retry-After wins
// over the computed backoff.
func (r *RetryProvider) delay(n int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	mult := r.config.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(r.config.InitialWait)
	ceiling := float64(r.config.MaxWait)
	for range n {
		if ceiling > 0 && d >= ceiling {
			break
		}
		d *= mult
	}
	if ceiling > 0 && d > ceiling {
		d = ceiling
	}

	// ±20% jitter
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
