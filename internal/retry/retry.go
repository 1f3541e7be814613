// Package retry wraps LLM collaborator calls with bounded retries,
// exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/amishk599/tailor/internal/model"
)

// Policy controls retry behavior. MaxAttempts counts the first try.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy is the collaborator-call policy: up to 3 attempts total on
// transient or validation failure, none on authentication or malformed
// requests.
var DefaultPolicy = Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}

// Do runs fn under the policy, retrying retryable failures. The zero value
// of T is returned with the last error when all attempts fail.
func Do[T any](ctx context.Context, logger *slog.Logger, p Policy, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	result, err := fn(ctx)
	if err == nil {
		return result, nil
	}
	if !isRetryable(err) {
		return zero, err
	}

	lastErr := err
	for attempt := 2; attempt <= p.MaxAttempts; attempt++ {
		delay := backoffDelay(p.BaseDelay, attempt)

		logger.Warn("retrying after failure",
			"op", op,
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%s retry cancelled: %w", op, ctx.Err())
		case <-time.After(delay):
		}

		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
		if !isRetryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, fmt.Errorf("%s failed after %d attempts: %w", op, p.MaxAttempts, lastErr)
}

// backoffDelay computes the delay before the given attempt with ±30% jitter.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	delay := base
	for i := 2; i < attempt; i++ {
		delay *= 2
	}
	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable classifies a collaborator failure. Transient provider errors
// and validation failures (bad parse output, empty result) retry; missing
// credentials, malformed requests and cancellation do not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, model.ErrCredentialMissing) {
		return false
	}

	var provErr *model.ProviderError
	if errors.As(err, &provErr) {
		// StatusCode 0 means the request never got an HTTP response
		// (connection reset, DNS failure, timeout).
		if provErr.StatusCode == 0 || provErr.StatusCode == 429 || provErr.StatusCode >= 500 {
			return true
		}
		// Remaining 4xx (auth, malformed request) are not retryable.
		return false
	}

	// Validation failures retry with the same policy.
	return true
}
