package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrorKind classifies a provider failure once, at the invocation boundary,
// so call sites never re-derive it from error message text.
type ErrorKind int

const (
	// KindPermanent covers malformed requests, auth failures, and anything
	// else a retry cannot fix.
	KindPermanent ErrorKind = iota
	// KindRateLimited signals quota exhaustion or request throttling.
	KindRateLimited
	// KindUnavailable signals transient service unavailability.
	KindUnavailable
)

// String returns the kind name for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "unavailable"
	default:
		return "permanent"
	}
}

// ProviderError wraps an external provider failure with its classification.
type ProviderError struct {
	Kind ErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%s): %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth retrying.
func (e *ProviderError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindUnavailable
}

// IsRetryable reports whether err carries a retryable classification.
// Unclassified errors are treated as permanent.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable()
	}
	return false
}

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 1500 * time.Millisecond
)

type retryConfig struct {
	maxRetries   uint64
	initialDelay time.Duration
}

// RetryOption configures Retry.
type RetryOption func(*retryConfig)

// WithMaxRetries sets the maximum number of retries after the first attempt.
func WithMaxRetries(n int) RetryOption {
	return func(c *retryConfig) {
		if n >= 0 {
			c.maxRetries = uint64(n)
		}
	}
}

// WithInitialDelay sets the delay before the first retry. Subsequent delays
// double.
func WithInitialDelay(d time.Duration) RetryOption {
	return func(c *retryConfig) {
		if d > 0 {
			c.initialDelay = d
		}
	}
}

// Retry runs op, retrying retryable failures with exponential backoff
// (initial delay doubling each attempt). Permanent failures and retry
// exhaustion return the last error to the caller unchanged — the wrapper
// never substitutes fallback data; that is the caller's decision.
func Retry[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...RetryOption) (T, error) {
	cfg := retryConfig{
		maxRetries:   DefaultMaxRetries,
		initialDelay: DefaultInitialDelay,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.initialDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = 5 * time.Minute
	bo.MaxElapsedTime = 0

	var result T
	err := backoff.Retry(func() error {
		v, err := op(ctx)
		if err != nil {
			if !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = v
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, cfg.maxRetries), ctx))

	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
