package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimited() error {
	return &ProviderError{Kind: KindRateLimited, Err: errors.New("quota exceeded")}
}

func permanent() error {
	return &ProviderError{Kind: KindPermanent, Err: errors.New("invalid request")}
}

func TestRetrySucceedsOnThirdAttempt(t *testing.T) {
	delay := 10 * time.Millisecond
	attempts := 0

	start := time.Now()
	result, err := Retry(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", rateLimited()
		}
		return "ok", nil
	}, WithInitialDelay(delay))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
	// Two backoff waits: delay + delay*2
	assert.GreaterOrEqual(t, elapsed, 3*delay)
}

func TestRetryPermanentNotRetried(t *testing.T) {
	attempts := 0
	_, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, permanent()
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindPermanent, pe.Kind)
}

func TestRetryExhaustionRethrows(t *testing.T) {
	attempts := 0
	_, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, rateLimited()
	}, WithMaxRetries(2), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 3, attempts) // initial attempt + 2 retries
	assert.True(t, IsRetryable(err))
}

func TestRetryUnclassifiedErrorIsPermanent(t *testing.T) {
	attempts := 0
	_, err := Retry(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		return 0, errors.New("plain failure")
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Retry(ctx, func(ctx context.Context) (int, error) {
		return 0, rateLimited()
	}, WithInitialDelay(time.Second))

	require.Error(t, err)
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ProviderError{Kind: KindUnavailable, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.True(t, err.Retryable())
	assert.Equal(t, "unavailable", err.Kind.String())
}
