package crawl

import (
	"context"
	"math"
	"time"

	"github.com/Lechtr/foerder"
)

// DefaultMaxAttempts is the number of fetch attempts per URL.
const DefaultMaxAttempts = 5

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// ExponentialDelays returns the waits between attempts for maxAttempts
// attempts: 2^i seconds plus jitter() seconds before retry i+1. jitter must
// return values in [0,1), which keeps the sequence strictly increasing.
func ExponentialDelays(maxAttempts int, jitter func() float64) []time.Duration {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delays := make([]time.Duration, maxAttempts-1)
	for i := range delays {
		secs := math.Pow(2, float64(i))
		if jitter != nil {
			secs += jitter()
		}
		delays[i] = time.Duration(secs * float64(time.Second))
	}
	return delays
}

// FetchWithRetry attempts to fetch a URL with exponential backoff retry logic.
// It makes up to DefaultMaxAttempts attempts.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, jitter func() float64) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, ExponentialDelays(DefaultMaxAttempts, jitter))
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
// It makes len(delays)+1 attempts. When every attempt fails it returns an
// EUNAVAILABLE error describing the last failure; context cancellation is
// returned as is.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Check context before sleeping
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("  retry %s (attempt %d) in %s: %v", url, attempt+2, delays[attempt].Round(time.Millisecond), err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", foerder.Errorf(foerder.EUNAVAILABLE, "%s unavailable after %d attempts: %v", url, maxAttempts, lastErr)
}
