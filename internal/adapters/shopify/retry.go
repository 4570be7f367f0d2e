package shopify

import (
	"context"
	"time"
)

// Backoff policy for the GraphQL transport. Transient HTTP failures and
// throttled responses retry with exponentially growing delays; every other
// error surfaces to the caller on the first attempt.
const (
	graphqlRetryMax = 5
	retryBaseDelay  = 500 * time.Millisecond
	retryMaxDelay   = 10 * time.Second
)

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		return 0
	}
	delay := retryBaseDelay << attempt
	if delay > retryMaxDelay || delay <= 0 {
		return retryMaxDelay
	}
	return delay
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
