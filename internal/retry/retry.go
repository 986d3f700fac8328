// Package retry runs an operation again after a delay when it fails with a retryable error.
package retry

import (
	"context"
	"time"
)

// Backoff returns the delay before retry number attempt (1-based).
type Backoff func(attempt int) time.Duration

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Policy bounds how often and how long an operation is retried.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt. 0 disables retrying.
	MaxRetries int
	// Backoff computes the wait before each retry. Nil means no wait.
	Backoff Backoff
	// Sleep is used to wait between attempts. Nil uses a context-aware timer.
	Sleep Sleeper
}

// Fixed waits d before every retry.
func Fixed(d time.Duration) Backoff {
	return func(int) time.Duration { return d }
}

// Linear waits attempt*step before each retry (step, 2*step, ...).
func Linear(step time.Duration) Backoff {
	return func(attempt int) time.Duration { return time.Duration(attempt) * step }
}

// OnRetry is called before each wait with the retry number and the error that caused it.
type OnRetry func(attempt int, delay time.Duration, err error)

// Do runs op until it succeeds, returns a non-retryable error, or the policy's
// retries are used up. The last error is returned unchanged.
func Do(ctx context.Context, p Policy, retryable func(error) bool, onRetry OnRetry, op func(ctx context.Context) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	err := op(ctx)
	for attempt := 1; err != nil && attempt <= p.MaxRetries; attempt++ {
		if !retryable(err) {
			return err
		}

		var delay time.Duration
		if p.Backoff != nil {
			delay = p.Backoff(attempt)
		}
		if onRetry != nil {
			onRetry(attempt, delay, err)
		}
		if serr := sleep(ctx, delay); serr != nil {
			return err
		}

		err = op(ctx)
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
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
