package enrich

import (
	"context"
	"time"
)

// Policy bounds the retry loop around a generation call. Transient decides
// whether an error is worth retrying; Backoff returns the delay after the
// given attempt (1-based). Non-transient errors abort immediately.
type Policy struct {
	MaxAttempts int
	Transient   func(error) bool
	Backoff     func(attempt int) time.Duration
}

// DefaultPolicy retries up to 3 attempts with 1s then 2s delays between them,
// retrying only errors classified as transient overload.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Transient:   IsTransient,
		Backoff: func(attempt int) time.Duration {
			return time.Second << (attempt - 1)
		},
	}
}

// Do runs fn until it succeeds, a non-transient error occurs, the attempt
// budget is spent, or ctx is done. The last error is returned.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Transient == nil || !p.Transient(lastErr) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := sleep(ctx, p.backoffFor(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func (p Policy) backoffFor(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff(attempt)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
