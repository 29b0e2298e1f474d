package app

import "context"

// AttemptFunc performs one attempt of a wrapped operation
type AttemptFunc func(ctx context.Context) error

// RetryResult is the outcome of a bounded attempt sequence
type RetryResult struct {
	Attempts int
	Err      error // nil when an attempt succeeded
}

// Succeeded reports whether any attempt completed without error
func (r RetryResult) Succeeded() bool {
	return r.Err == nil
}

// RunWithRetry invokes fn up to maxAttempts times, stopping at the first
// success. onFailure is called after each failed attempt with the 1-based
// attempt number. Retries are immediate, the attempt bound is the only
// guard. Context cancellation stops the sequence between attempts.
func RunWithRetry(ctx context.Context, maxAttempts int, fn AttemptFunc, onFailure func(attempt int, err error)) RetryResult {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return RetryResult{Attempts: attempt - 1, Err: err}
		}

		err := fn(ctx)
		if err == nil {
			return RetryResult{Attempts: attempt}
		}

		lastErr = err
		if onFailure != nil {
			onFailure(attempt, err)
		}
	}

	return RetryResult{Attempts: maxAttempts, Err: lastErr}
}
