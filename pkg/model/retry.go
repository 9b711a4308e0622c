package model

import (
	"context"
	"time"

	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
)

// RetryPolicy controls how many attempts a task gets and how attempts
// back off between failures.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	Multiplier     float64
}

// PolicyForTask returns the retry policy for a pipeline task. Title
// generation is cheap and latency-sensitive so it only gets two
// attempts; the rest get three.
func PolicyForTask(task Task) RetryPolicy {
	attempts := 3
	if task == TaskTitle {
		attempts = 2
	}
	return RetryPolicy{
		MaxAttempts:    attempts,
		InitialBackoff: time.Second,
		Multiplier:     2.0,
	}
}

// CompleteWithRetry runs a completion, retrying retryable failures with
// exponential backoff. Malformed responses fail immediately since the
// same prompt tends to produce the same garbage.
func CompleteWithRetry(ctx context.Context, c Completer, req Request) (*Result, error) {
	return CompleteWithRetryPolicy(ctx, c, req, PolicyForTask(req.Task))
}

// CompleteWithRetryPolicy is CompleteWithRetry with an explicit policy.
func CompleteWithRetryPolicy(ctx context.Context, c Completer, req Request, policy RetryPolicy) (*Result, error) {
	var lastErr error
	backoff := policy.InitialBackoff

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		result, err := c.Complete(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !inkerr.IsRetryable(err) || attempt == policy.MaxAttempts {
			break
		}

		retriesTotal.WithLabelValues(string(req.Task)).Inc()

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, lastErr
		case <-timer.C:
		}
		backoff = time.Duration(float64(backoff) * policy.Multiplier)
	}

	return nil, lastErr
}
