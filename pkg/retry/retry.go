// Package retry layers optional retry-with-backoff on top of the
// completion-based client. The client itself never retries; callers that
// want retries wrap individual operations here, on their own goroutine.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/walletsync/blockset-go/blockset"
)

// Retryable reports whether err is a transient service condition worth
// retrying: a rate limit or a service outage. Everything else, including
// submission failures, is permanent.
func Retryable(err error) bool {
	var serr *blockset.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Kind == blockset.KindResource || serr.Kind == blockset.KindUnavailable
}

// Config tunes the exponential backoff. Zero fields keep the backoff
// package defaults.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func (c Config) policy(ctx context.Context) backoff.BackOffContext {
	policy := backoff.NewExponentialBackOff()
	if c.InitialInterval > 0 {
		policy.InitialInterval = c.InitialInterval
	}
	if c.MaxInterval > 0 {
		policy.MaxInterval = c.MaxInterval
	}
	if c.MaxElapsedTime > 0 {
		policy.MaxElapsedTime = c.MaxElapsedTime
	}
	return backoff.WithContext(policy, ctx)
}

// Do runs the completion-style operation op until it succeeds, fails with
// a non-retryable error, or ctx or the elapsed-time budget expires. Do
// blocks the calling goroutine and so must never run inside another
// operation's completion.
func Do[T any](ctx context.Context, cfg Config, op func(completion func(T, error))) (T, error) {
	attempt := func() (T, error) {
		type outcome struct {
			value T
			err   error
		}
		ch := make(chan outcome, 1)
		op(func(value T, err error) {
			ch <- outcome{value: value, err: err}
		})

		var o outcome
		select {
		case o = <-ch:
		case <-ctx.Done():
			var zero T
			return zero, backoff.Permanent(ctx.Err())
		}
		if o.err != nil && !Retryable(o.err) {
			return o.value, backoff.Permanent(o.err)
		}
		return o.value, o.err
	}
	return backoff.RetryWithData(attempt, cfg.policy(ctx))
}
