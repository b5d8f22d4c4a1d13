// Package retry runs operations under a bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const maxIntervalFactor = 20

// Exponential returns a jittered exponential policy starting at base.
func Exponential(base time.Duration) *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = base
	policy.MaxInterval = base * maxIntervalFactor

	return policy
}

// Do calls op until it succeeds, returns a backoff.Permanent error, ctx is
// done or maxTries attempts were made. The last error is returned.
func Do(ctx context.Context, base time.Duration, maxTries uint, op func() error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	}, backoff.WithBackOff(Exponential(base)), backoff.WithMaxTries(max(maxTries, 1)))

	return err //nolint:wrapcheck
}

// Ms converts a millisecond setting into a duration, defaulting to one millisecond.
func Ms(value int) time.Duration {
	return time.Duration(max(value, 1)) * time.Millisecond
}
