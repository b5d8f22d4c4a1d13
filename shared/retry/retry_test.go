package retry_test

import (
	"context"
	"errors"
	"rental/shared/retry"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func TestDo(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0

		err := retry.Do(context.Background(), time.Millisecond, 5, func() error {
			calls++
			if calls < 3 {
				return errFlaky
			}

			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max tries", func(t *testing.T) {
		calls := 0

		err := retry.Do(context.Background(), time.Millisecond, 4, func() error {
			calls++

			return errFlaky
		})

		require.ErrorIs(t, err, errFlaky)
		assert.Equal(t, 4, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0

		err := retry.Do(context.Background(), time.Millisecond, 4, func() error {
			calls++

			return backoff.Permanent(errFlaky)
		})

		require.ErrorIs(t, err, errFlaky)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero tries still runs once", func(t *testing.T) {
		calls := 0

		_ = retry.Do(context.Background(), time.Millisecond, 0, func() error {
			calls++

			return errFlaky
		})

		assert.Equal(t, 1, calls)
	})
}

func TestMs(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, retry.Ms(250))
	assert.Equal(t, time.Millisecond, retry.Ms(0))
}
