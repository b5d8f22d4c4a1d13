//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental/helper/pgtest"
	"rental/infras/otel/mocks"
	"rental/internal/domains/slot/model"
	"rental/internal/domains/slot/repository"
)

const migrations = "file://../../../../migrations/postgres"

var at = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func TestSlotRepository_Postgres(t *testing.T) {
	repo := repository.New(pgtest.Start(t, migrations), mocks.NewOtel())
	ctx := context.Background()

	t.Run("concurrent reservations have one winner", func(t *testing.T) {
		key, err := model.NewKey("bike-race", "2026-10-14", "10:00")
		require.NoError(t, err)

		const contenders = 16

		var (
			wg        sync.WaitGroup
			won       atomic.Int32
			conflicts atomic.Int32
		)

		for i := range contenders {
			wg.Add(1)

			go func() {
				defer wg.Done()

				err := repo.TryReserve(ctx, key, fmt.Sprintf("b-%d", i), "cust", at)

				switch {
				case err == nil:
					won.Add(1)
				case assert.ErrorIs(t, err, model.ErrSlotConflict):
					conflicts.Add(1)
				}
			}()
		}

		wg.Wait()

		assert.Equal(t, int32(1), won.Load())
		assert.Equal(t, int32(contenders-1), conflicts.Load())

		slot, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, model.StatusUnavailable, slot.Status)
		require.NotNil(t, slot.BookingID)
	})

	t.Run("finalize only applies for the holder once", func(t *testing.T) {
		key, err := model.NewKey("bike-final", "2026-10-14", "11:00")
		require.NoError(t, err)
		require.NoError(t, repo.TryReserve(ctx, key, "b-1", "cust", at))

		applied, err := repo.Finalize(ctx, key, "b-2", model.StatusReserved, "op", at)
		require.NoError(t, err)
		assert.False(t, applied)

		applied, err = repo.Finalize(ctx, key, "b-1", model.StatusReserved, "op", at)
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = repo.Finalize(ctx, key, "b-1", model.StatusReserved, "op", at)
		require.NoError(t, err)
		assert.False(t, applied)

		require.ErrorIs(t, repo.TryReserve(ctx, key, "b-3", "cust", at), model.ErrSlotConflict)
	})

	t.Run("released slot can be reserved again", func(t *testing.T) {
		key, err := model.NewKey("bike-release", "2026-10-14", "12:00")
		require.NoError(t, err)
		require.NoError(t, repo.TryReserve(ctx, key, "b-1", "cust", at))

		applied, err := repo.Release(ctx, key, "b-1", "cust", at)
		require.NoError(t, err)
		assert.True(t, applied)

		slot, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAvailable, slot.Status)
		assert.Nil(t, slot.BookingID)

		require.NoError(t, repo.TryReserve(ctx, key, "b-2", "cust", at))
	})

	t.Run("provision is idempotent and keeps held slots", func(t *testing.T) {
		key, err := model.NewKey("bike-prov", "2026-10-15", "13:00")
		require.NoError(t, err)
		require.NoError(t, repo.TryReserve(ctx, key, "b-1", "cust", at))

		created, err := repo.Provision(ctx, "bike-prov", "2026-10-15", "admin", at)
		require.NoError(t, err)
		assert.Equal(t, int64(len(model.Labels())-1), created)

		created, err = repo.Provision(ctx, "bike-prov", "2026-10-15", "admin", at)
		require.NoError(t, err)
		assert.Zero(t, created)

		slots, err := repo.ListByVehicleDate(ctx, "bike-prov", "2026-10-15")
		require.NoError(t, err)
		require.Len(t, slots, len(model.Labels()))
		assert.Equal(t, "10:00", slots[0].SlotLabel)
		assert.Equal(t, model.StatusUnavailable, slots[3].Status)
	})

	t.Run("override replaces the holder", func(t *testing.T) {
		key, err := model.NewKey("bike-override", "2026-10-14", "14:00")
		require.NoError(t, err)
		require.NoError(t, repo.TryReserve(ctx, key, "b-1", "cust", at))

		require.NoError(t, repo.Override(ctx, model.New(key, model.StatusAvailable, nil, at, "admin")))

		slot, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAvailable, slot.Status)
		assert.Equal(t, "admin", slot.UpdatedBy)
	})
}
