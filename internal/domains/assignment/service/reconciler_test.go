package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/otel/mocks"
	assignmentMocks "rental/internal/domains/assignment/mocks"
	"rental/internal/domains/assignment/service"
	bookingMocks "rental/internal/domains/booking/mocks"
	bookingModel "rental/internal/domains/booking/model"
	"rental/shared/clock"
)

func newReconciler(t *testing.T) (*bookingMocks.MockBooking, *assignmentMocks.MockPublisher, service.Reconciler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	bookings := bookingMocks.NewMockBooking(ctrl)
	publisher := assignmentMocks.NewMockPublisher(ctrl)

	cfg := &config.Config{}
	cfg.Booking.ReconcileStaleSeconds = 300
	cfg.Booking.ReconcileBatchSize = 50
	cfg.Booking.ReconcileIntervalSecond = 1

	return bookings, publisher, service.NewReconciler(bookings, publisher, clock.NewMockClock(now), cfg, mocks.NewOtel())
}

func TestReconciler_Sweep(t *testing.T) {
	t.Run("re-enqueues stale bookings", func(t *testing.T) {
		bookings, publisher, reconciler := newReconciler(t)

		bookings.EXPECT().
			FindStaleRequested(gomock.Any(), now.Add(-5*time.Minute), 50).
			Return([]bookingModel.Booking{{ID: "b-1"}, {ID: "b-2"}, {ID: "b-3"}}, nil)
		publisher.EXPECT().Enqueue(gomock.Any(), "b-1").Return(nil)
		publisher.EXPECT().Enqueue(gomock.Any(), "b-2").Return(errDB)
		publisher.EXPECT().Enqueue(gomock.Any(), "b-3").Return(nil)

		queued, err := reconciler.Sweep(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, queued)
	})

	t.Run("nothing stale", func(t *testing.T) {
		bookings, _, reconciler := newReconciler(t)

		bookings.EXPECT().FindStaleRequested(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		queued, err := reconciler.Sweep(context.Background())

		require.NoError(t, err)
		assert.Zero(t, queued)
	})

	t.Run("store failure", func(t *testing.T) {
		bookings, _, reconciler := newReconciler(t)

		bookings.EXPECT().FindStaleRequested(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errDB)

		_, err := reconciler.Sweep(context.Background())

		require.ErrorIs(t, err, errDB)
	})
}

func TestReconciler_Run(t *testing.T) {
	bookings, _, reconciler := newReconciler(t)

	ctx, cancel := context.WithCancel(context.Background())

	bookings.EXPECT().
		FindStaleRequested(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time, int) ([]bookingModel.Booking, error) {
			cancel()

			return nil, nil
		}).
		MinTimes(1)

	done := make(chan error, 1)
	go func() { done <- reconciler.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reconciler did not stop")
	}
}
