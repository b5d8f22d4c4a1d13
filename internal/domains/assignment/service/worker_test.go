package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/infras/otel/mocks"
	"rental/internal/domains/assignment/model"
	"rental/internal/domains/assignment/service"
	bookingMocks "rental/internal/domains/booking/mocks"
	bookingModel "rental/internal/domains/booking/model"
	notificationMocks "rental/internal/domains/notification/mocks"
	notificationModel "rental/internal/domains/notification/model"
	userMocks "rental/internal/domains/user/mocks"
	userModel "rental/internal/domains/user/model"
	vehicleMocks "rental/internal/domains/vehicle/mocks"
	vehicleModel "rental/internal/domains/vehicle/model"
	"rental/shared/clock"
	"rental/shared/constant"
)

var (
	now   = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	errDB = errors.New("connection refused")
)

type workerFixture struct {
	bookings  *bookingMocks.MockBooking
	vehicles  *vehicleMocks.MockVehicleService
	directory *userMocks.MockDirectory
	notifier  *notificationMocks.MockNotifier
	worker    service.Worker
}

func newWorkerFixture(t *testing.T) workerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := workerFixture{
		bookings:  bookingMocks.NewMockBooking(ctrl),
		vehicles:  vehicleMocks.NewMockVehicleService(ctrl),
		directory: userMocks.NewMockDirectory(ctrl),
		notifier:  notificationMocks.NewMockNotifier(ctrl),
	}

	f.worker = service.NewWorker(f.bookings, f.vehicles, f.directory, f.notifier, clock.NewMockClock(now), mocks.NewOtel())

	return f
}

func requested() bookingModel.Booking {
	return bookingModel.Booking{
		ID:            "b-1",
		VehicleID:     "bike-1",
		RequesterID:   "cust-1",
		BookingDate:   "2026-10-14",
		SlotLabel:     "10:00",
		ReferenceCode: "ABCD1234",
		Status:        bookingModel.StatusRequested,
	}
}

func ownedBy(ownerID string) vehicleModel.Vehicle {
	return vehicleModel.Vehicle{ID: "bike-1", OwnerID: &ownerID, Active: true}
}

func expectTerminal(f workerFixture, status bookingModel.Status) {
	f.bookings.EXPECT().
		Transition(gomock.Any(), "b-1", []bookingModel.Status{bookingModel.StatusRequested}, status, gomock.Nil(), constant.SystemActorID, now).
		Return(nil)
}

func TestWorker_Process(t *testing.T) {
	task := model.NewTask("b-1")
	operator := userModel.User{ID: "op-1", Email: "op@example.com", Role: "operator", Active: true}

	t.Run("assigns the owner and notifies them", func(t *testing.T) {
		f := newWorkerFixture(t)

		gomock.InOrder(
			f.bookings.EXPECT().Get(gomock.Any(), "b-1").Return(requested(), nil),
			f.vehicles.EXPECT().Lookup(gomock.Any(), "bike-1").Return(ownedBy("op-1"), nil),
			f.directory.EXPECT().Lookup(gomock.Any(), "op-1").Return(operator, nil),
			f.bookings.EXPECT().
				Transition(gomock.Any(), "b-1", []bookingModel.Status{bookingModel.StatusRequested}, bookingModel.StatusPendingApproval,
					map[string]any{bookingModel.FieldAssignedOperatorID: "op-1"}, constant.SystemActorID, now).
				Return(nil),
			f.notifier.EXPECT().
				Notify(gomock.Any(), gomock.Cond(func(n notificationModel.Notification) bool {
					return n.Type == notificationModel.TypeApprovalRequest && n.Recipient == "op@example.com" && n.BookingID == "b-1"
				})).
				Return(nil),
		)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("notification failure still acknowledges", func(t *testing.T) {
		f := newWorkerFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(requested(), nil)
		f.vehicles.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(ownedBy("op-1"), nil)
		f.directory.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(operator, nil)
		f.bookings.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errDB)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("vehicle missing", func(t *testing.T) {
		f := newWorkerFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(requested(), nil)
		f.vehicles.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{}, vehicleModel.ErrNotFound)
		expectTerminal(f, bookingModel.StatusFailedVehicleNotFound)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("vehicle without owner", func(t *testing.T) {
		f := newWorkerFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(requested(), nil)
		f.vehicles.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{ID: "bike-1"}, nil)
		expectTerminal(f, bookingModel.StatusFailedNoOwner)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("owner unknown to the directory", func(t *testing.T) {
		f := newWorkerFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(requested(), nil)
		f.vehicles.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(ownedBy("op-9"), nil)
		f.directory.EXPECT().Lookup(gomock.Any(), "op-9").Return(userModel.User{}, userModel.ErrNotFound)
		expectTerminal(f, bookingModel.StatusFailedOwnerNotFound)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("inactive owner", func(t *testing.T) {
		f := newWorkerFixture(t)
		inactive := operator
		inactive.Active = false

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(requested(), nil)
		f.vehicles.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(ownedBy("op-1"), nil)
		f.directory.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(inactive, nil)
		expectTerminal(f, bookingModel.StatusFailedOwnerNotFound)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("redelivered task for a routed booking is a no-op", func(t *testing.T) {
		f := newWorkerFixture(t)
		routed := requested()
		routed.Status = bookingModel.StatusPendingApproval

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(routed, nil)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("booking gone", func(t *testing.T) {
		f := newWorkerFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, bookingModel.ErrNotFound)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("lost race with a cancellation", func(t *testing.T) {
		f := newWorkerFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(requested(), nil)
		f.vehicles.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(ownedBy("op-1"), nil)
		f.directory.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(operator, nil)
		f.bookings.EXPECT().
			Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookingModel.ErrPreconditionFailed)

		require.NoError(t, f.worker.Process(context.Background(), task))
	})

	t.Run("unknown action is acknowledged", func(t *testing.T) {
		f := newWorkerFixture(t)

		require.NoError(t, f.worker.Process(context.Background(), model.Task{BookingID: "b-1", Action: "SOMETHING_ELSE"}))
	})

	t.Run("transient failures ask for redelivery", func(t *testing.T) {
		cases := map[string]func(f workerFixture){
			"booking store": func(f workerFixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, errDB)
			},
			"vehicle registry": func(f workerFixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(requested(), nil)
				f.vehicles.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{}, errDB)
			},
			"directory": func(f workerFixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(requested(), nil)
				f.vehicles.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(ownedBy("op-1"), nil)
				f.directory.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(userModel.User{}, errDB)
			},
		}

		for name, setup := range cases {
			t.Run(name, func(t *testing.T) {
				f := newWorkerFixture(t)
				setup(f)

				err := f.worker.Process(context.Background(), task)

				require.Error(t, err)
				assert.ErrorIs(t, err, errDB)
			})
		}
	})
}
