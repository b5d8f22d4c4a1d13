package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/otel/mocks"
	assignmentMocks "rental/internal/domains/assignment/mocks"
	bookingMocks "rental/internal/domains/booking/mocks"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/service"
	notificationMocks "rental/internal/domains/notification/mocks"
	notificationModel "rental/internal/domains/notification/model"
	slotMocks "rental/internal/domains/slot/mocks"
	slotModel "rental/internal/domains/slot/model"
	"rental/shared/clock"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/principal"
	"rental/shared/timezone"
)

var (
	serviceTime = time.Date(2026, 10, 14, 9, 0, 0, 0, timezone.GetLocation())
	errDB       = errors.New("connection reset")

	customer = principal.Principal{ID: "cust-1", Role: principal.RoleCustomer, Email: "cust@example.com"}
	operator = principal.Principal{ID: "op-1", Role: principal.RoleOperator, Email: "op@example.com"}
	admin    = principal.Principal{ID: "admin-1", Role: principal.RoleAdmin}
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	slots     *slotMocks.MockSlot
	publisher *assignmentMocks.MockPublisher
	notifier  *notificationMocks.MockNotifier
	cfg       *config.Config
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.SameDayOnly = true
	cfg.Booking.ReferenceRetries = 3

	return fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		slots:     slotMocks.NewMockSlot(ctrl),
		publisher: assignmentMocks.NewMockPublisher(ctrl),
		notifier:  notificationMocks.NewMockNotifier(ctrl),
		cfg:       cfg,
	}
}

func (f fixture) reservation() service.Reservation {
	return service.NewReservation(f.repo, f.slots, f.publisher, f.notifier, clock.NewMockClock(serviceTime), f.cfg, mocks.NewOtel())
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{VehicleID: "bike-1", BookingDate: "2026-10-14", Slot: "10:00"}
}

func slotKey() slotModel.Key {
	return slotModel.Key{VehicleID: "bike-1", Date: "2026-10-14", Label: "10:00"}
}

func TestReservation_CreateRejectsBeforeTouchingStorage(t *testing.T) {
	tests := []struct {
		name     string
		caller   principal.Principal
		req      dto.CreateBookingRequest
		wantCode int
	}{
		{
			name:     "operator cannot book",
			caller:   operator,
			req:      validRequest(),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "role is checked before fields",
			caller:   admin,
			req:      dto.CreateBookingRequest{},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "missing vehicle",
			caller:   customer,
			req:      dto.CreateBookingRequest{BookingDate: "2026-10-14", Slot: "10:00"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing slot",
			caller:   customer,
			req:      dto.CreateBookingRequest{VehicleID: "bike-1", BookingDate: "2026-10-14"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "tomorrow is rejected",
			caller:   customer,
			req:      dto.CreateBookingRequest{VehicleID: "bike-1", BookingDate: "2026-10-15", Slot: "10:00"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "slot outside the fixed labels",
			caller:   customer,
			req:      dto.CreateBookingRequest{VehicleID: "bike-1", BookingDate: "2026-10-14", Slot: "09:00"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "half hour label",
			caller:   customer,
			req:      dto.CreateBookingRequest{VehicleID: "bike-1", BookingDate: "2026-10-14", Slot: "10:30"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := principal.WithContext(context.Background(), tt.caller)

			_, err := f.reservation().Create(ctx, tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestReservation_CreateReportsDateBeforeLabel(t *testing.T) {
	ctx := principal.WithContext(context.Background(), customer)

	tests := []struct {
		name    string
		date    string
		wantMsg string
	}{
		{name: "other day", date: "2026-10-15", wantMsg: "only accepted for today"},
		{name: "malformed day", date: "15/10/2026", wantMsg: "booking_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.reservation().Create(ctx, dto.CreateBookingRequest{VehicleID: "bike-1", BookingDate: tt.date, Slot: "09:00"})

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.NotContains(t, err.Error(), "slot label")
		})
	}
}

func TestReservation_Create(t *testing.T) {
	ctx := principal.WithContext(context.Background(), customer)

	t.Run("reserves, stores and enqueues", func(t *testing.T) {
		f := newFixture(t)

		var reservedFor string

		gomock.InOrder(
			f.slots.EXPECT().
				TryReserve(gomock.Any(), slotKey(), gomock.Any(), customer.ID, serviceTime).
				DoAndReturn(func(_ context.Context, _ slotModel.Key, bookingID, _ string, _ time.Time) error {
					reservedFor = bookingID

					return nil
				}),
			f.repo.EXPECT().
				Create(gomock.Any(), gomock.Cond(func(b model.Booking) bool {
					return b.ID == reservedFor &&
						b.Status == model.StatusRequested &&
						b.RequesterID == customer.ID &&
						b.RequesterEmail == customer.Email &&
						b.SlotLabel == "10:00" &&
						b.AssignedOperatorID == nil
				})).
				Return(nil),
			f.publisher.EXPECT().
				Enqueue(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, bookingID string) error {
					assert.Equal(t, reservedFor, bookingID)

					return nil
				}),
		)

		res, err := f.reservation().Create(ctx, validRequest())

		require.NoError(t, err)
		assert.Equal(t, reservedFor, res.BookingID)
		assert.Equal(t, string(model.StatusRequested), res.Status)
		assert.Regexp(t, `^[A-Z0-9]{8}$`, res.ReferenceCode)
		assert.Regexp(t, `^[0-9]{6}$`, res.AccessCode)
		assert.True(t, res.AssignmentQueued)
	})

	t.Run("conflict writes no booking", func(t *testing.T) {
		f := newFixture(t)

		f.slots.EXPECT().TryReserve(gomock.Any(), slotKey(), gomock.Any(), gomock.Any(), gomock.Any()).Return(slotModel.ErrSlotConflict)

		_, err := f.reservation().Create(ctx, validRequest())

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("ledger error is internal", func(t *testing.T) {
		f := newFixture(t)

		f.slots.EXPECT().TryReserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errDB)

		_, err := f.reservation().Create(ctx, validRequest())

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("duplicate reference is regenerated", func(t *testing.T) {
		f := newFixture(t)

		var references []string

		f.slots.EXPECT().TryReserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b model.Booking) error {
				references = append(references, b.ReferenceCode)
				if len(references) < 3 {
					return model.ErrDuplicateReference
				}

				return nil
			}).
			Times(3)
		f.publisher.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.reservation().Create(ctx, validRequest())

		require.NoError(t, err)
		assert.Len(t, references, 3)
		assert.Equal(t, references[2], res.ReferenceCode)
	})

	t.Run("exhausted reference retries release the slot", func(t *testing.T) {
		f := newFixture(t)

		var reservedFor string

		f.slots.EXPECT().
			TryReserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ slotModel.Key, bookingID, _ string, _ time.Time) error {
				reservedFor = bookingID

				return nil
			})
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(model.ErrDuplicateReference).Times(3)
		f.slots.EXPECT().
			Release(gomock.Any(), slotKey(), gomock.Any(), customer.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ slotModel.Key, bookingID, _ string, _ time.Time) (bool, error) {
				assert.Equal(t, reservedFor, bookingID)

				return true, nil
			})

		_, err := f.reservation().Create(ctx, validRequest())

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("store failure releases the slot", func(t *testing.T) {
		f := newFixture(t)

		f.slots.EXPECT().TryReserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errDB)
		f.slots.EXPECT().Release(gomock.Any(), slotKey(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.reservation().Create(ctx, validRequest())

		require.ErrorIs(t, err, errDB)
	})

	t.Run("enqueue failure keeps the booking", func(t *testing.T) {
		f := newFixture(t)

		f.slots.EXPECT().TryReserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(failure.Dependency("assignment", errDB))

		res, err := f.reservation().Create(ctx, validRequest())

		require.NoError(t, err)
		assert.False(t, res.AssignmentQueued)
		assert.Equal(t, string(model.StatusRequested), res.Status)
	})

	t.Run("future dates allowed when same day rule is off", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Booking.SameDayOnly = false

		req := validRequest()
		req.BookingDate = "2026-10-20"

		f.slots.EXPECT().
			TryReserve(gomock.Any(), slotModel.Key{VehicleID: "bike-1", Date: "2026-10-20", Label: "10:00"}, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.reservation().Create(ctx, req)

		require.NoError(t, err)
	})

	t.Run("past dates rejected when same day rule is off", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Booking.SameDayOnly = false

		req := validRequest()
		req.BookingDate = "2026-10-13"

		_, err := f.reservation().Create(ctx, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservation_CreateConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := principal.WithContext(context.Background(), customer)

	var (
		mu     sync.Mutex
		holder string
	)

	f.slots.EXPECT().
		TryReserve(gomock.Any(), slotKey(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ slotModel.Key, bookingID, _ string, _ time.Time) error {
			mu.Lock()
			defer mu.Unlock()

			if holder != "" {
				return slotModel.ErrSlotConflict
			}

			holder = bookingID

			return nil
		}).
		AnyTimes()
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := f.reservation()

	const callers = 20

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Create(ctx, validRequest())

			switch {
			case err == nil:
				succeeded.Add(1)
			case failure.GetCode(err) == http.StatusConflict:
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(callers-1), conflicts.Load())
}

func storedBooking(status model.Status) model.Booking {
	return model.Booking{
		ID:             "b-1",
		VehicleID:      "bike-1",
		RequesterID:    customer.ID,
		RequesterEmail: customer.Email,
		BookingDate:    "2026-10-14",
		SlotLabel:      "10:00",
		ReferenceCode:  "ABCD1234",
		AccessCode:     "123456",
		Status:         status,
	}
}

func assigned(booking model.Booking, operatorID string) model.Booking {
	booking.AssignedOperatorID = &operatorID

	return booking
}

func TestReservation_GetByReference(t *testing.T) {
	tests := []struct {
		name       string
		caller     principal.Principal
		booking    model.Booking
		findErr    error
		wantCode   int
		wantAccess bool
	}{
		{name: "owner sees access code", caller: customer, booking: storedBooking(model.StatusRequested), wantAccess: true},
		{name: "admin sees access code", caller: admin, booking: storedBooking(model.StatusRequested), wantAccess: true},
		{name: "assigned operator without access code", caller: operator, booking: assigned(storedBooking(model.StatusPendingApproval), operator.ID)},
		{
			name:     "other operator is forbidden",
			caller:   operator,
			booking:  assigned(storedBooking(model.StatusPendingApproval), "op-2"),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "other customer is forbidden",
			caller:   principal.Principal{ID: "cust-2", Role: principal.RoleCustomer},
			booking:  storedBooking(model.StatusRequested),
			wantCode: http.StatusForbidden,
		},
		{name: "unknown reference", caller: customer, findErr: model.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "store error", caller: customer, findErr: errDB, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := principal.WithContext(context.Background(), tt.caller)

			f.repo.EXPECT().FindByReference(gomock.Any(), "ABCD1234").Return(tt.booking, tt.findErr)

			res, err := f.reservation().GetByReference(ctx, "ABCD1234")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b-1", res.ID)

			if tt.wantAccess {
				assert.Equal(t, "123456", res.AccessCode)
			} else {
				assert.Empty(t, res.AccessCode)
			}
		})
	}
}

func TestReservation_ListMine(t *testing.T) {
	f := newFixture(t)
	ctx := principal.WithContext(context.Background(), customer)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "id; DROP TABLE bookings"}

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Cond(func(p gDto.QueryParams) bool {
			return p.SortBy == model.FieldCreatedAt && p.Limit == 10
		}), gomock.Any()).
		Return([]model.Booking{storedBooking(model.StatusRequested)}, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)

	res, err := f.reservation().ListMine(ctx, params)

	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "123456", res.Bookings[0].AccessCode)
}

func TestReservation_ListPending(t *testing.T) {
	t.Run("customer is forbidden", func(t *testing.T) {
		f := newFixture(t)
		ctx := principal.WithContext(context.Background(), customer)

		_, err := f.reservation().ListPending(ctx, gDto.QueryParams{})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("operator sees own queue", func(t *testing.T) {
		f := newFixture(t)
		ctx := principal.WithContext(context.Background(), operator)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Cond(func(filter gDto.FilterGroup) bool {
				return len(filter.Filters) == 2
			})).
			Return([]model.Booking{assigned(storedBooking(model.StatusPendingApproval), operator.ID)}, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

		res, err := f.reservation().ListPending(ctx, gDto.QueryParams{Page: 1, Limit: 10})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Empty(t, res.Bookings[0].AccessCode)
	})

	t.Run("count failure", func(t *testing.T) {
		f := newFixture(t)
		ctx := principal.WithContext(context.Background(), admin)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errDB)

		_, err := f.reservation().ListPending(ctx, gDto.QueryParams{})

		require.ErrorIs(t, err, errDB)
	})
}

func TestReservation_ListAll(t *testing.T) {
	adminCtx := principal.WithContext(context.Background(), admin)

	t.Run("admin sees every booking with access codes", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Cond(func(filter gDto.FilterGroup) bool {
				return len(filter.Filters) == 0
			})).
			Return([]model.Booking{storedBooking(model.StatusConfirmed), storedBooking(model.StatusRequested)}, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)

		res, err := f.reservation().ListAll(adminCtx, gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{})

		require.NoError(t, err)
		assert.Len(t, res.Bookings, 2)
		assert.Equal(t, 12, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Equal(t, "123456", res.Bookings[0].AccessCode)
	})

	t.Run("status and vehicle narrow the listing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Cond(func(filter gDto.FilterGroup) bool {
				if len(filter.Filters) != 2 {
					return false
				}

				status, _ := filter.Filters[0].(gDto.Filter)
				vehicle, _ := filter.Filters[1].(gDto.Filter)

				return status.Value == model.StatusConfirmed && vehicle.Value == "bike-1"
			})).
			Return(nil, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)

		_, err := f.reservation().ListAll(adminCtx, gDto.QueryParams{}, dto.ListFilter{Status: "confirmed", VehicleID: "bike-1"})

		require.NoError(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.reservation().ListAll(adminCtx, gDto.QueryParams{}, dto.ListFilter{Status: "LOST"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("operator is forbidden", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.reservation().ListAll(principal.WithContext(context.Background(), operator), gDto.QueryParams{}, dto.ListFilter{})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestReservation_Cancel(t *testing.T) {
	t.Run("owner cancels pending booking", func(t *testing.T) {
		f := newFixture(t)
		ctx := principal.WithContext(context.Background(), customer)
		booking := assigned(storedBooking(model.StatusPendingApproval), operator.ID)

		gomock.InOrder(
			f.repo.EXPECT().FindByReference(gomock.Any(), "ABCD1234").Return(booking, nil),
			f.repo.EXPECT().
				Transition(gomock.Any(), "b-1", model.Active(), model.StatusCancelled, gomock.Nil(), customer.ID, serviceTime).
				Return(nil),
			f.slots.EXPECT().Release(gomock.Any(), slotKey(), "b-1", customer.ID, gomock.Any()).Return(true, nil),
			f.notifier.EXPECT().
				Notify(gomock.Any(), gomock.Cond(func(n notificationModel.Notification) bool {
					return n.Type == notificationModel.TypeCancelled && n.BookingID == "b-1"
				})).
				Return(nil),
		)

		res, err := f.reservation().Cancel(ctx, "ABCD1234")

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
	})

	t.Run("notification failure does not fail the cancel", func(t *testing.T) {
		f := newFixture(t)
		ctx := principal.WithContext(context.Background(), admin)

		f.repo.EXPECT().FindByReference(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusRequested), nil)
		f.repo.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.slots.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(failure.Dependency("notification", errDB))

		_, err := f.reservation().Cancel(ctx, "ABCD1234")

		require.NoError(t, err)
	})

	t.Run("terminal booking", func(t *testing.T) {
		f := newFixture(t)
		ctx := principal.WithContext(context.Background(), customer)

		f.repo.EXPECT().FindByReference(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusConfirmed), nil)

		_, err := f.reservation().Cancel(ctx, "ABCD1234")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("lost race on transition", func(t *testing.T) {
		f := newFixture(t)
		ctx := principal.WithContext(context.Background(), customer)

		f.repo.EXPECT().FindByReference(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusPendingApproval), nil)
		f.repo.EXPECT().
			Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.ErrPreconditionFailed)

		_, err := f.reservation().Cancel(ctx, "ABCD1234")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newFixture(t)
		ctx := principal.WithContext(context.Background(), operator)

		f.repo.EXPECT().FindByReference(gomock.Any(), gomock.Any()).Return(assigned(storedBooking(model.StatusPendingApproval), operator.ID), nil)

		_, err := f.reservation().Cancel(ctx, "ABCD1234")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}
