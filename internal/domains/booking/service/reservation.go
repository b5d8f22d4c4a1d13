package service

//go:generate go run go.uber.org/mock/mockgen -source=./reservation.go -destination=../mocks/reservation_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/internal/domains/assignment/publisher"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/repository"
	notificationService "rental/internal/domains/notification/service"
	slotModel "rental/internal/domains/slot/model"
	slotRepo "rental/internal/domains/slot/repository"
	"rental/shared/clock"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	gModel "rental/shared/model"
	"rental/shared/principal"
	"rental/shared/validator"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const releaseTimeout = 5 * time.Second

var sortableFields = []string{model.FieldCreatedAt, model.FieldBookingDate, model.FieldStatus}

type Reservation interface {
	// Create reserves the slot tentatively, stores the booking and enqueues
	// its assignment. A failed enqueue still returns the booking with
	// AssignmentQueued unset.
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetByReference(ctx context.Context, reference string) (dto.BookingResponse, error)
	ListMine(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	ListPending(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	// ListAll returns every booking, optionally narrowed by status and vehicle. Admin only.
	ListAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error)
	Cancel(ctx context.Context, reference string) (dto.StatusResponse, error)
}

type reservationImpl struct {
	repo      repository.Booking
	slots     slotRepo.Slot
	publisher publisher.Publisher
	notifier  notificationService.Notifier
	clock     clock.Clock
	cfg       *config.Config
	otel      otel.Otel
}

func NewReservation(
	repo repository.Booking,
	slots slotRepo.Slot,
	publisher publisher.Publisher,
	notifier notificationService.Notifier,
	clk clock.Clock,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	return &reservationImpl{
		repo:      repo,
		slots:     slots,
		publisher: publisher,
		notifier:  notifier,
		clock:     clk,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *reservationImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller := principal.FromContext(ctx)
	if !caller.Is(principal.RoleCustomer) {
		return res, failure.Forbidden("only customers can create bookings") // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	today := clock.Today(s.clock)

	switch {
	case s.cfg.Booking.SameDayOnly && req.BookingDate != today:
		return res, failure.BadRequestFromString("bookings are only accepted for today (" + today + ")") // nolint:wrapcheck
	case req.BookingDate < today:
		return res, failure.BadRequestFromString("booking date is in the past") // nolint:wrapcheck
	}

	key, err := slotModel.NewKey(req.VehicleID, req.BookingDate, req.Slot)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	bookingID := uuid.NewString()
	now := s.clock.Now()

	scope.SetAttributes(map[string]any{
		"booking_id": bookingID,
		"slot_key":   key.String(),
	})

	if err = s.slots.TryReserve(ctx, key, bookingID, caller.ID, now); err != nil {
		if errors.Is(err, slotModel.ErrSlotConflict) {
			return res, failure.Conflict("slot is already booked") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("slot_key", key.String()).Msg("failed to reserve slot")

		return res, fmt.Errorf("failed to reserve slot: %w", err)
	}

	booking := model.Booking{
		ID:             bookingID,
		VehicleID:      key.VehicleID,
		RequesterID:    caller.ID,
		RequesterEmail: caller.Email,
		BookingDate:    key.Date,
		SlotLabel:      key.Label,
		Status:         model.StatusRequested,
		Metadata:       gModel.NewMetadata(now, caller.ID),
	}

	booking, err = s.persist(ctx, booking)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to store booking, releasing slot")
		s.release(ctx, key, bookingID, caller.ID)

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	queued := true

	if enqueueErr := s.publisher.Enqueue(ctx, booking.ID); enqueueErr != nil {
		queued = false

		scope.TraceError(enqueueErr)
		log.Error().Err(enqueueErr).Str("booking_id", booking.ID).Msg("booking stored but assignment not queued")
	}

	log.Info().
		Str("booking_id", booking.ID).
		Str("reference_code", booking.ReferenceCode).
		Bool("assignment_queued", queued).
		Msg("booking requested")

	res.FromModel(booking, queued)

	return res, nil
}

// persist inserts booking, drawing a fresh reference code whenever the previous one collides.
func (s *reservationImpl) persist(ctx context.Context, booking model.Booking) (model.Booking, error) {
	accessCode, err := model.NewAccessCode()
	if err != nil {
		return booking, err //nolint:wrapcheck
	}

	booking.AccessCode = accessCode
	attempts := max(s.cfg.Booking.ReferenceRetries, 1)

	for attempt := 1; ; attempt++ {
		booking.ReferenceCode, err = model.NewReferenceCode()
		if err != nil {
			return booking, err //nolint:wrapcheck
		}

		err = s.repo.Create(ctx, booking)
		if err == nil {
			return booking, nil
		}

		if !errors.Is(err, model.ErrDuplicateReference) || attempt >= attempts {
			return booking, err //nolint:wrapcheck
		}

		log.Warn().Int("attempt", attempt).Str("booking_id", booking.ID).Msg("reference code collision, regenerating")
	}
}

// release frees key for bookingID even when ctx is already done.
func (s *reservationImpl) release(ctx context.Context, key slotModel.Key, bookingID, actor string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	applied, err := s.slots.Release(ctx, key, bookingID, actor, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Str("slot_key", key.String()).Str("booking_id", bookingID).Msg("failed to release slot")

		return
	}

	if !applied {
		log.Warn().Str("slot_key", key.String()).Str("booking_id", bookingID).Msg("slot was not held by booking")
	}
}

func (s *reservationImpl) GetByReference(ctx context.Context, reference string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetByReference")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller := principal.FromContext(ctx)

	booking, err := s.find(ctx, reference)
	if err != nil {
		return res, err
	}

	owner := booking.RequesterID == caller.ID
	admin := caller.Is(principal.RoleAdmin)

	if !owner && !admin && !booking.AssignedTo(caller.ID) {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(booking, owner || admin)

	return res, nil
}

func (s *reservationImpl) ListMine(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller := principal.FromContext(ctx)
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRequesterID, Value: caller.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return s.list(ctx, params, filter, true)
}

func (s *reservationImpl) ListPending(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListPending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller := principal.FromContext(ctx)
	if !caller.Is(principal.RoleOperator, principal.RoleAdmin) {
		return res, failure.ForbiddenError
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusPendingApproval, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if !caller.Is(principal.RoleAdmin) {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldAssignedOperatorID,
			Value:    caller.ID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return s.list(ctx, params, filter, caller.Is(principal.RoleAdmin))
}

func (s *reservationImpl) ListAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !principal.FromContext(ctx).Is(principal.RoleAdmin) {
		return res, failure.ForbiddenError
	}

	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if filter.Status != constant.Empty {
		status, err := model.ParseStatus(filter.Status)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.VehicleID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldVehicleID, Value: filter.VehicleID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return s.list(ctx, params, group, true)
}

func (s *reservationImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, revealAccess bool) (res dto.GetBookingsResponse, err error) {
	params.AllowSortBy(sortableFields...)

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return res, fmt.Errorf("failed to list bookings: %w", err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit, revealAccess)

	return res, nil
}

func (s *reservationImpl) Cancel(ctx context.Context, reference string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller := principal.FromContext(ctx)

	booking, err := s.find(ctx, reference)
	if err != nil {
		return res, err
	}

	if booking.RequesterID != caller.ID && !caller.Is(principal.RoleAdmin) {
		return res, failure.ResourceRestrictedError
	}

	if booking.Status.Terminal() {
		return res, failure.BadRequestFromString("booking cannot be cancelled in status " + string(booking.Status)) // nolint:wrapcheck
	}

	now := s.clock.Now()

	err = s.repo.Transition(ctx, booking.ID, model.Active(), model.StatusCancelled, nil, caller.ID, now)
	if errors.Is(err, model.ErrPreconditionFailed) {
		return res, failure.BadRequestFromString("booking is no longer cancellable") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = model.StatusCancelled

	key, err := slotModel.NewKey(booking.VehicleID, booking.BookingDate, booking.SlotLabel)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("booking carries an invalid slot key")
	} else {
		s.release(ctx, key, booking.ID, caller.ID)
	}

	if notifyErr := s.notifier.Notify(ctx, cancelledNotification(booking)); notifyErr != nil {
		scope.TraceError(notifyErr)
	}

	log.Info().Str("booking_id", booking.ID).Str("actor", caller.ID).Msg("booking cancelled")

	res.FromModel(booking)

	return res, nil
}

func (s *reservationImpl) find(ctx context.Context, reference string) (model.Booking, error) {
	return findByReference(ctx, s.repo, reference)
}

func findByReference(ctx context.Context, repo repository.Booking, reference string) (model.Booking, error) {
	booking, err := repo.FindByReference(ctx, reference)
	if errors.Is(err, model.ErrNotFound) {
		return booking, failure.NotFound(model.ErrNotFound.Error()) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("reference_code", reference).Msg("failed to find booking")

		return booking, fmt.Errorf("failed to find booking: %w", err)
	}

	return booking, nil
}
