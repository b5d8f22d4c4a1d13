package service

//go:generate go run go.uber.org/mock/mockgen -source=./worker.go -destination=../mocks/worker_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rental/infras/otel"
	"rental/internal/domains/assignment/model"
	bookingModel "rental/internal/domains/booking/model"
	bookingRepo "rental/internal/domains/booking/repository"
	notificationModel "rental/internal/domains/notification/model"
	notificationService "rental/internal/domains/notification/service"
	userModel "rental/internal/domains/user/model"
	userService "rental/internal/domains/user/service"
	vehicleModel "rental/internal/domains/vehicle/model"
	vehicleService "rental/internal/domains/vehicle/service"
	"rental/shared/clock"
	"rental/shared/constant"

	"github.com/rs/zerolog/log"
)

// Worker routes REQUESTED bookings to the operator owning the vehicle.
type Worker interface {
	// Process handles one task. It is idempotent: a nil error means the task
	// can be acknowledged, any other error asks for redelivery.
	Process(ctx context.Context, task model.Task) error
}

type workerImpl struct {
	bookings  bookingRepo.Booking
	vehicles  vehicleService.Vehicle
	directory userService.Directory
	notifier  notificationService.Notifier
	clock     clock.Clock
	otel      otel.Otel
}

func NewWorker(
	bookings bookingRepo.Booking,
	vehicles vehicleService.Vehicle,
	directory userService.Directory,
	notifier notificationService.Notifier,
	clk clock.Clock,
	otel otel.Otel,
) Worker {
	return &workerImpl{
		bookings:  bookings,
		vehicles:  vehicles,
		directory: directory,
		notifier:  notifier,
		clock:     clk,
		otel:      otel,
	}
}

func (w *workerImpl) Process(ctx context.Context, task model.Task) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".assignment.Process")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"booking_id": task.BookingID,
		"action":     task.Action,
	})

	logger := log.With().Str("booking_id", task.BookingID).Logger()

	if task.Action != model.ActionNewBookingRequest {
		logger.Warn().Str("action", task.Action).Msg("unknown assignment action, acknowledging")

		return nil
	}

	booking, err := w.bookings.Get(ctx, task.BookingID)
	if errors.Is(err, bookingModel.ErrNotFound) {
		logger.Warn().Msg("booking of assignment task not found, acknowledging")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.Status != bookingModel.StatusRequested {
		logger.Info().Str("status", string(booking.Status)).Msg("booking already routed, skipping")

		return nil
	}

	vehicle, err := w.vehicles.Lookup(ctx, booking.VehicleID)
	if errors.Is(err, vehicleModel.ErrNotFound) {
		return w.fail(ctx, booking, bookingModel.StatusFailedVehicleNotFound)
	}

	if err != nil {
		return fmt.Errorf("failed to load vehicle: %w", err)
	}

	ownerID := vehicle.Owner()
	if ownerID == constant.Empty {
		return w.fail(ctx, booking, bookingModel.StatusFailedNoOwner)
	}

	owner, err := w.directory.Lookup(ctx, ownerID)
	if errors.Is(err, userModel.ErrNotFound) {
		return w.fail(ctx, booking, bookingModel.StatusFailedOwnerNotFound)
	}

	if err != nil {
		return fmt.Errorf("failed to look up operator: %w", err)
	}

	if !owner.CanOperate() {
		logger.Warn().Str("operator_id", ownerID).Msg("vehicle owner cannot take bookings")

		return w.fail(ctx, booking, bookingModel.StatusFailedOwnerNotFound)
	}

	now := w.clock.Now()
	fields := map[string]any{bookingModel.FieldAssignedOperatorID: ownerID}

	err = w.bookings.Transition(ctx, booking.ID, []bookingModel.Status{bookingModel.StatusRequested}, bookingModel.StatusPendingApproval, fields, constant.SystemActorID, now)
	if errors.Is(err, bookingModel.ErrPreconditionFailed) {
		logger.Info().Msg("booking changed concurrently, skipping assignment")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to assign booking: %w", err)
	}

	logger.Info().Str("operator_id", ownerID).Msg("booking assigned to operator")

	if notifyErr := w.notifier.Notify(ctx, approvalRequest(booking, owner)); notifyErr != nil {
		scope.TraceError(notifyErr)
	}

	return nil
}

// fail records a terminal assignment outcome. The slot stays held so an
// admin can inspect it.
func (w *workerImpl) fail(ctx context.Context, booking bookingModel.Booking, status bookingModel.Status) error {
	err := w.bookings.Transition(ctx, booking.ID, []bookingModel.Status{bookingModel.StatusRequested}, status, nil, constant.SystemActorID, w.clock.Now())
	if errors.Is(err, bookingModel.ErrPreconditionFailed) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to record assignment failure: %w", err)
	}

	log.Warn().Str("booking_id", booking.ID).Str("status", string(status)).Msg("booking could not be assigned")

	return nil
}

func approvalRequest(booking bookingModel.Booking, operator userModel.User) notificationModel.Notification {
	return notificationModel.Notification{
		Type:      notificationModel.TypeApprovalRequest,
		BookingID: booking.ID,
		Recipient: operator.Email,
		Message:   fmt.Sprintf("New booking %s for %s at %s needs your approval.", booking.ReferenceCode, booking.BookingDate, booking.SlotLabel),
		Details: map[string]any{
			"referenceCode": booking.ReferenceCode,
			"vehicleId":     booking.VehicleID,
			"bookingDate":   booking.BookingDate,
			"slot":          booking.SlotLabel,
			"requesterId":   booking.RequesterID,
		},
	}
}
