package service

//go:generate go run go.uber.org/mock/mockgen -source=./approval.go -destination=../mocks/approval_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rental/infras/otel"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/repository"
	notificationService "rental/internal/domains/notification/service"
	slotModel "rental/internal/domains/slot/model"
	slotRepo "rental/internal/domains/slot/repository"
	"rental/shared/clock"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/principal"
	"rental/shared/validator"

	"github.com/rs/zerolog/log"
)

type Approval interface {
	// Decide applies the assigned operator's decision to the booking with
	// the given reference code. Repeating an applied decision re-settles the
	// slot and succeeds.
	Decide(ctx context.Context, reference string, req dto.DecisionRequest) (dto.StatusResponse, error)
}

type approvalImpl struct {
	repo     repository.Booking
	slots    slotRepo.Slot
	notifier notificationService.Notifier
	clock    clock.Clock
	otel     otel.Otel
}

func NewApproval(repo repository.Booking, slots slotRepo.Slot, notifier notificationService.Notifier, clk clock.Clock, otel otel.Otel) Approval {
	return &approvalImpl{
		repo:     repo,
		slots:    slots,
		notifier: notifier,
		clock:    clk,
		otel:     otel,
	}
}

func (s *approvalImpl) Decide(ctx context.Context, reference string, req dto.DecisionRequest) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".approval.Decide")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	decision, err := model.ParseDecision(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	caller := principal.FromContext(ctx)

	booking, err := findByReference(ctx, s.repo, reference)
	if err != nil {
		return res, err
	}

	if !booking.AssignedTo(caller.ID) {
		return res, failure.Forbidden("only the assigned operator can decide on this booking") // nolint:wrapcheck
	}

	key, err := slotModel.NewKey(booking.VehicleID, booking.BookingDate, booking.SlotLabel)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("booking carries an invalid slot key")

		return res, fmt.Errorf("failed to build slot key: %w", err)
	}

	target := decision.Target()

	if booking.Status == target {
		res, err = s.settle(ctx, key, booking, caller.ID)
		if err != nil {
			return res, err
		}

		s.notify(ctx, scope, booking)

		return res, nil
	}

	if booking.Status != model.StatusPendingApproval {
		return res, failure.BadRequestFromString("booking is not pending approval (status " + string(booking.Status) + ")") // nolint:wrapcheck
	}

	if target == model.StatusConfirmed {
		if err = s.finalize(ctx, key, booking.ID, slotModel.StatusReserved, caller.ID); err != nil {
			return res, err
		}
	}

	now := s.clock.Now()
	fields := map[string]any{model.FieldApprovedAt: now}

	err = s.repo.Transition(ctx, booking.ID, []model.Status{model.StatusPendingApproval}, target, fields, caller.ID, now)
	if errors.Is(err, model.ErrPreconditionFailed) {
		return s.reconcile(ctx, key, booking.ID, target, caller.ID)
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to record decision")

		return res, fmt.Errorf("failed to record decision: %w", err)
	}

	booking.Status = target
	booking.ApprovedAt = &now

	if target == model.StatusConfirmed {
		res.FromModel(booking)
	} else if res, err = s.settle(ctx, key, booking, caller.ID); err != nil {
		return res, err
	}

	s.notify(ctx, scope, booking)

	log.Info().
		Str("booking_id", booking.ID).
		Str("status", string(booking.Status)).
		Str("operator_id", caller.ID).
		Msg("booking decided")

	return res, nil
}

// reconcile handles a lost race on the transition: a concurrent identical
// decision counts as success, anything else is rejected and gives back a
// slot this call reserved.
func (s *approvalImpl) reconcile(ctx context.Context, key slotModel.Key, bookingID string, target model.Status, actor string) (res dto.StatusResponse, err error) {
	booking, err := s.repo.Get(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to reload booking")

		return res, fmt.Errorf("failed to reload booking: %w", err)
	}

	if booking.Status != target {
		if target == model.StatusConfirmed && !booking.Status.HoldsSlot() {
			if _, releaseErr := s.slots.Finalize(ctx, key, bookingID, slotModel.StatusAvailable, actor, s.clock.Now()); releaseErr != nil {
				log.Error().Err(releaseErr).Str("booking_id", bookingID).Msg("failed to give back slot")
			}
		}

		return res, failure.BadRequestFromString("booking is not pending approval (status " + string(booking.Status) + ")") // nolint:wrapcheck
	}

	return s.settle(ctx, key, booking, actor)
}

// settle finalizes the slot to match the booking's decided status. It is
// safe to call repeatedly.
func (s *approvalImpl) settle(ctx context.Context, key slotModel.Key, booking model.Booking, actor string) (res dto.StatusResponse, err error) {
	outcome := slotModel.StatusAvailable
	if booking.Status == model.StatusConfirmed {
		outcome = slotModel.StatusReserved
	}

	if err = s.finalize(ctx, key, booking.ID, outcome, actor); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// finalize moves the slot into outcome. A reservation that did not apply is
// only accepted when the slot is already RESERVED for bookingID.
func (s *approvalImpl) finalize(ctx context.Context, key slotModel.Key, bookingID string, outcome slotModel.Status, actor string) error {
	applied, err := s.slots.Finalize(ctx, key, bookingID, outcome, actor, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to finalize slot")

		return fmt.Errorf("failed to finalize slot: %w", err)
	}

	log.Debug().Str("slot_key", key.String()).Bool("applied", applied).Str("outcome", string(outcome)).Msg("slot finalized")

	if applied || outcome != slotModel.StatusReserved {
		return nil
	}

	slot, err := s.slots.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("slot_key", key.String()).Msg("failed to load slot")

		return fmt.Errorf("failed to load slot: %w", err)
	}

	if slot.Status != slotModel.StatusReserved || !slot.HeldBy(bookingID) {
		log.Warn().Str("slot_key", key.String()).Str("booking_id", bookingID).Str("slot_status", string(slot.Status)).Msg("slot no longer held by booking")

		return failure.Conflict("slot is no longer held by this booking") // nolint:wrapcheck
	}

	return nil
}

// notify tells the customer about the decision. Delivery failures are traced only.
func (s *approvalImpl) notify(ctx context.Context, scope otel.Scope, booking model.Booking) {
	if err := s.notifier.Notify(ctx, statusNotification(booking)); err != nil {
		scope.TraceError(err)
	}
}
