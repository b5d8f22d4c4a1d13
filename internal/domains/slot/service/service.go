package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rental/infras/otel"
	"rental/internal/domains/slot/model"
	"rental/internal/domains/slot/model/dto"
	"rental/internal/domains/slot/repository"
	"rental/shared/clock"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/principal"
	"rental/shared/timezone"
	"rental/shared/validator"
	"time"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	// Snapshot returns the status of every fixed slot of vehicleID on date.
	// An empty date means the current service date.
	Snapshot(ctx context.Context, vehicleID, date string) (dto.AvailabilityResponse, error)
	// Override writes slot statuses. Admin only. A slot held by a booking that
	// still counts on it is only taken over when the request is forced.
	Override(ctx context.Context, vehicleID string, req dto.OverrideRequest) (dto.OverrideResponse, error)
	// Provision seeds AVAILABLE rows for the next days of vehicleID, starting today.
	Provision(ctx context.Context, vehicleID string, days int) (int64, error)
}

// Holders tells whether the booking holding a slot still counts on it.
type Holders interface {
	HoldsSlot(ctx context.Context, bookingID string) (bool, error)
}

type serviceImpl struct {
	repo    repository.Slot
	holders Holders
	clock   clock.Clock
	otel    otel.Otel
}

func New(repo repository.Slot, holders Holders, clk clock.Clock, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:    repo,
		holders: holders,
		clock:   clk,
		otel:    otel,
	}
}

func (s *serviceImpl) Snapshot(ctx context.Context, vehicleID, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Snapshot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if date == constant.Empty {
		date = clock.Today(s.clock)
	}

	if _, err = time.Parse(constant.DayFormat, date); err != nil {
		return res, failure.BadRequestFromString("invalid date format, use YYYY-MM-DD") // nolint:wrapcheck
	}

	slots, err := s.repo.ListByVehicleDate(ctx, vehicleID, date)
	if err != nil {
		log.Error().Err(err).Str("vehicle_id", vehicleID).Str("date", date).Msg("failed to list slots")

		return res, fmt.Errorf("failed to list slots: %w", err)
	}

	res.FromSlots(vehicleID, date, slots)

	return res, nil
}

func (s *serviceImpl) Override(ctx context.Context, vehicleID string, req dto.OverrideRequest) (res dto.OverrideResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Override")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller := principal.FromContext(ctx)
	if !caller.Is(principal.RoleAdmin) {
		return res, failure.Forbidden("only admins can update availability") // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	slots := make([]model.Slot, 0, len(req.Updates))
	now := s.clock.Now()

	for _, update := range req.Updates {
		key, err := model.NewKey(vehicleID, req.Date, update.Slot)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		status, err := model.ParseStatus(update.Status)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		var bookingID *string
		if status.Held() && update.BookingID != constant.Empty {
			bookingID = &update.BookingID
		}

		slot := model.New(key, status, bookingID, now, caller.ID)
		if !req.Force {
			if err = s.guard(ctx, key, slot); err != nil {
				return res, err
			}
		}

		slots = append(slots, slot)
	}

	res.UpdatedSlots = make([]string, 0, len(slots))

	for _, slot := range slots {
		if err = s.repo.Override(ctx, slot); err != nil {
			log.Error().Err(err).Str("slot_key", slot.SlotKey).Msg("failed to override slot")

			return res, fmt.Errorf("failed to override slot: %w", err)
		}

		log.Warn().
			Str("slot_key", slot.SlotKey).
			Str("status", string(slot.Status)).
			Str("actor", caller.ID).
			Msg("slot status overridden manually")

		res.UpdatedSlots = append(res.UpdatedSlots, slot.SlotLabel+":"+string(slot.Status))
	}

	res.Message = "availability updated successfully"
	res.VehicleID = vehicleID
	res.Date = req.Date

	return res, nil
}

// guard refuses to move a slot away from a booking that still counts on it.
// Keeping the same holder, e.g. UNAVAILABLE to RESERVED, is allowed.
func (s *serviceImpl) guard(ctx context.Context, key model.Key, next model.Slot) error {
	current, err := s.repo.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("slot_key", key.String()).Msg("failed to load slot")

		return fmt.Errorf("failed to load slot: %w", err)
	}

	if current.BookingID == nil || !current.Status.Held() {
		return nil
	}

	holder := *current.BookingID
	if next.Status.Held() && next.HeldBy(holder) {
		return nil
	}

	holds, err := s.holders.HoldsSlot(ctx, holder)
	if err != nil {
		log.Error().Err(err).Str("booking_id", holder).Msg("failed to load slot holder")

		return fmt.Errorf("failed to load slot holder: %w", err)
	}

	if holds {
		return failure.Conflict(fmt.Sprintf("slot %s is held by booking %s, set force to override", key.Label, holder)) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Provision(ctx context.Context, vehicleID string, days int) (created int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Provision")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := principal.FromContext(ctx).ID
	if actor == constant.Empty {
		actor = constant.SystemActorID
	}

	now := s.clock.Now()

	for day := range max(days, 1) {
		date := timezone.Day(now.AddDate(0, 0, day))

		n, err := s.repo.Provision(ctx, vehicleID, date, actor, now)
		if err != nil {
			if errors.Is(err, model.ErrInvalidKey) {
				return created, failure.BadRequest(err) // nolint:wrapcheck
			}

			log.Error().Err(err).Str("vehicle_id", vehicleID).Str("date", date).Msg("failed to provision slots")

			return created, fmt.Errorf("failed to provision slots: %w", err)
		}

		created += n
	}

	return created, nil
}
