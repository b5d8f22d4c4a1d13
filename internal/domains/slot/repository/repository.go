package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/slot/model"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	holderArgName        = "holder_booking_id"
	currentStatusArgName = "current_status"
)

var (
	// The conflict target only takes over a row that nobody holds.
	queryTryReserve = fmt.Sprintf(`INSERT INTO %[1]s (slot_key, vehicle_id, slot_date, slot_label, status, booking_id, updated_at, updated_by)
VALUES (:slot_key, :vehicle_id, :slot_date, :slot_label, :status, :booking_id, :updated_at, :updated_by)
ON CONFLICT (slot_key) DO UPDATE
SET status = EXCLUDED.status, booking_id = EXCLUDED.booking_id, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by
WHERE %[1]s.status = '%[2]s'`, model.TableName, model.StatusAvailable)

	queryOverride = fmt.Sprintf(`INSERT INTO %s (slot_key, vehicle_id, slot_date, slot_label, status, booking_id, updated_at, updated_by)
VALUES (:slot_key, :vehicle_id, :slot_date, :slot_label, :status, :booking_id, :updated_at, :updated_by)
ON CONFLICT (slot_key) DO UPDATE
SET status = EXCLUDED.status, booking_id = EXCLUDED.booking_id, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by`, model.TableName)

	queryProvision = fmt.Sprintf(`INSERT INTO %s (slot_key, vehicle_id, slot_date, slot_label, status, booking_id, updated_at, updated_by)
VALUES (:slot_key, :vehicle_id, :slot_date, :slot_label, :status, :booking_id, :updated_at, :updated_by)
ON CONFLICT (slot_key) DO NOTHING`, model.TableName)
)

// Slot is the availability ledger. Every write is a single conditional
// statement so concurrent writers on one key are serialised by Postgres.
type Slot interface {
	// TryReserve moves key to UNAVAILABLE for bookingID. It returns
	// model.ErrSlotConflict when another booking holds the slot.
	TryReserve(ctx context.Context, key model.Key, bookingID, actor string, at time.Time) error
	// Finalize settles the slot held by bookingID into outcome. It reports
	// applied=false when the slot is not held by bookingID or already settled.
	Finalize(ctx context.Context, key model.Key, bookingID string, outcome model.Status, actor string, at time.Time) (bool, error)
	// Release frees the slot only if bookingID still holds it.
	Release(ctx context.Context, key model.Key, bookingID, actor string, at time.Time) (bool, error)
	Provision(ctx context.Context, vehicleID, date, actor string, at time.Time) (int64, error)
	Override(ctx context.Context, slot model.Slot) error
	Get(ctx context.Context, key model.Key) (model.Slot, error)
	ListByVehicleDate(ctx context.Context, vehicleID, date string) ([]model.Slot, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldSlotKey, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) TryReserve(ctx context.Context, key model.Key, bookingID, actor string, at time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.TryReserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldSlotKey, key.String())

	affected, err := r.Exec(ctx, queryTryReserve, model.New(key, model.StatusUnavailable, &bookingID, at, actor))
	if err != nil {
		return fmt.Errorf("failed to reserve slot: %w", err)
	}

	if affected == 0 {
		log.Info().Str("slot_key", key.String()).Str("booking_id", bookingID).Msg("slot already held")

		return model.ErrSlotConflict
	}

	return nil
}

func (r *repositoryImpl) Finalize(ctx context.Context, key model.Key, bookingID string, outcome model.Status, actor string, at time.Time) (applied bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Finalize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		model.FieldSlotKey: key.String(),
		model.FieldStatus:  string(outcome),
	})

	if outcome != model.StatusReserved && outcome != model.StatusAvailable {
		return false, fmt.Errorf("%w: cannot finalize into %s", model.ErrInvalidStatus, outcome)
	}

	return r.settle(ctx, key, bookingID, outcome, actor, at)
}

func (r *repositoryImpl) Release(ctx context.Context, key model.Key, bookingID, actor string, at time.Time) (applied bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Release")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldSlotKey, key.String())

	return r.settle(ctx, key, bookingID, model.StatusAvailable, actor, at)
}

// settle is the guarded write shared by Finalize and Release: it only touches
// the row while bookingID holds it and the status still differs from outcome.
func (r *repositoryImpl) settle(ctx context.Context, key model.Key, bookingID string, outcome model.Status, actor string, at time.Time) (bool, error) {
	mod := map[string]any{
		model.FieldStatus:    outcome,
		model.FieldUpdatedAt: at,
		model.FieldUpdatedBy: actor,
	}

	if outcome == model.StatusAvailable {
		mod[model.FieldBookingID] = nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldSlotKey, Value: key.String(), Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldBookingID, ArgName: holderArgName, Value: bookingID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldStatus, ArgName: currentStatusArgName, Value: outcome, Operator: gDto.FilterOperatorNotEq},
		},
	}

	affected, err := r.UpdateAffected(ctx, mod, filter)
	if err != nil {
		return false, fmt.Errorf("failed to settle slot: %w", err)
	}

	return affected > 0, nil
}

func (r *repositoryImpl) Provision(ctx context.Context, vehicleID, date, actor string, at time.Time) (created int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Provision")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slots := make([]model.Slot, 0, len(model.Labels()))

	for _, label := range model.Labels() {
		key, err := model.NewKey(vehicleID, date, label)
		if err != nil {
			return 0, err //nolint:wrapcheck
		}

		slots = append(slots, model.New(key, model.StatusAvailable, nil, at, actor))
	}

	created, err = r.Exec(ctx, queryProvision, slots)
	if err != nil {
		return 0, fmt.Errorf("failed to provision slots: %w", err)
	}

	return created, nil
}

func (r *repositoryImpl) Override(ctx context.Context, slot model.Slot) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Override")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldSlotKey, slot.SlotKey)

	if _, err = r.Exec(ctx, queryOverride, slot); err != nil {
		return fmt.Errorf("failed to override slot: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Get(ctx context.Context, key model.Key) (model.Slot, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Get")
	defer scope.End()

	return r.Repository.Get(ctx, gDto.FilterGroup{ //nolint:wrapcheck
		Filters: []any{
			gDto.Filter{Field: model.FieldSlotKey, Value: key.String(), Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
}

func (r *repositoryImpl) ListByVehicleDate(ctx context.Context, vehicleID, date string) ([]model.Slot, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.ListByVehicleDate")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldSlotLabel, SortDir: gDto.SortDirAsc}
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldVehicleID, Value: vehicleID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldSlotDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}
