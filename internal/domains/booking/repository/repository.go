package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/booking/model"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gRepo "rental/shared/repository"
	"time"

	"github.com/lib/pq"
)

const (
	fromStatusArgName = "from_status"

	constraintReferenceCode = "uq_bookings_reference_code"
)

type Booking interface {
	// Create inserts a new booking. It returns model.ErrDuplicateReference when
	// the reference code is already taken.
	Create(ctx context.Context, booking model.Booking) error
	// Transition moves booking id into to, provided its current status is one
	// of from. fields are written in the same statement. Zero matched rows
	// yields model.ErrPreconditionFailed.
	Transition(ctx context.Context, id string, from []model.Status, to model.Status, fields map[string]any, actor string, at time.Time) error
	Get(ctx context.Context, id string) (model.Booking, error)
	FindByReference(ctx context.Context, code string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// FindStaleRequested returns REQUESTED bookings created at or before olderThan, oldest first.
	FindStaleRequested(ctx context.Context, olderThan time.Time, limit int) ([]model.Booking, error)
	// HoldsSlot reports whether booking id exists and still counts on its slot.
	HoldsSlot(ctx context.Context, id string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Create(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.Insert(ctx, booking)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation && pqErr.Constraint == constraintReferenceCode {
		return model.ErrDuplicateReference
	}

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Transition(ctx context.Context, id string, from []model.Status, to model.Status, fields map[string]any, actor string, at time.Time) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		model.FieldID:     id,
		model.FieldStatus: string(to),
	})

	if err = model.ValidateTransition(from, to); err != nil {
		return err //nolint:wrapcheck
	}

	mod := map[string]any{}
	maps.Copy(mod, fields)

	mod[model.FieldStatus] = to
	mod[model.FieldModifiedAt] = at
	mod[model.FieldModifiedBy] = actor

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldStatus, ArgName: fromStatusArgName, Value: from, Operator: gDto.FilterOperatorIn},
		},
	}

	affected, err := r.UpdateAffected(ctx, mod, filter)
	if err != nil {
		return fmt.Errorf("failed to transition booking: %w", err)
	}

	if affected == 0 {
		return model.ErrPreconditionFailed
	}

	return nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Get")
	defer scope.End()

	return r.findOne(ctx, gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

func (r *repositoryImpl) FindByReference(ctx context.Context, code string) (model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindByReference")
	defer scope.End()

	return r.findOne(ctx, gDto.Filter{Field: model.FieldReferenceCode, Value: code, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

func (r *repositoryImpl) findOne(ctx context.Context, filter gDto.Filter) (model.Booking, error) {
	booking, err := r.Repository.Get(ctx, gDto.FilterGroup{Filters: []any{filter}})
	if err != nil {
		return booking, err //nolint:wrapcheck
	}

	if booking.IsZero() {
		return booking, model.ErrNotFound
	}

	return booking, nil
}

func (r *repositoryImpl) FindStaleRequested(ctx context.Context, olderThan time.Time, limit int) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindStaleRequested")
	defer scope.End()

	params := gDto.QueryParams{Limit: limit, SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusRequested, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCreatedAt, Value: olderThan, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		},
	}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) HoldsSlot(ctx context.Context, id string) (bool, error) {
	booking, err := r.Get(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return booking.Status.HoldsSlot(), nil
}
