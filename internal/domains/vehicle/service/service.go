package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Vehicle=MockVehicleService

import (
	"context"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	slotService "rental/internal/domains/slot/service"
	"rental/internal/domains/vehicle/model"
	"rental/internal/domains/vehicle/model/dto"
	"rental/internal/domains/vehicle/repository"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/clock"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/principal"
	"rental/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVehicle = "vehicle:get"

	defaultProvisionDays = 1
)

var sortableFields = []string{constant.FieldCreatedAt, model.FieldName, model.FieldType}

type Vehicle interface {
	Create(ctx context.Context, req dto.CreateVehicleRequest) (dto.VehicleResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVehiclesResponse, error)
	Get(ctx context.Context, id string) (dto.VehicleResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateVehicleRequest) error
	// Lookup returns the vehicle or model.ErrNotFound. Results are cached.
	Lookup(ctx context.Context, id string) (model.Vehicle, error)
}

type serviceImpl struct {
	repo         repository.Vehicle
	availability slotService.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	clock        clock.Clock
	otel         otel.Otel
}

func New(
	repo repository.Vehicle,
	availability slotService.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	clk clock.Clock,
	otel otel.Otel,
) Vehicle {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		clock:        clk,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVehicleRequest) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller := principal.FromContext(ctx)
	if !caller.Is(principal.RoleOperator, principal.RoleAdmin) {
		return res, failure.ForbiddenError
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	owner := req.OwnerID
	if caller.Is(principal.RoleOperator) {
		owner = caller.ID
	}

	vehicle := req.ToModel(owner, caller.ID, s.clock.Now())

	if err = s.repo.Insert(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to create vehicle")

		return res, fmt.Errorf("failed to create vehicle: %w", err)
	}

	days := req.ProvisionDays
	if days == 0 {
		days = defaultProvisionDays
	}

	if created, provisionErr := s.availability.Provision(ctx, vehicle.ID, days); provisionErr != nil {
		scope.TraceError(provisionErr)
		log.Error().Err(provisionErr).Str("vehicle_id", vehicle.ID).Msg("vehicle created but slots not provisioned")
	} else {
		log.Info().Str("vehicle_id", vehicle.ID).Int64("slots", created).Msg("vehicle slots provisioned")
	}

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVehiclesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.AllowSortBy(sortableFields...)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count vehicles")

		return res, fmt.Errorf("failed to count vehicles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicles")

		return res, fmt.Errorf("failed to get vehicles: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err := s.Lookup(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return res, failure.NotFound(err.Error()) // nolint:wrapcheck
	}

	if err != nil {
		return res, err
	}

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) Lookup(ctx context.Context, id string) (vehicle model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.Lookup")
	defer scope.End()

	cacheKey := shared.BuildCacheKey(cacheGetVehicle, id)

	if err = s.cache.Get(ctx, cacheKey, &vehicle); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for vehicle")

		return vehicle, nil
	}

	vehicle, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("vehicle_id", id).Msg("failed to get vehicle")

		return vehicle, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == constant.Empty {
		return vehicle, model.ErrNotFound
	}

	if err := s.cache.Save(ctx, cacheKey, vehicle, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save vehicle to cache")
	}

	return vehicle, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateVehicleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".vehicle.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateVehicleRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	caller := principal.FromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check vehicle existence")

		return fmt.Errorf("failed to get vehicle: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(model.ErrNotFound.Error()) // nolint:wrapcheck
	}

	admin := caller.Is(principal.RoleAdmin)
	if !admin && current.Owner() != caller.ID {
		return failure.ResourceRestrictedError
	}

	if req.OwnerID != nil && !admin {
		return failure.Forbidden("only admins can reassign vehicles") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, caller.ID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update vehicle")

		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetVehicle, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete vehicle cache")
	}

	return nil
}
