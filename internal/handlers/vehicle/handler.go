package vehicle

import (
	"net/http"
	"rental/infras/otel"
	slotDto "rental/internal/domains/slot/model/dto"
	slotService "rental/internal/domains/slot/service"
	"rental/internal/domains/vehicle/model"
	"rental/internal/domains/vehicle/model/dto"
	"rental/internal/domains/vehicle/service"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/validator"
	"rental/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service      service.Vehicle
	availability slotService.Availability
	otel         otel.Otel
}

func New(service service.Vehicle, availability slotService.Availability, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/vehicles", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateVehicle)
		routerGroup.Get("/", handler.GetVehicles)
		routerGroup.Get("/{id}", handler.GetVehicleByID)
		routerGroup.Put("/{id}", handler.UpdateVehicle)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
		routerGroup.Put("/{id}/availability", handler.OverrideAvailability)
	})
}

// CreateVehicle registers a vehicle and provisions its slots.
// @Summary Register a vehicle
// @Description Operators become the owner of the vehicles they register.
// @Tags Vehicle
// @Accept json
// @Produce json
// @Param request body dto.CreateVehicleRequest true "Create Vehicle Request"
// @Success 201 {object} response.Data[dto.VehicleResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles [post]
// @Security BearerAuth
func (handler *Handler) CreateVehicle(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVehicle")
	defer scope.End()

	req := dto.CreateVehicleRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create vehicle")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetVehicles lists vehicles.
// @Summary Get all vehicles
// @Tags Vehicle
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by vehicle type"
// @Param owner_id query string false "Filter by owning operator"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetVehiclesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/vehicles [get]
// @Security BearerAuth
func (handler *Handler) GetVehicles(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request)

	query := request.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldType, model.FieldOwnerID} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if active, err := strconv.ParseBool(query.Get(model.FieldActive)); err == nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    active,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vehicles")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetVehicleByID retrieves a vehicle.
// @Summary Get a vehicle by ID
// @Tags Vehicle
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Data[dto.VehicleResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetVehicleByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicleByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("vehicle_id", id).Msg("failed to get vehicle")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateVehicle changes a vehicle's details.
// @Summary Update a vehicle
// @Description Owners may rename or deactivate their vehicles. Only admins reassign the owner.
// @Tags Vehicle
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body dto.UpdateVehicleRequest true "Update Vehicle Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateVehicle(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVehicle")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateVehicleRequest{}
	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("vehicle_id", id).Msg("failed to update vehicle")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Vehicle updated successfully")
}

// GetAvailability returns the slot statuses of a vehicle for one day.
// @Summary Get vehicle availability
// @Description A missing date means today in the service timezone.
// @Tags Availability
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param date query string false "Service date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[slotDto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/availability [get]
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	date := request.URL.Query().Get(constant.RequestParamDate)

	res, err := handler.availability.Snapshot(ctx, id, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("vehicle_id", id).Msg("failed to get availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// OverrideAvailability writes slot statuses directly.
// @Summary Override vehicle availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body slotDto.OverrideRequest true "Slot updates"
// @Success 200 {object} response.Data[slotDto.OverrideResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vehicles/{id}/availability [put]
// @Security BearerAuth
func (handler *Handler) OverrideAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OverrideAvailability")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := slotDto.OverrideRequest{}
	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.availability.Override(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("vehicle_id", id).Msg("failed to override availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
