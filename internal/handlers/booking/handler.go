package booking

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/service"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/principal"
	"rental/shared/validator"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	reservation service.Reservation
	approval    service.Approval
	otel        otel.Otel
}

func New(reservation service.Reservation, approval service.Approval, otel otel.Otel) Handler {
	return Handler{
		reservation: reservation,
		approval:    approval,
		otel:        otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetAllBookings)
		routerGroup.Get("/mine", handler.GetMyBookings)
		routerGroup.Get("/pending", handler.GetPendingBookings)
		routerGroup.Get("/{reference}", handler.GetBooking)
		routerGroup.Put("/{reference}/decision", handler.DecideBooking)
		routerGroup.Post("/{reference}/cancel", handler.CancelBooking)
	})
}

// CreateBooking handles a customer's booking request.
// @Summary Request a vehicle slot
// @Description Tentatively reserves the slot and queues the booking for operator assignment.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.reservation.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + res.ReferenceCode + " requested by user " + principal.FromContext(ctx).ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyBookings lists the caller's own bookings.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request)

	res, err := handler.reservation.ListMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetPendingBookings lists bookings waiting for the caller's decision.
// @Summary Get the approval queue
// @Description Operators see bookings assigned to them, admins see all pending bookings.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request)

	res, err := handler.reservation.ListPending(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAllBookings lists every booking for admins.
// @Summary Get all bookings
// @Description Admin only. Optional status and vehicle_id narrow the listing.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Booking status"
// @Param vehicle_id query string false "Vehicle ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetAllBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request)

	query := request.URL.Query()
	filter := dto.ListFilter{
		Status:    query.Get(constant.RequestParamStatus),
		VehicleID: query.Get(constant.RequestParamVehicleID),
	}

	res, err := handler.reservation.ListAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get all bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBooking retrieves a booking by its reference code.
// @Summary Get a booking by reference
// @Tags Booking
// @Produce json
// @Param reference path string true "Booking reference code"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{reference} [get]
// @Security BearerAuth
func (handler *Handler) GetBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	reference := chi.URLParam(request, constant.RequestParamReference)

	res, err := handler.reservation.GetByReference(ctx, reference)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reference", reference).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DecideBooking applies the assigned operator's decision.
// @Summary Approve or reject a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param reference path string true "Booking reference code"
// @Param request body dto.DecisionRequest true "Decision"
// @Success 200 {object} response.Data[dto.StatusResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{reference}/decision [put]
// @Security BearerAuth
func (handler *Handler) DecideBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DecideBooking")
	defer scope.End()

	reference := chi.URLParam(request, constant.RequestParamReference)

	req := dto.DecisionRequest{}
	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.approval.Decide(ctx, reference, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reference", reference).Msg("failed to decide booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + reference + " moved to " + res.Status + " by user " + principal.FromContext(ctx).ID)

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking cancels an active booking.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param reference path string true "Booking reference code"
// @Success 200 {object} response.Data[dto.StatusResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{reference}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	reference := chi.URLParam(request, constant.RequestParamReference)

	res, err := handler.reservation.Cancel(ctx, reference)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reference", reference).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + reference + " cancelled by user " + principal.FromContext(ctx).ID)

	response.WithJSON(writer, http.StatusOK, res)
}
