package booking

import (
	"net/http"

	"hoteldesk/infras/otel"
	"hoteldesk/internal/domains/booking/model"
	"hoteldesk/internal/domains/booking/model/dto"
	"hoteldesk/internal/domains/booking/service"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"
	"hoteldesk/shared/timezone"
	"hoteldesk/shared/validator"
	"hoteldesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/active", handler.GetActiveBookings)
		routerGroup.Get("/range", handler.GetBookingsByDateRange)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Delete("/{id}", handler.CancelBooking)
	})
}

// CreateBooking books an available room for a guest.
// @Summary Create a new booking
// @Description Book a room for a guest over a check-in/check-out date range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings retrieves all bookings, newest check-in first.
// @Summary Get all bookings
// @Description Retrieve all bookings with pagination, sorted by check-in date descending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_number query string false "Filter by room number"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if roomNumber := r.URL.Query().Get(model.FieldRoomNumber); roomNumber != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    roomNumber,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetActiveBookings retrieves active bookings, earliest check-in first.
// @Summary Get active bookings
// @Description Retrieve bookings that have not been cancelled, sorted by check-in date ascending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of active bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/active [get]
func (handler *Handler) GetActiveBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	bookings, err := handler.service.Active(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Active bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingsByDateRange retrieves bookings fully inside a date window.
// @Summary Get bookings by date range
// @Description Retrieve bookings whose check-in and check-out both fall within the window.
// @Tags Booking
// @Accept json
// @Produce json
// @Param start query string true "Window start (YYYY-MM-DD)"
// @Param end query string true "Window end (YYYY-MM-DD)"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/range [get]
func (handler *Handler) GetBookingsByDateRange(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByDateRange")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	start, err := timezone.Parse(constant.DateFormat, r.URL.Query().Get(constant.RequestParamStartDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse start date")

		response.WithError(w, failure.BadRequestFromString("start date must be in YYYY-MM-DD format"))

		return
	}

	end, err := timezone.Parse(constant.DateFormat, r.URL.Query().Get(constant.RequestParamEndDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse end date")

		response.WithError(w, failure.BadRequestFromString("end date must be in YYYY-MM-DD format"))

		return
	}

	bookings, err := handler.service.ByDateRange(ctx, queryParams, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings by date range")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBooking cancels a booking and releases its room.
// @Summary Cancel a booking
// @Description Cancel a booking by ID. Cancelling an already-cancelled booking succeeds without effect.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}
