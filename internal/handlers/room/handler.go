package room

import (
	"net/http"

	"hoteldesk/infras/otel"
	"hoteldesk/internal/domains/room/model"
	"hoteldesk/internal/domains/room/model/dto"
	"hoteldesk/internal/domains/room/service"
	"hoteldesk/shared"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"
	"hoteldesk/shared/validator"
	"hoteldesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/available", handler.GetFirstAvailableRoom)
		routerGroup.Get("/{number}", handler.GetRoomByNumber)
		routerGroup.Patch("/{number}", handler.UpdateRoom)
		routerGroup.Patch("/{number}/availability", handler.SetAvailability)
		routerGroup.Delete("/{number}", handler.DeleteRoom)
	})
}

// CreateRoom registers a new room in the inventory.
// @Summary Create a new room
// @Description Register a room with its number, type, and nightly rate.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Room created successfully")
}

// GetRooms retrieves rooms with optional type and availability filters.
// @Summary Get all rooms
// @Description Retrieve rooms with optional filtering and pagination.
// @Tags Room
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by room type"
// @Param available query boolean false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if roomType := r.URL.Query().Get(constant.RequestParamRoomType); roomType != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomType,
			Operator: gDto.FilterOperatorEq,
			Value:    roomType,
			Table:    model.TableName,
		})
	}

	if available := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldAvailable)); available != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetFirstAvailableRoom finds the first available room of the requested type.
// @Summary Find an available room
// @Description Find the first available room of the given type, lowest room number first.
// @Tags Room
// @Accept json
// @Produce json
// @Param type query string true "Room type"
// @Success 200 {object} response.Data[dto.RoomResponse] "Available room"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/available [get]
func (handler *Handler) GetFirstAvailableRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFirstAvailableRoom")
	defer scope.End()

	roomType := r.URL.Query().Get(constant.RequestParamRoomType)

	room, found, err := handler.service.FindFirstAvailable(ctx, roomType)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find available room")

		response.WithError(w, err)

		return
	}

	if !found {
		response.WithError(w, failure.NotFound(model.EntityName)) // nolint:wrapcheck

		return
	}

	scope.AddEvent("Available room found")

	response.WithJSON(w, http.StatusOK, room)
}

// GetRoomByNumber retrieves a room by its number.
// @Summary Get a room by number
// @Description Retrieve a room by its room number.
// @Tags Room
// @Accept json
// @Produce json
// @Param number path string true "Room number"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{number} [get]
func (handler *Handler) GetRoomByNumber(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByNumber")
	defer scope.End()

	number := chi.URLParam(r, constant.RequestParamRoomNumber)

	room, err := handler.service.Get(ctx, number)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by number")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates a room's type, rate, or availability.
// @Summary Update a room
// @Description Update the details of an existing room.
// @Tags Room
// @Accept json
// @Produce json
// @Param number path string true "Room number"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{number} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	number := chi.URLParam(r, constant.RequestParamRoomNumber)

	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, number); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// SetAvailability marks a room as available or unavailable.
// @Summary Set room availability
// @Description Mark a room available or unavailable by its number.
// @Tags Room
// @Accept json
// @Produce json
// @Param number path string true "Room number"
// @Param request body dto.SetAvailabilityRequest true "Set Availability Request"
// @Success 200 {object} response.Message "Room availability updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{number}/availability [patch]
// @Security BearerAuth
func (handler *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetAvailability")
	defer scope.End()

	number := chi.URLParam(r, constant.RequestParamRoomNumber)

	req := dto.SetAvailabilityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetAvailability(ctx, number, *req.Available); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set room availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room availability updated")

	response.WithMessage(w, http.StatusOK, "Room availability updated")
}

// DeleteRoom removes a room from the inventory.
// @Summary Delete a room
// @Description Delete a room using its room number.
// @Tags Room
// @Accept json
// @Produce json
// @Param number path string true "Room number"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{number} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	number := chi.URLParam(r, constant.RequestParamRoomNumber)

	if err := handler.service.Delete(ctx, number); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
