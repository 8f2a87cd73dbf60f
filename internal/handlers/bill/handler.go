package bill

import (
	"net/http"

	"hoteldesk/infras/otel"
	"hoteldesk/internal/domains/bill/model"
	"hoteldesk/internal/domains/bill/model/dto"
	"hoteldesk/internal/domains/bill/service"
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
	service service.Bill
	otel    otel.Otel
}

func New(service service.Bill, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bills", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.GenerateBill)
		routerGroup.Get("/", handler.GetBills)
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Get("/revenue/monthly", handler.GetMonthlyRevenue)
		routerGroup.Get("/booking/{id}", handler.GetBillByBooking)
		routerGroup.Get("/{id}", handler.GetBillByID)
		routerGroup.Patch("/{id}/pay", handler.PayBill)
	})
}

// GenerateBill creates the bill for a booking.
// @Summary Generate a bill
// @Description Generate the bill for a booking from its nights and the room's nightly rate.
// @Tags Bill
// @Accept json
// @Produce json
// @Param request body dto.GenerateBillRequest true "Generate Bill Request"
// @Success 201 {object} response.Data[dto.BillResponse] "Bill generated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills [post]
// @Security BearerAuth
func (handler *Handler) GenerateBill(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateBill")
	defer scope.End()

	req := dto.GenerateBillRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	bill, err := handler.service.Generate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate bill")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bill generated successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, bill)
}

// GetBills retrieves bills with optional payment-status filtering.
// @Summary Get all bills
// @Description Retrieve bills with optional filtering and pagination.
// @Tags Bill
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param paid query boolean false "Filter by payment status"
// @Success 200 {object} response.Data[dto.GetBillsResponse] "List of bills"
// @Failure 500 {object} response.Error
// @Router /v1/bills [get]
func (handler *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBills")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if paid := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldPaid)); paid != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPaid,
			Operator: gDto.FilterOperatorEq,
			Value:    *paid,
			Table:    model.TableName,
		})
	}

	bills, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bills")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bills retrieved successfully")

	response.WithJSON(w, http.StatusOK, bills)
}

// GetRevenue reports total settled and outstanding amounts.
// @Summary Get revenue totals
// @Description Report the sum of paid bills and the sum still outstanding.
// @Tags Bill
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.RevenueResponse] "Revenue totals"
// @Failure 500 {object} response.Error
// @Router /v1/bills/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	revenue, err := handler.service.Revenue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue retrieved successfully")

	response.WithJSON(w, http.StatusOK, revenue)
}

// GetMonthlyRevenue reports settled revenue for one calendar month.
// @Summary Get monthly revenue
// @Description Report the sum of paid bills generated within the given month.
// @Tags Bill
// @Accept json
// @Produce json
// @Param year query integer true "Year"
// @Param month query integer true "Month (1-12)"
// @Success 200 {object} response.Data[dto.MonthlyRevenueResponse] "Monthly revenue"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/revenue/monthly [get]
// @Security BearerAuth
func (handler *Handler) GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyRevenue")
	defer scope.End()

	year, err := shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamYear))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequestFromString("year must be a number"))

		return
	}

	month, err := shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamMonth))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequestFromString("month must be a number"))

		return
	}

	revenue, err := handler.service.MonthlyRevenue(ctx, year, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly revenue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Monthly revenue retrieved successfully")

	response.WithJSON(w, http.StatusOK, revenue)
}

// GetBillByBooking retrieves the bill belonging to a booking.
// @Summary Get a bill by booking
// @Description Retrieve the bill generated for the given booking.
// @Tags Bill
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BillResponse] "Bill details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/booking/{id} [get]
func (handler *Handler) GetBillByBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByBooking")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamID)

	bill, err := handler.service.GetByBooking(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill by booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill retrieved successfully")

	response.WithJSON(w, http.StatusOK, bill)
}

// GetBillByID retrieves a bill by its ID.
// @Summary Get a bill by ID
// @Description Retrieve a bill by its unique identifier.
// @Tags Bill
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Data[dto.BillResponse] "Bill details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id} [get]
func (handler *Handler) GetBillByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	bill, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill retrieved successfully")

	response.WithJSON(w, http.StatusOK, bill)
}

// PayBill marks a bill as paid.
// @Summary Pay a bill
// @Description Mark a bill as paid. Paying an already-paid bill succeeds without effect.
// @Tags Bill
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Message "Bill paid successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id}/pay [patch]
// @Security BearerAuth
func (handler *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PayBill")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkPaid(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to pay bill")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bill paid successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Bill paid successfully")
}
