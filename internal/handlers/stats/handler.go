package stats

import (
	"net/http"

	"hoteldesk/infras/otel"
	"hoteldesk/internal/domains/stats/service"
	"hoteldesk/shared"
	"hoteldesk/shared/constant"
	"hoteldesk/shared/failure"
	"hoteldesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Stats
	otel    otel.Otel
}

func New(service service.Stats, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stats", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStatistics)
		routerGroup.Get("/monthly", handler.GetMonthlyReport)
	})
}

// GetStatistics returns the front-desk dashboard figures.
// @Summary Get hotel statistics
// @Description Report room counts, occupancy rate, today's movements, and revenue.
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.StatisticsResponse] "Hotel statistics"
// @Failure 500 {object} response.Error
// @Router /v1/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatistics")
	defer scope.End()

	stats, err := handler.service.Statistics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get statistics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Statistics retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// GetMonthlyReport returns booking and revenue figures for one month.
// @Summary Get monthly report
// @Description Report bookings checking in during the month and the month's settled revenue.
// @Tags Stats
// @Accept json
// @Produce json
// @Param year query integer true "Year"
// @Param month query integer true "Month (1-12)"
// @Success 200 {object} response.Data[dto.MonthlyReportResponse] "Monthly report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/stats/monthly [get]
// @Security BearerAuth
func (handler *Handler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyReport")
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

	report, err := handler.service.MonthlyReport(ctx, year, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Monthly report retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}
