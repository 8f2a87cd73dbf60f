package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"hoteldesk/config"
	"hoteldesk/infras/otel"
	billModel "hoteldesk/internal/domains/bill/model"
	billRepo "hoteldesk/internal/domains/bill/repository"
	bookingModel "hoteldesk/internal/domains/booking/model"
	bookingRepo "hoteldesk/internal/domains/booking/repository"
	roomModel "hoteldesk/internal/domains/room/model"
	roomRepo "hoteldesk/internal/domains/room/repository"
	"hoteldesk/internal/domains/stats/model/dto"
	"hoteldesk/shared"
	"hoteldesk/shared/cache"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"
	"hoteldesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheStatistics = "stats:dashboard"
)

type Stats interface {
	Statistics(ctx context.Context) (dto.StatisticsResponse, error)
	MonthlyReport(ctx context.Context, year, month int) (dto.MonthlyReportResponse, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	billRepo    billRepo.Bill
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, billRepo billRepo.Bill, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Stats {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		billRepo:    billRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Statistics assembles the front-desk dashboard: room counts, occupancy,
// today's movements, and settled revenue.
func (s *serviceImpl) Statistics(ctx context.Context) (res dto.StatisticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Statistics")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheStatistics, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheStatistics).Msg("cache hit for statistics")

		return res, nil
	}

	res.TotalRooms, err = s.roomRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	res.AvailableRooms, err = s.roomRepo.Count(ctx, shared.FilterEq(true, roomModel.FieldAvailable, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to count available rooms")

		return res, fmt.Errorf("failed to count available rooms: %w", err)
	}

	res.OccupancyRate = occupancyRate(res.TotalRooms, res.AvailableRooms)

	res.ActiveBookings, err = s.bookingRepo.Count(ctx, shared.FilterEq(true, bookingModel.FieldActive, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to count active bookings")

		return res, fmt.Errorf("failed to count active bookings: %w", err)
	}

	today := todayDate()

	res.TodayCheckIns, err = s.bookingRepo.Count(ctx, activeOnDate(bookingModel.FieldCheckIn, today))
	if err != nil {
		log.Error().Err(err).Msg("failed to count today check-ins")

		return res, fmt.Errorf("failed to count today check-ins: %w", err)
	}

	res.TodayCheckOuts, err = s.bookingRepo.Count(ctx, activeOnDate(bookingModel.FieldCheckOut, today))
	if err != nil {
		log.Error().Err(err).Msg("failed to count today check-outs")

		return res, fmt.Errorf("failed to count today check-outs: %w", err)
	}

	res.TotalRevenue, err = s.billRepo.Sum(ctx, billModel.FieldTotalAmount, shared.FilterEq(true, billModel.FieldPaid, billModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to sum revenue")

		return res, fmt.Errorf("failed to sum revenue: %w", err)
	}

	res.AverageRoomPrice, err = s.averageRoomPrice(ctx, res.TotalRooms)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheStatistics, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save statistics to cache")
		}
	}()

	return res, nil
}

// MonthlyReport counts bookings checking in during the month and sums the
// month's settled revenue.
func (s *serviceImpl) MonthlyReport(ctx context.Context, year, month int) (res dto.MonthlyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MonthlyReport")
	defer scope.End()
	defer scope.TraceIfError(err)

	if month < 1 || month > 12 {
		return res, failure.BadRequestFromString("month must be between 1 and 12") // nolint:wrapcheck
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timezone.GetLocation())
	nextMonth := monthStart.AddDate(0, 1, 0)

	bookingFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "check_in_from",
				Field:    bookingModel.FieldCheckIn,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    monthStart,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				ArgName:  "check_in_until",
				Field:    bookingModel.FieldCheckIn,
				Operator: gDto.FilterOperatorLess,
				Value:    nextMonth,
				Table:    bookingModel.TableName,
			},
		},
	}

	res.NewBookings, err = s.bookingRepo.Count(ctx, bookingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count monthly bookings")

		return res, fmt.Errorf("failed to count monthly bookings: %w", err)
	}

	revenueFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    billModel.FieldPaid,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    billModel.TableName,
			},
			gDto.Filter{
				ArgName:  "generated_from",
				Field:    billModel.FieldGeneratedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    monthStart,
				Table:    billModel.TableName,
			},
			gDto.Filter{
				ArgName:  "generated_until",
				Field:    billModel.FieldGeneratedAt,
				Operator: gDto.FilterOperatorLess,
				Value:    nextMonth,
				Table:    billModel.TableName,
			},
		},
	}

	res.Revenue, err = s.billRepo.Sum(ctx, billModel.FieldTotalAmount, revenueFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum monthly revenue")

		return res, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}

	res.Year = year
	res.Month = month

	return res, nil
}

func (s *serviceImpl) averageRoomPrice(ctx context.Context, totalRooms int) (float64, error) {
	if totalRooms == 0 {
		return 0, nil
	}

	totalPrice, err := s.roomRepo.Sum(ctx, roomModel.FieldPricePerNight, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to sum room prices")

		return 0, fmt.Errorf("failed to sum room prices: %w", err)
	}

	return totalPrice / float64(totalRooms), nil
}

// occupancyRate is the occupied share of all rooms as a percentage,
// rounded to one decimal place. An empty inventory reports zero.
func occupancyRate(totalRooms, availableRooms int) float64 {
	if totalRooms == 0 {
		return 0
	}

	rate := float64(totalRooms-availableRooms) / float64(totalRooms) * 100

	return math.Round(rate*10) / 10
}

func todayDate() time.Time {
	now := timezone.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func activeOnDate(dateField string, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    dateField,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    bookingModel.TableName,
			},
		},
	}
}
