package service

import (
	"context"
	"fmt"
	"time"

	"hoteldesk/config"
	"hoteldesk/infras/kafka"
	"hoteldesk/infras/otel"
	"hoteldesk/internal/domains/bill/model"
	"hoteldesk/internal/domains/bill/model/dto"
	"hoteldesk/internal/domains/bill/repository"
	bookingModel "hoteldesk/internal/domains/booking/model"
	bookingRepo "hoteldesk/internal/domains/booking/repository"
	roomModel "hoteldesk/internal/domains/room/model"
	roomRepo "hoteldesk/internal/domains/room/repository"
	"hoteldesk/shared"
	"hoteldesk/shared/cache"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"
	"hoteldesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBill    = "bill:get"
	cacheGetAllBill = "bill:gets"
	cacheCountBill  = "bill:count"
)

type Bill interface {
	Generate(ctx context.Context, req dto.GenerateBillRequest) (dto.BillResponse, error)
	Get(ctx context.Context, id string) (dto.BillResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.BillResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBillsResponse, error)
	MarkPaid(ctx context.Context, id string) error
	Revenue(ctx context.Context) (dto.RevenueResponse, error)
	MonthlyRevenue(ctx context.Context, year, month int) (dto.MonthlyRevenueResponse, error)
}

type serviceImpl struct {
	repo        repository.Bill
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	events      kafka.Client
}

func New(repo repository.Bill, bookingRepo bookingRepo.Booking, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, events kafka.Client) Bill {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		events:      events,
	}
}

// Generate computes the bill for a booking as nights times the room's
// nightly rate. A booking gets exactly one bill; generating a second is
// rejected.
func (s *serviceImpl) Generate(ctx context.Context, req dto.GenerateBillRequest) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Generate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for bill")

		return res, fmt.Errorf("failed to get booking for bill: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(bookingModel.EntityName) // nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, shared.FilterByID(req.BookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check bill existence")

		return res, fmt.Errorf("failed to check bill existence: %w", err)
	}

	if exists {
		return res, failure.DuplicateBill(req.BookingID) // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomNumber, roomModel.FieldRoomNumber, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for bill")

		return res, fmt.Errorf("failed to get room for bill: %w", err)
	}

	if room.RoomNumber == constant.Empty {
		return res, failure.NotFound(roomModel.EntityName) // nolint:wrapcheck
	}

	bill := req.ToModel(user, booking.TotalPrice(room.PricePerNight))

	if err = s.repo.Insert(ctx, bill); err != nil {
		log.Error().Err(err).Msg("failed to create bill")

		return res, fmt.Errorf("failed to create bill: %w", err)
	}

	s.publishEvent(ctx, dto.NewBillEvent(dto.EventBillGenerated, bill))
	s.invalidateBill(ctx, bill.ID)

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBill, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bill")

		return res, nil
	}

	bill, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bill")

		return res, fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(bill)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bill to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	bill, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bill by booking")

		return res, fmt.Errorf("failed to get bill by booking: %w", err)
	}

	if bill.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBillsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBill, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bills")

		return res, nil
	}

	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldGeneratedAt
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bills")

		return res, fmt.Errorf("failed to count bills: %w", err)
	}

	bills, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bills")

		return res, fmt.Errorf("failed to get bills: %w", err)
	}

	res.FromModels(bills, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bills to cache")
		}
	}()

	return res, nil
}

// MarkPaid settles a bill. Payment is one-way; paying an already-paid bill
// is a silent no-op.
func (s *serviceImpl) MarkPaid(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaid")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	bill, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bill")

		return fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if bill.Paid {
		log.Info().Str("bill_id", id).Msg("bill already paid, nothing to do")

		return nil
	}

	now := timezone.Now()

	settled := map[string]any{
		model.FieldPaid:          true,
		model.FieldPaidAt:        now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, settled, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark bill as paid")

		return fmt.Errorf("failed to mark bill as paid: %w", err)
	}

	bill.Paid = true
	bill.PaidAt = &now

	s.publishEvent(ctx, dto.NewBillEvent(dto.EventBillPaid, bill))
	s.invalidateBill(ctx, id)

	return nil
}

// Revenue sums settled bills as revenue and open bills as outstanding.
func (s *serviceImpl) Revenue(ctx context.Context) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.TotalRevenue, err = s.repo.Sum(ctx, model.FieldTotalAmount, shared.FilterEq(true, model.FieldPaid, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to sum paid bills")

		return res, fmt.Errorf("failed to sum paid bills: %w", err)
	}

	res.TotalUnpaid, err = s.repo.Sum(ctx, model.FieldTotalAmount, shared.FilterEq(false, model.FieldPaid, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to sum unpaid bills")

		return res, fmt.Errorf("failed to sum unpaid bills: %w", err)
	}

	return res, nil
}

// MonthlyRevenue sums settled bills generated within the given month.
func (s *serviceImpl) MonthlyRevenue(ctx context.Context, year, month int) (res dto.MonthlyRevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MonthlyRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if month < 1 || month > 12 {
		return res, failure.BadRequestFromString("month must be between 1 and 12") // nolint:wrapcheck
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timezone.GetLocation())
	nextMonth := monthStart.AddDate(0, 1, 0)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPaid,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "generated_from",
				Field:    model.FieldGeneratedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    monthStart,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "generated_until",
				Field:    model.FieldGeneratedAt,
				Operator: gDto.FilterOperatorLess,
				Value:    nextMonth,
				Table:    model.TableName,
			},
		},
	}

	revenue, err := s.repo.Sum(ctx, model.FieldTotalAmount, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum monthly revenue")

		return res, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}

	res.Year = year
	res.Month = month
	res.Revenue = revenue

	return res, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event dto.BillEvent) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: event.BillID, Value: event}
		if err := s.events.SendMessages(c, constant.KafkaTopicBillEvents, message); err != nil {
			log.Error().Err(err).Str("type", event.Type).Msg("failed to publish bill event")
		}
	}()
}

func (s *serviceImpl) invalidateBill(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBill, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete bill from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBill)
		shared.InvalidateCaches(c, s.cache, cacheCountBill)
	}()
}
