package service

import (
	"context"
	"fmt"
	"time"

	"hoteldesk/config"
	"hoteldesk/infras/kafka"
	"hoteldesk/infras/otel"
	"hoteldesk/internal/domains/booking/model"
	"hoteldesk/internal/domains/booking/model/dto"
	"hoteldesk/internal/domains/booking/repository"
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
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Active(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	ByDateRange(ctx context.Context, req gDto.QueryParams, start, end time.Time) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	events   kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, events kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		events:   events,
	}
}

// Create validates the stay dates, claims the room, and persists the
// booking. The booking insert and the room availability flip happen in one
// transaction so a crash cannot leave a booked room marked available.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking dates")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = validateDateRange(checkIn, checkOut); err != nil {
		return res, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomNumber, roomModel.FieldRoomNumber, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for booking")

		return res, fmt.Errorf("failed to get room for booking: %w", err)
	}

	if room.RoomNumber == constant.Empty {
		return res, failure.NotFound(roomModel.EntityName) // nolint:wrapcheck
	}

	if !room.Available {
		return res, failure.RoomUnavailable(room.RoomNumber) // nolint:wrapcheck
	}

	booking := req.ToModel(user, checkIn, checkOut)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin booking transaction")

		return res, fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		_ = tx.Rollback()

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	occupied := map[string]any{
		roomModel.FieldAvailable: false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.roomRepo.UpdateTx(ctx, tx, occupied, shared.FilterByID(room.RoomNumber, roomModel.FieldRoomNumber, roomModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark room as booked")

		_ = tx.Rollback()

		return res, fmt.Errorf("failed to mark room as booked: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking transaction")

		return res, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	s.publishEvent(ctx, dto.NewBookingEvent(dto.EventBookingCreated, booking))
	s.invalidateBooking(ctx, booking.ID, room.RoomNumber)

	res.FromModel(booking)

	return res, nil
}

// Cancel deactivates a booking and releases its room in one transaction.
// Cancelling an already-cancelled booking is a silent no-op.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if !booking.Active {
		log.Info().Str("booking_id", id).Msg("booking already cancelled, nothing to do")

		return nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin cancel transaction")

		return fmt.Errorf("failed to begin cancel transaction: %w", err)
	}

	deactivated := map[string]any{
		model.FieldActive:        false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.UpdateTx(ctx, tx, deactivated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		_ = tx.Rollback()

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	released := map[string]any{
		roomModel.FieldAvailable: true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.roomRepo.UpdateTx(ctx, tx, released, shared.FilterByID(booking.RoomNumber, roomModel.FieldRoomNumber, roomModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to release room")

		_ = tx.Rollback()

		return fmt.Errorf("failed to release room: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit cancel transaction")

		return fmt.Errorf("failed to commit cancel transaction: %w", err)
	}

	s.publishEvent(ctx, dto.NewBookingEvent(dto.EventBookingCancelled, booking))
	s.invalidateBooking(ctx, id, booking.RoomNumber)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// GetAll lists bookings newest check-in first. Active and date-range views
// sort ascending instead; the asymmetry mirrors how the front desk reads
// each list.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldCheckIn
		req.SortDir = gDto.SortDirDesc
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) Active(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Active")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.SortBy = model.FieldCheckIn
	req.SortDir = gDto.SortDirAsc

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) ByDateRange(ctx context.Context, req gDto.QueryParams, start, end time.Time) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ByDateRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.SortBy = model.FieldCheckIn
	req.SortDir = gDto.SortDirAsc

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "check_in_from",
				Field:    model.FieldCheckIn,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    start,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "check_out_until",
				Field:    model.FieldCheckOut,
				Operator: gDto.FilterOperatorLessEq,
				Value:    end,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// validateDateRange enforces the booking date rules: check-out strictly
// after check-in, check-in not before today.
func validateDateRange(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return failure.InvalidDateRange("check-out date must be after check-in date") // nolint:wrapcheck
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if checkIn.Before(today) {
		return failure.InvalidDateRange("check-in date cannot be in the past") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event dto.BookingEvent) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: event.BookingID, Value: event}
		if err := s.events.SendMessages(c, constant.KafkaTopicBookingEvents, message); err != nil {
			log.Error().Err(err).Str("type", event.Type).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id, roomNumber string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey("room:get", roomNumber)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, "room:get")
	}()
}
