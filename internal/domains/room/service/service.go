package service

import (
	"context"
	"fmt"

	"hoteldesk/config"
	"hoteldesk/infras/otel"
	"hoteldesk/internal/domains/room/model"
	"hoteldesk/internal/domains/room/model/dto"
	"hoteldesk/internal/domains/room/repository"
	"hoteldesk/shared"
	"hoteldesk/shared/cache"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"
	"hoteldesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, roomNumber string) (dto.RoomResponse, error)
	FindFirstAvailable(ctx context.Context, roomType string) (dto.RoomResponse, bool, error)
	SetAvailability(ctx context.Context, roomNumber string, available bool) error
	Update(ctx context.Context, req dto.UpdateRoomRequest, roomNumber string) error
	Delete(ctx context.Context, roomNumber string) error
	AveragePrice(ctx context.Context) (float64, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.repo.Exist(ctx, shared.FilterByID(req.RoomNumber, model.FieldRoomNumber, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if exists {
		return failure.Duplicate(fmt.Sprintf("room %s already exists", req.RoomNumber)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return fmt.Errorf("failed to create room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, roomNumber string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, roomNumber)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(roomNumber, model.FieldRoomNumber, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.RoomNumber == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// FindFirstAvailable returns the first available room of the given type.
// Absence is a valid outcome, not an error.
func (s *serviceImpl) FindFirstAvailable(ctx context.Context, roomType string) (res dto.RoomResponse, found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindFirstAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomType,
				Operator: gDto.FilterOperatorEq,
				Value:    roomType,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "available",
				Field:    model.FieldAvailable,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		Limit:   1,
		SortBy:  model.FieldRoomNumber,
		SortDir: gDto.SortDirAsc,
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to find available room")

		return res, false, fmt.Errorf("failed to find available room: %w", err)
	}

	if len(rooms) == 0 {
		return res, false, nil
	}

	res.FromModel(rooms[0])

	return res, true, nil
}

// SetAvailability flips the availability flag. Idempotent: setting a room
// to its current state is not an error.
func (s *serviceImpl) SetAvailability(ctx context.Context, roomNumber string, available bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(roomNumber, model.FieldRoomNumber, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exists {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldAvailable:     available,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room availability")

		return fmt.Errorf("failed to update room availability: %w", err)
	}

	s.invalidateRoom(ctx, roomNumber)

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, roomNumber string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateRoomRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(roomNumber, model.FieldRoomNumber, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidateRoom(ctx, roomNumber)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, roomNumber string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(roomNumber, model.FieldRoomNumber, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidateRoom(ctx, roomNumber)

	return nil
}

func (s *serviceImpl) AveragePrice(ctx context.Context) (res float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AveragePrice")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	if total == 0 {
		return 0, nil
	}

	sum, err := s.repo.Sum(ctx, model.FieldPricePerNight, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to sum room prices")

		return 0, fmt.Errorf("failed to sum room prices: %w", err)
	}

	return sum / float64(total), nil
}

func (s *serviceImpl) invalidateRoom(ctx context.Context, roomNumber string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, roomNumber)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}
