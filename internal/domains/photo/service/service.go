package service

import (
	"context"
	"errors"
	"fmt"

	"hoteldesk/config"
	"hoteldesk/infras/otel"
	"hoteldesk/infras/s3"
	"hoteldesk/internal/domains/photo/model"
	"hoteldesk/internal/domains/photo/model/dto"
	"hoteldesk/internal/domains/photo/repository"
	roomModel "hoteldesk/internal/domains/room/model"
	roomRepo "hoteldesk/internal/domains/room/repository"
	"hoteldesk/shared"
	"hoteldesk/shared/cache"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPhoto    = "photo:get"
	cacheGetAllPhoto = "photo:gets"
	cacheCountPhoto  = "photo:count"
)

var (
	ErrDeleteImagesFromS3 = errors.New("failed to delete images from S3")
)

type Photo interface {
	Create(ctx context.Context, req dto.CreatePhotoRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPhotosResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PhotoResponse, error)
	GetByRoom(ctx context.Context, roomNumber string) (dto.GetPhotosResponse, error)
	Update(ctx context.Context, req dto.UpdatePhotoRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
	DeleteImagesFromS3(ctx context.Context, req dto.DeleteImagesRequest) error
}

type serviceImpl struct {
	repo     repository.Photo
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Photo, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Photo {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

// Create attaches a photo set to an existing room.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePhotoRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomNumber, roomModel.FieldRoomNumber, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound(roomModel.EntityName) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create photo")

		return fmt.Errorf("failed to create photo: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPhoto)
		shared.InvalidateCaches(c, s.cache, cacheCountPhoto)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPhotosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPhoto, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for photos")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count photos")

		return res, err
	}

	photos, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get photos")

		return res, fmt.Errorf("failed to get photos: %w", err)
	}

	res.FromModels(photos, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save photos to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPhoto, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for photo count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count photos")

		return total, fmt.Errorf("failed to count photos: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save photo count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPhoto, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for photo")

		return res, nil
	}

	photo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get photo")

		return res, fmt.Errorf("failed to get photo: %w", err)
	}

	if photo.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(photo)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save photo to cache")
		}
	}()

	return res, nil
}

// GetByRoom lists every photo set attached to a room.
func (s *serviceImpl) GetByRoom(ctx context.Context, roomNumber string) (res dto.GetPhotosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	return s.GetAll(ctx, params, shared.FilterEq(roomNumber, model.FieldRoomNumber, model.TableName))
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePhotoRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check photo existence")

		return fmt.Errorf("failed to check photo existence: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update photo")

		return fmt.Errorf("failed to update photo: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPhoto, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete photo cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPhoto)
		shared.InvalidateCaches(c, s.cache, cacheCountPhoto)
	}()

	return nil
}

// Delete removes a photo set and cleans its images out of S3 in the
// background.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	photo, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get photo for image deletion")

		return fmt.Errorf("failed to get photo: %w", err)
	}

	if photo.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete photo")

		return fmt.Errorf("failed to delete photo: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPhoto, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete photo cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPhoto)
		shared.InvalidateCaches(c, s.cache, cacheCountPhoto)

		if len(photo.Images) > 0 {
			deleteReq := dto.DeleteImagesRequest{
				ImageURLs: photo.Images,
			}
			if err := s.DeleteImagesFromS3(c, deleteReq); err != nil {
				log.Error().Err(err).Msg("failed to delete images from S3")
			}
		}
	}()

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, req.Image.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	res.FromModel(url, req.Image.Filename)

	return res, nil
}

func (s *serviceImpl) DeleteImagesFromS3(ctx context.Context, req dto.DeleteImagesRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteImagesFromS3")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := s.cfg.External.S3.BucketName

	var deleteErrors []error

	for _, imageURL := range req.ImageURLs {
		objectName := s.s3.GetObjectNameFromURL(bucketName, imageURL)
		if objectName == constant.Empty {
			log.Warn().Str("url", imageURL).Msg("failed to extract object name from URL")

			continue
		}

		if err := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete file from S3")
			deleteErrors = append(deleteErrors, err)
		}
	}

	if len(deleteErrors) > 0 {
		return fmt.Errorf("%w: %d images", ErrDeleteImagesFromS3, len(deleteErrors))
	}

	return nil
}
