package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hoteldesk/config"
	"hoteldesk/infras/otel/mocks"
	s3Mocks "hoteldesk/infras/s3/mocks"
	photoMocks "hoteldesk/internal/domains/photo/mocks"
	"hoteldesk/internal/domains/photo/model"
	"hoteldesk/internal/domains/photo/model/dto"
	"hoteldesk/internal/domains/photo/service"
	roomMocks "hoteldesk/internal/domains/room/mocks"
	cacheMocks "hoteldesk/shared/cache/mocks"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"
	gModel "hoteldesk/shared/model"
	"hoteldesk/shared/timezone"
)

type photoServiceMocks struct {
	repo     *photoMocks.MockPhoto
	roomRepo *roomMocks.MockRoom
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
}

func newPhotoService(t *testing.T) (service.Photo, photoServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := photoServiceMocks{
		repo:     photoMocks.NewMockPhoto(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "hoteldesk-test"

	svc := service.New(m.repo, m.roomRepo, cfg, m.cache, mockOtel, m.s3)

	return svc, m
}

func photoSet(id string) model.RoomPhoto {
	return model.RoomPhoto{
		ID:         id,
		RoomNumber: "101",
		Caption:    "Sea view",
		Images: []string{
			"https://cdn.example.com/hoteldesk-test/room_photo/a.jpg",
			"https://cdn.example.com/hoteldesk-test/room_photo/b.jpg",
		},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

func TestPhotoService_Create(t *testing.T) {
	req := dto.CreatePhotoRequest{
		RoomNumber: "101",
		Caption:    "Sea view",
		Images:     []string{"https://cdn.example.com/a.jpg"},
	}

	tests := []struct {
		name      string
		setupMock func(m photoServiceMocks)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(m photoServiceMocks) {
				m.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, photo model.RoomPhoto) error {
						assert.NotEmpty(t, photo.ID)
						assert.Equal(t, "101", photo.RoomNumber)

						return nil
					})

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "room not found",
			setupMock: func(m photoServiceMocks) {
				m.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "insert error",
			setupMock: func(m photoServiceMocks) {
				m.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPhotoService(t)

			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, req)

			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPhotoService_Get(t *testing.T) {
	t.Run("cache miss falls back to repository", func(t *testing.T) {
		svc, m := newPhotoService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(photoSet("photo-id-123"), nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "photo-id-123")

		time.Sleep(20 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "photo-id-123", res.ID)
		assert.Len(t, res.Images, 2)
	})

	t.Run("photo not found", func(t *testing.T) {
		svc, m := newPhotoService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.RoomPhoto{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestPhotoService_GetByRoom(t *testing.T) {
	svc, m := newPhotoService(t)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	m.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.RoomPhoto, error) {
			assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.RoomPhoto{photoSet("photo-id-123")}, nil
		})

	m.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.GetByRoom(context.Background(), "101")

	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Photos, 1)
	assert.Equal(t, 1, res.TotalData)
}

func TestPhotoService_Update(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m photoServiceMocks)
		wantErr   bool
	}{
		{
			name: "successful update",
			setupMock: func(m photoServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "photo not found",
			setupMock: func(m photoServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPhotoService(t)

			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, dto.UpdatePhotoRequest{Caption: "Garden view"}, "photo-id-123")

			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPhotoService_Delete(t *testing.T) {
	t.Run("deletes record and cleans up images", func(t *testing.T) {
		svc, m := newPhotoService(t)

		photo := photoSet("photo-id-123")

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(photo, nil)

		m.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		m.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		m.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		m.s3.EXPECT().
			GetObjectNameFromURL(gomock.Any(), gomock.Any()).
			Return("a.jpg").
			AnyTimes()

		m.s3.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Delete(context.Background(), "photo-id-123")

		time.Sleep(20 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("photo not found", func(t *testing.T) {
		svc, m := newPhotoService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.RoomPhoto{}, nil)

		err := svc.Delete(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestPhotoService_DeleteImagesFromS3(t *testing.T) {
	t.Run("deletes every image", func(t *testing.T) {
		svc, m := newPhotoService(t)

		m.s3.EXPECT().
			GetObjectNameFromURL("hoteldesk-test", gomock.Any()).
			Return("a.jpg")

		m.s3.EXPECT().
			DeleteFile(gomock.Any(), "hoteldesk-test", model.EntityName, "a.jpg").
			Return(nil)

		err := svc.DeleteImagesFromS3(context.Background(), dto.DeleteImagesRequest{
			ImageURLs: []string{"https://cdn.example.com/hoteldesk-test/room_photo/a.jpg"},
		})

		assert.NoError(t, err)
	})

	t.Run("unparseable URL is skipped", func(t *testing.T) {
		svc, m := newPhotoService(t)

		m.s3.EXPECT().
			GetObjectNameFromURL(gomock.Any(), gomock.Any()).
			Return("")

		err := svc.DeleteImagesFromS3(context.Background(), dto.DeleteImagesRequest{
			ImageURLs: []string{"https://elsewhere.example.com/x.jpg"},
		})

		assert.NoError(t, err)
	})

	t.Run("reports failed deletions", func(t *testing.T) {
		svc, m := newPhotoService(t)

		m.s3.EXPECT().
			GetObjectNameFromURL(gomock.Any(), gomock.Any()).
			Return("a.jpg")

		m.s3.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("access denied"))

		err := svc.DeleteImagesFromS3(context.Background(), dto.DeleteImagesRequest{
			ImageURLs: []string{"https://cdn.example.com/hoteldesk-test/room_photo/a.jpg"},
		})

		assert.Error(t, err)
		assert.ErrorIs(t, err, service.ErrDeleteImagesFromS3)
	})
}
