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
	roomMocks "hoteldesk/internal/domains/room/mocks"
	"hoteldesk/internal/domains/room/model"
	"hoteldesk/internal/domains/room/model/dto"
	"hoteldesk/internal/domains/room/service"
	cacheMocks "hoteldesk/shared/cache/mocks"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"
)

func newRoomService(t *testing.T) (service.Room, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockCache
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "successful creation",
			req: dto.CreateRoomRequest{
				RoomNumber:    "101",
				RoomType:      model.TypeSingle,
				PricePerNight: 100,
			},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.True(t, room.Available)
						assert.Equal(t, "test-user-id", room.CreatedBy)

						return nil
					})

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "duplicate room number",
			req: dto.CreateRoomRequest{
				RoomNumber:    "101",
				RoomType:      model.TypeSingle,
				PricePerNight: 100,
			},
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindDuplicate,
		},
		{
			name: "existence check error",
			req: dto.CreateRoomRequest{
				RoomNumber:    "101",
				RoomType:      model.TypeSingle,
				PricePerNight: 100,
			},
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newRoomService(t)

			tt.setupMock(mockRepo, mockCache)

			err := svc.Create(userCtx(), tt.req)

			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.True(t, failure.IsKind(err, tt.wantKind))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	room := model.Room{
		RoomNumber:    "101",
		RoomType:      model.TypeDouble,
		PricePerNight: 150,
		Available:     true,
	}

	tests := []struct {
		name      string
		number    string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name:   "cache miss falls back to repository",
			number: "101",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:   "cache hit",
			number: "101",
			setupMock: func(_ *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "room not found",
			number: "999",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newRoomService(t)

			tt.setupMock(mockRepo, mockCache)

			_, err := svc.Get(context.Background(), tt.number)

			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.IsKind(err, failure.KindNotFound))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_FindFirstAvailable(t *testing.T) {
	t.Run("returns lowest-numbered available room", func(t *testing.T) {
		svc, mockRepo, _ := newRoomService(t)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Room, error) {
				assert.Equal(t, 1, params.Limit)
				assert.Equal(t, model.FieldRoomNumber, params.SortBy)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return []model.Room{
					{RoomNumber: "102", RoomType: model.TypeDouble, PricePerNight: 150, Available: true},
				}, nil
			})

		res, found, err := svc.FindFirstAvailable(context.Background(), model.TypeDouble)

		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "102", res.RoomNumber)
	})

	t.Run("no available room is not an error", func(t *testing.T) {
		svc, mockRepo, _ := newRoomService(t)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Room{}, nil)

		_, found, err := svc.FindFirstAvailable(context.Background(), model.TypeSuite)

		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRoomService_SetAvailability(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful update",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, fields[model.FieldAvailable])

						return nil
					})

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "room not found",
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newRoomService(t)

			tt.setupMock(mockRepo, mockCache)

			err := svc.SetAvailability(userCtx(), "101", false)

			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	price := 200.0

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdateRoomRequest{PricePerNight: &price},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "empty update rejected",
			req:       dto.UpdateRoomRequest{},
			setupMock: func(_ *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{PricePerNight: &price},
			setupMock: func(repo *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newRoomService(t)

			tt.setupMock(mockRepo, mockCache)

			err := svc.Update(userCtx(), tt.req, "101")

			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		svc, mockRepo, mockCache := newRoomService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Delete(userCtx(), "101")

		time.Sleep(20 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("room not found", func(t *testing.T) {
		svc, mockRepo, _ := newRoomService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(userCtx(), "999")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindNotFound))
	})
}

func TestRoomService_AveragePrice(t *testing.T) {
	t.Run("average over all rooms", func(t *testing.T) {
		svc, mockRepo, _ := newRoomService(t)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(4, nil)

		mockRepo.EXPECT().
			Sum(gomock.Any(), model.FieldPricePerNight, gomock.Any()).
			Return(600.0, nil)

		avg, err := svc.AveragePrice(context.Background())

		assert.NoError(t, err)
		assert.InDelta(t, 150.0, avg, 0.001)
	})

	t.Run("empty inventory averages to zero", func(t *testing.T) {
		svc, mockRepo, _ := newRoomService(t)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		avg, err := svc.AveragePrice(context.Background())

		assert.NoError(t, err)
		assert.Zero(t, avg)
	})
}
