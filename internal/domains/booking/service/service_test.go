package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hoteldesk/config"
	kafkaMocks "hoteldesk/infras/kafka/mocks"
	"hoteldesk/infras/otel/mocks"
	bookingMocks "hoteldesk/internal/domains/booking/mocks"
	"hoteldesk/internal/domains/booking/model"
	"hoteldesk/internal/domains/booking/model/dto"
	"hoteldesk/internal/domains/booking/service"
	roomMocks "hoteldesk/internal/domains/room/mocks"
	roomModel "hoteldesk/internal/domains/room/model"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/failure"
	gModel "hoteldesk/shared/model"
	"hoteldesk/shared/timezone"

	cacheMocks "hoteldesk/shared/cache/mocks"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockEvents := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockEvents)

	return svc, mockRepo, mockRoomRepo, mockCache
}

func futureDate(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(constant.DateFormat)
}

func availableRoom(number string) roomModel.Room {
	return roomModel.Room{
		RoomNumber:    number,
		RoomType:      roomModel.TypeDouble,
		PricePerNight: 150,
		Available:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	svc, mockRepo, mockRoomRepo, _ := newBookingService(t)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "invalid date format",
			req: dto.CreateBookingRequest{
				RoomNumber:   "101",
				CustomerName: "Alice Johnson",
				CheckIn:      "not-a-date",
				CheckOut:     futureDate(3),
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "check-out not after check-in",
			req: dto.CreateBookingRequest{
				RoomNumber:   "101",
				CustomerName: "Alice Johnson",
				CheckIn:      futureDate(3),
				CheckOut:     futureDate(3),
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "check-in in the past",
			req: dto.CreateBookingRequest{
				RoomNumber:   "101",
				CustomerName: "Alice Johnson",
				CheckIn:      futureDate(-2),
				CheckOut:     futureDate(3),
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "room not found",
			req: dto.CreateBookingRequest{
				RoomNumber:   "999",
				CustomerName: "Alice Johnson",
				CheckIn:      futureDate(1),
				CheckOut:     futureDate(3),
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr: true,
		},
		{
			name: "room unavailable",
			req: dto.CreateBookingRequest{
				RoomNumber:   "101",
				CustomerName: "Alice Johnson",
				CheckIn:      futureDate(1),
				CheckOut:     futureDate(3),
			},
			setupMock: func() {
				occupied := availableRoom("101")
				occupied.Available = false

				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(occupied, nil)
			},
			wantErr: true,
		},
		{
			name: "room lookup error",
			req: dto.CreateBookingRequest{
				RoomNumber:   "101",
				CustomerName: "Alice Johnson",
				CheckIn:      futureDate(1),
				CheckOut:     futureDate(3),
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, errors.New("connection refused"))
			},
			wantErr: true,
		},
		{
			name: "begin transaction error",
			req: dto.CreateBookingRequest{
				RoomNumber:   "101",
				CustomerName: "Alice Johnson",
				CheckIn:      futureDate(1),
				CheckOut:     futureDate(3),
			},
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableRoom("101"), nil)

				mockRepo.EXPECT().
					BeginTx(gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			_, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Create_RoomUnavailableKind(t *testing.T) {
	svc, _, mockRoomRepo, _ := newBookingService(t)

	occupied := availableRoom("207")
	occupied.Available = false

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(occupied, nil)

	req := dto.CreateBookingRequest{
		RoomNumber:   "207",
		CustomerName: "Bob Smith",
		CheckIn:      futureDate(1),
		CheckOut:     futureDate(2),
	}

	_, err := svc.Create(context.Background(), req)

	assert.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindRoomUnavailable))
}

func TestBookingService_Cancel(t *testing.T) {
	svc, mockRepo, _, _ := newBookingService(t)

	activeBooking := model.Booking{
		ID:           "booking-id-123",
		RoomNumber:   "101",
		CustomerName: "Alice Johnson",
		CheckIn:      timezone.Now().AddDate(0, 0, 1),
		CheckOut:     timezone.Now().AddDate(0, 0, 3),
		Active:       true,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "booking not found",
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "lookup error",
			id:   "booking-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("connection refused"))
			},
			wantErr: true,
		},
		{
			name: "already cancelled is a no-op",
			id:   "booking-id-123",
			setupMock: func() {
				cancelled := activeBooking
				cancelled.Active = false

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr: false,
		},
		{
			name: "begin transaction error",
			id:   "booking-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking, nil)

				mockRepo.EXPECT().
					BeginTx(gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Cancel(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	booking := model.Booking{
		ID:           "booking-id-123",
		RoomNumber:   "101",
		CustomerName: "Alice Johnson",
		CheckIn:      timezone.Now().AddDate(0, 0, 1),
		CheckOut:     timezone.Now().AddDate(0, 0, 3),
		Active:       true,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache miss then repository hit",
			id:   "booking-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "cache hit",
			id:   "booking-id-123",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "missing-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Get(context.Background(), tt.id)

			// Give the async cache save goroutine time to run before the
			// controller checks expectations.
			time.Sleep(20 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	bookings := []model.Booking{
		{
			ID:           "booking-id-1",
			RoomNumber:   "101",
			CustomerName: "Alice Johnson",
			CheckIn:      timezone.Now().AddDate(0, 0, 5),
			CheckOut:     timezone.Now().AddDate(0, 0, 7),
			Active:       true,
		},
		{
			ID:           "booking-id-2",
			RoomNumber:   "102",
			CustomerName: "Bob Smith",
			CheckIn:      timezone.Now().AddDate(0, 0, 1),
			CheckOut:     timezone.Now().AddDate(0, 0, 2),
			Active:       false,
		},
	}

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(len(bookings), nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(bookings, nil)

	req := gDto.QueryParams{Page: 1, Limit: 10}

	res, err := svc.GetAll(context.Background(), req, gDto.FilterGroup{})

	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 2, res.Bookings[0].Nights)
}

func TestBookingService_Active(t *testing.T) {
	svc, mockRepo, _, mockCache := newBookingService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, model.FieldCheckIn, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Booking{}, nil
		})

	_, err := svc.Active(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, err)
}
