package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hoteldesk/internal/domains/booking/model"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	return loc
}

func TestBooking_Nights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "two night stay",
			checkIn:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
			want:     2,
		},
		{
			name:     "single night",
			checkIn:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "week long stay across month boundary",
			checkIn:  time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC),
			want:     7,
		},
		{
			name:     "single night across spring-forward transition",
			checkIn:  time.Date(2025, 3, 9, 0, 0, 0, 0, newYork(t)),
			checkOut: time.Date(2025, 3, 10, 0, 0, 0, 0, newYork(t)),
			want:     1,
		},
		{
			name:     "week across fall-back transition",
			checkIn:  time.Date(2025, 10, 31, 0, 0, 0, 0, newYork(t)),
			checkOut: time.Date(2025, 11, 7, 0, 0, 0, 0, newYork(t)),
			want:     7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{CheckIn: tt.checkIn, CheckOut: tt.checkOut}

			assert.Equal(t, tt.want, booking.Nights())
		})
	}
}

func TestBooking_TotalPrice(t *testing.T) {
	booking := model.Booking{
		CheckIn:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
	}

	assert.InDelta(t, 450.0, booking.TotalPrice(150), 0.001)
	assert.InDelta(t, 0.0, booking.TotalPrice(0), 0.001)
}
