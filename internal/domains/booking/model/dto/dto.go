package dto

import (
	"time"

	"hoteldesk/internal/domains/booking/model"
	"hoteldesk/shared"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	gModel "hoteldesk/shared/model"
	"hoteldesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomNumber   string `json:"room_number"   validate:"required,max=20"`
	CustomerName string `json:"customer_name" validate:"required,max=100"`
	CheckIn      string `json:"check_in"      validate:"required"`
	CheckOut     string `json:"check_out"     validate:"required"`
}

// ParseDates returns the check-in and check-out calendar dates. Dates carry
// no time component; both are anchored to the application timezone.
func (c *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.DateFormat, c.CheckIn)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = timezone.Parse(constant.DateFormat, c.CheckOut)

	return checkIn, checkOut, err
}

func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		RoomNumber:   c.RoomNumber,
		CustomerName: c.CustomerName,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BookingResponse struct {
	ID           string `json:"id"`
	RoomNumber   string `json:"room_number"`
	CustomerName string `json:"customer_name"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	Nights       int    `json:"nights"`
	Active       bool   `json:"active"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.CustomerName = model.CustomerName
	r.CheckIn = model.CheckIn.Format(constant.DateFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateFormat)
	r.Nights = model.Nights()
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to the booking events topic.
type BookingEvent struct {
	Type         string `json:"type"`
	BookingID    string `json:"booking_id"`
	RoomNumber   string `json:"room_number"`
	CustomerName string `json:"customer_name"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	OccurredAt   string `json:"occurred_at"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

func NewBookingEvent(eventType string, booking model.Booking) BookingEvent {
	return BookingEvent{
		Type:         eventType,
		BookingID:    booking.ID,
		RoomNumber:   booking.RoomNumber,
		CustomerName: booking.CustomerName,
		CheckIn:      booking.CheckIn.Format(constant.DateFormat),
		CheckOut:     booking.CheckOut.Format(constant.DateFormat),
		OccurredAt:   timezone.Now().Format(constant.DateTimeFormat),
	}
}
