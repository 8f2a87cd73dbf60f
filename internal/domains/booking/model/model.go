package model

import (
	"hoteldesk/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldRoomNumber   = "room_number"
	FieldCustomerName = "customer_name"
	FieldCheckIn      = "check_in"
	FieldCheckOut     = "check_out"
	FieldActive       = "active"
)

type Booking struct {
	ID           string    `db:"id"`
	RoomNumber   string    `db:"room_number"`
	CustomerName string    `db:"customer_name"`
	CheckIn      time.Time `db:"check_in"`
	CheckOut     time.Time `db:"check_out"`
	Active       bool      `db:"active"`
	model.Metadata
}

// Nights is the whole-day stay length, check-out day excluded:
// Jan 1 to Jan 3 is 2 nights. Both ends are normalized to calendar
// dates so a DST transition inside the stay cannot shift the count.
func (b *Booking) Nights() int {
	in := time.Date(b.CheckIn.Year(), b.CheckIn.Month(), b.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(b.CheckOut.Year(), b.CheckOut.Month(), b.CheckOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in) / (24 * time.Hour))
}

// TotalPrice is the stay cost at the given nightly rate.
func (b *Booking) TotalPrice(pricePerNight float64) float64 {
	return float64(b.Nights()) * pricePerNight
}
