package model

import (
	"time"

	"hoteldesk/shared/model"
)

const (
	TableName  = "bills"
	EntityName = "bill"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldTotalAmount = "total_amount"
	FieldGeneratedAt = "generated_at"
	FieldPaid        = "paid"
	FieldPaidAt      = "paid_at"
)

type Bill struct {
	ID          string     `db:"id"`
	BookingID   string     `db:"booking_id"`
	TotalAmount float64    `db:"total_amount"`
	GeneratedAt time.Time  `db:"generated_at"`
	Paid        bool       `db:"paid"`
	PaidAt      *time.Time `db:"paid_at"`
	model.Metadata
}
