package model

import "hoteldesk/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldAvailable     = "available"
)

const (
	TypeSingle = "Single"
	TypeDouble = "Double"
	TypeSuite  = "Suite"
	TypeDeluxe = "Deluxe"
)

type Room struct {
	RoomNumber    string  `db:"room_number"`
	RoomType      string  `db:"room_type"`
	PricePerNight float64 `db:"price_per_night"`
	Available     bool    `db:"available"`
	model.Metadata
}
