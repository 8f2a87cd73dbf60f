package model

import "hoteldesk/shared/model"

const (
	TableName  = "room_photos"
	EntityName = "room_photo"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldCaption    = "caption"
	FieldImages     = "images"
)

type RoomPhoto struct {
	ID         string   `db:"id"`
	RoomNumber string   `db:"room_number"`
	Caption    string   `db:"caption"`
	Images     []string `db:"images"`
	model.Metadata
}
