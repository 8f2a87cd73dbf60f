package dto

import (
	"hoteldesk/internal/domains/room/model"
	"hoteldesk/shared"
	gDto "hoteldesk/shared/dto"
	gModel "hoteldesk/shared/model"
	"hoteldesk/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber    string  `json:"room_number"     validate:"required,max=20"`
	RoomType      string  `json:"room_type"       validate:"required,oneof=Single Double Suite Deluxe"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	Available     *bool   `json:"available"       validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Room{
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		PricePerNight: c.PricePerNight,
		Available:     available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomType      string   `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=Single Double Suite Deluxe"`
	PricePerNight *float64 `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	Available     *bool    `db:"available"       json:"available"       validate:"omitempty"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type RoomResponse struct {
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	Available     bool    `json:"available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
