package dto

import (
	"hoteldesk/shared/constant"
	"hoteldesk/shared/model"
	"hoteldesk/shared/timezone"
)

type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateTimeFormat)
	m.ModifiedAt = timezone.Format(model.ModifiedAt, constant.DateTimeFormat)
	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}
