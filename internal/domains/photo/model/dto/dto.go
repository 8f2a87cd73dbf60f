package dto

import (
	"mime/multipart"

	"hoteldesk/internal/domains/photo/model"
	"hoteldesk/shared"
	gDto "hoteldesk/shared/dto"
	gModel "hoteldesk/shared/model"
	"hoteldesk/shared/timezone"

	"github.com/google/uuid"
)

type CreatePhotoRequest struct {
	RoomNumber string   `json:"room_number" validate:"required,max=20"`
	Caption    string   `json:"caption"     validate:"omitempty,max=200"`
	Images     []string `json:"images"      validate:"required,min=1,dive,url"`
}

func (c *CreatePhotoRequest) ToModel(user string) model.RoomPhoto {
	return model.RoomPhoto{
		ID:         uuid.NewString(),
		RoomNumber: c.RoomNumber,
		Caption:    c.Caption,
		Images:     c.Images,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePhotoRequest struct {
	Caption string   `db:"caption" json:"caption" validate:"omitempty,max=200"`
	Images  []string `db:"images"  json:"images"  validate:"omitempty,dive,url"`
}

type PhotoResponse struct {
	ID         string   `json:"id"`
	RoomNumber string   `json:"room_number"`
	Caption    string   `json:"caption"`
	Images     []string `json:"images"`
	gDto.Metadata
}

func (r *PhotoResponse) FromModel(model model.RoomPhoto) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Caption = model.Caption
	r.Images = model.Images
	r.Metadata.FromModel(model.Metadata)
}

type GetPhotosResponse struct {
	Photos    []PhotoResponse `json:"photos"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetPhotosResponse) FromModels(models []model.RoomPhoto, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Photos = make([]PhotoResponse, len(models))
	for i, m := range models {
		r.Photos[i].FromModel(m)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image"                swaggerignore:"true"                 validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

type DeleteImagesRequest struct {
	ImageURLs []string `json:"image_urls" validate:"required,min=1,dive,url"`
}
