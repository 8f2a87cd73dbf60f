package photo

import (
	"net/http"

	"hoteldesk/infras/otel"
	"hoteldesk/internal/domains/photo/model"
	"hoteldesk/internal/domains/photo/model/dto"
	"hoteldesk/internal/domains/photo/service"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	"hoteldesk/shared/validator"
	"hoteldesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Photo
	otel    otel.Otel
}

func New(service service.Photo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/photos", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePhoto)
		routerGroup.Get("/", handler.GetPhotos)
		routerGroup.Get("/room/{number}", handler.GetPhotosByRoom)
		routerGroup.Get("/{id}", handler.GetPhotoByID)
		routerGroup.Patch("/{id}", handler.UpdatePhoto)
		routerGroup.Delete("/{id}", handler.DeletePhoto)
		routerGroup.Post("/upload", handler.UploadImage)
		routerGroup.Delete("/images", handler.DeleteImages)
	})
}

// CreatePhoto attaches a photo set to a room.
// @Summary Create a room photo set
// @Description Attach uploaded images to a room with an optional caption.
// @Tags Photo
// @Accept json
// @Produce json
// @Param request body dto.CreatePhotoRequest true "Create Photo Request"
// @Success 201 {object} response.Message "Photo created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos [post]
// @Security BearerAuth
func (handler *Handler) CreatePhoto(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePhoto")
	defer scope.End()

	req := dto.CreatePhotoRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create photo")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Photo created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Photo created successfully")
}

// GetPhotos retrieves photo sets with optional room filtering.
// @Summary Get all photos
// @Description Retrieve room photo sets with optional filtering and pagination.
// @Tags Photo
// @Accept json
// @Produce json
// @Param room_number query string false "Filter by room number"
// @Success 200 {object} response.Data[dto.GetPhotosResponse] "List of photos"
// @Failure 500 {object} response.Error
// @Router /v1/photos [get]
func (handler *Handler) GetPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPhotos")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if roomNumber := r.URL.Query().Get(model.FieldRoomNumber); roomNumber != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    roomNumber,
			Table:    model.TableName,
		})
	}

	photos, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get photos")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photos retrieved successfully")

	response.WithJSON(w, http.StatusOK, photos)
}

// GetPhotosByRoom retrieves every photo set attached to a room.
// @Summary Get photos by room
// @Description Retrieve all photo sets for the given room number.
// @Tags Photo
// @Accept json
// @Produce json
// @Param number path string true "Room number"
// @Success 200 {object} response.Data[dto.GetPhotosResponse] "List of photos"
// @Failure 500 {object} response.Error
// @Router /v1/photos/room/{number} [get]
func (handler *Handler) GetPhotosByRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPhotosByRoom")
	defer scope.End()

	number := chi.URLParam(r, constant.RequestParamRoomNumber)

	photos, err := handler.service.GetByRoom(ctx, number)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get photos by room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photos retrieved successfully")

	response.WithJSON(w, http.StatusOK, photos)
}

// GetPhotoByID retrieves a photo set by its ID.
// @Summary Get a photo by ID
// @Description Retrieve a photo set by its unique identifier.
// @Tags Photo
// @Accept json
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.Data[dto.PhotoResponse] "Photo details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos/{id} [get]
func (handler *Handler) GetPhotoByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPhotoByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	photo, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get photo by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photo retrieved successfully")

	response.WithJSON(w, http.StatusOK, photo)
}

// UpdatePhoto updates a photo set's caption or images.
// @Summary Update a photo by ID
// @Description Update the caption or images of an existing photo set.
// @Tags Photo
// @Accept json
// @Produce json
// @Param id path string true "Photo ID"
// @Param request body dto.UpdatePhotoRequest true "Update Photo Request"
// @Success 200 {object} response.Message "Photo updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePhotoRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update photo")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Photo updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Photo updated successfully")
}

// DeletePhoto deletes a photo set by its ID.
// @Summary Delete a photo by ID
// @Description Delete a photo set and its stored images.
// @Tags Photo
// @Accept json
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.Message "Photo deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete photo")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Photo deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Photo deleted successfully")
}

// UploadImage handles image upload to S3.
// @Summary Upload an image to S3
// @Description Upload an image file to S3 and return the URL.
// @Tags Photo
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file to upload"
// @Success 200 {object} response.Data[dto.UploadImageResponse] "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	res, err := handler.service.UploadImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteImages handles deletion of multiple images from S3.
// @Summary Delete images from S3
// @Description Delete multiple images from S3 by providing their URLs.
// @Tags Photo
// @Accept json
// @Produce json
// @Param request body dto.DeleteImagesRequest true "Delete Images Request"
// @Success 200 {object} response.Message "Images deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos/images [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImages")
	defer scope.End()

	req := dto.DeleteImagesRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.DeleteImagesFromS3(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete images from S3")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Images deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Images deleted successfully")
}
