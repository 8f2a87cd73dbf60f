package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hoteldesk/infras/otel"
	"hoteldesk/infras/postgres"
	"hoteldesk/internal/domains/photo/model"
	gDto "hoteldesk/shared/dto"
	gRepo "hoteldesk/shared/repository"
)

type Photo interface {
	Insert(ctx context.Context, model model.RoomPhoto) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomPhoto, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomPhoto, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomPhoto]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Photo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomPhoto](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
