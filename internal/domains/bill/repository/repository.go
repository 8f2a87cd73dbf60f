package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hoteldesk/infras/otel"
	"hoteldesk/infras/postgres"
	"hoteldesk/internal/domains/bill/model"
	gDto "hoteldesk/shared/dto"
	gRepo "hoteldesk/shared/repository"
)

type Bill interface {
	Insert(ctx context.Context, model model.Bill) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Bill, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Bill, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Sum(ctx context.Context, column string, filter gDto.FilterGroup) (float64, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Bill]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Bill {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Bill](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
