package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"quickcourt/infras/otel"
	"quickcourt/infras/postgres"
	"quickcourt/internal/domains/court/model"
	venueModel "quickcourt/internal/domains/venue/model"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/logger"
	gRepo "quickcourt/shared/repository"
)

type Court interface {
	Insert(ctx context.Context, court model.Court) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Court, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Court, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Court]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Court {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Court](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountByOwner counts the courts of every venue the owner runs.
func (r *repositoryImpl) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".court.CountByOwner")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COUNT(c.%s) FROM %s c JOIN %s v ON v.%s = c.%s WHERE v.%s = $1",
		model.FieldID, model.TableName, venueModel.TableName, venueModel.FieldID, model.FieldVenueID, venueModel.FieldOwnerID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var total int
	if err := r.db.Read.GetContext(ctx, &total, query, ownerID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count courts: %w", err)
	}

	return total, nil
}
