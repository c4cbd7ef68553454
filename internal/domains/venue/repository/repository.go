package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"quickcourt/infras/otel"
	"quickcourt/infras/postgres"
	bookingModel "quickcourt/internal/domains/booking/model"
	"quickcourt/internal/domains/venue/model"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"
	"quickcourt/shared/logger"
	gRepo "quickcourt/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Venue interface {
	Insert(ctx context.Context, venue model.Venue) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Venue, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Venue, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	DeleteUnlessBooked(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Venue]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Venue {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Venue](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DeleteUnlessBooked removes the venue when none of its courts hold an active
// booking. The venue row stays locked between the check and the delete.
func (r *repositoryImpl) DeleteUnlessBooked(ctx context.Context, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".venue.DeleteUnlessBooked")
	defer scope.End()

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		var locked string
		if err := gRepo.LockRow(ctx, tx, &locked, model.EntityName, model.TableName, model.FieldID, id); err != nil {
			scope.TraceError(err)

			return err
		}

		bookedQuery := fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = ANY($2))",
			bookingModel.TableName, bookingModel.FieldVenueID, bookingModel.FieldStatus,
		)
		scope.SetAttribute(constant.OtelQueryAttributeKey, bookedQuery)

		var booked bool
		if err := tx.GetContext(ctx, &booked, bookedQuery, id, pq.StringArray(bookingModel.ActiveStatuses)); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to check active bookings: %w", err)
		}

		if booked {
			return failure.Conflict("venue has active bookings") // nolint:wrapcheck
		}

		return r.DeleteTx(ctx, tx, gDto.FilterGroup{
			Filters: []any{gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName}},
		})
	})
}
