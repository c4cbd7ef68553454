package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"quickcourt/infras/otel"
	"quickcourt/infras/postgres"
	"quickcourt/internal/domains/booking/model"
	courtModel "quickcourt/internal/domains/court/model"
	venueModel "quickcourt/internal/domains/venue/model"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"
	"quickcourt/shared/logger"
	gRepo "quickcourt/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrSlotTaken = errors.New("the court is already booked for the selected time")

type Booking interface {
	InsertWithoutOverlap(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	CountByStatus(ctx context.Context, ownerID string) ([]model.StatusCount, error)
	Revenue(ctx context.Context, ownerID string, statuses []string) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertWithoutOverlap stores the booking unless another active booking of the
// same court intersects its range. Concurrent inserts for one court serialise
// on the court row lock.
func (r *repositoryImpl) InsertWithoutOverlap(ctx context.Context, booking model.Booking) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertWithoutOverlap")
	defer scope.End()

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		var courtID string
		if err := gRepo.LockRow(ctx, tx, &courtID, courtModel.EntityName, courtModel.TableName, courtModel.FieldID, booking.CourtID); err != nil {
			scope.TraceError(err)

			return err
		}

		overlapQuery := fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = ANY($2) AND %s < $4 AND %s > $3)",
			model.TableName, model.FieldCourtID, model.FieldStatus, model.FieldStartTime, model.FieldEndTime,
		)
		scope.SetAttribute(constant.OtelQueryAttributeKey, overlapQuery)

		var taken bool
		if err := tx.GetContext(ctx, &taken, overlapQuery, booking.CourtID, pq.StringArray(model.ActiveStatuses), booking.StartTime, booking.EndTime); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to check overlapping bookings: %w", err)
		}

		if taken {
			return failure.Conflict(ErrSlotTaken.Error()) // nolint:wrapcheck
		}

		return r.InsertTx(ctx, tx, booking)
	})
}

func (r *repositoryImpl) CountByStatus(ctx context.Context, ownerID string) ([]model.StatusCount, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountByStatus")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT b.%s AS status, COUNT(b.%s) AS total FROM %s b JOIN %s v ON v.%s = b.%s WHERE v.%s = $1 GROUP BY b.%s",
		model.FieldStatus, model.FieldID, model.TableName, venueModel.TableName,
		venueModel.FieldID, model.FieldVenueID, venueModel.FieldOwnerID, model.FieldStatus,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	counts := []model.StatusCount{}
	if err := r.db.Read.SelectContext(ctx, &counts, query, ownerID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	return counts, nil
}

func (r *repositoryImpl) Revenue(ctx context.Context, ownerID string, statuses []string) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Revenue")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(b.%s), 0) FROM %s b JOIN %s v ON v.%s = b.%s WHERE v.%s = $1 AND b.%s = ANY($2)",
		model.FieldTotalPrice, model.TableName, venueModel.TableName,
		venueModel.FieldID, model.FieldVenueID, venueModel.FieldOwnerID, model.FieldStatus,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var revenue int64
	if err := r.db.Read.GetContext(ctx, &revenue, query, ownerID, pq.StringArray(statuses)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum booking revenue: %w", err)
	}

	return revenue, nil
}
