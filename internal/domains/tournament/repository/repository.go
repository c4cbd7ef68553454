package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"quickcourt/infras/otel"
	"quickcourt/infras/postgres"
	"quickcourt/internal/domains/tournament/model"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"
	"quickcourt/shared/logger"
	gRepo "quickcourt/shared/repository"

	"github.com/jmoiron/sqlx"
)

var (
	ErrTournamentFull  = errors.New("tournament is full")
	ErrAlreadyEntered  = errors.New("you are already registered for this tournament")
	ErrRegistrationOff = errors.New("tournament is not open for registration")
)

type Tournament interface {
	Insert(ctx context.Context, tournament model.Tournament) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Tournament, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Tournament, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Register(ctx context.Context, registration model.Registration) error
}

type Registration interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Registration, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Registration, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Tournament]
	registrations gRepo.Repository[model.Registration]
	otel          otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Tournament {
	return &repositoryImpl{
		Repository:    gRepo.NewRepository[model.Tournament](model.EntityName, model.TableName, model.FieldID, db, otel),
		registrations: gRepo.NewRepository[model.Registration](model.RegistrationEntityName, model.RegistrationTableName, model.FieldRegistrationID, db, otel),
		otel:          otel,
	}
}

type registrationImpl struct {
	gRepo.Repository[model.Registration]
}

func NewRegistration(db *postgres.Connection, otel otel.Otel) Registration {
	return &registrationImpl{
		Repository: gRepo.NewRepository[model.Registration](model.RegistrationEntityName, model.RegistrationTableName, model.FieldRegistrationID, db, otel),
	}
}

// Register adds the team while the tournament row is locked, so the capacity
// check and the insert see the same set of registrations.
func (r *repositoryImpl) Register(ctx context.Context, registration model.Registration) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".tournament.Register")
	defer scope.End()

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		var tournament struct {
			Status          string `db:"status"`
			MaxParticipants int    `db:"max_participants"`
		}

		err := gRepo.LockRow(ctx, tx, &tournament, model.EntityName, model.TableName, model.FieldID, registration.TournamentID,
			model.FieldStatus, model.FieldMaxParticipants)
		if err != nil {
			scope.TraceError(err)

			return err
		}

		if tournament.Status != model.StatusUpcoming {
			return failure.Conflict(ErrRegistrationOff.Error()) // nolint:wrapcheck
		}

		countQuery := fmt.Sprintf(
			"SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE %s = $2) AS mine FROM %s WHERE %s = $1 AND %s = $3",
			model.FieldRegistrationUserID, model.RegistrationTableName,
			model.FieldRegistrationTournamentID, model.FieldRegistrationStatus,
		)
		scope.SetAttribute(constant.OtelQueryAttributeKey, countQuery)

		var counts struct {
			Total int `db:"total"`
			Mine  int `db:"mine"`
		}

		if err := tx.GetContext(ctx, &counts, countQuery, registration.TournamentID, registration.UserID, model.RegistrationStatusRegistered); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to count registrations: %w", err)
		}

		if counts.Mine > 0 {
			return failure.Conflict(ErrAlreadyEntered.Error()) // nolint:wrapcheck
		}

		if counts.Total >= tournament.MaxParticipants {
			return failure.Conflict(ErrTournamentFull.Error()) // nolint:wrapcheck
		}

		return r.registrations.InsertTx(ctx, tx, registration)
	})
}
