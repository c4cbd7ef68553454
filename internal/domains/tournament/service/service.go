package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"quickcourt/config"
	"quickcourt/infras/otel"
	"quickcourt/internal/domains/tournament/model"
	"quickcourt/internal/domains/tournament/model/dto"
	"quickcourt/internal/domains/tournament/repository"
	venueModel "quickcourt/internal/domains/venue/model"
	venueRepo "quickcourt/internal/domains/venue/repository"
	"quickcourt/shared"
	"quickcourt/shared/cache"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetTournament    = "tournament:get"
	cacheGetAllTournament = "tournament:gets"

	argCurrentStatus = "current_status"
)

type Tournament interface {
	Create(ctx context.Context, req dto.CreateTournamentRequest) (dto.TournamentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTournamentsResponse, error)
	Get(ctx context.Context, id string) (dto.TournamentResponse, error)
	Update(ctx context.Context, req dto.UpdateTournamentRequest, id string) error
	Cancel(ctx context.Context, id string) error
	Register(ctx context.Context, req dto.RegisterRequest, id string) (dto.RegistrationResponse, error)
	Withdraw(ctx context.Context, id string) error
	GetRegistrations(ctx context.Context, id string, req gDto.QueryParams) (dto.GetRegistrationsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetRegistrationsResponse, error)
	Advance(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo          repository.Tournament
	registrations repository.Registration
	venueRepo     venueRepo.Venue
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
	clock         clockwork.Clock
}

func New(
	repo repository.Tournament,
	registrations repository.Registration,
	venueRepo venueRepo.Venue,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock clockwork.Clock,
) Tournament {
	return &serviceImpl{
		repo:          repo,
		registrations: registrations,
		venueRepo:     venueRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
		clock:         clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTournamentRequest) (res dto.TournamentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, deadline, err := req.Schedule()
	if err != nil {
		return res, failure.BadRequestFromString("dates must be RFC3339 timestamps") // nolint:wrapcheck
	}

	if err = model.ValidateSchedule(start, end, deadline); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !start.After(s.clock.Now()) {
		return res, failure.BadRequestFromString("start_date must be in the future") // nolint:wrapcheck
	}

	actor := shared.ActorFromContext(ctx)

	venue, err := s.managedVenue(ctx, req.VenueID, actor)
	if err != nil {
		return res, err
	}

	if !venue.IsApproved() {
		return res, failure.BadRequestFromString("tournaments can only be hosted at approved venues") // nolint:wrapcheck
	}

	tournament := req.ToModel(actor.Name(), start, end, deadline)

	if err = s.repo.Insert(ctx, tournament); err != nil {
		log.Error().Err(err).Msg("failed to create tournament")

		return res, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(tournament)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTournamentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTournament, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tournaments")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tournaments")

		return res, fmt.Errorf("failed to count tournaments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tournaments")

		return res, fmt.Errorf("failed to get tournaments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tournaments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TournamentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetTournament, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tournament")

		return res, nil
	}

	tournament, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(tournament)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tournament to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTournamentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateTournamentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor := shared.ActorFromContext(ctx)

	current, err := s.managed(ctx, id, actor)
	if err != nil {
		return err
	}

	if current.Status != model.StatusUpcoming {
		return failure.InvalidTransition("tournament", current.Status, "changed") // nolint:wrapcheck
	}

	start, end, deadline, err := req.Schedule(current)
	if err != nil {
		return failure.BadRequestFromString("dates must be RFC3339 timestamps") // nolint:wrapcheck
	}

	if err = model.ValidateSchedule(start, end, deadline); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if req.MaxParticipants != 0 {
		registered, err := s.registrations.Count(ctx, registeredIn(id))
		if err != nil {
			log.Error().Err(err).Msg("failed to count registrations")

			return fmt.Errorf("failed to count registrations: %w", err)
		}

		if req.MaxParticipants < registered {
			return failure.Conflict(fmt.Sprintf("%d teams are already registered", registered)) // nolint:wrapcheck
		}
	}

	fields := shared.TransformFields(req, actor.Name())
	fields[model.FieldStartDate] = start
	fields[model.FieldEndDate] = end
	fields[model.FieldRegistrationDeadline] = deadline

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update tournament")

		return fmt.Errorf("failed to update tournament: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	current, err := s.managed(ctx, id, actor)
	if err != nil {
		return err
	}

	if current.Status != model.StatusUpcoming && current.Status != model.StatusOngoing {
		return failure.InvalidTransition("tournament", current.Status, "cancelled") // nolint:wrapcheck
	}

	affected, err := s.repo.UpdateCount(ctx,
		shared.ModifiedFields(actor.Name(), map[string]any{model.FieldStatus: model.StatusCancelled}),
		gDto.And(
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, ArgName: argCurrentStatus, Value: current.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel tournament")

		return fmt.Errorf("failed to cancel tournament: %w", err)
	}

	if affected == 0 {
		return failure.StaleWrite("tournament") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest, id string) (res dto.RegistrationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	if actor.IsGuest() {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	tournament, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if tournament.Status != model.StatusUpcoming {
		return res, failure.Conflict(repository.ErrRegistrationOff.Error()) // nolint:wrapcheck
	}

	if !tournament.RegistrationOpen(s.clock.Now()) {
		return res, failure.BadRequestFromString("registration deadline has passed") // nolint:wrapcheck
	}

	registration := req.ToModel(id, actor.UserID)

	if err = s.repo.Register(ctx, registration); err != nil {
		log.Error().Err(err).Msg("failed to register for tournament")

		return res, fmt.Errorf("failed to register for tournament: %w", err)
	}

	res.FromModel(registration)

	return res, nil
}

func (s *serviceImpl) Withdraw(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Withdraw")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	if actor.IsGuest() {
		return failure.Unauthorized("login required") // nolint:wrapcheck
	}

	tournament, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if !s.clock.Now().Before(tournament.StartDate) {
		return failure.BadRequestFromString("cannot withdraw after the tournament has started") // nolint:wrapcheck
	}

	filter := registeredIn(id)
	filter.Append(gDto.Filter{Field: model.FieldRegistrationUserID, Value: actor.UserID, Operator: gDto.FilterOperatorEq, Table: model.RegistrationTableName})

	affected, err := s.registrations.UpdateCount(ctx,
		shared.ModifiedFields(actor.Name(), map[string]any{model.FieldRegistrationStatus: model.RegistrationStatusWithdrawn}),
		filter,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to withdraw registration")

		return fmt.Errorf("failed to withdraw registration: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("registration") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) GetRegistrations(ctx context.Context, id string, req gDto.QueryParams) (res dto.GetRegistrationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRegistrations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.managed(ctx, id, shared.ActorFromContext(ctx)); err != nil {
		return res, err
	}

	return s.listRegistrations(ctx, req, gDto.And(
		gDto.Filter{Field: model.FieldRegistrationTournamentID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.RegistrationTableName},
	))
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetRegistrationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	if actor.IsGuest() {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	return s.listRegistrations(ctx, req, gDto.And(
		gDto.Filter{Field: model.FieldRegistrationUserID, Value: actor.UserID, Operator: gDto.FilterOperatorEq, Table: model.RegistrationTableName},
	))
}

func (s *serviceImpl) listRegistrations(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRegistrationsResponse, err error) {
	total, err := s.registrations.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count registrations")

		return res, fmt.Errorf("failed to count registrations: %w", err)
	}

	models, err := s.registrations.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get registrations")

		return res, fmt.Errorf("failed to get registrations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// Advance starts upcoming tournaments whose start date has passed and
// completes ongoing ones whose end date has passed.
func (s *serviceImpl) Advance(ctx context.Context) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Advance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()

	steps := []struct {
		from, to, deadline string
	}{
		{from: model.StatusUpcoming, to: model.StatusOngoing, deadline: model.FieldStartDate},
		{from: model.StatusOngoing, to: model.StatusCompleted, deadline: model.FieldEndDate},
	}

	for _, step := range steps {
		affected, err := s.repo.UpdateCount(ctx,
			shared.ModifiedFields(constant.ContextSystem, map[string]any{model.FieldStatus: step.to}),
			gDto.And(
				gDto.Filter{Field: model.FieldStatus, ArgName: argCurrentStatus, Value: step.from, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: step.deadline, Value: now, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			),
		)
		if err != nil {
			log.Error().Err(err).Str("status", step.to).Msg("failed to advance tournaments")

			return total, fmt.Errorf("failed to advance tournaments to %s: %w", step.to, err)
		}

		total += int(affected)
	}

	if total > 0 {
		s.invalidateAll(ctx)
	}

	return total, nil
}

func registeredIn(id string) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: model.FieldRegistrationTournamentID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.RegistrationTableName},
		gDto.Filter{Field: model.FieldRegistrationStatus, ArgName: argCurrentStatus, Value: model.RegistrationStatusRegistered, Operator: gDto.FilterOperatorEq, Table: model.RegistrationTableName},
	)
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Tournament, error) {
	tournament, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tournament")

		return tournament, fmt.Errorf("failed to get tournament: %w", err)
	}

	if tournament.ID == constant.Empty {
		return tournament, failure.NotFound("tournament") // nolint:wrapcheck
	}

	return tournament, nil
}

// managed loads a tournament hosted at a venue the actor owns. Admins manage
// every tournament.
func (s *serviceImpl) managed(ctx context.Context, id string, actor shared.Actor) (model.Tournament, error) {
	tournament, err := s.get(ctx, id)
	if err != nil {
		return tournament, err
	}

	if _, err = s.managedVenue(ctx, tournament.VenueID, actor); err != nil {
		return tournament, err
	}

	return tournament, nil
}

func (s *serviceImpl) managedVenue(ctx context.Context, id string, actor shared.Actor) (venueModel.Venue, error) {
	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(id, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, failure.NotFound("venue") // nolint:wrapcheck
	}

	if !actor.IsAdmin() && venue.OwnerID != actor.UserID {
		return venue, failure.Forbidden("you do not own this venue") // nolint:wrapcheck
	}

	return venue, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTournament, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete tournament from cache")
		}
	}()

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllTournament)
	}()
}

func (s *serviceImpl) invalidateAll(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetTournament)
		shared.InvalidateCaches(c, s.cache, cacheGetAllTournament)
	}()
}
