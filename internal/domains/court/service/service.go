package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"quickcourt/config"
	"quickcourt/infras/otel"
	bookingModel "quickcourt/internal/domains/booking/model"
	bookingRepo "quickcourt/internal/domains/booking/repository"
	"quickcourt/internal/domains/court/model"
	"quickcourt/internal/domains/court/model/dto"
	"quickcourt/internal/domains/court/repository"
	venueModel "quickcourt/internal/domains/venue/model"
	venueRepo "quickcourt/internal/domains/venue/repository"
	"quickcourt/shared"
	"quickcourt/shared/cache"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"
	"quickcourt/shared/timezone"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCourt    = "court:get"
	cacheGetAllCourt = "court:gets"
)

type Court interface {
	Create(ctx context.Context, req dto.CreateCourtRequest) (dto.CourtResponse, error)
	GetByVenue(ctx context.Context, venueID string, req gDto.QueryParams) (dto.GetCourtsResponse, error)
	Get(ctx context.Context, id string) (dto.CourtResponse, error)
	Update(ctx context.Context, req dto.UpdateCourtRequest, id string) error
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, id string, date string) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo        repository.Court
	venueRepo   venueRepo.Venue
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	clock       clockwork.Clock
}

func New(
	repo repository.Court,
	venueRepo venueRepo.Venue,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock clockwork.Clock,
) Court {
	return &serviceImpl{
		repo:        repo,
		venueRepo:   venueRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		clock:       clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCourtRequest) (res dto.CourtResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validateWindow(req.OpenTime, req.CloseTime); err != nil {
		return res, err
	}

	actor := shared.ActorFromContext(ctx)

	if _, err = s.ownedVenue(ctx, req.VenueID, actor); err != nil {
		return res, err
	}

	court := req.ToModel(actor.Name())

	if err = s.repo.Insert(ctx, court); err != nil {
		log.Error().Err(err).Msg("failed to create court")

		return res, fmt.Errorf("failed to create court: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(court)

	return res, nil
}

func (s *serviceImpl) GetByVenue(ctx context.Context, venueID string, req gDto.QueryParams) (res dto.GetCourtsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByVenue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	venue, err := s.visibleVenue(ctx, venueID, actor)
	if err != nil {
		return res, err
	}

	filter := gDto.And(gDto.Filter{Field: model.FieldVenueID, Value: venueID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	if !canManage(venue, actor) {
		filter.Append(gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCourt, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for courts")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count courts")

		return res, fmt.Errorf("failed to count courts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get courts")

		return res, fmt.Errorf("failed to get courts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save courts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CourtResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCourt, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		court, err := s.get(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(court)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save court to cache")
			}
		}()
	}

	actor := shared.ActorFromContext(ctx)

	venue, err := s.visibleVenue(ctx, res.VenueID, actor)
	if err != nil {
		return dto.CourtResponse{}, err
	}

	if !res.Active && !canManage(venue, actor) {
		return dto.CourtResponse{}, failure.NotFound("court") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCourtRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateCourtRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor := shared.ActorFromContext(ctx)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err = s.ownedVenue(ctx, current.VenueID, actor); err != nil {
		return err
	}

	openTime, closeTime := current.OpenTime, current.CloseTime
	if req.OpenTime != constant.Empty {
		openTime = req.OpenTime
	}

	if req.CloseTime != constant.Empty {
		closeTime = req.CloseTime
	}

	if err = validateWindow(openTime, closeTime); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Name()), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update court")

		return fmt.Errorf("failed to update court: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err = s.ownedVenue(ctx, current.VenueID, shared.ActorFromContext(ctx)); err != nil {
		return err
	}

	booked, err := s.bookingRepo.Exist(ctx, gDto.And(
		gDto.Filter{Field: bookingModel.FieldCourtID, Value: id, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to check court bookings")

		return fmt.Errorf("failed to check court bookings: %w", err)
	}

	if booked {
		return failure.Conflict("court has active bookings") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete court")

		return fmt.Errorf("failed to delete court: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Availability splits the court's opening hours on date into slots and marks
// each one free unless it has started already or an active booking covers it.
func (s *serviceImpl) Availability(ctx context.Context, id string, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day, err := timezone.Parse(constant.DayFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	court, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	actor := shared.ActorFromContext(ctx)

	venue, err := s.visibleVenue(ctx, court.VenueID, actor)
	if err != nil {
		return res, err
	}

	if !court.Active && !canManage(venue, actor) {
		return res, failure.NotFound("court") // nolint:wrapcheck
	}

	opensAt, closesAt, err := court.Window(day)
	if err != nil {
		return res, fmt.Errorf("invalid court opening hours: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{SortBy: bookingModel.FieldStartTime, SortDir: gDto.SortDirAsc}, gDto.And(
		gDto.Filter{Field: bookingModel.FieldCourtID, Value: id, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
		gDto.Filter{Field: bookingModel.FieldStartTime, Value: closesAt, Operator: gDto.FilterOperatorLessEq, Table: bookingModel.TableName},
		gDto.Filter{Field: bookingModel.FieldEndTime, Value: opensAt, Operator: gDto.FilterOperatorGreaterEq, Table: bookingModel.TableName},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to get court bookings")

		return res, fmt.Errorf("failed to get court bookings: %w", err)
	}

	res = dto.AvailabilityResponse{
		CourtID:    court.ID,
		Date:       day.Format(constant.DayFormat),
		OpenTime:   court.OpenTime,
		CloseTime:  court.CloseTime,
		HourlyRate: court.HourlyRate,
		Slots:      buildSlots(opensAt, closesAt, s.cfg.App.Booking.SlotSize(), s.clock.Now(), bookings),
	}

	return res, nil
}

func buildSlots(opensAt, closesAt time.Time, size time.Duration, now time.Time, bookings []bookingModel.Booking) []dto.Slot {
	slots := []dto.Slot{}

	for start := opensAt; !start.Add(size).After(closesAt); start = start.Add(size) {
		end := start.Add(size)
		available := start.After(now)

		for _, booking := range bookings {
			if booking.Overlaps(start, end) {
				available = false

				break
			}
		}

		slots = append(slots, dto.Slot{
			StartTime: timezone.Format(start, constant.DateFormat),
			EndTime:   timezone.Format(end, constant.DateFormat),
			Available: available,
		})
	}

	return slots
}

func validateWindow(openTime, closeTime string) error {
	if openTime >= closeTime {
		return failure.BadRequestFromString("open_time must be before close_time") // nolint:wrapcheck
	}

	return nil
}

func canManage(venue venueModel.Venue, actor shared.Actor) bool {
	return actor.IsAdmin() || venue.OwnerID == actor.UserID
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Court, error) {
	court, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get court")

		return court, fmt.Errorf("failed to get court: %w", err)
	}

	if court.ID == constant.Empty {
		return court, failure.NotFound("court") // nolint:wrapcheck
	}

	return court, nil
}

func (s *serviceImpl) venue(ctx context.Context, id string) (venueModel.Venue, error) {
	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(id, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, failure.NotFound("venue") // nolint:wrapcheck
	}

	return venue, nil
}

func (s *serviceImpl) visibleVenue(ctx context.Context, id string, actor shared.Actor) (venueModel.Venue, error) {
	venue, err := s.venue(ctx, id)
	if err != nil {
		return venue, err
	}

	if !venue.IsApproved() && !canManage(venue, actor) {
		return venue, failure.NotFound("venue") // nolint:wrapcheck
	}

	return venue, nil
}

func (s *serviceImpl) ownedVenue(ctx context.Context, id string, actor shared.Actor) (venueModel.Venue, error) {
	venue, err := s.venue(ctx, id)
	if err != nil {
		return venue, err
	}

	if venue.OwnerID != actor.UserID {
		return venue, failure.Forbidden("you do not own this venue") // nolint:wrapcheck
	}

	return venue, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCourt, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete court from cache")
		}
	}()

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllCourt)
	}()
}
