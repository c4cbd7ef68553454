package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quickcourt/config"
	"quickcourt/infras/kafka"
	"quickcourt/infras/otel"
	"quickcourt/internal/domains/booking/model"
	"quickcourt/internal/domains/booking/model/dto"
	"quickcourt/internal/domains/booking/repository"
	courtModel "quickcourt/internal/domains/court/model"
	courtRepo "quickcourt/internal/domains/court/repository"
	venueModel "quickcourt/internal/domains/venue/model"
	venueRepo "quickcourt/internal/domains/venue/repository"
	"quickcourt/shared"
	"quickcourt/shared/cache"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"
	"quickcourt/shared/idempotency"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	argCurrentStatus = "current_status"

	idempotencyOperation = "booking.create"
	idempotencyLockTTL   = 30 * time.Second

	sweepBatchSize = 100

	reasonExpired = "not confirmed before start time"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, idempotencyKey string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	GetByVenue(ctx context.Context, venueID string, req gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) error
	Confirm(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	CompleteFinished(ctx context.Context) (int, error)
	ExpireUnconfirmed(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo      repository.Booking
	courtRepo courtRepo.Court
	venueRepo venueRepo.Venue
	store     idempotency.Store
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	clock     clockwork.Clock
}

func New(
	repo repository.Booking,
	courtRepo courtRepo.Court,
	venueRepo venueRepo.Venue,
	store idempotency.Store,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock clockwork.Clock,
) Booking {
	return &serviceImpl{
		repo:      repo,
		courtRepo: courtRepo,
		venueRepo: venueRepo,
		store:     store,
		kafka:     kafka,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		clock:     clock,
	}
}

// Create books the court for the requested range. When idempotencyKey is set,
// a retry with the same key by the same user returns the first booking.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, idempotencyKey string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	if actor.IsGuest() {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	if idempotencyKey == constant.Empty {
		return s.create(ctx, req, actor)
	}

	key := idempotency.Key(idempotencyOperation, actor.UserID, idempotencyKey)

	if res, ok, replayErr := s.replay(ctx, key); replayErr != nil || ok {
		return res, replayErr
	}

	acquired, err := s.store.Acquire(ctx, key, idempotencyLockTTL)
	if err != nil {
		log.Error().Err(err).Msg("failed to acquire idempotency key")

		return res, fmt.Errorf("failed to acquire idempotency key: %w", err)
	}

	if !acquired {
		if res, ok, replayErr := s.replay(ctx, key); replayErr != nil || ok {
			return res, replayErr
		}

		return res, failure.Conflict("a request with this idempotency key is still in progress") // nolint:wrapcheck
	}

	res, err = s.create(ctx, req, actor)
	if err != nil {
		if releaseErr := s.store.Release(context.WithoutCancel(ctx), key); releaseErr != nil {
			log.Error().Err(releaseErr).Msg("failed to release idempotency key")
		}

		return res, err
	}

	payload, marshalErr := json.Marshal(res)
	if marshalErr != nil {
		log.Error().Err(marshalErr).Msg("failed to marshal idempotent booking")

		return res, nil
	}

	if saveErr := s.store.SaveResult(context.WithoutCancel(ctx), key, payload); saveErr != nil {
		log.Error().Err(saveErr).Msg("failed to save idempotent booking")
	}

	return res, nil
}

func (s *serviceImpl) replay(ctx context.Context, key string) (res dto.BookingResponse, ok bool, err error) {
	payload, ok, err := s.store.GetResult(ctx, key)
	if err != nil {
		log.Error().Err(err).Msg("failed to read idempotent booking")

		return res, false, fmt.Errorf("failed to read idempotent booking: %w", err)
	}

	if !ok {
		return res, false, nil
	}

	if err = json.Unmarshal(payload, &res); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal idempotent booking")

		return res, false, fmt.Errorf("failed to unmarshal idempotent booking: %w", err)
	}

	log.Info().Str("booking", res.ID).Msg("replaying idempotent booking")

	return res, true, nil
}

func (s *serviceImpl) create(ctx context.Context, req dto.CreateBookingRequest, actor shared.Actor) (res dto.BookingResponse, err error) {
	start, end, err := req.Range()
	if err != nil {
		return res, failure.BadRequestFromString("start_time and end_time must be RFC3339 timestamps") // nolint:wrapcheck
	}

	hours, err := s.hours(start, end)
	if err != nil {
		return res, err
	}

	if !start.After(s.clock.Now()) {
		return res, failure.BadRequestFromString("start_time must be in the future") // nolint:wrapcheck
	}

	court, err := s.court(ctx, req.CourtID)
	if err != nil {
		return res, err
	}

	if !court.Active {
		return res, failure.BadRequestFromString("court is not accepting bookings") // nolint:wrapcheck
	}

	venue, err := s.venue(ctx, court.VenueID)
	if err != nil {
		return res, err
	}

	if !venue.IsApproved() {
		return res, failure.BadRequestFromString("venue is not accepting bookings") // nolint:wrapcheck
	}

	inside, err := court.Contains(start, end)
	if err != nil {
		return res, fmt.Errorf("invalid court opening hours: %w", err)
	}

	if !inside {
		return res, failure.BadRequestFromString(fmt.Sprintf("court is open from %s to %s", court.OpenTime, court.CloseTime)) // nolint:wrapcheck
	}

	price := model.Quote(court.HourlyRate, hours,
		model.BasisPoints(s.cfg.App.Booking.ServiceFeePercent), model.BasisPoints(s.cfg.App.Booking.TaxPercent))

	status := model.StatusPending
	if s.cfg.App.Booking.AutoConfirm {
		status = model.StatusConfirmed
	}

	booking := req.ToModel(actor.UserID, venue.ID, status, start, end, price)

	if err = s.repo.InsertWithoutOverlap(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publish(ctx, model.EventCreated, booking)
	s.invalidateLists(ctx)

	res.FromModel(booking)

	return res, nil
}

// hours validates the length of [start, end) and returns it in whole hours.
func (s *serviceImpl) hours(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, failure.BadRequestFromString("end_time must be after start_time") // nolint:wrapcheck
	}

	duration := end.Sub(start)
	slot := s.cfg.App.Booking.SlotSize()

	if duration%slot != 0 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("booking length must be a multiple of %d minutes", int(slot.Minutes()))) // nolint:wrapcheck
	}

	hours := int(duration / time.Hour)
	if maxHours := s.cfg.App.Booking.MaxHours; maxHours > 0 && hours > maxHours {
		return 0, failure.BadRequestFromString(fmt.Sprintf("a booking may last at most %d hours", maxHours)) // nolint:wrapcheck
	}

	return hours, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, gDto.QueryParams{}, filter)

	var total int
	if cacheErr := s.cache.Get(ctx, cacheKey, &total); cacheErr == nil {
		return total, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	actor := shared.ActorFromContext(ctx)
	if actor.IsGuest() {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	filter := gDto.And(gDto.Filter{Field: model.FieldUserID, Value: actor.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	appendStatus(&filter, status)

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) GetByVenue(ctx context.Context, venueID string, req gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	venue, err := s.venue(ctx, venueID)
	if err != nil {
		return res, err
	}

	if !canManage(venue, shared.ActorFromContext(ctx)) {
		return res, failure.Forbidden("you do not own this venue") // nolint:wrapcheck
	}

	filter := gDto.And(gDto.Filter{Field: model.FieldVenueID, Value: venueID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	appendStatus(&filter, status)

	return s.GetAll(ctx, req, filter)
}

func appendStatus(filter *gDto.FilterGroup, status string) {
	if status == constant.Empty {
		return
	}

	filter.Append(gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

// Get returns the booking to its user, the owner of its venue or an admin.
// Anyone else gets a not found error.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		booking, err := s.get(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	actor := shared.ActorFromContext(ctx)
	if actor.IsAdmin() || res.UserID == actor.UserID {
		return res, nil
	}

	venue, err := s.venue(ctx, res.VenueID)
	if err != nil {
		return dto.BookingResponse{}, err
	}

	if venue.OwnerID != actor.UserID {
		return dto.BookingResponse{}, failure.NotFound("booking") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return failure.Forbidden("you can only cancel your own bookings") // nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, model.StatusCancelled) {
		return failure.InvalidTransition("booking", booking.Status, "cancelled") // nolint:wrapcheck
	}

	now := s.clock.Now()
	cutoff := time.Duration(s.cfg.App.Booking.CancellationCutoffMinute) * time.Minute

	if booking.StartTime.Sub(now) <= cutoff {
		return failure.BadRequestFromString(fmt.Sprintf("bookings can only be cancelled more than %d minutes before start", s.cfg.App.Booking.CancellationCutoffMinute)) // nolint:wrapcheck
	}

	return s.transition(ctx, booking, model.StatusCancelled, actor.Name(), map[string]any{
		model.FieldCancelledAt:  now,
		model.FieldCancelReason: req.Reason,
	})
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	booking, err := s.managed(ctx, id, actor)
	if err != nil {
		return err
	}

	if !model.CanTransition(booking.Status, model.StatusConfirmed) {
		return failure.InvalidTransition("booking", booking.Status, "confirmed") // nolint:wrapcheck
	}

	return s.transition(ctx, booking, model.StatusConfirmed, actor.Name(), nil)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	booking, err := s.managed(ctx, id, actor)
	if err != nil {
		return err
	}

	if !model.CanTransition(booking.Status, model.StatusCompleted) {
		return failure.InvalidTransition("booking", booking.Status, "completed") // nolint:wrapcheck
	}

	if s.clock.Now().Before(booking.EndTime) {
		return failure.BadRequestFromString("a booking can only be completed after it ends") // nolint:wrapcheck
	}

	return s.transition(ctx, booking, model.StatusCompleted, actor.Name(), nil)
}

// CompleteFinished marks confirmed bookings whose end has passed as completed.
func (s *serviceImpl) CompleteFinished(ctx context.Context) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteFinished")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.sweep(ctx, model.StatusConfirmed, model.FieldEndTime, model.StatusCompleted, nil)
}

// ExpireUnconfirmed cancels pending bookings whose start has passed.
func (s *serviceImpl) ExpireUnconfirmed(ctx context.Context) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExpireUnconfirmed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.sweep(ctx, model.StatusPending, model.FieldStartTime, model.StatusCancelled, map[string]any{
		model.FieldCancelledAt:  s.clock.Now(),
		model.FieldCancelReason: reasonExpired,
	})
}

func (s *serviceImpl) sweep(ctx context.Context, from, deadlineField, to string, fields map[string]any) (int, error) {
	bookings, err := s.repo.GetAll(ctx,
		gDto.QueryParams{Page: 1, Limit: sweepBatchSize, SortBy: deadlineField, SortDir: gDto.SortDirAsc},
		gDto.And(
			gDto.Filter{Field: model.FieldStatus, Value: from, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: deadlineField, Value: s.clock.Now(), Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings to sweep")

		return 0, fmt.Errorf("failed to get bookings to sweep: %w", err)
	}

	total := 0

	for _, booking := range bookings {
		err = s.transition(ctx, booking, to, constant.ContextSystem, fields)
		if failure.GetCode(err) == http.StatusConflict {
			continue
		}

		if err != nil {
			return total, err
		}

		total++
	}

	return total, nil
}

// transition moves booking to status to. The update only applies while the
// row still has the status that was read, so concurrent transitions of the
// same booking cannot both succeed.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, to, modifiedBy string, fields map[string]any) error {
	updates := map[string]any{model.FieldStatus: to}
	for key, value := range fields {
		updates[key] = value
	}

	affected, err := s.repo.UpdateCount(ctx, shared.ModifiedFields(modifiedBy, updates), gDto.And(
		gDto.Filter{Field: model.FieldID, Value: booking.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, ArgName: argCurrentStatus, Value: booking.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	))
	if err != nil {
		log.Error().Err(err).Str("booking", booking.ID).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return failure.StaleWrite("booking") // nolint:wrapcheck
	}

	booking.Status = to

	if at, ok := updates[model.FieldCancelledAt].(time.Time); ok {
		booking.CancelledAt = &at
	}

	if reason, ok := updates[model.FieldCancelReason].(string); ok {
		booking.CancelReason = reason
	}

	s.publish(ctx, eventFor(to), booking)
	s.invalidate(ctx, booking.ID)

	return nil
}

func eventFor(status string) string {
	switch status {
	case model.StatusConfirmed:
		return model.EventConfirmed
	case model.StatusCancelled:
		return model.EventCancelled
	case model.StatusCompleted:
		return model.EventCompleted
	default:
		return model.EventCreated
	}
}

// publish emits the booking event. The booking is already stored, so a
// failure is logged and not returned.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	message := kafka.Message{
		Key:     booking.CourtID,
		Value:   model.EventFor(eventType, booking, s.clock.Now()),
		Headers: map[string]string{model.EventHeaderType: eventType},
	}

	if err := s.kafka.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.BookingTopic, message); err != nil {
		log.Error().Err(err).Str("event", eventType).Str("booking", booking.ID).Msg("failed to publish booking event")
	}
}

func canManage(venue venueModel.Venue, actor shared.Actor) bool {
	return actor.IsAdmin() || venue.OwnerID == actor.UserID
}

// managed loads a booking the actor may confirm or complete.
func (s *serviceImpl) managed(ctx context.Context, id string, actor shared.Actor) (model.Booking, error) {
	booking, err := s.get(ctx, id)
	if err != nil {
		return booking, err
	}

	if actor.IsAdmin() {
		return booking, nil
	}

	venue, err := s.venue(ctx, booking.VenueID)
	if err != nil {
		return booking, err
	}

	if venue.OwnerID != actor.UserID {
		return booking, failure.Forbidden("you do not own this venue") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) court(ctx context.Context, id string) (courtModel.Court, error) {
	court, err := s.courtRepo.Get(ctx, shared.FilterByID(id, courtModel.FieldID, courtModel.TableName))
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

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}()

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
