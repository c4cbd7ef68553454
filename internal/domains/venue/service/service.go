package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"quickcourt/config"
	"quickcourt/infras/otel"
	"quickcourt/infras/s3"
	"quickcourt/internal/domains/venue/model"
	"quickcourt/internal/domains/venue/model/dto"
	"quickcourt/internal/domains/venue/repository"
	"quickcourt/shared"
	"quickcourt/shared/cache"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	cacheGetVenue    = "venue:get"
	cacheGetAllVenue = "venue:gets"
	cacheCountVenue  = "venue:count"

	argCurrentStatus = "current_status"
)

type Venue interface {
	Create(ctx context.Context, req dto.CreateVenueRequest) (dto.VenueResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVenuesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.VenueResponse, error)
	Update(ctx context.Context, req dto.UpdateVenueRequest, id string) error
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, req dto.RejectVenueRequest, id string) error
}

type serviceImpl struct {
	repo  repository.Venue
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
	group singleflight.Group
}

func New(repo repository.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Venue {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVenueRequest) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	imageURL := constant.Empty
	if req.Image != nil {
		imageURL, err = s.s3.Upload(ctx, imageObject(req.Image, req.ImageFile))
		if err != nil {
			log.Error().Err(err).Msg("failed to upload venue image")

			return res, fmt.Errorf("failed to upload image: %w", err)
		}
	}

	venue := req.ToModel(actor.UserID, imageURL)

	if err = s.repo.Insert(ctx, venue); err != nil {
		log.Error().Err(err).Msg("failed to create venue")
		s.discardImage(ctx, imageURL)

		return res, fmt.Errorf("failed to create venue: %w", err)
	}

	log.Info().Str("venue", venue.ID).Str("owner", actor.UserID).Msg("venue submitted for approval")

	s.invalidateLists(ctx)

	res.FromModel(venue)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVenue, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venues")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count venues")

		return res, fmt.Errorf("failed to count venues: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get venues")

		return res, fmt.Errorf("failed to get venues: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venues to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVenue, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venue count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count venues")

		return res, fmt.Errorf("failed to count venues: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venue count to cache")
		}
	}()

	return res, nil
}

// Get returns approved venues to everyone. Pending and rejected venues are
// visible to their owner and to admins only.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetVenue, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		loaded, loadErr, _ := s.group.Do(cacheKey, func() (any, error) {
			return s.load(context.WithoutCancel(ctx), id, cacheKey)
		})
		if loadErr != nil {
			return res, loadErr // nolint:wrapcheck
		}

		res, _ = loaded.(dto.VenueResponse)
	}

	actor := shared.ActorFromContext(ctx)
	if res.Status != model.StatusApproved && !actor.IsAdmin() && actor.UserID != res.OwnerID {
		return dto.VenueResponse{}, failure.NotFound("venue") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id, cacheKey string) (res dto.VenueResponse, err error) {
	venue, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(venue)

	go func() {
		if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venue to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVenueRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor := shared.ActorFromContext(ctx)

	current, err := s.owned(ctx, id, actor)
	if err != nil {
		return err
	}

	imageURL := constant.Empty
	if req.Image != nil {
		imageURL, err = s.s3.Upload(ctx, imageObject(req.Image, req.ImageFile))
		if err != nil {
			log.Error().Err(err).Msg("failed to upload venue image")

			return fmt.Errorf("failed to upload image: %w", err)
		}
	}

	updatedFields := shared.TransformFields(req, actor.Name())
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if current.Status == model.StatusRejected {
		updatedFields[model.FieldStatus] = model.StatusPending
		updatedFields[model.FieldRejectionReason] = constant.Empty
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update venue")
		s.discardImage(ctx, imageURL)

		return fmt.Errorf("failed to update venue: %w", err)
	}

	if imageURL != constant.Empty {
		s.discardImage(ctx, current.Image)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.owned(ctx, id, shared.ActorFromContext(ctx))
	if err != nil {
		return err
	}

	if err = s.repo.DeleteUnlessBooked(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete venue")

		return fmt.Errorf("failed to delete venue: %w", err)
	}

	s.discardImage(ctx, current.Image)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.review(ctx, id, map[string]any{
		model.FieldStatus:          model.StatusApproved,
		model.FieldRejectionReason: constant.Empty,
	})
}

func (s *serviceImpl) Reject(ctx context.Context, req dto.RejectVenueRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.review(ctx, id, map[string]any{
		model.FieldStatus:          model.StatusRejected,
		model.FieldRejectionReason: req.Reason,
	})
}

// review moves a pending venue to its reviewed status. The status guard lives
// in the UPDATE so two admins cannot review the same venue twice.
func (s *serviceImpl) review(ctx context.Context, id string, fields map[string]any) error {
	actor := shared.ActorFromContext(ctx)

	filter := gDto.And(
		gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, ArgName: argCurrentStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	)

	affected, err := s.repo.UpdateCount(ctx, shared.ModifiedFields(actor.Name(), fields), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to review venue")

		return fmt.Errorf("failed to review venue: %w", err)
	}

	if affected == 0 {
		if _, err := s.get(ctx, id); err != nil {
			return err
		}

		return failure.Conflict("venue is not pending review") // nolint:wrapcheck
	}

	log.Info().Str("venue", id).Any("status", fields[model.FieldStatus]).Str("by", actor.UserID).Msg("venue reviewed")

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Venue, error) {
	venue, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, failure.NotFound("venue") // nolint:wrapcheck
	}

	return venue, nil
}

func (s *serviceImpl) owned(ctx context.Context, id string, actor shared.Actor) (model.Venue, error) {
	venue, err := s.get(ctx, id)
	if err != nil {
		return venue, err
	}

	if venue.OwnerID != actor.UserID {
		return venue, failure.Forbidden("you do not own this venue") // nolint:wrapcheck
	}

	return venue, nil
}

func (s *serviceImpl) discardImage(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	if err := s.s3.Delete(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to delete venue image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVenue, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete venue from cache")
		}
	}()

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVenue)
		shared.InvalidateCaches(c, s.cache, cacheCountVenue)
	}()
}

func imageObject(header *multipart.FileHeader, file multipart.File) s3.Object {
	return s3.Object{
		Directory:   model.EntityName,
		FileName:    uuid.NewString() + filepath.Ext(header.Filename),
		ContentType: header.Header.Get(constant.RequestHeaderContentType),
		Size:        header.Size,
		Body:        file,
	}
}
