package service

import (
	"context"
	"fmt"
	"sync"

	"quickcourt/infras/otel"
	bookingModel "quickcourt/internal/domains/booking/model"
	bookingRepo "quickcourt/internal/domains/booking/repository"
	courtRepo "quickcourt/internal/domains/court/repository"
	"quickcourt/internal/domains/dashboard/model/dto"
	venueModel "quickcourt/internal/domains/venue/model"
	venueRepo "quickcourt/internal/domains/venue/repository"
	"quickcourt/shared"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// RevenueStatuses are the booking statuses that count towards revenue.
var RevenueStatuses = []string{bookingModel.StatusConfirmed, bookingModel.StatusCompleted}

var venueStatuses = []string{venueModel.StatusPending, venueModel.StatusApproved, venueModel.StatusRejected}

type Dashboard interface {
	Owner(ctx context.Context) (dto.OwnerSummary, error)
}

type serviceImpl struct {
	venueRepo   venueRepo.Venue
	courtRepo   courtRepo.Court
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
}

func New(venueRepo venueRepo.Venue, courtRepo courtRepo.Court, bookingRepo bookingRepo.Booking, otel otel.Otel) Dashboard {
	return &serviceImpl{
		venueRepo:   venueRepo,
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

// Owner runs the summary queries concurrently and fails if any of them fails.
func (s *serviceImpl) Owner(ctx context.Context) (res dto.OwnerSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Owner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	if actor.IsGuest() {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	res = dto.OwnerSummary{
		Venues:   make(map[string]int, len(venueStatuses)),
		Bookings: map[string]int{},
	}

	var mu sync.Mutex

	group, gctx := errgroup.WithContext(ctx)

	for _, status := range venueStatuses {
		group.Go(func() error {
			total, err := s.venueRepo.Count(gctx, gDto.And(
				gDto.Filter{Field: venueModel.FieldOwnerID, Value: actor.UserID, Operator: gDto.FilterOperatorEq, Table: venueModel.TableName},
				gDto.Filter{Field: venueModel.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: venueModel.TableName},
			))
			if err != nil {
				return fmt.Errorf("failed to count %s venues: %w", status, err)
			}

			mu.Lock()
			res.Venues[status] = total
			mu.Unlock()

			return nil
		})
	}

	group.Go(func() error {
		total, err := s.courtRepo.CountByOwner(gctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to count courts: %w", err)
		}

		mu.Lock()
		res.Courts = total
		mu.Unlock()

		return nil
	})

	group.Go(func() error {
		counts, err := s.bookingRepo.CountByStatus(gctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to count bookings: %w", err)
		}

		mu.Lock()
		for _, count := range counts {
			res.Bookings[count.Status] = count.Total
		}
		mu.Unlock()

		return nil
	})

	group.Go(func() error {
		revenue, err := s.bookingRepo.Revenue(gctx, actor.UserID, RevenueStatuses)
		if err != nil {
			return fmt.Errorf("failed to sum revenue: %w", err)
		}

		mu.Lock()
		res.Revenue = revenue
		mu.Unlock()

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Str("owner", actor.UserID).Msg("failed to build owner dashboard")

		return dto.OwnerSummary{}, err
	}

	return res, nil
}
