//go:build wireinject
// +build wireinject

package di

import (
	"quickcourt/config"
	"quickcourt/infras/jwt"
	"quickcourt/infras/kafka"
	"quickcourt/infras/otel"
	"quickcourt/infras/postgres"
	"quickcourt/infras/redis"
	"quickcourt/infras/s3"
	"quickcourt/permissions"
	"quickcourt/shared/cache"
	"quickcourt/transport/http"
	"quickcourt/transport/http/middleware"
	"quickcourt/transport/http/router"
	"quickcourt/transport/worker"

	"github.com/google/wire"

	authService "quickcourt/internal/domains/auth/service"
	bookingRepository "quickcourt/internal/domains/booking/repository"
	bookingService "quickcourt/internal/domains/booking/service"
	courtRepository "quickcourt/internal/domains/court/repository"
	courtService "quickcourt/internal/domains/court/service"
	dashboardService "quickcourt/internal/domains/dashboard/service"
	tournamentRepository "quickcourt/internal/domains/tournament/repository"
	tournamentService "quickcourt/internal/domains/tournament/service"
	userRepository "quickcourt/internal/domains/user/repository"
	userService "quickcourt/internal/domains/user/service"
	venueRepository "quickcourt/internal/domains/venue/repository"
	venueService "quickcourt/internal/domains/venue/service"

	authHandler "quickcourt/internal/handlers/auth"
	bookingHandler "quickcourt/internal/handlers/booking"
	courtHandler "quickcourt/internal/handlers/court"
	dashboardHandler "quickcourt/internal/handlers/dashboard"
	notificationHandler "quickcourt/internal/handlers/notification"
	tournamentHandler "quickcourt/internal/handlers/tournament"
	userHandler "quickcourt/internal/handlers/user"
	venueHandler "quickcourt/internal/handlers/venue"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	provideClock,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	provideIdempotencyStore,
)

var repositories = wire.NewSet(
	userRepository.New,
	venueRepository.New,
	courtRepository.New,
	bookingRepository.New,
	tournamentRepository.New,
	tournamentRepository.NewRegistration,
)

var domains = wire.NewSet(
	repositories,
	authService.New,
	userService.New,
	venueService.New,
	courtService.New,
	bookingService.New,
	tournamentService.New,
	dashboardService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	venueHandler.New,
	courtHandler.New,
	bookingHandler.New,
	tournamentHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		repositories,
		bookingService.New,
		tournamentService.New,
		notificationHandler.New,
		worker.NewSweeper,
		worker.New,
	)

	return &worker.Worker{}
}
