package di

import (
	"time"

	"quickcourt/config"
	"quickcourt/infras/otel"
	"quickcourt/shared/idempotency"

	"github.com/jonboulle/clockwork"
	goRedis "github.com/redis/go-redis/v9"
)

func provideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func provideIdempotencyStore(client *goRedis.Client, cfg *config.Config, otel otel.Otel) idempotency.Store {
	return idempotency.New(client, time.Duration(cfg.App.Booking.IdempotencyTTLSeconds)*time.Second, otel)
}
