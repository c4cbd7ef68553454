package worker

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"quickcourt/config"
	"quickcourt/infras/kafka"
	"quickcourt/infras/otel"
	"quickcourt/infras/postgres"
	"quickcourt/internal/handlers/notification"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Worker consumes booking events and runs the sweeper until SIGTERM.
type Worker struct {
	cfg          *config.Config
	kafka        kafka.Client
	notification notification.Handler
	sweeper      *Sweeper
	db           *postgres.Connection
	otel         otel.Otel
}

func New(
	cfg *config.Config,
	kafka kafka.Client,
	notification notification.Handler,
	sweeper *Sweeper,
	db *postgres.Connection,
	otel otel.Otel,
) *Worker {
	return &Worker{
		cfg:          cfg,
		kafka:        kafka,
		notification: notification,
		sweeper:      sweeper,
		db:           db,
		otel:         otel,
	}
}

func (w *Worker) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.run(ctx); err != nil {
		log.Error().Err(err).Msg("Worker stopped with error")
	}

	w.close()
}

func (w *Worker) run(ctx context.Context) error {
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return w.sweeper.Run(gctx)
	})

	group.Go(func() error {
		log.Info().Str("topic", w.cfg.Kafka.BookingTopic).Msg("Consuming booking events")

		err := w.kafka.Consume(gctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.BookingTopic, w.notification.HandleBookingEvent)
		if errors.Is(err, kafka.ErrDisabled) {
			log.Warn().Msg("Kafka disabled, booking notifications are off")

			return nil
		}

		return err //nolint:wrapcheck
	})

	return group.Wait() //nolint:wrapcheck
}

func (w *Worker) close() {
	if err := w.kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	if err := w.db.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database connections")
	}

	if err := w.otel.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Worker shut down")
}
