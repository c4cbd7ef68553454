package worker

import (
	"context"
	"time"

	"quickcourt/config"
	"quickcourt/infras/otel"
	bookingService "quickcourt/internal/domains/booking/service"
	tournamentService "quickcourt/internal/domains/tournament/service"
	"quickcourt/shared"
	"quickcourt/shared/constant"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const defaultSweepInterval = time.Minute

// Sweeper moves bookings and tournaments along as time passes.
type Sweeper struct {
	booking    bookingService.Booking
	tournament tournamentService.Tournament
	otel       otel.Otel
	clock      clockwork.Clock
	interval   time.Duration
}

func NewSweeper(
	cfg *config.Config,
	booking bookingService.Booking,
	tournament tournamentService.Tournament,
	otel otel.Otel,
	clock clockwork.Clock,
) *Sweeper {
	interval := time.Duration(cfg.Worker.SweepIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &Sweeper{
		booking:    booking,
		tournament: tournament,
		otel:       otel,
		clock:      clock,
		interval:   interval,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval).Msg("sweeper started")

	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("sweeper stopped")

			return nil
		case <-ticker.Chan():
			s.Sweep(ctx)
		}
	}
}

// Sweep runs every pass once. A failing pass is logged and does not stop the others.
func (s *Sweeper) Sweep(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".Sweep")
	defer scope.End()

	ctx = shared.WithActor(ctx, shared.Actor{UserID: constant.ContextSystem, Role: constant.RoleAdmin})

	passes := []struct {
		name string
		run  func(context.Context) (int, error)
	}{
		{name: "complete finished bookings", run: s.booking.CompleteFinished},
		{name: "expire unconfirmed bookings", run: s.booking.ExpireUnconfirmed},
		{name: "advance tournaments", run: s.tournament.Advance},
	}

	for _, pass := range passes {
		count, err := pass.run(ctx)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("pass", pass.name).Msg("sweep pass failed")

			continue
		}

		if count > 0 {
			log.Info().Int("count", count).Str("pass", pass.name).Msg("sweep pass applied")
		}
	}
}
