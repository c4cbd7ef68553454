package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quickcourt/config"
	"quickcourt/infras/otel/mocks"
	bookingMocks "quickcourt/internal/domains/booking/service/mocks"
	tournamentMocks "quickcourt/internal/domains/tournament/service/mocks"
	"quickcourt/shared"
	"quickcourt/shared/constant"
	"quickcourt/transport/worker"
)

type sweeperFixture struct {
	bookings    *bookingMocks.MockBooking
	tournaments *tournamentMocks.MockTournament
	clock       *clockwork.FakeClock
	sweeper     *worker.Sweeper
}

func newSweeperFixture(t *testing.T) *sweeperFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &sweeperFixture{
		bookings:    bookingMocks.NewMockBooking(ctrl),
		tournaments: tournamentMocks.NewMockTournament(ctrl),
		clock:       clockwork.NewFakeClock(),
	}

	cfg := &config.Config{}
	cfg.Worker.SweepIntervalSeconds = 30

	f.sweeper = worker.NewSweeper(cfg, f.bookings, f.tournaments, mocks.NewOtel(), f.clock)

	return f
}

func TestSweep(t *testing.T) {
	t.Run("runs every pass as the system admin", func(t *testing.T) {
		f := newSweeperFixture(t)

		assertSystem := func(ctx context.Context) {
			actor := shared.ActorFromContext(ctx)
			assert.Equal(t, constant.ContextSystem, actor.UserID)
			assert.Equal(t, constant.RoleAdmin, actor.Role)
		}

		gomock.InOrder(
			f.bookings.EXPECT().CompleteFinished(gomock.Any()).DoAndReturn(func(ctx context.Context) (int, error) {
				assertSystem(ctx)
				return 2, nil
			}),
			f.bookings.EXPECT().ExpireUnconfirmed(gomock.Any()).DoAndReturn(func(ctx context.Context) (int, error) {
				assertSystem(ctx)
				return 1, nil
			}),
			f.tournaments.EXPECT().Advance(gomock.Any()).DoAndReturn(func(ctx context.Context) (int, error) {
				assertSystem(ctx)
				return 0, nil
			}),
		)

		f.sweeper.Sweep(context.Background())
	})

	t.Run("a failing pass does not stop the others", func(t *testing.T) {
		f := newSweeperFixture(t)

		f.bookings.EXPECT().CompleteFinished(gomock.Any()).Return(0, errors.New("database is down"))
		f.bookings.EXPECT().ExpireUnconfirmed(gomock.Any()).Return(0, errors.New("database is down"))
		f.tournaments.EXPECT().Advance(gomock.Any()).Return(3, nil)

		f.sweeper.Sweep(context.Background())
	})
}

func TestSweeperRun(t *testing.T) {
	f := newSweeperFixture(t)

	swept := make(chan struct{}, 2)

	f.bookings.EXPECT().CompleteFinished(gomock.Any()).Return(0, nil).Times(2)
	f.bookings.EXPECT().ExpireUnconfirmed(gomock.Any()).Return(0, nil).Times(2)
	f.tournaments.EXPECT().Advance(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
		swept <- struct{}{}
		return 0, nil
	}).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- f.sweeper.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()

	select {
	case <-swept:
	case <-waitCtx.Done():
		t.Fatal("initial sweep did not run")
	}

	require.NoError(t, f.clock.BlockUntilContext(waitCtx, 1))
	f.clock.Advance(30 * time.Second)

	select {
	case <-swept:
	case <-waitCtx.Done():
		t.Fatal("tick did not trigger a sweep")
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-waitCtx.Done():
		t.Fatal("sweeper did not stop")
	}
}
