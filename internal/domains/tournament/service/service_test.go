package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quickcourt/config"
	"quickcourt/infras/otel/mocks"
	tournamentMocks "quickcourt/internal/domains/tournament/mocks"
	"quickcourt/internal/domains/tournament/model"
	"quickcourt/internal/domains/tournament/model/dto"
	"quickcourt/internal/domains/tournament/service"
	venueMocks "quickcourt/internal/domains/venue/mocks"
	venueModel "quickcourt/internal/domains/venue/model"
	"quickcourt/shared"
	cacheMocks "quickcourt/shared/cache/mocks"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"
	"quickcourt/shared/timezone"
)

type fixture struct {
	svc           service.Tournament
	repo          *tournamentMocks.MockTournament
	registrations *tournamentMocks.MockRegistration
	venues        *venueMocks.MockVenue
	cache         *cacheMocks.MockRedisCache
}

var now = time.Date(2026, 5, 9, 12, 0, 0, 0, timezone.GetLocation())

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:          tournamentMocks.NewMockTournament(ctrl),
		registrations: tournamentMocks.NewMockRegistration(ctrl),
		venues:        venueMocks.NewMockVenue(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.registrations, f.venues, cfg, f.cache, mocks.NewOtel(), clockwork.NewFakeClockAt(now))

	return f
}

func actorContext(id, role string) context.Context {
	return shared.WithActor(context.Background(), shared.Actor{UserID: id, Role: role})
}

func date(day int) string {
	return timezone.Format(time.Date(2026, 6, day, 9, 0, 0, 0, timezone.GetLocation()), constant.DateFormat)
}

func approvedVenue() venueModel.Venue {
	return venueModel.Venue{ID: "v-1", OwnerID: "owner-1", Status: venueModel.StatusApproved}
}

func upcoming() model.Tournament {
	return model.Tournament{
		ID:                   "t-1",
		VenueID:              "v-1",
		StartDate:            time.Date(2026, 6, 10, 9, 0, 0, 0, timezone.GetLocation()),
		EndDate:              time.Date(2026, 6, 12, 18, 0, 0, 0, timezone.GetLocation()),
		RegistrationDeadline: time.Date(2026, 6, 1, 0, 0, 0, 0, timezone.GetLocation()),
		MaxParticipants:      16,
		Status:               model.StatusUpcoming,
	}
}

func TestTournamentService_Create(t *testing.T) {
	valid := dto.CreateTournamentRequest{
		VenueID:              "v-1",
		Name:                 "Summer Open",
		Sport:                "badminton",
		StartDate:            date(10),
		EndDate:              date(12),
		RegistrationDeadline: date(1),
		MaxParticipants:      16,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       func() dto.CreateTournamentRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "ends before it starts",
			ctx:  actorContext("owner-1", constant.RoleOwner),
			req: func() dto.CreateTournamentRequest {
				req := valid
				req.EndDate = date(9)

				return req
			},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "deadline after start",
			ctx:  actorContext("owner-1", constant.RoleOwner),
			req: func() dto.CreateTournamentRequest {
				req := valid
				req.RegistrationDeadline = date(11)

				return req
			},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "venue of another owner",
			ctx:  actorContext("owner-2", constant.RoleOwner),
			req:  func() dto.CreateTournamentRequest { return valid },
			setupMock: func(f fixture) {
				f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "venue not approved",
			ctx:  actorContext("owner-1", constant.RoleOwner),
			req:  func() dto.CreateTournamentRequest { return valid },
			setupMock: func(f fixture) {
				venue := approvedVenue()
				venue.Status = venueModel.StatusPending
				f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venue, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "created by admin",
			ctx:  actorContext("admin-1", constant.RoleAdmin),
			req:  func() dto.CreateTournamentRequest { return valid },
			setupMock: func(f fixture) {
				f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, tt.req())

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusUpcoming, res.Status)
			assert.NotEmpty(t, res.ID)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestTournamentService_Update(t *testing.T) {
	t.Run("already started", func(t *testing.T) {
		f := newFixture(t)

		tournament := upcoming()
		tournament.Status = model.StatusOngoing

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tournament, nil)
		f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)

		err := f.svc.Update(actorContext("owner-1", constant.RoleOwner), dto.UpdateTournamentRequest{Name: "Renamed"}, "t-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("capacity below registrations", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
		f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
		f.registrations.EXPECT().Count(gomock.Any(), gomock.Any()).Return(8, nil)

		err := f.svc.Update(actorContext("owner-1", constant.RoleOwner), dto.UpdateTournamentRequest{MaxParticipants: 4}, "t-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("moves the schedule", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
		f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			end, ok := fields[model.FieldEndDate].(time.Time)
			require.True(t, ok)
			assert.Equal(t, 14, end.In(timezone.GetLocation()).Day())
			assert.Equal(t, "owner-1", fields[constant.FieldModifiedBy])

			return nil
		})

		err := f.svc.Update(actorContext("owner-1", constant.RoleOwner), dto.UpdateTournamentRequest{EndDate: date(14)}, "t-1")

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestTournamentService_Cancel(t *testing.T) {
	t.Run("already completed", func(t *testing.T) {
		f := newFixture(t)

		tournament := upcoming()
		tournament.Status = model.StatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tournament, nil)
		f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)

		err := f.svc.Cancel(actorContext("owner-1", constant.RoleOwner), "t-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
		f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		err := f.svc.Cancel(actorContext("owner-1", constant.RoleOwner), "t-1")

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestTournamentService_Register(t *testing.T) {
	req := dto.RegisterRequest{TeamName: "Smash Bros", ContactPhone: "08123456789"}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "guest",
			ctx:       context.Background(),
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "tournament cancelled",
			ctx:  actorContext("user-1", constant.RoleUser),
			setupMock: func(f fixture) {
				tournament := upcoming()
				tournament.Status = model.StatusCancelled
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tournament, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "deadline passed",
			ctx:  actorContext("user-1", constant.RoleUser),
			setupMock: func(f fixture) {
				tournament := upcoming()
				tournament.RegistrationDeadline = now.Add(-time.Hour)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tournament, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "full",
			ctx:  actorContext("user-1", constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
				f.repo.EXPECT().Register(gomock.Any(), gomock.Any()).Return(failure.Conflict("tournament is full"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "registered",
			ctx:  actorContext("user-1", constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
				f.repo.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, registration model.Registration) error {
					assert.Equal(t, "t-1", registration.TournamentID)
					assert.Equal(t, "user-1", registration.UserID)
					assert.Equal(t, model.RegistrationStatusRegistered, registration.Status)

					return nil
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Register(tt.ctx, req, "t-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Smash Bros", res.TeamName)
		})
	}
}

func TestTournamentService_Withdraw(t *testing.T) {
	t.Run("after start", func(t *testing.T) {
		f := newFixture(t)

		tournament := upcoming()
		tournament.StartDate = now.Add(-time.Hour)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tournament, nil)

		err := f.svc.Withdraw(actorContext("user-1", constant.RoleUser), "t-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not registered", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
		f.registrations.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := f.svc.Withdraw(actorContext("user-1", constant.RoleUser), "t-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("withdrawn", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
		f.registrations.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
			assert.Equal(t, model.RegistrationStatusWithdrawn, fields[model.FieldRegistrationStatus])

			return 1, nil
		})

		err := f.svc.Withdraw(actorContext("user-1", constant.RoleUser), "t-1")

		require.NoError(t, err)
	})
}

func TestTournamentService_GetRegistrations(t *testing.T) {
	t.Run("not the host", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
		f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)

		_, err := f.svc.GetRegistrations(actorContext("user-1", constant.RoleUser), "t-1", gDto.QueryParams{Page: 1, Limit: 10})

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("host", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming(), nil)
		f.venues.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
		f.registrations.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.registrations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Registration{{ID: "r-1", TeamName: "Smash Bros"}}, nil)

		res, err := f.svc.GetRegistrations(actorContext("owner-1", constant.RoleOwner), "t-1", gDto.QueryParams{Page: 1, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Registrations, 1)
	})
}

func TestTournamentService_Advance(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(2), nil)
	f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

	total, err := f.svc.Advance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, total)

	time.Sleep(10 * time.Millisecond)
}
