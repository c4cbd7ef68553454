package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quickcourt/config"
	"quickcourt/infras/otel/mocks"
	"quickcourt/infras/s3"
	s3Mocks "quickcourt/infras/s3/mocks"
	venueMocks "quickcourt/internal/domains/venue/mocks"
	"quickcourt/internal/domains/venue/model"
	"quickcourt/internal/domains/venue/model/dto"
	"quickcourt/internal/domains/venue/service"
	"quickcourt/shared"
	cacheMocks "quickcourt/shared/cache/mocks"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"
)

type fixture struct {
	svc   service.Venue
	repo  *venueMocks.MockVenue
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:  venueMocks.NewMockVenue(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func ownerContext(id string) context.Context {
	return shared.WithActor(context.Background(), shared.Actor{UserID: id, Role: constant.RoleOwner})
}

func adminContext() context.Context {
	return shared.WithActor(context.Background(), shared.Actor{UserID: "admin-1", Role: constant.RoleAdmin})
}

type fakeFile struct {
	*strings.Reader
}

func (fakeFile) Close() error { return nil }

func TestVenueService_Create(t *testing.T) {
	req := dto.CreateVenueRequest{
		Name:    "Smash Arena",
		Address: "12 Court Road",
		City:    "Pune",
		Sports:  []string{"badminton"},
	}

	t.Run("pending without image", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, venue model.Venue) error {
				assert.Equal(t, model.StatusPending, venue.Status)
				assert.Equal(t, "owner-1", venue.OwnerID)
				assert.Empty(t, venue.Image)

				return nil
			})

		res, err := f.svc.Create(ownerContext("owner-1"), req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, []string{}, res.Amenities)
	})

	t.Run("image removed when insert fails", func(t *testing.T) {
		f := newFixture(t)

		withImage := req
		withImage.Image = &multipart.FileHeader{Filename: "front.png", Size: 4}
		withImage.ImageFile = fakeFile{strings.NewReader("data")}

		f.s3.EXPECT().Upload(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, object s3.Object) (string, error) {
				assert.Equal(t, model.EntityName, object.Directory)
				assert.True(t, strings.HasSuffix(object.FileName, ".png"))

				return "https://cdn.example.com/venue/x.png", nil
			})
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		f.s3.EXPECT().Delete(gomock.Any(), "https://cdn.example.com/venue/x.png").Return(nil)

		_, err := f.svc.Create(ownerContext("owner-1"), withImage)

		assert.Error(t, err)
	})
}

func TestVenueService_Get(t *testing.T) {
	pending := model.Venue{ID: "v-1", OwnerID: "owner-1", Status: model.StatusPending}

	tests := []struct {
		name     string
		ctx      context.Context
		venue    model.Venue
		wantCode int
	}{
		{name: "approved visible to guests", ctx: context.Background(), venue: model.Venue{ID: "v-1", Status: model.StatusApproved}},
		{name: "pending hidden from guests", ctx: context.Background(), venue: pending, wantCode: http.StatusNotFound},
		{name: "pending hidden from other owners", ctx: ownerContext("owner-2"), venue: pending, wantCode: http.StatusNotFound},
		{name: "pending visible to its owner", ctx: ownerContext("owner-1"), venue: pending},
		{name: "pending visible to admins", ctx: adminContext(), venue: pending},
		{name: "missing", ctx: adminContext(), venue: model.Venue{}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.venue, nil)

			res, err := f.svc.Get(tt.ctx, "v-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "v-1", res.ID)
		})
	}
}

func TestVenueService_Update(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateVenueRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "empty request",
			ctx:       ownerContext("owner-1"),
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not the owner",
			ctx:  ownerContext("owner-2"),
			req:  dto.UpdateVenueRequest{Name: "New name"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: "v-1", OwnerID: "owner-1", Status: model.StatusApproved}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "rejected venue is resubmitted",
			ctx:  ownerContext("owner-1"),
			req:  dto.UpdateVenueRequest{Name: "New name"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: "v-1", OwnerID: "owner-1", Status: model.StatusRejected, RejectionReason: "blurry photos"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "New name", fields[model.FieldName])
						assert.Equal(t, model.StatusPending, fields[model.FieldStatus])
						assert.Equal(t, "", fields[model.FieldRejectionReason])

						return nil
					})
			},
		},
		{
			name: "approved venue keeps its status",
			ctx:  ownerContext("owner-1"),
			req:  dto.UpdateVenueRequest{City: "Mumbai"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: "v-1", OwnerID: "owner-1", Status: model.StatusApproved}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						_, ok := fields[model.FieldStatus]
						assert.False(t, ok)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(tt.ctx, tt.req, "v-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestVenueService_Delete(t *testing.T) {
	t.Run("active bookings block delete", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: "v-1", OwnerID: "owner-1"}, nil)
		f.repo.EXPECT().DeleteUnlessBooked(gomock.Any(), "v-1").Return(failure.Conflict("venue has active bookings"))

		err := f.svc.Delete(ownerContext("owner-1"), "v-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("deletes venue and image", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: "v-1", OwnerID: "owner-1", Image: "https://cdn/venue/a.png"}, nil)
		f.repo.EXPECT().DeleteUnlessBooked(gomock.Any(), "v-1").Return(nil)
		f.s3.EXPECT().Delete(gomock.Any(), "https://cdn/venue/a.png").Return(nil)

		err := f.svc.Delete(ownerContext("owner-1"), "v-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestVenueService_Review(t *testing.T) {
	tests := []struct {
		name      string
		review    func(svc service.Venue) error
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:   "approve pending venue",
			review: func(svc service.Venue) error { return svc.Approve(adminContext(), "v-1") },
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, model.StatusPending, args["current_status"])
						assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])

						return 1, nil
					})
			},
		},
		{
			name:   "reject stores the reason",
			review: func(svc service.Venue) error { return svc.Reject(adminContext(), dto.RejectVenueRequest{Reason: "no photos"}, "v-1") },
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusRejected, fields[model.FieldStatus])
						assert.Equal(t, "no photos", fields[model.FieldRejectionReason])

						return 1, nil
					})
			},
		},
		{
			name:   "already reviewed",
			review: func(svc service.Venue) error { return svc.Approve(adminContext(), "v-1") },
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: "v-1", Status: model.StatusApproved}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "missing venue",
			review: func(svc service.Venue) error { return svc.Approve(adminContext(), "v-1") },
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := tt.review(f.svc)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
