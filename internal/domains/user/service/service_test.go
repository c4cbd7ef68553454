package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quickcourt/config"
	"quickcourt/infras/otel/mocks"
	userMocks "quickcourt/internal/domains/user/mocks"
	"quickcourt/internal/domains/user/model"
	"quickcourt/internal/domains/user/model/dto"
	"quickcourt/internal/domains/user/service"
	"quickcourt/shared"
	cacheMocks "quickcourt/shared/cache/mocks"
	"quickcourt/shared/constant"
	gDto "quickcourt/shared/dto"
	"quickcourt/shared/failure"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func adminContext() context.Context {
	return shared.WithActor(context.Background(), shared.Actor{UserID: "admin-1", Role: constant.RoleAdmin})
}

func TestUserService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache miss loads from repository",
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.User{
					{ID: "u-1", Email: "a@mail.com", Role: constant.RoleUser, Active: true},
					{ID: "u-2", Email: "b@mail.com", Role: constant.RoleOwner, Active: false},
				}, nil)
			},
			wantTotal: 2,
		},
		{
			name: "cache hit skips repository",
			setupMock: func(_ *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.GetUsersResponse)
						res.TotalData = 7

						return nil
					})
			},
			wantTotal: 7,
		},
		{
			name: "repository error",
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			res, err := svc.GetAll(adminContext(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, repo, cache := newService(t)
		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(adminContext(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("found", func(t *testing.T) {
		svc, repo, cache := newService(t)
		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Email: "a@mail.com", Active: true}, nil)

		res, err := svc.Get(adminContext(), "u-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "a@mail.com", res.Email)
		assert.True(t, res.Active)
	})
}

func TestUserService_Update(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		req       dto.UpdateUserRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name:      "empty request",
			id:        "u-1",
			setupMock: func(_ *userMocks.MockUser) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "user not found",
			id:   "u-1",
			req:  dto.UpdateUserRequest{FullName: "Jane"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "admin demoting themselves",
			id:   "admin-1",
			req:  dto.UpdateUserRequest{Role: constant.RoleUser},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "admin-1", Role: constant.RoleAdmin}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "successful update",
			id:   "u-1",
			req:  dto.UpdateUserRequest{FullName: "Jane", Role: constant.RoleOwner},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Role: constant.RoleUser}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Jane", fields[model.FieldFullName])
						assert.Equal(t, constant.RoleOwner, fields[model.FieldRole])
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			err := svc.Update(adminContext(), tt.req, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestUserService_Ban(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name:      "cannot ban self",
			id:        "admin-1",
			setupMock: func(_ *userMocks.MockUser) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "cannot ban another admin",
			id:   "admin-2",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "admin-2", Role: constant.RoleAdmin}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "bans a regular user",
			id:   "u-1",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Role: constant.RoleUser, Active: true}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, fields[model.FieldActive])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			err := svc.Ban(adminContext(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestUserService_Unban(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Active: false}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, true, fields[model.FieldActive])

			return nil
		})

	err := svc.Unban(adminContext(), "u-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}
