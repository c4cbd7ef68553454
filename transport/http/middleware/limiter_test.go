package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quickcourt/config"
	"quickcourt/infras/otel/mocks"
	cacheMocks "quickcourt/shared/cache/mocks"
	"quickcourt/shared/constant"
)

func newLimiter(t *testing.T, enable bool) (*appMiddleware, *cacheMocks.MockRedisCache) {
	t.Helper()

	cache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return &appMiddleware{otel: mocks.NewOtel(), config: cfg, cache: cache}, cache
}

func serveLimited(a *appMiddleware) *httptest.ResponseRecorder {
	handler := a.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	request := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
	request.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")
	request.Header.Set(constant.RequestHeaderUserAgent, "quickcourt-test")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

func TestRateLimit(t *testing.T) {
	t.Run("disabled limiter never touches redis", func(t *testing.T) {
		a, _ := newLimiter(t, false)

		assert.Equal(t, http.StatusNoContent, serveLimited(a).Code)
	})

	t.Run("within the window", func(t *testing.T) {
		a, cache := newLimiter(t, true)
		cache.EXPECT().Increment(gomock.Any(), "limiter:203.0.113.7:quickcourt-test", 60).Return(int64(1), nil)

		recorder := serveLimited(a)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Equal(t, "1", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("over the limit", func(t *testing.T) {
		a, cache := newLimiter(t, true)
		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)

		recorder := serveLimited(a)

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.Equal(t, "0", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", recorder.Header().Get(constant.RequestHeaderRetryAfter))
	})

	t.Run("redis failure lets the request through", func(t *testing.T) {
		a, cache := newLimiter(t, true)
		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("dial tcp: connection refused"))

		assert.Equal(t, http.StatusNoContent, serveLimited(a).Code)
	})
}

func TestGetClientIP(t *testing.T) {
	a := &appMiddleware{}

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded for", headers: map[string]string{constant.RequestHeaderForwardedFor: " 198.51.100.2 , 10.0.0.1"}, want: "198.51.100.2"},
		{name: "real ip", headers: map[string]string{constant.RequestHeaderRealIP: "198.51.100.3"}, want: "198.51.100.3"},
		{name: "socket address", remote: "192.0.2.10:54321", want: "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}

			if tt.remote != "" {
				request.RemoteAddr = tt.remote
			}

			assert.Equal(t, tt.want, a.getClientIP(request))
		})
	}
}
