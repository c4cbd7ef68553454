package jwt_test

import (
	"testing"
	"time"

	"quickcourt/config"
	"quickcourt/infras/jwt"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(clock clockwork.Clock) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "quickcourt"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, clock)
}

func TestGenerateAndValidate(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	svc := newService(clock)

	pair, err := svc.GenerateTokenPair(jwt.Subject{UserID: "user-1", Email: "ana@example.com", Role: "owner"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, jwt.AccessToken, claims.Type)
	assert.Equal(t, claims.ID, claims.TokenID)

	refresh, err := svc.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, refresh.Type)
}

func TestValidateToken_WrongType(t *testing.T) {
	svc := newService(clockwork.NewFakeClock())

	pair, err := svc.GenerateTokenPair(jwt.Subject{UserID: "user-1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken("garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	svc := newService(clock)

	pair, err := svc.GenerateTokenPair(jwt.Subject{UserID: "user-1"})
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	_, err = svc.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrBearerPrefix)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrBearerPrefix)
}
