package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quickcourt/infras/jwt"
	"quickcourt/internal/domains/auth/model/dto"
	"quickcourt/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.RegisterRequest
		wantRole string
	}{
		{
			name:     "defaults to user role",
			req:      dto.RegisterRequest{Email: " Player@Mail.COM ", FullName: " Player One "},
			wantRole: constant.RoleUser,
		},
		{
			name:     "keeps owner role",
			req:      dto.RegisterRequest{Email: "owner@mail.com", FullName: "Owner", Role: constant.RoleOwner},
			wantRole: constant.RoleOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.req.ToUserModel(constant.ContextGuest, "hashed")

			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.Equal(t, "hashed", user.Password)
			assert.True(t, user.Active)
			assert.Equal(t, constant.ContextGuest, user.CreatedBy)
			assert.Equal(t, user.CreatedAt, user.ModifiedAt)
		})
	}

	req := dto.RegisterRequest{Email: " Player@Mail.COM ", FullName: " Player One "}
	user := req.ToUserModel(constant.ContextGuest, "hashed")
	assert.Equal(t, "player@mail.com", user.Email)
	assert.Equal(t, "Player One", user.FullName)
}
