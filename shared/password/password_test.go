package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quickcourt/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		cost     int
		err      error
	}{
		{name: "valid password", password: "courtside-99", cost: bcrypt.MinCost},
		{name: "cost out of range uses the default", password: "courtside-99", cost: 0},
		{name: "empty password", password: "", cost: bcrypt.MinCost, err: password.ErrEmptyPassword},
		{name: "too long", password: strings.Repeat("a", password.MaxLength+1), cost: bcrypt.MinCost, err: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password, tt.cost)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)

			if tt.cost == 0 {
				assert.Equal(t, bcrypt.DefaultCost, cost)
			} else {
				assert.Equal(t, tt.cost, cost)
			}
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("courtside-99", bcrypt.MinCost)
	require.NoError(t, err)

	second, err := password.Hash("courtside-99", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("courtside-99", bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		assert.NoError(t, password.Verify("courtside-99", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.ErrorIs(t, password.Verify("baseline-01", hash), password.ErrInvalidPassword)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.ErrorIs(t, password.Verify("", hash), password.ErrInvalidPassword)
		assert.ErrorIs(t, password.Verify("courtside-99", ""), password.ErrInvalidPassword)
	})

	t.Run("malformed hash", func(t *testing.T) {
		err := password.Verify("courtside-99", "not-a-bcrypt-hash")
		assert.ErrorIs(t, err, password.ErrVerifyingPassword)
	})
}
