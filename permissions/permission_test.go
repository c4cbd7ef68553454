package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcourt/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	t.Run("public route is skipped", func(t *testing.T) {
		permission := data.FindPermissions("/v1/auth/login", http.MethodPost)
		assert.True(t, permission.Skip)
	})

	t.Run("trailing slash matches the index route", func(t *testing.T) {
		withSlash := data.FindPermissions("/v1/users/", http.MethodGet)
		withoutSlash := data.FindPermissions("/v1/users", http.MethodGet)

		assert.Equal(t, withoutSlash, withSlash)
		assert.Equal(t, []string{"admin"}, withSlash.Permissions)
	})

	t.Run("method is part of the match", func(t *testing.T) {
		read := data.FindPermissions("/v1/venues/{id}", http.MethodGet)
		remove := data.FindPermissions("/v1/venues/{id}", http.MethodDelete)

		assert.True(t, read.Skip)
		assert.False(t, remove.Skip)
		assert.Equal(t, []string{"owner"}, remove.Permissions)
	})

	t.Run("unknown route has no permission", func(t *testing.T) {
		assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/unknown", http.MethodGet))
	})
}
