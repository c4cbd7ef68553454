package postgres

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcourt/config"
)

func TestEndpointDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.Write.Host = "primary.db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "quickcourt"
	cfg.DB.Postgres.Write.Password = "s3cr#t"
	cfg.DB.Postgres.Write.Name = "quickcourt"
	cfg.DB.Postgres.Write.SSLMode = "require"
	cfg.DB.Postgres.Read.Host = "replica.db"
	cfg.DB.Postgres.Read.Port = "5433"
	cfg.DB.Postgres.Read.Name = "quickcourt"
	cfg.DB.Postgres.Read.Timezone = "Asia/Jakarta"

	t.Run("write endpoint", func(t *testing.T) {
		parsed, err := url.Parse(writeEndpoint(cfg).dsn())
		require.NoError(t, err)

		password, _ := parsed.User.Password()

		assert.Equal(t, "primary.db:5432", parsed.Host)
		assert.Equal(t, "/dev_quickcourt", parsed.Path)
		assert.Equal(t, "s3cr#t", password)
		assert.Equal(t, "require", parsed.Query().Get("sslmode"))
		assert.Equal(t, defaultTimezone, parsed.Query().Get("timezone"))
	})

	t.Run("read endpoint keeps its timezone", func(t *testing.T) {
		parsed, err := url.Parse(readEndpoint(cfg).dsn())
		require.NoError(t, err)

		assert.Equal(t, "replica.db:5433", parsed.Host)
		assert.Equal(t, "Asia/Jakarta", parsed.Query().Get("timezone"))
	})
}
