package postgres

//nolint:revive
import (
	"errors"
	"net"
	"net/url"
	"time"

	"quickcourt/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const defaultTimezone = "UTC"

// Connection holds the read replica pool and the primary pool.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// endpoint is one side of the read/write split.
type endpoint struct {
	name     string
	host     string
	port     string
	username string
	password string
	dbName   string
	sslMode  string
	timezone string
}

// Close releases both pools.
func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  connect(config, readEndpoint(config)),
		Write: connect(config, writeEndpoint(config)),
	}
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func writeEndpoint(config *config.Config) endpoint {
	write := config.DB.Postgres.Write

	return endpoint{
		name:     "write",
		host:     write.Host,
		port:     write.Port,
		username: write.Username,
		password: write.Password,
		dbName:   getDBName(config, write.Name),
		sslMode:  write.SSLMode,
		timezone: write.Timezone,
	}
}

func readEndpoint(config *config.Config) endpoint {
	read := config.DB.Postgres.Read

	return endpoint{
		name:     "read",
		host:     read.Host,
		port:     read.Port,
		username: read.Username,
		password: read.Password,
		dbName:   getDBName(config, read.Name),
		sslMode:  read.SSLMode,
		timezone: read.Timezone,
	}
}

// dsn pins the session timezone so timestamptz values come back in a known zone.
func (e endpoint) dsn() string {
	query := url.Values{}
	query.Set("sslmode", e.sslMode)

	timezone := e.timezone
	if timezone == "" {
		timezone = defaultTimezone
	}

	query.Set("timezone", timezone)

	descriptor := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     e.dbName,
		RawQuery: query.Encode(),
	}

	return descriptor.String()
}

// connect retries MaxRetry times and exits the process when the database never answers.
func connect(config *config.Config, target endpoint) *sqlx.DB {
	pool := config.DB.Postgres

	maxRetry := max(pool.MaxRetry, 1)

	for retry := range maxRetry {
		db, err := sqlx.Connect("postgres", target.dsn())
		if err == nil {
			db.SetMaxOpenConns(pool.MaxOpenConns)
			db.SetMaxIdleConns(pool.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifeSec) * time.Second)

			log.Info().
				Str("name", target.name).
				Str("host", target.host).
				Str("port", target.port).
				Str("dbName", target.dbName).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", target.name).
			Str("host", target.host).
			Str("port", target.port).
			Str("dbName", target.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pool.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", target.name).Str("host", target.host).Msg("Giving up connecting to database")

	return nil
}
