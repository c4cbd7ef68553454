package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"quickcourt/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

type migration struct {
	run     func(mig *migrate.Migrate) error
	success string
}

var migrations = map[string]migration{
	ActionUp: {
		run:     func(mig *migrate.Migrate) error { return mig.Up() },
		success: "Database migrated to the latest version",
	},
	ActionStepUp: {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(1) },
		success: "Database migrated one version up",
	},
	ActionDown: {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		success: "Database rolled back one version",
	},
	ActionDrop: {
		run:     func(mig *migrate.Migrate) error { return mig.Down() },
		success: "Database rolled back to an empty schema",
	},
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func databaseURL(config *config.Config) string {
	write := config.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if config.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     getDBName(config, write.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New("file://"+config.DB.Postgres.MigrationPath, databaseURL(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one of the Action* migrations. An already current schema is not an error.
func Runner(config *config.Config, action string) error {
	step, ok := migrations[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg(step.success)

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
