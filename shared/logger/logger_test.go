package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"quickcourt/config"
	"quickcourt/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restoreLogger(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("court row lock timeout"))

	assert.Contains(t, buf.String(), "court row lock timeout")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{logLevel: "trace", expectedLevel: zerolog.TraceLevel},
		{logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{logLevel: "info", expectedLevel: zerolog.InfoLevel},
		{logLevel: "warn", expectedLevel: zerolog.WarnLevel},
		{logLevel: "error", expectedLevel: zerolog.ErrorLevel},
		{logLevel: "disabled", expectedLevel: zerolog.Disabled},
		{logLevel: "invalid_level", expectedLevel: zerolog.TraceLevel},
		{logLevel: "", expectedLevel: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.logLevel, func(t *testing.T) {
			restoreLogger(t)

			var buf bytes.Buffer
			log.Logger = log.Output(&buf)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestConfigure_ProductionWritesJSON(t *testing.T) {
	restoreLogger(t)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "quickcourt"

	logger.Configure(cfg, "worker")

	var buf bytes.Buffer
	log.Logger = log.Logger.Output(&buf)

	log.Info().Msg("sweep finished")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "quickcourt", line["app"])
	assert.Equal(t, "worker", line["process"])
	assert.Equal(t, "sweep finished", line["message"])
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestConfigure_DevelopmentKeepsLogger(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)
	before := log.Logger

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "debug"

	logger.Configure(cfg, "app")

	assert.Equal(t, before, log.Logger)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
