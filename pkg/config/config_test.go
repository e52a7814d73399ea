package config_test

import (
	"testing"
	"time"

	"github.com/marmos91/supercore/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "supercore", cfg.Telemetry.ServiceName)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRate)
	assert.Equal(t, ":9102", cfg.Metrics.Addr)
	assert.Equal(t, 30*time.Second, cfg.Supervisor.FlushTimeout)
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "debug"}}
	config.ApplyDefaults(cfg)

	assert.Equal(t, "DEBUG", cfg.Logging.Level, "explicit level is normalized to uppercase, not overwritten")
}

func TestValidateRejectsBadLevel(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Logging.Level = "VERBOSE"

	err := config.Validate(cfg)
	require.Error(t, err)
}

func TestValidateRejectsBadSampleRate(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Telemetry.SampleRate = 2.5

	err := config.Validate(cfg)
	require.Error(t, err)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	require.NoError(t, config.Validate(cfg))
}
