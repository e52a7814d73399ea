// Package config loads the supervisor client's runtime configuration:
// logging, telemetry, metrics, and the step-lock/flush timing knobs.
// Adapted from the donor's pkg/config/config.go (viper-backed YAML + env
// loading with a defaults pass); the donor's store/share/adapter
// sub-configs have no analogue here and are dropped, not carried.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// LoggingConfig controls internal/logger's output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// TelemetryConfig controls internal/telemetry's OTLP tracer.
type TelemetryConfig struct {
	Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
	ServiceName    string  `mapstructure:"service_name" yaml:"service_name"`
	ServiceVersion string  `mapstructure:"service_version" yaml:"service_version"`
	Endpoint       string  `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure       bool    `mapstructure:"insecure" yaml:"insecure"`
	SampleRate     float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// MetricsConfig controls pkg/metrics's Prometheus exposition.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr" yaml:"addr"`
}

// SupervisorConfig controls the step-lock/flush discipline of
// pkg/supervisor.
type SupervisorConfig struct {
	// FlushTimeout is the configured bound for a flush-unlocked round
	// trip. ApplyDefaults replaces zero with 30s. pkg/supervisor does not
	// read this value: a flush blocks until the transport returns.
	FlushTimeout time.Duration `mapstructure:"flush_timeout" yaml:"flush_timeout"`
}

// Config is the supervisor client core's top-level configuration.
//
// Sources, in order of precedence (matching the donor's scheme):
//  1. Environment variables (SUPERCORE_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry" yaml:"telemetry"`
	Metrics    MetricsConfig    `mapstructure:"metrics" yaml:"metrics"`
	Supervisor SupervisorConfig `mapstructure:"supervisor" yaml:"supervisor"`
}

// Load reads configuration from the file at path (if non-empty),
// overlays SUPERCORE_*-prefixed environment variables, applies
// defaults for anything left unset, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SUPERCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// WatchForChanges watches the backing config file (if any) for changes
// and invokes onChange with the freshly reloaded Config, mirroring the
// donor's fsnotify-backed viper.WatchConfig usage. Nothing in this
// module calls it.
func WatchForChanges(path string, onChange func(*Config)) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			return
		}
		ApplyDefaults(&cfg)
		onChange(&cfg)
	})
	v.WatchConfig()
	return nil
}
