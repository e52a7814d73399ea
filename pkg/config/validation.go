package config

import "fmt"

// Validate checks invariants ApplyDefaults cannot repair on its own,
// mirroring the donor's validation pass in pkg/config/config.go.
func Validate(cfg *Config) error {
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", cfg.Logging.Format)
	}

	switch cfg.Logging.Level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("logging.level must be one of DEBUG/INFO/WARN/ERROR, got %q", cfg.Logging.Level)
	}

	if cfg.Telemetry.SampleRate < 0 || cfg.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be in [0,1], got %g", cfg.Telemetry.SampleRate)
	}

	if cfg.Supervisor.FlushTimeout < 0 {
		return fmt.Errorf("supervisor.flush_timeout must be >= 0, got %s", cfg.Supervisor.FlushTimeout)
	}

	return nil
}
