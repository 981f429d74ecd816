// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile appends diagnostic lines to this path instead of stderr.
	LogFile string `koanf:"log_file"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// Delimiter separates columns in input files. Must be a single character.
	Delimiter string `koanf:"delimiter"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFile:     "",
		MetricsFile: "",
		Delimiter:   ",",
	}
}
