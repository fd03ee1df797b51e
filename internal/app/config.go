package app

import (
	"minkafka/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Quiet limits logging to warnings and errors. Used by one-shot commands.
	Quiet bool

	// Custom configuration directory (optional). Empty means the per-user
	// default directory.
	ConfigPath string

	// Color enables colored terminal output.
	Color bool

	// Loaded supervisor configuration. When set before NewApplication, loading
	// from disk is skipped.
	MinkafkaConfig *config.MinkafkaConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
