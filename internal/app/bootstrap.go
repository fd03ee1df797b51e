package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"minkafka/internal/config"
	"minkafka/pkg/logging"
)

// Application bootstraps and runs minkafka.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: load configuration, initialize logging, assemble services
//  2. Execution phase: run one of the modes (up, shell) or a one-shot operation
//
// Example usage:
//
//	cfg := app.NewConfig(false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.RunUp(ctx)
type Application struct {
	config   *Config
	services *Services
	opts     []Option
}

// NewApplication configures logging, loads configuration and assembles the
// services. It fails when configuration cannot be loaded or is invalid.
func NewApplication(cfg *Config, opts ...Option) (*Application, error) {
	initLogging(cfg, os.Stdout)

	if cfg.MinkafkaConfig == nil {
		configPath := cfg.ConfigPath
		if configPath == "" {
			var err error
			configPath, err = config.GetDefaultConfigPath()
			if err != nil {
				return nil, err
			}
		}

		minkafkaCfg, err := config.LoadConfig(configPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from path: %s", configPath)
			return nil, fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
		}
		cfg.MinkafkaConfig = &minkafkaCfg
	}

	services, err := InitializeServices(cfg.MinkafkaConfig, opts...)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
		opts:     opts,
	}, nil
}

// Services exposes the assembled components.
func (a *Application) Services() *Services {
	return a.services
}

// RunUp runs the foreground supervisor until ctx is done or a signal arrives.
func (a *Application) RunUp(ctx context.Context) error {
	return runUpMode(ctx, a.config, a.services, os.Stdout)
}

// RunShell runs the interactive shell.
func (a *Application) RunShell(ctx context.Context) error {
	return runShellMode(ctx, a.config, a.services)
}

func logLevel(cfg *Config) logging.LogLevel {
	switch {
	case cfg.Debug:
		return logging.LevelDebug
	case cfg.Quiet:
		return logging.LevelWarn
	default:
		return logging.LevelInfo
	}
}

func initLogging(cfg *Config, w io.Writer) {
	logging.InitForCLI(logLevel(cfg), w)
}
