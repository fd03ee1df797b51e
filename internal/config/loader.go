package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"minkafka/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/minkafka"
	configFileName = "config.yaml"
)

// osExecutable is a package-level variable so tests can pin the executable location.
var osExecutable = os.Executable

// GetDefaultConfigPath returns the per-user configuration directory.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// ConfigFilePath returns the location of config.yaml inside configPath.
func ConfigFilePath(configPath string) string {
	return filepath.Join(configPath, configFileName)
}

// LoadConfig loads config.yaml from configPath on top of the defaults,
// resolves derived values and validates the result.
func LoadConfig(configPath string) (MinkafkaConfig, error) {
	cfg := GetDefaultConfig()
	configFilePath := ConfigFilePath(configPath)

	data, err := os.ReadFile(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
	case err != nil:
		return MinkafkaConfig{}, NewConfigurationError(configFilePath, configFileName, "io", err.Error())
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return MinkafkaConfig{}, NewConfigurationErrorWithDetails(configFilePath, configFileName, "parse",
				"malformed YAML", err.Error(), []string{"Run 'minkafka config init --force' to regenerate a default file"})
		}
		logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	}

	if err := cfg.Resolve(); err != nil {
		return MinkafkaConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return MinkafkaConfig{}, err
	}
	return cfg, nil
}

// Resolve fills values that depend on the environment: the installation
// directory and the concrete platform.
func (c *MinkafkaConfig) Resolve() error {
	if c.InstallDir == "" {
		exe, err := osExecutable()
		if err != nil {
			return fmt.Errorf("failed to locate executable for default install dir: %w", err)
		}
		c.InstallDir = filepath.Dir(filepath.Dir(exe))
	}
	abs, err := filepath.Abs(c.InstallDir)
	if err != nil {
		return fmt.Errorf("failed to resolve install dir %s: %w", c.InstallDir, err)
	}
	c.InstallDir = abs

	if c.Platform == "" || c.Platform == PlatformAuto {
		c.Platform = PlatformUnix
		if runtime.GOOS == "windows" {
			c.Platform = PlatformWindows
		}
	}
	return nil
}

// PropertiesPath returns the properties file of a service inside the installation.
func (c *MinkafkaConfig) PropertiesPath(svc ServiceConfig) string {
	return filepath.Join(c.InstallDir, "config", svc.Properties+".properties")
}
