package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteConfig when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

// WriteConfig atomically writes cfg as config.yaml into configPath. An
// existing file is only replaced when force is set.
func WriteConfig(configPath string, cfg MinkafkaConfig, force bool) (string, error) {
	path := ConfigFilePath(configPath)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return path, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
