package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(true, "/custom/config/path")
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/custom/config/path", cfg.ConfigPath)
	assert.Nil(t, cfg.MinkafkaConfig)
}

func TestNewApplication_PreloadedConfig(t *testing.T) {
	dir := fakeInstall(t, nil)
	cfg := &Config{MinkafkaConfig: testConfig(dir)}

	application, err := NewApplication(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.Services())
	assert.Equal(t, dir, application.Services().Config.InstallDir)
}

func TestNewApplication_LoadsFromConfigPath(t *testing.T) {
	installDir := fakeInstall(t, nil)
	configDir := t.TempDir()
	yaml := "installDir: " + installDir + "\nplatform: unix\nwatch:\n  enabled: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(yaml), 0o644))

	application, err := NewApplication(NewConfig(false, configDir))
	require.NoError(t, err)
	assert.Equal(t, installDir, application.Services().Config.InstallDir)
	assert.Equal(t, "Kafka", application.Services().Broker.DisplayName())
}

func TestNewApplication_MalformedConfig(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("timing: [unclosed"), 0o644))

	_, err := NewApplication(NewConfig(false, configDir))
	assert.ErrorContains(t, err, "failed to load configuration")
}
