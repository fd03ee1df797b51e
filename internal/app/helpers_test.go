package app

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"minkafka/internal/config"
)

// fakeInstall lays out bin/<cmd>.sh scripts and config/*.properties the way
// a Kafka distribution does.
func fakeInstall(t *testing.T, scripts map[string]string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	for name, body := range scripts {
		path := filepath.Join(dir, "bin", name+".sh")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	}
	for _, props := range []string{"zookeeper", "server"} {
		path := filepath.Join(dir, "config", props+".properties")
		require.NoError(t, os.WriteFile(path, []byte("# test\n"), 0o644))
	}
	return dir
}

func testConfig(dir string) *config.MinkafkaConfig {
	cfg := config.GetDefaultConfig()
	cfg.InstallDir = dir
	cfg.Platform = config.PlatformUnix
	cfg.Timing.CoordinationWindow = 100 * time.Millisecond
	cfg.Timing.BrokerWindow = 100 * time.Millisecond
	cfg.Timing.StopSettle = 20 * time.Millisecond
	cfg.Timing.PublishTimeout = time.Second
	cfg.Watch.Enabled = false
	return &cfg
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
