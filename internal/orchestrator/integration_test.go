package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minkafka/internal/config"
	"minkafka/internal/events"
	"minkafka/internal/runner"
	"minkafka/internal/services"
)

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
	return dir
}

type realStack struct {
	orch   *Orchestrator
	zk     *services.Controller
	kafka  *services.Controller
	mu     sync.Mutex
	alerts []string
}

func (s *realStack) alertMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.alerts...)
}

func newRealStack(t *testing.T, dir string, window time.Duration) *realStack {
	t.Helper()
	s := &realStack{}
	emitter := events.NewEmitter(func(a events.Alert) {
		s.mu.Lock()
		s.alerts = append(s.alerts, a.Message)
		s.mu.Unlock()
	})
	launcher := runner.NewLauncher(dir, config.PlatformUnix)

	s.zk = services.NewController(services.ServiceSpec{
		ID: "zookeeper", Name: "Zookeeper",
		StartCommand: "zookeeper-server-start", StopCommand: "zookeeper-server-stop",
		PropertiesPath: filepath.Join(dir, "config", "zookeeper.properties"),
		Window:         window,
	}, launcher, emitter)
	s.kafka = services.NewController(services.ServiceSpec{
		ID: "kafka", Name: "Kafka",
		StartCommand: "kafka-server-start", StopCommand: "kafka-server-stop",
		PropertiesPath: filepath.Join(dir, "config", "server.properties"),
		Window:         window,
		DependsOn:      []string{"zookeeper"},
	}, launcher, emitter)

	orch, err := New(Config{
		Services:   []services.Service{s.zk, s.kafka},
		Windows:    map[string]time.Duration{"zookeeper": window, "kafka": window},
		StopSettle: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	s.orch = orch

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = orch.Shutdown(ctx)
	})
	return s
}

func TestIntegration_CoordinationExitsImmediately(t *testing.T) {
	dir := fakeInstall(t, map[string]string{
		"zookeeper-server-start": `echo "Reading configuration from: $1"; echo "Address already in use" 1>&2; exit 1`,
		"kafka-server-start":     `touch "$(dirname "$0")/../kafka-started"; exec sleep 30`,
	})
	s := newRealStack(t, dir, 300*time.Millisecond)

	err := s.orch.StartAll()
	var aborted *StartAbortedError
	require.ErrorAs(t, err, &aborted)
	assert.Equal(t, "zookeeper", aborted.Service)

	assert.Equal(t, services.StateFailed, s.zk.GetState())
	assert.Equal(t, services.StateNotStarted, s.kafka.GetState())
	assert.NoFileExists(t, filepath.Join(dir, "kafka-started"))

	alerts := s.alertMessages()
	require.Len(t, alerts, 1)
	assert.True(t, strings.HasPrefix(alerts[0], "Error starting Zookeeper."))
	assert.Contains(t, alerts[0], "Address already in use")
	assert.Contains(t, s.zk.Output().Lines(), "Address already in use")

	assert.True(t, s.orch.Controls().Start.Enabled())
	assert.False(t, s.orch.Controls().Stop.Enabled())
}

func TestIntegration_StartAllReturnsWithEveryServiceRunning(t *testing.T) {
	dir := fakeInstall(t, map[string]string{
		"zookeeper-server-start": `exec sleep 30`,
		"kafka-server-start":     `exec sleep 30`,
	})

	for i := 0; i < 10; i++ {
		s := newRealStack(t, dir, 20*time.Millisecond)

		require.NoError(t, s.orch.StartAll())
		require.True(t, s.orch.Controls().Stop.Enabled())
		require.Equal(t, services.StateRunning, s.zk.GetState(), "run %d", i)
		require.Equal(t, services.StateRunning, s.kafka.GetState(), "run %d", i)
	}
}

func TestIntegration_StartThenStop(t *testing.T) {
	dir := fakeInstall(t, map[string]string{
		"zookeeper-server-start": `echo "binding to port 0.0.0.0/0.0.0.0:2181"; exec sleep 30`,
		"kafka-server-start":     `echo "[KafkaServer id=0] started"; exec sleep 30`,
		"kafka-server-stop":      `echo "stopping kafka"`,
		"zookeeper-server-stop":  `echo "No zookeeper server to stop" 1>&2; exit 1`,
	})
	s := newRealStack(t, dir, 100*time.Millisecond)

	require.NoError(t, s.orch.StartAll())
	assert.Equal(t, services.StateRunning, s.zk.GetState())
	assert.Equal(t, services.StateRunning, s.kafka.GetState())
	assert.False(t, s.orch.Controls().Start.Enabled())
	assert.True(t, s.orch.Controls().Stop.Enabled())

	require.NoError(t, s.orch.StopAll())
	require.Eventually(t, func() bool {
		return s.kafka.GetState() == services.StateStopped && s.zk.GetState() == services.StateFailed
	}, 5*time.Second, 10*time.Millisecond)

	assert.True(t, s.orch.Controls().Start.Enabled())
	assert.True(t, s.orch.Controls().Stop.Enabled())
	assert.Contains(t, s.kafka.Output().Lines(), "stopping kafka")
	require.Eventually(t, func() bool { return len(s.alertMessages()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "Error stopping Zookeeper.\nNo zookeeper server to stop", s.alertMessages()[0])
}
