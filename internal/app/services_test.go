package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minkafka/internal/events"
	"minkafka/internal/publish"
	"minkafka/internal/services"
)

func nextAlert(t *testing.T, s *Services) events.Alert {
	t.Helper()
	select {
	case a := <-s.Alerts():
		return a
	case <-time.After(5 * time.Second):
		t.Fatal("no alert delivered")
		return events.Alert{}
	}
}

func TestInitializeServices_Wiring(t *testing.T) {
	dir := fakeInstall(t, nil)
	s, err := InitializeServices(testConfig(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{CoordinationID, BrokerID}, s.ServiceNames())
	assert.Nil(t, s.Prometheus)
	assert.Nil(t, s.Watcher)

	status := s.Status()
	require.Len(t, status.Services, 2)
	assert.Equal(t, "Zookeeper", status.Services[0].Name)
	assert.Equal(t, "Kafka", status.Services[1].Name)
	assert.Equal(t, services.StateNotStarted, status.Services[1].State)

	controls := s.Controls()
	assert.True(t, controls.Start && controls.Stop && controls.CreateTopic && controls.Send)

	assert.Equal(t, []string{CoordinationID}, s.Broker.Spec().DependsOn)
	assert.True(t, strings.HasSuffix(s.Broker.Spec().PropertiesPath, "server.properties"))

	for _, name := range []string{"zookeeper", "Zookeeper", "KAFKA"} {
		buf, err := s.Output(name)
		require.NoError(t, err, name)
		assert.NotNil(t, buf)
	}
	_, err = s.Output("nope")
	assert.ErrorContains(t, err, "zookeeper, kafka")
}

func TestInitializeServices_RendersArgs(t *testing.T) {
	dir := fakeInstall(t, nil)
	cfg := testConfig(dir)
	cfg.Broker.Args = []string{"--override", "listeners=PLAINTEXT://{{ .BootstrapServer | lower }}"}

	s, err := InitializeServices(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"--override", "listeners=PLAINTEXT://localhost:9092"}, s.Broker.Spec().Args())
}

func TestInitializeServices_BadTemplate(t *testing.T) {
	dir := fakeInstall(t, nil)
	cfg := testConfig(dir)
	cfg.Coordination.Args = []string{"{{ .Missing }}"}

	_, err := InitializeServices(cfg)
	assert.Error(t, err)
}

func TestInvalidTopicRaisesAlertAndMetric(t *testing.T) {
	dir := fakeInstall(t, nil)
	cfg := testConfig(dir)
	cfg.Metrics.Enabled = true

	s, err := InitializeServices(cfg)
	require.NoError(t, err)
	require.NotNil(t, s.Prometheus)

	assert.Error(t, s.CreateTopic("not valid!"))
	alert := nextAlert(t, s)
	assert.Equal(t, "A valid topic name must be specified", alert.Message)

	families, err := s.Prometheus.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() == "minkafka_alerts_total" {
			found = true
		}
	}
	assert.True(t, found, "alerts_total should be exported")
}

func TestCreateTopicRunsScript(t *testing.T) {
	dir := fakeInstall(t, map[string]string{
		"kafka-topics": `echo "Created topic $3."`,
	})
	s, err := InitializeServices(testConfig(dir))
	require.NoError(t, err)

	require.NoError(t, s.CreateTopic("orders"))
	assert.Equal(t, "Topic created", nextAlert(t, s).Message)
	assert.True(t, s.Controls().CreateTopic)
}

type stubSession struct{ closed int }

func (s *stubSession) Publish(ctx context.Context, topic string, value []byte) (publish.Status, error) {
	return publish.StatusPersisted, nil
}

func (s *stubSession) Close() error {
	s.closed++
	return nil
}

func TestSendUsesInjectedSession(t *testing.T) {
	dir := fakeInstall(t, nil)
	session := &stubSession{}
	s, err := InitializeServices(testConfig(dir), WithSessionFactory(func(bootstrap string) (publish.Session, error) {
		assert.Equal(t, "localhost:9092", bootstrap)
		return session, nil
	}))
	require.NoError(t, err)

	res := s.Send(context.Background(), "orders", "hello")
	assert.True(t, res.Sent)
	assert.Equal(t, "Message sent", nextAlert(t, s).Message)
	assert.Equal(t, 1, session.closed)
}

func TestWatcherWiredWhenEnabled(t *testing.T) {
	dir := fakeInstall(t, nil)
	cfg := testConfig(dir)
	cfg.Watch.Enabled = true

	s, err := InitializeServices(cfg)
	require.NoError(t, err)
	require.NotNil(t, s.Watcher)

	assert.False(t, s.isRunning("Kafka"))
	assert.False(t, s.isRunning("unknown"))
}
