package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"minkafka/internal/config"
	"minkafka/internal/events"
	"minkafka/internal/metrics"
	"minkafka/internal/orchestrator"
	"minkafka/internal/output"
	"minkafka/internal/publish"
	"minkafka/internal/runner"
	"minkafka/internal/services"
	"minkafka/internal/template"
	"minkafka/internal/topics"
	"minkafka/internal/watcher"
	"minkafka/pkg/logging"
)

// Service ids. Display names come from configuration.
const (
	CoordinationID = "zookeeper"
	BrokerID       = "kafka"
)

const alertBufferSize = 64

// Services holds every component of a running supervisor.
type Services struct {
	Config *config.MinkafkaConfig

	Launcher     *runner.Launcher
	Coordination *services.Controller
	Broker       *services.Controller
	Orchestrator *orchestrator.Orchestrator
	Provisioner  *topics.Provisioner
	Publisher    *publish.Publisher
	Watcher      *watcher.PropertiesWatcher

	// Prometheus is nil when metrics are disabled; Metrics is then a no-op.
	Prometheus *metrics.PrometheusCollector
	Metrics    metrics.Collector

	alerts      chan events.Alert
	controllers []*services.Controller
}

// Option customizes InitializeServices.
type Option func(*initOptions)

type initOptions struct {
	sessions publish.SessionFactory
}

// WithSessionFactory replaces the Kafka session used for publishing.
func WithSessionFactory(f publish.SessionFactory) Option {
	return func(o *initOptions) { o.sessions = f }
}

// InitializeServices assembles the supervisor from configuration:
// launcher, service specs and controllers, orchestrator, one-shot
// operations, metrics and the properties watcher. Nothing is started.
func InitializeServices(cfg *config.MinkafkaConfig, opts ...Option) (*Services, error) {
	var o initOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Services{
		Config: cfg,
		alerts: make(chan events.Alert, alertBufferSize),
	}

	if cfg.Metrics.Enabled {
		s.Prometheus = metrics.NewPrometheusCollector("minkafka")
		s.Metrics = s.Prometheus
	} else {
		s.Metrics = metrics.NewNoopCollector()
	}

	emitter := events.NewEmitter(s.deliverAlert)
	s.Launcher = runner.NewLauncher(cfg.InstallDir, cfg.Platform)

	engine := template.New()
	data := map[string]interface{}{
		"BootstrapServer": cfg.Broker.BootstrapServer,
	}

	zkSpec, err := services.NewServiceSpec(CoordinationID, cfg.Coordination, cfg, cfg.Timing.CoordinationWindow, nil, engine, data)
	if err != nil {
		return nil, err
	}
	kafkaSpec, err := services.NewServiceSpec(BrokerID, cfg.Broker.ServiceConfig, cfg, cfg.Timing.BrokerWindow, []string{CoordinationID}, engine, data)
	if err != nil {
		return nil, err
	}

	s.Coordination = services.NewController(zkSpec, s.Launcher, emitter)
	s.Broker = services.NewController(kafkaSpec, s.Launcher, emitter)
	s.controllers = []*services.Controller{s.Coordination, s.Broker}

	s.Orchestrator, err = orchestrator.New(orchestrator.Config{
		Services: []services.Service{s.Coordination, s.Broker},
		Windows: map[string]time.Duration{
			CoordinationID: zkSpec.Window,
			BrokerID:       kafkaSpec.Window,
		},
		StopSettle: cfg.Timing.StopSettle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	controls := s.Orchestrator.Controls()
	s.Provisioner = topics.NewProvisioner(s.Launcher, emitter, controls.CreateTopic, s.Metrics, topics.Options{
		Command:           cfg.Topics.Command,
		BootstrapServer:   cfg.Broker.BootstrapServer,
		Partitions:        cfg.Topics.Partitions,
		ReplicationFactor: cfg.Topics.ReplicationFactor,
	})
	s.Publisher = publish.NewPublisher(o.sessions, emitter, controls.Send, s.Metrics, publish.Options{
		BootstrapServer: cfg.Broker.BootstrapServer,
		Timeout:         cfg.Timing.PublishTimeout,
	})

	if cfg.Watch.Enabled {
		s.Watcher = watcher.New(watcher.Config{
			Targets: []watcher.Target{
				{Service: zkSpec.Name, Path: zkSpec.PropertiesPath},
				{Service: kafkaSpec.Name, Path: kafkaSpec.PropertiesPath},
			},
			OnChange: watcher.AlertWhen(emitter, s.isRunning),
		})
	}

	logging.Debug("Bootstrap", "Install dir %s (%s)", cfg.InstallDir, cfg.Platform)
	return s, nil
}

// deliverAlert is the single alert consumer. It counts the alert and
// forwards it to whoever reads Alerts, dropping it if nobody keeps up.
func (s *Services) deliverAlert(a events.Alert) {
	s.Metrics.Alert(string(a.Reason), string(a.Type))
	select {
	case s.alerts <- a:
	default:
		logging.Warn("Bootstrap", "Alert buffer full, dropped: %s", a.Message)
	}
}

// Alerts delivers every raised alert. It is never closed.
func (s *Services) Alerts() <-chan events.Alert {
	return s.alerts
}

// Controllers returns the service controllers in start order.
func (s *Services) Controllers() []*services.Controller {
	return append([]*services.Controller(nil), s.controllers...)
}

func (s *Services) isRunning(name string) bool {
	for _, c := range s.controllers {
		if c.DisplayName() == name || c.GetName() == name {
			return c.GetState() == services.StateRunning
		}
	}
	return false
}

// StartAll runs the start sequence.
func (s *Services) StartAll() error {
	return s.Orchestrator.StartAll()
}

// StopAll runs the stop sequence.
func (s *Services) StopAll() error {
	return s.Orchestrator.StopAll()
}

// Status returns the supervisor snapshot.
func (s *Services) Status() orchestrator.Status {
	return s.Orchestrator.Status()
}

// Controls returns the current controls.
func (s *Services) Controls() orchestrator.ControlsSnapshot {
	return s.Orchestrator.Controls().Snapshot()
}

// ServiceNames returns the service ids in start order.
func (s *Services) ServiceNames() []string {
	names := make([]string, 0, len(s.controllers))
	for _, c := range s.controllers {
		names = append(names, c.GetName())
	}
	return names
}

// Output returns the output buffer of a service by id or display name,
// case-insensitively.
func (s *Services) Output(service string) (*output.Buffer, error) {
	for _, c := range s.controllers {
		if strings.EqualFold(c.GetName(), service) || strings.EqualFold(c.DisplayName(), service) {
			return c.Output(), nil
		}
	}
	return nil, fmt.Errorf("unknown service %q (expected one of %s)", service, strings.Join(s.ServiceNames(), ", "))
}

// CreateTopic provisions a topic.
func (s *Services) CreateTopic(name string) error {
	return s.Provisioner.CreateTopic(name)
}

// Send publishes one message.
func (s *Services) Send(ctx context.Context, topic, content string) publish.Result {
	return s.Publisher.Send(ctx, topic, content)
}

// Observe feeds state transitions into the metrics collector until ctx is
// done.
func (s *Services) Observe(ctx context.Context) {
	eventsCh := s.Orchestrator.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventsCh:
			e, ok := ev.(orchestrator.StateChangedEvent)
			if !ok {
				continue
			}
			s.Metrics.ServiceStateTransition(e.Service, string(e.OldState), string(e.NewState))
			if buf, err := s.Output(e.Service); err == nil {
				s.Metrics.ServiceOutputLines(e.Service, buf.Len())
			}
		}
	}
}

// Shutdown stops whatever is still active and releases leftover processes.
func (s *Services) Shutdown(ctx context.Context) error {
	if s.Watcher != nil {
		s.Watcher.Stop()
	}
	return s.Orchestrator.Shutdown(ctx)
}

// startWatcher starts the properties watcher if configured. A failure is
// logged; the supervisor works without it.
func (s *Services) startWatcher() {
	if s.Watcher == nil {
		return
	}
	if err := s.Watcher.Start(); err != nil {
		logging.Warn("Watcher", "Properties watch disabled: %v", err)
	}
}
