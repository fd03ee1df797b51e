package topics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"minkafka/internal/events"
	"minkafka/internal/metrics"
	"minkafka/internal/runner"
	"minkafka/pkg/logging"
)

// Launcher starts installation scripts.
type Launcher interface {
	Run(command string, args []string, workingDir string) (*runner.Process, error)
}

// Toggle is the caller-facing flag this operation owns.
type Toggle interface {
	Set(enabled bool)
}

// Options configures the provisioning command.
type Options struct {
	Command           string
	BootstrapServer   string
	Partitions        int
	ReplicationFactor int
}

// Provisioner creates topics by running the installation's topics script.
type Provisioner struct {
	launcher Launcher
	alerts   *events.Emitter
	flag     Toggle
	metrics  metrics.Collector
	opts     Options

	group    singleflight.Group
	mu       sync.Mutex
	inFlight int
}

// NewProvisioner creates a provisioner. flag may be nil; collector may be nil.
func NewProvisioner(launcher Launcher, emitter *events.Emitter, flag Toggle, collector metrics.Collector, opts Options) *Provisioner {
	if collector == nil {
		collector = metrics.NewNoopCollector()
	}
	return &Provisioner{
		launcher: launcher,
		alerts:   emitter,
		flag:     flag,
		metrics:  collector,
		opts:     opts,
	}
}

// Args returns the provisioning command line for name.
func (p *Provisioner) Args(name string) []string {
	args := []string{"--create", "--topic", name, "--bootstrap-server", p.opts.BootstrapServer, "--if-not-exists"}
	if p.opts.Partitions > 0 {
		args = append(args, "--partitions", strconv.Itoa(p.opts.Partitions))
	}
	if p.opts.ReplicationFactor > 0 {
		args = append(args, "--replication-factor", strconv.Itoa(p.opts.ReplicationFactor))
	}
	return args
}

// CreateTopic validates name and runs the provisioning command, waiting for
// it without a deadline. Every call raises exactly one alert. The
// createTopic control is disabled while any call is in flight. Concurrent
// calls for the same name share one command run.
func (p *Provisioner) CreateTopic(name string) error {
	p.acquire()
	defer p.release()

	if err := ValidateName(name); err != nil {
		logging.Warn("Topics", "Rejected topic name %q", name)
		p.alerts.Emit(events.ReasonTopicNameInvalid, events.EventData{Topic: name})
		p.metrics.TopicProvisioned(metrics.OutcomeInvalid, 0)
		return err
	}

	started := time.Now()
	v, err, shared := p.group.Do(name, func() (interface{}, error) {
		return p.run(name)
	})
	if shared {
		logging.Debug("Topics", "Shared provisioning result for %s", name)
	}
	res, _ := v.(runner.Result)

	if err != nil {
		errText := res.Stderr
		var launchErr *runner.LaunchError
		if errors.As(err, &launchErr) {
			errText = err.Error()
		}
		logging.Error("Topics", err, "Failed to create topic %s", name)
		p.alerts.Emit(events.ReasonTopicCreateFailed, events.EventData{Topic: name, Error: errText})
		p.metrics.TopicProvisioned(metrics.OutcomeFailed, time.Since(started))
		return err
	}

	logging.Info("Topics", "Topic %s created (or already present)", name)
	p.alerts.Emit(events.ReasonTopicCreated, events.EventData{Topic: name})
	p.metrics.TopicProvisioned(metrics.OutcomeSuccess, time.Since(started))
	return nil
}

func (p *Provisioner) run(name string) (runner.Result, error) {
	proc, err := p.launcher.Run(p.opts.Command, p.Args(name), "")
	if err != nil {
		return runner.Result{}, err
	}
	return proc.Collect()
}

func (p *Provisioner) acquire() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight++
	if p.inFlight == 1 && p.flag != nil {
		p.flag.Set(false)
	}
}

func (p *Provisioner) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight--
	if p.inFlight == 0 && p.flag != nil {
		p.flag.Set(true)
	}
}
