package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"minkafka/internal/dependency"
	"minkafka/internal/services"
	"minkafka/pkg/logging"
)

var (
	// ErrControlDisabled is returned when an operation is invoked while its
	// control is disabled.
	ErrControlDisabled = errors.New("control is disabled")

	// ErrSequenceRunning is returned when a start or stop sequence is
	// already in flight.
	ErrSequenceRunning = errors.New("a start or stop sequence is already running")
)

// StartAbortedError reports that StartAll stopped early because a service
// failed. Services later in the start order were never launched.
type StartAbortedError struct {
	Service string
	Err     error
}

func (e *StartAbortedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("start sequence aborted: %s failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("start sequence aborted: %s failed", e.Service)
}

func (e *StartAbortedError) Unwrap() error {
	return e.Err
}

// Releaser is implemented by services that hold OS processes beyond their
// own state machine.
type Releaser interface {
	Release(ctx context.Context) error
}

// Sequence names what the orchestrator is currently doing.
type Sequence string

const (
	SequenceIdle     Sequence = "idle"
	SequenceStarting Sequence = "starting"
	SequenceStopping Sequence = "stopping"
)

// Config holds the configuration for the orchestrator.
type Config struct {
	// Services are the supervised services. Start order is derived from
	// their dependencies.
	Services []services.Service

	// Windows holds the stabilization window per service name. A service
	// that is still alive and not Failed at the end of its window is
	// considered started.
	Windows map[string]time.Duration

	// StopSettle is the fixed pause after each stop command is launched.
	StopSettle time.Duration
}

// Orchestrator sequences the supervised services: dependencies start first
// and stop last. It owns the start and stop controls and observes every
// service's state. It never mutates service state itself.
type Orchestrator struct {
	registry   services.ServiceRegistry
	startOrder []services.Service
	stopOrder  []services.Service
	windows    map[string]time.Duration
	stopSettle time.Duration
	controls   *Controls

	sequence atomic.Value // Sequence
	seqMu    sync.Mutex
	sleep    func(time.Duration)

	subscribers []chan<- Event
	mu          sync.RWMutex
}

// New creates a new orchestrator. It fails when the services' dependencies
// are unknown or cyclic.
func New(cfg Config) (*Orchestrator, error) {
	registry := services.NewRegistry()
	graph := dependency.New()
	for _, svc := range cfg.Services {
		if err := registry.Register(svc); err != nil {
			return nil, err
		}
		deps := make([]dependency.NodeID, 0, len(svc.GetDependencies()))
		for _, d := range svc.GetDependencies() {
			deps = append(deps, dependency.NodeID(d))
		}
		graph.AddNode(dependency.Node{
			ID:           dependency.NodeID(svc.GetName()),
			FriendlyName: svc.Status().Name,
			DependsOn:    deps,
		})
	}

	start, err := graph.StartOrder()
	if err != nil {
		return nil, fmt.Errorf("invalid service dependencies: %w", err)
	}

	o := &Orchestrator{
		registry:   registry,
		windows:    cfg.Windows,
		stopSettle: cfg.StopSettle,
		controls:   NewControls(),
		sleep:      time.Sleep,
	}
	o.sequence.Store(SequenceIdle)

	for _, id := range start {
		svc, _ := registry.Get(string(id))
		o.startOrder = append(o.startOrder, svc)
	}
	for i := len(o.startOrder) - 1; i >= 0; i-- {
		o.stopOrder = append(o.stopOrder, o.startOrder[i])
	}

	for _, svc := range o.startOrder {
		svc.SetStateChangeCallback(o.onStateChange)
	}
	o.controls.setListener(o.onControlsChange)

	return o, nil
}

// Controls returns the shared flag set. One-shot operations are handed
// their own flag from it.
func (o *Orchestrator) Controls() *Controls {
	return o.controls
}

// Services returns the supervised services in start order.
func (o *Orchestrator) Services() []services.Service {
	out := make([]services.Service, len(o.startOrder))
	copy(out, o.startOrder)
	return out
}

// Service returns a service by name.
func (o *Orchestrator) Service(name string) (services.Service, bool) {
	return o.registry.Get(name)
}

// CurrentSequence reports whether a start or stop sequence is in flight.
func (o *Orchestrator) CurrentSequence() Sequence {
	return o.sequence.Load().(Sequence)
}

// StartAll starts every service in dependency order. Each service is
// launched, then given its stabilization window; a service still Starting
// when the window ends becomes Running, and the next service is only
// launched if the previous one has not failed. On success the stop control
// is enabled and the start control stays disabled. On failure the start
// control is re-enabled and the stop control is enabled only if some service
// is still running.
func (o *Orchestrator) StartAll() error {
	if !o.controls.Start.Enabled() {
		return fmt.Errorf("start: %w", ErrControlDisabled)
	}
	if !o.seqMu.TryLock() {
		return ErrSequenceRunning
	}
	defer o.seqMu.Unlock()

	o.sequence.Store(SequenceStarting)
	defer o.sequence.Store(SequenceIdle)

	opID := uuid.NewString()
	o.controls.Start.Set(false)
	o.controls.Stop.Set(false)
	logging.Info("Orchestrator", "Start sequence %s: %s", opID, o.names(o.startOrder))

	for _, svc := range o.startOrder {
		if err := svc.Start(); err != nil {
			logging.Warn("Orchestrator", "Start sequence %s: %s did not launch: %v", opID, svc.GetName(), err)
		}
		if svc.GetState() == services.StateFailed {
			return o.abortStart(opID, svc)
		}

		o.sleep(o.windows[svc.GetName()])

		if !svc.ConcludeWindow() && svc.GetState() == services.StateFailed {
			return o.abortStart(opID, svc)
		}
	}

	for _, svc := range o.startOrder {
		if svc.GetState() == services.StateFailed {
			return o.abortStart(opID, svc)
		}
	}

	o.controls.Stop.Set(true)
	logging.Info("Orchestrator", "Start sequence %s completed", opID)
	return nil
}

func (o *Orchestrator) abortStart(opID string, svc services.Service) error {
	logging.Warn("Orchestrator", "Start sequence %s aborted: %s failed", opID, svc.GetName())
	o.controls.Start.Set(true)
	o.controls.Stop.Set(o.anyRunning())
	return &StartAbortedError{Service: svc.GetName(), Err: svc.GetLastError()}
}

// StopAll stops every service in reverse dependency order, pausing for the
// settle delay after each stop command is launched. Both controls are
// re-enabled at the end, whatever the outcome of the individual stops.
func (o *Orchestrator) StopAll() error {
	if !o.controls.Stop.Enabled() {
		return fmt.Errorf("stop: %w", ErrControlDisabled)
	}
	if !o.seqMu.TryLock() {
		return ErrSequenceRunning
	}
	defer o.seqMu.Unlock()

	o.runStopSequence(false)
	return nil
}

// Shutdown is used when the supervisor exits. It waits for any in-flight
// sequence, stops services that are starting or running, and then releases
// leftover processes until ctx is done. It ignores the controls.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.seqMu.Lock()
	defer o.seqMu.Unlock()

	o.runStopSequence(true)

	var errs []error
	for _, svc := range o.stopOrder {
		if r, ok := svc.(Releaser); ok {
			if err := r.Release(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (o *Orchestrator) runStopSequence(onlyActive bool) {
	o.sequence.Store(SequenceStopping)
	defer o.sequence.Store(SequenceIdle)

	opID := uuid.NewString()
	o.controls.Start.Set(false)
	o.controls.Stop.Set(false)
	logging.Info("Orchestrator", "Stop sequence %s: %s", opID, o.names(o.stopOrder))

	for _, svc := range o.stopOrder {
		if onlyActive {
			if st := svc.GetState(); st != services.StateRunning && st != services.StateStarting {
				logging.Debug("Orchestrator", "Stop sequence %s: skipping %s (%s)", opID, svc.GetName(), st)
				continue
			}
		}
		if err := svc.Stop(); err != nil {
			logging.Warn("Orchestrator", "Stop sequence %s: %s did not launch: %v", opID, svc.GetName(), err)
		}
		o.sleep(o.stopSettle)
	}

	o.controls.Start.Set(true)
	o.controls.Stop.Set(true)
	logging.Info("Orchestrator", "Stop sequence %s completed", opID)
}

// onStateChange republishes state changes and re-enables controls when a
// service fails outside of a running sequence. While a sequence holds seqMu
// the controls belong to it.
func (o *Orchestrator) onStateChange(name string, oldState, newState services.ServiceState, err error) {
	logging.Debug("Orchestrator", "Service %s state changed: %s -> %s", name, oldState, newState)

	display := name
	if svc, ok := o.registry.Get(name); ok {
		display = svc.Status().Name
	}
	o.publish(StateChangedEvent{
		Service:   name,
		Name:      display,
		OldState:  oldState,
		NewState:  newState,
		Error:     err,
		Timestamp: time.Now(),
	})

	if newState != services.StateFailed || !o.seqMu.TryLock() {
		return
	}
	defer o.seqMu.Unlock()
	o.controls.Start.Set(true)
	o.controls.Stop.Set(o.anyRunning())
}

func (o *Orchestrator) onControlsChange(snapshot ControlsSnapshot) {
	o.publish(ControlsChangedEvent{Controls: snapshot, Timestamp: time.Now()})
}

func (o *Orchestrator) anyRunning() bool {
	for _, svc := range o.startOrder {
		if svc.GetState() == services.StateRunning {
			return true
		}
	}
	return false
}

func (o *Orchestrator) names(list []services.Service) []string {
	out := make([]string, 0, len(list))
	for _, svc := range list {
		out = append(out, svc.GetName())
	}
	return out
}

// Subscribe returns a channel receiving state and controls events. Slow
// subscribers miss events rather than block producers.
func (o *Orchestrator) Subscribe() <-chan Event {
	ch := make(chan Event, 100)
	o.mu.Lock()
	o.subscribers = append(o.subscribers, ch)
	o.mu.Unlock()
	return ch
}

func (o *Orchestrator) publish(event Event) {
	o.mu.RLock()
	subscribers := make([]chan<- Event, len(o.subscribers))
	copy(subscribers, o.subscribers)
	o.mu.RUnlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
			logging.Debug("Orchestrator", "Subscriber blocked, skipping %T", event)
		}
	}
}

// Status is a point in time view of the whole supervisor.
type Status struct {
	Sequence Sequence                 `json:"sequence"`
	Controls ControlsSnapshot         `json:"controls"`
	Services []services.ServiceStatus `json:"services"`
}

// Status returns per service state plus the current controls.
func (o *Orchestrator) Status() Status {
	st := Status{
		Sequence: o.CurrentSequence(),
		Controls: o.controls.Snapshot(),
	}
	for _, svc := range o.startOrder {
		st.Services = append(st.Services, svc.Status())
	}
	return st
}
