package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"minkafka/internal/events"
	"minkafka/internal/output"
	"minkafka/internal/runner"
	"minkafka/pkg/logging"
)

// ErrBusy is returned when a start or stop is requested while the service
// is already mid transition.
var ErrBusy = errors.New("service is busy")

// Launcher starts installation scripts.
type Launcher interface {
	Run(command string, args []string, workingDir string) (*runner.Process, error)
}

// Controller owns start and stop of one external service. It is the only
// writer of the service's state and output log.
type Controller struct {
	*BaseService

	spec     ServiceSpec
	launcher Launcher
	buffer   *output.Buffer
	alerts   *events.Emitter

	mu        sync.Mutex
	startProc *runner.Process
	watchers  sync.WaitGroup
}

// NewController creates a controller for spec. Alerts are raised through
// emitter.
func NewController(spec ServiceSpec, launcher Launcher, emitter *events.Emitter) *Controller {
	return &Controller{
		BaseService: NewBaseService(spec.ID, spec.DependsOn),
		spec:        spec,
		launcher:    launcher,
		buffer:      output.NewBuffer(),
		alerts:      emitter,
	}
}

// Spec returns the launch descriptor.
func (c *Controller) Spec() ServiceSpec {
	return c.spec
}

// DisplayName returns the human readable service name used in alerts.
func (c *Controller) DisplayName() string {
	return c.spec.Name
}

// Output returns the service's output log.
func (c *Controller) Output() *output.Buffer {
	return c.buffer
}

// Pid returns the pid of the live start process, or 0.
func (c *Controller) Pid() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.startProc == nil {
		return 0
	}
	return c.startProc.Pid
}

// Status returns a point in time snapshot.
func (c *Controller) Status() ServiceStatus {
	st := ServiceStatus{
		Name:        c.spec.Name,
		State:       c.GetState(),
		Since:       c.StateSince(),
		Pid:         c.Pid(),
		OutputLines: c.buffer.Len(),
	}
	if err := c.GetLastError(); err != nil {
		st.LastError = err.Error()
	}
	return st
}

// Start moves the service to Starting and launches its start command. It
// returns once the process is launched. The service becomes Failed if the
// process exits non-zero while Starting; it only becomes Running through
// ConcludeWindow.
func (c *Controller) Start() error {
	if state := c.GetState(); state.IsTransitional() || state == StateRunning {
		return fmt.Errorf("cannot start %s while %s: %w", c.spec.Name, state, ErrBusy)
	}

	c.UpdateState(StateStarting, nil)
	logging.Info("Service", "Starting %s", c.spec.Name)

	proc, err := c.launcher.Run(c.spec.StartCommand, c.spec.StartArgs(), "")
	if err != nil {
		c.buffer.Append(err.Error())
		c.UpdateState(StateFailed, err)
		c.alerts.Emit(events.ReasonServiceStartFailed, events.EventData{Service: c.spec.Name, Error: err.Error()})
		return err
	}

	c.mu.Lock()
	c.startProc = proc
	c.mu.Unlock()

	pump := output.StartPump(proc.Stdout, c.buffer)
	stderr := captureStream(proc.Stderr)

	c.watchers.Add(1)
	go func() {
		defer c.watchers.Done()
		c.watchStart(proc, pump, stderr)
	}()
	return nil
}

// ConcludeWindow is called by the sequencer once the stabilization window of
// a started service has elapsed. A service still Starting becomes Running.
// It reports false when the service already left Starting.
func (c *Controller) ConcludeWindow() bool {
	if !c.CompareAndUpdate(StateStarting, StateRunning, nil) {
		return false
	}
	logging.Info("Service", "%s is running (pid %d)", c.spec.Name, c.Pid())
	return true
}

// watchStart waits for the start process to end and classifies the exit by
// the state the service is in at that moment.
func (c *Controller) watchStart(proc *runner.Process, pump *output.Pump, stderr <-chan string) {
	if err := pump.Wait(); err != nil {
		logging.Warn("Pump", "Reading output of %s failed: %v", c.spec.Name, err)
	}
	errText := <-stderr
	code, err := proc.Wait()

	c.mu.Lock()
	if c.startProc == proc {
		c.startProc = nil
	}
	c.mu.Unlock()

	exitErr := withStderr(err, errText)
	unexpected := exitErr
	if unexpected == nil {
		unexpected = fmt.Errorf("%s exited with code %d", c.spec.StartCommand, code)
	}

	if err != nil {
		c.buffer.AppendText(errText)
	}

	switch {
	case err != nil && c.CompareAndUpdate(StateStarting, StateFailed, exitErr):
		c.alerts.Emit(events.ReasonServiceStartFailed, events.EventData{Service: c.spec.Name, Error: errText})

	case err == nil && c.CompareAndUpdate(StateStarting, StateStopped, nil):
		logging.Warn("Service", "%s start command exited cleanly before its window elapsed", c.spec.Name)

	case c.CompareAndUpdate(StateRunning, StateFailed, unexpected):
		c.alerts.Emit(events.ReasonServiceExited, events.EventData{Service: c.spec.Name, Error: errText})

	default:
		logging.Debug("Service", "%s start process exited with code %d while %s", c.spec.Name, code, c.GetState())
	}
}

// Stop moves the service to Stopping and launches its stop command. It
// returns once the process is launched. The service becomes Stopped when the
// stop command exits 0 and Failed otherwise.
func (c *Controller) Stop() error {
	if state := c.GetState(); state == StateStopping {
		return fmt.Errorf("cannot stop %s while %s: %w", c.spec.Name, state, ErrBusy)
	}

	c.UpdateState(StateStopping, nil)
	logging.Info("Service", "Stopping %s", c.spec.Name)

	proc, err := c.launcher.Run(c.spec.StopCommand, c.spec.StopArgs(), "")
	if err != nil {
		c.buffer.Append(err.Error())
		c.UpdateState(StateFailed, err)
		c.alerts.Emit(events.ReasonServiceStopFailed, events.EventData{Service: c.spec.Name, Error: err.Error()})
		return err
	}

	pump := output.StartPump(proc.Stdout, c.buffer)
	stderr := captureStream(proc.Stderr)

	c.watchers.Add(1)
	go func() {
		defer c.watchers.Done()
		if err := pump.Wait(); err != nil {
			logging.Warn("Pump", "Reading stop output of %s failed: %v", c.spec.Name, err)
		}
		errText := <-stderr
		if _, err := proc.Wait(); err != nil {
			c.buffer.AppendText(errText)
			if c.CompareAndUpdate(StateStopping, StateFailed, withStderr(err, errText)) {
				c.alerts.Emit(events.ReasonServiceStopFailed, events.EventData{Service: c.spec.Name, Error: errText})
			}
			return
		}
		if c.CompareAndUpdate(StateStopping, StateStopped, nil) {
			logging.Info("Service", "%s stopped", c.spec.Name)
		}
	}()
	return nil
}

// Release kills a start process that is still alive and waits, until ctx is
// done, for every output watcher to finish. It is used when the supervisor
// itself shuts down.
func (c *Controller) Release(ctx context.Context) error {
	c.mu.Lock()
	proc := c.startProc
	c.mu.Unlock()

	if proc != nil {
		logging.Warn("Service", "Killing leftover %s process (pid %d)", c.spec.Name, proc.Pid)
		if err := proc.Kill(); err != nil {
			logging.Error("Service", err, "Failed to kill %s", c.spec.Name)
		}
	}

	done := make(chan struct{})
	go func() {
		c.watchers.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s to exit: %w", c.spec.Name, ctx.Err())
	}
}

// captureStream reads r to EOF on its own goroutine and delivers the text.
func captureStream(r io.Reader) <-chan string {
	ch := make(chan string, 1)
	go func() {
		var sb strings.Builder
		_, _ = io.Copy(&sb, r)
		ch <- sb.String()
	}()
	return ch
}

func withStderr(err error, stderr string) error {
	var exitErr *runner.ServiceExitError
	if errors.As(err, &exitErr) {
		exitErr.Stderr = stderr
	}
	return err
}
