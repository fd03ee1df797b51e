package orchestrator

import (
	"sync"
	"sync/atomic"
)

// Control names one caller-facing operation.
type Control string

const (
	ControlStart       Control = "start"
	ControlStop        Control = "stop"
	ControlCreateTopic Control = "createTopic"
	ControlSend        Control = "send"
)

// Flag is one enable/disable signal. Each flag has exactly one writer: the
// orchestrator owns start and stop, the topic provisioner owns createTopic
// and the publisher owns send. Readers may be anywhere.
type Flag struct {
	name    Control
	enabled atomic.Bool
	owner   *Controls
}

// Name returns the control this flag guards.
func (f *Flag) Name() Control {
	return f.name
}

// Enabled reports whether the operation may currently be invoked.
func (f *Flag) Enabled() bool {
	return f.enabled.Load()
}

// Set updates the flag and notifies the listener when the value changed.
func (f *Flag) Set(enabled bool) {
	if f.enabled.Swap(enabled) != enabled {
		f.owner.notify()
	}
}

// ControlsSnapshot is a point in time copy of all flags.
type ControlsSnapshot struct {
	Start       bool `json:"start"`
	Stop        bool `json:"stop"`
	CreateTopic bool `json:"createTopic"`
	Send        bool `json:"send"`
}

// Enabled returns the value of one control.
func (s ControlsSnapshot) Enabled(c Control) bool {
	switch c {
	case ControlStart:
		return s.Start
	case ControlStop:
		return s.Stop
	case ControlCreateTopic:
		return s.CreateTopic
	case ControlSend:
		return s.Send
	default:
		return false
	}
}

// Controls is the aggregate of the four caller-facing flags. It is created
// by the orchestrator and passed by reference to the one-shot operations,
// each of which writes only its own flag. All flags start enabled.
type Controls struct {
	Start       *Flag
	Stop        *Flag
	CreateTopic *Flag
	Send        *Flag

	mu       sync.RWMutex
	listener func(ControlsSnapshot)
}

// NewControls creates the flag set with every control enabled.
func NewControls() *Controls {
	c := &Controls{}
	c.Start = c.newFlag(ControlStart)
	c.Stop = c.newFlag(ControlStop)
	c.CreateTopic = c.newFlag(ControlCreateTopic)
	c.Send = c.newFlag(ControlSend)
	return c
}

func (c *Controls) newFlag(name Control) *Flag {
	f := &Flag{name: name, owner: c}
	f.enabled.Store(true)
	return f
}

// Snapshot returns the current value of every flag.
func (c *Controls) Snapshot() ControlsSnapshot {
	return ControlsSnapshot{
		Start:       c.Start.Enabled(),
		Stop:        c.Stop.Enabled(),
		CreateTopic: c.CreateTopic.Enabled(),
		Send:        c.Send.Enabled(),
	}
}

// setListener registers the single change observer.
func (c *Controls) setListener(fn func(ControlsSnapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = fn
}

func (c *Controls) notify() {
	c.mu.RLock()
	fn := c.listener
	c.mu.RUnlock()
	if fn != nil {
		fn(c.Snapshot())
	}
}
