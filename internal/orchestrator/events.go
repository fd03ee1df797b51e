package orchestrator

import (
	"time"

	"minkafka/internal/services"
)

// Event is delivered to subscribers. It is either a StateChangedEvent or a
// ControlsChangedEvent.
type Event interface {
	isEvent()
}

// StateChangedEvent reports one service state transition.
type StateChangedEvent struct {
	Service   string
	Name      string
	OldState  services.ServiceState
	NewState  services.ServiceState
	Error     error
	Timestamp time.Time
}

// ControlsChangedEvent reports a change to any caller-facing flag.
type ControlsChangedEvent struct {
	Controls  ControlsSnapshot
	Timestamp time.Time
}

func (StateChangedEvent) isEvent()    {}
func (ControlsChangedEvent) isEvent() {}
