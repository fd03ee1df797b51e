package services

import "time"

// ServiceStatus is a point in time view of one service.
type ServiceStatus struct {
	Name        string       `json:"name"`
	State       ServiceState `json:"state"`
	Since       time.Time    `json:"since"`
	Pid         int          `json:"pid,omitempty"`
	OutputLines int          `json:"outputLines"`
	LastError   string       `json:"lastError,omitempty"`
}

// Status values as shown to users.
const (
	StatusNotStarted = "Not started"
	StatusStarting   = "Starting"
	StatusRunning    = "Running"
	StatusStopping   = "Stopping"
	StatusStopped    = "Stopped"
	StatusFailed     = "Failed"
)

// DisplayStatus maps a state to the text shown in status tables.
func DisplayStatus(state ServiceState) string {
	switch state {
	case StateNotStarted:
		return StatusNotStarted
	case StateStarting:
		return StatusStarting
	case StateRunning:
		return StatusRunning
	case StateStopping:
		return StatusStopping
	case StateStopped:
		return StatusStopped
	case StateFailed:
		return StatusFailed
	default:
		return string(state)
	}
}
