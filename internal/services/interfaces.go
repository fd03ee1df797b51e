package services

import (
	"minkafka/internal/output"
)

// ServiceState is the lifecycle status of one supervised service process.
type ServiceState string

const (
	StateNotStarted ServiceState = "NotStarted"
	StateStarting   ServiceState = "Starting"
	StateRunning    ServiceState = "Running"
	StateFailed     ServiceState = "Failed"
	StateStopping   ServiceState = "Stopping"
	StateStopped    ServiceState = "Stopped"
)

// IsTransitional reports whether the state is mid start or mid stop.
func (s ServiceState) IsTransitional() bool {
	return s == StateStarting || s == StateStopping
}

// Service is the control surface of one supervised service. Start and Stop
// return as soon as the command has been launched; the outcome is observed
// through GetState and the state change callback.
type Service interface {
	// Lifecycle management
	Start() error
	Stop() error

	// ConcludeWindow moves a Starting service to Running once its
	// stabilization window has elapsed. It reports false if the service is
	// no longer Starting.
	ConcludeWindow() bool

	// State management
	GetState() ServiceState
	GetLastError() error

	// Service metadata
	GetName() string
	GetDependencies() []string

	// Output returns the service's output log.
	Output() *output.Buffer

	// Status returns a point in time snapshot.
	Status() ServiceStatus

	// SetStateChangeCallback registers the single state observer.
	SetStateChangeCallback(callback StateChangeCallback)
}

// StateChangeCallback is called when a service's state changes. It is never
// called with the service's lock held.
type StateChangeCallback func(name string, oldState, newState ServiceState, err error)

// ServiceRegistry manages all registered services
type ServiceRegistry interface {
	// Register adds a service to the registry
	Register(service Service) error

	// Get returns a service by name
	Get(name string) (Service, bool)

	// GetAll returns all registered services in registration order
	GetAll() []Service
}
