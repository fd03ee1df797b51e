package services

import (
	"sync"
	"time"
)

// BaseService holds the state every service shares: name, dependencies,
// current state, last error and the state change callback.
type BaseService struct {
	mu            sync.RWMutex
	name          string
	dependencies  []string
	state         ServiceState
	since         time.Time
	lastError     error
	stateChangeCb StateChangeCallback
}

// NewBaseService creates a new base service
func NewBaseService(name string, dependencies []string) *BaseService {
	return &BaseService{
		name:         name,
		dependencies: dependencies,
		state:        StateNotStarted,
		since:        time.Now(),
	}
}

// GetName returns the service name
func (b *BaseService) GetName() string {
	return b.name
}

// GetDependencies returns the service dependencies
func (b *BaseService) GetDependencies() []string {
	return b.dependencies
}

// GetState returns the current state
func (b *BaseService) GetState() ServiceState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// StateSince returns when the current state was entered.
func (b *BaseService) StateSince() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.since
}

// GetLastError returns the last error
func (b *BaseService) GetLastError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastError
}

// SetStateChangeCallback sets the state change callback
func (b *BaseService) SetStateChangeCallback(callback StateChangeCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stateChangeCb = callback
}

// UpdateState updates the service state and notifies the callback
func (b *BaseService) UpdateState(newState ServiceState, err error) {
	b.mu.Lock()
	oldState := b.state
	b.setLocked(newState, err)
	callback := b.stateChangeCb
	b.mu.Unlock()

	// Call the callback outside of the lock to avoid deadlocks
	if callback != nil && oldState != newState {
		callback(b.name, oldState, newState, err)
	}
}

// CompareAndUpdate moves to newState only if the current state is expected.
// It reports whether the transition happened.
func (b *BaseService) CompareAndUpdate(expected, newState ServiceState, err error) bool {
	b.mu.Lock()
	if b.state != expected {
		b.mu.Unlock()
		return false
	}
	b.setLocked(newState, err)
	callback := b.stateChangeCb
	b.mu.Unlock()

	if callback != nil && expected != newState {
		callback(b.name, expected, newState, err)
	}
	return true
}

func (b *BaseService) setLocked(state ServiceState, err error) {
	if b.state != state {
		b.since = time.Now()
	}
	b.state = state
	b.lastError = err
}
