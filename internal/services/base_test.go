package services

import (
	"errors"
	"sync"
	"testing"
)

func TestNewBaseService(t *testing.T) {
	name := "test-service"
	dependencies := []string{"dep1", "dep2"}

	base := NewBaseService(name, dependencies)

	if base == nil {
		t.Fatal("Expected NewBaseService to return non-nil base service")
	}

	if base.GetName() != name {
		t.Errorf("Expected name %s, got %s", name, base.GetName())
	}

	if len(base.GetDependencies()) != len(dependencies) {
		t.Errorf("Expected %d dependencies, got %d", len(dependencies), len(base.GetDependencies()))
	}

	if base.GetState() != StateNotStarted {
		t.Errorf("Expected initial state %s, got %s", StateNotStarted, base.GetState())
	}

	if base.GetLastError() != nil {
		t.Errorf("Expected no initial error, got %v", base.GetLastError())
	}
}

func TestBaseServiceStateChangeCallback(t *testing.T) {
	base := NewBaseService("callback-test", nil)

	var calls int
	var receivedName string
	var receivedOld, receivedNew ServiceState
	var receivedErr error

	base.SetStateChangeCallback(func(name string, oldState, newState ServiceState, err error) {
		calls++
		receivedName = name
		receivedOld = oldState
		receivedNew = newState
		receivedErr = err
	})

	base.UpdateState(StateStarting, nil)
	if calls != 1 {
		t.Fatalf("Expected 1 callback, got %d", calls)
	}
	if receivedName != "callback-test" || receivedOld != StateNotStarted || receivedNew != StateStarting {
		t.Errorf("Unexpected callback arguments: %s %s -> %s", receivedName, receivedOld, receivedNew)
	}

	// Same state does not notify
	base.UpdateState(StateStarting, nil)
	if calls != 1 {
		t.Errorf("Expected no callback for unchanged state, got %d calls", calls)
	}

	testErr := errors.New("exit 1")
	base.UpdateState(StateFailed, testErr)
	if calls != 2 || receivedErr != testErr {
		t.Errorf("Expected failure callback with error, got %d calls and %v", calls, receivedErr)
	}
	if base.GetLastError() != testErr {
		t.Errorf("Expected last error %v, got %v", testErr, base.GetLastError())
	}
}

func TestBaseServiceCompareAndUpdate(t *testing.T) {
	base := NewBaseService("cas-test", nil)
	base.UpdateState(StateStarting, nil)
	since := base.StateSince()

	if base.CompareAndUpdate(StateStopping, StateStopped, nil) {
		t.Error("Expected CompareAndUpdate to fail for wrong expected state")
	}
	if base.GetState() != StateStarting {
		t.Errorf("State changed unexpectedly to %s", base.GetState())
	}
	if !base.StateSince().Equal(since) {
		t.Error("StateSince changed without a transition")
	}

	if !base.CompareAndUpdate(StateStarting, StateRunning, nil) {
		t.Error("Expected CompareAndUpdate to succeed")
	}
	if base.GetState() != StateRunning {
		t.Errorf("Expected %s, got %s", StateRunning, base.GetState())
	}
}

func TestBaseServiceConcurrentCompareAndUpdate(t *testing.T) {
	base := NewBaseService("race-test", nil)
	base.UpdateState(StateStarting, nil)

	var mu sync.Mutex
	winners := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if base.CompareAndUpdate(StateStarting, StateRunning, nil) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("Expected exactly one winner, got %d", winners)
	}
}

func TestDisplayStatus(t *testing.T) {
	tests := map[ServiceState]string{
		StateNotStarted:      StatusNotStarted,
		StateStarting:        StatusStarting,
		StateRunning:         StatusRunning,
		StateStopping:        StatusStopping,
		StateStopped:         StatusStopped,
		StateFailed:          StatusFailed,
		ServiceState("Mars"): "Mars",
	}
	for state, want := range tests {
		if got := DisplayStatus(state); got != want {
			t.Errorf("DisplayStatus(%s) = %s, want %s", state, got, want)
		}
	}
}

func TestIsTransitional(t *testing.T) {
	for _, s := range []ServiceState{StateStarting, StateStopping} {
		if !s.IsTransitional() {
			t.Errorf("%s should be transitional", s)
		}
	}
	for _, s := range []ServiceState{StateNotStarted, StateRunning, StateFailed, StateStopped} {
		if s.IsTransitional() {
			t.Errorf("%s should not be transitional", s)
		}
	}
}
