package metrics

import "time"

// Outcome labels for one-shot operations.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
	OutcomeTimeout = "timeout"
)

// Collector receives supervisor metrics.
type Collector interface {
	// ServiceStateTransition records a state transition of a service
	ServiceStateTransition(service, fromState, toState string)

	// ServiceOutputLines records the current size of a service's output log
	ServiceOutputLines(service string, lines int)

	// Alert records one raised alert
	Alert(reason, eventType string)

	// TopicProvisioned records the outcome of one createTopic call
	TopicProvisioned(outcome string, duration time.Duration)

	// MessagePublished records the outcome of one send call
	MessagePublished(outcome string, duration time.Duration)
}

// noopCollector is a no-op implementation of Collector
type noopCollector struct{}

func (n *noopCollector) ServiceStateTransition(service, fromState, toState string) {}
func (n *noopCollector) ServiceOutputLines(service string, lines int)              {}
func (n *noopCollector) Alert(reason, eventType string)                            {}
func (n *noopCollector) TopicProvisioned(outcome string, duration time.Duration)   {}
func (n *noopCollector) MessagePublished(outcome string, duration time.Duration)   {}

// NewNoopCollector creates a no-op metrics collector
func NewNoopCollector() Collector {
	return &noopCollector{}
}
