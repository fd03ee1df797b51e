package events

import (
	"time"
)

// EventType represents the severity of an alert.
type EventType string

const (
	// EventTypeNormal indicates a notable success or informational alert.
	EventTypeNormal EventType = "Normal"

	// EventTypeWarning indicates a failure the user should look at.
	EventTypeWarning EventType = "Warning"
)

// EventReason is the machine readable cause of an alert.
type EventReason string

// Service lifecycle reasons
const (
	// ReasonServiceStartFailed indicates a start command could not be launched
	// or exited non-zero inside its stabilization window.
	ReasonServiceStartFailed EventReason = "ServiceStartFailed"

	// ReasonServiceStopFailed indicates a stop command could not be launched
	// or exited non-zero.
	ReasonServiceStopFailed EventReason = "ServiceStopFailed"

	// ReasonServiceExited indicates a running service process exited on its own.
	ReasonServiceExited EventReason = "ServiceExited"

	// ReasonPropertiesChanged indicates a watched properties file changed
	// while its service was running.
	ReasonPropertiesChanged EventReason = "PropertiesChanged"
)

// One-shot operation reasons
const (
	// ReasonTopicNameInvalid indicates a topic name failed validation.
	ReasonTopicNameInvalid EventReason = "TopicNameInvalid"

	// ReasonTopicCreated indicates the provisioning command exited 0.
	ReasonTopicCreated EventReason = "TopicCreated"

	// ReasonTopicCreateFailed indicates the provisioning command failed.
	ReasonTopicCreateFailed EventReason = "TopicCreateFailed"

	// ReasonMessageSent indicates the broker acknowledged the message as persisted.
	ReasonMessageSent EventReason = "MessageSent"

	// ReasonMessageSendFailed indicates the message was not persisted in time.
	ReasonMessageSendFailed EventReason = "MessageSendFailed"
)

// EventData holds contextual information for alert message templating.
type EventData struct {
	// Service is the display name of the service involved.
	Service string

	// Topic is the topic name for one-shot operations.
	Topic string

	// Error contains captured error output for failure alerts.
	Error string
}

// Alert is one human readable notification for the presentation layer.
type Alert struct {
	ID      string      `json:"id"`
	Time    time.Time   `json:"time"`
	Type    EventType   `json:"type"`
	Reason  EventReason `json:"reason"`
	Service string      `json:"service,omitempty"`
	Message string      `json:"message"`
}

// AlertHandler consumes alerts. Exactly one handler is registered per
// emitter, at construction.
type AlertHandler func(Alert)

// getEventType returns the appropriate EventType for a given EventReason.
func getEventType(reason EventReason) EventType {
	switch reason {
	case ReasonServiceStartFailed,
		ReasonServiceStopFailed,
		ReasonServiceExited,
		ReasonTopicNameInvalid,
		ReasonTopicCreateFailed,
		ReasonMessageSendFailed:
		return EventTypeWarning
	default:
		return EventTypeNormal
	}
}
