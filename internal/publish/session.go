package publish

import (
	"context"
	"fmt"
	"time"
)

// Status is the durability reported for one published message.
type Status int

const (
	StatusNotPersisted Status = iota
	StatusPossiblyPersisted
	StatusPersisted
)

func (s Status) String() string {
	switch s {
	case StatusPersisted:
		return "Persisted"
	case StatusPossiblyPersisted:
		return "PossiblyPersisted"
	default:
		return "NotPersisted"
	}
}

// Session is an open connection able to publish to the broker. It is
// acquired for one Send call and closed exactly once when that call ends.
type Session interface {
	// Publish sends value to topic and waits for the broker's verdict or
	// for ctx to be done.
	Publish(ctx context.Context, topic string, value []byte) (Status, error)
	Close() error
}

// SessionFactory opens a session against bootstrapServer.
type SessionFactory func(bootstrapServer string) (Session, error)

// Request is one publish attempt.
type Request struct {
	Topic   string
	Content string
	Timeout time.Duration
}

// TimeoutError means the broker gave no verdict before the deadline.
type TimeoutError struct {
	Topic   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("publishing to %s timed out after %s", e.Topic, e.Timeout)
}

// NotPersistedError means the publish completed but the message was not
// durably accepted, or the attempt failed before the broker answered.
type NotPersistedError struct {
	Topic  string
	Status Status
	Err    error
}

func (e *NotPersistedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("message to %s not persisted: %v", e.Topic, e.Err)
	}
	return fmt.Sprintf("message to %s not persisted (%s)", e.Topic, e.Status)
}

func (e *NotPersistedError) Unwrap() error {
	return e.Err
}
