package shell

import (
	"context"

	"minkafka/internal/events"
	"minkafka/internal/orchestrator"
	"minkafka/internal/output"
	"minkafka/internal/publish"
	"minkafka/pkg/logging"
)

// Supervisor is the control surface the shell drives.
type Supervisor interface {
	StartAll() error
	StopAll() error
	Status() orchestrator.Status
	Controls() orchestrator.ControlsSnapshot
	ServiceNames() []string
	Output(service string) (*output.Buffer, error)
	CreateTopic(name string) error
	Send(ctx context.Context, topic, content string) publish.Result
}

// Feeds are the asynchronous streams printed above the prompt. Any of them
// may be nil.
type Feeds struct {
	Events <-chan orchestrator.Event
	Alerts <-chan events.Alert
	Logs   <-chan logging.LogEntry
}

// Command represents a shell command that can be executed interactively.
type Command interface {
	// Execute runs the command with the given arguments
	Execute(ctx context.Context, args []string) error

	// Usage returns the usage string for the command
	Usage() string

	// Description returns a brief description of what the command does
	Description() string

	// Completions returns possible completions for the argument being typed
	Completions(input string) []string

	// Aliases returns alternative names for this command
	Aliases() []string
}
