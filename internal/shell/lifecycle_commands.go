package shell

import (
	"context"
	"errors"

	"minkafka/internal/orchestrator"
	"minkafka/pkg/logging"
)

// StartCommand runs the start sequence in the background.
type StartCommand struct {
	sup   Supervisor
	out   *console
	spawn func(func())
}

// Execute checks the start control and launches the sequence. Progress is
// reported through state changes and alerts.
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if !c.sup.Controls().Start {
		return errors.New("start is not available right now")
	}
	c.out.Line("Starting services...")
	c.spawn(func() {
		err := c.sup.StartAll()
		var aborted *orchestrator.StartAbortedError
		switch {
		case err == nil:
			logging.Info("Shell", "All services started")
		case errors.As(err, &aborted):
			logging.Warn("Shell", "Start sequence aborted: %v", err)
		default:
			logging.Warn("Shell", "Start sequence not run: %v", err)
		}
	})
	return nil
}

func (c *StartCommand) Usage() string                     { return "start" }
func (c *StartCommand) Description() string               { return "Start the coordination service, then the broker" }
func (c *StartCommand) Completions(input string) []string { return nil }
func (c *StartCommand) Aliases() []string                 { return []string{"up"} }

// StopCommand runs the stop sequence in the background.
type StopCommand struct {
	sup   Supervisor
	out   *console
	spawn func(func())
}

// Execute checks the stop control and launches the sequence.
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if !c.sup.Controls().Stop {
		return errors.New("stop is not available right now")
	}
	c.out.Line("Stopping services...")
	c.spawn(func() {
		if err := c.sup.StopAll(); err != nil {
			logging.Warn("Shell", "Stop sequence not run: %v", err)
			return
		}
		logging.Info("Shell", "Stop sequence finished")
	})
	return nil
}

func (c *StopCommand) Usage() string                     { return "stop" }
func (c *StopCommand) Description() string               { return "Stop the broker, then the coordination service" }
func (c *StopCommand) Completions(input string) []string { return nil }
func (c *StopCommand) Aliases() []string                 { return []string{"down"} }
