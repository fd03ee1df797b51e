package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"minkafka/internal/formatting"
)

const defaultLogLines = 50

// StatusCommand prints the per-service status table.
type StatusCommand struct {
	sup       Supervisor
	out       *console
	formatter formatting.Formatter
}

// Execute renders the status, optionally as json or yaml.
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	f := c.formatter
	if len(args) > 0 {
		format, err := formatting.ParseOutputFormat(args[0])
		if err != nil {
			return err
		}
		f = formatting.NewFormatter(formatting.Options{Format: format})
	}
	rendered, err := f.FormatStatus(c.sup.Status())
	if err != nil {
		return err
	}
	c.out.Raw(rendered)
	return nil
}

func (c *StatusCommand) Usage() string       { return "status [table|json|yaml]" }
func (c *StatusCommand) Description() string { return "Show service states and available controls" }
func (c *StatusCommand) Aliases() []string   { return []string{"st", "ps"} }

func (c *StatusCommand) Completions(input string) []string {
	return []string{"table", "json", "yaml"}
}

// ControlsCommand prints which operations are currently available.
type ControlsCommand struct {
	sup       Supervisor
	out       *console
	formatter formatting.Formatter
}

func (c *ControlsCommand) Execute(ctx context.Context, args []string) error {
	rendered, err := c.formatter.FormatControls(c.sup.Controls())
	if err != nil {
		return err
	}
	c.out.Raw(rendered)
	return nil
}

func (c *ControlsCommand) Usage() string                     { return "controls" }
func (c *ControlsCommand) Description() string               { return "Show which operations are enabled" }
func (c *ControlsCommand) Completions(input string) []string { return nil }
func (c *ControlsCommand) Aliases() []string                 { return nil }

// LogsCommand prints the tail of a service's output.
type LogsCommand struct {
	sup Supervisor
	out *console
}

// Execute prints the last n lines (default 50) of the named service.
func (c *LogsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: " + c.Usage())
	}
	buf, err := c.sup.Output(args[0])
	if err != nil {
		return err
	}

	n := defaultLogLines
	if len(args) > 1 {
		n, err = strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid line count %q", args[1])
		}
	}

	lines := buf.Lines()
	if len(lines) == 0 {
		c.out.Line("No output from %s yet.", args[0])
		return nil
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	c.out.Raw(strings.Join(lines, "\n") + "\n")
	return nil
}

func (c *LogsCommand) Usage() string       { return "logs <service> [lines]" }
func (c *LogsCommand) Description() string { return "Show the most recent output of a service" }
func (c *LogsCommand) Aliases() []string   { return []string{"output"} }

func (c *LogsCommand) Completions(input string) []string {
	return c.sup.ServiceNames()
}
