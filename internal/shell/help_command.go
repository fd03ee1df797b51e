package shell

import (
	"context"
	"strings"
)

// errExit signals the loop to leave.
var errExit = exitError{}

type exitError struct{}

func (exitError) Error() string { return "exit" }

// HelpCommand shows available commands and usage information
type HelpCommand struct {
	out      *console
	registry *Registry
}

// Execute shows general help or the help of one command.
func (h *HelpCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.showGeneralHelp()
		return nil
	}

	name := strings.ToLower(args[0])
	cmd, exists := h.registry.Get(name)
	if !exists {
		h.out.Error("Unknown command: %s", name)
		h.out.Line("Use 'help' to see all available commands.")
		return nil
	}

	h.out.Line("Command: %s", name)
	h.out.Line("Description: %s", cmd.Description())
	h.out.Line("Usage: %s", cmd.Usage())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		h.out.Line("Aliases: %s", strings.Join(aliases, ", "))
	}
	return nil
}

func (h *HelpCommand) showGeneralHelp() {
	h.out.Line("Available commands:")
	for _, name := range h.registry.List() {
		cmd, _ := h.registry.Get(name)
		h.out.Line("  %-28s - %s", cmd.Usage(), cmd.Description())
	}
	h.out.Line("")
	h.out.Line("Keyboard shortcuts:")
	h.out.Line("  TAB                          - Auto-complete commands and arguments")
	h.out.Line("  Ctrl+R                       - Search command history")
	h.out.Line("  Ctrl+D                       - Exit the shell")
}

func (h *HelpCommand) Usage() string                     { return "help [command]" }
func (h *HelpCommand) Description() string               { return "Show help information for commands" }
func (h *HelpCommand) Completions(input string) []string { return h.registry.AllCompletions() }
func (h *HelpCommand) Aliases() []string                 { return []string{"?"} }

// ExitCommand leaves the shell. Services keep their state until the
// supervisor shuts down.
type ExitCommand struct{}

func (e *ExitCommand) Execute(ctx context.Context, args []string) error { return errExit }

func (e *ExitCommand) Usage() string                     { return "exit" }
func (e *ExitCommand) Description() string               { return "Stop the services and exit" }
func (e *ExitCommand) Completions(input string) []string { return nil }
func (e *ExitCommand) Aliases() []string                 { return []string{"quit"} }
