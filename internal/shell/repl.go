package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/text"

	"minkafka/internal/formatting"
	"minkafka/internal/orchestrator"
	"minkafka/internal/services"
	"minkafka/pkg/logging"
)

const promptChevron = "»"

// Options configures the shell.
type Options struct {
	// HistoryFile defaults to a file in the user's temp directory.
	HistoryFile string
	Color       bool
}

// REPL is the interactive control surface. Long running operations are
// launched in the background so the prompt stays responsive; their outcome
// is printed above the prompt as state changes and alerts arrive.
type REPL struct {
	sup       Supervisor
	opts      Options
	registry  *Registry
	formatter formatting.Formatter
	out       *console
	rl        *readline.Instance
	wg        sync.WaitGroup

	mu     sync.RWMutex
	states map[string]services.ServiceState
	order  []string
}

// New creates a shell driving sup.
func New(sup Supervisor, opts Options) *REPL {
	if opts.HistoryFile == "" {
		opts.HistoryFile = filepath.Join(os.TempDir(), ".minkafka_history")
	}
	r := &REPL{
		sup:       sup,
		opts:      opts,
		registry:  NewRegistry(),
		formatter: formatting.NewFormatter(formatting.Options{Format: formatting.FormatTable, Color: opts.Color}),
		out:       &console{w: os.Stdout, color: opts.Color},
		states:    make(map[string]services.ServiceState),
	}
	for _, svc := range sup.Status().Services {
		r.order = append(r.order, svc.Name)
		r.states[svc.Name] = svc.State
	}
	r.registerCommands()
	return r
}

func (r *REPL) registerCommands() {
	r.registry.Register("help", &HelpCommand{out: r.out, registry: r.registry})
	r.registry.Register("start", &StartCommand{sup: r.sup, out: r.out, spawn: r.spawn})
	r.registry.Register("stop", &StopCommand{sup: r.sup, out: r.out, spawn: r.spawn})
	r.registry.Register("status", &StatusCommand{sup: r.sup, out: r.out, formatter: r.formatter})
	r.registry.Register("controls", &ControlsCommand{sup: r.sup, out: r.out, formatter: r.formatter})
	r.registry.Register("logs", &LogsCommand{sup: r.sup, out: r.out})
	r.registry.Register("topic", &TopicCommand{sup: r.sup, out: r.out, spawn: r.spawn})
	r.registry.Register("send", &SendCommand{sup: r.sup, out: r.out, spawn: r.spawn})
	r.registry.Register("exit", &ExitCommand{})
}

// spawn runs fn in the background and tracks it for Wait.
func (r *REPL) spawn(fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn()
	}()
}

// Wait blocks until every background operation launched by the shell has
// returned.
func (r *REPL) Wait() {
	r.wg.Wait()
}

// executeCommand parses and executes one line of input.
func (r *REPL) executeCommand(ctx context.Context, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	name := strings.ToLower(parts[0])
	command, exists := r.registry.Get(name)
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", parts[0])
	}
	return command.Execute(ctx, parts[1:])
}

// buildPrompt shows a short state badge per service, for example
// "minkafka Zookeeper:Running Kafka:Starting » ".
func (r *REPL) buildPrompt() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts := []string{"minkafka"}
	for _, name := range r.order {
		state := r.states[name]
		badge := fmt.Sprintf("%s:%s", name, state)
		parts = append(parts, r.colorBadge(state, badge))
	}
	parts = append(parts, promptChevron)
	return strings.Join(parts, " ") + " "
}

func (r *REPL) colorBadge(state services.ServiceState, badge string) string {
	if !r.opts.Color {
		return badge
	}
	switch state {
	case services.StateRunning:
		return text.FgHiGreen.Sprint(badge)
	case services.StateFailed:
		return text.FgHiRed.Sprint(badge)
	case services.StateStarting, services.StateStopping:
		return text.FgHiYellow.Sprint(badge)
	default:
		return text.FgHiBlack.Sprint(badge)
	}
}

func (r *REPL) createCompleter() readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range r.registry.List() {
		cmd, _ := r.registry.Get(name)
		items = append(items, readline.PcItem(name, readline.PcItemDynamic(func(line string) []string {
			return cmd.Completions(line)
		})))
	}
	return readline.NewPrefixCompleter(items...)
}

// Run starts the shell and processes commands until exit, EOF or ctx is
// done. Feeds are printed above the prompt while it runs.
func (r *REPL) Run(ctx context.Context, feeds Feeds) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            r.buildPrompt(),
		HistoryFile:       r.opts.HistoryFile,
		AutoComplete:      r.createCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl
	r.out.setWriter(rl.Stdout())
	logging.Debug("Shell", "History file %s", r.opts.HistoryFile)

	listenCtx, stopListening := context.WithCancel(ctx)
	var listeners sync.WaitGroup
	listeners.Add(1)
	go func() {
		defer listeners.Done()
		r.listen(listenCtx, feeds)
	}()
	defer func() {
		stopListening()
		listeners.Wait()
	}()

	// Readline blocks on the terminal; closing it unblocks the loop on cancel.
	go func() {
		<-listenCtx.Done()
		rl.Close()
	}()

	r.out.Line("minkafka shell. Type 'help' for available commands. Use TAB for completion.")

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("readline error: %w", err)
		}

		if err := r.executeCommand(ctx, line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			r.out.Error("Error: %v", err)
		}
	}
}

// listen prints asynchronous output until ctx is done or all feeds close.
func (r *REPL) listen(ctx context.Context, feeds Feeds) {
	eventsCh, alertsCh, logsCh := feeds.Events, feeds.Alerts, feeds.Logs
	for eventsCh != nil || alertsCh != nil || logsCh != nil {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-eventsCh:
			if !ok {
				eventsCh = nil
				continue
			}
			r.handleEvent(ev)

		case alert, ok := <-alertsCh:
			if !ok {
				alertsCh = nil
				continue
			}
			r.printAbovePrompt(r.formatter.FormatAlert(alert))

		case entry, ok := <-logsCh:
			if !ok {
				logsCh = nil
				continue
			}
			r.printAbovePrompt(entry.String())
		}
	}
}

func (r *REPL) handleEvent(ev orchestrator.Event) {
	e, ok := ev.(orchestrator.StateChangedEvent)
	if !ok {
		return
	}
	r.mu.Lock()
	if _, known := r.states[e.Name]; !known {
		r.order = append(r.order, e.Name)
	}
	r.states[e.Name] = e.NewState
	r.mu.Unlock()

	r.printAbovePrompt(fmt.Sprintf("%s: %s → %s", e.Name, services.DisplayStatus(e.OldState), services.DisplayStatus(e.NewState)))
	if r.rl != nil {
		r.rl.SetPrompt(r.buildPrompt())
		r.rl.Refresh()
	}
}

func (r *REPL) printAbovePrompt(line string) {
	if r.rl != nil {
		r.out.Raw("\r\033[K")
	}
	r.out.Line("%s", line)
	if r.rl != nil {
		r.rl.Refresh()
	}
}
