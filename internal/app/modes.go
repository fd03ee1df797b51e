package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/sync/errgroup"

	"minkafka/internal/formatting"
	"minkafka/internal/metrics"
	"minkafka/internal/shell"
	"minkafka/pkg/logging"
)

// shutdownTimeout bounds stopping services and releasing processes.
const shutdownTimeout = 30 * time.Second

// sdNotify is swapped in tests.
var sdNotify = daemon.SdNotify

// runUpMode starts both services, streams their output prefixed by service
// name and blocks until SIGINT/SIGTERM or ctx is done, then stops them.
//
// When running under systemd, READY=1 is sent once the start sequence
// succeeds and STOPPING=1 before the stop sequence.
func runUpMode(ctx context.Context, cfg *Config, s *Services, w io.Writer) error {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Streams outlive ctx so output produced while stopping is still shown.
	streamCtx, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()

	out := &lineWriter{w: w}
	formatter := formatting.NewFormatter(formatting.Options{Format: formatting.FormatTable, Color: cfg.Color})

	g, gctx := errgroup.WithContext(streamCtx)

	if s.Prometheus != nil {
		listen := s.Config.Metrics.Listen
		g.Go(func() error {
			return metrics.Serve(gctx, listen, s.Prometheus)
		})
	}

	g.Go(func() error {
		s.Observe(gctx)
		return nil
	})

	for i, c := range s.Controllers() {
		prefix := servicePrefix(c.DisplayName(), i, cfg.Color)
		lines := c.Output().Follow(gctx)
		g.Go(func() error {
			for line := range lines {
				out.printf("%s %s\n", prefix, line)
			}
			return nil
		})
	}

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case alert := <-s.Alerts():
				out.printf("%s\n", formatter.FormatAlert(alert))
			}
		}
	})

	g.Go(func() error {
		defer stopStreams()
		s.startWatcher()

		logging.Info("Up", "Starting services. Press Ctrl+C to stop all services and exit.")
		if err := s.StartAll(); err != nil {
			logging.Warn("Up", "Start sequence did not complete: %v", err)
		} else {
			notify(daemon.SdNotifyReady)
		}

		select {
		case <-ctx.Done():
		case <-gctx.Done():
		}

		logging.Info("Up", "Shutting down services")
		notify(daemon.SdNotifyStopping)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		// Let the final stop output reach the terminal.
		time.Sleep(100 * time.Millisecond)
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runShellMode switches logging to the shell's channel and runs the REPL.
// Leaving the shell stops whatever is still running.
func runShellMode(ctx context.Context, cfg *Config, s *Services) error {
	logs := logging.InitForShell(logLevel(cfg))
	defer func() {
		logging.CloseShellChannel()
		logging.InitForCLI(logLevel(cfg), os.Stdout)
	}()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stopSignals()

	observeCtx, stopObserving := context.WithCancel(context.Background())
	defer stopObserving()
	go s.Observe(observeCtx)

	s.startWatcher()

	repl := shell.New(s, shell.Options{Color: cfg.Color})
	runErr := repl.Run(ctx, shell.Feeds{
		Events: s.Orchestrator.Subscribe(),
		Alerts: s.Alerts(),
		Logs:   logs,
	})

	fmt.Println("Stopping services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("shutdown: %w", err)
	}
	repl.Wait()
	return runErr
}

func notify(state string) {
	sent, err := sdNotify(false, state)
	switch {
	case err != nil:
		logging.Warn("Up", "sd_notify %q failed: %v", state, err)
	case sent:
		logging.Debug("Up", "sd_notify %q sent", state)
	}
}

var prefixColors = []text.Color{text.FgHiMagenta, text.FgHiCyan}

func servicePrefix(name string, index int, color bool) string {
	prefix := "[" + name + "]"
	if !color {
		return prefix
	}
	return prefixColors[index%len(prefixColors)].Sprint(prefix)
}

// lineWriter serializes writes from the stream goroutines.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format, args...)
}

