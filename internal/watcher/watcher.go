package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"minkafka/internal/events"
	"minkafka/pkg/logging"
)

// DefaultDebounceInterval is how long a file must stay quiet before its
// change is reported. Editors often write a file in several steps.
const DefaultDebounceInterval = 500 * time.Millisecond

// Target is one watched properties file and the service that reads it.
type Target struct {
	Service string
	Path    string
}

// Config holds configuration for the properties watcher.
type Config struct {
	Targets  []Target
	Debounce time.Duration

	// OnChange is called once per debounced change of a target file.
	OnChange func(Target)
}

// PropertiesWatcher reports edits to service properties files. It watches
// the containing directories so that files replaced by rename are still seen.
type PropertiesWatcher struct {
	mu sync.Mutex

	config  Config
	byPath  map[string]Target
	fs      *fsnotify.Watcher
	stopCh  chan struct{}
	done    chan struct{}
	running bool

	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

// New creates a watcher. It does not touch the filesystem until Start.
func New(config Config) *PropertiesWatcher {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounceInterval
	}
	byPath := make(map[string]Target, len(config.Targets))
	for _, t := range config.Targets {
		byPath[filepath.Clean(t.Path)] = t
	}
	return &PropertiesWatcher{
		config: config,
		byPath: byPath,
		timers: make(map[string]*time.Timer),
	}
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *PropertiesWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	dirs := make(map[string]struct{})
	for path := range w.byPath {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.fs = fsw
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})
	w.running = true

	go w.processEvents(fsw.Events, fsw.Errors, w.stopCh, w.done)

	logging.Info("Watcher", "Watching %d properties file(s)", len(w.byPath))
	return nil
}

// Stop ends watching and cancels pending notifications.
func (w *PropertiesWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	fsw, done := w.fs, w.done
	w.fs = nil
	w.mu.Unlock()

	fsw.Close()
	<-done

	w.timersMu.Lock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.timersMu.Unlock()
}

func (w *PropertiesWatcher) processEvents(eventsCh <-chan fsnotify.Event, errorsCh <-chan error, stopCh, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			logging.Error("Watcher", err, "fsnotify error")
		}
	}
}

func (w *PropertiesWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	target, ok := w.byPath[filepath.Clean(event.Name)]
	if !ok {
		return
	}
	logging.Debug("Watcher", "%s changed (%s)", event.Name, event.Op)
	w.debounce(target)
}

func (w *PropertiesWatcher) debounce(target Target) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if timer, ok := w.timers[target.Path]; ok {
		timer.Stop()
	}
	w.timers[target.Path] = time.AfterFunc(w.config.Debounce, func() {
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()

		if running && w.config.OnChange != nil {
			w.config.OnChange(target)
		}
	})
}

// AlertWhen returns an OnChange callback that raises the properties-changed
// alert for a target whose service is currently active.
func AlertWhen(emitter *events.Emitter, active func(service string) bool) func(Target) {
	return func(t Target) {
		if active != nil && !active(t.Service) {
			logging.Debug("Watcher", "Ignoring change to %s, %s is not running", t.Path, t.Service)
			return
		}
		emitter.Emit(events.ReasonPropertiesChanged, events.EventData{Service: t.Service})
	}
}
