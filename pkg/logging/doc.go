// Package logging provides subsystem-tagged structured logging for minkafka.
//
// It wraps log/slog with two sinks:
//
//   - CLI mode writes text records to an io.Writer (stdout for `minkafka up`).
//   - Shell mode delivers LogEntry values over a buffered channel so the
//     interactive shell can print them without corrupting its prompt.
//
// Usage:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//	logging.Info("Bootstrap", "Loaded configuration from %s", path)
//	logging.Error("Service", err, "Failed to launch %s", name)
package logging
