// Package app provides application bootstrap and lifecycle management for
// minkafka.
//
// # Architecture Overview
//
// The package has three parts:
//
//  1. Bootstrap (bootstrap.go): logging setup, configuration loading and
//     service assembly.
//  2. Services (services.go): wires configuration into the runner, the two
//     service controllers, the orchestrator, the topic provisioner, the
//     message publisher, the metrics collector and the properties watcher.
//     Services also implements the control surface driven by the shell.
//  3. Modes (modes.go): `up` and `shell`.
//
// # Alerts
//
// Every component raises alerts through one events.Emitter whose handler is
// Services.deliverAlert: it counts the alert in the metrics collector and
// forwards it to the Alerts channel. That channel has exactly one reader at a
// time: the `up` printer, the shell, or a one-shot CLI command.
//
// # Up Mode
//
// runUpMode runs an errgroup with:
//   - the Prometheus endpoint (when metrics are enabled)
//   - a metrics observer of orchestrator state events
//   - one follower per service output buffer, printing "[Service] line"
//   - an alert printer
//   - the lifecycle: StartAll, READY=1, wait for SIGINT/SIGTERM,
//     STOPPING=1, Shutdown
//
// Output followers outlive the signal so that the output of the stop
// commands is still printed.
//
// # Shell Mode
//
// runShellMode switches logging to channel delivery and runs the REPL until
// the user exits; whatever is still running is then stopped.
package app
