// Package services controls the two supervised services of a local Kafka
// installation: the coordination service (ZooKeeper) and the broker (Kafka).
//
// # Core Concepts
//
// ServiceSpec: the immutable launch descriptor of a service, holding its
// start and stop script names, its properties file and the rendered extra
// arguments.
//
// Controller: owns start and stop for one service. It launches the script
// through the runner, pumps standard output into the service's output log
// and classifies the outcome by exit code. It is the only writer of the
// service's state.
//
// ServiceState: NotStarted, Starting, Running, Failed, Stopping, Stopped.
//
//	NotStarted → Starting → Running | Failed
//	Running → Stopping → Stopped | Failed
//
// # Readiness
//
// A broker or coordination process never exits on its own while healthy, so
// Running means "did not fail within the stabilization window". It is not a
// readiness probe.
//
// # Failure Reporting
//
// Failures never surface as returned errors alone. Every failed start or stop
// moves the service to Failed and raises one alert carrying the captured
// standard error. A running process that exits on its own also moves to
// Failed; there is no automatic restart.
//
// # Thread Safety
//
// All exported methods are safe for concurrent use. State change callbacks
// are invoked outside internal locks.
package services
