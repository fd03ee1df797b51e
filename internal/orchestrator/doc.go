// Package orchestrator sequences the supervised services and owns the
// caller-facing controls.
//
// # Sequencing
//
// StartAll launches services in dependency order (ZooKeeper, then Kafka).
// After each launch it waits for that service's stabilization window. If the
// service is Failed at that point the sequence aborts and nothing after it
// is launched. The windows are fixed delays, not readiness probes.
//
// StopAll launches the stop commands in reverse order with a fixed settle
// pause after each one, then re-enables both the start and the stop control
// whatever happened.
//
// # Controls
//
// Controls holds four flags: start, stop, createTopic and send. Every flag
// has exactly one writer. The orchestrator writes start and stop; the topic
// provisioner and the publisher are each handed their own flag:
//
//	orch, _ := orchestrator.New(cfg)
//	prov := topics.NewProvisioner(launcher, emitter, orch.Controls().CreateTopic, opts)
//	pub := publish.NewPublisher(factory, emitter, orch.Controls().Send, opts)
//
// # Observing
//
// Subscribe delivers StateChangedEvent and ControlsChangedEvent values.
// Delivery never blocks the producer; a subscriber that falls more than the
// channel buffer behind misses events and should resync with Status.
package orchestrator
