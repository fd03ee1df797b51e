// Package events provides the alert channel: short human readable messages
// raised on failures and on notable successes such as "Topic created".
//
// Alerts flow to a single consumer. The consumer registers an AlertHandler
// once, when the Emitter is built, and every component that raises alerts
// shares that Emitter:
//
//	emitter := events.NewEmitter(func(a events.Alert) {
//		fmt.Println(a.Message)
//	})
//	emitter.Emit(events.ReasonTopicCreated, events.EventData{Topic: "orders"})
//
// Message text is produced from per-reason templates that can be overridden
// with SetTemplate.
package events
