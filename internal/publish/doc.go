// Package publish sends single text messages to the local broker.
//
// Each Send opens a fresh Session, publishes under a deadline (five seconds
// by default) and closes the session on every path, including the deadline
// path. The Kafka session is backed by confluent-kafka-go; tests substitute
// their own SessionFactory.
package publish
