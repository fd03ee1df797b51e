// Package topics provisions Kafka topics through the installation's
// kafka-topics script:
//
//	kafka-topics --create --topic <name> --bootstrap-server localhost:9092 --if-not-exists
//
// Names are validated first; an invalid name raises "A valid topic name must
// be specified" and no process is launched.
package topics
