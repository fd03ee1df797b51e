// Package config loads and validates the minkafka configuration.
//
// Configuration lives in a single config.yaml inside the config directory
// (default ~/.config/minkafka, overridable with --config-path). A missing
// file is not an error: the defaults describe a stock Kafka distribution
// with ZooKeeper as the coordination service.
//
// Example config.yaml:
//
//	installDir: /opt/kafka
//	platform: unix
//	coordination:
//	  name: Zookeeper
//	  startCommand: zookeeper-server-start
//	  stopCommand: zookeeper-server-stop
//	  properties: zookeeper
//	broker:
//	  name: Kafka
//	  startCommand: kafka-server-start
//	  stopCommand: kafka-server-stop
//	  properties: server
//	  bootstrapServer: localhost:9092
//	  args:
//	    - "--override log.dirs={{ .InstallDir }}/data/kafka"
//	timing:
//	  coordinationWindow: 5s
//	  brokerWindow: 5s
//	  stopSettle: 2s
//	  publishTimeout: 5s
//
// Timing values are fixed sequencing delays, not readiness probes.
package config
