package config

import "time"

const (
	DefaultBootstrapServer    = "localhost:9092"
	DefaultCoordinationWindow = 5 * time.Second
	DefaultBrokerWindow       = 5 * time.Second
	DefaultStopSettle         = 2 * time.Second
	DefaultPublishTimeout     = 5 * time.Second
	DefaultMetricsListen      = "localhost:9308"
)

// GetDefaultConfig returns the configuration of a stock Kafka distribution.
func GetDefaultConfig() MinkafkaConfig {
	return MinkafkaConfig{
		Platform: PlatformAuto,
		Coordination: ServiceConfig{
			Name:         "Zookeeper",
			StartCommand: "zookeeper-server-start",
			StopCommand:  "zookeeper-server-stop",
			Properties:   "zookeeper",
		},
		Broker: BrokerConfig{
			ServiceConfig: ServiceConfig{
				Name:         "Kafka",
				StartCommand: "kafka-server-start",
				StopCommand:  "kafka-server-stop",
				Properties:   "server",
			},
			BootstrapServer: DefaultBootstrapServer,
		},
		Topics: TopicsConfig{
			Command: "kafka-topics",
		},
		Timing: TimingConfig{
			CoordinationWindow: DefaultCoordinationWindow,
			BrokerWindow:       DefaultBrokerWindow,
			StopSettle:         DefaultStopSettle,
			PublishTimeout:     DefaultPublishTimeout,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  DefaultMetricsListen,
		},
		Watch: WatchConfig{
			Enabled: true,
		},
	}
}
