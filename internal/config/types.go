package config

import "time"

// MinkafkaConfig is the top-level configuration structure for minkafka.
type MinkafkaConfig struct {
	// InstallDir is the root of the Kafka distribution (contains bin/ and config/).
	// Empty means the parent of the directory holding the minkafka executable.
	InstallDir string `yaml:"installDir,omitempty" json:"installDir,omitempty"`

	// Platform selects how launch scripts are resolved and invoked.
	Platform Platform `yaml:"platform,omitempty" json:"platform,omitempty"`

	Coordination ServiceConfig `yaml:"coordination" json:"coordination"`
	Broker       BrokerConfig  `yaml:"broker" json:"broker"`
	Topics       TopicsConfig  `yaml:"topics" json:"topics"`
	Timing       TimingConfig  `yaml:"timing" json:"timing"`
	Metrics      MetricsConfig `yaml:"metrics" json:"metrics"`
	Watch        WatchConfig   `yaml:"watch" json:"watch"`
}

// Platform defines the launch convention of the installation.
type Platform string

const (
	// PlatformAuto picks windows or unix from the running OS.
	PlatformAuto Platform = "auto"
	// PlatformWindows runs bin\windows\<command>.bat through cmd.exe /c.
	PlatformWindows Platform = "windows"
	// PlatformUnix runs bin/<command>.sh through /bin/sh.
	PlatformUnix Platform = "unix"
)

// ServiceConfig describes one supervised service.
type ServiceConfig struct {
	// Name is the human readable name used in alerts ("Zookeeper", "Kafka").
	Name string `yaml:"name" json:"name"`
	// StartCommand and StopCommand are script names without directory or extension.
	StartCommand string `yaml:"startCommand" json:"startCommand"`
	StopCommand  string `yaml:"stopCommand" json:"stopCommand"`
	// Properties is the basename of config/<properties>.properties passed to both scripts.
	Properties string `yaml:"properties" json:"properties"`
	// Args are extra arguments appended after the properties file. Each entry
	// is a Go template rendered with sprig functions.
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`
}

// BrokerConfig is the broker service plus its client endpoint.
type BrokerConfig struct {
	ServiceConfig `yaml:",inline" json:",inline"`
	// BootstrapServer is the well-known local endpoint used by topic
	// provisioning and message publishing.
	BootstrapServer string `yaml:"bootstrapServer" json:"bootstrapServer"`
}

// TopicsConfig controls the provisioning command.
type TopicsConfig struct {
	Command           string `yaml:"command" json:"command"`
	Partitions        int    `yaml:"partitions,omitempty" json:"partitions,omitempty"`
	ReplicationFactor int    `yaml:"replicationFactor,omitempty" json:"replicationFactor,omitempty"`
}

// TimingConfig holds the fixed sequencing delays.
type TimingConfig struct {
	// CoordinationWindow is waited after launching the coordination service
	// before the broker may start.
	CoordinationWindow time.Duration `yaml:"coordinationWindow" json:"coordinationWindow"`
	// BrokerWindow is waited after launching the broker before stop is enabled.
	BrokerWindow time.Duration `yaml:"brokerWindow" json:"brokerWindow"`
	// StopSettle is waited after each stop command.
	StopSettle time.Duration `yaml:"stopSettle" json:"stopSettle"`
	// PublishTimeout bounds a single message send.
	PublishTimeout time.Duration `yaml:"publishTimeout" json:"publishTimeout"`
}

// MetricsConfig controls the Prometheus endpoint served by `minkafka up`.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Listen  string `yaml:"listen,omitempty" json:"listen,omitempty"`
}

// WatchConfig controls watching of the service properties files.
type WatchConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}
