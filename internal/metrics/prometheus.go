package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusCollector implements Collector using Prometheus metrics
type PrometheusCollector struct {
	stateTransitions *prometheus.CounterVec
	outputLines      *prometheus.GaugeVec
	alerts           *prometheus.CounterVec
	topicOps         *prometheus.CounterVec
	topicDuration    prometheus.Histogram
	publishOps       *prometheus.CounterVec
	publishDuration  prometheus.Histogram

	registry *prometheus.Registry
}

// NewPrometheusCollector creates a new Prometheus metrics collector
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	if namespace == "" {
		namespace = "minkafka"
	}

	pc := &PrometheusCollector{
		registry: prometheus.NewRegistry(),
	}

	pc.stateTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "service_state_transitions_total",
			Help:      "Total number of service state transitions",
		},
		[]string{"service", "from_state", "to_state"},
	)

	pc.outputLines = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "service_output_lines",
			Help:      "Number of lines in a service's output log",
		},
		[]string{"service"},
	)

	pc.alerts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Total number of alerts raised",
		},
		[]string{"reason", "type"},
	)

	pc.topicOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topic_create_total",
			Help:      "Total number of topic provisioning calls by outcome",
		},
		[]string{"outcome"},
	)

	pc.topicDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "topic_create_duration_seconds",
			Help:      "Duration of topic provisioning commands",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	pc.publishOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Total number of publish attempts by outcome",
		},
		[]string{"outcome"},
	)

	pc.publishDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_send_duration_seconds",
			Help:      "Duration of publish attempts",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	pc.registry.MustRegister(
		pc.stateTransitions,
		pc.outputLines,
		pc.alerts,
		pc.topicOps,
		pc.topicDuration,
		pc.publishOps,
		pc.publishDuration,
	)

	return pc
}

// ServiceStateTransition records a state transition
func (pc *PrometheusCollector) ServiceStateTransition(service, fromState, toState string) {
	pc.stateTransitions.WithLabelValues(service, fromState, toState).Inc()
}

// ServiceOutputLines records the size of a service's output log
func (pc *PrometheusCollector) ServiceOutputLines(service string, lines int) {
	pc.outputLines.WithLabelValues(service).Set(float64(lines))
}

// Alert records one raised alert
func (pc *PrometheusCollector) Alert(reason, eventType string) {
	pc.alerts.WithLabelValues(reason, eventType).Inc()
}

// TopicProvisioned records one createTopic call. Invalid names never launch
// a command and are not timed.
func (pc *PrometheusCollector) TopicProvisioned(outcome string, duration time.Duration) {
	pc.topicOps.WithLabelValues(outcome).Inc()
	if outcome != OutcomeInvalid {
		pc.topicDuration.Observe(duration.Seconds())
	}
}

// MessagePublished records one send call
func (pc *PrometheusCollector) MessagePublished(outcome string, duration time.Duration) {
	pc.publishOps.WithLabelValues(outcome).Inc()
	if outcome != OutcomeInvalid {
		pc.publishDuration.Observe(duration.Seconds())
	}
}

// Registry returns the Prometheus registry for HTTP handler setup
func (pc *PrometheusCollector) Registry() *prometheus.Registry {
	return pc.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (pc *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(pc.registry, promhttp.HandlerOpts{})
}

// Compile-time interface compliance check
var _ Collector = (*PrometheusCollector)(nil)
