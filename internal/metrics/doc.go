// Package metrics records supervisor metrics: service state transitions,
// output log sizes, alerts and the outcomes of topic provisioning and
// message sends. PrometheusCollector exposes them on /metrics; the no-op
// collector is used when metrics are disabled.
package metrics
