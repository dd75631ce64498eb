// Package metric records per-invocation client metrics with Prometheus.
//
// The CLI is short lived, so nothing is served over HTTP. When
// --metrics-file is set the registry is written once on exit in the text
// exposition format, ready for node_exporter's textfile collector.
package metric
