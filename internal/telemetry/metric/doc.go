// Package metric provides the Prometheus metrics shared by the console's
// API client and the stub backend.
//
//   - prometheus.go: Registry with request counters and latency histograms
//   - collector.go: a collector reporting record counts per collection
//
// The console never serves metrics; the `metrics` command prints the
// client series gathered so far. The stub backend serves them on /metrics.
package metric
