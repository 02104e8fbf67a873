package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wildwave"

// Registry holds all application metrics on a private Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	// ClientRequests counts API calls by method, endpoint and status.
	ClientRequests *prometheus.CounterVec
	// ClientDuration observes API call latency by method and endpoint.
	ClientDuration *prometheus.HistogramVec

	// ServerRequests counts stub backend requests by method, route and status.
	ServerRequests *prometheus.CounterVec
	// ServerDuration observes stub backend latency by method and route.
	ServerDuration *prometheus.HistogramVec
	// LoginAttempts counts login attempts by outcome.
	LoginAttempts *prometheus.CounterVec
}

// NewRegistry creates a registry with every application metric registered.
// Process and Go runtime collectors are included when withRuntime is set.
func NewRegistry(withRuntime bool) *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		ClientRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests issued by the console.",
		}, []string{"method", "endpoint", "status"}),
		ClientDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latency seen by the console.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		ServerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		ServerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}

	r.reg.MustRegister(r.ClientRequests, r.ClientDuration, r.ServerRequests, r.ServerDuration, r.LoginAttempts)
	if withRuntime {
		r.reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// Register adds an extra collector, such as a storage engine's metrics.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.reg.Register(c)
}

// Registerer exposes the underlying registry for components that register
// their own metrics.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.reg
}

// Gatherer exposes the underlying registry for dumping metrics.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
