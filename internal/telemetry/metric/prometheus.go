package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ota"

// Registry holds all client metrics on a private Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	TokenRefreshes  prometheus.Counter
	PackagesUpload  *prometheus.CounterVec
}

// NewRegistry creates a registry with every client metric registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests sent, by backend service and status code.",
		}, []string{"service", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by backend service.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service"}),
		TokenRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "Access tokens obtained from the OAuth2 issuer.",
		}),
		PackagesUpload: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "package_uploads_total",
			Help:      "Packages sent by batch upload, by result.",
		}, []string{"result"}),
	}

	r.reg.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.TokenRefreshes,
		r.PackagesUpload,
		NewCollector(),
	)
	return r
}

// ObserveRequest records one completed exchange. A zero code means the
// request failed before a response arrived.
func (r *Registry) ObserveRequest(service string, code int, d time.Duration) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	r.RequestsTotal.WithLabelValues(service, label).Inc()
	r.RequestDuration.WithLabelValues(service).Observe(d.Seconds())
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile atomically writes all metrics to path.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Gatherer())
}
