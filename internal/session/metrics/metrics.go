package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for credential resolution.
type Metrics struct {
	ResolveRequests    prometheus.Counter
	ResolveFailures    *prometheus.CounterVec
	ResolveDurationMs  prometheus.Histogram
	CredentialsRevoked prometheus.Counter
	ExpiredCredsSwept  prometheus.Counter
}

// New registers and returns session metrics collectors.
func New() *Metrics {
	return &Metrics{
		ResolveRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoplink_resolve_requests_total",
			Help: "Total number of caller credential resolutions attempted",
		}),
		ResolveFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shoplink_resolve_failures_total",
			Help: "Total number of failed resolutions by reason",
		}, []string{"reason"}),
		ResolveDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoplink_resolve_duration_ms",
			Help:    "Duration of caller credential resolutions in milliseconds",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		CredentialsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoplink_credentials_revoked_total",
			Help: "Total number of credentials removed on platform revocation",
		}),
		ExpiredCredsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoplink_expired_credentials_swept_total",
			Help: "Total number of expired interactive credentials reclaimed by the sweep",
		}),
	}
}
