package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for handshake operations.
type Metrics struct {
	HandshakesInitiated  prometheus.Counter
	HandshakesCompleted  prometheus.Counter
	HandshakeFailures    *prometheus.CounterVec
	CarrierFallbackReads prometheus.Counter
	InitiateDurationMs   prometheus.Histogram
	CompleteDurationMs   prometheus.Histogram
	NoncesSwept          prometheus.Counter
}

// New registers and returns handshake metrics collectors.
func New() *Metrics {
	return &Metrics{
		HandshakesInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoplink_handshakes_initiated_total",
			Help: "Total number of handshakes initiated",
		}),
		HandshakesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoplink_handshakes_completed_total",
			Help: "Total number of handshakes completed successfully",
		}),
		HandshakeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shoplink_handshake_failures_total",
			Help: "Total number of failed handshake completions by reason",
		}, []string{"reason"}),
		CarrierFallbackReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoplink_carrier_fallback_reads_total",
			Help: "Total number of completions that recovered the nonce from the carrier token",
		}),
		InitiateDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoplink_initiate_duration_ms",
			Help:    "Duration of handshake initiations in milliseconds",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		CompleteDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoplink_complete_duration_ms",
			Help:    "Duration of handshake completions in milliseconds, including the exchange call",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		NoncesSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoplink_nonces_swept_total",
			Help: "Total number of abandoned handshakes reclaimed by the expiry sweep",
		}),
	}
}
