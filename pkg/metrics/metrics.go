package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "marketplace", Name: "http_requests_total", Help: "Number of handled HTTP requests by route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "marketplace", Name: "http_request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	AuthRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "marketplace", Name: "auth_rejected_total", Help: "Number of requests rejected by the auth gate by reason."},
		[]string{"reason"},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "marketplace", Name: "store_errors_total", Help: "Number of failed document store operations."},
		[]string{"collection", "op"},
	)
)

// Rejection reasons recorded on AuthRejected.
const (
	ReasonMissing   = "missing"
	ReasonInvalid   = "invalid"
	ReasonRevoked   = "revoked"
	ReasonForbidden = "forbidden"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(AuthRejected)
	reg.MustRegister(StoreErrors)
}
