package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caja_http_requests_total",
			Help: "Total HTTP requests handled, by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "caja_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CobrosRegistrados = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caja_cobros_registrados_total",
			Help: "Payments recorded, by method",
		},
		[]string{"metodo_pago"},
	)

	ArqueosGuardados = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "caja_arqueos_guardados_total",
			Help: "Cash reconciliations saved",
		},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caja_upstream_errors_total",
			Help: "Failed outbound calls to sibling services",
		},
		[]string{"service"},
	)
)
