package middleware

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// middlewareMetrics contains Prometheus metrics for the built-in middleware.
type middlewareMetrics struct {
	panicsRecovered prometheus.Counter
	authRejections  *prometheus.CounterVec
}

var (
	middlewareMetricsInstance *middlewareMetrics
	middlewareMetricsOnce     sync.Once
)

// getMiddlewareMetrics returns the singleton middleware metrics instance.
func getMiddlewareMetrics() *middlewareMetrics {
	middlewareMetricsOnce.Do(func() {
		middlewareMetricsInstance = &middlewareMetrics{
			panicsRecovered: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "fnrouter",
					Subsystem: "middleware",
					Name:      "panics_recovered_total",
					Help:      "Total number of handler panics converted to 500 responses",
				},
			),
			authRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "fnrouter",
					Subsystem: "middleware",
					Name:      "auth_rejections_total",
					Help:      "Total number of requests short-circuited by the auth middleware",
				},
				[]string{"reason"},
			),
		}
	})
	return middlewareMetricsInstance
}

// IncAuthRejection records an auth middleware short-circuit. Exported for the
// auth package.
func IncAuthRejection(reason string) {
	getMiddlewareMetrics().authRejections.WithLabelValues(reason).Inc()
}
