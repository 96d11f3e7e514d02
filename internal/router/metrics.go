package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// routerMetrics contains Prometheus metrics for dispatch.
type routerMetrics struct {
	requestsTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	routeMisses      *prometheus.CounterVec
	preflightTotal   prometheus.Counter
}

var (
	routerMetricsInstance *routerMetrics
	routerMetricsOnce     sync.Once
)

// getRouterMetrics returns the singleton router metrics instance.
func getRouterMetrics() *routerMetrics {
	routerMetricsOnce.Do(func() {
		routerMetricsInstance = &routerMetrics{
			requestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "fnrouter",
					Subsystem: "router",
					Name:      "requests_total",
					Help:      "Total number of dispatched requests",
				},
				[]string{"method", "route", "status"},
			),
			dispatchDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "fnrouter",
					Subsystem: "router",
					Name:      "dispatch_duration_seconds",
					Help:      "Time spent in dispatch, including middleware and handler",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			routeMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "fnrouter",
					Subsystem: "router",
					Name:      "route_misses_total",
					Help:      "Total number of requests that resolved to no handler",
				},
				[]string{"reason"},
			),
			preflightTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "fnrouter",
					Subsystem: "router",
					Name:      "preflight_total",
					Help:      "Total number of CORS preflight requests answered by the router",
				},
			),
		}
	})
	return routerMetricsInstance
}
