package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "routinely",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "routinely",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "routinely",
			Name:      "http_active_requests",
			Help:      "Current number of active HTTP requests",
		},
	)

	ToggleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "routinely",
			Name:      "toggles_total",
			Help:      "Completion toggles by item kind and resulting state",
		},
		[]string{"kind", "completed"},
	)

	StoreErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "routinely",
			Name:      "store_errors_total",
			Help:      "Requests that failed with an internal error",
		},
	)
)

// MetricsMiddleware records request counts and latencies. Paths are labelled
// by route template so ids do not create new series.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ActiveRequests.Inc()
		defer ActiveRequests.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
