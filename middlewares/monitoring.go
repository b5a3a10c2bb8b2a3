package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	analyticsEmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_analytics_emissions_total",
			Help: "Total number of data layer emissions",
		},
		[]string{"event", "status"},
	)

	storefrontActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_actions_total",
			Help: "Total number of storefront actions",
		},
		[]string{"action", "status"},
	)
)

// PrometheusMiddleware collects per-request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Observe(duration)
	}
}

// RecordEmission counts a data layer emission attempt by event name.
func RecordEmission(event string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	analyticsEmissions.WithLabelValues(event, status).Inc()
}

// RecordAction counts a storefront action (add to cart, checkout, ...).
func RecordAction(action string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	storefrontActions.WithLabelValues(action, status).Inc()
}
