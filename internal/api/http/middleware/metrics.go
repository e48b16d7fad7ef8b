package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus request metrics on a private registry.
type Metrics struct {
	reqTotal   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec
	registry   *prometheus.Registry
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	registry.MustRegister(reqTotal, reqLatency)

	return &Metrics{
		reqTotal:   reqTotal,
		reqLatency: reqLatency,
		registry:   registry,
	}
}

// Middleware records every request under its route pattern. Unmatched paths
// share the "unmatched" label to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.reqTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.reqLatency.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Register mounts GET /metrics.
func (m *Metrics) Register(r gin.IRouter) {
	r.GET("/metrics", gin.WrapH(m.Handler()))
}
