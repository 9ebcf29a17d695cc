package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repolens_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "repolens_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"route"})

	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "repolens_scan_duration_seconds",
		Help:    "Full analysis pipeline duration",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	sessionsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "repolens_sessions_live",
		Help: "Currently registered sessions",
	})
)

// metricsMiddleware records request count and latency per route template.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
