// Package metrics defines the Prometheus collectors exported by the greet service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Greeting outcomes recorded by GreetingsTotal
const (
	OutcomeSuccess          = "success"
	OutcomeValidationFailed = "validation_failed"
	OutcomeMalformed        = "malformed"
)

var (
	// HTTPRequests counts requests by route, method and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"path", "method", "status"},
	)
	// HTTPLatency observes request duration by route and method
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	// GreetingsTotal counts greeting attempts by function and outcome
	GreetingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "greetings_total", Help: "Greeting requests by function and outcome."},
		[]string{"function", "outcome"},
	)
	// AccessDenied counts requests rejected by the access key check
	AccessDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "access_denied_total", Help: "Requests rejected for a missing or invalid key."},
		[]string{"function", "level"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, GreetingsTotal, AccessDenied)
}

// Handler returns a middleware recording request count and latency.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Exposer returns the Prometheus exposition handler.
func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
