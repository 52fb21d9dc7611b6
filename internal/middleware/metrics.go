package middleware

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
			Namespace: "balancebook",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "balancebook",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	// EntriesCreated counts journal entries created as drafts.
	EntriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "balancebook",
		Name:      "journal_entries_created_total",
		Help:      "Total number of journal entries created",
	})

	// EntriesPosted counts journal entries posted to the ledger.
	EntriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "balancebook",
		Name:      "journal_entries_posted_total",
		Help:      "Total number of journal entries posted",
	})
)

// Metrics records request counts and durations for every route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, status).Observe(time.Since(start).Seconds())
	}
}
