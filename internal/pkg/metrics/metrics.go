package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clinic",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "booking_transitions_total",
			Help:      "Applied booking status transitions.",
		},
		[]string{"from", "to"},
	)

	offerExpiryFixups = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "offer_expiry_fixups_total",
			Help:      "Expired offers whose stored flags were rewritten on read.",
		},
	)

	readStateFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic",
			Name:      "read_state_failures_total",
			Help:      "Per-item failures during mark-all-read batches.",
		},
		[]string{"collection"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingTransitions, offerExpiryFixups, readStateFailures)
	})
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncBookingTransition(from, to string) {
	bookingTransitions.WithLabelValues(from, to).Inc()
}

func IncOfferFixup() {
	offerExpiryFixups.Inc()
}

func AddReadStateFailures(collection string, n int) {
	if n > 0 {
		readStateFailures.WithLabelValues(collection).Add(float64(n))
	}
}
