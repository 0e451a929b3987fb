package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "betterfund",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "betterfund",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "betterfund",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	metricsRegistry = prometheus.NewRegistry()
)

func init() {
	metricsRegistry.MustRegister(collectors.NewGoCollector())
	metricsRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsRegistry.MustRegister(requestDuration, requestTotal, requestInFlight)
}

// Metrics records per-route request counters and latency histograms.
// The route template is used as the path label to keep cardinality low.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestInFlight.Inc()
		defer requestInFlight.Dec()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		status := strconv.Itoa(ctx.Writer.Status())
		requestDuration.WithLabelValues(ctx.Request.Method, path, status).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
	}
}

// MetricsHandler exposes the Prometheus scrape endpoint.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})

	return func(ctx *gin.Context) {
		h.ServeHTTP(ctx.Writer, ctx.Request)
	}
}
