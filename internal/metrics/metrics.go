package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gcpath",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gcpath",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Path metrics
	ProgramsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gcpath",
		Subsystem: "path",
		Name:      "programs_parsed_total",
		Help:      "Total program excerpts parsed",
	}, []string{"dialect"})

	RecordsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gcpath",
		Subsystem: "path",
		Name:      "records_extracted_total",
		Help:      "Total coordinate records extracted from motion lines",
	}, []string{"dialect"})

	DegenerateArcs = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gcpath",
		Subsystem: "path",
		Name:      "degenerate_arcs_total",
		Help:      "Total distance computations aborted by a zero radius arc",
	})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gcpath",
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "Duration of rasterizing and encoding a path",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gcpath",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total plot cache hits",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gcpath",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total plot cache misses",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
