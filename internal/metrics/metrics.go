package metrics

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const divisor = 100

const (
	FetchOK           = "ok"
	FetchNetworkError = "network_error"
	FetchDecodeError  = "decode_error"
	FetchCanceled     = "canceled"

	LoadOK              = "ok"
	LoadInvalidDocument = "invalid_document"
	LoadSourceError     = "source_error"
)

// Metrics holds the Prometheus collectors of the service on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	WeatherFetchTotal    *prometheus.CounterVec
	WeatherFetchDuration prometheus.Histogram

	OverlayLoadsTotal          *prometheus.CounterVec
	OverlayGeometriesDiscarded *prometheus.CounterVec
}

func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests received",
			},
			[]string{"method", "endpoint", "status_class"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		WeatherFetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "weather_fetch_total",
				Help:      "Upstream weather fetches by outcome",
			},
			[]string{"result"},
		),

		WeatherFetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "weather_fetch_duration_seconds",
				Help:      "Latency of upstream weather fetches",
				Buckets:   prometheus.DefBuckets,
			},
		),

		OverlayLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "overlay_loads_total",
				Help:      "GeoJSON overlay loads by outcome",
			},
			[]string{"result"},
		),

		OverlayGeometriesDiscarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "overlay_geometries_discarded_total",
				Help:      "Non line-string geometries dropped while loading overlays",
			},
			[]string{"type"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.WeatherFetchTotal,
		m.WeatherFetchDuration,
		m.OverlayLoadsTotal,
		m.OverlayGeometriesDiscarded,
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/sched/latencies:seconds")},
			),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveWeatherFetch(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.WeatherFetchTotal.WithLabelValues(result).Inc()
	m.WeatherFetchDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveOverlayLoad(result string) {
	if m == nil {
		return
	}
	m.OverlayLoadsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) DiscardedGeometry(geometryType string) {
	if m == nil {
		return
	}
	m.OverlayGeometriesDiscarded.WithLabelValues(geometryType).Inc()
}

// HTTPMiddleware instruments every Fiber route.
func (m *Metrics) HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		d := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		endpoint := c.Route().Path
		m.HTTPRequestsTotal.With(prometheus.Labels{
			"method":       c.Method(),
			"endpoint":     endpoint,
			"status_class": getStatusClass(status),
		}).Inc()
		m.HTTPRequestDuration.With(prometheus.Labels{
			"method":   c.Method(),
			"endpoint": endpoint,
		}).Observe(d.Seconds())

		return err
	}
}

// Handler exposes the private registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func getStatusClass(code int) string {
	return fmt.Sprintf("%dxx", code/divisor)
}
