package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveWeatherFetch(FetchOK, time.Second)
		m.ObserveOverlayLoad(LoadOK)
		m.DiscardedGeometry("Polygon")
	})
}

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveWeatherFetch(FetchOK, 20*time.Millisecond)
	m.ObserveWeatherFetch(FetchOK, 30*time.Millisecond)
	m.ObserveWeatherFetch(FetchDecodeError, 10*time.Millisecond)
	m.ObserveOverlayLoad(LoadInvalidDocument)
	m.DiscardedGeometry("Point")
	m.DiscardedGeometry("Point")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.WeatherFetchTotal.WithLabelValues(FetchOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherFetchTotal.WithLabelValues(FetchDecodeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OverlayLoadsTotal.WithLabelValues(LoadInvalidDocument)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OverlayGeometriesDiscarded.WithLabelValues("Point")))
}

func TestMetrics_HTTPMiddlewareAndHandler(t *testing.T) {
	m := NewMetrics("test")

	app := fiber.New()
	app.Use(m.HTTPMiddleware())
	app.Get("/weather", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadGateway) })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/weather", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/weather", "5xx")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_http_requests_total")
}

func TestGetStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", getStatusClass(200))
	assert.Equal(t, "4xx", getStatusClass(404))
	assert.Equal(t, "5xx", getStatusClass(502))
}
