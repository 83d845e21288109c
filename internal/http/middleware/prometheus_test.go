package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/analyses/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/analyses/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Post("/analyze", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad request") })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app, m, reg
}

func TestPrometheusMiddleware_CountsByRoutePattern(t *testing.T) {
	app, m, _ := newMetricsApp(t)

	requests := []struct{ method, target string }{
		{"GET", "/analyses/1"},
		{"GET", "/analyses/2"},
		{"DELETE", "/analyses/3"},
		{"POST", "/analyze"},
		{"GET", "/nowhere/42"},
	}
	for _, r := range requests {
		_, err := app.Test(httptest.NewRequest(r.method, r.target, nil))
		require.NoError(t, err)
	}

	tests := []struct {
		method, path, status string
		want                 float64
	}{
		{"GET", "/analyses/:id", "200", 2},
		{"DELETE", "/analyses/:id", "204", 1},
		{"POST", "/analyze", "400", 1},
		{"GET", unmatchedPath, "404", 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.requestCount.WithLabelValues(tt.method, tt.path, tt.status))
		assert.Equal(t, tt.want, got, "%s %s %s", tt.method, tt.path, tt.status)
	}
	assert.Equal(t, 4, testutil.CollectAndCount(m.requestDuration))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestPrometheusMiddleware_SkipsMetrics(t *testing.T) {
	app, _, reg := newMetricsApp(t)

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
