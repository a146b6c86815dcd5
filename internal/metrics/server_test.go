package metrics

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *prometheus.GaugeVec) {
	t.Helper()

	health := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: componentHealthMetric}, []string{"component"})
	reg := prometheus.NewRegistry()
	reg.MustRegister(health)

	s := NewServer(&config.MetricsConfig{Enabled: true, ListenAddress: "127.0.0.1:0", Path: "/metrics"},
		logger.NewNopLogger())
	s.gatherer = reg

	return s, health
}

func getHealth(t *testing.T, h http.Handler) (int, []string) {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Healthy   bool     `json:"healthy"`
		Unhealthy []string `json:"unhealthy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, w.Code == http.StatusOK, body.Healthy)
	return w.Code, body.Unhealthy
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s, health := newTestServer(t)
	h := s.Handler()

	code, unhealthy := getHealth(t, h)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, unhealthy)

	health.WithLabelValues("downloader").Set(0)
	health.WithLabelValues("api").Set(1)
	health.WithLabelValues("chain-reader").Set(0)

	code, unhealthy = getHealth(t, h)
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, []string{"chain-reader", "downloader"}, unhealthy)

	health.WithLabelValues("downloader").Set(1)
	health.WithLabelValues("chain-reader").Set(1)

	code, _ = getHealth(t, h)
	require.Equal(t, http.StatusOK, code)
}

func TestServer_StartServesMetrics(t *testing.T) {
	t.Parallel()

	s, health := newTestServer(t)
	health.WithLabelValues("store").Set(1)

	require.NoError(t, s.Start(context.Background()))
	require.NotEmpty(t, s.Addr())

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `blockindexor_component_health{component="store"} 1`)

	require.NoError(t, s.Stop(context.Background()))

	_, err = http.Get("http://" + s.Addr() + "/metrics")
	require.Error(t, err)
}

func TestServer_StartBindError(t *testing.T) {
	t.Parallel()

	first, _ := newTestServer(t)
	require.NoError(t, first.Start(context.Background()))
	defer first.Stop(context.Background()) //nolint:errcheck

	second, _ := newTestServer(t)
	second.config.ListenAddress = first.Addr()
	require.ErrorContains(t, second.Start(context.Background()), "failed to listen")
}

func TestServer_Disabled(t *testing.T) {
	t.Parallel()

	s := NewServer(&config.MetricsConfig{}, logger.NewNopLogger())
	require.NoError(t, s.Start(context.Background()))
	require.Empty(t, s.Addr())
	require.NoError(t, s.Stop(context.Background()))
}
